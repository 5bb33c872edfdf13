// Package codec provides the encoding and decoding engines for flat,
// schema-described records.
//
// # Wire Format
//
// A record is the packed boolean flags followed by the non-boolean fields
// in position order:
//
//	┌──────────────────┬──────────────────────────────────────┐
//	│ varint(flags)    │ field bytes, position order          │
//	└──────────────────┴──────────────────────────────────────┘
//
// There is no magic number, version, checksum, or per-field tag; reader and
// writer must share the schema out of band. The flags varint is always
// present, a single 0x00 when the schema has no booleans.
//
// Per-kind representations:
//
//	Kind      Bytes
//	─────────────────────────────────────────────
//	bool      flag bit (no field bytes)
//	byte      1
//	short     2, big-endian
//	int32     4 big-endian, or varint per mode
//	int64     8 big-endian, or varint per mode
//	float32   4, raw IEEE-754 bits big-endian
//	float64   8, raw IEEE-754 bits big-endian
//	char      2, big-endian UTF-16 code unit
//	string    varint byte length + UTF-8 bytes
//
// # Sessions
//
// Both engines run a two-state machine: idle, or inside one structure
// session. Begin opens a session, the field operations address it, End
// seals it. Opening a second session, using an ended session, or handing an
// engine another engine's session fails with a usage error and leaves the
// engine's current session untouched.
//
//	enc := codec.NewEncoder()
//	sess, _ := enc.Begin(s)
//	enc.SetBool(sess, 0, true)
//	enc.WriteField(sess, 1, int32(42))
//	enc.WriteField(sess, 2, "hi")
//	record, _ := enc.End(sess)
//
//	dec := codec.NewDecoder()
//	dsess, _ := dec.Begin(s, record)
//	on, _ := dec.ReadBool(dsess, 0)
//	n, _ := dec.ReadField(dsess, 1)
//	label, _ := dec.ReadField(dsess, 2)
//	dec.End(dsess)
//
// Single top-level scalars skip record framing entirely via EncodeScalar
// and DecodeScalar, available only while the engine is idle.
//
// # Error Handling
//
// Every failure is synchronous and classified by the errors package: usage
// errors for API misuse (wrong session, wrong type, boolean field given to
// WriteField), malformed errors for undecodable bytes (truncation,
// unterminated varints, oversized string lengths). A failed call writes no
// partial output and never moves the decode cursor.
//
// # Thread Safety
//
// Schemas are immutable and safe to share. Encoder and Decoder maintain
// internal state and are NOT thread-safe. Use separate instances per
// goroutine.
package codec
