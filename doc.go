// Package kencodex is a schema-driven binary codec for flat records.
//
// Records are described by a schema the caller declares: an ordered list of
// scalar fields. Booleans compress into a shared flags integer at the front
// of each record; integers can opt into varint or zigzag packing per field;
// everything else is fixed-width big-endian. The codec never writes type
// information to the wire, so both sides must agree on the schema.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	kencodex/          Root package with one-shot Marshal and Unmarshal helpers
//	├── schema/        Field descriptors and resolved record layouts
//	├── codec/         Session-based encoding and decoding engines
//	├── wire/          Binary primitives: varints, zigzag, fixed-width, flags
//	├── errors/        Structured errors with a usage/malformed taxonomy
//	├── crc/           Parametric CRC engine with streaming digests
//	├── basen/         Arbitrary-base binary-to-text codec
//	├── base85/        Z85 and Ascii85 text codecs
//	├── recordlog/     Framed, checksummed record log with s2 compression
//	└── cmd/kencodex/  CLI: encode, decode, inspect, crc, z85, log
//
// # Quick Start
//
// Declare a schema once and reuse it everywhere:
//
//	s, err := schema.New(
//	    schema.Field{Name: "id", Position: 0, Kind: schema.KindInt32,
//	        Annotations: []schema.Annotation{schema.AnnotationVarUInt}},
//	    schema.Field{Name: "name", Position: 1, Kind: schema.KindString},
//	    schema.Field{Name: "active", Position: 2, Kind: schema.KindBool},
//	)
//
// Encode a record through a session:
//
//	enc := codec.NewEncoder()
//	sess, _ := enc.Begin(s)
//	enc.SetBool(sess, 2, true)
//	enc.WriteField(sess, 0, int32(42))
//	enc.WriteField(sess, 1, "alice")
//	record, _ := enc.End(sess)
//
// Or in one call when convenience beats reuse:
//
//	record, err := kencodex.Marshal(s, int32(42), "alice", true)
//	values, err := kencodex.Unmarshal(s, record)
//
// # Wire Format
//
// A record is the flags varint followed by the non-boolean fields' bytes in
// position order. The flags integer carries one bit per boolean field, first
// declared boolean in the least significant bit; it is present even when the
// schema has no booleans. Non-boolean fields must be written in position
// order, and the wire carries no per-field framing beyond what the schema
// implies.
//
// Floats travel as their raw IEEE-754 bit pattern, so NaN payloads survive a
// round trip. Strings are a length varint followed by the bytes, which the
// decoder does not validate as UTF-8.
//
// # Error Handling
//
// Every failure is an *errors.Error carrying a phase and a kind. Kinds split
// into two families: usage errors (misused API, wrong types, unknown
// positions) and malformed input errors (truncated buffers, oversized
// varints, impossible lengths). errors.IsUsage and errors.IsMalformed
// classify any error from this module.
//
// # Thread Safety
//
// Schemas are immutable after construction and safe to share. Encoders,
// decoders, and their sessions are not safe for concurrent use; give each
// goroutine its own engine.
package kencodex
