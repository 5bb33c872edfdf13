// Package schema describes flat record layouts for the kencodex codec.
//
// A schema is an ordered list of field descriptors. Each field has a
// position (its index in the record), a Kind, and optional integer
// annotations. Construction resolves two things the engines would otherwise
// recompute on every record:
//
//   - each boolean field's flag bit: the i-th boolean in position order owns
//     bit i of the record's flags integer
//   - each int32/int64 field's wire mode: fixed-width, varint of the raw bit
//     pattern, or zigzag varint (zigzag wins when both annotations appear)
//
// Schemas are immutable once built and safe for concurrent use by any number
// of encoders and decoders.
package schema
