// Package wire implements the binary primitives of the kencodex format.
//
// All functions here are pure: writers append to a bytes.Buffer, readers take
// a byte slice and an offset and return the decoded value plus, for
// variable-length forms, the number of bytes consumed.
//
// # Variable-length integers
//
// Integers are encoded in 7-bit groups, least significant group first, with
// the high bit of each byte marking continuation:
//
//	0    -> 00
//	127  -> 7f
//	128  -> 80 01
//
// Signed values are grouped by their fixed-width unsigned bit pattern, so a
// negative 32-bit value always takes five bytes and a negative 64-bit value
// ten. Zigzag-map small signed values first when size matters:
//
//	wire.PutUvarint32(buf, wire.ZigzagEncode32(v))
//
// A 32-bit read fails with an overflow error when no terminator appears
// within five bytes, a 64-bit read within ten.
//
// # Fixed-width values
//
// 16, 32 and 64-bit values travel big-endian. Floats travel as their raw
// IEEE-754 bit pattern; NaN payloads are never canonicalized.
//
// # Boolean flags
//
// PackFlags folds up to 64 booleans into one unsigned integer, bit i holding
// the i-th boolean, least significant bit first.
package wire
