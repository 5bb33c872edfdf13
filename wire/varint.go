package wire

import (
	"bytes"

	"github.com/Eignex/kencodex/errors"
)

// Variable-length integer encoding: 7-bit groups, least significant group
// first, high bit of each byte marks continuation. Signed values are grouped
// by their fixed-width unsigned bit pattern, so negative values always take
// the maximum number of bytes unless zigzag-mapped first.

const (
	// MaxVarint32Len is the worst-case encoded size of a 32-bit value.
	MaxVarint32Len = 5
	// MaxVarint64Len is the worst-case encoded size of a 64-bit value.
	MaxVarint64Len = 10
)

// PutUvarint32 writes an unsigned 32-bit varint
func PutUvarint32(w *bytes.Buffer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// PutUvarint64 writes an unsigned 64-bit varint
func PutUvarint64(w *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// PutVarint32 writes a signed 32-bit varint by its unsigned bit pattern
func PutVarint32(w *bytes.Buffer, v int32) {
	PutUvarint32(w, uint32(v))
}

// PutVarint64 writes a signed 64-bit varint by its unsigned bit pattern
func PutVarint64(w *bytes.Buffer, v int64) {
	PutUvarint64(w, uint64(v))
}

// Uvarint32 reads an unsigned 32-bit varint from buf starting at off.
// It returns the value and the number of bytes consumed.
func Uvarint32(buf []byte, off int) (uint32, int, error) {
	var result uint32
	var shift uint
	i := off
	for {
		if i >= len(buf) {
			return 0, 0, errors.UnexpectedEOF(errors.PhaseDecode, off, 1, 0)
		}
		b := buf[i]
		i++
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i - off, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, 0, errors.Overflow(errors.PhaseDecode, off, MaxVarint32Len)
		}
	}
}

// Uvarint64 reads an unsigned 64-bit varint from buf starting at off.
func Uvarint64(buf []byte, off int) (uint64, int, error) {
	var result uint64
	var shift uint
	i := off
	for {
		if i >= len(buf) {
			return 0, 0, errors.UnexpectedEOF(errors.PhaseDecode, off, 1, 0)
		}
		b := buf[i]
		i++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i - off, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, 0, errors.Overflow(errors.PhaseDecode, off, MaxVarint64Len)
		}
	}
}

// Varint32 reads a signed 32-bit varint from buf starting at off
func Varint32(buf []byte, off int) (int32, int, error) {
	v, n, err := Uvarint32(buf, off)
	return int32(v), n, err
}

// Varint64 reads a signed 64-bit varint from buf starting at off
func Varint64(buf []byte, off int) (int64, int, error) {
	v, n, err := Uvarint64(buf, off)
	return int64(v), n, err
}
