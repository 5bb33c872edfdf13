package wire

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/Eignex/kencodex/errors"
)

// Fixed-width values travel big-endian. Floats travel as their raw IEEE-754
// bit pattern: every NaN payload, signaling bit included, survives a
// round-trip unchanged.

// PutUint16 writes a big-endian 16-bit value
func PutUint16(w *bytes.Buffer, v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.Write(buf[:])
}

// PutUint32 writes a big-endian 32-bit value
func PutUint32(w *bytes.Buffer, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.Write(buf[:])
}

// PutUint64 writes a big-endian 64-bit value
func PutUint64(w *bytes.Buffer, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	w.Write(buf[:])
}

// PutFloat32 writes a float32 as its raw big-endian bit pattern
func PutFloat32(w *bytes.Buffer, v float32) {
	PutUint32(w, math.Float32bits(v))
}

// PutFloat64 writes a float64 as its raw big-endian bit pattern
func PutFloat64(w *bytes.Buffer, v float64) {
	PutUint64(w, math.Float64bits(v))
}

// Uint16 reads a big-endian 16-bit value from buf at off
func Uint16(buf []byte, off int) (uint16, error) {
	if off+2 > len(buf) {
		return 0, errors.UnexpectedEOF(errors.PhaseDecode, off, 2, len(buf)-off)
	}
	return binary.BigEndian.Uint16(buf[off:]), nil
}

// Uint32 reads a big-endian 32-bit value from buf at off
func Uint32(buf []byte, off int) (uint32, error) {
	if off+4 > len(buf) {
		return 0, errors.UnexpectedEOF(errors.PhaseDecode, off, 4, len(buf)-off)
	}
	return binary.BigEndian.Uint32(buf[off:]), nil
}

// Uint64 reads a big-endian 64-bit value from buf at off
func Uint64(buf []byte, off int) (uint64, error) {
	if off+8 > len(buf) {
		return 0, errors.UnexpectedEOF(errors.PhaseDecode, off, 8, len(buf)-off)
	}
	return binary.BigEndian.Uint64(buf[off:]), nil
}

// Float32 reads a float32 from its raw big-endian bit pattern
func Float32(buf []byte, off int) (float32, error) {
	bits, err := Uint32(buf, off)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// Float64 reads a float64 from its raw big-endian bit pattern
func Float64(buf []byte, off int) (float64, error) {
	bits, err := Uint64(buf, off)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
