// Package basen implements radix-N binary-to-text codecs over
// caller-supplied alphabets of 2 to 256 distinct bytes.
//
// Input is processed in 4-byte big-endian chunks, each emitted as the
// minimal number of base-N digits that can represent 2^32 values; a short
// trailing chunk of b bytes uses the minimal digit count for 2^(8b). Digit
// counts grow strictly with chunk size, so the encoded length alone
// determines the decoded length and no padding is needed.
package basen

import "fmt"

// CorruptInputError reports the offset of the first offending byte in the
// encoded input.
type CorruptInputError int64

func (e CorruptInputError) Error() string {
	return fmt.Sprintf("basen: illegal data at input byte %d", int64(e))
}

// Encoding is a radix-N codec. Encodings are immutable after construction
// and safe for concurrent use.
type Encoding struct {
	alphabet []byte
	decode   [256]int16
	base     uint64

	// digits[b] is the encoded length of a b-byte chunk; digits[4] is the
	// full chunk width.
	digits [5]int
}

// NewEncoding builds an Encoding from alphabet. The digit for value v is
// alphabet[v]. It panics when the alphabet is shorter than 2 bytes, longer
// than 256, or contains a duplicate.
func NewEncoding(alphabet string) *Encoding {
	if len(alphabet) < 2 || len(alphabet) > 256 {
		panic(fmt.Sprintf("basen: alphabet of %d bytes, need 2 to 256", len(alphabet)))
	}
	e := &Encoding{
		alphabet: []byte(alphabet),
		base:     uint64(len(alphabet)),
	}
	for i := range e.decode {
		e.decode[i] = -1
	}
	for i, c := range e.alphabet {
		if e.decode[c] != -1 {
			panic(fmt.Sprintf("basen: alphabet contains %q twice", c))
		}
		e.decode[c] = int16(i)
	}
	for b := 1; b <= 4; b++ {
		span := uint64(1) << (8 * b)
		room := uint64(1)
		for room < span {
			room *= e.base
			e.digits[b]++
		}
	}
	return e
}

// EncodedLen returns the number of digits produced for n source bytes.
func (e *Encoding) EncodedLen(n int) int {
	return n/4*e.digits[4] + e.digits[n%4]
}

// DecodedLen returns the number of bytes that n encoded digits decode to,
// or -1 when no input of that length can be a valid encoding.
func (e *Encoding) DecodedLen(n int) int {
	full := e.digits[4]
	q, rem := n/full, n%full
	if rem == 0 {
		return q * 4
	}
	for b := 1; b <= 3; b++ {
		if e.digits[b] == rem {
			return q*4 + b
		}
	}
	return -1
}

// Encode writes the encoding of src into dst, which must be at least
// EncodedLen(len(src)) bytes, and returns the number of digits written.
func (e *Encoding) Encode(dst, src []byte) int {
	n := 0
	for len(src) > 0 {
		b := len(src)
		if b > 4 {
			b = 4
		}
		var v uint64
		for i := 0; i < b; i++ {
			v = v<<8 | uint64(src[i])
		}
		d := e.digits[b]
		for i := d - 1; i >= 0; i-- {
			dst[n+i] = e.alphabet[v%e.base]
			v /= e.base
		}
		n += d
		src = src[b:]
	}
	return n
}

// EncodeToString returns the encoding of src.
func (e *Encoding) EncodeToString(src []byte) string {
	dst := make([]byte, e.EncodedLen(len(src)))
	e.Encode(dst, src)
	return string(dst)
}

// Decode writes the bytes encoded in src into dst, which must be at least
// DecodedLen(len(src)) bytes, and returns the number of bytes written. It
// fails with CorruptInputError on digits outside the alphabet, on a chunk
// whose value cannot come from the corresponding bytes, and on a trailing
// digit count no chunk size produces.
func (e *Encoding) Decode(dst, src []byte) (int, error) {
	ndst := 0
	off := 0
	for len(src) > 0 {
		d := len(src)
		b := 4
		if d >= e.digits[4] {
			d = e.digits[4]
		} else {
			b = 0
			for k := 1; k <= 3; k++ {
				if e.digits[k] == d {
					b = k
					break
				}
			}
			if b == 0 {
				return ndst, CorruptInputError(off)
			}
		}

		var v uint64
		for i := 0; i < d; i++ {
			dv := e.decode[src[i]]
			if dv < 0 {
				return ndst, CorruptInputError(off + i)
			}
			v = v*e.base + uint64(dv)
		}
		if v >= uint64(1)<<(8*b) {
			return ndst, CorruptInputError(off)
		}

		for i := b - 1; i >= 0; i-- {
			dst[ndst+i] = byte(v)
			v >>= 8
		}
		ndst += b
		src = src[d:]
		off += d
	}
	return ndst, nil
}

// DecodeString returns the bytes encoded in s.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	dst := make([]byte, len(s)/e.digits[4]*4+3)
	n, err := e.Decode(dst, []byte(s))
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
