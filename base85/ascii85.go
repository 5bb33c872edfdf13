package base85

import "fmt"

// CorruptInputError reports the offset of the first offending digit in
// Ascii85 input.
type CorruptInputError int64

func (e CorruptInputError) Error() string {
	return fmt.Sprintf("base85: illegal ascii85 data at input byte %d", int64(e))
}

// EncodeAscii85 returns the Ascii85 encoding of src. Four zero bytes on a
// chunk boundary collapse to 'z'; a trailing chunk of b bytes is
// zero-padded, encoded, and truncated to b+1 digits.
func EncodeAscii85(src []byte) string {
	out := make([]byte, 0, (len(src)+3)/4*5)
	for len(src) > 0 {
		b := len(src)
		if b > 4 {
			b = 4
		}
		var v uint32
		for i := 0; i < 4; i++ {
			v <<= 8
			if i < b {
				v |= uint32(src[i])
			}
		}
		if v == 0 && b == 4 {
			out = append(out, 'z')
			src = src[4:]
			continue
		}

		var digits [5]byte
		for i := 4; i >= 0; i-- {
			digits[i] = byte(v%85) + '!'
			v /= 85
		}
		out = append(out, digits[:b+1]...)
		src = src[b:]
	}
	return string(out)
}

// DecodeAscii85 returns the bytes encoded in s. Whitespace between digits
// is ignored. 'z' is only legal on a chunk boundary; a trailing group of k
// digits (k >= 2) is padded with 'u' and yields k-1 bytes.
func DecodeAscii85(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)/5*4+4)
	var group [5]byte
	k := 0
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isSpace(c):
			continue
		case c == 'z':
			if k != 0 {
				return nil, CorruptInputError(i)
			}
			out = append(out, 0, 0, 0, 0)
		case c < '!' || c > 'u':
			return nil, CorruptInputError(i)
		default:
			if k == 0 {
				start = i
			}
			group[k] = c - '!'
			k++
			if k == 5 {
				v, err := groupValue(group, start)
				if err != nil {
					return nil, err
				}
				out = append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
				k = 0
			}
		}
	}

	switch k {
	case 0:
	case 1:
		// One digit cannot name any byte count.
		return nil, CorruptInputError(start)
	default:
		for i := k; i < 5; i++ {
			group[i] = 84
		}
		v, err := groupValue(group, start)
		if err != nil {
			return nil, err
		}
		for shift := 24; shift > 24-(k-1)*8; shift -= 8 {
			out = append(out, byte(v>>shift))
		}
	}
	return out, nil
}

// groupValue folds 5 digit values into the chunk value, rejecting values
// past 2^32.
func groupValue(group [5]byte, start int) (uint32, error) {
	var v uint64
	for _, d := range group {
		v = v*85 + uint64(d)
	}
	if v > 0xFFFFFFFF {
		return 0, CorruptInputError(start)
	}
	return uint32(v), nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
