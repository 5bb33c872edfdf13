// Package base85 implements the two common 4-to-5 binary-to-text codecs:
// Z85 (ZeroMQ RFC 32) and Ascii85 (the btoa scheme). Both map 4-byte
// big-endian chunks onto 5 base-85 digits; they differ in alphabet and in
// how incomplete chunks are treated.
package base85

import (
	"fmt"

	"github.com/Eignex/kencodex/basen"
)

// z85Alphabet is the RFC 32 digit set, digit value 0 first.
const z85Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ.-:+=^!/*?&<>()[]{}@%$#"

var z85 = basen.NewEncoding(z85Alphabet)

// EncodeZ85 returns the Z85 encoding of src. Z85 is defined only for whole
// chunks; the length of src must be a multiple of 4.
func EncodeZ85(src []byte) (string, error) {
	if len(src)%4 != 0 {
		return "", fmt.Errorf("base85: z85 encode: %d bytes is not a multiple of 4", len(src))
	}
	return z85.EncodeToString(src), nil
}

// DecodeZ85 returns the bytes encoded in s. The length of s must be a
// multiple of 5; digits outside the alphabet and chunk values past 2^32
// fail with basen.CorruptInputError.
func DecodeZ85(s string) ([]byte, error) {
	if len(s)%5 != 0 {
		return nil, fmt.Errorf("base85: z85 decode: %d digits is not a multiple of 5", len(s))
	}
	return z85.DecodeString(s)
}
