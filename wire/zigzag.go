package wire

// Zigzag maps signed integers to unsigned ones so that values near zero in
// either direction encode to short varints: 0→0, -1→1, 1→2, -2→3, 2→4.

// ZigzagEncode32 maps a signed 32-bit value to its zigzag form
func ZigzagEncode32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// ZigzagDecode32 restores a signed 32-bit value from its zigzag form
func ZigzagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// ZigzagEncode64 maps a signed 64-bit value to its zigzag form
func ZigzagEncode64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ZigzagDecode64 restores a signed 64-bit value from its zigzag form
func ZigzagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
