package wire

// MaxFlags is the number of booleans one flags integer can carry.
const MaxFlags = 64

// PackFlags packs bits into a single unsigned value, bit i holding bits[i]
// with the least significant bit first. len(bits) must not exceed MaxFlags.
func PackFlags(bits []bool) uint64 {
	var v uint64
	for i, set := range bits {
		if set {
			v |= 1 << uint(i)
		}
	}
	return v
}

// UnpackFlags expands the n low bits of v back into a slice, bit i at
// index i.
func UnpackFlags(v uint64, n int) []bool {
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = v&(1<<uint(i)) != 0
	}
	return bits
}
