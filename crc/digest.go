package crc

// Digest is a streaming CRC computation. It implements hash.Hash and
// hash.Hash32; narrower widths return their value in the low bits of Sum32
// and Sum appends Width/8 big-endian bytes.
type Digest struct {
	params Params
	table  *Table
	state  uint32
}

// New returns a Digest computing the CRC described by p. Like MakeTable it
// panics on an unsupported width.
func New(p Params) *Digest {
	return &Digest{
		params: p,
		table:  MakeTable(p),
		state:  initState(p),
	}
}

// Write feeds data into the register. It never fails.
func (d *Digest) Write(data []byte) (int, error) {
	d.state = update(d.params, d.table, d.state, data, false)
	return len(data), nil
}

// Sum32 returns the checksum of everything written so far. The register is
// not disturbed; more data may follow.
func (d *Digest) Sum32() uint32 {
	return update(d.params, d.table, d.state, nil, true)
}

// Sum appends the checksum, big-endian, to in.
func (d *Digest) Sum(in []byte) []byte {
	v := d.Sum32()
	switch d.params.Width {
	case 8:
		return append(in, byte(v))
	case 16:
		return append(in, byte(v>>8), byte(v))
	default:
		return append(in, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

// Reset returns the register to the algorithm's initial state.
func (d *Digest) Reset() {
	d.state = initState(d.params)
}

// Size returns the checksum width in bytes.
func (d *Digest) Size() int {
	return int(d.params.Width) / 8
}

// BlockSize returns 1; the register advances byte by byte.
func (d *Digest) BlockSize() int {
	return 1
}
