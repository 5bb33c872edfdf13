// Package crc implements parametrized cyclic redundancy checks in the
// Rocksoft model for widths 8, 16 and 32.
//
// An algorithm is described by a Params value; the predefined variables
// cover the common catalog entries. One-shot:
//
//	sum := crc.Checksum(crc.CRC32IEEE, data)
//
// Streaming, via a Digest that implements hash.Hash32:
//
//	d := crc.New(crc.CRC16ARC)
//	d.Write(part1)
//	d.Write(part2)
//	sum := d.Sum32()
//
// The package operates on raw byte buffers only; it knows nothing about
// record framing or schemas.
package crc
