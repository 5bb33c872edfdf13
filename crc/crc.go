package crc

import (
	"fmt"
	"strings"
)

// Params describes a CRC algorithm in the Rocksoft model. Width selects the
// register size in bits and must be 8, 16 or 32; narrower values live in the
// low bits of a uint32. Poly and Init are given unreflected, as catalogs
// list them.
type Params struct {
	Width  uint8
	Poly   uint32
	Init   uint32
	RefIn  bool
	RefOut bool
	XorOut uint32
	Name   string
}

// Predefined parameter sets, check values verified against the canonical
// "123456789" test string.
var (
	CRC8            = Params{Width: 8, Poly: 0x07, Name: "CRC-8"}
	CRC16ARC        = Params{Width: 16, Poly: 0x8005, RefIn: true, RefOut: true, Name: "CRC-16/ARC"}
	CRC16CCITTFalse = Params{Width: 16, Poly: 0x1021, Init: 0xFFFF, Name: "CRC-16/CCITT-FALSE"}
	CRC16XModem     = Params{Width: 16, Poly: 0x1021, Name: "CRC-16/XMODEM"}
	CRC32IEEE       = Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XorOut: 0xFFFFFFFF, Name: "CRC-32"}
	CRC32Castagnoli = Params{Width: 32, Poly: 0x1EDC6F41, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XorOut: 0xFFFFFFFF, Name: "CRC-32/CASTAGNOLI"}
	CRC32BZip2      = Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, XorOut: 0xFFFFFFFF, Name: "CRC-32/BZIP2"}
)

// Predefined lists the built-in parameter sets.
func Predefined() []Params {
	return []Params{
		CRC8,
		CRC16ARC,
		CRC16CCITTFalse,
		CRC16XModem,
		CRC32IEEE,
		CRC32Castagnoli,
		CRC32BZip2,
	}
}

// ByName looks up a predefined parameter set by its catalog name,
// case-insensitively.
func ByName(name string) (Params, bool) {
	for _, p := range Predefined() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Params{}, false
}

// Table is a 256-entry lookup table for one byte of input.
type Table [256]uint32

// MakeTable builds the lookup table for p. It panics when p.Width is not
// 8, 16 or 32.
func MakeTable(p Params) *Table {
	switch p.Width {
	case 8, 16, 32:
	default:
		panic(fmt.Sprintf("crc: unsupported width %d", p.Width))
	}

	var t Table
	if p.RefIn {
		poly := reflect(p.Poly, p.Width)
		for i := range t {
			v := uint32(i)
			for b := 0; b < 8; b++ {
				if v&1 != 0 {
					v = (v >> 1) ^ poly
				} else {
					v >>= 1
				}
			}
			t[i] = v
		}
		return &t
	}

	top := uint32(1) << (p.Width - 1)
	mask := widthMask(p.Width)
	for i := range t {
		v := uint32(i) << (p.Width - 8)
		for b := 0; b < 8; b++ {
			if v&top != 0 {
				v = (v << 1) ^ p.Poly
			} else {
				v <<= 1
			}
		}
		t[i] = v & mask
	}
	return &t
}

// Checksum computes the CRC of data in one shot.
func Checksum(p Params, data []byte) uint32 {
	return update(p, MakeTable(p), initState(p), data, true)
}

func initState(p Params) uint32 {
	if p.RefIn {
		return reflect(p.Init, p.Width)
	}
	return p.Init & widthMask(p.Width)
}

// update runs data through the register. When finalize is set the state is
// folded into the presentation value: reflected if RefIn and RefOut
// disagree, then xored with XorOut.
func update(p Params, t *Table, state uint32, data []byte, finalize bool) uint32 {
	if p.RefIn {
		for _, b := range data {
			state = t[byte(state)^b] ^ (state >> 8)
		}
	} else {
		shift := uint32(p.Width - 8)
		mask := widthMask(p.Width)
		for _, b := range data {
			state = ((state << 8) ^ t[byte(state>>shift)^b]) & mask
		}
	}
	if !finalize {
		return state
	}
	if p.RefIn != p.RefOut {
		state = reflect(state, p.Width)
	}
	return (state ^ p.XorOut) & widthMask(p.Width)
}

func widthMask(width uint8) uint32 {
	if width == 32 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << width) - 1
}

// reflect reverses the low n bits of v.
func reflect(v uint32, n uint8) uint32 {
	var r uint32
	for i := uint8(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}
