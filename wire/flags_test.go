package wire_test

import (
	"testing"

	"github.com/Eignex/kencodex/wire"
)

func TestPackFlags(t *testing.T) {
	tests := []struct {
		name string
		bits []bool
		want uint64
	}{
		{"empty", nil, 0},
		{"single set", []bool{true}, 1},
		{"single clear", []bool{false}, 0},
		{"first of two", []bool{true, false}, 0b01},
		{"second of two", []bool{false, true}, 0b10},
		{"mixed", []bool{true, false, true, true}, 0b1101},
		{"bit 63", append(make([]bool, 63), true), 1 << 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wire.PackFlags(tt.bits); got != tt.want {
				t.Errorf("PackFlags = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestUnpackFlags(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, true}
	v := wire.PackFlags(bits)
	got := wire.UnpackFlags(v, len(bits))
	if len(got) != len(bits) {
		t.Fatalf("length %d, want %d", len(got), len(bits))
	}
	for i := range bits {
		if got[i] != bits[i] {
			t.Errorf("bit %d: got %v, want %v", i, got[i], bits[i])
		}
	}
}

func TestUnpackFlagsIgnoresHighBits(t *testing.T) {
	// Bits beyond n stay out of the result.
	got := wire.UnpackFlags(0xFF, 3)
	want := []bool{true, true, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bit %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if len(got) != 3 {
		t.Errorf("length %d, want 3", len(got))
	}
}
