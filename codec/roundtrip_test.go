package codec_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/Eignex/kencodex/codec"
	"github.com/Eignex/kencodex/schema"
)

func mustSchema(t *testing.T, fields ...schema.Field) *schema.Schema {
	t.Helper()
	s, err := schema.New(fields...)
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Name: "active", Position: 0, Kind: schema.KindBool},
		schema.Field{Name: "id", Position: 1, Kind: schema.KindInt32, Annotations: []schema.Annotation{schema.AnnotationVarInt}},
		schema.Field{Name: "label", Position: 2, Kind: schema.KindString},
		schema.Field{Name: "ratio", Position: 3, Kind: schema.KindFloat64},
		schema.Field{Name: "deleted", Position: 4, Kind: schema.KindBool},
		schema.Field{Name: "unit", Position: 5, Kind: schema.KindChar},
		schema.Field{Name: "rank", Position: 6, Kind: schema.KindShort},
		schema.Field{Name: "tag", Position: 7, Kind: schema.KindByte},
		schema.Field{Name: "delta", Position: 8, Kind: schema.KindInt64, Annotations: []schema.Annotation{schema.AnnotationVarUInt}},
	)

	enc := codec.NewEncoder()
	sess, err := enc.Begin(s)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := enc.SetBool(sess, 0, true); err != nil {
		t.Fatalf("SetBool(0): %v", err)
	}
	if err := enc.WriteField(sess, 1, int32(1234)); err != nil {
		t.Fatalf("WriteField(1): %v", err)
	}
	if err := enc.WriteField(sess, 2, "naming is hard"); err != nil {
		t.Fatalf("WriteField(2): %v", err)
	}
	if err := enc.WriteField(sess, 3, 3.25); err != nil {
		t.Fatalf("WriteField(3): %v", err)
	}
	if err := enc.SetBool(sess, 4, false); err != nil {
		t.Fatalf("SetBool(4): %v", err)
	}
	if err := enc.WriteField(sess, 5, uint16('K')); err != nil {
		t.Fatalf("WriteField(5): %v", err)
	}
	if err := enc.WriteField(sess, 6, int16(-7)); err != nil {
		t.Fatalf("WriteField(6): %v", err)
	}
	if err := enc.WriteField(sess, 7, byte(0xFE)); err != nil {
		t.Fatalf("WriteField(7): %v", err)
	}
	if err := enc.WriteField(sess, 8, int64(-99)); err != nil {
		t.Fatalf("WriteField(8): %v", err)
	}
	record, err := enc.End(sess)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	dec := codec.NewDecoder()
	dsess, err := dec.Begin(s, record)
	if err != nil {
		t.Fatalf("decoder Begin: %v", err)
	}
	if got, err := dec.ReadBool(dsess, 0); err != nil || got != true {
		t.Errorf("ReadBool(0) = %v, %v; want true", got, err)
	}
	if got, err := dec.ReadField(dsess, 1); err != nil || got != int32(1234) {
		t.Errorf("ReadField(1) = %v, %v; want 1234", got, err)
	}
	if got, err := dec.ReadField(dsess, 2); err != nil || got != "naming is hard" {
		t.Errorf("ReadField(2) = %v, %v", got, err)
	}
	if got, err := dec.ReadField(dsess, 3); err != nil || got != 3.25 {
		t.Errorf("ReadField(3) = %v, %v; want 3.25", got, err)
	}
	if got, err := dec.ReadBool(dsess, 4); err != nil || got != false {
		t.Errorf("ReadBool(4) = %v, %v; want false", got, err)
	}
	if got, err := dec.ReadField(dsess, 5); err != nil || got != uint16('K') {
		t.Errorf("ReadField(5) = %v, %v; want 'K'", got, err)
	}
	if got, err := dec.ReadField(dsess, 6); err != nil || got != int16(-7) {
		t.Errorf("ReadField(6) = %v, %v; want -7", got, err)
	}
	if got, err := dec.ReadField(dsess, 7); err != nil || got != byte(0xFE) {
		t.Errorf("ReadField(7) = %v, %v; want 0xFE", got, err)
	}
	if got, err := dec.ReadField(dsess, 8); err != nil || got != int64(-99) {
		t.Errorf("ReadField(8) = %v, %v; want -99", got, err)
	}
	if err := dec.End(dsess); err != nil {
		t.Fatalf("decoder End: %v", err)
	}
}

func TestEmptySchemaRecord(t *testing.T) {
	s := mustSchema(t)

	enc := codec.NewEncoder()
	sess, err := enc.Begin(s)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	record, err := enc.End(sess)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	// The flags varint is always present, 0x00 when nothing is packed.
	if !bytes.Equal(record, []byte{0x00}) {
		t.Errorf("record = %x, want 00", record)
	}

	dec := codec.NewDecoder()
	dsess, err := dec.Begin(s, record)
	if err != nil {
		t.Fatalf("decoder Begin: %v", err)
	}
	if err := dec.End(dsess); err != nil {
		t.Fatalf("decoder End: %v", err)
	}
}

func TestBoolBitOrder(t *testing.T) {
	// Booleans at positions 0, 2 and 5 own flag bits 0, 1 and 2 in that
	// order, regardless of the non-boolean fields between them.
	s := mustSchema(t,
		schema.Field{Position: 0, Kind: schema.KindBool},
		schema.Field{Position: 1, Kind: schema.KindByte},
		schema.Field{Position: 2, Kind: schema.KindBool},
		schema.Field{Position: 3, Kind: schema.KindByte},
		schema.Field{Position: 4, Kind: schema.KindByte},
		schema.Field{Position: 5, Kind: schema.KindBool},
	)

	enc := codec.NewEncoder()
	sess, _ := enc.Begin(s)
	enc.SetBool(sess, 0, true)
	enc.SetBool(sess, 2, false)
	enc.SetBool(sess, 5, true)
	enc.WriteField(sess, 1, byte(0))
	enc.WriteField(sess, 3, byte(0))
	enc.WriteField(sess, 4, byte(0))
	record, err := enc.End(sess)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	// bits 0 and 2 set -> 0b101
	if record[0] != 0x05 {
		t.Errorf("flags byte = %#02x, want 0x05", record[0])
	}
}

func TestStringFieldBytes(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Position: 0, Kind: schema.KindString},
	)

	enc := codec.NewEncoder()
	sess, _ := enc.Begin(s)
	if err := enc.WriteField(sess, 0, "hi"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	record, err := enc.End(sess)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	// flags 0x00, length varint 0x02, then the raw bytes.
	want := []byte{0x00, 0x02, 'h', 'i'}
	if !bytes.Equal(record, want) {
		t.Errorf("record = %x, want %x", record, want)
	}
}

func TestEmptyStringField(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Position: 0, Kind: schema.KindString},
	)

	enc := codec.NewEncoder()
	sess, _ := enc.Begin(s)
	enc.WriteField(sess, 0, "")
	record, _ := enc.End(sess)

	want := []byte{0x00, 0x00}
	if !bytes.Equal(record, want) {
		t.Errorf("record = %x, want %x", record, want)
	}

	dec := codec.NewDecoder()
	dsess, _ := dec.Begin(s, record)
	got, err := dec.ReadField(dsess, 0)
	if err != nil {
		t.Fatalf("ReadField: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestIntegerModeWidths(t *testing.T) {
	tests := []struct {
		name        string
		annotations []schema.Annotation
		value       int32
		wantField   []byte
	}{
		{
			name:      "fixed negative",
			value:     -1,
			wantField: []byte{0xff, 0xff, 0xff, 0xff},
		},
		{
			name:        "varint negative takes five bytes",
			annotations: []schema.Annotation{schema.AnnotationVarInt},
			value:       -1,
			wantField:   []byte{0xff, 0xff, 0xff, 0xff, 0x0f},
		},
		{
			name:        "zigzag negative takes one byte",
			annotations: []schema.Annotation{schema.AnnotationVarUInt},
			value:       -1,
			wantField:   []byte{0x01},
		},
		{
			name:        "varint small positive",
			annotations: []schema.Annotation{schema.AnnotationVarInt},
			value:       127,
			wantField:   []byte{0x7f},
		},
		{
			name:        "zigzag small positive",
			annotations: []schema.Annotation{schema.AnnotationVarUInt},
			value:       1,
			wantField:   []byte{0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSchema(t,
				schema.Field{Position: 0, Kind: schema.KindInt32, Annotations: tt.annotations},
			)

			enc := codec.NewEncoder()
			sess, _ := enc.Begin(s)
			if err := enc.WriteField(sess, 0, tt.value); err != nil {
				t.Fatalf("WriteField: %v", err)
			}
			record, err := enc.End(sess)
			if err != nil {
				t.Fatalf("End: %v", err)
			}

			if !bytes.Equal(record[1:], tt.wantField) {
				t.Errorf("field bytes = %x, want %x", record[1:], tt.wantField)
			}

			dec := codec.NewDecoder()
			dsess, _ := dec.Begin(s, record)
			got, err := dec.ReadField(dsess, 0)
			if err != nil {
				t.Fatalf("ReadField: %v", err)
			}
			if got != tt.value {
				t.Errorf("round-trip = %v, want %d", got, tt.value)
			}
		})
	}
}

func TestFloatNaNThroughRecord(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Position: 0, Kind: schema.KindFloat32},
		schema.Field{Position: 1, Kind: schema.KindFloat64},
	)

	snan32 := math.Float32frombits(0x7FA00001)
	nan64 := math.Float64frombits(0xFFF8DEADBEEF0001)

	enc := codec.NewEncoder()
	sess, _ := enc.Begin(s)
	if err := enc.WriteField(sess, 0, snan32); err != nil {
		t.Fatalf("WriteField(0): %v", err)
	}
	if err := enc.WriteField(sess, 1, nan64); err != nil {
		t.Fatalf("WriteField(1): %v", err)
	}
	record, _ := enc.End(sess)

	dec := codec.NewDecoder()
	dsess, _ := dec.Begin(s, record)
	got32, err := dec.ReadField(dsess, 0)
	if err != nil {
		t.Fatalf("ReadField(0): %v", err)
	}
	got64, err := dec.ReadField(dsess, 1)
	if err != nil {
		t.Fatalf("ReadField(1): %v", err)
	}

	if math.Float32bits(got32.(float32)) != 0x7FA00001 {
		t.Errorf("float32 bits = %#x, want 0x7FA00001", math.Float32bits(got32.(float32)))
	}
	if math.Float64bits(got64.(float64)) != 0xFFF8DEADBEEF0001 {
		t.Errorf("float64 bits = %#x, want 0xFFF8DEADBEEF0001", math.Float64bits(got64.(float64)))
	}
}

func TestPartialReadIsFine(t *testing.T) {
	s := mustSchema(t,
		schema.Field{Position: 0, Kind: schema.KindInt32},
		schema.Field{Position: 1, Kind: schema.KindString},
	)

	enc := codec.NewEncoder()
	sess, _ := enc.Begin(s)
	enc.WriteField(sess, 0, int32(7))
	enc.WriteField(sess, 1, "unread")
	record, _ := enc.End(sess)

	dec := codec.NewDecoder()
	dsess, _ := dec.Begin(s, record)
	if _, err := dec.ReadField(dsess, 0); err != nil {
		t.Fatalf("ReadField(0): %v", err)
	}
	// Field 1 is never read; End does not mind.
	if err := dec.End(dsess); err != nil {
		t.Errorf("End after partial read: %v", err)
	}
}

func TestManyBoolsVarlongFlags(t *testing.T) {
	// 40 booleans force the flags integer past 32 bits.
	fields := make([]schema.Field, 40)
	for i := range fields {
		fields[i] = schema.Field{Position: i, Kind: schema.KindBool}
	}
	s := mustSchema(t, fields...)

	enc := codec.NewEncoder()
	sess, _ := enc.Begin(s)
	for i := 0; i < 40; i++ {
		enc.SetBool(sess, i, i%3 == 0)
	}
	record, err := enc.End(sess)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	dec := codec.NewDecoder()
	dsess, err := dec.Begin(s, record)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for i := 0; i < 40; i++ {
		got, err := dec.ReadBool(dsess, i)
		if err != nil {
			t.Fatalf("ReadBool(%d): %v", i, err)
		}
		if got != (i%3 == 0) {
			t.Errorf("ReadBool(%d) = %v, want %v", i, got, i%3 == 0)
		}
	}
}

func TestUnsetFieldsDecodeAsZero(t *testing.T) {
	// Booleans default to false when never staged.
	s := mustSchema(t,
		schema.Field{Position: 0, Kind: schema.KindBool},
		schema.Field{Position: 1, Kind: schema.KindBool},
	)

	enc := codec.NewEncoder()
	sess, _ := enc.Begin(s)
	enc.SetBool(sess, 1, true)
	record, _ := enc.End(sess)

	dec := codec.NewDecoder()
	dsess, _ := dec.Begin(s, record)
	if got, _ := dec.ReadBool(dsess, 0); got {
		t.Error("unset bool decoded true, want false")
	}
	if got, _ := dec.ReadBool(dsess, 1); !got {
		t.Error("set bool decoded false, want true")
	}
}
