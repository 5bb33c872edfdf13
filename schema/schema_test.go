package schema_test

import (
	"testing"

	"github.com/Eignex/kencodex/errors"
	"github.com/Eignex/kencodex/schema"
)

func TestNew(t *testing.T) {
	s, err := schema.New(
		schema.Field{Name: "active", Position: 0, Kind: schema.KindBool},
		schema.Field{Name: "count", Position: 1, Kind: schema.KindInt32},
		schema.Field{Name: "label", Position: 2, Kind: schema.KindString},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	if s.Field(1).Kind != schema.KindInt32 {
		t.Errorf("Field(1).Kind = %v, want int32", s.Field(1).Kind)
	}
	if s.NumBool() != 1 {
		t.Errorf("NumBool = %d, want 1", s.NumBool())
	}
}

func TestNewOrderIndependent(t *testing.T) {
	// Descriptors may arrive shuffled; position decides the layout.
	s, err := schema.New(
		schema.Field{Position: 2, Kind: schema.KindString},
		schema.Field{Position: 0, Kind: schema.KindBool},
		schema.Field{Position: 1, Kind: schema.KindInt64},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Field(0).Kind != schema.KindBool || s.Field(1).Kind != schema.KindInt64 || s.Field(2).Kind != schema.KindString {
		t.Errorf("fields not in position order: %v %v %v",
			s.Field(0).Kind, s.Field(1).Kind, s.Field(2).Kind)
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name   string
		fields []schema.Field
	}{
		{
			name: "duplicate position",
			fields: []schema.Field{
				{Position: 0, Kind: schema.KindBool},
				{Position: 0, Kind: schema.KindInt32},
			},
		},
		{
			name: "gap in positions",
			fields: []schema.Field{
				{Position: 0, Kind: schema.KindBool},
				{Position: 2, Kind: schema.KindInt32},
			},
		},
		{
			name: "negative position",
			fields: []schema.Field{
				{Position: -1, Kind: schema.KindBool},
			},
		},
		{
			name: "unknown kind",
			fields: []schema.Field{
				{Position: 0, Kind: schema.Kind(200)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.New(tt.fields...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsUsage(err) {
				t.Errorf("expected usage error, got %v", err)
			}
		})
	}
}

func TestNewRejectsTooManyBools(t *testing.T) {
	fields := make([]schema.Field, 65)
	for i := range fields {
		fields[i] = schema.Field{Position: i, Kind: schema.KindBool}
	}
	_, err := schema.New(fields...)
	if err == nil {
		t.Fatal("expected error for 65 boolean fields")
	}

	fields = fields[:64]
	if _, err := schema.New(fields...); err != nil {
		t.Fatalf("64 boolean fields should be accepted: %v", err)
	}
}

func TestBoolOrdinals(t *testing.T) {
	// Booleans at positions 0, 2, 5 get bits 0, 1, 2.
	s, err := schema.New(
		schema.Field{Position: 0, Kind: schema.KindBool},
		schema.Field{Position: 1, Kind: schema.KindInt32},
		schema.Field{Position: 2, Kind: schema.KindBool},
		schema.Field{Position: 3, Kind: schema.KindString},
		schema.Field{Position: 4, Kind: schema.KindFloat64},
		schema.Field{Position: 5, Kind: schema.KindBool},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	wantOrds := map[int]int{0: 0, 2: 1, 5: 2}
	for pos := 0; pos < s.Len(); pos++ {
		ord, isBool := s.BoolOrdinal(pos)
		wantOrd, wantBool := wantOrds[pos]
		if isBool != wantBool {
			t.Errorf("position %d: isBool = %v, want %v", pos, isBool, wantBool)
		}
		if wantBool && ord != wantOrd {
			t.Errorf("position %d: ordinal = %d, want %d", pos, ord, wantOrd)
		}
	}
	if s.NumBool() != 3 {
		t.Errorf("NumBool = %d, want 3", s.NumBool())
	}
}

func TestModeResolution(t *testing.T) {
	tests := []struct {
		name  string
		field schema.Field
		want  schema.VarIntMode
	}{
		{
			name:  "int32 plain",
			field: schema.Field{Position: 0, Kind: schema.KindInt32},
			want:  schema.VarNone,
		},
		{
			name:  "int32 varint",
			field: schema.Field{Position: 0, Kind: schema.KindInt32, Annotations: []schema.Annotation{schema.AnnotationVarInt}},
			want:  schema.VarSigned,
		},
		{
			name:  "int64 varuint",
			field: schema.Field{Position: 0, Kind: schema.KindInt64, Annotations: []schema.Annotation{schema.AnnotationVarUInt}},
			want:  schema.VarZigzag,
		},
		{
			name:  "both annotations zigzag wins",
			field: schema.Field{Position: 0, Kind: schema.KindInt32, Annotations: []schema.Annotation{schema.AnnotationVarInt, schema.AnnotationVarUInt}},
			want:  schema.VarZigzag,
		},
		{
			name:  "both annotations reversed order",
			field: schema.Field{Position: 0, Kind: schema.KindInt64, Annotations: []schema.Annotation{schema.AnnotationVarUInt, schema.AnnotationVarInt}},
			want:  schema.VarZigzag,
		},
		{
			name:  "annotation on string ignored",
			field: schema.Field{Position: 0, Kind: schema.KindString, Annotations: []schema.Annotation{schema.AnnotationVarInt}},
			want:  schema.VarNone,
		},
		{
			name:  "annotation on short ignored",
			field: schema.Field{Position: 0, Kind: schema.KindShort, Annotations: []schema.Annotation{schema.AnnotationVarUInt}},
			want:  schema.VarNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.New(tt.field)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := s.Mode(0); got != tt.want {
				t.Errorf("Mode(0) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind schema.Kind
		want string
	}{
		{schema.KindBool, "bool"},
		{schema.KindByte, "byte"},
		{schema.KindShort, "short"},
		{schema.KindInt32, "int32"},
		{schema.KindInt64, "int64"},
		{schema.KindFloat32, "float32"},
		{schema.KindFloat64, "float64"},
		{schema.KindChar, "char"},
		{schema.KindString, "string"},
		{schema.KindList, "list"},
		{schema.Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindIsScalar(t *testing.T) {
	scalars := []schema.Kind{
		schema.KindBool, schema.KindByte, schema.KindShort, schema.KindInt32,
		schema.KindInt64, schema.KindFloat32, schema.KindFloat64,
		schema.KindChar, schema.KindString,
	}
	for _, k := range scalars {
		if !k.IsScalar() {
			t.Errorf("%v.IsScalar() = false, want true", k)
		}
	}

	composites := []schema.Kind{
		schema.KindList, schema.KindMap, schema.KindEnum,
		schema.KindOptional, schema.KindStruct,
	}
	for _, k := range composites {
		if k.IsScalar() {
			t.Errorf("%v.IsScalar() = true, want false", k)
		}
	}
}
