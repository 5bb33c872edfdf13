package schema

import (
	"github.com/Eignex/kencodex/errors"
	"github.com/Eignex/kencodex/wire"
)

// Field describes one record field. Position is the field's index in the
// record; the encoder and decoder address fields by it. Name is optional
// display metadata and never reaches the wire.
type Field struct {
	Name        string
	Position    int
	Kind        Kind
	Annotations []Annotation
}

// Schema is the resolved, immutable form of a record layout. Construction
// validates the field set and precomputes everything the engines consult per
// field: the flag bit of each boolean and the integer wire mode of each
// int32/int64.
type Schema struct {
	fields   []Field
	modes    []VarIntMode
	boolOrds []int
	numBool  int
}

// New builds a Schema from field descriptors. Positions must be unique and
// contiguous starting at zero; descriptors may arrive in any order. A schema
// may carry at most 64 boolean fields, one flag bit each.
func New(fields ...Field) (*Schema, error) {
	n := len(fields)
	ordered := make([]Field, n)
	seen := make([]bool, n)

	for _, f := range fields {
		if f.Position < 0 || f.Position >= n {
			return nil, errors.InvalidSchema("field position %d outside 0..%d", f.Position, n-1)
		}
		if seen[f.Position] {
			return nil, errors.InvalidSchema("duplicate field position %d", f.Position)
		}
		if int(f.Kind) >= len(kindNames) {
			return nil, errors.InvalidSchema("field position %d has unknown kind %d", f.Position, f.Kind)
		}
		seen[f.Position] = true
		ordered[f.Position] = f
	}

	s := &Schema{
		fields:   ordered,
		modes:    make([]VarIntMode, n),
		boolOrds: make([]int, n),
	}

	for pos, f := range ordered {
		s.boolOrds[pos] = -1
		if f.Kind == KindBool {
			s.boolOrds[pos] = s.numBool
			s.numBool++
			continue
		}
		s.modes[pos] = resolveMode(f)
	}

	if s.numBool > wire.MaxFlags {
		return nil, errors.InvalidSchema("%d boolean fields exceed the %d flag bits available", s.numBool, wire.MaxFlags)
	}

	return s, nil
}

// resolveMode folds a field's annotations into one wire mode. Zigzag wins
// when both annotations are present; annotations on non-integer kinds are
// ignored.
func resolveMode(f Field) VarIntMode {
	if f.Kind != KindInt32 && f.Kind != KindInt64 {
		return VarNone
	}
	mode := VarNone
	for _, a := range f.Annotations {
		switch a {
		case AnnotationVarUInt:
			return VarZigzag
		case AnnotationVarInt:
			mode = VarSigned
		}
	}
	return mode
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the descriptor at pos. The caller must keep pos within
// [0, Len()).
func (s *Schema) Field(pos int) Field {
	return s.fields[pos]
}

// Fields returns the descriptors in position order. The slice is shared;
// callers must not modify it.
func (s *Schema) Fields() []Field {
	return s.fields
}

// NumBool returns how many boolean fields the schema carries.
func (s *Schema) NumBool() int {
	return s.numBool
}

// BoolOrdinal returns the flag bit index of the boolean field at pos, and
// whether the field is boolean at all.
func (s *Schema) BoolOrdinal(pos int) (int, bool) {
	ord := s.boolOrds[pos]
	return ord, ord >= 0
}

// Mode returns the resolved integer wire mode of the field at pos. Fields
// that are not int32 or int64 always report VarNone.
func (s *Schema) Mode(pos int) VarIntMode {
	return s.modes[pos]
}
