package kencodex

import (
	"fmt"

	"github.com/Eignex/kencodex/codec"
	"github.com/Eignex/kencodex/errors"
	"github.com/Eignex/kencodex/schema"
)

// Marshal encodes one record in a single call: one value per schema field,
// in position order. It runs a full encoder session internally; callers
// encoding many records should hold a codec.Encoder and drive sessions
// themselves.
func Marshal(s *schema.Schema, values ...any) ([]byte, error) {
	if len(values) != s.Len() {
		return nil, errors.New(errors.PhaseEncode, errors.KindUnknownField).
			Detail("%d values for %d fields", len(values), s.Len()).
			Build()
	}
	enc := codec.NewEncoder()
	sess, err := enc.Begin(s)
	if err != nil {
		return nil, err
	}
	for pos := 0; pos < s.Len(); pos++ {
		if s.Field(pos).Kind == schema.KindBool {
			b, ok := values[pos].(bool)
			if !ok {
				return nil, errors.TypeMismatch(errors.PhaseEncode, pos, goTypeName(values[pos]), "bool")
			}
			err = enc.SetBool(sess, pos, b)
		} else {
			err = enc.WriteField(sess, pos, values[pos])
		}
		if err != nil {
			return nil, err
		}
	}
	return enc.End(sess)
}

// Unmarshal decodes every field of one record, returning the values in
// position order. The record must carry bytes for every non-boolean field;
// booleans that were never staged decode as false.
func Unmarshal(s *schema.Schema, record []byte) ([]any, error) {
	dec := codec.NewDecoder()
	sess, err := dec.Begin(s, record)
	if err != nil {
		return nil, err
	}
	values := make([]any, s.Len())
	for pos := 0; pos < s.Len(); pos++ {
		var v any
		var err error
		if s.Field(pos).Kind == schema.KindBool {
			v, err = dec.ReadBool(sess, pos)
		} else {
			v, err = dec.ReadField(sess, pos)
		}
		if err != nil {
			return nil, err
		}
		values[pos] = v
	}
	if err := dec.End(sess); err != nil {
		return nil, err
	}
	return values, nil
}

func goTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
