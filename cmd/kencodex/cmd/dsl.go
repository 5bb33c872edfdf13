package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Eignex/kencodex"
	"github.com/Eignex/kencodex/schema"
)

// kindsByName maps field list kind names to schema kinds. The CLI only
// speaks the scalar kinds; the container kinds have no text form here.
var kindsByName = map[string]schema.Kind{
	"bool":    schema.KindBool,
	"byte":    schema.KindByte,
	"short":   schema.KindShort,
	"int32":   schema.KindInt32,
	"int64":   schema.KindInt64,
	"float32": schema.KindFloat32,
	"float64": schema.KindFloat64,
	"char":    schema.KindChar,
	"string":  schema.KindString,
}

// parseSchema builds a Schema from a comma-separated field list. Each entry
// is name:kind with an optional @varint or @varuint suffix on integer kinds;
// field positions follow declaration order.
func parseSchema(src string) (*schema.Schema, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("schema is empty")
	}
	parts := strings.Split(src, ",")
	fields := make([]schema.Field, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		nameKind := strings.SplitN(part, ":", 2)
		if len(nameKind) != 2 || nameKind[0] == "" {
			return nil, fmt.Errorf("field %d: want name:kind, got %q", i, part)
		}
		name := nameKind[0]
		kindAnn := strings.SplitN(nameKind[1], "@", 2)
		kind, ok := kindsByName[kindAnn[0]]
		if !ok {
			return nil, fmt.Errorf("field %q: unknown kind %q", name, kindAnn[0])
		}
		f := schema.Field{Name: name, Position: i, Kind: kind}
		if len(kindAnn) == 2 {
			if kind != schema.KindInt32 && kind != schema.KindInt64 {
				return nil, fmt.Errorf("field %q: @%s needs an int32 or int64 field", name, kindAnn[1])
			}
			switch kindAnn[1] {
			case "varint":
				f.Annotations = []schema.Annotation{schema.AnnotationVarInt}
			case "varuint":
				f.Annotations = []schema.Annotation{schema.AnnotationVarUInt}
			default:
				return nil, fmt.Errorf("field %q: unknown annotation %q", name, kindAnn[1])
			}
		}
		fields = append(fields, f)
	}
	return schema.New(fields...)
}

// parseValue converts one textual value into the Go value the encoder
// expects for the field's kind. Integers accept any base strconv
// understands. A char is a single character, a quoted rune like 'A', or a
// multi-digit code point number. Strings may be double-quoted to carry
// commas, spaces, or escapes.
func parseValue(f schema.Field, s string) (any, error) {
	switch f.Kind {
	case schema.KindBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not a bool", f.Name, s)
		}
		return v, nil

	case schema.KindByte:
		v, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not a byte", f.Name, s)
		}
		return byte(v), nil

	case schema.KindShort:
		v, err := strconv.ParseInt(s, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not a short", f.Name, s)
		}
		return int16(v), nil

	case schema.KindInt32:
		v, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not an int32", f.Name, s)
		}
		return int32(v), nil

	case schema.KindInt64:
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not an int64", f.Name, s)
		}
		return v, nil

	case schema.KindFloat32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not a float32", f.Name, s)
		}
		return float32(v), nil

	case schema.KindFloat64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: %q is not a float64", f.Name, s)
		}
		return v, nil

	case schema.KindChar:
		return parseChar(f, s)

	case schema.KindString:
		if strings.HasPrefix(s, `"`) {
			v, err := strconv.Unquote(s)
			if err != nil {
				return nil, fmt.Errorf("field %q: bad quoted string %s", f.Name, s)
			}
			return v, nil
		}
		return s, nil
	}
	return nil, fmt.Errorf("field %q: kind %s has no text form", f.Name, f.Kind)
}

func parseChar(f schema.Field, s string) (any, error) {
	if strings.HasPrefix(s, "'") {
		v, err := strconv.Unquote(s)
		if err != nil {
			return nil, fmt.Errorf("field %q: bad quoted char %s", f.Name, s)
		}
		s = v
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == len(s) && size > 0 && !(r == utf8.RuneError && size == 1) {
		if r > 0xFFFF {
			return nil, fmt.Errorf("field %q: %q is outside the 16-bit char range", f.Name, s)
		}
		return uint16(r), nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return nil, fmt.Errorf("field %q: %q is not a char", f.Name, s)
	}
	return uint16(v), nil
}

// formatValue renders a decoded field the way parseValue reads it back.
// Chars and strings come out quoted; everything else prints bare.
func formatValue(f schema.Field, v any) string {
	switch f.Kind {
	case schema.KindChar:
		return strconv.QuoteRune(rune(v.(uint16)))
	case schema.KindString:
		return strconv.Quote(v.(string))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// encodeRecord parses one text value per schema field and marshals them
// into a wire record.
func encodeRecord(s *schema.Schema, values []string) ([]byte, error) {
	if len(values) != s.Len() {
		return nil, fmt.Errorf("schema has %d fields, got %d values", s.Len(), len(values))
	}
	parsed := make([]any, len(values))
	for pos := range values {
		v, err := parseValue(s.Field(pos), values[pos])
		if err != nil {
			return nil, err
		}
		parsed[pos] = v
	}
	return kencodex.Marshal(s, parsed...)
}

// splitLine splits a record line on commas, keeping commas inside quoted
// values. It is the inverse of the comma join log dump produces.
func splitLine(s string) []string {
	var (
		out   []string
		start int
		quote byte
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			out = append(out, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}
