package codec

import (
	"bytes"
	"fmt"
	"math"

	"github.com/Eignex/kencodex/errors"
	"github.com/Eignex/kencodex/schema"
	"github.com/Eignex/kencodex/wire"
)

// Encoder serializes flat records described by a schema. An encoder is
// either idle or inside exactly one structure session; it is not safe for
// concurrent use.
type Encoder struct {
	active *EncodeSession
}

// EncodeSession is the transient state of one record being encoded: the
// boolean accumulator and the field byte sink. Sessions are created by
// Encoder.Begin and become unusable after Encoder.End.
type EncodeSession struct {
	enc    *Encoder
	schema *schema.Schema
	bools  []bool
	data   *bytes.Buffer
	closed bool
}

// NewEncoder returns an idle encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Begin opens a structure session for one record of s. It fails with a
// usage error if a session is already open; the open session stays fully
// usable after the rejection.
func (e *Encoder) Begin(s *schema.Schema) (*EncodeSession, error) {
	if e.active != nil {
		return nil, errors.SessionActive(errors.PhaseEncode)
	}
	if s == nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidSchema).
			Detail("nil schema").
			Build()
	}
	sess := &EncodeSession{
		enc:    e,
		schema: s,
		bools:  make([]bool, s.NumBool()),
		data:   getBuf(),
	}
	e.active = sess
	return sess, nil
}

// SetBool stages the boolean field at pos. Booleans produce no bytes; they
// are packed into the record's flags integer by End.
func (e *Encoder) SetBool(sess *EncodeSession, pos int, v bool) error {
	if err := e.checkSession(sess); err != nil {
		return err
	}
	if pos < 0 || pos >= sess.schema.Len() {
		return errors.UnknownField(errors.PhaseEncode, pos, sess.schema.Len())
	}
	ord, isBool := sess.schema.BoolOrdinal(pos)
	if !isBool {
		return errors.NotBoolean(errors.PhaseEncode, pos, sess.schema.Field(pos).Kind.String())
	}
	sess.bools[ord] = v
	return nil
}

// WriteField serializes the non-boolean field at pos immediately into the
// session. Fields must be written in position order for the decoder to find
// them; the encoder does not reorder. value's Go type must match the field
// kind exactly:
//
//	byte -> byte     int16 -> short      int32 -> int32    int64 -> int64
//	float32/float64  uint16 -> char      string -> string
//
// Nothing is written when the call fails.
func (e *Encoder) WriteField(sess *EncodeSession, pos int, value any) error {
	if err := e.checkSession(sess); err != nil {
		return err
	}
	if pos < 0 || pos >= sess.schema.Len() {
		return errors.UnknownField(errors.PhaseEncode, pos, sess.schema.Len())
	}
	field := sess.schema.Field(pos)

	switch field.Kind {
	case schema.KindBool:
		return errors.BooleanField(errors.PhaseEncode, pos)

	case schema.KindByte:
		v, ok := value.(byte)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		sess.data.WriteByte(v)
		return nil

	case schema.KindShort:
		v, ok := value.(int16)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		wire.PutUint16(sess.data, uint16(v))
		return nil

	case schema.KindInt32:
		v, ok := value.(int32)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		writeInt32(sess.data, v, sess.schema.Mode(pos))
		return nil

	case schema.KindInt64:
		v, ok := value.(int64)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		writeInt64(sess.data, v, sess.schema.Mode(pos))
		return nil

	case schema.KindFloat32:
		v, ok := value.(float32)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		wire.PutFloat32(sess.data, v)
		return nil

	case schema.KindFloat64:
		v, ok := value.(float64)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		wire.PutFloat64(sess.data, v)
		return nil

	case schema.KindChar:
		v, ok := value.(uint16)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		wire.PutUint16(sess.data, v)
		return nil

	case schema.KindString:
		s, ok := value.(string)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, pos, typeName(value), field.Kind.String())
		}
		if len(s) > math.MaxInt32 {
			return errors.New(errors.PhaseEncode, errors.KindUnsupported).
				Field(pos).
				Detail("string of %d bytes exceeds the 32-bit length prefix", len(s)).
				Build()
		}
		wire.PutUvarint32(sess.data, uint32(len(s)))
		sess.data.WriteString(s)
		return nil

	default:
		return errors.Unsupported(errors.PhaseEncode,
			fmt.Sprintf("field %d: %s fields cannot be serialized by the flat codec", pos, field.Kind))
	}
}

// End seals the session and returns the wire record: the packed flags
// varint followed by the accumulated field bytes. The encoder returns to
// idle and the session cannot be used again.
func (e *Encoder) End(sess *EncodeSession) ([]byte, error) {
	if err := e.checkSession(sess); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(wire.MaxVarint64Len + sess.data.Len())
	flags := wire.PackFlags(sess.bools)
	if sess.schema.NumBool() <= 32 {
		wire.PutUvarint32(&out, uint32(flags))
	} else {
		wire.PutUvarint64(&out, flags)
	}
	out.Write(sess.data.Bytes())

	putBuf(sess.data)
	sess.data = nil
	sess.closed = true
	e.active = nil
	return out.Bytes(), nil
}

// EncodeScalar serializes a single top-level value without any record
// framing: no flags integer, just the scalar's own bytes. It is only
// available while the encoder is idle. Booleans encode as one byte, 0x00 or
// 0x01. mode is consulted for int32/int64 and ignored otherwise.
func (e *Encoder) EncodeScalar(kind schema.Kind, mode schema.VarIntMode, value any) ([]byte, error) {
	if e.active != nil {
		return nil, errors.SessionActive(errors.PhaseEncode)
	}

	var buf bytes.Buffer
	switch kind {
	case schema.KindBool:
		v, ok := value.(bool)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		if v {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}

	case schema.KindByte:
		v, ok := value.(byte)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		buf.WriteByte(v)

	case schema.KindShort:
		v, ok := value.(int16)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		wire.PutUint16(&buf, uint16(v))

	case schema.KindInt32:
		v, ok := value.(int32)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		writeInt32(&buf, v, mode)

	case schema.KindInt64:
		v, ok := value.(int64)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		writeInt64(&buf, v, mode)

	case schema.KindFloat32:
		v, ok := value.(float32)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		wire.PutFloat32(&buf, v)

	case schema.KindFloat64:
		v, ok := value.(float64)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		wire.PutFloat64(&buf, v)

	case schema.KindChar:
		v, ok := value.(uint16)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		wire.PutUint16(&buf, v)

	case schema.KindString:
		s, ok := value.(string)
		if !ok {
			return nil, scalarMismatch(kind, value)
		}
		if len(s) > math.MaxInt32 {
			return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
				Detail("string of %d bytes exceeds the 32-bit length prefix", len(s)).
				Build()
		}
		wire.PutUvarint32(&buf, uint32(len(s)))
		buf.WriteString(s)

	default:
		return nil, errors.Unsupported(errors.PhaseEncode,
			fmt.Sprintf("%s values cannot be serialized by the flat codec", kind))
	}

	return buf.Bytes(), nil
}

func (e *Encoder) checkSession(sess *EncodeSession) error {
	switch {
	case sess == nil:
		return errors.NoSession(errors.PhaseEncode)
	case sess.enc != e:
		return errors.ForeignSession(errors.PhaseEncode)
	case sess.closed:
		return errors.SessionClosed(errors.PhaseEncode)
	}
	return nil
}

func writeInt32(w *bytes.Buffer, v int32, mode schema.VarIntMode) {
	switch mode {
	case schema.VarSigned:
		wire.PutVarint32(w, v)
	case schema.VarZigzag:
		wire.PutUvarint32(w, wire.ZigzagEncode32(v))
	default:
		wire.PutUint32(w, uint32(v))
	}
}

func writeInt64(w *bytes.Buffer, v int64, mode schema.VarIntMode) {
	switch mode {
	case schema.VarSigned:
		wire.PutVarint64(w, v)
	case schema.VarZigzag:
		wire.PutUvarint64(w, wire.ZigzagEncode64(v))
	default:
		wire.PutUint64(w, uint64(v))
	}
}

func scalarMismatch(kind schema.Kind, value any) error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		GoType(typeName(value)).
		FieldKind(kind.String()).
		Build()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
