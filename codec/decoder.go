package codec

import (
	"fmt"

	"github.com/Eignex/kencodex/errors"
	"github.com/Eignex/kencodex/schema"
	"github.com/Eignex/kencodex/wire"
)

// Decoder reads flat records produced by an Encoder with the same schema.
// Like the encoder it is either idle or inside exactly one structure
// session, and it is not safe for concurrent use.
type Decoder struct {
	active *DecodeSession
}

// DecodeSession is the transient state of one record being decoded: the
// input buffer, the cursor past the bytes consumed so far, and the booleans
// unpacked from the flags integer.
type DecodeSession struct {
	dec    *Decoder
	schema *schema.Schema
	buf    []byte
	cursor int
	bools  []bool
	closed bool
}

// NewDecoder returns an idle decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Begin opens a structure session over buf. The flags varint at the head of
// the record is decoded eagerly and the cursor lands on the first field
// byte. A failed Begin, for either an open session or malformed flags,
// leaves the decoder exactly as it was.
func (d *Decoder) Begin(s *schema.Schema, buf []byte) (*DecodeSession, error) {
	if d.active != nil {
		return nil, errors.SessionActive(errors.PhaseDecode)
	}
	if s == nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidSchema).
			Detail("nil schema").
			Build()
	}

	var flags uint64
	var n int
	var err error
	if s.NumBool() <= 32 {
		var f32 uint32
		f32, n, err = wire.Uvarint32(buf, 0)
		flags = uint64(f32)
	} else {
		flags, n, err = wire.Uvarint64(buf, 0)
	}
	if err != nil {
		return nil, err
	}

	sess := &DecodeSession{
		dec:    d,
		schema: s,
		buf:    buf,
		cursor: n,
		bools:  wire.UnpackFlags(flags, s.NumBool()),
	}
	d.active = sess
	return sess, nil
}

// ReadBool returns the boolean field at pos. Booleans come from the flags
// integer decoded at Begin, so the cursor does not move.
func (d *Decoder) ReadBool(sess *DecodeSession, pos int) (bool, error) {
	if err := d.checkSession(sess); err != nil {
		return false, err
	}
	if pos < 0 || pos >= sess.schema.Len() {
		return false, errors.UnknownField(errors.PhaseDecode, pos, sess.schema.Len())
	}
	ord, isBool := sess.schema.BoolOrdinal(pos)
	if !isBool {
		return false, errors.NotBoolean(errors.PhaseDecode, pos, sess.schema.Field(pos).Kind.String())
	}
	return sess.bools[ord], nil
}

// ReadField decodes the non-boolean field at pos from the cursor and
// advances past it. Fields must be read in the order they were written; the
// schema position only selects the kind and mode, it does not seek. On
// failure the cursor stays where it was.
func (d *Decoder) ReadField(sess *DecodeSession, pos int) (any, error) {
	if err := d.checkSession(sess); err != nil {
		return nil, err
	}
	if pos < 0 || pos >= sess.schema.Len() {
		return nil, errors.UnknownField(errors.PhaseDecode, pos, sess.schema.Len())
	}
	field := sess.schema.Field(pos)

	switch field.Kind {
	case schema.KindBool:
		return nil, errors.BooleanField(errors.PhaseDecode, pos)

	case schema.KindByte:
		if sess.cursor >= len(sess.buf) {
			return nil, errors.UnexpectedEOF(errors.PhaseDecode, sess.cursor, 1, 0)
		}
		v := sess.buf[sess.cursor]
		sess.cursor++
		return v, nil

	case schema.KindShort:
		v, err := wire.Uint16(sess.buf, sess.cursor)
		if err != nil {
			return nil, err
		}
		sess.cursor += 2
		return int16(v), nil

	case schema.KindInt32:
		v, n, err := readInt32(sess.buf, sess.cursor, sess.schema.Mode(pos))
		if err != nil {
			return nil, err
		}
		sess.cursor += n
		return v, nil

	case schema.KindInt64:
		v, n, err := readInt64(sess.buf, sess.cursor, sess.schema.Mode(pos))
		if err != nil {
			return nil, err
		}
		sess.cursor += n
		return v, nil

	case schema.KindFloat32:
		v, err := wire.Float32(sess.buf, sess.cursor)
		if err != nil {
			return nil, err
		}
		sess.cursor += 4
		return v, nil

	case schema.KindFloat64:
		v, err := wire.Float64(sess.buf, sess.cursor)
		if err != nil {
			return nil, err
		}
		sess.cursor += 8
		return v, nil

	case schema.KindChar:
		v, err := wire.Uint16(sess.buf, sess.cursor)
		if err != nil {
			return nil, err
		}
		sess.cursor += 2
		return v, nil

	case schema.KindString:
		s, n, err := readString(sess.buf, sess.cursor)
		if err != nil {
			return nil, err
		}
		sess.cursor += n
		return s, nil

	default:
		return nil, errors.Unsupported(errors.PhaseDecode,
			fmt.Sprintf("field %d: %s fields cannot be deserialized by the flat codec", pos, field.Kind))
	}
}

// End seals the session and returns the decoder to idle. Trailing bytes the
// caller never read are not an error; partial reads are legitimate.
func (d *Decoder) End(sess *DecodeSession) error {
	if err := d.checkSession(sess); err != nil {
		return err
	}
	sess.closed = true
	sess.buf = nil
	d.active = nil
	return nil
}

// DecodeScalar reads a single top-level value from the head of buf, the
// counterpart of Encoder.EncodeScalar. It returns the value and the number
// of bytes consumed, and is only available while the decoder is idle. A
// boolean is one byte; zero decodes false, anything else true.
func (d *Decoder) DecodeScalar(kind schema.Kind, mode schema.VarIntMode, buf []byte) (any, int, error) {
	if d.active != nil {
		return nil, 0, errors.SessionActive(errors.PhaseDecode)
	}

	switch kind {
	case schema.KindBool:
		if len(buf) < 1 {
			return nil, 0, errors.UnexpectedEOF(errors.PhaseDecode, 0, 1, 0)
		}
		return buf[0] != 0, 1, nil

	case schema.KindByte:
		if len(buf) < 1 {
			return nil, 0, errors.UnexpectedEOF(errors.PhaseDecode, 0, 1, 0)
		}
		return buf[0], 1, nil

	case schema.KindShort:
		v, err := wire.Uint16(buf, 0)
		if err != nil {
			return nil, 0, err
		}
		return int16(v), 2, nil

	case schema.KindInt32:
		v, n, err := readInt32(buf, 0, mode)
		if err != nil {
			return nil, 0, err
		}
		return v, n, nil

	case schema.KindInt64:
		v, n, err := readInt64(buf, 0, mode)
		if err != nil {
			return nil, 0, err
		}
		return v, n, nil

	case schema.KindFloat32:
		v, err := wire.Float32(buf, 0)
		if err != nil {
			return nil, 0, err
		}
		return v, 4, nil

	case schema.KindFloat64:
		v, err := wire.Float64(buf, 0)
		if err != nil {
			return nil, 0, err
		}
		return v, 8, nil

	case schema.KindChar:
		v, err := wire.Uint16(buf, 0)
		if err != nil {
			return nil, 0, err
		}
		return v, 2, nil

	case schema.KindString:
		s, n, err := readString(buf, 0)
		if err != nil {
			return nil, 0, err
		}
		return s, n, nil

	default:
		return nil, 0, errors.Unsupported(errors.PhaseDecode,
			fmt.Sprintf("%s values cannot be deserialized by the flat codec", kind))
	}
}

func (d *Decoder) checkSession(sess *DecodeSession) error {
	switch {
	case sess == nil:
		return errors.NoSession(errors.PhaseDecode)
	case sess.dec != d:
		return errors.ForeignSession(errors.PhaseDecode)
	case sess.closed:
		return errors.SessionClosed(errors.PhaseDecode)
	}
	return nil
}

func readInt32(buf []byte, off int, mode schema.VarIntMode) (int32, int, error) {
	switch mode {
	case schema.VarSigned:
		return wire.Varint32(buf, off)
	case schema.VarZigzag:
		v, n, err := wire.Uvarint32(buf, off)
		if err != nil {
			return 0, 0, err
		}
		return wire.ZigzagDecode32(v), n, nil
	default:
		v, err := wire.Uint32(buf, off)
		if err != nil {
			return 0, 0, err
		}
		return int32(v), 4, nil
	}
}

func readInt64(buf []byte, off int, mode schema.VarIntMode) (int64, int, error) {
	switch mode {
	case schema.VarSigned:
		return wire.Varint64(buf, off)
	case schema.VarZigzag:
		v, n, err := wire.Uvarint64(buf, off)
		if err != nil {
			return 0, 0, err
		}
		return wire.ZigzagDecode64(v), n, nil
	default:
		v, err := wire.Uint64(buf, off)
		if err != nil {
			return 0, 0, err
		}
		return int64(v), 8, nil
	}
}

// readString decodes a length-prefixed string and returns it with the total
// bytes consumed, prefix included. The bytes are taken verbatim; the codec
// never validates UTF-8 on the way out.
func readString(buf []byte, off int) (string, int, error) {
	length, n, err := wire.Uvarint32(buf, off)
	if err != nil {
		return "", 0, err
	}
	start := off + n
	remaining := len(buf) - start
	if uint64(length) > uint64(remaining) {
		return "", 0, errors.LengthOutOfRange(errors.PhaseDecode, off, int(length), remaining)
	}
	end := start + int(length)
	return string(buf[start:end]), n + int(length), nil
}
