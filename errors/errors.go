package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema Phase = "schema" // schema construction and resolution
	PhaseEncode Phase = "encode" // record to bytes
	PhaseDecode Phase = "decode" // bytes to record
	PhaseLog    Phase = "log"    // record log framing
)

// Kind categorizes the error
type Kind string

const (
	// Usage kinds: the caller violated the API contract. These are
	// programmer errors and should be treated as fatal.
	KindSessionActive  Kind = "session_active"
	KindNoSession      Kind = "no_session"
	KindForeignSession Kind = "foreign_session"
	KindSessionClosed  Kind = "session_closed"
	KindUnknownField   Kind = "unknown_field"
	KindTypeMismatch   Kind = "type_mismatch"
	KindNotBoolean     Kind = "not_boolean"
	KindBooleanField   Kind = "boolean_field"
	KindUnsupported    Kind = "unsupported"
	KindInvalidSchema  Kind = "invalid_schema"

	// Malformed kinds: the input bytes cannot be decoded. These are
	// data errors and may warrant skipping the record.
	KindOverflow         Kind = "overflow"
	KindUnexpectedEOF    Kind = "unexpected_eof"
	KindLengthOutOfRange Kind = "length_out_of_range"
	KindChecksumMismatch Kind = "checksum_mismatch"
	KindBadMagic         Kind = "bad_magic"
	KindBadVersion       Kind = "bad_version"
)

var malformedKinds = map[Kind]bool{
	KindOverflow:         true,
	KindUnexpectedEOF:    true,
	KindLengthOutOfRange: true,
	KindChecksumMismatch: true,
	KindBadMagic:         true,
	KindBadVersion:       true,
}

var usageKinds = map[Kind]bool{
	KindSessionActive:  true,
	KindNoSession:      true,
	KindForeignSession: true,
	KindSessionClosed:  true,
	KindUnknownField:   true,
	KindTypeMismatch:   true,
	KindNotBoolean:     true,
	KindBooleanField:   true,
	KindUnsupported:    true,
	KindInvalidSchema:  true,
}

// Error is the structured error type used throughout the library
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	GoType    string
	FieldKind string
	Detail    string

	// Field is the schema position the error refers to. Meaningful only
	// for field-level kinds (unknown_field, type_mismatch, not_boolean,
	// boolean_field).
	Field int

	// Offset is the byte offset into the input where decoding failed.
	// Meaningful only for malformed kinds.
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" || e.FieldKind != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.FieldKind != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", field kind ")
			b.WriteString(e.FieldKind)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("field kind ")
			b.WriteString(e.FieldKind)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.FieldKind != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsUsage reports whether err (or any error in its chain) is a usage
// error: the caller violated the API contract and the call must not be
// retried with the same arguments.
func IsUsage(err error) bool {
	e := asError(err)
	return e != nil && usageKinds[e.Kind]
}

// IsMalformed reports whether err (or any error in its chain) is a
// malformed-input error: the bytes being decoded are truncated or
// corrupt. The input is at fault, not the caller.
func IsMalformed(err error) bool {
	e := asError(err)
	return e != nil && malformedKinds[e.Kind]
}

func asError(err error) *Error {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Field sets the schema position
func (b *Builder) Field(pos int) *Builder {
	b.err.Field = pos
	return b
}

// Offset sets the input byte offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// FieldKind sets the schema kind name
func (b *Builder) FieldKind(k string) *Builder {
	b.err.FieldKind = k
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// SessionActive creates an error for beginning a structure while one is open
func SessionActive(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSessionActive,
		Detail: "a structure session is already open on this engine",
	}
}

// NoSession creates an error for field access without an open session
func NoSession(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoSession,
		Detail: "no open structure session on this engine",
	}
}

// ForeignSession creates an error for a session from another engine
func ForeignSession(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindForeignSession,
		Detail: "session was not opened by this engine",
	}
}

// SessionClosed creates an error for using a session after End
func SessionClosed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSessionClosed,
		Detail: "session has already been ended",
	}
}

// UnknownField creates an error for a position outside the schema
func UnknownField(phase Phase, pos, numFields int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownField,
		Field:  pos,
		Detail: fmt.Sprintf("field position %d out of range (schema has %d fields)", pos, numFields),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, pos int, goType, fieldKind string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindTypeMismatch,
		Field:     pos,
		GoType:    goType,
		FieldKind: fieldKind,
		Detail:    fmt.Sprintf("field %d", pos),
	}
}

// NotBoolean creates an error for a boolean operation on a non-boolean field
func NotBoolean(phase Phase, pos int, fieldKind string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindNotBoolean,
		Field:     pos,
		FieldKind: fieldKind,
		Detail:    fmt.Sprintf("field %d is not boolean", pos),
	}
}

// BooleanField creates an error for a value operation on a boolean field
func BooleanField(phase Phase, pos int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBooleanField,
		Field:  pos,
		Detail: fmt.Sprintf("field %d is boolean and travels in the flags integer", pos),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidSchema creates a schema construction error
func InvalidSchema(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindInvalidSchema,
		Detail: detail,
	}
}

// Overflow creates an error for an unterminated variable-length integer
func Overflow(phase Phase, off, maxBytes int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Offset: off,
		Detail: fmt.Sprintf("varint at byte %d has no terminator within %d bytes", off, maxBytes),
	}
}

// UnexpectedEOF creates an error for a read past the end of the input
func UnexpectedEOF(phase Phase, off, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnexpectedEOF,
		Offset: off,
		Detail: fmt.Sprintf("need %d bytes at offset %d, %d available", need, off, have),
	}
}

// LengthOutOfRange creates an error for a length prefix exceeding the input
func LengthOutOfRange(phase Phase, off int, length, remaining int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthOutOfRange,
		Offset: off,
		Value:  length,
		Detail: fmt.Sprintf("declared length %d exceeds %d remaining bytes at offset %d", length, remaining, off),
	}
}

// ChecksumMismatch creates an error for a record failing its checksum
func ChecksumMismatch(off int, want, got uint32) *Error {
	return &Error{
		Phase:  PhaseLog,
		Kind:   KindChecksumMismatch,
		Offset: off,
		Detail: fmt.Sprintf("record at byte %d: checksum %08x, want %08x", off, got, want),
	}
}

// BadMagic creates an error for a stream without the log signature
func BadMagic(got []byte) *Error {
	return &Error{
		Phase:  PhaseLog,
		Kind:   KindBadMagic,
		Detail: fmt.Sprintf("bad magic %x", got),
		Value:  got,
	}
}

// BadVersion creates an error for an unknown log format version
func BadVersion(got byte) *Error {
	return &Error{
		Phase:  PhaseLog,
		Kind:   KindBadVersion,
		Detail: fmt.Sprintf("unsupported log version %d", got),
		Value:  got,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
