// Package errors provides structured error types for the kencodex library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Kinds split into two families: usage kinds report API contract
// violations by the caller, malformed kinds report undecodable input bytes.
// The IsUsage and IsMalformed classifiers distinguish the two across a wrap
// chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Field(3).
//		GoType("string").
//		FieldKind("int32").
//		Detail("cannot store string in integer field").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, 3, "string", "int32")
//	err := errors.UnexpectedEOF(errors.PhaseDecode, 17, 4, 1)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
