// Package errors provides structured error types for the abio library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: field path, Go type name, offending value and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCertify, errors.KindUnverifiablePadding).
//		Path("Header", "Flags").
//		GoType("wire.Header").
//		Detail("field at offset 1 requires 4-byte alignment").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InsufficientBytes(errors.PhaseDecode, 8, 3)
//	err := errors.LimitExceeded(errors.PhaseDecode, 4096, 64)
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels carry no phase and match an error of the same kind from
// any phase:
//
//	if errors.Is(err, errors.ErrInsufficientBytes) { ... }
package errors
