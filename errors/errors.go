package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCertify Phase = "certify" // layout certification
	PhaseDecode  Phase = "decode"  // bytes to value
	PhaseEncode  Phase = "encode"  // value to bytes
	PhaseSlice   Phase = "slice"   // span and chunk access
	PhaseView    Phase = "view"    // zero-copy reinterpretation
	PhaseConfig  Phase = "config"  // codec configuration
)

// Kind categorizes the error
type Kind string

const (
	KindInsufficientBytes   Kind = "insufficient_bytes"
	KindOverflow            Kind = "overflow"
	KindMisaligned          Kind = "misaligned"
	KindLimitExceeded       Kind = "limit_exceeded"
	KindLengthMismatch      Kind = "length_mismatch"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidConfig       Kind = "invalid_config"
	KindNilPointer          Kind = "nil_pointer"
	KindInvalidBitPattern   Kind = "invalid_bit_pattern"
	KindUnverifiablePadding Kind = "unverifiable_padding"
	KindUnverifiableGeneric Kind = "unverifiable_generic"
	KindInvalidLayout       Kind = "invalid_layout"
)

// Sentinels for errors.Is. They carry no phase, so they match every phase.
var (
	ErrInsufficientBytes   = &Error{Kind: KindInsufficientBytes}
	ErrOverflow            = &Error{Kind: KindOverflow}
	ErrMisaligned          = &Error{Kind: KindMisaligned}
	ErrLimitExceeded       = &Error{Kind: KindLimitExceeded}
	ErrLengthMismatch      = &Error{Kind: KindLengthMismatch}
	ErrOutOfBounds         = &Error{Kind: KindOutOfBounds}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrInvalidConfig       = &Error{Kind: KindInvalidConfig}
	ErrNilPointer          = &Error{Kind: KindNilPointer}
	ErrInvalidBitPattern   = &Error{Kind: KindInvalidBitPattern}
	ErrUnverifiablePadding = &Error{Kind: KindUnverifiablePadding}
	ErrUnverifiableGeneric = &Error{Kind: KindUnverifiableGeneric}
	ErrInvalidLayout       = &Error{Kind: KindInvalidLayout}
)

// Error is the structured error type used throughout abio
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
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

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
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

// InsufficientBytes creates an error for a region that reads past the end of
// its source.
func InsufficientBytes(phase Phase, required, available int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInsufficientBytes,
		Detail: fmt.Sprintf("need %d bytes, only %d available", required, available),
		Value:  required,
	}
}

// LimitExceeded creates an error for a request larger than the configured limit.
func LimitExceeded(phase Phase, requested, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLimitExceeded,
		Detail: fmt.Sprintf("%d bytes requested, limit is %d", requested, limit),
		Value:  requested,
	}
}

// Misaligned creates an error for an address that does not satisfy the
// required alignment.
func Misaligned(phase Phase, offset int, align uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMisaligned,
		Detail: fmt.Sprintf("offset %d is not %d-byte aligned", offset, align),
		Value:  offset,
	}
}

// LengthMismatch creates an error for a slice whose length differs from the
// exact length required.
func LengthMismatch(phase Phase, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Detail: fmt.Sprintf("want exactly %d bytes, got %d", want, got),
		Value:  got,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("%s overflows with %v", what, value),
		Value:  value,
	}
}

// InvalidConfig creates a configuration error
func InvalidConfig(what string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Detail: what,
	}
}
