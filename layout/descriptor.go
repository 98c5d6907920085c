package layout

import (
	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// Descriptor holds the layout facts for one type.
type Descriptor struct {
	Size  uintptr
	Align uintptr
	// HasPadding is always false on a certified descriptor, since Derive
	// refuses padded shapes. It is set only on hand-built descriptors.
	HasPadding          bool
	AllBitPatternsValid bool
}

// ABICompatible reports whether the type may be built from arbitrary bytes.
func (d Descriptor) ABICompatible() bool {
	return !d.HasPadding && d.AllBitPatternsValid
}

// Validate checks the size and alignment invariants: both nonzero, alignment
// a power of two and size a multiple of alignment.
func (d Descriptor) Validate() error {
	switch {
	case d.Size == 0:
		return errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Detail("zero-sized types cannot be decoded").
			Build()
	case d.Size > abi.MaxSize:
		return errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Detail("size %d exceeds maximum %d", d.Size, abi.MaxSize).
			Value(d.Size).
			Build()
	case !abi.IsPowerOfTwo(d.Align):
		return errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Detail("alignment %d is not a power of two", d.Align).
			Value(d.Align).
			Build()
	case d.Size%d.Align != 0:
		return errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Detail("size %d is not a multiple of alignment %d", d.Size, d.Align).
			Build()
	}
	return nil
}

// Scalar is a multi-byte numeric leaf inside a certified type.
type Scalar struct {
	Offset uintptr
	Size   uintptr
	Kind   Kind
}

// Certificate is the result of a successful Derive.
type Certificate struct {
	Name       string
	Descriptor Descriptor
	// Scalars lists the multi-byte leaves in offset order. Single-byte leaves
	// are omitted since byte order does not affect them.
	Scalars []Scalar
}

// NeedsSwap reports whether decoding in a foreign byte order changes any byte.
func (c *Certificate) NeedsSwap() bool {
	return len(c.Scalars) > 0
}
