package abio

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
	"github.com/wippyai/abio/layout"
)

// Primitive is the set of types certified by the type system alone: every
// fixed-width integer and float, including named types built on them.
type Primitive interface {
	constraints.Integer | constraints.Float
}

// Layout is the certificate for T. Holding a *Layout[T] is the only way to
// decode or view a T; one can only be obtained from Of, Certify or
// MustCertify.
type Layout[T any] struct {
	cert  *layout.Certificate
	swap  []layout.Scalar
	size  int
	align uintptr
}

type registration struct {
	layout any
	err    error
}

var registry sync.Map // reflect.Type -> *registration

// Of returns the layout of a primitive type. It cannot fail.
func Of[T Primitive]() *Layout[T] {
	return MustCertify[T]()
}

// Certify returns the layout of T or the reason it was refused. The result is
// computed once per type and shared.
func Certify[T any]() (*Layout[T], error) {
	typ := reflect.TypeFor[T]()
	if r, ok := registry.Load(typ); ok {
		return unpack[T](r.(*registration))
	}

	r := certify[T](typ)
	actual, _ := registry.LoadOrStore(typ, r)
	return unpack[T](actual.(*registration))
}

// MustCertify is Certify for package-level variables. It panics when T is
// refused, so a program that declares an uncertifiable layout fails during
// initialization instead of at its first decode.
func MustCertify[T any]() *Layout[T] {
	l, err := Certify[T]()
	if err != nil {
		panic(err)
	}
	return l
}

func certify[T any](typ reflect.Type) *registration {
	cert, err := layout.Derive(layout.FromType(typ))
	if err != nil {
		Logger().Warn("layout refused",
			zap.String("type", typ.String()),
			zap.Error(err))
		return &registration{err: err}
	}

	Logger().Debug("layout certified",
		zap.String("type", typ.String()),
		zap.Uintptr("size", cert.Descriptor.Size),
		zap.Uintptr("align", cert.Descriptor.Align),
		zap.Int("swap_leaves", len(cert.Scalars)))

	return &registration{layout: &Layout[T]{
		cert:  cert,
		swap:  cert.Scalars,
		size:  int(cert.Descriptor.Size),
		align: cert.Descriptor.Align,
	}}
}

func unpack[T any](r *registration) (*Layout[T], error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.layout.(*Layout[T]), nil
}

// Certified lists the certificates issued so far, sorted by type name.
func Certified() []*layout.Certificate {
	var out []*layout.Certificate
	registry.Range(func(_, v any) bool {
		r := v.(*registration)
		if r.err == nil {
			out = append(out, r.layout.(interface{ Certificate() *layout.Certificate }).Certificate())
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (l *Layout[T]) Size() int { return l.size }

func (l *Layout[T]) Align() int { return int(l.align) }

func (l *Layout[T]) Name() string { return l.cert.Name }

// Certificate returns the derived certificate. It must not be modified.
func (l *Layout[T]) Certificate() *layout.Certificate { return l.cert }

func (l *Layout[T]) String() string {
	return fmt.Sprintf("%s(size=%d, align=%d)", l.cert.Name, l.size, l.align)
}

// swapBytes reverses every multi-byte scalar leaf of one value in b.
func (l *Layout[T]) swapBytes(b []byte) {
	for _, sc := range l.swap {
		abi.Reverse(b[sc.Offset : sc.Offset+sc.Size])
	}
}

func nilLayout(phase errors.Phase) error {
	return errors.NilPointer(phase, nil, "*abio.Layout")
}
