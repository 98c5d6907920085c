package abio

import (
	"unsafe"

	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// View returns a pointer to the T stored in src at offset, without copying.
// The value is read in host byte order. Unlike Decode it never falls back to
// a copy, so a region that is not aligned for T fails with a misaligned
// error. The pointer aliases src and must not be written through.
func View[T any](l *Layout[T], src Source, offset int, limit Limit) (*T, error) {
	if l == nil {
		return nil, nilLayout(errors.PhaseView)
	}
	if err := limit.check(errors.PhaseView, l.size); err != nil {
		return nil, err
	}
	b, err := src.region(errors.PhaseView, offset, l.size)
	if err != nil {
		return nil, err
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if !abi.IsAligned(uintptr(p), l.align) {
		return nil, errors.Misaligned(errors.PhaseView, offset, l.align)
	}
	return (*T)(p), nil
}

// ViewSlice is View for count consecutive values. The limit bounds the total
// byte count.
func ViewSlice[T any](l *Layout[T], src Source, offset, count int, limit Limit) ([]T, error) {
	if l == nil {
		return nil, nilLayout(errors.PhaseView)
	}
	total, err := sliceSize(errors.PhaseView, l.size, count)
	if err != nil {
		return nil, err
	}
	if err := limit.check(errors.PhaseView, total); err != nil {
		return nil, err
	}
	b, err := src.region(errors.PhaseView, offset, total)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []T{}, nil
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if !abi.IsAligned(uintptr(p), l.align) {
		return nil, errors.Misaligned(errors.PhaseView, offset, l.align)
	}
	return unsafe.Slice((*T)(p), count), nil
}

// AsBytes exposes the native representation of *v without copying. The
// result has length l.Size(), aliases v, and equals the bytes Decode would
// consume to rebuild *v in native order. It returns nil when l or v is nil.
func AsBytes[T any](l *Layout[T], v *T) []byte {
	if l == nil || v == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), l.size)
}

// AppendEncoded appends the bytes of v in the given order to dst.
func AppendEncoded[T any](dst []byte, l *Layout[T], v T, order Endianness) ([]byte, error) {
	if l == nil {
		return dst, nilLayout(errors.PhaseEncode)
	}
	if !order.Valid() {
		return dst, invalidOrder(order)
	}
	start := len(dst)
	dst = append(dst, AsBytes(l, &v)...)
	if len(l.swap) > 0 && order.NeedsSwap() {
		l.swapBytes(dst[start:])
	}
	return dst, nil
}
