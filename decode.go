package abio

import (
	"unsafe"

	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// Outcome is a decoded value and the number of bytes it was read from.
// Consumed always equals the length of the validated region, so a caller can
// advance a cursor by it.
type Outcome[T any] struct {
	Value    T
	Consumed int
}

// Decode reads a T from src at offset. The gates run in order and the first
// failure is returned:
//
//  1. limit: the size of T must fit under limit; no input is read otherwise
//  2. bounds: offset must be non-negative, offset+size must not overflow and
//     must not pass the end of src
//  3. alignment: an aligned region in native order is loaded directly; any
//     other region is copied into a local value first
//  4. byte order: multi-byte scalar leaves of the copy are reversed when
//     order differs from the host
//
// src is never modified and no partial value is returned with an error.
func Decode[T any](l *Layout[T], src Source, offset int, order Endianness, limit Limit) (Outcome[T], error) {
	if l == nil {
		return Outcome[T]{}, nilLayout(errors.PhaseDecode)
	}
	if err := limit.check(errors.PhaseDecode, l.size); err != nil {
		return Outcome[T]{}, err
	}
	if !order.Valid() {
		return Outcome[T]{}, invalidOrder(order)
	}

	b, err := src.region(errors.PhaseDecode, offset, l.size)
	if err != nil {
		return Outcome[T]{}, err
	}

	var v T
	p := unsafe.Pointer(unsafe.SliceData(b))
	swap := len(l.swap) > 0 && order.NeedsSwap()
	if !swap && abi.IsAligned(uintptr(p), l.align) {
		v = *(*T)(p)
	} else {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&v)), l.size)
		copy(dst, b)
		if swap {
			l.swapBytes(dst)
		}
	}

	return Outcome[T]{Value: v, Consumed: l.size}, nil
}

// DecodeSlice reads count consecutive values of T. The limit bounds the total
// byte count and is checked before anything is allocated.
func DecodeSlice[T any](l *Layout[T], src Source, offset, count int, order Endianness, limit Limit) (Outcome[[]T], error) {
	if l == nil {
		return Outcome[[]T]{}, nilLayout(errors.PhaseDecode)
	}
	total, err := sliceSize(errors.PhaseDecode, l.size, count)
	if err != nil {
		return Outcome[[]T]{}, err
	}
	if err := limit.check(errors.PhaseDecode, total); err != nil {
		return Outcome[[]T]{}, err
	}
	if !order.Valid() {
		return Outcome[[]T]{}, invalidOrder(order)
	}

	b, err := src.region(errors.PhaseDecode, offset, total)
	if err != nil {
		return Outcome[[]T]{}, err
	}

	out := make([]T, count)
	if count == 0 {
		return Outcome[[]T]{Value: out}, nil
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(out))), total)
	copy(dst, b)
	if len(l.swap) > 0 && order.NeedsSwap() {
		for off := 0; off < total; off += l.size {
			l.swapBytes(dst[off : off+l.size])
		}
	}

	return Outcome[[]T]{Value: out, Consumed: total}, nil
}

func sliceSize(phase errors.Phase, size, count int) (int, error) {
	if count < 0 {
		return 0, errors.New(phase, errors.KindInvalidInput).
			Value(count).
			Detail("negative element count %d", count).
			Build()
	}
	total, ok := abi.SafeMul(size, count)
	if !ok {
		return 0, errors.Overflow(phase, nil, count, "element count times size")
	}
	return total, nil
}

func invalidOrder(order Endianness) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
		Value(uint8(order)).
		Detail("invalid byte order %d", uint8(order)).
		Build()
}
