package abio

import (
	"strconv"

	"github.com/wippyai/abio/errors"
)

// Limit bounds how many bytes a single decode may consume, independent of the
// nominal size of the target type. The zero value is Unbounded.
type Limit int

// Unbounded places no ceiling on a decode.
const Unbounded Limit = 0

// Bounded returns a limit of n bytes. n must be positive.
func Bounded(n int) (Limit, error) {
	if n <= 0 {
		return Unbounded, errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Value(n).
			Detail("limit must be positive, got %d", n).
			Build()
	}
	return Limit(n), nil
}

// IsUnbounded reports whether l places no ceiling.
func (l Limit) IsUnbounded() bool {
	return l == Unbounded
}

// Allows reports whether n bytes fit under l.
func (l Limit) Allows(n int) bool {
	return l == Unbounded || (l > 0 && n <= int(l))
}

func (l Limit) String() string {
	if l == Unbounded {
		return "unbounded"
	}
	return strconv.Itoa(int(l))
}

// check is the first gate of every decode. It reads no input.
func (l Limit) check(phase errors.Phase, n int) error {
	if l < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
			Value(int(l)).
			Detail("negative limit %d", int(l)).
			Build()
	}
	if !l.Allows(n) {
		return errors.LimitExceeded(phase, n, int(l))
	}
	return nil
}
