package abio

import (
	"fmt"
	"math"

	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// Span is an (offset, length) pair describing a byte region. It holds no
// reference to any buffer and is validated against a Source only when used,
// so the same Span can be replayed against several sources.
type Span struct {
	offset int
	length int
}

func NewSpan(offset, length int) Span {
	return Span{offset: offset, length: length}
}

func (s Span) Offset() int { return s.offset }

func (s Span) Len() int { return s.length }

func (s Span) IsEmpty() bool { return s.length == 0 }

// End returns offset+length. It fails with an overflow error rather than
// wrapping, and with an invalid input error for negative components.
func (s Span) End() (int, error) {
	if s.offset < 0 || s.length < 0 {
		return 0, errors.New(errors.PhaseSlice, errors.KindInvalidInput).
			Value(s).
			Detail("span %s has a negative component", s).
			Build()
	}
	end, ok := abi.SafeAdd(s.offset, s.length)
	if !ok {
		return 0, errors.Overflow(errors.PhaseSlice, nil, s, "span end")
	}
	return end, nil
}

// Overlaps reports whether s and o share at least one byte. Empty spans and
// spans with negative components overlap nothing.
func (s Span) Overlaps(o Span) bool {
	if s.length <= 0 || o.length <= 0 || s.offset < 0 || o.offset < 0 {
		return false
	}
	return s.offset < o.saturatedEnd() && o.offset < s.saturatedEnd()
}

// ShrinkTo returns s with its length reduced to at most n. A span is never
// grown, and a negative n yields an empty span at the same offset.
func (s Span) ShrinkTo(n int) Span {
	if n < 0 {
		n = 0
	}
	if n < s.length {
		s.length = n
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("[%d+%d]", s.offset, s.length)
}

func (s Span) saturatedEnd() int {
	end, ok := abi.SafeAdd(s.offset, s.length)
	if !ok {
		return math.MaxInt
	}
	return end
}
