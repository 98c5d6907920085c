package abio

import (
	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// Source borrows an externally owned byte buffer. It never copies on
// construction and never writes to the buffer. Any number of Sources may share
// one buffer.
type Source struct {
	buf []byte
}

func NewSource(b []byte) Source {
	return Source{buf: b}
}

func (s Source) Len() int { return len(s.buf) }

func (s Source) IsEmpty() bool { return len(s.buf) == 0 }

// Bytes returns the borrowed buffer. Callers must not modify it.
func (s Source) Bytes() []byte { return s.buf }

// Slice returns the bytes covered by sp. The result's capacity is capped at
// its length so appends cannot reach past the span.
func (s Source) Slice(sp Span) ([]byte, error) {
	if sp.offset < 0 {
		return nil, errors.OutOfBounds(errors.PhaseSlice, nil, sp.offset, len(s.buf))
	}
	end, err := sp.End()
	if err != nil {
		return nil, err
	}
	if end > len(s.buf) {
		return nil, errors.OutOfBounds(errors.PhaseSlice, nil, end, len(s.buf))
	}
	return s.buf[sp.offset:end:end], nil
}

// Sub returns a Source restricted to sp. Offsets into the result are relative
// to sp's start.
func (s Source) Sub(sp Span) (Source, error) {
	b, err := s.Slice(sp)
	if err != nil {
		return Source{}, err
	}
	return Source{buf: b}, nil
}

// ReadChunk copies exactly len(A) bytes starting at offset.
func ReadChunk[A ByteArray](s Source, offset int) (Chunk[A], error) {
	var c Chunk[A]
	b, err := s.Slice(NewSpan(offset, len(c.data)))
	if err != nil {
		return Chunk[A]{}, err
	}
	copy(c.slice(), b)
	return c, nil
}

// region applies the bounds gate of a decode: a negative offset is out of
// bounds, offset+n must not overflow, and the region must lie within the
// source.
func (s Source) region(phase errors.Phase, offset, n int) ([]byte, error) {
	if offset < 0 {
		return nil, errors.OutOfBounds(phase, nil, offset, len(s.buf))
	}
	end, ok := abi.SafeAdd(offset, n)
	if !ok {
		return nil, errors.Overflow(phase, nil, offset, "offset plus size")
	}
	if end > len(s.buf) {
		available := len(s.buf) - offset
		if available < 0 {
			available = 0
		}
		return nil, errors.InsufficientBytes(phase, n, available)
	}
	return s.buf[offset:end:end], nil
}
