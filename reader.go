package abio

import (
	"github.com/wippyai/abio/errors"
)

// Reader decodes consecutive values from a Source, advancing by the number
// of bytes each read consumed. A failed read does not move the cursor.
// A Reader is not safe for concurrent use.
type Reader struct {
	src   Source
	codec Codec
	pos   int
}

func NewReader(src Source, c Codec) *Reader {
	return &Reader{src: src, codec: c}
}

func (r *Reader) Pos() int { return r.pos }

func (r *Reader) Remaining() int { return r.src.Len() - r.pos }

func (r *Reader) Codec() Codec { return r.codec }

// Reset moves the cursor back to the start of the source.
func (r *Reader) Reset() { r.pos = 0 }

// Skip advances the cursor by n bytes without decoding them.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadSpan(n)
	return err
}

// ReadSpan consumes n bytes and returns the span they occupy in the source.
func (r *Reader) ReadSpan(n int) (Span, error) {
	if n < 0 {
		return Span{}, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Value(n).
			Detail("negative length %d", n).
			Build()
	}
	if err := r.codec.limit.check(errors.PhaseDecode, n); err != nil {
		return Span{}, err
	}
	if _, err := r.src.region(errors.PhaseDecode, r.pos, n); err != nil {
		return Span{}, err
	}
	sp := NewSpan(r.pos, n)
	r.pos += n
	return sp, nil
}

// ReadBytes consumes n bytes and returns them without copying.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	sp, err := r.ReadSpan(n)
	if err != nil {
		return nil, err
	}
	return r.src.Slice(sp)
}

// ReadValue decodes one T at the cursor.
func ReadValue[T any](r *Reader, l *Layout[T]) (T, error) {
	out, err := Decode(l, r.src, r.pos, r.codec.endian, r.codec.limit)
	if err != nil {
		var zero T
		return zero, err
	}
	r.pos += out.Consumed
	return out.Value, nil
}

// ReadSlice decodes count consecutive values of T at the cursor.
func ReadSlice[T any](r *Reader, l *Layout[T], count int) ([]T, error) {
	out, err := DecodeSlice(l, r.src, r.pos, count, r.codec.endian, r.codec.limit)
	if err != nil {
		return nil, err
	}
	r.pos += out.Consumed
	return out.Value, nil
}

// NextChunk copies the next len(A) bytes into a Chunk.
func NextChunk[A ByteArray](r *Reader) (Chunk[A], error) {
	var c Chunk[A]
	if err := r.codec.limit.check(errors.PhaseDecode, c.Len()); err != nil {
		return c, err
	}
	c, err := ReadChunk[A](r.src, r.pos)
	if err != nil {
		return c, err
	}
	r.pos += c.Len()
	return c, nil
}
