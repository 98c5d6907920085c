package abio

import (
	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// Codec pairs a byte order with a decode limit.
type Codec struct {
	endian Endianness
	limit  Limit
}

// DefaultCodec is little endian with a 4 KiB limit.
func DefaultCodec() Codec {
	return Codec{endian: Little, limit: Limit(abi.DefaultLimit)}
}

func (c Codec) Endian() Endianness { return c.endian }

func (c Codec) Limit() Limit { return c.limit }

func (c Codec) IsLittleEndian() bool { return c.endian.Resolve() == Little }

func (c Codec) IsBigEndian() bool { return c.endian.Resolve() == Big }

func (c Codec) String() string {
	return "codec(" + c.endian.String() + ", limit=" + c.limit.String() + ")"
}

// CodecBuilder assembles a Codec. Both the byte order and the limit must be
// set explicitly before Build succeeds.
type CodecBuilder struct {
	endian    Endianness
	limit     Limit
	hasEndian bool
	hasLimit  bool
}

func NewCodecBuilder() *CodecBuilder {
	return &CodecBuilder{}
}

func (b *CodecBuilder) WithEndian(e Endianness) *CodecBuilder {
	b.endian = e
	b.hasEndian = true
	return b
}

func (b *CodecBuilder) WithLittleEndian() *CodecBuilder { return b.WithEndian(Little) }

func (b *CodecBuilder) WithBigEndian() *CodecBuilder { return b.WithEndian(Big) }

func (b *CodecBuilder) WithNativeEndian() *CodecBuilder { return b.WithEndian(Native) }

func (b *CodecBuilder) WithLimit(l Limit) *CodecBuilder {
	b.limit = l
	b.hasLimit = true
	return b
}

// WithoutLimit sets the limit to Unbounded. It counts as setting the limit.
func (b *CodecBuilder) WithoutLimit() *CodecBuilder { return b.WithLimit(Unbounded) }

// Build returns the Codec, or an invalid config error naming the first field
// that is unset or out of range.
func (b *CodecBuilder) Build() (Codec, error) {
	switch {
	case !b.hasEndian:
		return Codec{}, errors.InvalidConfig("byte order not set")
	case !b.hasLimit:
		return Codec{}, errors.InvalidConfig("limit not set")
	case !b.endian.Valid():
		return Codec{}, invalidOrder(b.endian)
	case b.limit < 0:
		return Codec{}, errors.InvalidConfig("limit must not be negative")
	}
	return Codec{endian: b.endian, limit: b.limit}, nil
}

// BuildOr returns the built Codec, or fallback if Build fails.
func (b *CodecBuilder) BuildOr(fallback Codec) Codec {
	c, err := b.Build()
	if err != nil {
		return fallback
	}
	return c
}

// DecodeWith is Decode using the codec's byte order and limit.
func DecodeWith[T any](c Codec, l *Layout[T], src Source, offset int) (Outcome[T], error) {
	return Decode(l, src, offset, c.endian, c.limit)
}

// DecodeSliceWith is DecodeSlice using the codec's byte order and limit.
func DecodeSliceWith[T any](c Codec, l *Layout[T], src Source, offset, count int) (Outcome[[]T], error) {
	return DecodeSlice(l, src, offset, count, c.endian, c.limit)
}

// EncodeWith appends v to dst in the codec's byte order.
func EncodeWith[T any](c Codec, dst []byte, l *Layout[T], v T) ([]byte, error) {
	return AppendEncoded(dst, l, v, c.endian)
}
