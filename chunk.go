package abio

import (
	"bytes"
	"unsafe"

	"github.com/wippyai/abio/errors"
)

// ByteArray is the set of array lengths a Chunk may carry. Named array types
// such as endian.U32BE satisfy it through their underlying type.
type ByteArray interface {
	~[1]byte | ~[2]byte | ~[3]byte | ~[4]byte | ~[6]byte | ~[8]byte |
		~[12]byte | ~[16]byte | ~[20]byte | ~[24]byte | ~[32]byte | ~[48]byte |
		~[64]byte | ~[128]byte | ~[256]byte | ~[512]byte |
		~[1024]byte | ~[2048]byte | ~[4096]byte
}

// Chunk owns exactly len(A) bytes. Its size equals len(A) and its alignment
// is 1, so it can be embedded in wire structs and certified without padding.
// A Chunk is immutable once constructed; it compares byte-wise.
type Chunk[A ByteArray] struct {
	data A
}

// ChunkFrom copies b into a new Chunk. It fails with a length mismatch
// unless len(b) is exactly len(A).
func ChunkFrom[A ByteArray](b []byte) (Chunk[A], error) {
	var c Chunk[A]
	if len(b) != len(c.data) {
		return Chunk[A]{}, errors.LengthMismatch(errors.PhaseSlice, len(c.data), len(b))
	}
	copy(c.slice(), b)
	return c, nil
}

// ChunkOf wraps an array literal.
func ChunkOf[A ByteArray](a A) Chunk[A] {
	return Chunk[A]{data: a}
}

// Bytes returns a view of the chunk's storage. Callers must not modify it.
func (c *Chunk[A]) Bytes() []byte {
	return c.slice()
}

// Array returns a copy of the chunk's bytes.
func (c Chunk[A]) Array() A {
	return c.data
}

func (c Chunk[A]) Len() int {
	return len(c.data)
}

func (c Chunk[A]) Equal(o Chunk[A]) bool {
	return c.data == o.data
}

// Compare orders chunks lexicographically by byte.
func (c Chunk[A]) Compare(o Chunk[A]) int {
	return bytes.Compare(c.slice(), o.slice())
}

// slice views the backing array. A has no core type, so it cannot be sliced
// with a[:] directly.
func (c *Chunk[A]) slice() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.data)), len(c.data))
}
