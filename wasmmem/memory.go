package wasmmem

import (
	"github.com/wippyai/abio"
	"github.com/wippyai/abio/errors"
)

// Memory is the read side of wazero's api.Memory.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Size() uint32
}

// WritableMemory adds the write side of wazero's api.Memory.
type WritableMemory interface {
	Memory
	Write(offset uint32, v []byte) bool
}

// Source returns the whole linear memory as a Source, without copying.
func Source(mem Memory) (abio.Source, error) {
	if mem == nil {
		return abio.Source{}, errors.NilPointer(errors.PhaseSlice, nil, "wasmmem.Memory")
	}
	data, ok := mem.Read(0, mem.Size())
	if !ok {
		return abio.Source{}, errors.OutOfBounds(errors.PhaseSlice, nil, int(mem.Size()), int(mem.Size()))
	}
	return abio.NewSource(data), nil
}

// Region returns the bytes of sp as a Source, without copying. sp is in guest
// addresses.
func Region(mem Memory, sp abio.Span) (abio.Source, error) {
	if mem == nil {
		return abio.Source{}, errors.NilPointer(errors.PhaseSlice, nil, "wasmmem.Memory")
	}
	end, err := sp.End()
	if err != nil {
		return abio.Source{}, err
	}
	size := int(mem.Size())
	if end > size {
		return abio.Source{}, errors.OutOfBounds(errors.PhaseSlice, nil, end, size)
	}
	data, ok := mem.Read(uint32(sp.Offset()), uint32(sp.Len()))
	if !ok {
		return abio.Source{}, errors.OutOfBounds(errors.PhaseSlice, nil, end, size)
	}
	return abio.NewSource(data), nil
}

// Load decodes a T stored little endian at the guest address ptr.
func Load[T any](mem Memory, l *abio.Layout[T], ptr uint32, limit abio.Limit) (T, error) {
	var zero T
	src, err := Source(mem)
	if err != nil {
		return zero, err
	}
	out, err := abio.Decode(l, src, int(ptr), abio.Little, limit)
	if err != nil {
		return zero, err
	}
	return out.Value, nil
}

// LoadSlice decodes count consecutive values starting at ptr.
func LoadSlice[T any](mem Memory, l *abio.Layout[T], ptr uint32, count int, limit abio.Limit) ([]T, error) {
	src, err := Source(mem)
	if err != nil {
		return nil, err
	}
	out, err := abio.DecodeSlice(l, src, int(ptr), count, abio.Little, limit)
	if err != nil {
		return nil, err
	}
	return out.Value, nil
}

// Store writes v little endian at the guest address ptr.
func Store[T any](mem WritableMemory, l *abio.Layout[T], ptr uint32, v T) error {
	if mem == nil {
		return errors.NilPointer(errors.PhaseEncode, nil, "wasmmem.WritableMemory")
	}
	data, err := abio.AppendEncoded(nil, l, v, abio.Little)
	if err != nil {
		return err
	}
	if !mem.Write(ptr, data) {
		return errors.OutOfBounds(errors.PhaseEncode, nil, int(ptr)+len(data), int(mem.Size()))
	}
	return nil
}
