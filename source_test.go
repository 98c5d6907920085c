package abio

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/abio/errors"
)

func TestSourceBasics(t *testing.T) {
	buf := []byte{10, 11, 12, 13, 14, 15}
	src := NewSource(buf)

	if src.Len() != 6 || src.IsEmpty() {
		t.Errorf("Len() = %d, IsEmpty() = %v", src.Len(), src.IsEmpty())
	}
	if !NewSource(nil).IsEmpty() {
		t.Error("nil source not empty")
	}
	if &src.Bytes()[0] != &buf[0] {
		t.Error("Bytes() copied the buffer")
	}
}

func TestSourceSlice(t *testing.T) {
	src := NewSource([]byte{10, 11, 12, 13, 14, 15})

	tests := []struct {
		name    string
		span    Span
		want    string
		wantErr *errors.Error
	}{
		{"whole", NewSpan(0, 6), "\x0a\x0b\x0c\x0d\x0e\x0f", nil},
		{"middle", NewSpan(2, 2), "\x0c\x0d", nil},
		{"empty_at_end", NewSpan(6, 0), "", nil},
		{"past_end", NewSpan(4, 3), "", errors.ErrOutOfBounds},
		{"offset_past_end", NewSpan(7, 0), "", errors.ErrOutOfBounds},
		{"negative_offset", NewSpan(-1, 2), "", errors.ErrOutOfBounds},
		{"negative_length", NewSpan(1, -2), "", errors.ErrInvalidInput},
		{"overflow", NewSpan(math.MaxInt, 1), "", errors.ErrOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := src.Slice(tc.span)
			if tc.wantErr != nil {
				if !stderrors.Is(err, tc.wantErr) {
					t.Fatalf("Slice error = %v, want %s", err, tc.wantErr.Kind)
				}
				if got != nil {
					t.Errorf("Slice returned %v alongside an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Slice: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Slice = %v, want %v", got, []byte(tc.want))
			}
			if cap(got) != len(got) {
				t.Errorf("cap = %d, want %d", cap(got), len(got))
			}
		})
	}
}

func TestSourceSub(t *testing.T) {
	src := NewSource([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	sub, err := src.Sub(NewSpan(4, 4))
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if sub.Len() != 4 {
		t.Fatalf("sub.Len() = %d", sub.Len())
	}
	b, err := sub.Slice(NewSpan(0, 2))
	if err != nil || string(b) != "\x04\x05" {
		t.Errorf("sub.Slice = %v, %v", b, err)
	}
	if _, err := sub.Slice(NewSpan(3, 2)); !stderrors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("sub does not stop at its own end: %v", err)
	}
	if _, err := src.Sub(NewSpan(6, 4)); err == nil {
		t.Error("Sub past end succeeded")
	}
}

func TestReadChunk(t *testing.T) {
	src := NewSource([]byte{1, 2, 3, 4, 5, 6})

	c, err := ReadChunk[[4]byte](src, 2)
	if err != nil {
		t.Fatalf("ReadChunk: %v", err)
	}
	if c.Array() != [4]byte{3, 4, 5, 6} {
		t.Errorf("got %v", c.Array())
	}

	if _, err := ReadChunk[[4]byte](src, 3); !stderrors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("short read error = %v, want out of bounds", err)
	}
	if _, err := ReadChunk[[2]byte](src, -1); !stderrors.Is(err, errors.ErrOutOfBounds) {
		t.Errorf("negative offset error = %v, want out of bounds", err)
	}
	if _, err := ReadChunk[[2]byte](src, math.MaxInt); !stderrors.Is(err, errors.ErrOverflow) {
		t.Errorf("overflowing offset error = %v, want overflow", err)
	}
}
