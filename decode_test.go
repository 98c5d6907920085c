package abio

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/abio/errors"
)

// alignedBuf returns n zero bytes whose first byte is 8-byte aligned.
func alignedBuf(n int) []byte {
	words := make([]uint64, (n+7)/8+1)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}

func TestDecodeEndianness(t *testing.T) {
	src := NewSource([]byte{0x01, 0x02, 0x03, 0x04})
	u32 := Of[uint32]()

	tests := []struct {
		order Endianness
		want  uint32
	}{
		{Big, 16909060},
		{Little, 67305985},
	}

	for _, tc := range tests {
		t.Run(tc.order.String(), func(t *testing.T) {
			out, err := Decode(u32, src, 0, tc.order, Unbounded)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if out.Value != tc.want {
				t.Errorf("got %d, want %d", out.Value, tc.want)
			}
			if out.Consumed != 4 {
				t.Errorf("Consumed = %d, want 4", out.Consumed)
			}
		})
	}

	native, err := Decode(u32, src, 0, Native, Unbounded)
	if err != nil {
		t.Fatal(err)
	}
	host, _ := Decode(u32, src, 0, HostOrder, Unbounded)
	if native.Value != host.Value {
		t.Errorf("native %d differs from host order %d", native.Value, host.Value)
	}
}

func TestDecodeWidths(t *testing.T) {
	src := NewSource([]byte{0x80, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})

	if out, err := Decode(Of[int8](), src, 0, Big, Unbounded); err != nil || out.Value != -128 {
		t.Errorf("int8 = %d, %v", out.Value, err)
	}
	if out, err := Decode(Of[uint16](), src, 0, Big, Unbounded); err != nil || out.Value != 0x8001 {
		t.Errorf("uint16 = %#x, %v", out.Value, err)
	}
	if out, err := Decode(Of[int64](), src, 0, Little, Unbounded); err != nil || out.Value != 0x0706050403020180 {
		t.Errorf("int64 = %#x, %v", out.Value, err)
	}

	f := math.Float64bits(1.5)
	fb := make([]byte, 8)
	for i := range fb {
		fb[i] = byte(f >> (56 - 8*i))
	}
	if out, err := Decode(Of[float64](), NewSource(fb), 0, Big, Unbounded); err != nil || out.Value != 1.5 {
		t.Errorf("float64 = %v, %v", out.Value, err)
	}
}

func TestDecodeTruncation(t *testing.T) {
	full := make([]byte, headerLayout.Size())
	for n := 0; n < len(full); n++ {
		_, err := Decode(headerLayout, NewSource(full[:n]), 0, Native, Unbounded)
		if !stderrors.Is(err, errors.ErrInsufficientBytes) {
			t.Fatalf("len %d: error = %v, want insufficient bytes", n, err)
		}
	}

	// Region starts inside the source but runs past its end.
	_, err := Decode(Of[uint32](), NewSource(full), len(full)-2, Native, Unbounded)
	if !stderrors.Is(err, errors.ErrInsufficientBytes) {
		t.Errorf("tail read: %v", err)
	}
	// Region starts past the end.
	_, err = Decode(Of[uint32](), NewSource(full), len(full)+10, Native, Unbounded)
	if !stderrors.Is(err, errors.ErrInsufficientBytes) {
		t.Errorf("offset past end: %v", err)
	}
}

func TestDecodeGateOrder(t *testing.T) {
	u32 := Of[uint32]()

	tests := []struct {
		name   string
		src    Source
		offset int
		order  Endianness
		limit  Limit
		want   *errors.Error
	}{
		// An empty source would fail bounds; the limit must win.
		{"limit_before_bounds", NewSource(nil), 0, Big, Limit(3), errors.ErrLimitExceeded},
		{"limit_before_offset", NewSource(nil), -5, Big, Limit(2), errors.ErrLimitExceeded},
		{"negative_limit", NewSource(make([]byte, 8)), 0, Big, Limit(-1), errors.ErrInvalidConfig},
		{"invalid_order", NewSource(make([]byte, 8)), 0, Endianness(9), Unbounded, errors.ErrInvalidConfig},
		{"negative_offset", NewSource(make([]byte, 8)), -1, Big, Unbounded, errors.ErrOutOfBounds},
		{"offset_overflow", NewSource(make([]byte, 8)), math.MaxInt - 1, Big, Unbounded, errors.ErrOverflow},
		{"insufficient", NewSource(make([]byte, 3)), 0, Big, Limit(4), errors.ErrInsufficientBytes},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Decode(u32, tc.src, tc.offset, tc.order, tc.limit)
			if !stderrors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %s", err, tc.want.Kind)
			}
			if out != (Outcome[uint32]{}) {
				t.Errorf("partial outcome %+v returned with error", out)
			}
		})
	}
}

func TestDecodeLimitBoundary(t *testing.T) {
	src := NewSource(make([]byte, 16))
	if _, err := Decode(headerLayout, src, 0, Native, Limit(16)); err != nil {
		t.Errorf("limit equal to size: %v", err)
	}
	if _, err := Decode(headerLayout, src, 0, Native, Limit(15)); !stderrors.Is(err, errors.ErrLimitExceeded) {
		t.Errorf("limit one below size: %v", err)
	}
}

func TestDecodeNilLayout(t *testing.T) {
	_, err := Decode[uint32](nil, NewSource(make([]byte, 4)), 0, Native, Unbounded)
	if !stderrors.Is(err, errors.ErrNilPointer) {
		t.Errorf("error = %v, want nil pointer", err)
	}
}

func TestDecodeMisalignedCopies(t *testing.T) {
	buf := alignedBuf(24)
	want := wireHeader{Magic: 0xCAFEBABE, Version: 2, Flags: 0x8001, Length: 1 << 40}
	copy(buf[1:], AsBytes(headerLayout, &want))

	out, err := Decode(headerLayout, NewSource(buf), 1, Native, Unbounded)
	if err != nil {
		t.Fatalf("Decode at odd offset: %v", err)
	}
	if diff := cmp.Diff(want, out.Value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	want := wireRecord{
		Header:  wireHeader{Magic: 0x7F454C46, Version: 1, Flags: 3, Length: 48},
		Values:  [4]int32{-1, 0, 1, math.MaxInt32},
		Scale:   -0.25,
		Samples: [2]float32{3.5, -7},
	}

	for _, order := range []Endianness{Native, Little, Big} {
		t.Run(order.String(), func(t *testing.T) {
			enc, err := AppendEncoded(nil, recordLayout, want, order)
			if err != nil {
				t.Fatalf("AppendEncoded: %v", err)
			}
			if len(enc) != recordLayout.Size() {
				t.Fatalf("encoded %d bytes, want %d", len(enc), recordLayout.Size())
			}
			snapshot := bytes.Clone(enc)

			out, err := Decode(recordLayout, NewSource(enc), 0, order, Limit(64))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(want, out.Value); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if !bytes.Equal(enc, snapshot) {
				t.Error("Decode modified its source")
			}
		})
	}
}

func TestDecodeNativeMatchesAsBytes(t *testing.T) {
	v := wireHeader{Magic: 1, Version: 2, Flags: 3, Length: 4}
	out, err := Decode(headerLayout, NewSource(AsBytes(headerLayout, &v)), 0, Native, Unbounded)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != v {
		t.Errorf("got %+v, want %+v", out.Value, v)
	}
}

func TestDecodeBigEndianStruct(t *testing.T) {
	raw := []byte{
		0x7F, 0x45, 0x4C, 0x46, // magic
		0x00, 0x02, // version
		0x80, 0x00, // flags
		0, 0, 0, 0, 0, 0, 0x01, 0x00, // length
	}
	out, err := Decode(headerLayout, NewSource(raw), 0, Big, Limit(16))
	if err != nil {
		t.Fatal(err)
	}
	want := wireHeader{Magic: 0x7F454C46, Version: 2, Flags: 0x8000, Length: 256}
	if diff := cmp.Diff(want, out.Value); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeSlice(t *testing.T) {
	raw := []byte{0, 1, 0, 2, 0, 3, 0xFF, 0xFF}
	src := NewSource(raw)
	u16 := Of[uint16]()

	out, err := DecodeSlice(u16, src, 0, 3, Big, Limit(6))
	if err != nil {
		t.Fatalf("DecodeSlice: %v", err)
	}
	if diff := cmp.Diff([]uint16{1, 2, 3}, out.Value); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if out.Consumed != 6 {
		t.Errorf("Consumed = %d, want 6", out.Consumed)
	}

	empty, err := DecodeSlice(u16, src, 8, 0, Big, Unbounded)
	if err != nil || len(empty.Value) != 0 || empty.Consumed != 0 {
		t.Errorf("empty slice: %+v, %v", empty, err)
	}

	tests := []struct {
		name   string
		offset int
		count  int
		limit  Limit
		want   *errors.Error
	}{
		{"total_over_limit", 0, 4, Limit(6), errors.ErrLimitExceeded},
		{"huge_count_over_limit", 0, math.MaxInt / 4, Limit(4096), errors.ErrLimitExceeded},
		{"count_overflow", 0, math.MaxInt/2 + 1, Unbounded, errors.ErrOverflow},
		{"negative_count", 0, -1, Unbounded, errors.ErrInvalidInput},
		{"short_source", 4, 3, Unbounded, errors.ErrInsufficientBytes},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := DecodeSlice(u16, src, tc.offset, tc.count, Big, tc.limit)
			if !stderrors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %s", err, tc.want.Kind)
			}
			if out.Value != nil {
				t.Error("values returned alongside an error")
			}
		})
	}
}

func TestAsBytesIdempotent(t *testing.T) {
	v := wireHeader{Magic: 0xDEADBEEF, Version: 7, Flags: 1, Length: 99}
	before := v

	a := AsBytes(headerLayout, &v)
	b := AsBytes(headerLayout, &v)
	if !bytes.Equal(a, b) {
		t.Error("AsBytes returned different bytes on a second call")
	}
	if len(a) != headerLayout.Size() {
		t.Errorf("len = %d, want %d", len(a), headerLayout.Size())
	}
	if &a[0] != (*byte)(unsafe.Pointer(&v)) {
		t.Error("AsBytes copied the value")
	}
	if v != before {
		t.Error("AsBytes modified the value")
	}
	if AsBytes(headerLayout, nil) != nil || AsBytes[wireHeader](nil, &v) != nil {
		t.Error("AsBytes with nil input returned bytes")
	}
}

func TestAppendEncoded(t *testing.T) {
	u32 := Of[uint32]()
	prefix := []byte{0xAA}

	got, err := AppendEncoded(prefix, u32, 0x01020304, Big)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0xAA, 1, 2, 3, 4}) {
		t.Errorf("big = %v", got)
	}

	got, err = AppendEncoded(nil, u32, 0x01020304, Little)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{4, 3, 2, 1}) {
		t.Errorf("little = %v", got)
	}

	if _, err := AppendEncoded(nil, u32, 1, Endianness(4)); !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("invalid order: %v", err)
	}
	if _, err := AppendEncoded[uint32](nil, nil, 1, Big); !stderrors.Is(err, errors.ErrNilPointer) {
		t.Errorf("nil layout: %v", err)
	}
}

func BenchmarkDecodeHeader(b *testing.B) {
	v := wireHeader{Magic: 1, Version: 2, Flags: 3, Length: 4}
	enc, _ := AppendEncoded(nil, headerLayout, v, Big)
	src := NewSource(enc)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Decode(headerLayout, src, 0, Big, Limit(64)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeNativeAligned(b *testing.B) {
	buf := alignedBuf(16)
	src := NewSource(buf)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Decode(headerLayout, src, 0, Native, Unbounded); err != nil {
			b.Fatal(err)
		}
	}
}
