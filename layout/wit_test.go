package layout

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/wippyai/abio/errors"
	"go.bytecodealliance.org/wit"
)

func TestCalculatorPrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  uintptr
		align uintptr
		ok    bool
	}{
		{wit.U8{}, "u8", 1, 1, true},
		{wit.S8{}, "s8", 1, 1, true},
		{wit.U16{}, "u16", 2, 2, true},
		{wit.S16{}, "s16", 2, 2, true},
		{wit.U32{}, "u32", 4, 4, true},
		{wit.S32{}, "s32", 4, 4, true},
		{wit.U64{}, "u64", 8, 8, true},
		{wit.S64{}, "s64", 8, 8, true},
		{wit.F32{}, "f32", 4, 4, true},
		{wit.F64{}, "f64", 8, 8, true},
		{wit.Bool{}, "bool", 1, 1, false},
		{wit.Char{}, "char", 4, 4, false},
		{wit.String{}, "string", 8, 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := c.Shape(tc.typ)
			if s.Size != tc.size {
				t.Errorf("size: got %d, want %d", s.Size, tc.size)
			}
			if s.Align != tc.align {
				t.Errorf("align: got %d, want %d", s.Align, tc.align)
			}
			_, err := c.Certify(tc.typ)
			if (err == nil) != tc.ok {
				t.Errorf("Certify: got %v, want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestCalculatorRecord(t *testing.T) {
	c := NewCalculator()

	t.Run("dense", func(t *testing.T) {
		name := "point"
		typedef := &wit.TypeDef{
			Name: &name,
			Kind: &wit.Record{Fields: []wit.Field{
				{Name: "x", Type: wit.S32{}},
				{Name: "y", Type: wit.S32{}},
				{Name: "z", Type: wit.F64{}},
			}},
		}
		cert, err := c.Certify(typedef)
		if err != nil {
			t.Fatalf("Certify: %v", err)
		}
		if cert.Name != "point" {
			t.Errorf("name: got %q, want point", cert.Name)
		}
		if cert.Descriptor.Size != 16 || cert.Descriptor.Align != 8 {
			t.Errorf("got size %d align %d, want 16/8", cert.Descriptor.Size, cert.Descriptor.Align)
		}
		if cert.Scalars[2].Offset != 8 {
			t.Errorf("z offset: got %d, want 8", cert.Scalars[2].Offset)
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "a", Type: wit.U8{}},
			{Name: "b", Type: wit.U32{}},
			{Name: "c", Type: wit.U8{}},
		}}}

		s := c.Shape(typedef)
		if s.Fields[1].Offset != 4 {
			t.Errorf("field b offset: got %d, want 4", s.Fields[1].Offset)
		}
		if s.Size != 12 {
			t.Errorf("size: got %d, want 12", s.Size)
		}

		_, err := c.Certify(typedef)
		if !stderrors.Is(err, errors.ErrUnverifiablePadding) {
			t.Errorf("got %v, want unverifiable padding", err)
		}
	})

	t.Run("string_field", func(t *testing.T) {
		typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "id", Type: wit.U32{}},
			{Name: "name", Type: wit.String{}},
		}}}
		_, err := c.Certify(typedef)
		if !stderrors.Is(err, errors.ErrInvalidBitPattern) {
			t.Errorf("got %v, want invalid bit pattern", err)
		}
	})
}

func TestCalculatorTuple(t *testing.T) {
	c := NewCalculator()

	dense := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U32{}, wit.U32{}}}}
	if _, err := c.Certify(dense); err != nil {
		t.Errorf("dense tuple: %v", err)
	}

	sparse := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U64{}, wit.U8{}}}}
	s := c.Shape(sparse)
	if s.Size != 24 {
		t.Errorf("size: got %d, want 24", s.Size)
	}
	if _, err := c.Certify(sparse); err == nil {
		t.Error("sparse tuple must be refused")
	}
}

func TestCalculatorDiscriminated(t *testing.T) {
	c := NewCalculator()

	enum := &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "a"}, {Name: "b"}}}}
	option := &wit.TypeDef{Kind: &wit.Option{Type: wit.U32{}}}
	result := &wit.TypeDef{Kind: &wit.Result{OK: wit.U64{}}}
	variant := &wit.TypeDef{Kind: &wit.Variant{Cases: []wit.Case{
		{Name: "none"},
		{Name: "some", Type: wit.U16{}},
	}}}

	tests := []struct {
		name  string
		typ   wit.Type
		size  uintptr
		align uintptr
	}{
		{"enum", enum, 1, 1},
		{"option", option, 8, 4},
		{"result", result, 16, 8},
		{"variant", variant, 4, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := c.Shape(tc.typ)
			if s.Size != tc.size || s.Align != tc.align {
				t.Errorf("got size %d align %d, want %d/%d", s.Size, s.Align, tc.size, tc.align)
			}
			_, err := c.Certify(tc.typ)
			if !stderrors.Is(err, errors.ErrInvalidBitPattern) {
				t.Errorf("got %v, want invalid bit pattern", err)
			}
		})
	}
}

func TestCalculatorFlags(t *testing.T) {
	c := NewCalculator()

	makeFlags := func(n int) *wit.TypeDef {
		flags := make([]wit.Flag, n)
		for i := range flags {
			flags[i].Name = fmt.Sprintf("f%d", i)
		}
		return &wit.TypeDef{Kind: &wit.Flags{Flags: flags}}
	}

	tests := []struct {
		n    int
		size uintptr
		ok   bool
	}{
		{3, 1, false},
		{8, 1, true},
		{12, 2, false},
		{16, 2, true},
		{32, 4, true},
		{40, 8, false},
		{64, 8, true},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("flags_%d", tc.n), func(t *testing.T) {
			typ := makeFlags(tc.n)
			if s := c.Shape(typ); s.Size != tc.size {
				t.Errorf("size: got %d, want %d", s.Size, tc.size)
			}
			_, err := c.Certify(typ)
			if (err == nil) != tc.ok {
				t.Errorf("Certify: got %v, want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestCalculatorCache(t *testing.T) {
	c := NewCalculator()
	typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{{Name: "x", Type: wit.U32{}}}}}

	first := c.Shape(typedef)
	second := c.Shape(typedef)
	if first != second {
		t.Error("expected cached shape for the same type definition")
	}
}

func TestCalculatorList(t *testing.T) {
	c := NewCalculator()
	list := &wit.TypeDef{Kind: &wit.List{Type: wit.U32{}}}
	s := c.Shape(list)
	if s.Size != 8 || s.Align != 4 {
		t.Errorf("got size %d align %d, want 8/4", s.Size, s.Align)
	}
	if _, err := c.Certify(list); err == nil {
		t.Error("lists are pointers and must be refused")
	}
}
