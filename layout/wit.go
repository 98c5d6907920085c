package layout

import (
	"github.com/wippyai/abio/internal/abi"
	"go.bytecodealliance.org/wit"
)

// Calculator builds Shapes for WIT types using canonical ABI offsets.
// It caches named type definitions and is not safe for concurrent use.
type Calculator struct {
	cache map[*wit.TypeDef]*Shape
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]*Shape),
	}
}

// Certify derives a certificate for a WIT type. Records and tuples of
// numeric fields pass when the canonical ABI layout has no padding.
func (c *Calculator) Certify(t wit.Type) (*Certificate, error) {
	return Derive(c.Shape(t))
}

func (c *Calculator) Shape(t wit.Type) *Shape {
	switch typ := t.(type) {
	case wit.U8:
		return ScalarOf(KindU8)
	case wit.S8:
		return ScalarOf(KindS8)
	case wit.Bool:
		return ScalarOf(KindBool)
	case wit.U16:
		return ScalarOf(KindU16)
	case wit.S16:
		return ScalarOf(KindS16)
	case wit.U32:
		return ScalarOf(KindU32)
	case wit.S32:
		return ScalarOf(KindS32)
	case wit.F32:
		return ScalarOf(KindF32)
	case wit.Char:
		return ScalarOf(KindChar)
	case wit.U64:
		return ScalarOf(KindU64)
	case wit.S64:
		return ScalarOf(KindS64)
	case wit.F64:
		return ScalarOf(KindF64)
	case wit.String:
		return &Shape{Name: "string", Kind: KindPointer, Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.typeDef(typ)
	default:
		return &Shape{Name: "unknown", Kind: KindInvalid}
	}
}

func (c *Calculator) typeDef(t *wit.TypeDef) *Shape {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var s *Shape

	switch kind := t.Kind.(type) {
	case *wit.Record:
		s = c.record(kind)
	case *wit.Tuple:
		s = c.tuple(kind)
	case *wit.Flags:
		s = c.flags(kind)
	case *wit.Enum:
		size := abi.DiscriminantSize(len(kind.Cases))
		s = &Shape{Name: "enum", Kind: KindEnum, Size: size, Align: size}
	case *wit.Variant:
		s = c.variant(kind)
	case *wit.Option:
		s = c.tagged("option", []wit.Type{kind.Type})
	case *wit.Result:
		s = c.tagged("result", []wit.Type{kind.OK, kind.Err})
	case *wit.List:
		s = &Shape{Name: "list", Kind: KindPointer, Size: 8, Align: 4}
	case wit.Type:
		inner := *c.Shape(kind)
		s = &inner
	default:
		s = &Shape{Name: "unknown", Kind: KindInvalid}
	}

	if t.Name != nil {
		s.Name = *t.Name
	}

	c.cache[t] = s
	return s
}

// record lays out fields as the canonical ABI does. The resulting Shape is
// Declared, so any alignment gap shows up as padding in Derive.
func (c *Calculator) record(r *wit.Record) *Shape {
	fields := make([]Field, len(r.Fields))
	types := make([]wit.Type, len(r.Fields))
	for i, f := range r.Fields {
		fields[i].Name = f.Name
		types[i] = f.Type
	}
	return c.aggregate("record", fields, types)
}

func (c *Calculator) tuple(t *wit.Tuple) *Shape {
	return c.aggregate("tuple", make([]Field, len(t.Types)), t.Types)
}

func (c *Calculator) aggregate(name string, fields []Field, types []wit.Type) *Shape {
	maxAlign := uintptr(1)
	offset := uintptr(0)

	for i, typ := range types {
		fs := c.Shape(typ)
		offset = abi.AlignTo(offset, fs.Align)
		fields[i].Offset = offset
		fields[i].Shape = fs

		if fs.Align > maxAlign {
			maxAlign = fs.Align
		}

		offset += fs.Size
	}

	return &Shape{
		Name:     name,
		Kind:     KindStruct,
		Fields:   fields,
		Size:     abi.AlignTo(offset, maxAlign),
		Align:    maxAlign,
		Declared: true,
	}
}

// flags is certified only when every bit of its storage names a flag.
func (c *Calculator) flags(f *wit.Flags) *Shape {
	switch len(f.Flags) {
	case 8:
		return ScalarOf(KindU8)
	case 16:
		return ScalarOf(KindU16)
	case 32:
		return ScalarOf(KindU32)
	case 64:
		return ScalarOf(KindU64)
	}

	n := len(f.Flags)
	var size uintptr
	switch {
	case n <= 8:
		size = 1
	case n <= 16:
		size = 2
	case n <= 32:
		size = 4
	default:
		size = uintptr((n+31)/32) * 4
	}
	align := size
	if align > 4 {
		align = 4
	}
	return &Shape{Name: "flags", Kind: KindEnum, Size: size, Align: align}
}

func (c *Calculator) variant(v *wit.Variant) *Shape {
	types := make([]wit.Type, len(v.Cases))
	for i, cs := range v.Cases {
		types[i] = cs.Type
	}
	s := c.tagged("variant", types)
	disc := abi.DiscriminantSize(len(v.Cases))
	if disc > s.Align {
		s.Align = disc
		s.Size = abi.AlignTo(s.Size, disc)
	}
	return s
}

// tagged sizes a discriminated union: a tag followed by the largest payload.
func (c *Calculator) tagged(name string, payloads []wit.Type) *Shape {
	maxAlign := uintptr(1)
	maxSize := uintptr(0)
	for _, p := range payloads {
		if p == nil {
			continue
		}
		ps := c.Shape(p)
		if ps.Align > maxAlign {
			maxAlign = ps.Align
		}
		if ps.Size > maxSize {
			maxSize = ps.Size
		}
	}

	payloadOffset := abi.AlignTo(1, maxAlign)
	return &Shape{
		Name:  name,
		Kind:  KindEnum,
		Size:  abi.AlignTo(payloadOffset+maxSize, maxAlign),
		Align: maxAlign,
	}
}
