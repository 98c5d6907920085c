package layout

import (
	"reflect"
	"strconv"
)

// UnresolvedLen marks an array whose length is a parameter that has not been
// bound yet.
const UnresolvedLen = -1

// Shape is the structural description of a type.
type Shape struct {
	Elem   *Shape
	Name   string
	Fields []Field
	Size   uintptr
	Align  uintptr
	Len    int
	Kind   Kind
	// Packed declares that fields are laid out back to back with alignment 1.
	Packed bool
	// Declared is set when Size, Align and field offsets were reported by a
	// compiler rather than left for Derive to compute.
	Declared bool
}

// Field is one member of a struct Shape.
type Field struct {
	Shape  *Shape
	Name   string
	Offset uintptr
}

// ScalarOf returns the Shape of a scalar kind with natural alignment.
func ScalarOf(k Kind) *Shape {
	size := k.Size()
	align := size
	switch k {
	case KindC64:
		align = 4
	case KindC128:
		align = 8
	}
	return &Shape{Name: k.String(), Kind: k, Size: size, Align: align}
}

// ArrayOf returns the Shape of n consecutive elems. Pass UnresolvedLen for a
// length that is still a parameter.
func ArrayOf(elem *Shape, n int) *Shape {
	name := "[N]"
	if n >= 0 {
		name = "[" + strconv.Itoa(n) + "]"
	}
	if elem != nil {
		name += elem.Name
	}
	return &Shape{Name: name, Kind: KindArray, Elem: elem, Len: n}
}

// StructOf returns the Shape of a struct whose offsets are left to Derive.
func StructOf(name string, fields ...Field) *Shape {
	return &Shape{Name: name, Kind: KindStruct, Fields: fields}
}

// PackedStructOf returns the Shape of a struct with a packed layout policy.
func PackedStructOf(name string, fields ...Field) *Shape {
	s := StructOf(name, fields...)
	s.Packed = true
	return s
}

// FromType describes a Go type. Kinds that cannot be certified still produce
// a Shape; Derive reports why they are refused.
func FromType(t reflect.Type) *Shape {
	if t == nil {
		return &Shape{Kind: KindInvalid, Name: "nil"}
	}

	s := &Shape{
		Name:     t.String(),
		Size:     t.Size(),
		Align:    uintptr(t.Align()),
		Declared: true,
	}

	switch t.Kind() {
	case reflect.Uint8:
		s.Kind = KindU8
	case reflect.Int8:
		s.Kind = KindS8
	case reflect.Uint16:
		s.Kind = KindU16
	case reflect.Int16:
		s.Kind = KindS16
	case reflect.Uint32:
		s.Kind = KindU32
	case reflect.Int32:
		s.Kind = KindS32
	case reflect.Uint64:
		s.Kind = KindU64
	case reflect.Int64:
		s.Kind = KindS64
	case reflect.Uint, reflect.Uintptr:
		s.Kind = unsignedBySize(t.Size())
	case reflect.Int:
		s.Kind = signedBySize(t.Size())
	case reflect.Float32:
		s.Kind = KindF32
	case reflect.Float64:
		s.Kind = KindF64
	case reflect.Complex64:
		s.Kind = KindC64
	case reflect.Complex128:
		s.Kind = KindC128
	case reflect.Bool:
		s.Kind = KindBool
	case reflect.Array:
		s.Kind = KindArray
		s.Elem = FromType(t.Elem())
		s.Len = t.Len()
	case reflect.Struct:
		s.Kind = KindStruct
		s.Fields = make([]Field, t.NumField())
		for i := range s.Fields {
			sf := t.Field(i)
			s.Fields[i] = Field{
				Name:   sf.Name,
				Offset: sf.Offset,
				Shape:  FromType(sf.Type),
			}
		}
	case reflect.Pointer, reflect.UnsafePointer, reflect.String, reflect.Slice,
		reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		s.Kind = KindPointer
	default:
		s.Kind = KindInvalid
	}

	return s
}

func unsignedBySize(size uintptr) Kind {
	if size == 4 {
		return KindU32
	}
	return KindU64
}

func signedBySize(size uintptr) Kind {
	if size == 4 {
		return KindS32
	}
	return KindS64
}
