package layout

import (
	"strconv"

	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// Derive certifies s or refuses it with the first unsatisfied condition.
// It is a pure function of s.
func Derive(s *Shape) (*Certificate, error) {
	if s == nil {
		return nil, errors.NilPointer(errors.PhaseCertify, nil, "*layout.Shape")
	}

	desc, scalars, err := derive(s, nil)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.GoType == "" {
			e.GoType = s.Name
		}
		return nil, err
	}

	if err := desc.Validate(); err != nil {
		e := err.(*errors.Error)
		e.GoType = s.Name
		return nil, e
	}

	return &Certificate{
		Name:       s.Name,
		Descriptor: desc,
		Scalars:    scalars,
	}, nil
}

func derive(s *Shape, path []string) (Descriptor, []Scalar, error) {
	if s == nil {
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Path(path...).
			Detail("missing shape").
			Build()
	}

	switch {
	case s.Kind.IsNumeric():
		return deriveScalar(s, path)
	case s.Kind == KindArray:
		return deriveArray(s, path)
	case s.Kind == KindStruct:
		return deriveStruct(s, path)
	case s.Kind == KindBool, s.Kind == KindChar, s.Kind == KindEnum:
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindInvalidBitPattern).
			Path(path...).
			GoType(s.Name).
			Detail("%s admits invalid bit patterns", s.Kind).
			Build()
	case s.Kind == KindPointer:
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindInvalidBitPattern).
			Path(path...).
			GoType(s.Name).
			Detail("pointer-like values are not plain data").
			Build()
	default:
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Path(path...).
			GoType(s.Name).
			Detail("unsupported kind %s", s.Kind).
			Build()
	}
}

func deriveScalar(s *Shape, path []string) (Descriptor, []Scalar, error) {
	size := s.Kind.Size()
	if s.Size != 0 && s.Size != size {
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Path(path...).
			GoType(s.Name).
			Detail("%s declared with size %d", s.Kind, s.Size).
			Build()
	}

	align := s.Align
	if align == 0 {
		align = ScalarOf(s.Kind).Align
	}

	desc := Descriptor{Size: size, Align: align, AllBitPatternsValid: true}

	w := s.Kind.swapWidth()
	if w <= 1 {
		return desc, nil, nil
	}
	scalars := make([]Scalar, 0, size/w)
	for off := uintptr(0); off < size; off += w {
		scalars = append(scalars, Scalar{Offset: off, Size: w, Kind: s.Kind})
	}
	return desc, scalars, nil
}

func deriveArray(s *Shape, path []string) (Descriptor, []Scalar, error) {
	if s.Len < 0 {
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindUnverifiableGeneric).
			Path(path...).
			GoType(s.Name).
			Detail("array length is an unresolved parameter").
			Build()
	}

	elem, elemScalars, err := derive(s.Elem, extend(path, "[]"))
	if err != nil {
		return Descriptor{}, nil, err
	}

	size, ok := abi.SafeMulUintptr(elem.Size, uintptr(s.Len))
	if !ok || size > abi.MaxSize {
		return Descriptor{}, nil, errors.Overflow(errors.PhaseCertify, path, s.Len, "array size")
	}
	if s.Declared && s.Size != size {
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindUnverifiablePadding).
			Path(path...).
			GoType(s.Name).
			Detail("declared size %d, elements occupy %d", s.Size, size).
			Build()
	}

	var scalars []Scalar
	if len(elemScalars) > 0 {
		scalars = make([]Scalar, 0, len(elemScalars)*s.Len)
		for i := 0; i < s.Len; i++ {
			base := uintptr(i) * elem.Size
			for _, sc := range elemScalars {
				sc.Offset += base
				scalars = append(scalars, sc)
			}
		}
	}

	return Descriptor{
		Size:                size,
		Align:               elem.Align,
		AllBitPatternsValid: true,
	}, scalars, nil
}

func deriveStruct(s *Shape, path []string) (Descriptor, []Scalar, error) {
	if len(s.Fields) == 0 {
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindInvalidLayout).
			Path(path...).
			GoType(s.Name).
			Detail("struct has no fields").
			Build()
	}

	var scalars []Scalar
	offset := uintptr(0)
	maxAlign := uintptr(1)

	for i, f := range s.Fields {
		name := f.Name
		if name == "" {
			name = strconv.Itoa(i)
		}
		fieldPath := extend(path, name)

		if f.Shape != nil && f.Shape.Kind == KindArray && f.Shape.Len < 0 && !s.Packed {
			return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindUnverifiableGeneric).
				Path(fieldPath...).
				GoType(s.Name).
				Detail("padding around a field of unresolved length cannot be verified without a packed layout").
				Build()
		}

		fd, fs, err := derive(f.Shape, fieldPath)
		if err != nil {
			return Descriptor{}, nil, err
		}

		if s.Declared && f.Offset != offset {
			return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindUnverifiablePadding).
				Path(fieldPath...).
				GoType(s.Name).
				Detail("field declared at offset %d, previous field ends at %d", f.Offset, offset).
				Build()
		}
		if !s.Packed && !abi.IsAligned(offset, fd.Align) {
			return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindUnverifiablePadding).
				Path(fieldPath...).
				GoType(s.Name).
				Detail("field at offset %d requires %d-byte alignment", offset, fd.Align).
				Build()
		}

		for _, sc := range fs {
			sc.Offset += offset
			scalars = append(scalars, sc)
		}

		offset += fd.Size
		if offset > abi.MaxSize {
			return Descriptor{}, nil, errors.Overflow(errors.PhaseCertify, fieldPath, offset, "struct size")
		}
		if fd.Align > maxAlign {
			maxAlign = fd.Align
		}
	}

	align := maxAlign
	if s.Packed {
		align = 1
		if s.Declared && s.Align != 0 {
			align = s.Align
		}
	} else if s.Declared && s.Align != maxAlign {
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindUnverifiablePadding).
			Path(path...).
			GoType(s.Name).
			Detail("alignment %d differs from largest field alignment %d", s.Align, maxAlign).
			Build()
	}

	if !abi.IsAligned(offset, align) || (s.Declared && s.Size != offset) {
		size := abi.AlignTo(offset, align)
		if s.Declared {
			size = s.Size
		}
		return Descriptor{}, nil, errors.New(errors.PhaseCertify, errors.KindUnverifiablePadding).
			Path(path...).
			GoType(s.Name).
			Detail("fields occupy %d of %d bytes", offset, size).
			Build()
	}

	return Descriptor{
		Size:                offset,
		Align:               align,
		AllBitPatternsValid: true,
	}, scalars, nil
}

func extend(path []string, name string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = name
	return out
}
