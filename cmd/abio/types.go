package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wippyai/abio"
)

// valueType decodes and formats values of one primitive type.
type valueType struct {
	size   func() int
	decode func(src abio.Source, offset, count int, codec abio.Codec) ([]string, int, error)
}

func primitive[T abio.Primitive]() valueType {
	return valueType{
		size: func() int { return abio.Of[T]().Size() },
		decode: func(src abio.Source, offset, count int, codec abio.Codec) ([]string, int, error) {
			out, err := abio.DecodeSliceWith(codec, abio.Of[T](), src, offset, count)
			if err != nil {
				return nil, 0, err
			}
			values := make([]string, len(out.Value))
			for i, v := range out.Value {
				values[i] = fmt.Sprint(v)
			}
			return values, out.Consumed, nil
		},
	}
}

var valueTypes = map[string]valueType{
	"u8":  primitive[uint8](),
	"i8":  primitive[int8](),
	"u16": primitive[uint16](),
	"i16": primitive[int16](),
	"u32": primitive[uint32](),
	"i32": primitive[int32](),
	"u64": primitive[uint64](),
	"i64": primitive[int64](),
	"f32": primitive[float32](),
	"f64": primitive[float64](),
}

// typeOrder lists the types by width, as the inspector displays them.
var typeOrder = []string{"u8", "i8", "u16", "i16", "u32", "i32", "f32", "u64", "i64", "f64"}

func lookupType(name string) (valueType, bool) {
	t, ok := valueTypes[strings.ToLower(name)]
	return t, ok
}

func typeList() string {
	names := make([]string, 0, len(valueTypes))
	for name := range valueTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
