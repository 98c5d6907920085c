package layout

// Kind classifies a Shape.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindC64
	KindC128
	KindBool
	KindChar
	KindEnum
	KindPointer
	KindArray
	KindStruct
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindU8:      "u8",
	KindS8:      "s8",
	KindU16:     "u16",
	KindS16:     "s16",
	KindU32:     "u32",
	KindS32:     "s32",
	KindU64:     "u64",
	KindS64:     "s64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindC64:     "c64",
	KindC128:    "c128",
	KindBool:    "bool",
	KindChar:    "char",
	KindEnum:    "enum",
	KindPointer: "pointer",
	KindArray:   "array",
	KindStruct:  "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsNumeric reports whether every bit pattern of k is a valid value.
func (k Kind) IsNumeric() bool {
	return k >= KindU8 && k <= KindC128
}

// Size returns the byte width of a numeric or restricted scalar kind, or 0
// for aggregates and pointer-like kinds.
func (k Kind) Size() uintptr {
	switch k {
	case KindU8, KindS8, KindBool:
		return 1
	case KindU16, KindS16:
		return 2
	case KindU32, KindS32, KindF32, KindChar:
		return 4
	case KindU64, KindS64, KindF64, KindC64:
		return 8
	case KindC128:
		return 16
	default:
		return 0
	}
}

// swapWidth is the width of each independently byte-swapped unit. Complex
// numbers swap their real and imaginary halves separately.
func (k Kind) swapWidth() uintptr {
	switch k {
	case KindC64:
		return 4
	case KindC128:
		return 8
	default:
		return k.Size()
	}
}
