package abi

import "math"

// SafeAdd returns a+b for non-negative operands, reporting false on overflow.
func SafeAdd(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// SafeMul returns a*b for non-negative operands, reporting false on overflow.
func SafeMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

func SafeMulUintptr(a, b uintptr) (uintptr, bool) {
	if b != 0 && a > ^uintptr(0)/b {
		return 0, false
	}
	return a * b, true
}

func AlignTo(offset, align uintptr) uintptr {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// IsAligned reports whether addr is a multiple of align. Zero alignment is
// treated as 1.
func IsAligned(addr, align uintptr) bool {
	if align <= 1 {
		return true
	}
	return addr&(align-1) == 0
}

const (
	// DefaultLimit is the default codec ceiling: one page on most hosts.
	DefaultLimit = 0x1000
	// MaxSize bounds the size of a single certified type.
	MaxSize = 1 << 30
)

// DiscriminantSize returns the canonical ABI tag width for a type with
// numCases cases.
func DiscriminantSize(numCases int) uintptr {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}
