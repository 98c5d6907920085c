package abio

import (
	"strings"

	"github.com/wippyai/abio/errors"
	"github.com/wippyai/abio/internal/abi"
)

// Endianness selects the byte order used to interpret multi-byte scalars.
type Endianness uint8

const (
	Native Endianness = iota
	Little
	Big
)

// HostOrder is the byte order of the running machine, as Little or Big.
var HostOrder = func() Endianness {
	if abi.HostLittleEndian() {
		return Little
	}
	return Big
}()

func (e Endianness) String() string {
	switch e {
	case Native:
		return "native"
	case Little:
		return "little"
	case Big:
		return "big"
	default:
		return "invalid"
	}
}

// Valid reports whether e is one of Native, Little or Big.
func (e Endianness) Valid() bool {
	return e <= Big
}

// Resolve maps Native to the host order.
func (e Endianness) Resolve() Endianness {
	if e == Native {
		return HostOrder
	}
	return e
}

// NeedsSwap reports whether values stored in order e must be byte swapped to
// be read on this machine.
func (e Endianness) NeedsSwap() bool {
	return e.Resolve() != HostOrder
}

// ParseEndianness accepts native, little, le, big and be, in any case.
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native", "host":
		return Native, nil
	case "little", "le":
		return Little, nil
	case "big", "be", "network":
		return Big, nil
	}
	return Native, errors.New(errors.PhaseConfig, errors.KindInvalidConfig).
		Value(s).
		Detail("unknown byte order %q", s).
		Build()
}

// MarshalText implements encoding.TextMarshaler.
func (e Endianness) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, errors.InvalidConfig("invalid byte order")
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Endianness) UnmarshalText(text []byte) error {
	v, err := ParseEndianness(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
