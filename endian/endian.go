// Package endian provides integers with a fixed byte order.
//
// Each type is a byte array, so it has alignment 1, never needs a byte swap
// and can sit at any offset of a packed wire struct. The value is converted
// on Get and Set.
package endian

import (
	"encoding/binary"
	"strconv"
)

type (
	U16BE [2]byte
	U16LE [2]byte
	U32BE [4]byte
	U32LE [4]byte
	U64BE [8]byte
	U64LE [8]byte

	I16BE [2]byte
	I16LE [2]byte
	I32BE [4]byte
	I32LE [4]byte
	I64BE [8]byte
	I64LE [8]byte
)

func NewU16BE(v uint16) (x U16BE) {
	binary.BigEndian.PutUint16(x[:], v)
	return
}

func NewU16LE(v uint16) (x U16LE) {
	binary.LittleEndian.PutUint16(x[:], v)
	return
}

func NewU32BE(v uint32) (x U32BE) {
	binary.BigEndian.PutUint32(x[:], v)
	return
}

func NewU32LE(v uint32) (x U32LE) {
	binary.LittleEndian.PutUint32(x[:], v)
	return
}

func NewU64BE(v uint64) (x U64BE) {
	binary.BigEndian.PutUint64(x[:], v)
	return
}

func NewU64LE(v uint64) (x U64LE) {
	binary.LittleEndian.PutUint64(x[:], v)
	return
}

func NewI16BE(v int16) I16BE { return I16BE(NewU16BE(uint16(v))) }
func NewI16LE(v int16) I16LE { return I16LE(NewU16LE(uint16(v))) }
func NewI32BE(v int32) I32BE { return I32BE(NewU32BE(uint32(v))) }
func NewI32LE(v int32) I32LE { return I32LE(NewU32LE(uint32(v))) }
func NewI64BE(v int64) I64BE { return I64BE(NewU64BE(uint64(v))) }
func NewI64LE(v int64) I64LE { return I64LE(NewU64LE(uint64(v))) }

func (x U16BE) Get() uint16 { return binary.BigEndian.Uint16(x[:]) }
func (x U16LE) Get() uint16 { return binary.LittleEndian.Uint16(x[:]) }
func (x U32BE) Get() uint32 { return binary.BigEndian.Uint32(x[:]) }
func (x U32LE) Get() uint32 { return binary.LittleEndian.Uint32(x[:]) }
func (x U64BE) Get() uint64 { return binary.BigEndian.Uint64(x[:]) }
func (x U64LE) Get() uint64 { return binary.LittleEndian.Uint64(x[:]) }

func (x I16BE) Get() int16 { return int16(U16BE(x).Get()) }
func (x I16LE) Get() int16 { return int16(U16LE(x).Get()) }
func (x I32BE) Get() int32 { return int32(U32BE(x).Get()) }
func (x I32LE) Get() int32 { return int32(U32LE(x).Get()) }
func (x I64BE) Get() int64 { return int64(U64BE(x).Get()) }
func (x I64LE) Get() int64 { return int64(U64LE(x).Get()) }

func (x *U16BE) Set(v uint16) { *x = NewU16BE(v) }
func (x *U16LE) Set(v uint16) { *x = NewU16LE(v) }
func (x *U32BE) Set(v uint32) { *x = NewU32BE(v) }
func (x *U32LE) Set(v uint32) { *x = NewU32LE(v) }
func (x *U64BE) Set(v uint64) { *x = NewU64BE(v) }
func (x *U64LE) Set(v uint64) { *x = NewU64LE(v) }

func (x *I16BE) Set(v int16) { *x = NewI16BE(v) }
func (x *I16LE) Set(v int16) { *x = NewI16LE(v) }
func (x *I32BE) Set(v int32) { *x = NewI32BE(v) }
func (x *I32LE) Set(v int32) { *x = NewI32LE(v) }
func (x *I64BE) Set(v int64) { *x = NewI64BE(v) }
func (x *I64LE) Set(v int64) { *x = NewI64LE(v) }

func (x U16BE) String() string { return strconv.FormatUint(uint64(x.Get()), 10) }
func (x U16LE) String() string { return strconv.FormatUint(uint64(x.Get()), 10) }
func (x U32BE) String() string { return strconv.FormatUint(uint64(x.Get()), 10) }
func (x U32LE) String() string { return strconv.FormatUint(uint64(x.Get()), 10) }
func (x U64BE) String() string { return strconv.FormatUint(x.Get(), 10) }
func (x U64LE) String() string { return strconv.FormatUint(x.Get(), 10) }

func (x I16BE) String() string { return strconv.FormatInt(int64(x.Get()), 10) }
func (x I16LE) String() string { return strconv.FormatInt(int64(x.Get()), 10) }
func (x I32BE) String() string { return strconv.FormatInt(int64(x.Get()), 10) }
func (x I32LE) String() string { return strconv.FormatInt(int64(x.Get()), 10) }
func (x I64BE) String() string { return strconv.FormatInt(x.Get(), 10) }
func (x I64LE) String() string { return strconv.FormatInt(x.Get(), 10) }
