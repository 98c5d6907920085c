package abi

import "unsafe"

var hostLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// HostLittleEndian reports whether the running host stores integers
// least-significant byte first.
func HostLittleEndian() bool {
	return hostLittleEndian
}

// Reverse swaps b in place.
func Reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
