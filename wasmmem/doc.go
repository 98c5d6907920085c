// Package wasmmem exposes WebAssembly linear memory as abio sources.
//
// A Source returned here aliases the guest memory. It is invalidated when the
// guest grows its memory, and it observes any writes the guest makes, so it
// should be used only while the guest is not running.
//
// WebAssembly stores values little endian; Load and Store use that order.
package wasmmem
