// Package abio reinterprets regions of raw bytes as typed Go values and back,
// copying at most a fixed, size-bounded amount.
//
// A type may only be decoded once it has been certified. Fixed-width
// integers and floats are certified by the type system through the
// Primitive constraint; aggregates are certified once, at program start, by
// the registry:
//
//	type header struct {
//	    Magic   uint32
//	    Version uint16
//	    Flags   uint16
//	    Length  uint64
//	}
//
//	var headerLayout = abio.MustCertify[header]()
//
// A struct with compiler-inserted padding, a bool, a pointer or a string
// anywhere in its field tree is refused and MustCertify panics during package
// initialization, before any decode can run.
//
// # Architecture Overview
//
//	abio/             Span, Chunk, Source, Layout registry, Decode, View, Reader
//	├── layout/       Shape descriptions and the Derive certification rules
//	├── endian/       Fixed byte-order integer types for packed wire structs
//	├── wasmmem/      Sources over WebAssembly linear memory (wazero)
//	├── errors/       Structured error types
//	└── cmd/abio/     Command line decoder and interactive byte inspector
//
// # Decoding
//
// Decode validates a region in a fixed order and stops at the first failure:
// the limit, then bounds, then alignment. Misaligned regions and regions that
// need a byte swap are copied into a local value; the source is never
// modified.
//
//	src := abio.NewSource(buf)
//	out, err := abio.Decode(headerLayout, src, 0, abio.Big, abio.Limit(64))
//	if err != nil {
//	    return err
//	}
//	h, n := out.Value, out.Consumed
//
// The limit is mandatory on every decode entry point. Pass abio.Unbounded to
// opt out explicitly.
//
// # Zero-copy access
//
// View returns a pointer into the source itself and therefore requires native
// byte order and a naturally aligned address; it reports a misaligned error
// instead of copying. AsBytes exposes the native bytes of a certified value
// without copying.
//
// # Thread Safety
//
// Sources, Spans, Chunks and Layouts are immutable and safe for concurrent
// use. Decoding never locks and never logs. Reader is a cursor and must not
// be shared between goroutines.
package abio
