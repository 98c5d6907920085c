// Package layout certifies that a type may be built by reinterpreting bytes.
//
// A type is ABI-compatible when its size and alignment are known, it has no
// padding bytes and every bit pattern of its size is a valid value. This
// package answers that question for structural descriptions of types:
//
//	Shape       - structural description: scalar, array or struct, with fields
//	Descriptor  - size, alignment, padding and bit-pattern facts for one type
//	Derive      - pure function from a Shape to a Certificate or a refusal
//	Certificate - descriptor plus the multi-byte scalar leaves used for byte swapping
//
// # Sources of Shapes
//
// Shapes come from three places:
//
//   - FromType builds a Shape from a Go reflect.Type, with the compiler's
//     own size, alignment and field offsets (Declared is set).
//   - Calculator.Shape builds a Shape from a WIT type using canonical ABI
//     offsets, so WIT records can be checked for zero-copy access.
//   - Code generators build Shapes by hand, optionally with Packed layouts or
//     unresolved array lengths.
//
// # Certification Rules
//
// Fixed-width integers, floats and complex numbers are the base case. Booleans,
// chars and discriminated values are refused because some bit patterns are
// invalid. Pointers, strings, slices, maps, channels, functions and interfaces
// are refused because they are not plain data. Aggregates are certified when
// every field is certified, the fields are contiguous and their sizes sum to
// the whole size, and the alignment equals the largest field alignment unless
// the shape is Packed.
//
// Refusals are *errors.Error values with phase certify and one of the kinds
// invalid_bit_pattern, unverifiable_padding, unverifiable_generic or
// invalid_layout. The Path names the offending field.
package layout
