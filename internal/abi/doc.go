// Package abi provides internal utilities for layout certification and decoding.
//
// This package contains checked arithmetic, alignment math, host byte-order
// detection and in-place byte swapping shared by the layout and abio packages.
//
// # Contents
//
//   - helpers.go: checked arithmetic, alignment and type naming
//   - order.go: host byte order and byte swapping
//
// This package is internal to abio.
package abi
