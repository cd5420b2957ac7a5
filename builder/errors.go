// SPDX-License-Identifier: MIT
// Package: roadpath/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Callers branch with errors.Is.
//   • Constructors attach context with %w; sentinels carry no parameters.
//   • Validation panics are confined to option constructors (WithX...).

package builder

import "errors"

// ErrTooFewVertices indicates a size parameter (n, rows, cols) below its minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidNeighbors indicates RandomGeometric's k outside [1, n-1].
var ErrInvalidNeighbors = errors.New("builder: neighbor count out of range")

// ErrNilConstructor indicates a nil Constructor passed to Build or Islands.
var ErrNilConstructor = errors.New("builder: nil constructor")

// ErrConstructFailed wraps failures raised while freezing the network.
var ErrConstructFailed = errors.New("builder: construction failed")
