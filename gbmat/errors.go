package gbmat

import "errors"

// ErrNoValue is the kernel-level non-error sentinel: a specialized
// kernel declines to handle this combination of formats/mask/semiring,
// and the caller (always the method-selection layer in this package)
// must fall back to the generic path. It is never returned across the
// gbmat package boundary.
var ErrNoValue = errors.New("gbmat: kernel declines, try generic path")

// ErrDimensionMismatch indicates incompatible operand dimensions for
// MxM, EWiseAdd, or Transpose.
var ErrDimensionMismatch = errors.New("gbmat: dimension mismatch")

// ErrInvalid indicates a structurally invalid request (e.g. a nil
// output matrix, or a semiring whose Z type does not match the output).
var ErrInvalid = errors.New("gbmat: invalid argument")
