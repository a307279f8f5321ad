// SPDX-License-Identifier: MIT
// Package ndarray: sentinel error set.
// Public constructors and accessors return these sentinels, wrapped with
// call-site context via fmt.Errorf("...: %w", ErrX); match them with errors.Is.

package ndarray

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a shape holds a negative dimension.
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrDataLength signals that the number of values does not match the shape size.
	ErrDataLength = errors.New("ndarray: data length does not match shape")

	// ErrInvalidDType indicates an unknown or unsupported dtype.
	ErrInvalidDType = errors.New("ndarray: invalid dtype")

	// ErrOutOfRange indicates an index or axis outside valid bounds.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrShapeMismatch indicates incompatible shapes between operands (Stack, Reshape).
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")

	// ErrDTypeMismatch indicates that operands carry different dtypes.
	ErrDTypeMismatch = errors.New("ndarray: dtype mismatch")

	// ErrNilArray indicates that a nil *Array was used.
	ErrNilArray = errors.New("ndarray: nil array")
)

// arrayErrorf wraps an underlying error with Array method context.
func arrayErrorf(method string, err error, format string, args ...any) error {
	return fmt.Errorf("Array.%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
