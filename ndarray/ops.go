// SPDX-License-Identifier: MIT

package ndarray

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// AsType returns a copy of a cast to dtype.
// The cast is direct: float→int truncates toward zero and out-of-range
// integers wrap around. Values are never clamped.
// Complexity: O(n).
func (a *Array) AsType(dtype DType) *Array {
	return a.convert(dtype, dtype.cast)
}

// Restore returns a copy of a converted back to dtype, rounding half-to-even
// first when dtype is an integer or bool type. Like AsType it never clamps:
// -1 restored into Uint8 becomes 255.
func (a *Array) Restore(dtype DType) *Array {
	return a.convert(dtype, dtype.restore)
}

func (a *Array) convert(dtype DType, fn func(float64) float64) *Array {
	if !dtype.Valid() {
		dtype = a.dtype
		fn = func(v float64) float64 { return v }
	}
	data := make([]float64, len(a.data))
	for i, v := range a.data {
		data[i] = fn(v)
	}

	return &Array{dtype: dtype, shape: a.shape.Clone(), data: data}
}

// Reshape returns a copy of a with a new shape of identical size.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	s := Shape(shape)
	if err := s.validate(); err != nil {
		return nil, arrayErrorf("Reshape", err, "shape %v", s)
	}
	if s.Size() != len(a.data) {
		return nil, arrayErrorf("Reshape", ErrShapeMismatch, "cannot reshape %v into %v", a.shape, s)
	}

	return &Array{dtype: a.dtype, shape: s, data: append([]float64(nil), a.data...)}, nil
}

// ExpandDims inserts an axis of extent 1 at position axis (0..NDim).
func (a *Array) ExpandDims(axis int) (*Array, error) {
	if axis < 0 || axis > len(a.shape) {
		return nil, arrayErrorf("ExpandDims", ErrOutOfRange, "axis %d for %d axes", axis, len(a.shape))
	}
	s := make(Shape, 0, len(a.shape)+1)
	s = append(s, a.shape[:axis]...)
	s = append(s, 1)
	s = append(s, a.shape[axis:]...)

	return a.Reshape(s...)
}

// DropAxis removes the axis at position axis, which must have extent 1.
func (a *Array) DropAxis(axis int) (*Array, error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, arrayErrorf("DropAxis", ErrOutOfRange, "axis %d for %d axes", axis, len(a.shape))
	}
	if a.shape[axis] != 1 {
		return nil, arrayErrorf("DropAxis", ErrShapeMismatch, "axis %d has extent %d, expected 1", axis, a.shape[axis])
	}
	s := make(Shape, 0, len(a.shape)-1)
	s = append(s, a.shape[:axis]...)
	s = append(s, a.shape[axis+1:]...)

	return a.Reshape(s...)
}

// Min returns the smallest element. ok is false for an empty array.
func (a *Array) Min() (v float64, ok bool) {
	if len(a.data) == 0 {
		return 0, false
	}

	return floats.Min(a.data), true
}

// Max returns the largest element. ok is false for an empty array.
func (a *Array) Max() (v float64, ok bool) {
	if len(a.data) == 0 {
		return 0, false
	}

	return floats.Max(a.data), true
}

// Stack joins arrays of identical shape and dtype along a new first axis.
// Stage 1 (Validate): non-empty input, no nil members, equal shapes and dtypes.
// Stage 2 (Execute): concatenate the flat buffers.
// Complexity: O(total elements).
func Stack(arrs []*Array) (*Array, error) {
	if len(arrs) == 0 {
		return nil, fmt.Errorf("ndarray.Stack: no arrays: %w", ErrShapeMismatch)
	}
	first := arrs[0]
	if first == nil {
		return nil, fmt.Errorf("ndarray.Stack: member 0: %w", ErrNilArray)
	}
	data := make([]float64, 0, len(arrs)*len(first.data))
	for i, arr := range arrs {
		if arr == nil {
			return nil, fmt.Errorf("ndarray.Stack: member %d: %w", i, ErrNilArray)
		}
		if !arr.shape.Equal(first.shape) {
			return nil, fmt.Errorf("ndarray.Stack: member %d has shape %v, expected %v: %w", i, arr.shape, first.shape, ErrShapeMismatch)
		}
		if arr.dtype != first.dtype {
			return nil, fmt.Errorf("ndarray.Stack: member %d has dtype %v, expected %v: %w", i, arr.dtype, first.dtype, ErrDTypeMismatch)
		}
		data = append(data, arr.data...)
	}
	shape := append(Shape{len(arrs)}, first.shape...)

	return &Array{dtype: first.dtype, shape: shape, data: data}, nil
}
