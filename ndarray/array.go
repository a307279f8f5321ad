// SPDX-License-Identifier: MIT

package ndarray

import (
	"fmt"
	"strings"
)

// Array is a row-major N-dimensional array of numeric values.
// data holds shape.Size() values, each already cast to dtype.
//
// Every dtype shares the float64 backing store, so Int64 and Uint64 values
// are exact only within ±2^53; larger magnitudes round to the nearest
// representable float64 on the way in.
type Array struct {
	dtype DType     // element type
	shape Shape     // extent per axis
	data  []float64 // flat backing storage, length == shape.Size()
}

// New creates an Array of the given dtype and shape from values.
// Stage 1 (Validate): dtype is known, shape non-negative, len(values) == shape.Size().
// Stage 2 (Prepare): copy values, casting each one to dtype.
// Complexity: O(n) time and memory.
func New(dtype DType, shape Shape, values []float64) (*Array, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("ndarray.New: %v: %w", dtype, ErrInvalidDType)
	}
	if err := shape.validate(); err != nil {
		return nil, fmt.Errorf("ndarray.New: %v: %w", shape, err)
	}
	if len(values) != shape.Size() {
		return nil, fmt.Errorf("ndarray.New: %d values for shape %v: %w", len(values), shape, ErrDataLength)
	}

	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = dtype.cast(v)
	}

	return &Array{dtype: dtype, shape: shape.Clone(), data: data}, nil
}

// Zeros creates a zero-filled Array.
func Zeros(dtype DType, shape ...int) (*Array, error) {
	return New(dtype, Shape(shape), make([]float64, Shape(shape).Size()))
}

// Must panics if err is non-nil and returns a otherwise.
// Intended for literals in tests and examples.
func Must(a *Array, err error) *Array {
	if err != nil {
		panic(err)
	}

	return a
}

// DType returns the element type.
func (a *Array) DType() DType {
	return a.dtype
}

// Shape returns a copy of the array shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// NDim returns the number of axes.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Len returns the extent of the first axis, or 0 for a 0-d array.
func (a *Array) Len() int {
	if len(a.shape) == 0 {
		return 0
	}

	return a.shape[0]
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// Values returns a copy of the flat row-major values.
func (a *Array) Values() []float64 {
	return append([]float64(nil), a.data...)
}

// At returns the element at the given multi-index.
// Complexity: O(ndim).
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.shape) {
		return 0, arrayErrorf("At", ErrOutOfRange, "%d indices for %d axes", len(idx), len(a.shape))
	}
	offset := 0
	for axis, i := range idx {
		if i < 0 || i >= a.shape[axis] {
			return 0, arrayErrorf("At", ErrOutOfRange, "index %d on axis %d with extent %d", i, axis, a.shape[axis])
		}
		offset = offset*a.shape[axis] + i
	}

	return a.data[offset], nil
}

// Index returns a copy of the i-th sub-array along the first axis.
// For a batch of shape (N, H, W, C), Index(i) has shape (H, W, C).
func (a *Array) Index(i int) (*Array, error) {
	if len(a.shape) == 0 {
		return nil, arrayErrorf("Index", ErrOutOfRange, "cannot index a 0-d array")
	}
	if i < 0 || i >= a.shape[0] {
		return nil, arrayErrorf("Index", ErrOutOfRange, "index %d with extent %d", i, a.shape[0])
	}
	sub := a.shape[1:].Size()
	data := append([]float64(nil), a.data[i*sub:(i+1)*sub]...)

	return &Array{dtype: a.dtype, shape: a.shape[1:].Clone(), data: data}, nil
}

// Unstack splits the array along its first axis.
func (a *Array) Unstack() []*Array {
	out := make([]*Array, a.Len())
	for i := range out {
		out[i], _ = a.Index(i) // i is always in range
	}

	return out
}

// Equal reports whether a and b share dtype, shape and values.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.dtype != b.dtype || !a.shape.Equal(b.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}

// String renders the array for debugging, e.g. "uint8(2, 2)[0 1 2 3]".
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString(a.dtype.String())
	sb.WriteString(a.shape.String())
	sb.WriteString(fmt.Sprint(a.data))

	return sb.String()
}
