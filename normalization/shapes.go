// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"
	"image"

	"github.com/katalvlaran/augnorm/ndarray"
)

// PreprocessShapes turns the shapes argument into one shape descriptor per image.
//
// Accepted forms:
//   - nil                        → nil (no shapes known)
//   - *ndarray.Array of rank 3/4 → shape of every image along the first axis
//   - []ndarray.Shape            → copied as is
//   - any other sequence whose elements are ndarray.Shape, []int, numeric
//     tuples, *ndarray.Array (its shape) or image.Image (its array shape).
//
// A non-nil input always yields a non-nil slice, so "no shapes" and
// "zero shapes" stay distinguishable.
func PreprocessShapes(shapes any) ([]ndarray.Shape, error) {
	if isAbsent(shapes) {
		return nil, nil
	}
	if arr, ok := asArray(shapes); ok {
		if arr.NDim() != 3 && arr.NDim() != 4 {
			return nil, assertf("shapes array must have 3 or 4 axes, got %v", arr.Shape())
		}
		out := make([]ndarray.Shape, arr.Len())
		for i := range out {
			out[i] = arr.Shape()[1:]
		}

		return out, nil
	}
	if ss, ok := shapes.([]ndarray.Shape); ok {
		out := make([]ndarray.Shape, len(ss))
		for i, s := range ss {
			out[i] = s.Clone()
		}

		return out, nil
	}
	if !isSequence(shapes) {
		return nil, assertf("shapes must be nil, an image array or a sequence, got %T", shapes)
	}

	elems := items(shapes)
	out := make([]ndarray.Shape, len(elems))
	for i, e := range elems {
		s, err := shapeOf(e)
		if err != nil {
			return nil, fmt.Errorf("shapes[%d]: %w", i, err)
		}
		out[i] = s
	}

	return out, nil
}

// shapeOf derives a single shape descriptor.
func shapeOf(v any) (ndarray.Shape, error) {
	switch s := v.(type) {
	case ndarray.Shape:
		return s.Clone(), nil
	case []int:
		return ndarray.Shape(s).Clone(), nil
	case *ndarray.Array:
		if s == nil {
			return nil, assertf("nil array in shapes")
		}

		return s.Shape(), nil
	case image.Image:
		b := s.Bounds()

		return ndarray.Shape{b.Dy(), b.Dx(), 4}, nil
	}
	if isTuple(v) {
		elems := items(v)
		out := make(ndarray.Shape, len(elems))
		for i, e := range elems {
			f, ok := toFloat(e)
			if !ok {
				return nil, assertf("shape element %d is %T, not a number", i, e)
			}
			out[i] = int(f)
		}

		return out, nil
	}

	return nil, assertf("cannot derive an image shape from %T", v)
}

// requireShapes checks that exactly n shapes are available.
func requireShapes(shapes []ndarray.Shape, n int, from NormType, to string) error {
	if shapes == nil {
		return &ShapeCountError{From: from, To: to, Required: n, Missing: true}
	}
	if len(shapes) != n {
		return &ShapeCountError{From: from, To: to, Required: n, Actual: len(shapes)}
	}

	return nil
}
