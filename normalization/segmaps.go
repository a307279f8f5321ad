// SPDX-License-Identifier: MIT

package normalization

import "github.com/katalvlaran/augnorm/ndarray"

// SegmentationMapsCaps is the capability set of a segmentation map container type S.
type SegmentationMapsCaps[S any] struct {
	// FromArray builds a container from an int, uint or bool (H, W) array.
	// nbClasses is 1+max for integer arrays and 2 for bool arrays.
	FromArray func(arr *ndarray.Array, shape ndarray.Shape, nbClasses int) (S, error)
	// ArrayInt returns the class id of every pixel as an integer (H, W) array.
	ArrayInt func(s S) *ndarray.Array
}

// SegmentationMapsNormalizer converts segmentation map inputs to and from []S.
//
// Accepted inputs are int, uint or bool (N, H, W) arrays, sequences of such
// (H, W) arrays, single S values and sequences of S. Inverted arrays keep
// their original dtype even when S stores class ids in a wider integer type.
type SegmentationMapsNormalizer[S any] struct {
	arrayMaps[S]
}

// NewSegmentationMapsNormalizer binds caps to a normalizer.
func NewSegmentationMapsNormalizer[S any](caps SegmentationMapsCaps[S], opts ...Option) *SegmentationMapsNormalizer[S] {
	kinds := []NormType{TypeArrayInt, TypeArrayUint, TypeArrayBool}
	n := &SegmentationMapsNormalizer[S]{
		arrayMaps: newArrayMaps[S](DomainSegmentationMaps, kinds, 2, "H,W", opts),
	}
	n.build = func(arr *ndarray.Array, shape ndarray.Shape) (S, error) {
		return caps.FromArray(arr, shape, nbClasses(arr))
	}
	n.payload = caps.ArrayInt

	return n
}

// nbClasses derives the class count of one class-id array.
func nbClasses(arr *ndarray.Array) int {
	if arr.DType() == ndarray.Bool {
		return 2
	}
	hi, ok := arr.Max()
	if !ok {
		return 1
	}

	return 1 + int(hi)
}
