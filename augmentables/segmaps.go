// SPDX-License-Identifier: MIT

package augmentables

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

// SegmentationMapOnImage holds int32 (H, W, C) class ids for one image.
// Every id lies within [0, NbClasses).
type SegmentationMapOnImage struct {
	arr       *ndarray.Array
	was2D     bool
	Shape     ndarray.Shape
	NbClasses int
}

// NewSegmentationMapOnImage validates arr and stores it as int32.
// arr must be an int, uint or bool (H, W) or (H, W, C) array.
func NewSegmentationMapOnImage(arr *ndarray.Array, shape ndarray.Shape, nbClasses int) (*SegmentationMapOnImage, error) {
	if arr == nil {
		return nil, fmt.Errorf("NewSegmentationMapOnImage: %w", ndarray.ErrNilArray)
	}
	if k := arr.DType().Kind(); k != ndarray.KindInt && k != ndarray.KindUint && k != ndarray.KindBool {
		return nil, fmt.Errorf("NewSegmentationMapOnImage: %w: %v, expected int, uint or bool", ErrPayloadDType, arr.DType())
	}
	if nbClasses < 1 {
		return nil, fmt.Errorf("NewSegmentationMapOnImage: %w: %d classes", ErrValueRange, nbClasses)
	}
	if lo, ok := arr.Min(); ok {
		hi, _ := arr.Max()
		if lo < 0 || hi >= float64(nbClasses) {
			return nil, fmt.Errorf("NewSegmentationMapOnImage: %w: ids in [%v, %v], expected [0, %d)",
				ErrValueRange, lo, hi, nbClasses)
		}
	}

	s := &SegmentationMapOnImage{Shape: shape.Clone(), NbClasses: nbClasses}
	switch arr.NDim() {
	case 2:
		s.was2D = true
		var err error
		if arr, err = arr.ExpandDims(2); err != nil {
			return nil, err
		}
	case 3:
	default:
		return nil, fmt.Errorf("NewSegmentationMapOnImage: %w: %v, expected (H,W) or (H,W,C)", ErrPayloadShape, arr.Shape())
	}
	s.arr = arr.AsType(ndarray.Int32)

	return s, nil
}

// ArrInt returns the int32 class ids in the rank they were given.
func (s *SegmentationMapOnImage) ArrInt() *ndarray.Array {
	if s.was2D {
		if a, err := s.arr.DropAxis(2); err == nil {
			return a
		}
	}

	return s.arr
}

// SegmentationMapsCaps binds SegmentationMapOnImage to the segmentation maps normalizer.
func SegmentationMapsCaps() normalization.SegmentationMapsCaps[*SegmentationMapOnImage] {
	return normalization.SegmentationMapsCaps[*SegmentationMapOnImage]{
		FromArray: NewSegmentationMapOnImage,
		ArrayInt:  (*SegmentationMapOnImage).ArrInt,
	}
}
