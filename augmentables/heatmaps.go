// SPDX-License-Identifier: MIT

package augmentables

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

// Default value range of heatmaps.
const (
	DefaultHeatmapMin = 0.0
	DefaultHeatmapMax = 1.0
)

// HeatmapsOnImage holds float64 (H, W, C) heatmaps for one image.
// Values lie within [MinValue, MaxValue].
type HeatmapsOnImage struct {
	arr      *ndarray.Array
	was2D    bool
	Shape    ndarray.Shape
	MinValue float64
	MaxValue float64
}

// NewHeatmapsOnImage validates arr and stores it as float64.
//
// Stage 1 (Validate): arr is a float (H, W) or (H, W, C) array whose values
// lie within [minValue, maxValue].
// Stage 2 (Prepare): (H, W) gains a channel axis; the payload is copied.
func NewHeatmapsOnImage(arr *ndarray.Array, shape ndarray.Shape, minValue, maxValue float64) (*HeatmapsOnImage, error) {
	if arr == nil {
		return nil, fmt.Errorf("NewHeatmapsOnImage: %w", ndarray.ErrNilArray)
	}
	if arr.DType().Kind() != ndarray.KindFloat {
		return nil, fmt.Errorf("NewHeatmapsOnImage: %w: %v, expected a float dtype", ErrPayloadDType, arr.DType())
	}
	if minValue >= maxValue {
		return nil, fmt.Errorf("NewHeatmapsOnImage: %w: min %v >= max %v", ErrValueRange, minValue, maxValue)
	}
	if lo, ok := arr.Min(); ok {
		hi, _ := arr.Max()
		if lo < minValue || hi > maxValue {
			return nil, fmt.Errorf("NewHeatmapsOnImage: %w: values in [%v, %v], expected [%v, %v]",
				ErrValueRange, lo, hi, minValue, maxValue)
		}
	}

	h := &HeatmapsOnImage{Shape: shape.Clone(), MinValue: minValue, MaxValue: maxValue}
	switch arr.NDim() {
	case 2:
		h.was2D = true
		var err error
		if arr, err = arr.ExpandDims(2); err != nil {
			return nil, err
		}
	case 3:
	default:
		return nil, fmt.Errorf("NewHeatmapsOnImage: %w: %v, expected (H,W) or (H,W,C)", ErrPayloadShape, arr.Shape())
	}
	h.arr = arr.AsType(ndarray.Float64)

	return h, nil
}

// Arr returns the heatmaps in the rank they were given: (H, W) for
// single-channel input built from (H, W), otherwise (H, W, C).
func (h *HeatmapsOnImage) Arr() *ndarray.Array {
	if h.was2D {
		if a, err := h.arr.DropAxis(2); err == nil {
			return a
		}
	}

	return h.arr
}

// Channels returns the (H, W, C) payload, always with a channel axis.
func (h *HeatmapsOnImage) Channels() *ndarray.Array { return h.arr }

// HeatmapsCaps binds HeatmapsOnImage to the heatmaps normalizer. Heatmaps
// built from arrays use the default [0, 1] value range.
func HeatmapsCaps() normalization.HeatmapsCaps[*HeatmapsOnImage] {
	return normalization.HeatmapsCaps[*HeatmapsOnImage]{
		FromArray: func(arr *ndarray.Array, shape ndarray.Shape) (*HeatmapsOnImage, error) {
			return NewHeatmapsOnImage(arr, shape, DefaultHeatmapMin, DefaultHeatmapMax)
		},
		Array: (*HeatmapsOnImage).Arr,
	}
}
