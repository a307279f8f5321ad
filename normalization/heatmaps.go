// SPDX-License-Identifier: MIT

package normalization

import "github.com/katalvlaran/augnorm/ndarray"

// HeatmapsCaps is the capability set of a heatmaps container type H.
type HeatmapsCaps[H any] struct {
	// FromArray builds a container from a float (H, W, C) array.
	FromArray func(arr *ndarray.Array, shape ndarray.Shape) (H, error)
	// Array returns the container payload as a float (H, W, C) array in [0, 1].
	Array func(h H) *ndarray.Array
}

// HeatmapsNormalizer converts heatmap inputs to and from []H.
//
// Accepted inputs are float (N, H, W, C) arrays, sequences of float
// (H, W, C) arrays, single H values and sequences of H.
type HeatmapsNormalizer[H any] struct {
	arrayMaps[H]
}

// NewHeatmapsNormalizer binds caps to a normalizer.
func NewHeatmapsNormalizer[H any](caps HeatmapsCaps[H], opts ...Option) *HeatmapsNormalizer[H] {
	n := &HeatmapsNormalizer[H]{
		arrayMaps: newArrayMaps[H](DomainHeatmaps, []NormType{TypeArrayFloat}, 3, "H,W,C", opts),
	}
	n.build = caps.FromArray
	n.payload = caps.Array

	return n
}
