// Package normalization maps polymorphic annotation input onto canonical
// per-image containers and back.
//
// Callers describe the same logical data in many shapes: a raw batch array,
// a coordinate tuple, a single rich object, or nested slices of any of
// those up to four levels deep. This package
//
//  1. finds the first non-empty leaf of an input (FindFirstNonempty),
//  2. classifies the input into a closed NormType tag
//     (EstimateNormalizationType, e.g. "iterable-tuple[number,size=2]"),
//  3. converts it into one canonical container per image (the Normalize
//     methods of the per-domain normalizers), and
//  4. converts containers back into the caller's original shape and dtype
//     (the Invert methods), re-deriving the tag from the original input.
//
// Canonical containers are not defined here. Each domain normalizer is
// built from a capability struct (HeatmapsCaps, SegmentationMapsCaps,
// KeypointsCaps, BoundingBoxesCaps, PolygonsCaps) holding the constructor
// and accessor functions of the container types, so the packages that own
// those types can depend on this one without a cycle.
//
// Go values map onto the recognized shapes as follows:
//
//	nil, typed nil pointer        absent ("None")
//	*ndarray.Array                raw array ("array[float]", ...)
//	string, []byte                opaque leaf
//	Tuple, Go array ([2]float64)  tuple; numeric if every element is a number
//	any other slice               sequence ("iterable-...")
//	anything else                 leaf named by its Go type ("Keypoint")
//
// All functions are pure: inputs are never mutated and no state is shared,
// so independent calls may run concurrently.
package normalization
