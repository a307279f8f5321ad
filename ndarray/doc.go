// Package ndarray provides a small, dtype-aware N-dimensional numeric array.
//
// Array keeps its elements in a flat row-major []float64 slice together with
// a Shape and a DType. Every value written into an Array is first cast to the
// array's DType, so an Array of Uint8 never holds 256 or 1.5 and an Array of
// Float16 only holds values representable in half precision.
//
// The package exists to carry annotation payloads (heatmaps, segmentation
// maps, coordinate blocks) through the normalization layer while remembering
// the element kind the caller handed in:
//
//   - Kind groups dtypes the way the normalization tags do: bool, int, uint, float.
//   - AsType performs a direct cast (truncation and wrap-around, no clamping).
//   - Restore rounds half-to-even before casting to integer or bool dtypes.
//   - Index / Unstack / Stack move between a batch array and its per-image parts.
//
// Arrays are immutable from the outside: accessors return copies and every
// transforming method allocates a new Array.
//
//	arr, _ := ndarray.New(ndarray.Uint8, ndarray.Shape{2, 2}, []float64{0, 1, 2, 3})
//	wide := arr.AsType(ndarray.Int32)
//	back := wide.Restore(arr.DType()) // Uint8 again
package ndarray
