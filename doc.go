// Package augnorm normalizes polymorphic image annotations into canonical
// per-image containers and inverts them back into the caller's own shapes.
//
// 🚀 What is augnorm?
//
//	An in-process adapter for image-augmentation pipelines that:
//		• Classifies any input into a closed set of tags ("array[uint]",
//		  "iterable-tuple[number,size=2]", "KeypointsOnImage", ...)
//		• Builds exactly one container per image for heatmaps, segmentation
//		  maps, keypoints, bounding boxes and polygons
//		• Restores augmented containers into the original nesting, Go types
//		  and numeric dtype
//
// ✨ Why choose augnorm?
//
//   - Callers keep their own data layout: raw arrays, coordinate tuples,
//     rich objects or nested slices up to four levels deep
//   - Loud failures: unknown input forms and image-shape mismatches are
//     reported with the expected forms and counts
//   - Pure functions, safe for concurrent use
//
// Under the hood, everything is organized under three subpackages:
//
//	ndarray/        dense N-d arrays with dtypes, casting, stacking, image import
//	normalization/  classifier, whitelists, generic forward/inverse normalizers
//	augmentables/   concrete containers, typed entry points and Batch
//
// Quick example:
//
//	kpsois, err := augmentables.NormalizeKeypoints(
//		[]normalization.Tuple{{1, 2}, {3, 4}}, []ndarray.Shape{{32, 32, 3}})
//	// ... augment kpsois ...
//	out, err := augmentables.InvertNormalizeKeypoints(kpsois, in) // []Tuple again
//
//	go get github.com/katalvlaran/augnorm
package augnorm
