// Package augmentables provides the canonical per-image annotation
// containers and binds them to the normalization engine.
//
// Containers:
//
//   - HeatmapsOnImage: float64 (H, W, C) maps within [MinValue, MaxValue]
//   - SegmentationMapOnImage: int32 (H, W, C) class ids below NbClasses
//   - KeypointsOnImage: Keypoint values
//   - BoundingBoxesOnImage: BoundingBox values with x1 <= x2 and y1 <= y2
//   - PolygonsOnImage: Polygon values with float64 (#points, 2) exteriors
//
// Every container records the shape of the image it annotates.
//
// The NormalizeX / InvertNormalizeX functions wrap the generic normalizers
// of package normalization for these types; Batch drives all of them at once,
// deriving image shapes from the normalized images the way an augmentation
// pipeline does.
//
//	b := augmentables.Batch{Images: imgs, Keypoints: []normalization.Tuple{{1, 2}}}
//	nb, err := b.Normalize()
//	// ... augment nb ...
//	out, err := b.Invert(nb)
package augmentables
