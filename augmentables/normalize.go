// SPDX-License-Identifier: MIT

package augmentables

import (
	"github.com/katalvlaran/augnorm/normalization"
)

// NormalizeImages converts images into channel-last arrays.
// See normalization.NormalizeImages.
func NormalizeImages(images any) (any, error) {
	return normalization.NormalizeImages(images)
}

// InvertNormalizeImages restores images into the form of imagesOld.
func InvertNormalizeImages(images, imagesOld any) (any, error) {
	return normalization.InvertNormalizeImages(images, imagesOld)
}

// NormalizeHeatmaps converts heatmap inputs into one HeatmapsOnImage per image.
func NormalizeHeatmaps(inputs, shapes any, opts ...normalization.Option) ([]*HeatmapsOnImage, error) {
	return normalization.NewHeatmapsNormalizer(HeatmapsCaps(), opts...).Normalize(inputs, shapes)
}

// InvertNormalizeHeatmaps restores heatmaps into the form of heatmapsOld.
func InvertNormalizeHeatmaps(heatmaps []*HeatmapsOnImage, heatmapsOld any, opts ...normalization.Option) (any, error) {
	return normalization.NewHeatmapsNormalizer(HeatmapsCaps(), opts...).Invert(heatmaps, heatmapsOld)
}

// NormalizeSegmentationMaps converts segmentation map inputs into one
// SegmentationMapOnImage per image.
func NormalizeSegmentationMaps(inputs, shapes any, opts ...normalization.Option) ([]*SegmentationMapOnImage, error) {
	return normalization.NewSegmentationMapsNormalizer(SegmentationMapsCaps(), opts...).Normalize(inputs, shapes)
}

// InvertNormalizeSegmentationMaps restores segmentation maps into the form
// of segmapsOld, including its dtype.
func InvertNormalizeSegmentationMaps(segmaps []*SegmentationMapOnImage, segmapsOld any, opts ...normalization.Option) (any, error) {
	return normalization.NewSegmentationMapsNormalizer(SegmentationMapsCaps(), opts...).Invert(segmaps, segmapsOld)
}

// NormalizeKeypoints converts keypoint inputs into one KeypointsOnImage per image.
func NormalizeKeypoints(inputs, shapes any, opts ...normalization.Option) ([]*KeypointsOnImage, error) {
	return normalization.NewKeypointsNormalizer(KeypointsCaps(), opts...).Normalize(inputs, shapes)
}

// InvertNormalizeKeypoints restores keypoints into the form of keypointsOld.
func InvertNormalizeKeypoints(kpsois []*KeypointsOnImage, keypointsOld any, opts ...normalization.Option) (any, error) {
	return normalization.NewKeypointsNormalizer(KeypointsCaps(), opts...).Invert(kpsois, keypointsOld)
}

// NormalizeBoundingBoxes converts bounding box inputs into one
// BoundingBoxesOnImage per image.
func NormalizeBoundingBoxes(inputs, shapes any, opts ...normalization.Option) ([]*BoundingBoxesOnImage, error) {
	return normalization.NewBoundingBoxesNormalizer(BoundingBoxesCaps(), opts...).Normalize(inputs, shapes)
}

// InvertNormalizeBoundingBoxes restores bounding boxes into the form of bbsOld.
func InvertNormalizeBoundingBoxes(bbsois []*BoundingBoxesOnImage, bbsOld any, opts ...normalization.Option) (any, error) {
	return normalization.NewBoundingBoxesNormalizer(BoundingBoxesCaps(), opts...).Invert(bbsois, bbsOld)
}

// NormalizePolygons converts polygon inputs into one PolygonsOnImage per image.
func NormalizePolygons(inputs, shapes any, opts ...normalization.Option) ([]*PolygonsOnImage, error) {
	return normalization.NewPolygonsNormalizer(PolygonsCaps(), opts...).Normalize(inputs, shapes)
}

// InvertNormalizePolygons restores polygons into the form of polygonsOld.
func InvertNormalizePolygons(psois []*PolygonsOnImage, polygonsOld any, opts ...normalization.Option) (any, error) {
	return normalization.NewPolygonsNormalizer(PolygonsCaps(), opts...).Invert(psois, polygonsOld)
}
