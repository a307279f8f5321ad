// SPDX-License-Identifier: MIT

package augmentables

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

// Batch holds the unnormalized inputs of one augmentation call, each in any
// form the matching NormalizeX function accepts. Nil fields are absent.
type Batch struct {
	Images           any
	Heatmaps         any
	SegmentationMaps any
	Keypoints        any
	BoundingBoxes    any
	Polygons         any
}

// NormalizedBatch is the canonical form of a Batch.
type NormalizedBatch struct {
	Images           any             // channel-last array or []*ndarray.Array
	Shapes           []ndarray.Shape // one per image; nil without images
	Heatmaps         []*HeatmapsOnImage
	SegmentationMaps []*SegmentationMapOnImage
	Keypoints        []*KeypointsOnImage
	BoundingBoxes    []*BoundingBoxesOnImage
	Polygons         []*PolygonsOnImage
}

// Normalize converts every field of b into its canonical form.
//
// Images are normalized first; their shapes become the image shapes every
// annotation domain is matched against, so a batch without images can only
// carry annotations that need no shapes (containers, empty inputs).
// opts apply to every domain.
func (b Batch) Normalize(opts ...normalization.Option) (*NormalizedBatch, error) {
	images, err := NormalizeImages(b.Images)
	if err != nil {
		return nil, fmt.Errorf("normalize batch: %w", err)
	}
	shapes, err := normalization.PreprocessShapes(images)
	if err != nil {
		return nil, fmt.Errorf("normalize batch: image shapes: %w", err)
	}

	nb := &NormalizedBatch{Images: images, Shapes: shapes}
	if nb.Heatmaps, err = NormalizeHeatmaps(b.Heatmaps, shapes, opts...); err != nil {
		return nil, fmt.Errorf("normalize batch: %w", err)
	}
	if nb.SegmentationMaps, err = NormalizeSegmentationMaps(b.SegmentationMaps, shapes, opts...); err != nil {
		return nil, fmt.Errorf("normalize batch: %w", err)
	}
	if nb.Keypoints, err = NormalizeKeypoints(b.Keypoints, shapes, opts...); err != nil {
		return nil, fmt.Errorf("normalize batch: %w", err)
	}
	if nb.BoundingBoxes, err = NormalizeBoundingBoxes(b.BoundingBoxes, shapes, opts...); err != nil {
		return nil, fmt.Errorf("normalize batch: %w", err)
	}
	if nb.Polygons, err = NormalizePolygons(b.Polygons, shapes, opts...); err != nil {
		return nil, fmt.Errorf("normalize batch: %w", err)
	}

	return nb, nil
}

// Invert converts nb back into the forms of b, the batch it was normalized from.
func (b Batch) Invert(nb *NormalizedBatch, opts ...normalization.Option) (Batch, error) {
	if nb == nil {
		return Batch{}, fmt.Errorf("invert batch: %w: nil normalized batch", normalization.ErrAssertion)
	}

	var (
		out Batch
		err error
	)
	if out.Images, err = InvertNormalizeImages(nb.Images, b.Images); err != nil {
		return Batch{}, fmt.Errorf("invert batch: %w", err)
	}
	if out.Heatmaps, err = InvertNormalizeHeatmaps(nb.Heatmaps, b.Heatmaps, opts...); err != nil {
		return Batch{}, fmt.Errorf("invert batch: %w", err)
	}
	if out.SegmentationMaps, err = InvertNormalizeSegmentationMaps(nb.SegmentationMaps, b.SegmentationMaps, opts...); err != nil {
		return Batch{}, fmt.Errorf("invert batch: %w", err)
	}
	if out.Keypoints, err = InvertNormalizeKeypoints(nb.Keypoints, b.Keypoints, opts...); err != nil {
		return Batch{}, fmt.Errorf("invert batch: %w", err)
	}
	if out.BoundingBoxes, err = InvertNormalizeBoundingBoxes(nb.BoundingBoxes, b.BoundingBoxes, opts...); err != nil {
		return Batch{}, fmt.Errorf("invert batch: %w", err)
	}
	if out.Polygons, err = InvertNormalizePolygons(nb.Polygons, b.Polygons, opts...); err != nil {
		return Batch{}, fmt.Errorf("invert batch: %w", err)
	}

	return out, nil
}
