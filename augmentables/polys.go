// SPDX-License-Identifier: MIT

package augmentables

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

// Polygon is a closed shape given by its exterior ring.
type Polygon struct {
	exterior *ndarray.Array // float64 (#points, 2)
	Label    string
}

// NewPolygon builds a polygon from a numeric (#points, 2) array with at
// least one point. The exterior is stored as float64.
func NewPolygon(exterior *ndarray.Array) (Polygon, error) {
	if err := checkPoints(exterior, 2); err != nil {
		return Polygon{}, fmt.Errorf("NewPolygon: %w: %w", ErrPolygonPoints, err)
	}
	if exterior.Len() == 0 {
		return Polygon{}, fmt.Errorf("NewPolygon: %w: no points", ErrPolygonPoints)
	}

	return Polygon{exterior: exterior.AsType(ndarray.Float64)}, nil
}

// NewPolygonFromKeypoints builds a polygon through the given points.
func NewPolygonFromKeypoints(kps []Keypoint) (Polygon, error) {
	return NewPolygon(NewKeypointsOnImage(kps, nil).ToXYArray())
}

// Exterior returns the float64 (#points, 2) exterior ring.
func (p Polygon) Exterior() *ndarray.Array { return p.exterior }

// Len returns the number of exterior points.
func (p Polygon) Len() int { return p.exterior.Len() }

// Equal reports whether p and q share label and exterior.
func (p Polygon) Equal(q Polygon) bool {
	return p.Label == q.Label && p.exterior.Equal(q.exterior)
}

// PolygonsOnImage holds the polygons placed on one image.
type PolygonsOnImage struct {
	Polygons []Polygon
	Shape    ndarray.Shape
}

// NewPolygonsOnImage copies polys and shape into a new container.
func NewPolygonsOnImage(polys []Polygon, shape ndarray.Shape) *PolygonsOnImage {
	return &PolygonsOnImage{
		Polygons: append([]Polygon(nil), polys...),
		Shape:    shape.Clone(),
	}
}

// PolygonsCaps binds Polygon and PolygonsOnImage to the polygons normalizer.
// Keypoint is accepted as a polygon point.
func PolygonsCaps() normalization.PolygonsCaps[Keypoint, Polygon, *PolygonsOnImage] {
	kc := KeypointsCaps()

	return normalization.PolygonsCaps[Keypoint, Polygon, *PolygonsOnImage]{
		NewKeypoint: kc.NewKeypoint,
		KeypointXY:  kc.KeypointXY,
		NewPolygon:  NewPolygon,
		Exterior:    Polygon.Exterior,
		NewOnImage: func(polys []Polygon, shape ndarray.Shape) (*PolygonsOnImage, error) {
			return NewPolygonsOnImage(polys, shape), nil
		},
		Polygons: func(c *PolygonsOnImage) []Polygon { return c.Polygons },
	}
}
