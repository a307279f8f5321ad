package normalization_test

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

// Minimal on-image containers. The names match the class names callers of
// the real augmentables package see, so tags read the same in both.

type Keypoint struct{ X, Y float64 }

type KeypointsOnImage struct {
	Keypoints []Keypoint
	Shape     ndarray.Shape
}

type BoundingBox struct{ X1, Y1, X2, Y2 float64 }

type BoundingBoxesOnImage struct {
	Boxes []BoundingBox
	Shape ndarray.Shape
}

type Polygon struct{ Exterior *ndarray.Array }

type PolygonsOnImage struct {
	Polygons []Polygon
	Shape    ndarray.Shape
}

type HeatmapsOnImage struct {
	Arr   *ndarray.Array
	Shape ndarray.Shape
}

type SegmentationMapsOnImage struct {
	Arr       *ndarray.Array
	Shape     ndarray.Shape
	NbClasses int
}

func rows(arr *ndarray.Array, width int) [][]float64 {
	vals := arr.Values()
	out := make([][]float64, 0, len(vals)/width)
	for i := 0; i+width <= len(vals); i += width {
		out = append(out, vals[i:i+width])
	}

	return out
}

func newKeypoint(x, y float64) Keypoint  { return Keypoint{X: x, Y: y} }
func keypointXY(kp Keypoint) (x, y float64) { return kp.X, kp.Y }

func keypointsCaps() normalization.KeypointsCaps[Keypoint, *KeypointsOnImage] {
	return normalization.KeypointsCaps[Keypoint, *KeypointsOnImage]{
		NewKeypoint: newKeypoint,
		KeypointXY:  keypointXY,
		NewOnImage: func(kps []Keypoint, shape ndarray.Shape) (*KeypointsOnImage, error) {
			return &KeypointsOnImage{Keypoints: append([]Keypoint(nil), kps...), Shape: shape}, nil
		},
		Keypoints: func(c *KeypointsOnImage) []Keypoint { return c.Keypoints },
		FromCoordsArray: func(arr *ndarray.Array, shape ndarray.Shape) (*KeypointsOnImage, error) {
			c := &KeypointsOnImage{Shape: shape}
			for _, r := range rows(arr, 2) {
				c.Keypoints = append(c.Keypoints, Keypoint{X: r[0], Y: r[1]})
			}

			return c, nil
		},
		CoordsArray: func(c *KeypointsOnImage) *ndarray.Array {
			data := make([]float64, 0, 2*len(c.Keypoints))
			for _, kp := range c.Keypoints {
				data = append(data, kp.X, kp.Y)
			}

			return ndarray.Must(ndarray.New(ndarray.Float64, ndarray.Shape{len(c.Keypoints), 2}, data))
		},
	}
}

func boundingBoxesCaps() normalization.BoundingBoxesCaps[BoundingBox, *BoundingBoxesOnImage] {
	return normalization.BoundingBoxesCaps[BoundingBox, *BoundingBoxesOnImage]{
		NewBox: func(x1, y1, x2, y2 float64) BoundingBox { return BoundingBox{x1, y1, x2, y2} },
		BoxXYXY: func(b BoundingBox) (x1, y1, x2, y2 float64) {
			return b.X1, b.Y1, b.X2, b.Y2
		},
		NewOnImage: func(boxes []BoundingBox, shape ndarray.Shape) (*BoundingBoxesOnImage, error) {
			return &BoundingBoxesOnImage{Boxes: append([]BoundingBox(nil), boxes...), Shape: shape}, nil
		},
		Boxes: func(c *BoundingBoxesOnImage) []BoundingBox { return c.Boxes },
		FromXYXYArray: func(arr *ndarray.Array, shape ndarray.Shape) (*BoundingBoxesOnImage, error) {
			c := &BoundingBoxesOnImage{Shape: shape}
			for _, r := range rows(arr, 4) {
				c.Boxes = append(c.Boxes, BoundingBox{r[0], r[1], r[2], r[3]})
			}

			return c, nil
		},
		XYXYArray: func(c *BoundingBoxesOnImage) *ndarray.Array {
			data := make([]float64, 0, 4*len(c.Boxes))
			for _, b := range c.Boxes {
				data = append(data, b.X1, b.Y1, b.X2, b.Y2)
			}

			return ndarray.Must(ndarray.New(ndarray.Float64, ndarray.Shape{len(c.Boxes), 4}, data))
		},
	}
}

func polygonsCaps() normalization.PolygonsCaps[Keypoint, Polygon, *PolygonsOnImage] {
	return normalization.PolygonsCaps[Keypoint, Polygon, *PolygonsOnImage]{
		NewKeypoint: newKeypoint,
		KeypointXY:  keypointXY,
		NewPolygon: func(exterior *ndarray.Array) (Polygon, error) {
			if exterior.Len() == 0 {
				return Polygon{}, fmt.Errorf("polygon without points")
			}

			return Polygon{Exterior: exterior.AsType(ndarray.Float64)}, nil
		},
		Exterior: func(p Polygon) *ndarray.Array { return p.Exterior },
		NewOnImage: func(polys []Polygon, shape ndarray.Shape) (*PolygonsOnImage, error) {
			return &PolygonsOnImage{Polygons: append([]Polygon(nil), polys...), Shape: shape}, nil
		},
		Polygons: func(c *PolygonsOnImage) []Polygon { return c.Polygons },
	}
}

func heatmapsCaps() normalization.HeatmapsCaps[*HeatmapsOnImage] {
	return normalization.HeatmapsCaps[*HeatmapsOnImage]{
		FromArray: func(arr *ndarray.Array, shape ndarray.Shape) (*HeatmapsOnImage, error) {
			return &HeatmapsOnImage{Arr: arr.AsType(ndarray.Float64), Shape: shape}, nil
		},
		Array: func(h *HeatmapsOnImage) *ndarray.Array { return h.Arr },
	}
}

func segmentationMapsCaps() normalization.SegmentationMapsCaps[*SegmentationMapsOnImage] {
	return normalization.SegmentationMapsCaps[*SegmentationMapsOnImage]{
		FromArray: func(arr *ndarray.Array, shape ndarray.Shape, nbClasses int) (*SegmentationMapsOnImage, error) {
			return &SegmentationMapsOnImage{Arr: arr.AsType(ndarray.Int32), Shape: shape, NbClasses: nbClasses}, nil
		},
		ArrayInt: func(s *SegmentationMapsOnImage) *ndarray.Array { return s.Arr },
	}
}

// arr builds an array or fails the calling test through a panic.
func arr(dtype ndarray.DType, shape ndarray.Shape, values ...float64) *ndarray.Array {
	if values == nil {
		values = make([]float64, shape.Size())
	}

	return ndarray.Must(ndarray.New(dtype, shape, values))
}

func shapes(n int) []ndarray.Shape {
	out := make([]ndarray.Shape, n)
	for i := range out {
		out[i] = ndarray.Shape{100, 100, 3}
	}

	return out
}
