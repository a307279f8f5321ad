// SPDX-License-Identifier: MIT

package augmentables

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

// BoundingBox is an axis-aligned box given by its top-left (X1, Y1) and
// bottom-right (X2, Y2) corners.
type BoundingBox struct {
	X1, Y1, X2, Y2 float64
	Label          string
}

// NewBoundingBox orders the corners so that X1 <= X2 and Y1 <= Y2.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (b BoundingBox) Width() float64  { return b.X2 - b.X1 }
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }
func (b BoundingBox) Area() float64   { return b.Width() * b.Height() }

// BoundingBoxesOnImage holds the boxes placed on one image.
type BoundingBoxesOnImage struct {
	Boxes []BoundingBox
	Shape ndarray.Shape
}

// NewBoundingBoxesOnImage copies boxes and shape into a new container.
func NewBoundingBoxesOnImage(boxes []BoundingBox, shape ndarray.Shape) *BoundingBoxesOnImage {
	return &BoundingBoxesOnImage{
		Boxes: append([]BoundingBox(nil), boxes...),
		Shape: shape.Clone(),
	}
}

// BoundingBoxesFromXYXYArray builds a container from a numeric (B, 4) array
// of (x1, y1, x2, y2) rows.
func BoundingBoxesFromXYXYArray(xyxy *ndarray.Array, shape ndarray.Shape) (*BoundingBoxesOnImage, error) {
	if err := checkPoints(xyxy, 4); err != nil {
		return nil, fmt.Errorf("BoundingBoxesFromXYXYArray: %w", err)
	}
	vals := xyxy.Values()
	boxes := make([]BoundingBox, xyxy.Len())
	for i := range boxes {
		r := vals[4*i : 4*i+4]
		boxes[i] = NewBoundingBox(r[0], r[1], r[2], r[3])
	}

	return &BoundingBoxesOnImage{Boxes: boxes, Shape: shape.Clone()}, nil
}

// ToXYXYArray returns the corners as a float64 (B, 4) array.
func (b *BoundingBoxesOnImage) ToXYXYArray() *ndarray.Array {
	data := make([]float64, 0, 4*len(b.Boxes))
	for _, bb := range b.Boxes {
		data = append(data, bb.X1, bb.Y1, bb.X2, bb.Y2)
	}

	return ndarray.Must(ndarray.New(ndarray.Float64, ndarray.Shape{len(b.Boxes), 4}, data))
}

// BoundingBoxesCaps binds BoundingBox and BoundingBoxesOnImage to the
// bounding boxes normalizer.
func BoundingBoxesCaps() normalization.BoundingBoxesCaps[BoundingBox, *BoundingBoxesOnImage] {
	return normalization.BoundingBoxesCaps[BoundingBox, *BoundingBoxesOnImage]{
		NewBox: NewBoundingBox,
		BoxXYXY: func(b BoundingBox) (float64, float64, float64, float64) {
			return b.X1, b.Y1, b.X2, b.Y2
		},
		NewOnImage: func(boxes []BoundingBox, shape ndarray.Shape) (*BoundingBoxesOnImage, error) {
			return NewBoundingBoxesOnImage(boxes, shape), nil
		},
		Boxes:         func(c *BoundingBoxesOnImage) []BoundingBox { return c.Boxes },
		FromXYXYArray: BoundingBoxesFromXYXYArray,
		XYXYArray:     (*BoundingBoxesOnImage).ToXYXYArray,
	}
}
