// SPDX-License-Identifier: MIT

package augmentables

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

// Keypoint is a single point on an image.
type Keypoint struct {
	X, Y float64
}

// KeypointsOnImage holds the keypoints placed on one image.
type KeypointsOnImage struct {
	Keypoints []Keypoint
	Shape     ndarray.Shape // shape of the image, e.g. (H, W, C)
}

// NewKeypointsOnImage copies kps and shape into a new container.
func NewKeypointsOnImage(kps []Keypoint, shape ndarray.Shape) *KeypointsOnImage {
	return &KeypointsOnImage{
		Keypoints: append([]Keypoint(nil), kps...),
		Shape:     shape.Clone(),
	}
}

// KeypointsFromXYArray builds a container from a numeric (K, 2) array.
func KeypointsFromXYArray(xy *ndarray.Array, shape ndarray.Shape) (*KeypointsOnImage, error) {
	if err := checkPoints(xy, 2); err != nil {
		return nil, fmt.Errorf("KeypointsFromXYArray: %w", err)
	}
	vals := xy.Values()
	kps := make([]Keypoint, xy.Len())
	for i := range kps {
		kps[i] = Keypoint{X: vals[2*i], Y: vals[2*i+1]}
	}

	return &KeypointsOnImage{Keypoints: kps, Shape: shape.Clone()}, nil
}

// ToXYArray returns the coordinates as a float64 (K, 2) array.
func (k *KeypointsOnImage) ToXYArray() *ndarray.Array {
	data := make([]float64, 0, 2*len(k.Keypoints))
	for _, kp := range k.Keypoints {
		data = append(data, kp.X, kp.Y)
	}

	return ndarray.Must(ndarray.New(ndarray.Float64, ndarray.Shape{len(k.Keypoints), 2}, data))
}

// Shift returns a copy with every keypoint moved by (dx, dy).
func (k *KeypointsOnImage) Shift(dx, dy float64) *KeypointsOnImage {
	out := NewKeypointsOnImage(k.Keypoints, k.Shape)
	for i := range out.Keypoints {
		out.Keypoints[i].X += dx
		out.Keypoints[i].Y += dy
	}

	return out
}

// KeypointsCaps binds Keypoint and KeypointsOnImage to the keypoints normalizer.
func KeypointsCaps() normalization.KeypointsCaps[Keypoint, *KeypointsOnImage] {
	return normalization.KeypointsCaps[Keypoint, *KeypointsOnImage]{
		NewKeypoint: func(x, y float64) Keypoint { return Keypoint{X: x, Y: y} },
		KeypointXY:  func(kp Keypoint) (float64, float64) { return kp.X, kp.Y },
		NewOnImage: func(kps []Keypoint, shape ndarray.Shape) (*KeypointsOnImage, error) {
			return NewKeypointsOnImage(kps, shape), nil
		},
		Keypoints:       func(c *KeypointsOnImage) []Keypoint { return c.Keypoints },
		FromCoordsArray: KeypointsFromXYArray,
		CoordsArray:     (*KeypointsOnImage).ToXYArray,
	}
}

// checkPoints verifies that arr is a numeric (N, width) array.
func checkPoints(arr *ndarray.Array, width int) error {
	if arr == nil {
		return ndarray.ErrNilArray
	}
	if k := arr.DType().Kind(); k == ndarray.KindBool {
		return fmt.Errorf("%w: %v", ErrPayloadDType, arr.DType())
	}
	if s := arr.Shape(); len(s) != 2 || s[1] != width {
		return fmt.Errorf("%w: %v, expected (N,%d)", ErrPayloadShape, s, width)
	}

	return nil
}
