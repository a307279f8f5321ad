// SPDX-License-Identifier: MIT

package ndarray

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// FromImage converts a decoded image into a (height, width, 4) Uint8 array
// of non-premultiplied RGBA values.
func FromImage(img image.Image) *Array {
	nrgba := imaging.Clone(img) // normalizes any color model to NRGBA with origin (0,0)
	b := nrgba.Bounds()
	h, w := b.Dy(), b.Dx()

	data := make([]float64, 0, h*w*4)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for _, px := range row {
			data = append(data, float64(px))
		}
	}

	return &Array{dtype: Uint8, shape: Shape{h, w, 4}, data: data}
}

// ToNRGBA converts a (height, width, 4) array back into an image.
// Values are restored to Uint8 first, so float arrays are rounded.
func (a *Array) ToNRGBA() (*image.NRGBA, error) {
	if len(a.shape) != 3 || a.shape[2] != 4 {
		return nil, fmt.Errorf("Array.ToNRGBA: shape %v, expected (H, W, 4): %w", a.shape, ErrShapeMismatch)
	}
	px := a.Restore(Uint8)
	img := image.NewNRGBA(image.Rect(0, 0, a.shape[1], a.shape[0]))
	for i, v := range px.data {
		img.Pix[i] = uint8(v)
	}

	return img, nil
}
