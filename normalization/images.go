// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"
	"image"

	"github.com/katalvlaran/augnorm/ndarray"
)

// NormalizeImages brings images into channel-last form.
//
//   - nil                 → nil
//   - (H, W) array        → (1, H, W, 1) array
//   - (N, H, W) array     → (N, H, W, 1) array
//   - any other array     → unchanged
//   - image.Image         → []*ndarray.Array with one (H, W, 4) Uint8 array
//   - sequence            → []*ndarray.Array; (H, W) members gain a channel
//     axis, (H, W, C) members are kept, image.Image members are converted.
func NormalizeImages(images any) (any, error) {
	if isAbsent(images) {
		return nil, nil
	}
	if arr, ok := asArray(images); ok {
		switch arr.NDim() {
		case 2:
			return arr.Reshape(1, arr.Shape()[0], arr.Shape()[1], 1)
		case 3:
			return arr.ExpandDims(3)
		default:
			return arr, nil
		}
	}
	if img, ok := images.(image.Image); ok {
		return []*ndarray.Array{ndarray.FromImage(img)}, nil
	}
	if !isSequence(images) {
		return nil, fmt.Errorf("%w: expected argument 'images' to be nil, an array, an image or a sequence of those, got %T",
			ErrUnexpectedValue, images)
	}

	elems := items(images)
	out := make([]*ndarray.Array, len(elems))
	for i, e := range elems {
		arr, err := imageArray(e)
		if err != nil {
			return nil, fmt.Errorf("images[%d]: %w", i, err)
		}
		switch arr.NDim() {
		case 2:
			if out[i], err = arr.ExpandDims(2); err != nil {
				return nil, err
			}
		case 3:
			out[i] = arr
		default:
			return nil, assertf("images[%d] must be (H,W) or (H,W,C), got %v", i, arr.Shape())
		}
	}

	return out, nil
}

func imageArray(v any) (*ndarray.Array, error) {
	if arr, ok := asArray(v); ok {
		return arr, nil
	}
	if img, ok := v.(image.Image); ok && !isAbsent(v) {
		return ndarray.FromImage(img), nil
	}

	return nil, fmt.Errorf("%w: expected an array or image, got %T", ErrUnexpectedValue, v)
}

// InvertNormalizeImages undoes NormalizeImages: images is the normalized
// form, old the original input. Channel axes added on the way in are
// dropped again and image.Image members come back as *image.NRGBA.
func InvertNormalizeImages(images any, old any) (any, error) {
	if isAbsent(old) {
		if !isAbsent(images) {
			return nil, assertf("expected no images for nil input, got %T", images)
		}

		return nil, nil
	}
	if oldArr, ok := asArray(old); ok {
		arr, ok := asArray(images)
		if !ok {
			return nil, assertf("expected an array for array input, got %T", images)
		}
		s := arr.Shape()
		switch oldArr.NDim() {
		case 2:
			if arr.NDim() != 4 || s[0] != 1 || s[3] != 1 {
				return nil, assertf("expected a (1,H,W,1) array, got %v", s)
			}

			return arr.Reshape(s[1], s[2])
		case 3:
			if arr.NDim() != 4 || s[3] != 1 {
				return nil, assertf("expected a (N,H,W,1) array, got %v", s)
			}

			return arr.DropAxis(3)
		default:
			return arr, nil
		}
	}

	arrs, err := allAs[*ndarray.Array](images)
	if err != nil {
		return nil, err
	}

	if _, ok := old.(image.Image); ok {
		if len(arrs) != 1 {
			return nil, assertf("expected 1 image, got %d", len(arrs))
		}

		return arrs[0].ToNRGBA()
	}
	if !isSequence(old) {
		return nil, fmt.Errorf("%w: expected argument 'images_old' to be nil, an array, an image or a sequence of those, got %T",
			ErrUnexpectedValue, old)
	}

	olds := items(old)
	if len(olds) != len(arrs) {
		return nil, assertf("expected %d images, got %d", len(olds), len(arrs))
	}
	out := make([]any, len(arrs))
	for i, arr := range arrs {
		if out[i], err = invertImage(arr, olds[i]); err != nil {
			return nil, fmt.Errorf("images[%d]: %w", i, err)
		}
	}

	return rebuildSeq(old, out), nil
}

func invertImage(arr *ndarray.Array, old any) (any, error) {
	if oldArr, ok := asArray(old); ok {
		if oldArr.NDim() == 2 {
			return arr.DropAxis(2)
		}
		if arr.NDim() != 3 || oldArr.NDim() != 3 {
			return nil, assertf("expected (H,W,C) arrays, got %v for original %v", arr.Shape(), oldArr.Shape())
		}

		return arr, nil
	}
	if _, ok := old.(image.Image); ok {
		return arr.ToNRGBA()
	}

	return nil, fmt.Errorf("%w: expected an array or image, got %T", ErrUnexpectedValue, old)
}
