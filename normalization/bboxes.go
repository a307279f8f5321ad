// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
)

// BoundingBoxesCaps is the capability set of a bounding box type B and its
// per-image container type C.
type BoundingBoxesCaps[B, C any] struct {
	NewBox     func(x1, y1, x2, y2 float64) B
	BoxXYXY    func(b B) (x1, y1, x2, y2 float64)
	NewOnImage func(boxes []B, shape ndarray.Shape) (C, error)
	Boxes      func(c C) []B
	// FromXYXYArray builds a container from a (B, 4) array of corner coordinates.
	FromXYXYArray func(arr *ndarray.Array, shape ndarray.Shape) (C, error)
	// XYXYArray returns the corner coordinates of a container as a (B, 4) array.
	XYXYArray func(c C) *ndarray.Array
}

// BoundingBoxesNormalizer converts bounding box inputs to and from []C.
type BoundingBoxesNormalizer[B, C any] struct {
	caps      BoundingBoxesCaps[B, C]
	opts      Options
	leaf      NormType
	onImage   NormType
	whitelist []NormType
}

// NewBoundingBoxesNormalizer binds caps to a normalizer.
func NewBoundingBoxesNormalizer[B, C any](caps BoundingBoxesCaps[B, C], opts ...Option) *BoundingBoxesNormalizer[B, C] {
	leaf, onImage := TypeName[B](), TypeName[C]()

	return &BoundingBoxesNormalizer[B, C]{
		caps:    caps,
		opts:    gatherOptions(DomainBoundingBoxes, opts...),
		leaf:    leaf,
		onImage: onImage,
		whitelist: []NormType{
			TypeNone,
			TypeArrayFloat,
			TypeArrayInt,
			TypeArrayUint,
			TypeTuple4,
			leaf,
			onImage,
			TypeEmpty,
			Iterable(1, TypeArrayFloat),
			Iterable(1, TypeArrayInt),
			Iterable(1, TypeArrayUint),
			Iterable(1, TypeTuple4),
			Iterable(1, leaf),
			Iterable(1, onImage),
			Iterable(1, TypeEmpty),
			Iterable(2, TypeTuple4),
			Iterable(2, leaf),
		},
	}
}

// Whitelist returns the tags this normalizer accepts.
func (n *BoundingBoxesNormalizer[B, C]) Whitelist() []NormType {
	return append([]NormType(nil), n.whitelist...)
}

// EstimateNormType classifies inputs and checks the tag against the whitelist.
func (n *BoundingBoxesNormalizer[B, C]) EstimateNormType(inputs any) (NormType, error) {
	return estimate(inputs, n.whitelist, n.opts.argName)
}

// Normalize converts inputs into one container per image.
//
// Accepted inputs mirror KeypointsNormalizer.Normalize with (x1, y1, x2, y2)
// tuples, B leaves and (N, B, 4) / (B, 4) arrays.
func (n *BoundingBoxesNormalizer[B, C]) Normalize(inputs any, shapes any) ([]C, error) {
	ntype, err := n.EstimateNormType(inputs)
	if err != nil {
		return nil, err
	}
	shp, err := PreprocessShapes(shapes)
	if err != nil {
		return nil, err
	}
	to := "[]" + string(n.onImage)

	var out []C
	switch ntype {
	case TypeNone, TypeEmpty, Iterable(1, TypeEmpty):
		return nil, nil
	case TypeArrayFloat, TypeArrayInt, TypeArrayUint:
		arr, _ := asArray(inputs)
		if err := requireShapes(shp, arr.Len(), ntype, to); err != nil {
			return nil, err
		}
		if arr.NDim() != 3 || arr.Shape()[2] != 4 {
			return nil, assertf("bounding boxes array must be (N,B,4), got %v", arr.Shape())
		}
		out, err = n.fromXYXY(arr.Unstack(), shp)
	case TypeTuple4, n.leaf:
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var boxes []B
		if boxes, err = n.boxes([]any{inputs}); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]B{boxes}, shp)
	case n.onImage:
		var c C
		if c, err = as[C](inputs); err != nil {
			return nil, err
		}
		out = []C{c}
	case Iterable(1, TypeArrayFloat), Iterable(1, TypeArrayInt), Iterable(1, TypeArrayUint):
		var arrs []*ndarray.Array
		if arrs, err = allAs[*ndarray.Array](inputs); err != nil {
			return nil, err
		}
		if err := requireShapes(shp, len(arrs), ntype, to); err != nil {
			return nil, err
		}
		for i, a := range arrs {
			if a.NDim() != 2 || a.Shape()[1] != 4 {
				return nil, assertf("bounding_boxes[%d] must be (B,4), got %v", i, a.Shape())
			}
		}
		out, err = n.fromXYXY(arrs, shp)
	case Iterable(1, TypeTuple4), Iterable(1, n.leaf):
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var boxes []B
		if boxes, err = n.boxes(items(inputs)); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]B{boxes}, shp)
	case Iterable(2, TypeTuple4):
		outer := items(inputs)
		if err := requireShapes(shp, len(outer), ntype, to); err != nil {
			return nil, err
		}
		arrs := make([]*ndarray.Array, len(outer))
		for i, inner := range outer {
			if arrs[i], err = packCoords[B](items(inner), 4, n.opts.coordsDType, nil); err != nil {
				return nil, fmt.Errorf("bounding_boxes[%d]: %w", i, err)
			}
		}
		out, err = n.fromXYXY(arrs, shp)
	case Iterable(2, n.leaf):
		outer := items(inputs)
		if err := requireShapes(shp, len(outer), ntype, to); err != nil {
			return nil, err
		}
		groups := make([][]B, len(outer))
		for i, inner := range outer {
			if groups[i], err = allAs[B](inner); err != nil {
				return nil, fmt.Errorf("bounding_boxes[%d]: %w", i, err)
			}
		}
		out, err = n.onImages(groups, shp)
	default: // Iterable(1, n.onImage)
		out, err = allAs[C](inputs)
	}
	if err != nil {
		return nil, err
	}
	n.opts.debug(DomainBoundingBoxes, ntype, len(out), "normalized")

	return out, nil
}

// boxes converts (x1, y1, x2, y2) tuples or B values into boxes.
func (n *BoundingBoxesNormalizer[B, C]) boxes(vals []any) ([]B, error) {
	out := make([]B, len(vals))
	for i, v := range vals {
		if b, ok := v.(B); ok {
			out[i] = b
			continue
		}
		xyxy, err := tupleFloats(v, 4)
		if err != nil {
			return nil, fmt.Errorf("bounding box %d: %w", i, err)
		}
		out[i] = n.caps.NewBox(xyxy[0], xyxy[1], xyxy[2], xyxy[3])
	}

	return out, nil
}

func (n *BoundingBoxesNormalizer[B, C]) fromXYXY(arrs []*ndarray.Array, shapes []ndarray.Shape) ([]C, error) {
	out := make([]C, len(arrs))
	for i, a := range arrs {
		c, err := n.caps.FromXYXYArray(a, shapes[i])
		if err != nil {
			return nil, fmt.Errorf("bounding_boxes[%d]: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}

func (n *BoundingBoxesNormalizer[B, C]) onImages(groups [][]B, shapes []ndarray.Shape) ([]C, error) {
	out := make([]C, len(groups))
	for i, boxes := range groups {
		c, err := n.caps.NewOnImage(boxes, shapes[i])
		if err != nil {
			return nil, fmt.Errorf("bounding_boxes[%d]: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}

// Invert converts containers produced by Normalize back into the shape of
// old, the original input.
func (n *BoundingBoxesNormalizer[B, C]) Invert(bbsois []C, old any) (any, error) {
	ntype, err := n.EstimateNormType(old)
	if err != nil {
		return nil, err
	}
	n.opts.debug(DomainBoundingBoxes, ntype, len(bbsois), "inverting")

	switch ntype {
	case TypeNone:
		if len(bbsois) != 0 {
			return nil, assertf("expected no bounding boxes for None input, got %d", len(bbsois))
		}

		return nil, nil
	case TypeArrayFloat, TypeArrayInt, TypeArrayUint:
		arr, _ := asArray(old)
		if len(bbsois) != arr.Len() {
			return nil, assertf("expected %d bounding box sets, got %d", arr.Len(), len(bbsois))
		}
		coords := make([]any, len(bbsois))
		for i, c := range bbsois {
			coords[i] = n.caps.XYXYArray(c)
		}

		return RestoreDtypeAndMerge(coords, arr.DType()), nil
	case TypeTuple4, n.leaf:
		boxes, err := n.single(bbsois)
		if err != nil {
			return nil, err
		}
		if len(boxes) != 1 {
			return nil, assertf("expected 1 bounding box, got %d", len(boxes))
		}
		if ntype == n.leaf {
			return boxes[0], nil
		}

		return rebuildTuple(old, n.xyxy(boxes[0])), nil
	case n.onImage:
		if len(bbsois) != 1 {
			return nil, assertf("expected 1 bounding box set, got %d", len(bbsois))
		}

		return bbsois[0], nil
	case TypeEmpty, Iterable(1, TypeEmpty):
		if len(bbsois) != 0 {
			return nil, assertf("expected no bounding boxes for empty input, got %d", len(bbsois))
		}

		return shallowCopy(old), nil
	case Iterable(1, TypeArrayFloat), Iterable(1, TypeArrayInt), Iterable(1, TypeArrayUint):
		if len(bbsois) != len(items(old)) {
			return nil, assertf("expected %d bounding box sets, got %d", len(items(old)), len(bbsois))
		}
		dtype := leafDType(old)
		out := make([]any, len(bbsois))
		for i, c := range bbsois {
			out[i] = RestoreDtypeAndMerge(n.caps.XYXYArray(c), dtype)
		}

		return rebuildSeq(old, out), nil
	case Iterable(1, TypeTuple4), Iterable(1, n.leaf):
		boxes, err := n.single(bbsois)
		if err != nil {
			return nil, err
		}

		return rebuildSeq(old, n.fromBoxes(boxes, ntype == Iterable(1, n.leaf), old)), nil
	case Iterable(2, TypeTuple4), Iterable(2, n.leaf):
		if len(bbsois) != len(items(old)) {
			return nil, assertf("expected %d bounding box sets, got %d", len(items(old)), len(bbsois))
		}
		asLeaf := ntype == Iterable(2, n.leaf)
		out := make([]any, len(bbsois))
		for i, c := range bbsois {
			out[i] = rebuildSeq(elemAt(old, i), n.fromBoxes(n.caps.Boxes(c), asLeaf, old))
		}

		return rebuildSeq(old, out), nil
	default: // Iterable(1, n.onImage)
		return rebuildSeq(old, toAnys(bbsois)), nil
	}
}

func (n *BoundingBoxesNormalizer[B, C]) single(bbsois []C) ([]B, error) {
	if len(bbsois) != 1 {
		return nil, assertf("expected 1 bounding box set, got %d", len(bbsois))
	}

	return n.caps.Boxes(bbsois[0]), nil
}

func (n *BoundingBoxesNormalizer[B, C]) xyxy(b B) []float64 {
	x1, y1, x2, y2 := n.caps.BoxXYXY(b)

	return []float64{x1, y1, x2, y2}
}

// fromBoxes returns boxes as B values or as tuples shaped like the first tuple of old.
func (n *BoundingBoxesNormalizer[B, C]) fromBoxes(boxes []B, asLeaf bool, old any) []any {
	if asLeaf {
		return toAnys(boxes)
	}
	proto := firstTuple(old)
	out := make([]any, len(boxes))
	for i, b := range boxes {
		out[i] = rebuildTuple(proto, n.xyxy(b))
	}

	return out
}
