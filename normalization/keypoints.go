// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
)

// KeypointsCaps is the capability set of a keypoint type K and its
// per-image container type C.
type KeypointsCaps[K, C any] struct {
	NewKeypoint func(x, y float64) K
	KeypointXY  func(kp K) (x, y float64)
	NewOnImage  func(kps []K, shape ndarray.Shape) (C, error)
	Keypoints   func(c C) []K
	// FromCoordsArray builds a container from a (K, 2) array of xy-coordinates.
	FromCoordsArray func(arr *ndarray.Array, shape ndarray.Shape) (C, error)
	// CoordsArray returns the xy-coordinates of a container as a (K, 2) array.
	CoordsArray func(c C) *ndarray.Array
}

// KeypointsNormalizer converts keypoint inputs to and from []C.
type KeypointsNormalizer[K, C any] struct {
	caps      KeypointsCaps[K, C]
	opts      Options
	leaf      NormType
	onImage   NormType
	whitelist []NormType
}

// NewKeypointsNormalizer binds caps to a normalizer.
func NewKeypointsNormalizer[K, C any](caps KeypointsCaps[K, C], opts ...Option) *KeypointsNormalizer[K, C] {
	leaf, onImage := TypeName[K](), TypeName[C]()

	return &KeypointsNormalizer[K, C]{
		caps:    caps,
		opts:    gatherOptions(DomainKeypoints, opts...),
		leaf:    leaf,
		onImage: onImage,
		whitelist: []NormType{
			TypeNone,
			TypeArrayFloat,
			TypeArrayInt,
			TypeArrayUint,
			TypeTuple2,
			leaf,
			onImage,
			TypeEmpty,
			Iterable(1, TypeArrayFloat),
			Iterable(1, TypeArrayInt),
			Iterable(1, TypeArrayUint),
			Iterable(1, TypeTuple2),
			Iterable(1, leaf),
			Iterable(1, onImage),
			Iterable(1, TypeEmpty),
			Iterable(2, TypeTuple2),
			Iterable(2, leaf),
		},
	}
}

// Whitelist returns the tags this normalizer accepts.
func (n *KeypointsNormalizer[K, C]) Whitelist() []NormType {
	return append([]NormType(nil), n.whitelist...)
}

// EstimateNormType classifies inputs and checks the tag against the whitelist.
func (n *KeypointsNormalizer[K, C]) EstimateNormType(inputs any) (NormType, error) {
	return estimate(inputs, n.whitelist, n.opts.argName)
}

// Normalize converts inputs into one container per image.
//
// Accepted inputs:
//   - nil, empty or nested-empty sequences          → nil
//   - numeric array (N, K, 2)                        → N containers, N shapes
//   - Tuple{x, y} or a single K                      → one container, 1 shape
//   - a single C                                     → []C{c}
//   - sequence of numeric (K, 2) arrays              → one container each, len shapes
//   - sequence of Tuple{x, y} or of K                → all on one image, 1 shape
//   - sequence of C                                  → passed through, shapes ignored
//   - sequence of sequences of Tuple{x, y} or of K   → one container per outer element
func (n *KeypointsNormalizer[K, C]) Normalize(inputs any, shapes any) ([]C, error) {
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
		if arr.NDim() != 3 || arr.Shape()[2] != 2 {
			return nil, assertf("keypoints array must be (N,K,2), got %v", arr.Shape())
		}
		out, err = n.fromCoords(arr.Unstack(), shp)
	case TypeTuple2, n.leaf:
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var kps []K
		if kps, err = n.keypoints([]any{inputs}); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]K{kps}, shp)
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
			if a.NDim() != 2 || a.Shape()[1] != 2 {
				return nil, assertf("keypoints[%d] must be (K,2), got %v", i, a.Shape())
			}
		}
		out, err = n.fromCoords(arrs, shp)
	case Iterable(1, TypeTuple2), Iterable(1, n.leaf):
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var kps []K
		if kps, err = n.keypoints(items(inputs)); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]K{kps}, shp)
	case Iterable(2, TypeTuple2):
		outer := items(inputs)
		if err := requireShapes(shp, len(outer), ntype, to); err != nil {
			return nil, err
		}
		arrs := make([]*ndarray.Array, len(outer))
		for i, inner := range outer {
			if arrs[i], err = packCoords(items(inner), 2, n.opts.coordsDType, n.caps.KeypointXY); err != nil {
				return nil, fmt.Errorf("keypoints[%d]: %w", i, err)
			}
		}
		out, err = n.fromCoords(arrs, shp)
	case Iterable(2, n.leaf):
		outer := items(inputs)
		if err := requireShapes(shp, len(outer), ntype, to); err != nil {
			return nil, err
		}
		groups := make([][]K, len(outer))
		for i, inner := range outer {
			if groups[i], err = allAs[K](inner); err != nil {
				return nil, fmt.Errorf("keypoints[%d]: %w", i, err)
			}
		}
		out, err = n.onImages(groups, shp)
	default: // Iterable(1, n.onImage)
		out, err = allAs[C](inputs)
	}
	if err != nil {
		return nil, err
	}
	n.opts.debug(DomainKeypoints, ntype, len(out), "normalized")

	return out, nil
}

// keypoints converts Tuple{x, y} or K values into keypoints.
func (n *KeypointsNormalizer[K, C]) keypoints(vals []any) ([]K, error) {
	out := make([]K, len(vals))
	for i, v := range vals {
		if kp, ok := v.(K); ok {
			out[i] = kp
			continue
		}
		xy, err := tupleFloats(v, 2)
		if err != nil {
			return nil, fmt.Errorf("keypoint %d: %w", i, err)
		}
		out[i] = n.caps.NewKeypoint(xy[0], xy[1])
	}

	return out, nil
}

func (n *KeypointsNormalizer[K, C]) fromCoords(arrs []*ndarray.Array, shapes []ndarray.Shape) ([]C, error) {
	out := make([]C, len(arrs))
	for i, a := range arrs {
		c, err := n.caps.FromCoordsArray(a, shapes[i])
		if err != nil {
			return nil, fmt.Errorf("keypoints[%d]: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}

func (n *KeypointsNormalizer[K, C]) onImages(groups [][]K, shapes []ndarray.Shape) ([]C, error) {
	out := make([]C, len(groups))
	for i, kps := range groups {
		c, err := n.caps.NewOnImage(kps, shapes[i])
		if err != nil {
			return nil, fmt.Errorf("keypoints[%d]: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}

// Invert converts containers produced by Normalize back into the shape of
// old, the original input.
func (n *KeypointsNormalizer[K, C]) Invert(kpsois []C, old any) (any, error) {
	ntype, err := n.EstimateNormType(old)
	if err != nil {
		return nil, err
	}
	n.opts.debug(DomainKeypoints, ntype, len(kpsois), "inverting")

	switch ntype {
	case TypeNone:
		if len(kpsois) != 0 {
			return nil, assertf("expected no keypoints for None input, got %d", len(kpsois))
		}

		return nil, nil
	case TypeArrayFloat, TypeArrayInt, TypeArrayUint:
		arr, _ := asArray(old)
		if len(kpsois) != arr.Len() {
			return nil, assertf("expected %d keypoint sets, got %d", arr.Len(), len(kpsois))
		}
		coords := make([]any, len(kpsois))
		for i, c := range kpsois {
			coords[i] = n.caps.CoordsArray(c)
		}

		return RestoreDtypeAndMerge(coords, arr.DType()), nil
	case TypeTuple2, n.leaf:
		kps, err := n.single(kpsois)
		if err != nil {
			return nil, err
		}
		if len(kps) != 1 {
			return nil, assertf("expected 1 keypoint, got %d", len(kps))
		}
		if ntype == n.leaf {
			return kps[0], nil
		}
		x, y := n.caps.KeypointXY(kps[0])

		return rebuildTuple(old, []float64{x, y}), nil
	case n.onImage:
		if len(kpsois) != 1 {
			return nil, assertf("expected 1 keypoint set, got %d", len(kpsois))
		}

		return kpsois[0], nil
	case TypeEmpty, Iterable(1, TypeEmpty):
		if len(kpsois) != 0 {
			return nil, assertf("expected no keypoints for empty input, got %d", len(kpsois))
		}

		return shallowCopy(old), nil
	case Iterable(1, TypeArrayFloat), Iterable(1, TypeArrayInt), Iterable(1, TypeArrayUint):
		if len(kpsois) != len(items(old)) {
			return nil, assertf("expected %d keypoint sets, got %d", len(items(old)), len(kpsois))
		}
		dtype := leafDType(old)
		out := make([]any, len(kpsois))
		for i, c := range kpsois {
			out[i] = RestoreDtypeAndMerge(n.caps.CoordsArray(c), dtype)
		}

		return rebuildSeq(old, out), nil
	case Iterable(1, TypeTuple2), Iterable(1, n.leaf):
		kps, err := n.single(kpsois)
		if err != nil {
			return nil, err
		}

		return rebuildSeq(old, n.fromKeypoints(kps, ntype == Iterable(1, n.leaf), old)), nil
	case Iterable(2, TypeTuple2), Iterable(2, n.leaf):
		if len(kpsois) != len(items(old)) {
			return nil, assertf("expected %d keypoint sets, got %d", len(items(old)), len(kpsois))
		}
		asLeaf := ntype == Iterable(2, n.leaf)
		out := make([]any, len(kpsois))
		for i, c := range kpsois {
			inner := elemAt(old, i)
			out[i] = rebuildSeq(inner, n.fromKeypoints(n.caps.Keypoints(c), asLeaf, old))
		}

		return rebuildSeq(old, out), nil
	default: // Iterable(1, n.onImage)
		return rebuildSeq(old, toAnys(kpsois)), nil
	}
}

// single returns the keypoints of the only container in kpsois.
func (n *KeypointsNormalizer[K, C]) single(kpsois []C) ([]K, error) {
	if len(kpsois) != 1 {
		return nil, assertf("expected 1 keypoint set, got %d", len(kpsois))
	}

	return n.caps.Keypoints(kpsois[0]), nil
}

// fromKeypoints returns kps as K values or as tuples shaped like the first tuple of old.
func (n *KeypointsNormalizer[K, C]) fromKeypoints(kps []K, asLeaf bool, old any) []any {
	if asLeaf {
		return toAnys(kps)
	}
	proto := firstTuple(old)
	out := make([]any, len(kps))
	for i, kp := range kps {
		x, y := n.caps.KeypointXY(kp)
		out[i] = rebuildTuple(proto, []float64{x, y})
	}

	return out
}

// firstTuple returns the tuple enclosing the first leaf of v, if any.
func firstTuple(v any) any {
	_, found, ancestors := FindFirstNonempty(v)
	if !found || len(ancestors) == 0 {
		return nil
	}
	if last := ancestors[len(ancestors)-1]; isTuple(last) {
		return last
	}

	return nil
}

// packCoords packs tuples or point-like leaves into a (len(vals), size) array.
// xy converts point-like leaves of type P; nil disables them.
func packCoords[P any](vals []any, size int, dtype ndarray.DType, xy func(P) (float64, float64)) (*ndarray.Array, error) {
	data := make([]float64, 0, len(vals)*size)
	for i, v := range vals {
		if p, ok := v.(P); ok && xy != nil && size == 2 {
			x, y := xy(p)
			data = append(data, x, y)
			continue
		}
		coords, err := tupleFloats(v, size)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		data = append(data, coords...)
	}

	return ndarray.New(dtype, ndarray.Shape{len(vals), size}, data)
}
