// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
)

// PolygonsCaps is the capability set of a polygon type P, its per-image
// container type C and the keypoint type K accepted as a polygon point.
type PolygonsCaps[K, P, C any] struct {
	NewKeypoint func(x, y float64) K
	KeypointXY  func(kp K) (x, y float64)
	// NewPolygon builds a polygon from a (#points, 2) exterior array.
	NewPolygon func(exterior *ndarray.Array) (P, error)
	// Exterior returns the exterior ring of p as a (#points, 2) array.
	Exterior   func(p P) *ndarray.Array
	NewOnImage func(polys []P, shape ndarray.Shape) (C, error)
	Polygons   func(c C) []P
}

// PolygonsNormalizer converts polygon inputs to and from []C.
type PolygonsNormalizer[K, P, C any] struct {
	caps      PolygonsCaps[K, P, C]
	opts      Options
	point     NormType
	leaf      NormType
	onImage   NormType
	whitelist []NormType
}

// NewPolygonsNormalizer binds caps to a normalizer.
func NewPolygonsNormalizer[K, P, C any](caps PolygonsCaps[K, P, C], opts ...Option) *PolygonsNormalizer[K, P, C] {
	point, leaf, onImage := TypeName[K](), TypeName[P](), TypeName[C]()

	return &PolygonsNormalizer[K, P, C]{
		caps:    caps,
		opts:    gatherOptions(DomainPolygons, opts...),
		point:   point,
		leaf:    leaf,
		onImage: onImage,
		whitelist: []NormType{
			TypeNone,
			TypeArrayFloat,
			TypeArrayInt,
			TypeArrayUint,
			leaf,
			onImage,
			TypeEmpty,
			Iterable(1, TypeArrayFloat),
			Iterable(1, TypeArrayInt),
			Iterable(1, TypeArrayUint),
			Iterable(1, TypeTuple2),
			Iterable(1, point),
			Iterable(1, leaf),
			Iterable(1, onImage),
			Iterable(1, TypeEmpty),
			Iterable(2, TypeArrayFloat),
			Iterable(2, TypeArrayInt),
			Iterable(2, TypeArrayUint),
			Iterable(2, TypeTuple2),
			Iterable(2, point),
			Iterable(2, leaf),
			Iterable(2, TypeEmpty),
			Iterable(3, TypeTuple2),
			Iterable(3, point),
		},
	}
}

// Whitelist returns the tags this normalizer accepts.
func (n *PolygonsNormalizer[K, P, C]) Whitelist() []NormType {
	return append([]NormType(nil), n.whitelist...)
}

// EstimateNormType classifies inputs and checks the tag against the whitelist.
func (n *PolygonsNormalizer[K, P, C]) EstimateNormType(inputs any) (NormType, error) {
	return estimate(inputs, n.whitelist, n.opts.argName)
}

func (n *PolygonsNormalizer[K, P, C]) isArrayTag(ntype NormType, depth int) bool {
	return ntype == Iterable(depth, TypeArrayFloat) ||
		ntype == Iterable(depth, TypeArrayInt) ||
		ntype == Iterable(depth, TypeArrayUint)
}

func (n *PolygonsNormalizer[K, P, C]) isPointTag(ntype NormType, depth int) bool {
	return ntype == Iterable(depth, TypeTuple2) || ntype == Iterable(depth, n.point)
}

// Normalize converts inputs into one container per image.
//
// A polygon is written as a (#points, 2) array, a sequence of Tuple{x, y},
// a sequence of K, or a P. Accepted inputs:
//   - nil, empty or nested-empty sequences     → nil
//   - numeric array (N, #polys, #points, 2)    → N containers, N shapes
//   - a single P                               → one container, 1 shape
//   - a single C                               → []C{c}
//   - sequence of (#polys, #points, 2) arrays  → one container each, len shapes
//   - one polygon as points                    → one container, 1 shape
//   - sequence of P                            → one container, 1 shape
//   - sequence of C                            → passed through, shapes ignored
//   - per image: sequence of exterior arrays   → one container each, len shapes
//   - sequence of polygons as points           → one container, 1 shape
//   - per image: sequence of P                 → one container each, len shapes
//   - per image: sequence of polygons as points → one container each, len shapes
func (n *PolygonsNormalizer[K, P, C]) Normalize(inputs any, shapes any) ([]C, error) {
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
	switch {
	case ntype == TypeNone, ntype == TypeEmpty, ntype == Iterable(1, TypeEmpty), ntype == Iterable(2, TypeEmpty):
		return nil, nil
	case n.isArrayTag(ntype, 0):
		arr, _ := asArray(inputs)
		if err := requireShapes(shp, arr.Len(), ntype, to); err != nil {
			return nil, err
		}
		if arr.NDim() != 4 || arr.Shape()[3] != 2 {
			return nil, assertf("polygons array must be (N,#polys,#points,2), got %v", arr.Shape())
		}
		groups := make([][]P, arr.Len())
		for i, img := range arr.Unstack() {
			if groups[i], err = n.fromExteriors(img.Unstack()); err != nil {
				return nil, fmt.Errorf("polygons[%d]: %w", i, err)
			}
		}
		out, err = n.onImages(groups, shp)
	case ntype == n.leaf:
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var p P
		if p, err = as[P](inputs); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]P{{p}}, shp)
	case ntype == n.onImage:
		var c C
		if c, err = as[C](inputs); err != nil {
			return nil, err
		}
		out = []C{c}
	case n.isArrayTag(ntype, 1):
		var arrs []*ndarray.Array
		if arrs, err = allAs[*ndarray.Array](inputs); err != nil {
			return nil, err
		}
		if err := requireShapes(shp, len(arrs), ntype, to); err != nil {
			return nil, err
		}
		groups := make([][]P, len(arrs))
		for i, a := range arrs {
			if a.NDim() != 3 || a.Shape()[2] != 2 {
				return nil, assertf("polygons[%d] must be (#polys,#points,2), got %v", i, a.Shape())
			}
			if groups[i], err = n.fromExteriors(a.Unstack()); err != nil {
				return nil, fmt.Errorf("polygons[%d]: %w", i, err)
			}
		}
		out, err = n.onImages(groups, shp)
	case n.isPointTag(ntype, 1):
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var p P
		if p, err = n.polygon(inputs); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]P{{p}}, shp)
	case ntype == Iterable(1, n.leaf):
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var polys []P
		if polys, err = allAs[P](inputs); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]P{polys}, shp)
	case ntype == Iterable(1, n.onImage):
		out, err = allAs[C](inputs)
	case n.isArrayTag(ntype, 2):
		outer := items(inputs)
		if err := requireShapes(shp, len(outer), ntype, to); err != nil {
			return nil, err
		}
		groups := make([][]P, len(outer))
		for i, inner := range outer {
			var arrs []*ndarray.Array
			if arrs, err = allAs[*ndarray.Array](inner); err != nil {
				return nil, fmt.Errorf("polygons[%d]: %w", i, err)
			}
			if groups[i], err = n.fromExteriors(arrs); err != nil {
				return nil, fmt.Errorf("polygons[%d]: %w", i, err)
			}
		}
		out, err = n.onImages(groups, shp)
	case n.isPointTag(ntype, 2):
		if err := requireShapes(shp, 1, ntype, to); err != nil {
			return nil, err
		}
		var polys []P
		if polys, err = n.polygons(items(inputs)); err != nil {
			return nil, err
		}
		out, err = n.onImages([][]P{polys}, shp)
	case ntype == Iterable(2, n.leaf):
		outer := items(inputs)
		if err := requireShapes(shp, len(outer), ntype, to); err != nil {
			return nil, err
		}
		groups := make([][]P, len(outer))
		for i, inner := range outer {
			if groups[i], err = allAs[P](inner); err != nil {
				return nil, fmt.Errorf("polygons[%d]: %w", i, err)
			}
		}
		out, err = n.onImages(groups, shp)
	default: // Iterable(3, TypeTuple2), Iterable(3, n.point)
		outer := items(inputs)
		if err := requireShapes(shp, len(outer), ntype, to); err != nil {
			return nil, err
		}
		groups := make([][]P, len(outer))
		for i, inner := range outer {
			if groups[i], err = n.polygons(items(inner)); err != nil {
				return nil, fmt.Errorf("polygons[%d]: %w", i, err)
			}
		}
		out, err = n.onImages(groups, shp)
	}
	if err != nil {
		return nil, err
	}
	n.opts.debug(DomainPolygons, ntype, len(out), "normalized")

	return out, nil
}

// polygon builds one polygon from a sequence of Tuple{x, y} or K points.
func (n *PolygonsNormalizer[K, P, C]) polygon(points any) (P, error) {
	exterior, err := packCoords(items(points), 2, n.opts.coordsDType, n.caps.KeypointXY)
	if err != nil {
		var zero P
		return zero, err
	}

	return n.caps.NewPolygon(exterior)
}

func (n *PolygonsNormalizer[K, P, C]) polygons(vals []any) ([]P, error) {
	out := make([]P, len(vals))
	for i, v := range vals {
		p, err := n.polygon(v)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		out[i] = p
	}

	return out, nil
}

func (n *PolygonsNormalizer[K, P, C]) fromExteriors(exteriors []*ndarray.Array) ([]P, error) {
	out := make([]P, len(exteriors))
	for i, e := range exteriors {
		if e.NDim() != 2 || e.Shape()[1] != 2 {
			return nil, assertf("polygon %d exterior must be (#points,2), got %v", i, e.Shape())
		}
		p, err := n.caps.NewPolygon(e)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		out[i] = p
	}

	return out, nil
}

func (n *PolygonsNormalizer[K, P, C]) onImages(groups [][]P, shapes []ndarray.Shape) ([]C, error) {
	out := make([]C, len(groups))
	for i, polys := range groups {
		c, err := n.caps.NewOnImage(polys, shapes[i])
		if err != nil {
			return nil, fmt.Errorf("polygons[%d]: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}

// Invert converts containers produced by Normalize back into the shape of
// old, the original input.
func (n *PolygonsNormalizer[K, P, C]) Invert(psois []C, old any) (any, error) {
	ntype, err := n.EstimateNormType(old)
	if err != nil {
		return nil, err
	}
	n.opts.debug(DomainPolygons, ntype, len(psois), "inverting")

	switch {
	case ntype == TypeNone:
		if len(psois) != 0 {
			return nil, assertf("expected no polygons for None input, got %d", len(psois))
		}

		return nil, nil
	case n.isArrayTag(ntype, 0):
		arr, _ := asArray(old)
		if len(psois) != arr.Len() {
			return nil, assertf("expected %d polygon sets, got %d", arr.Len(), len(psois))
		}
		exteriors := make([]any, len(psois))
		for i, c := range psois {
			exteriors[i] = n.exteriors(c)
		}

		return RestoreDtypeAndMerge(exteriors, arr.DType()), nil
	case ntype == n.leaf:
		polys, err := n.single(psois)
		if err != nil {
			return nil, err
		}
		if len(polys) != 1 {
			return nil, assertf("expected 1 polygon, got %d", len(polys))
		}

		return polys[0], nil
	case ntype == n.onImage:
		if len(psois) != 1 {
			return nil, assertf("expected 1 polygon set, got %d", len(psois))
		}

		return psois[0], nil
	case ntype == TypeEmpty, ntype == Iterable(1, TypeEmpty), ntype == Iterable(2, TypeEmpty):
		if len(psois) != 0 {
			return nil, assertf("expected no polygons for empty input, got %d", len(psois))
		}

		return shallowCopy(old), nil
	case n.isArrayTag(ntype, 1):
		if len(psois) != len(items(old)) {
			return nil, assertf("expected %d polygon sets, got %d", len(items(old)), len(psois))
		}
		dtype := leafDType(old)
		out := make([]any, len(psois))
		for i, c := range psois {
			out[i] = RestoreDtypeAndMerge(n.exteriors(c), dtype)
		}

		return rebuildSeq(old, out), nil
	case n.isPointTag(ntype, 1):
		polys, err := n.single(psois)
		if err != nil {
			return nil, err
		}
		if len(polys) != 1 {
			return nil, assertf("expected 1 polygon, got %d", len(polys))
		}

		return rebuildSeq(old, n.points(polys[0], ntype == Iterable(1, n.point), old)), nil
	case ntype == Iterable(1, n.leaf):
		polys, err := n.single(psois)
		if err != nil {
			return nil, err
		}
		if len(polys) != len(items(old)) {
			return nil, assertf("expected %d polygons, got %d", len(items(old)), len(polys))
		}

		return rebuildSeq(old, toAnys(polys)), nil
	case ntype == Iterable(1, n.onImage):
		return rebuildSeq(old, toAnys(psois)), nil
	case n.isArrayTag(ntype, 2):
		if len(psois) != len(items(old)) {
			return nil, assertf("expected %d polygon sets, got %d", len(items(old)), len(psois))
		}
		dtype := leafDType(old)
		out := make([]any, len(psois))
		for i, c := range psois {
			polys := n.caps.Polygons(c)
			exteriors := make([]any, len(polys))
			for j, p := range polys {
				exteriors[j] = n.caps.Exterior(p).Restore(dtype)
			}
			out[i] = rebuildSeq(elemAt(old, i), exteriors)
		}

		return rebuildSeq(old, out), nil
	case n.isPointTag(ntype, 2):
		polys, err := n.single(psois)
		if err != nil {
			return nil, err
		}

		return rebuildSeq(old, n.pointLists(polys, ntype == Iterable(2, n.point), old, old)), nil
	case ntype == Iterable(2, n.leaf):
		if len(psois) != len(items(old)) {
			return nil, assertf("expected %d polygon sets, got %d", len(items(old)), len(psois))
		}
		out := make([]any, len(psois))
		for i, c := range psois {
			out[i] = rebuildSeq(elemAt(old, i), toAnys(n.caps.Polygons(c)))
		}

		return rebuildSeq(old, out), nil
	default: // Iterable(3, TypeTuple2), Iterable(3, n.point)
		if len(psois) != len(items(old)) {
			return nil, assertf("expected %d polygon sets, got %d", len(items(old)), len(psois))
		}
		asLeaf := ntype == Iterable(3, n.point)
		out := make([]any, len(psois))
		for i, c := range psois {
			out[i] = rebuildSeq(elemAt(old, i), n.pointLists(n.caps.Polygons(c), asLeaf, elemAt(old, i), old))
		}

		return rebuildSeq(old, out), nil
	}
}

func (n *PolygonsNormalizer[K, P, C]) single(psois []C) ([]P, error) {
	if len(psois) != 1 {
		return nil, assertf("expected 1 polygon set, got %d", len(psois))
	}

	return n.caps.Polygons(psois[0]), nil
}

// exteriors returns the exterior arrays of every polygon in c.
func (n *PolygonsNormalizer[K, P, C]) exteriors(c C) []any {
	polys := n.caps.Polygons(c)
	out := make([]any, len(polys))
	for i, p := range polys {
		out[i] = n.caps.Exterior(p)
	}

	return out
}

// points returns the exterior of p as K values or as tuples shaped like the
// first tuple of old.
func (n *PolygonsNormalizer[K, P, C]) points(p P, asLeaf bool, old any) []any {
	ext := n.caps.Exterior(p)
	vals := ext.Values()
	proto := firstTuple(old)
	out := make([]any, ext.Len())
	for i := range out {
		x, y := vals[2*i], vals[2*i+1]
		if asLeaf {
			out[i] = n.caps.NewKeypoint(x, y)
		} else {
			out[i] = rebuildTuple(proto, []float64{x, y})
		}
	}

	return out
}

// pointLists returns one rebuilt point sequence per polygon; like supplies
// the sequence types, old the tuple prototype.
func (n *PolygonsNormalizer[K, P, C]) pointLists(polys []P, asLeaf bool, like, old any) []any {
	out := make([]any, len(polys))
	for i, p := range polys {
		out[i] = rebuildSeq(elemAt(like, i), n.points(p, asLeaf, old))
	}

	return out
}
