// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
)

// arrayMaps is the dense per-pixel normalizer shared by heatmaps and
// segmentation maps. Inputs are either arrays of one of the accepted kinds
// or containers of type M; the two domains differ only in those kinds, the
// per-image rank and how a container is built from one image's array.
type arrayMaps[M any] struct {
	domain    Domain
	opts      Options
	onImage   NormType
	kinds     []NormType // accepted array tags
	rank      int        // rank of one image's array
	layout    string     // per-image axes, for diagnostics
	build     func(arr *ndarray.Array, shape ndarray.Shape) (M, error)
	payload   func(m M) *ndarray.Array
	whitelist []NormType
}

func newArrayMaps[M any](d Domain, kinds []NormType, rank int, layout string, opts []Option) arrayMaps[M] {
	onImage := TypeName[M]()

	// Scalar tags first, then the same tags one level down.
	whitelist := []NormType{TypeNone}
	whitelist = append(whitelist, kinds...)
	whitelist = append(whitelist, onImage, TypeEmpty)
	for _, k := range kinds {
		whitelist = append(whitelist, Iterable(1, k))
	}
	whitelist = append(whitelist, Iterable(1, onImage), Iterable(1, TypeEmpty))

	return arrayMaps[M]{
		domain:    d,
		opts:      gatherOptions(d, opts...),
		onImage:   onImage,
		kinds:     kinds,
		rank:      rank,
		layout:    layout,
		whitelist: whitelist,
	}
}

// Whitelist returns the tags this normalizer accepts.
func (n *arrayMaps[M]) Whitelist() []NormType {
	return append([]NormType(nil), n.whitelist...)
}

// EstimateNormType classifies inputs and checks the tag against the whitelist.
func (n *arrayMaps[M]) EstimateNormType(inputs any) (NormType, error) {
	return estimate(inputs, n.whitelist, n.opts.argName)
}

func (n *arrayMaps[M]) isArrayTag(ntype NormType, depth int) bool {
	for _, k := range n.kinds {
		if ntype == Iterable(depth, k) {
			return true
		}
	}

	return false
}

// Normalize converts inputs into one container per image.
//
// Accepted inputs:
//   - nil, empty or nested-empty sequences   → nil
//   - array (N, <image axes>)                 → N containers, N shapes required
//   - a single M                              → []M{m}
//   - sequence of (<image axes>) arrays       → one container each, len shapes required
//   - sequence of M                           → passed through, shapes ignored
func (n *arrayMaps[M]) Normalize(inputs any, shapes any) ([]M, error) {
	ntype, err := n.EstimateNormType(inputs)
	if err != nil {
		return nil, err
	}
	shp, err := PreprocessShapes(shapes)
	if err != nil {
		return nil, err
	}
	to := "[]" + string(n.onImage)

	var out []M
	switch {
	case ntype == TypeNone, ntype == TypeEmpty, ntype == Iterable(1, TypeEmpty):
		return nil, nil
	case n.isArrayTag(ntype, 0):
		arr, _ := asArray(inputs)
		if err := requireShapes(shp, arr.Len(), ntype, to); err != nil {
			return nil, err
		}
		if arr.NDim() != n.rank+1 {
			return nil, assertf("%s array must be (N,%s), got %v", n.domain, n.layout, arr.Shape())
		}
		if out, err = n.fromArrays(arr.Unstack(), shp); err != nil {
			return nil, err
		}
	case ntype == n.onImage:
		m, err := as[M](inputs)
		if err != nil {
			return nil, err
		}
		out = []M{m}
	case n.isArrayTag(ntype, 1):
		arrs, err := allAs[*ndarray.Array](inputs)
		if err != nil {
			return nil, err
		}
		if err := requireShapes(shp, len(arrs), ntype, to); err != nil {
			return nil, err
		}
		for i, a := range arrs {
			if a.NDim() != n.rank {
				return nil, assertf("%s[%d] must be (%s), got %v", n.domain, i, n.layout, a.Shape())
			}
		}
		if out, err = n.fromArrays(arrs, shp); err != nil {
			return nil, err
		}
	default: // Iterable(1, n.onImage)
		if out, err = allAs[M](inputs); err != nil {
			return nil, err
		}
	}
	n.opts.debug(n.domain, ntype, len(out), "normalized")

	return out, nil
}

func (n *arrayMaps[M]) fromArrays(arrs []*ndarray.Array, shapes []ndarray.Shape) ([]M, error) {
	out := make([]M, len(arrs))
	for i, a := range arrs {
		m, err := n.build(a, shapes[i])
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", n.domain, i, err)
		}
		out[i] = m
	}

	return out, nil
}

// Invert converts containers produced by Normalize back into the shape of
// old, the original input. Array inputs come back with their original dtype,
// whatever dtype the containers store.
func (n *arrayMaps[M]) Invert(maps []M, old any) (any, error) {
	ntype, err := n.EstimateNormType(old)
	if err != nil {
		return nil, err
	}
	n.opts.debug(n.domain, ntype, len(maps), "inverting")

	switch {
	case ntype == TypeNone:
		if len(maps) != 0 {
			return nil, assertf("expected no %s for None input, got %d", n.domain, len(maps))
		}

		return nil, nil
	case n.isArrayTag(ntype, 0):
		arr, _ := asArray(old)
		if len(maps) != arr.Len() {
			return nil, assertf("expected %d %s, got %d", arr.Len(), n.domain, len(maps))
		}
		payloads := make([]any, len(maps))
		for i, m := range maps {
			payloads[i] = n.payload(m)
		}

		return RestoreDtypeAndMerge(payloads, arr.DType()), nil
	case ntype == n.onImage:
		if len(maps) != 1 {
			return nil, assertf("expected 1 %s container, got %d", n.domain, len(maps))
		}

		return maps[0], nil
	case ntype == TypeEmpty, ntype == Iterable(1, TypeEmpty):
		if len(maps) != 0 {
			return nil, assertf("expected no %s for empty input, got %d", n.domain, len(maps))
		}

		return shallowCopy(old), nil
	case n.isArrayTag(ntype, 1):
		if len(maps) != len(items(old)) {
			return nil, assertf("expected %d %s, got %d", len(items(old)), n.domain, len(maps))
		}
		dtype := leafDType(old)
		out := make([]any, len(maps))
		for i, m := range maps {
			out[i] = RestoreDtypeAndMerge(n.payload(m), dtype)
		}

		return rebuildSeq(old, out), nil
	default: // Iterable(1, n.onImage)
		return rebuildSeq(old, toAnys(maps)), nil
	}
}

// leafDType returns the dtype of the first array found in v.
func leafDType(v any) ndarray.DType {
	leaf, _, _ := FindFirstNonempty(v)
	if arr, ok := asArray(leaf); ok {
		return arr.DType()
	}

	return ndarray.Invalid
}

func toAnys[T any](ts []T) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = t
	}

	return out
}
