// SPDX-License-Identifier: MIT

package normalization

import (
	"github.com/katalvlaran/augnorm/ndarray"
)

// RestoreDtypeAndMerge converts arrays back to dtype and merges lists of
// equally shaped arrays into one block.
//
// Implementation:
//   - Stage 1: recurse into []any and []*ndarray.Array (post-order).
//   - Stage 2: restore every array leaf to dtype (ndarray.Restore: rounding
//     for integer targets, direct cast, no clamping).
//   - Stage 3: a non-empty list whose members are all arrays of one shape is
//     stacked along a new first axis; any other list is kept, as
//     []*ndarray.Array when every member is an array and []any otherwise.
//
// Values of any other type are returned unchanged.
// Complexity: O(total elements).
func RestoreDtypeAndMerge(v any, dtype ndarray.DType) any {
	switch t := v.(type) {
	case *ndarray.Array:
		if t == nil {
			return t
		}

		return t.Restore(dtype)
	case []*ndarray.Array:
		elems := make([]any, len(t))
		for i, a := range t {
			elems[i] = a
		}

		return mergeList(elems, dtype)
	case []any:
		return mergeList(t, dtype)
	default:
		return v
	}
}

func mergeList(elems []any, dtype ndarray.DType) any {
	restored := make([]any, len(elems))
	arrs := make([]*ndarray.Array, 0, len(elems))
	for i, e := range elems {
		restored[i] = RestoreDtypeAndMerge(e, dtype)
		if arr, ok := asArray(restored[i]); ok {
			arrs = append(arrs, arr)
		}
	}
	if len(arrs) != len(restored) {
		return restored
	}
	if len(arrs) > 0 {
		if stacked, err := ndarray.Stack(arrs); err == nil {
			return stacked
		}
	}

	return arrs
}
