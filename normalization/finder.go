// SPDX-License-Identifier: MIT

package normalization

// FindFirstNonempty walks v depth-first and returns the first concrete leaf
// together with the chain of sequences leading to it, root first.
//
// Behavior highlights:
//   - nil, typed nil pointers and raw arrays are leaves; so are strings.
//   - An empty sequence yields found=false with the chain up to it.
//   - A sequence whose first element is itself is its own leaf.
//   - The first child reporting found wins; sibling branches are assumed to
//     hold the same kind of data.
//   - When no child succeeds, the deepest failed chain wins (ties: first),
//     as deeper empty nesting says more about the intended shape.
//
// FindFirstNonempty never fails.
// Complexity: O(number of visited elements).
func FindFirstNonempty(v any) (leaf any, found bool, ancestors []any) {
	return findFirstNonempty(v, nil)
}

func findFirstNonempty(v any, ancestors []any) (any, bool, []any) {
	if isAbsent(v) {
		return nil, true, ancestors
	}
	if _, ok := asArray(v); ok || !isSequence(v) {
		return v, true, ancestors
	}

	elems := items(v)
	if len(elems) == 0 {
		return nil, false, ancestors
	}
	if sameIdentity(v, elems[0]) {
		return v, true, ancestors
	}

	// fresh backing array per level so sibling chains never alias
	chain := make([]any, len(ancestors), len(ancestors)+1)
	copy(chain, ancestors)
	chain = append(chain, v)

	var deepestLeaf any
	deepest := ancestors
	for _, e := range elems {
		leaf, found, got := findFirstNonempty(e, chain)
		if found {
			return leaf, true, got
		}
		if len(got) > len(deepest) {
			deepestLeaf, deepest = leaf, got
		}
	}

	return deepestLeaf, false, deepest
}
