// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"
	"reflect"
	"slices"
)

// EstimateNormalizationType classifies v into a NormType.
//
// Steps:
//   - Stage 1: FindFirstNonempty.
//   - Stage 2: nothing found → "iterable[empty]" with one "iterable-" per level.
//   - Stage 3: leaf inside a non-empty all-number tuple → "tuple[number,size=K]",
//     the tuple itself not counting as an iterable level.
//   - Stage 4: absent → "None"; raw array → "array[<kind>]"; else the Go type name.
//
// The result depends on v alone, so classifying the same input twice
// always yields the same tag.
//
// Errors: ErrNestingTooDeep when the chain exceeds MaxNestingDepth.
func EstimateNormalizationType(v any) (NormType, error) {
	leaf, found, ancestors := FindFirstNonempty(v)

	return typeFromNonempty(leaf, found, ancestors)
}

func typeFromNonempty(leaf any, found bool, ancestors []any) (NormType, error) {
	depth := len(ancestors)
	if depth > MaxNestingDepth {
		return "", fmt.Errorf("%w: %d levels, at most %d supported", ErrNestingTooDeep, depth, MaxNestingDepth)
	}
	if !found {
		return Iterable(depth, TypeEmpty), nil
	}

	if depth >= 1 && isTuple(ancestors[depth-1]) {
		elems := items(ancestors[depth-1])
		if len(elems) > 0 && slices.IndexFunc(elems, func(e any) bool { return !isNumber(e) }) < 0 {
			return Iterable(depth-1, TupleType(len(elems))), nil
		}
	}

	if isAbsent(leaf) {
		return TypeNone, nil
	}
	if arr, ok := asArray(leaf); ok {
		return Iterable(depth, ArrayType(arr.DType().Kind())), nil
	}

	return Iterable(depth, NormType(typeNameOf(reflect.TypeOf(leaf)))), nil
}

// checkNormType verifies that ntype belongs to the whitelist.
func checkNormType(ntype NormType, whitelist []NormType, argName string) error {
	if slices.Contains(whitelist, ntype) {
		return nil
	}

	return &UnknownNormTypeError{Arg: argName, Expected: slices.Clone(whitelist), Got: ntype}
}

// estimate classifies v and checks it against whitelist.
func estimate(v any, whitelist []NormType, argName string) (NormType, error) {
	ntype, err := EstimateNormalizationType(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", argName, err)
	}
	if err := checkNormType(ntype, whitelist, argName); err != nil {
		return "", err
	}

	return ntype, nil
}

