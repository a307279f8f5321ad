// SPDX-License-Identifier: MIT
// Package: normalization
//
// Purpose:
//   - Map arbitrary Go values onto the closed set of structural roles the
//     classifier understands: absent, raw array, string-like leaf, sequence,
//     tuple, number, opaque leaf.
//   - Rebuild sequences and tuples on the inverse path so the caller gets
//     back the Go types it handed in.
//
// Reflection is confined to this file; everything above it works on the
// roles and never inspects types on its own.

package normalization

import (
	"fmt"
	"math"
	"reflect"

	"github.com/katalvlaran/augnorm/ndarray"
)

// isAbsent reports nil interfaces and typed nil pointers.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// asArray returns v as a non-nil raw array.
func asArray(v any) (*ndarray.Array, bool) {
	arr, ok := v.(*ndarray.Array)

	return arr, ok && arr != nil
}

// isStringLike reports strings (named or not) and byte slices, which are
// leaves rather than sequences of characters.
func isStringLike(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return true
	case reflect.Slice:
		return rv.Type().Elem().Kind() == reflect.Uint8
	default:
		return false
	}
}

// isSequence reports slices and Go arrays that are not string-like.
func isSequence(v any) bool {
	if v == nil || isStringLike(v) {
		return false
	}
	k := reflect.ValueOf(v).Kind()

	return k == reflect.Slice || k == reflect.Array
}

// isTuple reports Tuple values and Go arrays.
func isTuple(v any) bool {
	if _, ok := v.(Tuple); ok {
		return true
	}

	return v != nil && reflect.ValueOf(v).Kind() == reflect.Array && !isStringLike(v)
}

// items returns the elements of a sequence; nil for anything else.
func items(v any) []any {
	if !isSequence(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out
}

// sameIdentity reports whether first is the very same sequence as container
// (same type, backing array and length), the one case in which descending
// into a sequence would never terminate.
func sameIdentity(container, first any) bool {
	if first == nil {
		return false
	}
	c, f := reflect.ValueOf(container), reflect.ValueOf(first)
	if c.Kind() != reflect.Slice || f.Kind() != reflect.Slice || c.Type() != f.Type() {
		return false
	}

	return c.Len() > 0 && c.Len() == f.Len() && c.Pointer() == f.Pointer()
}

// isNumber reports plain integer and float values; bools are not numbers.
func isNumber(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// toFloat converts a number to float64.
func toFloat(v any) (float64, bool) {
	if !isNumber(v) {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	default:
		return rv.Float(), true
	}
}

// tupleFloats returns the numbers of a numeric tuple of exactly size elements.
func tupleFloats(v any, size int) ([]float64, error) {
	if !isTuple(v) {
		return nil, fmt.Errorf("%w: expected a tuple of %d numbers, got %T", ErrUnexpectedValue, size, v)
	}
	elems := items(v)
	if len(elems) != size {
		return nil, fmt.Errorf("%w: expected a tuple of %d numbers, got %d elements", ErrUnexpectedValue, size, len(elems))
	}
	out := make([]float64, size)
	for i, e := range elems {
		f, ok := toFloat(e)
		if !ok {
			return nil, fmt.Errorf("%w: tuple element %d is %T, not a number", ErrUnexpectedValue, i, e)
		}
		out[i] = f
	}

	return out, nil
}

// as converts v to T or reports the mismatch.
func as[T any](v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		return t, fmt.Errorf("%w: expected %s, got %T", ErrUnexpectedValue, TypeName[T](), v)
	}

	return t, nil
}

// allAs converts every element of a sequence to T.
// A []T input is returned as is.
func allAs[T any](v any) ([]T, error) {
	if ts, ok := v.([]T); ok {
		return ts, nil
	}
	elems := items(v)
	out := make([]T, len(elems))
	for i, e := range elems {
		t, err := as[T](e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = t
	}

	return out, nil
}

// elemAt returns the i-th element of sequence like, or its first element
// when i is out of range, or nil for an empty sequence.
func elemAt(like any, i int) any {
	elems := items(like)
	switch {
	case i < len(elems):
		return elems[i]
	case len(elems) > 0:
		return elems[0]
	default:
		return nil
	}
}

// rebuildSeq packs vals into a sequence of the same Go type as like when
// every value fits its element type, and into []any otherwise.
func rebuildSeq(like any, vals []any) any {
	if like != nil && !isStringLike(like) {
		rv := reflect.ValueOf(like)
		switch rv.Kind() {
		case reflect.Slice:
			out := reflect.MakeSlice(rv.Type(), len(vals), len(vals))
			if fill(out, vals) {
				return out.Interface()
			}
		case reflect.Array:
			if rv.Len() == len(vals) {
				out := reflect.New(rv.Type()).Elem()
				if fill(out, vals) {
					return out.Interface()
				}
			}
		}
	}

	return append([]any{}, vals...)
}

// fill assigns vals into the indexable out; false if any value does not fit.
func fill(out reflect.Value, vals []any) bool {
	et := out.Type().Elem()
	for i, v := range vals {
		if v == nil {
			switch et.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
				continue // zero value already in place
			default:
				return false
			}
		}
		vv := reflect.ValueOf(v)
		if !vv.Type().AssignableTo(et) {
			return false
		}
		out.Index(i).Set(vv)
	}

	return true
}

// rebuildTuple returns vals as a tuple of the same Go type as like.
// Element types of like are preserved (integers are rounded half-to-even);
// without a usable template the result is a Tuple of float64.
func rebuildTuple(like any, vals []float64) any {
	if like != nil {
		rv := reflect.ValueOf(like)
		switch {
		case rv.Kind() == reflect.Array && rv.Len() == len(vals):
			out := reflect.New(rv.Type()).Elem()
			ok := true
			for i, v := range vals {
				ok = ok && setNumber(out.Index(i), v)
			}
			if ok {
				return out.Interface()
			}
		case rv.Kind() == reflect.Slice && rv.Type() == reflect.TypeOf(Tuple(nil)):
			out := reflect.MakeSlice(rv.Type(), len(vals), len(vals))
			for i, v := range vals {
				out.Index(i).Set(reflect.ValueOf(numberLike(elemAt(like, i), v)))
			}

			return out.Interface()
		}
	}
	out := make(Tuple, len(vals))
	for i, v := range vals {
		out[i] = v
	}

	return out
}

// numberLike converts v into the Go type of proto when proto is a number.
func numberLike(proto any, v float64) any {
	if !isNumber(proto) {
		return v
	}
	out := reflect.New(reflect.TypeOf(proto)).Elem()
	setNumber(out, v)

	return out.Interface()
}

// setNumber stores v into dst according to dst's kind.
func setNumber(dst reflect.Value, v float64) bool {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(math.RoundToEven(v)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(int64(math.RoundToEven(v))))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(v)
	case reflect.Interface:
		dst.Set(reflect.ValueOf(v))
	default:
		return false
	}

	return true
}

// shallowCopy returns a copy of a sequence's top level; other values are returned as is.
func shallowCopy(v any) any {
	if !isSequence(v) {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array {
		return v // arrays are values
	}
	if rv.IsNil() {
		return v
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)

	return out.Interface()
}
