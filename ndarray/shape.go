// SPDX-License-Identifier: MIT

package ndarray

import (
	"strconv"
	"strings"
)

// Shape lists the extent of every axis, outermost first.
// An image shape descriptor is a Shape of the form (height, width[, channels]).
type Shape []int

// Size returns the number of elements a Shape spans (1 for a 0-d shape).
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}

	return n
}

// Equal reports whether s and o have the same rank and extents.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy of s.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}

	return append(Shape(nil), s...)
}

// String renders s in tuple form, e.g. "(480, 640, 3)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	if len(s) == 1 {
		return "(" + parts[0] + ",)"
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// validate rejects negative extents.
func (s Shape) validate() error {
	for _, d := range s {
		if d < 0 {
			return ErrBadShape
		}
	}

	return nil
}
