// SPDX-License-Identifier: MIT
// Package augmentables: sentinel error set.
// Constructors validate their payload and return these sentinels wrapped
// with context; callers match them via errors.Is.

package augmentables

import "errors"

var (
	// ErrValueRange is returned when a payload holds values outside the range
	// its container declares (heatmap bounds, class ids).
	ErrValueRange = errors.New("augmentables: value out of range")

	// ErrPolygonPoints is returned when a polygon exterior is not a
	// non-empty (#points, 2) array.
	ErrPolygonPoints = errors.New("augmentables: invalid polygon points")

	// ErrPayloadShape is returned when a payload array has the wrong rank or
	// trailing axis for its container.
	ErrPayloadShape = errors.New("augmentables: invalid payload shape")

	// ErrPayloadDType is returned when a payload array has a dtype kind the
	// container cannot hold.
	ErrPayloadDType = errors.New("augmentables: invalid payload dtype")
)
