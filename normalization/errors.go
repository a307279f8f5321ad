// SPDX-License-Identifier: MIT
// Package normalization: sentinel error set.
// Typed errors below carry diagnostic fields and unwrap to these sentinels;
// tests and callers match them via errors.Is / errors.As.

package normalization

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownNormType is returned when the classified tag is not in the
	// whitelist of the domain being normalized.
	ErrUnknownNormType = errors.New("normalization: unknown datatype")

	// ErrShapeCountMismatch is returned when the number of image shapes does
	// not equal the number the normalization branch requires.
	ErrShapeCountMismatch = errors.New("normalization: image shape count mismatch")

	// ErrNestingTooDeep signals an input nested deeper than MaxNestingDepth.
	ErrNestingTooDeep = errors.New("normalization: input nested too deeply")

	// ErrAssertion marks a violated precondition (array rank, trailing axis size,
	// inverse consistency). It indicates caller or pipeline misuse, never a
	// condition to recover from.
	ErrAssertion = errors.New("normalization: assertion failed")

	// ErrUnexpectedValue indicates that an element does not have the Go type
	// its classification promised (e.g. a *Keypoint where Keypoint was expected).
	ErrUnexpectedValue = errors.New("normalization: unexpected value")
)

// UnknownNormTypeError describes an input whose tag is outside a domain whitelist.
type UnknownNormTypeError struct {
	Arg      string     // argument name, e.g. "keypoints"
	Expected []NormType // full whitelist of the domain
	Got      NormType   // tag actually computed
}

func (e *UnknownNormTypeError) Error() string {
	names := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		names[i] = string(t)
	}

	return fmt.Sprintf("%v for argument '%s'. Expected datatypes were: %s. Got: %s.",
		ErrUnknownNormType, e.Arg, strings.Join(names, ", "), e.Got)
}

func (e *UnknownNormTypeError) Unwrap() error { return ErrUnknownNormType }

// ShapeCountError describes a mismatch between supplied and required image shapes.
type ShapeCountError struct {
	From     NormType // tag of the input being converted
	To       string   // target representation, e.g. "[]KeypointsOnImage"
	Required int
	Actual   int  // number of supplied shapes; meaningless when Missing
	Missing  bool // shapes were not supplied at all
}

func (e *ShapeCountError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%v: tried to convert data of form '%s' to '%s'. This required %d "+
			"corresponding image shapes, but argument 'shapes' was None. This can happen "+
			"e.g. if no images were provided in a batch, as these would usually be used to "+
			"derive image shapes.", ErrShapeCountMismatch, e.From, e.To, e.Required)
	}

	return fmt.Sprintf("%v: tried to convert data of form '%s' to '%s'. This required exactly %d "+
		"corresponding image shapes, but instead %d were provided. This can happen e.g. if more "+
		"images were provided than corresponding augmentables, or if a list of N (x,y)-tuples "+
		"meant as one keypoint per image was parsed as N keypoints on one image. To avoid this, "+
		"prefer the canonical on-image containers (e.g. KeypointsOnImage) over lists of tuples.",
		ErrShapeCountMismatch, e.From, e.To, e.Required, e.Actual)
}

func (e *ShapeCountError) Unwrap() error { return ErrShapeCountMismatch }

// assertf returns an ErrAssertion wrapped with a formatted diagnostic.
func assertf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
}
