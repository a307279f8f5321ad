// SPDX-License-Identifier: MIT

// Package normalization: functional configuration for the domain normalizers.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Options never change which tag an input is classified as; they only affect
// diagnostics (logger, argument name) and the dtype used when nested literal
// coordinates are packed into arrays.
package normalization

import (
	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/sirupsen/logrus"
)

// DefaultCoordsDType is the dtype nested literal coordinates are packed into
// before they reach a container constructor.
const DefaultCoordsDType = ndarray.Float64

const (
	panicNilLogger        = "normalization: WithLogger: logger must not be nil"
	panicEmptyArgName     = "normalization: WithArgName: name must not be empty"
	panicCoordsDTypeFloat = "normalization: WithCoordsDType: dtype must be a float dtype"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	logger      logrus.FieldLogger // dispatch diagnostics at debug level
	argName     string             // argument named in unknown-datatype errors
	coordsDType ndarray.DType      // DefaultCoordsDType
}

// WithLogger routes dispatch diagnostics to logger.
// Panics if logger is nil.
func WithLogger(logger logrus.FieldLogger) Option {
	if logger == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = logger }
}

// WithArgName overrides the argument name reported by unknown-datatype errors.
// Panics if name is empty.
func WithArgName(name string) Option {
	if name == "" {
		panic(panicEmptyArgName)
	}

	return func(o *Options) { o.argName = name }
}

// WithCoordsDType sets the dtype used to pack nested literal coordinates.
// Panics unless dtype is a float dtype.
func WithCoordsDType(dtype ndarray.DType) Option {
	if dtype.Kind() != ndarray.KindFloat {
		panic(panicCoordsDTypeFloat)
	}

	return func(o *Options) { o.coordsDType = dtype }
}

// gatherOptions resolves opts on top of the defaults for domain d.
func gatherOptions(d Domain, opts ...Option) Options {
	o := Options{
		logger:      logrus.StandardLogger(),
		argName:     d.ArgName(),
		coordsDType: DefaultCoordsDType,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// debug logs one dispatch decision.
func (o Options) debug(d Domain, ntype NormType, count int, msg string) {
	o.logger.WithFields(logrus.Fields{
		"domain": string(d),
		"ntype":  string(ntype),
		"count":  count,
	}).Debug(msg)
}
