// SPDX-License-Identifier: MIT

package ndarray

import (
	"math"

	"github.com/x448/float16"
)

// Kind is the one-letter storage kind of a DType, following the usual
// array-library codes: "b" bool, "i" signed int, "u" unsigned int, "f" float.
type Kind string

const (
	KindBool  Kind = "b"
	KindInt   Kind = "i"
	KindUint  Kind = "u"
	KindFloat Kind = "f"

	// KindVoid is reported for dtypes this package does not know,
	// e.g. the zero DType of an uninitialized Array.
	KindVoid Kind = "V"
)

// DType enumerates the element types an Array can hold.
type DType int

const (
	// Invalid is the zero DType; New rejects it.
	Invalid DType = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
)

type dtypeInfo struct {
	name string
	kind Kind
}

var dtypes = map[DType]dtypeInfo{
	Bool:    {"bool", KindBool},
	Int8:    {"int8", KindInt},
	Int16:   {"int16", KindInt},
	Int32:   {"int32", KindInt},
	Int64:   {"int64", KindInt},
	Uint8:   {"uint8", KindUint},
	Uint16:  {"uint16", KindUint},
	Uint32:  {"uint32", KindUint},
	Uint64:  {"uint64", KindUint},
	Float16: {"float16", KindFloat},
	Float32: {"float32", KindFloat},
	Float64: {"float64", KindFloat},
}

// Valid reports whether d is one of the known dtypes.
func (d DType) Valid() bool {
	_, ok := dtypes[d]

	return ok
}

// String returns the dtype name, e.g. "uint8".
func (d DType) String() string {
	if info, ok := dtypes[d]; ok {
		return info.name
	}

	return "invalid"
}

// Kind returns the storage kind of d, or KindVoid for unknown dtypes.
func (d DType) Kind() Kind {
	if info, ok := dtypes[d]; ok {
		return info.kind
	}

	return KindVoid
}

// IsInteger reports whether d is a signed or unsigned integer dtype.
func (d DType) IsInteger() bool {
	k := d.Kind()

	return k == KindInt || k == KindUint
}

// cast converts v to the value d can represent, the way a direct
// element-wise conversion would: floats are truncated toward zero for
// integer targets and out-of-range integers wrap around.
func (d DType) cast(v float64) float64 {
	switch d {
	case Bool:
		if v != 0 {
			return 1
		}

		return 0
	case Int8:
		return float64(int8(int64(v)))
	case Int16:
		return float64(int16(int64(v)))
	case Int32:
		return float64(int32(int64(v)))
	case Int64:
		return float64(int64(v))
	case Uint8:
		return float64(uint8(int64(v)))
	case Uint16:
		return float64(uint16(int64(v)))
	case Uint32:
		return float64(uint32(int64(v)))
	case Uint64:
		if v >= 0 {
			return float64(uint64(v))
		}

		return float64(uint64(int64(v)))
	case Float16:
		return float64(float16.Fromfloat32(float32(v)).Float32())
	case Float32:
		return float64(float32(v))
	default:
		return v
	}
}

// restore is cast preceded by half-to-even rounding for bool and integer targets.
func (d DType) restore(v float64) float64 {
	if d.IsInteger() || d == Bool {
		v = math.RoundToEven(v)
	}

	return d.cast(v)
}
