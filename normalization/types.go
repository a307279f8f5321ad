// SPDX-License-Identifier: MIT

package normalization

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/katalvlaran/augnorm/ndarray"
)

// MaxNestingDepth is the deepest chain of sequences a tag can describe.
const MaxNestingDepth = 4

// NormType is a closed tag describing one recognized input shape,
// e.g. "None", "array[uint]", "KeypointsOnImage" or
// "iterable-iterable-tuple[number,size=4]".
type NormType string

// Tags shared by every domain.
const (
	TypeNone  NormType = "None"
	TypeEmpty NormType = "iterable[empty]"

	iterablePrefix = "iterable-"
)

// Iterable prefixes t with n levels of "iterable-".
func Iterable(n int, t NormType) NormType {
	return NormType(strings.Repeat(iterablePrefix, n)) + t
}

// ArrayType returns the tag of a raw array of the given kind.
// Known kinds are spelled out; unknown kinds are reported verbatim.
func ArrayType(kind ndarray.Kind) NormType {
	names := map[ndarray.Kind]string{
		ndarray.KindFloat: "float",
		ndarray.KindInt:   "int",
		ndarray.KindUint:  "uint",
		ndarray.KindBool:  "bool",
	}
	name, ok := names[kind]
	if !ok {
		name = string(kind)
	}

	return NormType("array[" + name + "]")
}

// TupleType returns the tag of a numeric tuple of the given size.
func TupleType(size int) NormType {
	return NormType(fmt.Sprintf("tuple[number,size=%d]", size))
}

// Commonly whitelisted leaf tags.
var (
	TypeArrayFloat = ArrayType(ndarray.KindFloat)
	TypeArrayInt   = ArrayType(ndarray.KindInt)
	TypeArrayUint  = ArrayType(ndarray.KindUint)
	TypeArrayBool  = ArrayType(ndarray.KindBool)
	TypeTuple2     = TupleType(2)
	TypeTuple4     = TupleType(4)
)

// Domain names one kind of augmentable.
type Domain string

const (
	DomainImages           Domain = "images"
	DomainHeatmaps         Domain = "heatmaps"
	DomainSegmentationMaps Domain = "segmentation_maps"
	DomainKeypoints        Domain = "keypoints"
	DomainBoundingBoxes    Domain = "bounding_boxes"
	DomainPolygons         Domain = "polygons"
)

// ArgName is the argument name reported in errors for d.
func (d Domain) ArgName() string { return string(d) }

// Tuple is a fixed-size group of values, the Go spelling of a coordinate
// tuple such as (x, y) or (x1, y1, x2, y2). A Tuple whose elements are all
// numbers classifies as "tuple[number,size=K]". Go arrays such as
// [2]float64 are treated as tuples as well.
type Tuple []any

// TypeName returns the class name used for leaves of type T:
// the Go type name with pointers dereferenced.
func TypeName[T any]() NormType {
	return NormType(typeNameOf(reflect.TypeOf((*T)(nil)).Elem()))
}

func typeNameOf(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}
