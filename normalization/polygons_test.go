package normalization_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
	"github.com/stretchr/testify/require"
)

func triangle(offset float64) *ndarray.Array {
	return arr(ndarray.Float64, ndarray.Shape{3, 2},
		offset, offset, offset+2, offset, offset+1, offset+2)
}

func TestPolygonsNormalizer_Whitelist(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	wl := n.Whitelist()
	require.Len(t, wl, 24)
	require.Contains(t, wl, normalization.NormType("iterable-iterable-iterable-Keypoint"))
	require.Contains(t, wl, normalization.NormType("iterable-iterable-iterable[empty]"))
	require.NotContains(t, wl, normalization.TypeTuple2)
}

func TestPolygonsNormalizer_Array(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	in := arr(ndarray.Int32, ndarray.Shape{1, 2, 3, 2},
		0, 0, 2, 0, 1, 2,
		5, 5, 7, 5, 6, 7)

	psois, err := n.Normalize(in, shapes(1))
	require.NoError(t, err)
	require.Len(t, psois, 1)
	require.Len(t, psois[0].Polygons, 2)
	require.Empty(t, cmp.Diff(triangle(5), psois[0].Polygons[1].Exterior))

	got, err := n.Invert(psois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(in, got))

	_, err = n.Normalize(arr(ndarray.Int32, ndarray.Shape{1, 3, 2}), shapes(1))
	require.Error(t, err)
}

func TestPolygonsNormalizer_Leaf(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	poly := Polygon{Exterior: triangle(0)}

	psois, err := n.Normalize(poly, shapes(1))
	require.NoError(t, err)
	require.Len(t, psois[0].Polygons, 1)

	got, err := n.Invert(psois, poly)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(poly, got))
}

func TestPolygonsNormalizer_PointsOfOnePolygon(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())

	tuples := []normalization.Tuple{{0, 0}, {2, 0}, {1, 2}}
	psois, err := n.Normalize(tuples, shapes(1))
	require.NoError(t, err)
	require.Len(t, psois, 1)
	require.Len(t, psois[0].Polygons, 1)
	require.Empty(t, cmp.Diff(triangle(0), psois[0].Polygons[0].Exterior))

	got, err := n.Invert(psois, tuples)
	require.NoError(t, err)
	require.Equal(t, tuples, got)

	kps := []Keypoint{{0, 0}, {2, 0}, {1, 2}}
	psois, err = n.Normalize(kps, shapes(1))
	require.NoError(t, err)
	got, err = n.Invert(psois, kps)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(kps, got))
}

func TestPolygonsNormalizer_IterableOfPolygons(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	in := []Polygon{{Exterior: triangle(0)}, {Exterior: triangle(3)}}

	psois, err := n.Normalize(in, shapes(1))
	require.NoError(t, err)
	require.Len(t, psois[0].Polygons, 2)

	got, err := n.Invert(psois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(in, got))

	psois[0].Polygons = psois[0].Polygons[:1]
	_, err = n.Invert(psois, in)
	require.ErrorIs(t, err, normalization.ErrAssertion)
}

func TestPolygonsNormalizer_IterableOfArrays(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	in := []*ndarray.Array{
		arr(ndarray.Float64, ndarray.Shape{1, 3, 2}, 0, 0, 2, 0, 1, 2),
		arr(ndarray.Float64, ndarray.Shape{2, 3, 2}, 0, 0, 2, 0, 1, 2, 3, 3, 5, 3, 4, 5),
	}

	psois, err := n.Normalize(in, shapes(2))
	require.NoError(t, err)
	require.Len(t, psois[1].Polygons, 2)

	got, err := n.Invert(psois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(in, got))
}

func TestPolygonsNormalizer_NestedExteriors(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	square := arr(ndarray.Uint16, ndarray.Shape{4, 2}, 0, 0, 1, 0, 1, 1, 0, 1)
	tri := triangle(0).AsType(ndarray.Uint16)
	in := [][]*ndarray.Array{{square, tri}, {tri}}

	psois, err := n.Normalize(in, shapes(2))
	require.NoError(t, err)
	require.Len(t, psois, 2)
	require.Len(t, psois[0].Polygons, 2)

	got, err := n.Invert(psois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(in, got))
}

func TestPolygonsNormalizer_NestedPoints(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())

	// Two polygons on one image.
	twoPolys := [][][2]float64{{{0, 0}, {2, 0}, {1, 2}}, {{3, 3}, {5, 3}, {4, 5}}}
	psois, err := n.Normalize(twoPolys, shapes(1))
	require.NoError(t, err)
	require.Len(t, psois, 1)
	require.Len(t, psois[0].Polygons, 2)

	got, err := n.Invert(psois, twoPolys)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(twoPolys, got))

	// One polygon per image, as keypoints.
	perImage := [][][]Keypoint{{{{0, 0}, {2, 0}, {1, 2}}}, {{{3, 3}, {5, 3}, {4, 5}}}}
	psois, err = n.Normalize(perImage, shapes(2))
	require.NoError(t, err)
	require.Len(t, psois, 2)
	require.Empty(t, cmp.Diff(triangle(3), psois[1].Polygons[0].Exterior))

	got, err = n.Invert(psois, perImage)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(perImage, got))
}

func TestPolygonsNormalizer_NestedPolygons(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	in := [][]Polygon{{{Exterior: triangle(0)}}, {}}

	psois, err := n.Normalize(in, shapes(2))
	require.NoError(t, err)
	require.Len(t, psois, 2)
	require.Empty(t, psois[1].Polygons)

	got, err := n.Invert(psois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(in, got))
}

func TestPolygonsNormalizer_Empty(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	for _, in := range []any{[]Polygon{}, [][]Polygon{{}}, [][][]Keypoint{{{}}}} {
		psois, err := n.Normalize(in, nil)
		require.NoError(t, err)
		require.Nil(t, psois)

		got, err := n.Invert(psois, in)
		require.NoError(t, err)
		require.Equal(t, in, got)
	}
}

func TestPolygonsNormalizer_RejectsEmptyPolygon(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	_, err := n.Normalize(arr(ndarray.Float32, ndarray.Shape{1, 1, 0, 2}), shapes(1))
	require.Error(t, err)
}

func TestPolygonsNormalizer_ExactRoundTrip(t *testing.T) {
	n := normalization.NewPolygonsNormalizer(polygonsCaps())
	tests := []struct {
		name string
		in   any
	}{
		{"float64 array", arr(ndarray.Float64, ndarray.Shape{1, 1, 3, 2}, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6)},
		{"int32 array", arr(ndarray.Int32, ndarray.Shape{1, 1, 3, 2}, 16777217, 0, 16777219, 0, 0, 5)},
		{"points", []normalization.Tuple{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}}},
		{"polygons as points", [][]normalization.Tuple{{{0.1, 0.2}, {16777217.0, 0.0}, {0.5, 0.6}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			psois, err := n.Normalize(tt.in, shapes(1))
			require.NoError(t, err)

			got, err := n.Invert(psois, tt.in)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(tt.in, got))
		})
	}
}
