package normalization_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
	"github.com/stretchr/testify/require"
)

func TestKeypointsNormalizer_Whitelist(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	wl := n.Whitelist()
	require.Len(t, wl, 17)
	require.Contains(t, wl, normalization.NormType("Keypoint"))
	require.Contains(t, wl, normalization.NormType("iterable-iterable-tuple[number,size=2]"))
	require.Contains(t, wl, normalization.NormType("iterable-iterable[empty]"))

	// Callers get a copy.
	wl[0] = "mutated"
	require.Equal(t, normalization.TypeNone, n.Whitelist()[0])
}

func TestKeypointsNormalizer_Array(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := arr(ndarray.Int32, ndarray.Shape{2, 3, 2},
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12)

	kpsois, err := n.Normalize(in, shapes(2))
	require.NoError(t, err)
	require.Len(t, kpsois, 2)
	require.Equal(t, []Keypoint{{1, 2}, {3, 4}, {5, 6}}, kpsois[0].Keypoints)
	require.Equal(t, ndarray.Shape{100, 100, 3}, kpsois[1].Shape)

	kpsois[0].Keypoints[0] = Keypoint{X: 1.5, Y: 2.5}
	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	want := arr(ndarray.Int32, ndarray.Shape{2, 3, 2},
		2, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12)
	require.Empty(t, cmp.Diff(want, got))
}

func TestKeypointsNormalizer_ArrayHeterogeneousCounts(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := arr(ndarray.Float32, ndarray.Shape{2, 2, 2}, 1, 2, 3, 4, 5, 6, 7, 8)

	kpsois, err := n.Normalize(in, shapes(2))
	require.NoError(t, err)
	kpsois[0].Keypoints = kpsois[0].Keypoints[:1]

	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	list, ok := got.([]*ndarray.Array)
	require.True(t, ok, "got %T", got)
	require.Len(t, list, 2)
	require.Equal(t, ndarray.Shape{1, 2}, list[0].Shape())
	require.Equal(t, ndarray.Shape{2, 2}, list[1].Shape())
}

func TestKeypointsNormalizer_ShapeCount(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := arr(ndarray.Float32, ndarray.Shape{3, 5, 2})

	_, err := n.Normalize(in, shapes(2))
	require.ErrorIs(t, err, normalization.ErrShapeCountMismatch)
	var sce *normalization.ShapeCountError
	require.True(t, errors.As(err, &sce))
	require.Equal(t, 3, sce.Required)
	require.Equal(t, 2, sce.Actual)
	require.False(t, sce.Missing)
	require.Equal(t, "[]KeypointsOnImage", sce.To)

	_, err = n.Normalize(in, nil)
	require.True(t, errors.As(err, &sce))
	require.True(t, sce.Missing)
	require.Contains(t, err.Error(), "None")
}

func TestKeypointsNormalizer_BadTrailingAxis(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	_, err := n.Normalize(arr(ndarray.Float32, ndarray.Shape{1, 5, 3}), shapes(1))
	require.ErrorIs(t, err, normalization.ErrAssertion)
}

func TestKeypointsNormalizer_Tuple(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := normalization.Tuple{1, 2}

	kpsois, err := n.Normalize(in, shapes(1))
	require.NoError(t, err)
	require.Len(t, kpsois, 1)
	require.Equal(t, []Keypoint{{1, 2}}, kpsois[0].Keypoints)

	kpsois[0].Keypoints[0] = Keypoint{X: 5.5, Y: 2.2}
	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	require.Equal(t, normalization.Tuple{6, 2}, got)

	_, err = n.Normalize(in, nil)
	require.ErrorIs(t, err, normalization.ErrShapeCountMismatch)
}

func TestKeypointsNormalizer_GoArrayTuple(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := [2]float32{1, 2}

	kpsois, err := n.Normalize(in, shapes(1))
	require.NoError(t, err)
	kpsois[0].Keypoints[0].X = 10

	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	require.Equal(t, [2]float32{10, 2}, got)
}

func TestKeypointsNormalizer_Leaf(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	kpsois, err := n.Normalize(Keypoint{X: 3, Y: 4}, shapes(1))
	require.NoError(t, err)
	require.Equal(t, []Keypoint{{3, 4}}, kpsois[0].Keypoints)

	got, err := n.Invert(kpsois, Keypoint{X: 3, Y: 4})
	require.NoError(t, err)
	require.Equal(t, Keypoint{X: 3, Y: 4}, got)

	kpsois[0].Keypoints = append(kpsois[0].Keypoints, Keypoint{})
	_, err = n.Invert(kpsois, Keypoint{X: 3, Y: 4})
	require.ErrorIs(t, err, normalization.ErrAssertion)
}

func TestKeypointsNormalizer_OnImage(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	kpsoi := &KeypointsOnImage{Keypoints: []Keypoint{{1, 1}}, Shape: ndarray.Shape{10, 10}}

	// Shapes are not needed for containers.
	kpsois, err := n.Normalize(kpsoi, nil)
	require.NoError(t, err)
	require.Len(t, kpsois, 1)
	require.Same(t, kpsoi, kpsois[0])

	got, err := n.Invert(kpsois, kpsoi)
	require.NoError(t, err)
	require.Same(t, kpsoi, got)

	list := []*KeypointsOnImage{kpsoi, kpsoi}
	kpsois, err = n.Normalize(list, nil)
	require.NoError(t, err)
	require.Len(t, kpsois, 2)
	got, err = n.Invert(kpsois, list)
	require.NoError(t, err)
	require.Equal(t, list, got)
}

func TestKeypointsNormalizer_IterableOfArrays(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := []*ndarray.Array{
		arr(ndarray.Uint8, ndarray.Shape{1, 2}, 1, 2),
		arr(ndarray.Uint8, ndarray.Shape{2, 2}, 3, 4, 5, 6),
	}

	kpsois, err := n.Normalize(in, shapes(2))
	require.NoError(t, err)
	require.Len(t, kpsois[1].Keypoints, 2)

	kpsois[0].Keypoints[0].X = -1
	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	want := []*ndarray.Array{
		arr(ndarray.Uint8, ndarray.Shape{1, 2}, 255, 2),
		arr(ndarray.Uint8, ndarray.Shape{2, 2}, 3, 4, 5, 6),
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestKeypointsNormalizer_IterableOfTuples(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := []normalization.Tuple{{1, 2}, {3, 4}}

	kpsois, err := n.Normalize(in, shapes(1))
	require.NoError(t, err)
	require.Len(t, kpsois, 1)
	require.Equal(t, []Keypoint{{1, 2}, {3, 4}}, kpsois[0].Keypoints)

	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	require.Equal(t, in, got)

	// N tuples are N keypoints on one image, not one keypoint on N images.
	_, err = n.Normalize(in, shapes(2))
	require.ErrorIs(t, err, normalization.ErrShapeCountMismatch)
}

func TestKeypointsNormalizer_IterableOfKeypoints(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := []Keypoint{{1, 2}, {3, 4}}

	kpsois, err := n.Normalize(in, shapes(1))
	require.NoError(t, err)
	kpsois[0].Keypoints[1].Y = 40

	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]Keypoint{{1, 2}, {3, 40}}, got))
}

func TestKeypointsNormalizer_NestedTuples(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := [][][2]int{{{1, 2}, {3, 4}}, {{5, 6}}}

	kpsois, err := n.Normalize(in, shapes(2))
	require.NoError(t, err)
	require.Len(t, kpsois, 2)
	require.Equal(t, []Keypoint{{5, 6}}, kpsois[1].Keypoints)

	kpsois[1].Keypoints[0].X = 5.4
	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([][][2]int{{{1, 2}, {3, 4}}, {{5, 6}}}, got))
}

func TestKeypointsNormalizer_NestedKeypoints(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := [][]Keypoint{{{1, 2}}, {}, {{3, 4}, {5, 6}}}

	kpsois, err := n.Normalize(in, shapes(3))
	require.NoError(t, err)
	require.Len(t, kpsois, 3)
	require.Empty(t, kpsois[1].Keypoints)

	got, err := n.Invert(kpsois, in)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([][]Keypoint{{{1, 2}}, {}, {{3, 4}, {5, 6}}}, got))
}

func TestKeypointsNormalizer_Empty(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	for _, in := range []any{nil, []any{}, [][]Keypoint{{}, {}}} {
		kpsois, err := n.Normalize(in, nil)
		require.NoError(t, err)
		require.Nil(t, kpsois)

		got, err := n.Invert(nil, in)
		require.NoError(t, err)
		require.Equal(t, in, got)
	}
}

func TestKeypointsNormalizer_UnknownType(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps(), normalization.WithArgName("kps"))
	_, err := n.Normalize(normalization.Tuple{1, 2, 3}, shapes(1))

	var ute *normalization.UnknownNormTypeError
	require.True(t, errors.As(err, &ute))
	require.Equal(t, "kps", ute.Arg)
	require.Equal(t, normalization.TupleType(3), ute.Got)
	require.ErrorIs(t, err, normalization.ErrUnknownNormType)
	require.Contains(t, err.Error(), "argument 'kps'")
}

func TestKeypointsNormalizer_ExactRoundTrip(t *testing.T) {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	tests := []struct {
		name string
		in   any
	}{
		{"float64 array", arr(ndarray.Float64, ndarray.Shape{1, 1, 2}, 0.1, 16777217)},
		{"int32 array", arr(ndarray.Int32, ndarray.Shape{1, 2, 2}, 16777217, 1, 16777219, -16777217)},
		{"float64 arrays", []*ndarray.Array{arr(ndarray.Float64, ndarray.Shape{1, 2}, 0.1, 0.2)}},
		{"tuples", []normalization.Tuple{{0.1, 0.2}, {16777217.0, 3.0}}},
		{"nested tuples", [][]normalization.Tuple{{{0.1, 0.2}}}},
		{"keypoints", []Keypoint{{X: 0.1, Y: 1e-9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpsois, err := n.Normalize(tt.in, shapes(1))
			require.NoError(t, err)

			got, err := n.Invert(kpsois, tt.in)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(tt.in, got))
		})
	}
}
