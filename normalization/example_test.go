package normalization_test

import (
	"fmt"

	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

func ExampleEstimateNormalizationType() {
	for _, in := range []any{
		nil,
		ndarray.Must(ndarray.Zeros(ndarray.Uint8, 2, 4, 2)),
		normalization.Tuple{1, 2},
		[][]normalization.Tuple{{{1, 2}}},
		[][]Keypoint{{}, {}},
	} {
		ntype, _ := normalization.EstimateNormalizationType(in)
		fmt.Println(ntype)
	}
	// Output:
	// None
	// array[uint]
	// tuple[number,size=2]
	// iterable-iterable-tuple[number,size=2]
	// iterable-iterable[empty]
}

func ExampleKeypointsNormalizer() {
	n := normalization.NewKeypointsNormalizer(keypointsCaps())
	in := []normalization.Tuple{{1, 2}, {3, 4}}

	kpsois, err := n.Normalize(in, []ndarray.Shape{{32, 32, 3}})
	if err != nil {
		fmt.Println(err)
		return
	}
	for i := range kpsois[0].Keypoints {
		kpsois[0].Keypoints[i].X += 10
	}

	out, err := n.Invert(kpsois, in)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(kpsois), out)
	// Output:
	// 1 [[11 2] [13 4]]
}
