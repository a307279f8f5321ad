package augmentables_test

import (
	"fmt"

	"github.com/katalvlaran/augnorm/augmentables"
	"github.com/katalvlaran/augnorm/ndarray"
	"github.com/katalvlaran/augnorm/normalization"
)

func ExampleBatch() {
	b := augmentables.Batch{
		Images:        ndarray.Must(ndarray.Zeros(ndarray.Uint8, 1, 32, 48, 3)),
		BoundingBoxes: []normalization.Tuple{{4, 4, 20, 10}},
	}

	nb, err := b.Normalize()
	if err != nil {
		fmt.Println(err)
		return
	}
	bbs := nb.BoundingBoxes[0]
	fmt.Println(bbs.Shape, len(bbs.Boxes), bbs.Boxes[0].Area())

	// Flip horizontally.
	for i, bb := range bbs.Boxes {
		bbs.Boxes[i] = augmentables.NewBoundingBox(48-bb.X1, bb.Y1, 48-bb.X2, bb.Y2)
	}

	out, err := b.Invert(nb)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out.BoundingBoxes)
	// Output:
	// (32, 48, 3) 1 96
	// [[28 4 44 10]]
}
