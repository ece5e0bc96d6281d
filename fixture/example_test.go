package fixture_test

import (
	"bytes"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regfixture/fixture"
)

// ExampleGenerate generates a small reproducible fixture and reads it back.
func ExampleGenerate() {
	f, err := fixture.Generate(
		fixture.WithSamples(4),
		fixture.WithFeatures(2),
		fixture.WithSeed(1),
	)
	if err != nil {
		return
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return
	}

	data, weights, err := fixture.Read(&buf)
	if err != nil {
		return
	}
	r, c := data.Dims()
	fmt.Printf("data: %dx%d, weights: %d\n", r, c, weights.Len())

	// Output: data: 4x3, weights: 2
}

func ExampleAppendMatrix() {
	m := mat.NewDense(2, 3, []float64{1, 2.5, -3, 40, 0.125, 6e-9})
	os.Stdout.Write(fixture.AppendMatrix(nil, m))

	// Output:
	// [[1 2.5 -3]
	//  [40 0.125 6e-09]]
}
