package verify_test

import (
	"fmt"

	"github.com/ezoic/regfixture/fixture"
	"github.com/ezoic/regfixture/verify"
)

func ExampleCheck() {
	f, err := fixture.Generate(fixture.WithSeed(42))
	if err != nil {
		return
	}

	report, err := verify.Check(f.X, f.Y, f.Weights)
	if err != nil {
		return
	}
	fmt.Println("ok:", report.OK())
	fmt.Println("features:", report.Features)

	// Output:
	// ok: true
	// features: 6
}
