// Command randomdata prints a synthetic linear-regression fixture.
//
// The first block is the 1000x7 matrix [X | y], one row per line; the second
// is the 6 true weights on a single line. Every run draws fresh values.
package main

import (
	"io"
	"os"

	"github.com/ezoic/regfixture/fixture"
	"github.com/ezoic/regfixture/pkg/log"
)

func main() {
	log.SetupLogger("info")
	os.Exit(run(os.Stdout))
}

func run(stdout io.Writer) int {
	f, err := fixture.Generate()
	if err != nil {
		log.LogError(err, "Failed to generate fixture")
		return 1
	}
	if _, err := f.WriteTo(stdout); err != nil {
		log.LogError(err, "Failed to write fixture")
		return 1
	}
	return 0
}
