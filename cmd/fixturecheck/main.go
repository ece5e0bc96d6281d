// Command fixturecheck reads a fixture printed by randomdata and checks that
// ordinary least squares recovers its weights.
//
//	randomdata | fixturecheck -plot fit.png
//
// It exits 1 if the fixture cannot be read or a coefficient is more than
// -max-z standard errors from its expected value, and 2 on bad flags.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regfixture/fixture"
	"github.com/ezoic/regfixture/pkg/log"
	"github.com/ezoic/regfixture/verify"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fixturecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in        = fs.String("in", "", "fixture file (default stdin)")
		maxZ      = fs.Float64("max-z", verify.DefaultMaxZ, "largest tolerated |z| for a coefficient")
		noiseMean = fs.Float64("noise-mean", fixture.DefaultNoiseMean, "expected intercept")
		plotPath  = fs.String("plot", "", "write an observed-vs-predicted plot to this file")
		logLevel  = fs.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log.SetProvider(log.NewConsoleProvider(stderr, log.ToLogLevel(*logLevel)))
	logger := log.GetLoggerWithName("fixturecheck")

	var (
		data    *mat.Dense
		weights *mat.VecDense
		err     error
	)
	source := *in
	if source == "" {
		source = "stdin"
		data, weights, err = fixture.Read(stdin)
	} else {
		data, weights, err = fixture.ReadFile(source)
	}
	if err != nil {
		log.LogError(err, "Failed to read fixture", log.PathKey, source)
		return 1
	}

	report, err := verify.CheckData(data, weights,
		verify.WithMaxZ(*maxZ),
		verify.WithNoiseMean(*noiseMean),
	)
	if err != nil {
		log.LogError(err, "Check failed", log.PathKey, source)
		return 1
	}

	if _, err := report.WriteTo(stdout); err != nil {
		log.LogError(err, "Failed to write report")
		return 1
	}

	if *plotPath != "" {
		if err := verify.SavePlot(report, *plotPath); err != nil {
			log.LogError(err, "Failed to save plot", log.PathKey, *plotPath)
			return 1
		}
		logger.Info("Plot saved", log.PathKey, *plotPath)
	}

	if !report.OK() {
		fmt.Fprintf(stderr, "fixturecheck: worst |z| %.3f exceeds %.3g\n", report.WorstZ(), report.MaxZ)
		return 1
	}
	return 0
}
