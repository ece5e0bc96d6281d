// Package fixture generates synthetic linear-regression data.
//
// Generate draws a standard-normal feature matrix, scales and shifts each
// column by a random per-feature factor, and computes a noisy linear response
// from a random weight vector:
//
//	X' = X ⊙ scale + intercept
//	y  = X'·w + noise,  noise ~ N(20, 5)
//
// The default configuration produces 1000 samples of 6 features from an
// unseeded source. WriteTo renders the [X' | y] matrix followed by the true
// weights in bracketed text; Read parses that text back.
//
//	f, err := fixture.Generate()
//	if err != nil {
//		return err
//	}
//	_, err = f.WriteTo(os.Stdout)
package fixture

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
	"github.com/ezoic/regfixture/pkg/log"
)

// Default shape.
const (
	DefaultSamples  = 1000
	DefaultFeatures = 6
)

// Default distribution parameters.
const (
	DefaultScaleFactor     float64 = 100
	DefaultInterceptFactor float64 = 100
	DefaultWeightFactor    float64 = 10
	DefaultNoiseMean       float64 = 20
	DefaultNoiseStd        float64 = 5
)

// pcgStream is the second PCG word used with a user seed.
const pcgStream = 0x9e3779b97f4a7c15

// Config controls the shape and distributions of a generated fixture.
type Config struct {
	Samples         int     // rows of X (n)
	Features        int     // columns of X (m)
	ScaleFactor     float64 // scale_j = N(0,1) * ScaleFactor
	InterceptFactor float64 // intercept_j = N(0,1) * InterceptFactor
	WeightFactor    float64 // w_j = N(0,1) * WeightFactor
	NoiseMean       float64
	NoiseStd        float64

	source rand.Source
	seed   uint64
	seeded bool
	logger log.Logger
}

// Option configures Generate.
type Option func(*Config)

// DefaultConfig returns the parameters of the standard fixture.
func DefaultConfig() Config {
	return Config{
		Samples:         DefaultSamples,
		Features:        DefaultFeatures,
		ScaleFactor:     DefaultScaleFactor,
		InterceptFactor: DefaultInterceptFactor,
		WeightFactor:    DefaultWeightFactor,
		NoiseMean:       DefaultNoiseMean,
		NoiseStd:        DefaultNoiseStd,
	}
}

// WithSamples sets the number of rows.
func WithSamples(n int) Option {
	return func(c *Config) { c.Samples = n }
}

// WithFeatures sets the number of feature columns.
func WithFeatures(m int) Option {
	return func(c *Config) { c.Features = m }
}

// WithScaleFactor sets the multiplier applied to the per-feature scale draw.
func WithScaleFactor(f float64) Option {
	return func(c *Config) { c.ScaleFactor = f }
}

// WithInterceptFactor sets the multiplier applied to the per-feature intercept draw.
func WithInterceptFactor(f float64) Option {
	return func(c *Config) { c.InterceptFactor = f }
}

// WithWeightFactor sets the multiplier applied to the weight draw.
func WithWeightFactor(f float64) Option {
	return func(c *Config) { c.WeightFactor = f }
}

// WithNoise sets the mean and standard deviation of the response noise.
func WithNoise(mean, std float64) Option {
	return func(c *Config) {
		c.NoiseMean = mean
		c.NoiseStd = std
	}
}

// WithSeed makes generation reproducible. The same seed and configuration
// always yield the same fixture.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.source = nil
		c.seed = seed
		c.seeded = true
	}
}

// WithSource draws every value from src. It overrides WithSeed.
func WithSource(src rand.Source) Option {
	return func(c *Config) {
		c.source = src
		c.seeded = false
	}
}

// WithLogger replaces the package logger.
func WithLogger(l log.Logger) Option {
	return func(c *Config) { c.logger = l }
}

func (c *Config) validate() error {
	if c.Samples <= 0 {
		return scigoErrors.NewValueError("fixture.Generate", "samples must be positive")
	}
	if c.Features <= 0 {
		return scigoErrors.NewValueError("fixture.Generate", "features must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"scale factor", c.ScaleFactor},
		{"intercept factor", c.InterceptFactor},
		{"weight factor", c.WeightFactor},
		{"noise mean", c.NoiseMean},
		{"noise std", c.NoiseStd},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return scigoErrors.NewModelError("fixture.Generate", f.name+" must be finite", scigoErrors.ErrNonFinite)
		}
	}
	if c.NoiseStd < 0 {
		return scigoErrors.NewValueError("fixture.Generate", "noise std must be non-negative")
	}
	return nil
}

// Fixture is one generated data set. X holds the scaled and shifted features.
type Fixture struct {
	X         *mat.Dense    // n x m, X ⊙ scale + intercept
	Y         *mat.VecDense // n, X·w + noise
	Weights   *mat.VecDense // m, true weights
	Scale     *mat.VecDense // m, per-feature scale
	Intercept *mat.VecDense // m, per-feature intercept
	Noise     *mat.VecDense // n, additive noise
}

// Dims returns the number of samples and features.
func (f *Fixture) Dims() (n, m int) {
	return f.X.Dims()
}

// Data returns the n x (m+1) matrix [X | y].
func (f *Fixture) Data() *mat.Dense {
	var data mat.Dense
	data.Augment(f.X, f.Y)
	return &data
}

// Generate draws a fixture. Values are drawn in a fixed order (X row-major,
// scale, intercept, noise, weights) so a seeded source is reproducible.
func Generate(opts ...Option) (_ *Fixture, err error) {
	defer scigoErrors.Recover(&err, "fixture.Generate")

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("fixture")
	}
	logger = logger.With(log.ComponentKey, "fixture")

	src := cfg.source
	if src == nil {
		if !cfg.seeded {
			cfg.seed = rand.Uint64()
			cfg.seeded = true
		}
		src = rand.NewPCG(cfg.seed, pcgStream)
	}

	start := time.Now()
	n, m := cfg.Samples, cfg.Features

	std := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	noiseDist := distuv.Normal{Mu: cfg.NoiseMean, Sigma: cfg.NoiseStd, Src: src}

	raw := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			raw.Set(i, j, std.Rand())
		}
	}

	scale := drawVec(m, std, cfg.ScaleFactor)
	intercept := drawVec(m, std, cfg.InterceptFactor)
	noise := drawVec(n, noiseDist, 1)

	// Broadcast scale and intercept across rows.
	X := mat.NewDense(n, m, nil)
	X.Apply(func(_, j int, v float64) float64 {
		return v*scale.AtVec(j) + intercept.AtVec(j)
	}, raw)

	weights := drawVec(m, std, cfg.WeightFactor)

	y := mat.NewVecDense(n, nil)
	y.MulVec(X, weights)
	y.AddVec(y, noise)

	fields := []interface{}{
		log.OperationKey, log.OperationGenerate,
		log.PhaseKey, log.PhaseSampling,
		log.SamplesKey, n,
		log.FeaturesKey, m,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if cfg.seeded {
		fields = append(fields, log.SeedKey, cfg.seed)
	}
	logger.Debug("Fixture generated", fields...)

	return &Fixture{
		X:         X,
		Y:         y,
		Weights:   weights,
		Scale:     scale,
		Intercept: intercept,
		Noise:     noise,
	}, nil
}

func drawVec(n int, dist distuv.Normal, factor float64) *mat.VecDense {
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, dist.Rand()*factor)
	}
	return v
}
