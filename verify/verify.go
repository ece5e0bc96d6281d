// Package verify checks that a fixture's response really is a linear function
// of its features with the advertised weights.
//
// Check fits ordinary least squares (with an intercept) to the printed
// features and response and compares each recovered weight with the true one
// in units of its standard error. Because the noise has mean 20, the fitted
// intercept is compared with the expected noise mean rather than zero.
//
//	report, err := verify.Check(X, y, weights)
//	if err != nil {
//		return err
//	}
//	if !report.OK() {
//		// a weight is more than MaxZ standard errors off
//	}
package verify

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regfixture/fixture"
	"github.com/ezoic/regfixture/linear"
	"github.com/ezoic/regfixture/metrics"
	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
	"github.com/ezoic/regfixture/pkg/log"
	"github.com/ezoic/regfixture/preprocessing"
)

// DefaultMaxZ is the largest tolerated |z| for a recovered coefficient.
const DefaultMaxZ = 6.0

type config struct {
	maxZ      float64
	noiseMean float64
	logger    log.Logger
}

// Option configures Check.
type Option func(*config)

// WithMaxZ sets the z-score threshold used by Report.OK.
func WithMaxZ(z float64) Option {
	return func(c *config) { c.maxZ = z }
}

// WithNoiseMean sets the intercept the fit is expected to recover.
func WithNoiseMean(mean float64) Option {
	return func(c *config) { c.noiseMean = mean }
}

// WithLogger replaces the package logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Report is the outcome of Check.
type Report struct {
	Samples  int
	Features int

	TrueWeights   []float64
	FittedWeights []float64
	StdErrors     []float64
	ZScores       []float64 // (fitted - true) / stderr

	ExpectedIntercept float64
	Intercept         float64
	InterceptStdErr   float64
	InterceptZ        float64

	ResidualStd float64 // sqrt(RSS / (n - m - 1))
	R2          float64

	// Cost is the mean squared error of a fit made on normalized features and
	// response, mapped back to the original scale. NormalizedCost is the same
	// error before mapping back.
	Cost           float64
	NormalizedCost float64

	MaxZ float64

	Observed  []float64
	Predicted []float64
}

// OK reports whether every weight and the intercept lie within MaxZ
// standard errors of their expected values.
func (r *Report) OK() bool {
	if !withinZ(r.InterceptZ, r.MaxZ) {
		return false
	}
	for _, z := range r.ZScores {
		if !withinZ(z, r.MaxZ) {
			return false
		}
	}
	return true
}

// WorstZ returns the largest |z| over weights and intercept.
func (r *Report) WorstZ() float64 {
	worst := math.Abs(r.InterceptZ)
	for _, z := range r.ZScores {
		worst = math.Max(worst, math.Abs(z))
	}
	return worst
}

func withinZ(z, limit float64) bool {
	return !math.IsNaN(z) && math.Abs(z) <= limit
}

// CheckData splits a fixture data matrix into features and response and
// calls Check.
func CheckData(data mat.Matrix, weights *mat.VecDense, opts ...Option) (*Report, error) {
	X, y, err := fixture.Split(data)
	if err != nil {
		return nil, err
	}
	return Check(X, y, weights, opts...)
}

// Check fits OLS of y on X and compares the coefficients with weights.
//
// Errors:
//   - ErrEmptyData: if X is empty
//   - ErrDimensionMismatch: if y or weights do not match X
//   - ErrInvalidInput: if there are not more samples than coefficients
//   - ErrNonFinite: if any input is NaN or Inf
//   - ErrSingularMatrix: if the features are collinear
func Check(X mat.Matrix, y, weights *mat.VecDense, opts ...Option) (_ *Report, err error) {
	defer scigoErrors.Recover(&err, "verify.Check")

	cfg := config{maxZ: DefaultMaxZ, noiseMean: fixture.DefaultNoiseMean}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("verify")
	}
	logger = logger.With(log.ComponentKey, "verify")

	start := time.Now()
	n, m := X.Dims()
	if n == 0 || m == 0 {
		return nil, scigoErrors.NewModelError("verify.Check", "empty data", scigoErrors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, scigoErrors.NewDimensionError("verify.Check", n, y.Len(), 0)
	}
	if weights.Len() != m {
		return nil, scigoErrors.NewDimensionError("verify.Check", m, weights.Len(), 1)
	}
	if n <= m+1 {
		return nil, scigoErrors.NewValueError("verify.Check", "need more samples than coefficients")
	}
	if err := requireFinite(X, y, weights); err != nil {
		return nil, err
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		return nil, err
	}

	pred, err := lr.Predict(X)
	if err != nil {
		return nil, err
	}
	predicted := mat.NewVecDense(n, mat.Col(nil, 0, pred))

	var resid mat.VecDense
	resid.SubVec(y, predicted)
	dof := float64(n - m - 1)
	s2 := mat.Dot(&resid, &resid) / dof

	cov := lr.Covariance()
	report := &Report{
		Samples:           n,
		Features:          m,
		TrueWeights:       mat.Col(nil, 0, weights),
		FittedWeights:     lr.GetWeights(),
		StdErrors:         make([]float64, m),
		ZScores:           make([]float64, m),
		ExpectedIntercept: cfg.noiseMean,
		Intercept:         lr.GetIntercept(),
		InterceptStdErr:   math.Sqrt(s2 * cov.At(0, 0)),
		ResidualStd:       math.Sqrt(s2),
		MaxZ:              cfg.maxZ,
		Observed:          mat.Col(nil, 0, y),
		Predicted:         mat.Col(nil, 0, predicted),
	}
	report.InterceptZ = zScore(report.Intercept, report.ExpectedIntercept, report.InterceptStdErr)
	for j := 0; j < m; j++ {
		report.StdErrors[j] = math.Sqrt(s2 * cov.At(j+1, j+1))
		report.ZScores[j] = zScore(report.FittedWeights[j], report.TrueWeights[j], report.StdErrors[j])
	}

	if report.R2, err = metrics.R2Score(y, predicted); err != nil {
		return nil, err
	}
	if report.Cost, report.NormalizedCost, err = normalizedCost(X, y); err != nil {
		return nil, err
	}

	logger.Info("Fixture verified",
		log.OperationKey, log.OperationVerify,
		log.PhaseKey, log.PhaseValidation,
		log.SamplesKey, n,
		log.FeaturesKey, m,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		"ok", report.OK(),
		"worst_z", report.WorstZ(),
		"r2", report.R2,
	)
	return report, nil
}

func zScore(got, want, se float64) float64 {
	diff := got - want
	if se == 0 {
		if diff == 0 {
			return 0
		}
		return math.Copysign(math.Inf(1), diff)
	}
	return diff / se
}

// normalizedCost repeats the consumer's procedure: normalize features and
// response, fit, and score predictions mapped back to the response scale.
func normalizedCost(X mat.Matrix, y *mat.VecDense) (cost, normalized float64, err error) {
	normX := preprocessing.NewNormalizer()
	Xn, err := normX.FitTransform(X)
	if err != nil {
		return 0, 0, err
	}
	normY := preprocessing.NewNormalizer()
	yn, err := normY.FitTransform(y)
	if err != nil {
		return 0, 0, err
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(Xn, yn); err != nil {
		return 0, 0, err
	}
	predN, err := lr.Predict(Xn)
	if err != nil {
		return 0, 0, err
	}
	pred, err := normY.InverseTransform(predN)
	if err != nil {
		return 0, 0, err
	}

	n := y.Len()
	if normalized, err = metrics.MSE(mat.NewVecDense(n, mat.Col(nil, 0, yn)), mat.NewVecDense(n, mat.Col(nil, 0, predN))); err != nil {
		return 0, 0, err
	}
	if cost, err = metrics.MSE(y, mat.NewVecDense(n, mat.Col(nil, 0, pred))); err != nil {
		return 0, 0, err
	}
	return cost, normalized, nil
}

func requireFinite(X mat.Matrix, y, w *mat.VecDense) error {
	check := func(what string, i, j int, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return scigoErrors.WrapOp(scigoErrors.ErrNonFinite, "verify.Check", "%s[%d,%d] = %v", what, i, j, v)
		}
		return nil
	}

	n, m := X.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if err := check("X", i, j, X.At(i, j)); err != nil {
				return err
			}
		}
		if err := check("y", i, 0, y.AtVec(i)); err != nil {
			return err
		}
	}
	for j := 0; j < w.Len(); j++ {
		if err := check("weights", j, 0, w.AtVec(j)); err != nil {
			return err
		}
	}
	return nil
}
