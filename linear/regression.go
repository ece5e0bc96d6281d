// Package linear provides the ordinary least squares model used to check a
// generated fixture.
//
// LinearRegression fits y = X·w + b by solving the normal equations on the
// design matrix A = [1 | X]. Besides the coefficients it keeps (AᵀA)⁻¹, which
// together with the residual variance gives the standard error of every
// coefficient:
//
//	lr := linear.NewLinearRegression()
//	if err := lr.Fit(X, y); err != nil {
//		return err
//	}
//	weights := lr.GetWeights()
//	cov := lr.Covariance() // (m+1)x(m+1), intercept first
package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/regfixture/core/model"
	"github.com/ezoic/regfixture/metrics"
	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
	"github.com/ezoic/regfixture/pkg/log"
)

// LinearRegression is an ordinary least squares model with an intercept.
type LinearRegression struct {
	State     *model.StateManager // State manager (composition instead of embedding)
	Weights   *mat.VecDense       // Model weights (coefficients)
	Intercept float64             // Model intercept
	NFeatures int                 // Number of features

	cov    *mat.SymDense // (AᵀA)⁻¹ for A = [1 | X]
	logger log.Logger
}

// NewLinearRegression creates an untrained model.
func NewLinearRegression() *LinearRegression {
	lr := &LinearRegression{
		State: model.NewStateManager(),
	}

	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "LinearRegression",
		log.ComponentKey, "linear",
	)

	return lr
}

// Fit trains the model on X (n_samples x n_features) and the column y.
//
// The normal equations (AᵀA)β = Aᵀy are solved with A = [1 | X]; β[0] is the
// intercept and β[1:] the weights.
//
// Errors:
//   - ErrEmptyData: if X is empty
//   - ErrDimensionMismatch: if X and y have different numbers of rows
//   - ErrInvalidInput: if y is not a single column
//   - ErrSingularMatrix: if AᵀA cannot be inverted
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer scigoErrors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	lr.logger.Debug("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	if r == 0 || c == 0 {
		return scigoErrors.NewModelError("LinearRegression.Fit", "empty data", scigoErrors.ErrEmptyData)
	}
	if ry != r {
		return scigoErrors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return scigoErrors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	// A = [1, X]
	A := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		A.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			A.Set(i, j+1, X.At(i, j))
		}
	}

	var AtA mat.SymDense
	AtA.SymOuterK(1, A.T())

	var inv mat.Dense
	// Inverse reports singular and ill-conditioned matrices as mat.Condition.
	if err := inv.Inverse(&AtA); err != nil {
		return scigoErrors.NewModelError("LinearRegression.Fit", "cannot invert normal matrix", scigoErrors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var Aty mat.VecDense
	Aty.MulVec(A.T(), yVec)

	beta := mat.NewVecDense(c+1, nil)
	beta.MulVec(&inv, &Aty)

	lr.NFeatures = c
	lr.Intercept = beta.AtVec(0)
	lr.Weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		lr.Weights.SetVec(i, beta.AtVec(i+1))
	}

	lr.cov = mat.NewSymDense(c+1, nil)
	for i := 0; i <= c; i++ {
		for j := i; j <= c; j++ {
			// Symmetrise; the inverse is symmetric up to rounding.
			lr.cov.SetSym(i, j, (inv.At(i, j)+inv.At(j, i))/2)
		}
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(lr.NFeatures, r)

	lr.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// Predict returns X·w + b as an (n_samples x 1) matrix.
//
// Errors:
//   - ErrNotFitted: if the model hasn't been trained yet
//   - ErrDimensionMismatch: if X has a different number of features than training data
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scigoErrors.Recover(&err, "LinearRegression.Predict")
	if !lr.State.IsFitted() {
		return nil, scigoErrors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, scigoErrors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	predictions.Mul(X, lr.Weights)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, predictions.At(i, 0)+lr.Intercept)
	}

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, r,
	)

	return predictions, nil
}

// GetWeights returns a copy of the learned weights.
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	return mat.Col(nil, 0, lr.Weights)
}

// GetIntercept returns the learned intercept, or 0 before Fit.
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.State.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Covariance returns a copy of (AᵀA)⁻¹ from the last Fit, indexed with the
// intercept at 0 and weight j at j+1. Multiplying by the residual variance
// gives the coefficient covariance. Returns nil before Fit.
func (lr *LinearRegression) Covariance() *mat.SymDense {
	if !lr.State.IsFitted() || lr.cov == nil {
		return nil
	}
	out := mat.NewSymDense(lr.cov.SymmetricDim(), nil)
	out.CopySym(lr.cov)
	return out
}

// Score returns the coefficient of determination (R²) on X and y.
func (lr *LinearRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer scigoErrors.Recover(&err, "LinearRegression.Score")
	if !lr.State.IsFitted() {
		return 0, scigoErrors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrue := mat.NewVecDense(r, mat.Col(nil, 0, y))
	return metrics.R2Score(yTrue, mat.NewVecDense(r, mat.Col(nil, 0, yPred)))
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}
