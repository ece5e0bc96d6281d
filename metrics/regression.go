// Package metrics provides the regression metrics used to judge a fitted
// fixture: MSE (the consumer's "cost"), RMSE, MAE and R².
//
// All functions take *mat.VecDense inputs of equal, non-zero length:
//
//	mse, err := metrics.MSE(yTrue, yPred)
//	if err != nil {
//		return err
//	}
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
)

func residuals(op string, yTrue, yPred *mat.VecDense) ([]float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, scigoErrors.NewModelError(op, "empty vector", scigoErrors.ErrEmptyData)
	}
	if yPred.Len() != n {
		return nil, scigoErrors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return diff, nil
}

// MSE calculates the Mean Squared Error between true and predicted values.
//
// MSE = (1/n) * Σ(yTrue - yPred)². This is the cost the fixture's consumer
// asserts on after fitting.
//
// Errors:
//   - ErrEmptyData: if yTrue is empty
//   - ErrDimensionMismatch: if yTrue and yPred have different lengths
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// RMSE is the square root of MSE.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error between true and predicted values.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(diff, 1) / float64(len(diff)), nil
}

// R2Score calculates the coefficient of determination.
//
// R² = 1 - RSS/TSS. The best score is 1.0; it can be negative for a model
// worse than predicting the mean.
//
// Errors:
//   - ErrEmptyData: if yTrue is empty
//   - ErrDimensionMismatch: if yTrue and yPred have different lengths
//   - ErrInvalidInput: if yTrue has zero variance
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	truth := mat.Col(nil, 0, yTrue)
	mean := stat.Mean(truth, nil)

	var tss float64
	for _, v := range truth {
		tss += (v - mean) * (v - mean)
	}
	if tss == 0 {
		return 0, scigoErrors.NewValueError("R2Score", "yTrue has zero variance")
	}

	rss := floats.Dot(diff, diff)
	return 1 - rss/tss, nil
}
