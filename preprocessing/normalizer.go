// Package preprocessing provides the feature normalizer applied to fixture
// data before fitting.
//
// Normalizer centres every column on its mean and divides by the largest
// deviation from that mean, so each normalized column lies in [-1, 1]. This
// is the scaling the fixture's downstream consumer applies to both the
// feature matrix and the response before it fits and scores a model.
//
//	norm := preprocessing.NewNormalizer()
//	Xn, err := norm.FitTransform(X)
//	if err != nil {
//		return err
//	}
//	back, err := norm.InverseTransform(Xn)
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/regfixture/core/model"
	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
)

// Normalizer maps each column x to (x - Intercept) / Scale.
type Normalizer struct {
	State *model.StateManager

	// Intercept is the per-column mean.
	Intercept []float64

	// Scale is max(max-mean, mean-min) per column, or 1 for a constant column.
	Scale []float64

	// NFeatures is the number of columns seen by Fit.
	NFeatures int
}

// NewNormalizer creates an unfitted Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{State: model.NewStateManager()}
}

// Fit computes per-column intercept and scale from X.
//
// Errors:
//   - ErrEmptyData: if X is empty
func (n *Normalizer) Fit(X mat.Matrix) (err error) {
	defer scigoErrors.Recover(&err, "Normalizer.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return scigoErrors.NewModelError("Normalizer.Fit", "empty data", scigoErrors.ErrEmptyData)
	}

	n.NFeatures = c
	n.Intercept = make([]float64, c)
	n.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean := stat.Mean(col, nil)
		below := mean - floats.Min(col)
		above := floats.Max(col) - mean

		n.Intercept[j] = mean
		n.Scale[j] = math.Max(above, below)
		if n.Scale[j] == 0 {
			n.Scale[j] = 1
		}
	}

	n.State.SetFitted()
	n.State.SetDimensions(c, r)
	return nil
}

// Transform applies (x - Intercept) / Scale column-wise.
//
// Errors:
//   - ErrNotFitted: if Fit hasn't been called
//   - ErrDimensionMismatch: if X has a different number of columns than the fit data
func (n *Normalizer) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scigoErrors.Recover(&err, "Normalizer.Transform")
	if err := n.check("Transform", X); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v - n.Intercept[j]) / n.Scale[j]
	}, X)
	return result, nil
}

// FitTransform is Fit followed by Transform on the same data.
func (n *Normalizer) FitTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scigoErrors.Recover(&err, "Normalizer.FitTransform")
	if err := n.Fit(X); err != nil {
		return nil, err
	}
	return n.Transform(X)
}

// InverseTransform maps normalized values back: x*Scale + Intercept.
func (n *Normalizer) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scigoErrors.Recover(&err, "Normalizer.InverseTransform")
	if err := n.check("InverseTransform", X); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return v*n.Scale[j] + n.Intercept[j]
	}, X)
	return result, nil
}

func (n *Normalizer) check(method string, X mat.Matrix) error {
	if !n.State.IsFitted() {
		return scigoErrors.NewNotFittedError("Normalizer", method)
	}
	if _, c := X.Dims(); c != n.NFeatures {
		return scigoErrors.NewDimensionError("Normalizer."+method, n.NFeatures, c, 1)
	}
	return nil
}

func (n *Normalizer) String() string {
	if !n.State.IsFitted() {
		return "Normalizer()"
	}
	return fmt.Sprintf("Normalizer(n_features=%d)", n.NFeatures)
}
