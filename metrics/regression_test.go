package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
)

func TestMetrics(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{2, 2, 1, 4})

	mse, err := MSE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, mse, 1e-12)

	rmse, err := RMSE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 1.118033988749895, rmse, 1e-12)

	mae, err := MAE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, mae, 1e-12)

	r2, err := R2Score(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, r2, 1e-12)
}

func TestMetrics_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yTrue    *mat.VecDense
		yPred    *mat.VecDense
		sentinel error
	}{
		{"empty", &mat.VecDense{}, &mat.VecDense{}, scigoErrors.ErrEmptyData},
		{"length mismatch", mat.NewVecDense(2, []float64{1, 2}), mat.NewVecDense(3, []float64{1, 2, 3}), scigoErrors.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MSE(tt.yTrue, tt.yPred)
			assert.ErrorIs(t, err, tt.sentinel)
			_, err = MAE(tt.yTrue, tt.yPred)
			assert.ErrorIs(t, err, tt.sentinel)
			_, err = R2Score(tt.yTrue, tt.yPred)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}

	t.Run("zero variance", func(t *testing.T) {
		y := mat.NewVecDense(3, []float64{5, 5, 5})
		_, err := R2Score(y, y)
		assert.ErrorIs(t, err, scigoErrors.ErrInvalidInput)
	})
}
