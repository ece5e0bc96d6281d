package preprocessing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
	"github.com/ezoic/regfixture/preprocessing"
)

const epsilon = 1e-10

func TestNormalizer_Fit(t *testing.T) {
	// Column 0: [1, 2, 6]  mean 3, deviations below 2, above 3 -> scale 3
	// Column 1: [4, 4, 4]  constant -> scale 1
	// Column 2: [-10, 0, 1] mean -3, below 7, above 4 -> scale 7
	X := mat.NewDense(3, 3, []float64{
		1, 4, -10,
		2, 4, 0,
		6, 4, 1,
	})

	norm := preprocessing.NewNormalizer()
	require.NoError(t, norm.Fit(X))

	assert.InDeltaSlice(t, []float64{3, 4, -3}, norm.Intercept, epsilon)
	assert.InDeltaSlice(t, []float64{3, 1, 7}, norm.Scale, epsilon)
	assert.Equal(t, 3, norm.NFeatures)
	assert.Equal(t, "Normalizer(n_features=3)", norm.String())
}

func TestNormalizer_TransformRange(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		-250.5, 12,
		310.25, 13,
		42, 11,
		7, 12.5,
	})

	norm := preprocessing.NewNormalizer()
	Xn, err := norm.FitTransform(X)
	require.NoError(t, err)

	r, c := Xn.Dims()
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, Xn)
		var maxAbs, sum float64
		for _, v := range col {
			assert.LessOrEqual(t, v, 1+epsilon)
			assert.GreaterOrEqual(t, v, -1-epsilon)
			maxAbs = math.Max(maxAbs, math.Abs(v))
			sum += v
		}
		assert.InDelta(t, 1.0, maxAbs, epsilon, "column %d should touch ±1", j)
		assert.InDelta(t, 0.0, sum/float64(r), epsilon, "column %d should be centred", j)
	}
}

func TestNormalizer_InverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.5, -20,
		2.5, 30,
		9.0, 100,
	})

	norm := preprocessing.NewNormalizer()
	Xn, err := norm.FitTransform(X)
	require.NoError(t, err)

	back, err := norm.InverseTransform(Xn)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-9))
}

func TestNormalizer_Errors(t *testing.T) {
	norm := preprocessing.NewNormalizer()

	_, err := norm.Transform(mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, scigoErrors.ErrNotFitted)
	assert.Equal(t, "Normalizer()", norm.String())

	assert.ErrorIs(t, norm.Fit(&mat.Dense{}), scigoErrors.ErrEmptyData)

	require.NoError(t, norm.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = norm.Transform(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, scigoErrors.ErrDimensionMismatch)
	_, err = norm.InverseTransform(mat.NewDense(2, 1, nil))
	assert.ErrorIs(t, err, scigoErrors.ErrDimensionMismatch)
}
