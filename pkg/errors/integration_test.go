package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
)

func TestErrorWrappingCompatibility(t *testing.T) {
	originalErr := scigoErrors.NewNotFittedError("LinearRegression", "Predict")
	wrappedErr := fmt.Errorf("verify step failed: %w", originalErr)

	assert.True(t, errors.Is(wrappedErr, originalErr))
	assert.True(t, errors.Is(wrappedErr, scigoErrors.ErrNotFitted))

	var notFittedErr *scigoErrors.NotFittedError
	require.True(t, errors.As(wrappedErr, &notFittedErr))
	assert.Equal(t, "LinearRegression", notFittedErr.ModelName)
	assert.Equal(t, "Predict", notFittedErr.Method)
}

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"dimension", scigoErrors.NewDimensionError("Split", 7, 6, 1), scigoErrors.ErrDimensionMismatch},
		{"value", scigoErrors.NewValueError("WithSamples", "must be positive"), scigoErrors.ErrInvalidInput},
		{"not fitted", scigoErrors.NewNotFittedError("Normalizer", "Transform"), scigoErrors.ErrNotFitted},
		{"parse", scigoErrors.NewParseError(3, 14, "unexpected token"), scigoErrors.ErrParse},
		{"model", scigoErrors.NewModelError("Fit", "singular matrix", scigoErrors.ErrSingularMatrix), scigoErrors.ErrSingularMatrix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := scigoErrors.Wrap(tt.err, "context")
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Contains(t, tt.err.Error(), "regfixture: ")
		})
	}
}

func TestCombinedErrorTypes(t *testing.T) {
	stdErr := fmt.Errorf("standard error")
	customErr := scigoErrors.NewModelError("TestOp", "test failure", stdErr)
	wrappedErr := fmt.Errorf("operation context: %w", customErr)

	assert.ErrorIs(t, wrappedErr, stdErr)

	var modelErr *scigoErrors.ModelError
	require.ErrorAs(t, wrappedErr, &modelErr)
	assert.Equal(t, stdErr, modelErr.Unwrap())
}

func TestModelErrorWithoutCause(t *testing.T) {
	err := scigoErrors.NewModelError("Check", "no rows", nil)
	assert.Equal(t, "regfixture: Check: no rows", err.Error())
}

func TestParseErrorPosition(t *testing.T) {
	err := scigoErrors.NewParseError(2, 5, "expected '['")

	var pe *scigoErrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 5, pe.Column)
	assert.Equal(t, "regfixture: parse error at line 2, column 5: expected '['", err.Error())
}

func TestRecover(t *testing.T) {
	t.Run("panic with value", func(t *testing.T) {
		run := func() (err error) {
			defer scigoErrors.Recover(&err, "Generate")
			panic("index out of range")
		}
		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "regfixture: Generate: panic: index out of range")
	})

	t.Run("panic with error", func(t *testing.T) {
		cause := errors.New("boom")
		run := func() (err error) {
			defer scigoErrors.Recover(&err, "Write")
			panic(cause)
		}
		err := run()
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("no panic", func(t *testing.T) {
		run := func() (err error) {
			defer scigoErrors.Recover(&err, "Noop")
			return nil
		}
		assert.NoError(t, run())
	})
}

func TestWrapOp(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := scigoErrors.WrapOp(cause, "fixture.WriteTo", "write %d bytes", 12)

	assert.EqualError(t, err, "regfixture: fixture.WriteTo: write 12 bytes: disk full")
	assert.ErrorIs(t, err, cause)
	assert.NoError(t, scigoErrors.WrapOp(nil, "fixture.WriteTo", "write"))
}

func TestWithDetailfKeepsMessage(t *testing.T) {
	base := scigoErrors.NewDimensionError("fixture.Read", 6, 5, 0)
	err := scigoErrors.WithDetailf(base, "weights at line %d", 1001)

	assert.Equal(t, base.Error(), err.Error())
	assert.ErrorIs(t, err, scigoErrors.ErrDimensionMismatch)
	assert.Contains(t, scigoErrors.GetAllDetails(err), "weights at line 1001")
}
