package verify

import (
	"bytes"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// WriteTo prints a human-readable summary of the report.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	status := "PASS"
	if !r.OK() {
		status = "FAIL"
	}
	fmt.Fprintf(&buf, "fixture check: %s (worst |z| = %.3f, limit %.3g)\n", status, r.WorstZ(), r.MaxZ)
	fmt.Fprintf(&buf, "samples: %d  features: %d\n\n", r.Samples, r.Features)

	// Rows: true, fitted, stderr, z.
	m := r.Features
	table := mat.NewDense(4, m, nil)
	table.SetRow(0, r.TrueWeights)
	table.SetRow(1, r.FittedWeights)
	table.SetRow(2, r.StdErrors)
	table.SetRow(3, r.ZScores)
	fmt.Fprintf(&buf, "weights (rows: true, fitted, stderr, z)\n%.6g\n\n",
		mat.Formatted(table, mat.Squeeze(), mat.Excerpt(0)))

	fmt.Fprintf(&buf, "intercept: %.6g (expected %.6g, stderr %.3g, z %.3f)\n",
		r.Intercept, r.ExpectedIntercept, r.InterceptStdErr, r.InterceptZ)
	fmt.Fprintf(&buf, "residual std: %.6g\n", r.ResidualStd)
	fmt.Fprintf(&buf, "R²: %.8f\n", r.R2)
	fmt.Fprintf(&buf, "cost: %.6g (normalized %.6g)\n", r.Cost, r.NormalizedCost)

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
