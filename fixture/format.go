package fixture

import (
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
	"github.com/ezoic/regfixture/pkg/log"
)

// AppendMatrix appends m in bracketed row-major form, one row per line:
//
//	[[a b c]
//	 [d e f]]
//
// Every element is written in full with the shortest representation that
// round-trips to the same float64. A trailing newline is appended.
func AppendMatrix(dst []byte, m mat.Matrix) []byte {
	r, c := m.Dims()
	dst = append(dst, '[')
	for i := 0; i < r; i++ {
		if i > 0 {
			dst = append(dst, '\n', ' ')
		}
		dst = append(dst, '[')
		for j := 0; j < c; j++ {
			if j > 0 {
				dst = append(dst, ' ')
			}
			dst = strconv.AppendFloat(dst, m.At(i, j), 'g', -1, 64)
		}
		dst = append(dst, ']')
	}
	return append(dst, ']', '\n')
}

// AppendVector appends v as a single bracketed line: [a b c].
func AppendVector(dst []byte, v mat.Vector) []byte {
	dst = append(dst, '[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendFloat(dst, v.AtVec(i), 'g', -1, 64)
	}
	return append(dst, ']', '\n')
}

// MarshalText returns the two text blocks written by WriteTo.
func (f *Fixture) MarshalText() ([]byte, error) {
	n, m := f.Dims()
	// Roughly 24 bytes per value.
	buf := make([]byte, 0, 24*(n*(m+1)+m))
	buf = AppendMatrix(buf, f.Data())
	buf = AppendVector(buf, f.Weights)
	return buf, nil
}

// WriteTo writes the [X | y] matrix followed by the true weights.
func (f *Fixture) WriteTo(w io.Writer) (int64, error) {
	buf, err := f.MarshalText()
	if err != nil {
		return 0, err
	}

	written, err := w.Write(buf)
	if err != nil {
		return int64(written), scigoErrors.WrapOp(err, "fixture.WriteTo", "write")
	}

	n, m := f.Dims()
	log.GetLoggerWithName("fixture").Debug("Fixture written",
		log.OperationKey, log.OperationWrite,
		log.PhaseKey, log.PhaseOutput,
		log.SamplesKey, n,
		log.FeaturesKey, m,
		"bytes", written,
	)
	return int64(written), nil
}
