package fixture

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/regfixture/pkg/errors"
	"github.com/ezoic/regfixture/pkg/log"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokNumber
)

type token struct {
	kind      tokenKind
	text      string
	line, col int
}

// lexer splits bracketed text into '[', ']' and number tokens. Whitespace,
// including newlines inside a row, is insignificant.
type lexer struct {
	src       []byte
	pos       int
	line, col int
	peeked    *token
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == ','
}

func (l *lexer) peek() token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}

func (l *lexer) next() token {
	t := l.peek()
	l.peeked = nil
	return t
}

func (l *lexer) scan() token {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.advance()
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, col: l.col}
	}

	t := token{line: l.line, col: l.col}
	switch l.src[l.pos] {
	case '[':
		l.advance()
		t.kind = tokOpen
		t.text = "["
	case ']':
		l.advance()
		t.kind = tokClose
		t.text = "]"
	default:
		start := l.pos
		for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && l.src[l.pos] != '[' && l.src[l.pos] != ']' {
			l.advance()
		}
		t.kind = tokNumber
		t.text = string(l.src[start:l.pos])
	}
	return t
}

func (l *lexer) expect(kind tokenKind, what string) (token, error) {
	t := l.next()
	if t.kind != kind {
		return t, scigoErrors.NewParseError(t.line, t.col, fmt.Sprintf("expected %s, found %s", what, describe(t)))
	}
	return t, nil
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

func parseNumber(t token) (float64, error) {
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil && !scigoErrors.Is(err, strconv.ErrRange) {
		return 0, scigoErrors.NewParseError(t.line, t.col, fmt.Sprintf("invalid number %q", t.text))
	}
	// Overflow comes back as ±Inf with ErrRange; underflow rounds to zero.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, scigoErrors.NewModelError("fixture.Parse",
			fmt.Sprintf("line %d, column %d: %q", t.line, t.col, t.text), scigoErrors.ErrNonFinite)
	}
	return v, nil
}

// row parses '[' number* ']'.
func (l *lexer) row() ([]float64, error) {
	if _, err := l.expect(tokOpen, "'['"); err != nil {
		return nil, err
	}
	var vals []float64
	for {
		t := l.next()
		switch t.kind {
		case tokClose:
			return vals, nil
		case tokNumber:
			v, err := parseNumber(t)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		default:
			return nil, scigoErrors.NewParseError(t.line, t.col, fmt.Sprintf("expected number or ']', found %s", describe(t)))
		}
	}
}

func (l *lexer) matrix() (*mat.Dense, error) {
	open, err := l.expect(tokOpen, "'['")
	if err != nil {
		return nil, err
	}

	var data []float64
	rows, cols := 0, 0
	for l.peek().kind != tokClose {
		t := l.peek()
		vals, err := l.row()
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			cols = len(vals)
		} else if len(vals) != cols {
			return nil, scigoErrors.WithDetailf(
				scigoErrors.NewDimensionError("fixture.Parse", cols, len(vals), 1),
				"row %d at line %d", rows+1, t.line)
		}
		data = append(data, vals...)
		rows++
	}
	l.next()

	if rows == 0 || cols == 0 {
		return nil, scigoErrors.NewModelError("fixture.Parse",
			fmt.Sprintf("empty matrix at line %d", open.line), scigoErrors.ErrEmptyData)
	}
	return mat.NewDense(rows, cols, data), nil
}

func (l *lexer) vector() (*mat.VecDense, error) {
	t := l.peek()
	vals, err := l.row()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, scigoErrors.NewModelError("fixture.Parse",
			fmt.Sprintf("empty vector at line %d", t.line), scigoErrors.ErrEmptyData)
	}
	return mat.NewVecDense(len(vals), vals), nil
}

func (l *lexer) end() error {
	_, err := l.expect(tokEOF, "end of input")
	return err
}

// ParseMatrix parses a single bracketed matrix such as "[[1 2] [3 4]]".
// Rows must have equal length; NaN and Inf are rejected.
func ParseMatrix(src []byte) (*mat.Dense, error) {
	l := newLexer(src)
	m, err := l.matrix()
	if err != nil {
		return nil, err
	}
	return m, l.end()
}

// ParseVector parses a single bracketed vector such as "[1 2 3]".
func ParseVector(src []byte) (*mat.VecDense, error) {
	l := newLexer(src)
	v, err := l.vector()
	if err != nil {
		return nil, err
	}
	return v, l.end()
}

// Read parses the output of Fixture.WriteTo: the n x (m+1) data matrix and
// the m true weights.
//
// Errors:
//   - ErrParse: malformed text, with line and column
//   - ErrDimensionMismatch: ragged rows, or a weight count other than m
//   - ErrEmptyData: an empty matrix or vector
//   - ErrNonFinite: a NaN or Inf value
func Read(r io.Reader) (data *mat.Dense, weights *mat.VecDense, err error) {
	defer scigoErrors.Recover(&err, "fixture.Read")

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, scigoErrors.WrapOp(err, "fixture.Read", "read")
	}

	l := newLexer(src)
	if data, err = l.matrix(); err != nil {
		return nil, nil, err
	}
	if weights, err = l.vector(); err != nil {
		return nil, nil, err
	}
	if err = l.end(); err != nil {
		return nil, nil, err
	}

	rows, cols := data.Dims()
	if weights.Len() != cols-1 {
		return nil, nil, scigoErrors.WithDetailf(
			scigoErrors.NewDimensionError("fixture.Read", cols-1, weights.Len(), 0),
			"weight count must match feature columns")
	}

	log.GetLoggerWithName("fixture").Debug("Fixture parsed",
		log.OperationKey, log.OperationParse,
		log.SamplesKey, rows,
		log.FeaturesKey, cols-1,
	)
	return data, weights, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string) (*mat.Dense, *mat.VecDense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, scigoErrors.WrapOp(err, "fixture.ReadFile", "open %s", path)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Split separates the data matrix into features and the response, which is
// the last column.
func Split(data mat.Matrix) (*mat.Dense, *mat.VecDense, error) {
	r, c := data.Dims()
	if r == 0 {
		return nil, nil, scigoErrors.NewModelError("fixture.Split", "no rows", scigoErrors.ErrEmptyData)
	}
	if c < 2 {
		return nil, nil, scigoErrors.NewDimensionError("fixture.Split", 2, c, 1)
	}

	X := mat.NewDense(r, c-1, nil)
	X.Copy(data)
	y := mat.NewVecDense(r, mat.Col(nil, c-1, data))
	return X, y, nil
}
