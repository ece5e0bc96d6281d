// Package errors defines the error types shared by every regfixture package.
//
// Typed errors (DimensionError, ValueError, ModelError, NotFittedError and
// ParseError) carry the operation that failed and unwrap to a sentinel, so
// callers can branch with errors.Is on the category and errors.As on the
// details. Stack traces and wrapping come from github.com/cockroachdb/errors,
// whose helpers are re-exported here so packages need a single import.
//
//	if r != len(y) {
//		return scigoErrors.NewDimensionError("Check", r, len(y), 0)
//	}
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

const prefix = "regfixture: "

// Sentinel errors. Typed errors unwrap to one of these.
var (
	ErrEmptyData         = errors.New("empty data")
	ErrSingularMatrix    = errors.New("singular matrix")
	ErrNotImplemented    = errors.New("not implemented")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrNotFitted         = errors.New("not fitted")
	ErrParse             = errors.New("parse error")
	ErrNonFinite         = errors.New("non-finite value")
)

// Re-exported helpers from cockroachdb/errors.
var (
	New       = errors.New
	Newf      = errors.Newf
	Wrap      = errors.Wrap
	Wrapf     = errors.Wrapf
	WithStack = errors.WithStack

	WithDetailf   = errors.WithDetailf
	GetAllDetails = errors.GetAllDetails
	Is        = errors.Is
	As        = errors.As
	Unwrap    = errors.Unwrap
)

// DimensionError reports a shape mismatch along one axis (0 = rows, 1 = columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError for op.
func NewDimensionError(op string, expected, got, axis int) error {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s%s: dimension mismatch on axis %d: expected %d, got %d",
		prefix, e.Op, e.Axis, e.Expected, e.Got)
}

// Unwrap returns ErrDimensionMismatch.
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// ValueError reports an argument with an invalid value.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError for op.
func NewValueError(op, message string) error {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s%s: %s", prefix, e.Op, e.Message)
}

// Unwrap returns ErrInvalidInput.
func (e *ValueError) Unwrap() error { return ErrInvalidInput }

// ModelError annotates an underlying error with the operation and a message.
type ModelError struct {
	Op      string
	Message string
	Err     error
}

// NewModelError creates a ModelError wrapping err.
func NewModelError(op, message string, err error) error {
	return &ModelError{Op: op, Message: message, Err: err}
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s%s: %s", prefix, e.Op, e.Message)
	}
	return fmt.Sprintf("%s%s: %s: %v", prefix, e.Op, e.Message, e.Err)
}

// Unwrap returns the wrapped error.
func (e *ModelError) Unwrap() error { return e.Err }

// NotFittedError is returned when a method needs a fitted estimator.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) error {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s%s: this %s instance is not fitted yet; call Fit before %s",
		prefix, e.ModelName, e.ModelName, e.Method)
}

// Unwrap returns ErrNotFitted.
func (e *NotFittedError) Unwrap() error { return ErrNotFitted }

// ParseError reports malformed fixture text. Line and Column are 1-based.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

// NewParseError creates a ParseError at the given position.
func NewParseError(line, column int, message string) error {
	return &ParseError{Line: line, Column: column, Message: message}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%sparse error at line %d, column %d: %s", prefix, e.Line, e.Column, e.Message)
}

// Unwrap returns ErrParse.
func (e *ParseError) Unwrap() error { return ErrParse }

// WrapOp wraps err with the module prefix, the failing operation and a
// formatted detail: "regfixture: <op>: <detail>: <err>". Use it for errors
// that come from outside this module; typed errors already carry the prefix
// and take extra context through WithDetailf.
func WrapOp(err error, op, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WrapWithDepthf(1, err, "%s%s: %s", prefix, op, fmt.Sprintf(format, args...))
}

// Recover turns a panic in the calling function into an error assigned to
// *err. It must be deferred directly:
//
//	defer scigoErrors.Recover(&err, "LinearRegression.Fit")
func Recover(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = errors.Wrapf(e, "%s%s: panic", prefix, op)
		return
	}
	*err = errors.Newf("%s%s: panic: %v", prefix, op, r)
}
