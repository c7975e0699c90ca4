// Package errors defines the typed error taxonomy shared by every
// pipeline operation. Each failure carries a Kind so callers can branch
// on the failure class without string matching, plus enough context
// (operation, source, column) to diagnose without reading internals.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	// KindNotFound means the input source could not be reached for reading.
	KindNotFound Kind = "NOT_FOUND"
	// KindEmptySource means the input source contained zero bytes.
	KindEmptySource Kind = "EMPTY_SOURCE"
	// KindParseError means the delimited structure of the source was malformed.
	KindParseError Kind = "PARSE_ERROR"
	// KindEmptyData means the parsed table had zero rows or zero columns.
	KindEmptyData Kind = "EMPTY_DATA"
	// KindInvalidColumn means a column is missing, non-numeric, empty,
	// or has zero variance where the operation requires spread.
	KindInvalidColumn Kind = "INVALID_COLUMN"
	// KindDegenerateColumn means a normalization target has zero range.
	KindDegenerateColumn Kind = "DEGENERATE_COLUMN"
	// KindAllMissing means an imputation target has no usable values.
	KindAllMissing Kind = "ALL_MISSING"
	// KindUnsupportedFormat means an export format token is not recognized.
	KindUnsupportedFormat Kind = "UNSUPPORTED_FORMAT"
	// KindUnknownIO is the catch-all for unexpected I/O failures.
	KindUnknownIO Kind = "UNKNOWN_IO_ERROR"
)

// PipelineError is the error type returned by every core operation.
type PipelineError struct {
	Kind   Kind
	Op     string // operation that failed, e.g. "load", "normalize"
	Source string // input/output path or sink name, when relevant
	Column string // column name, when relevant
	Cause  error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	if e.Source != "" {
		msg += fmt.Sprintf(" source=%s", e.Source)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column=%s", e.Column)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a PipelineError of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or "" if err is not a PipelineError.
func KindOf(err error) Kind {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// New creates a PipelineError with the given kind and operation.
func New(kind Kind, op string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Op: op, Cause: cause}
}

// WithSource attaches the source identifier and returns the error.
func (e *PipelineError) WithSource(source string) *PipelineError {
	e.Source = source
	return e
}

// WithColumn attaches the column name and returns the error.
func (e *PipelineError) WithColumn(column string) *PipelineError {
	e.Column = column
	return e
}

// Constructors for the common failure shapes.

// NewNotFound reports an unreachable input source.
func NewNotFound(op, source string, cause error) *PipelineError {
	return New(KindNotFound, op, cause).WithSource(source)
}

// NewEmptySource reports a zero-byte input source.
func NewEmptySource(op, source string) *PipelineError {
	return New(KindEmptySource, op, nil).WithSource(source)
}

// NewParseError reports a malformed delimited source.
func NewParseError(op, source string, cause error) *PipelineError {
	return New(KindParseError, op, cause).WithSource(source)
}

// NewEmptyData reports a parsed table with no rows or no columns.
func NewEmptyData(op, source string) *PipelineError {
	return New(KindEmptyData, op, nil).WithSource(source)
}

// NewInvalidColumn reports a column unfit for a numeric operation.
func NewInvalidColumn(op, column string, cause error) *PipelineError {
	return New(KindInvalidColumn, op, cause).WithColumn(column)
}

// NewDegenerateColumn reports a zero-range normalization target.
func NewDegenerateColumn(op, column string) *PipelineError {
	return New(KindDegenerateColumn, op, nil).WithColumn(column)
}

// NewAllMissing reports an imputation target with no usable values.
func NewAllMissing(op, column string) *PipelineError {
	return New(KindAllMissing, op, nil).WithColumn(column)
}

// NewUnsupportedFormat reports an unrecognized export format token.
func NewUnsupportedFormat(op, format string) *PipelineError {
	return New(KindUnsupportedFormat, op, fmt.Errorf("format %q", format))
}

// NewUnknownIO wraps an unexpected I/O failure.
func NewUnknownIO(op, source string, cause error) *PipelineError {
	return New(KindUnknownIO, op, cause).WithSource(source)
}
