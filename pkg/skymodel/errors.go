package skymodel

import (
	"errors"
	"fmt"
)

// Dataset errors. Use errors.Is to check for a specific condition.
var (
	// ErrTruncated indicates the stream ended before a field was complete.
	ErrTruncated = errors.New("skymodel: truncated dataset")

	// ErrOutOfRange indicates a field value outside its documented range.
	ErrOutOfRange = errors.New("skymodel: dataset value out of range")

	// ErrUnsupportedParams indicates sky parameters outside the fitted range.
	// Queries still answer, but accuracy is not guaranteed.
	ErrUnsupportedParams = errors.New("skymodel: parameters outside supported range")
)

// IOError reports a failure to open or read the dataset stream.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("skymodel: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("skymodel: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a malformed dataset field.
//
// For ErrTruncated, Expected and Actual are record counts. For ErrOutOfRange
// on an integer field, Expected is the documented minimum and Actual the value
// found; Detail describes other violations.
type FormatError struct {
	Field    string
	Expected int
	Actual   int
	Detail   string
	Err      error
}

func (e *FormatError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%v: %s: %s", e.Err, e.Field, e.Detail)
	case errors.Is(e.Err, ErrTruncated):
		return fmt.Sprintf("%v: %s: read %d of %d records", e.Err, e.Field, e.Actual, e.Expected)
	default:
		return fmt.Sprintf("%v: %s: value %d below minimum %d", e.Err, e.Field, e.Actual, e.Expected)
	}
}

func (e *FormatError) Unwrap() error { return e.Err }

func truncated(field string, expected, actual int) *FormatError {
	return &FormatError{Field: field, Expected: expected, Actual: actual, Err: ErrTruncated}
}

func belowMinimum(field string, minimum, actual int) *FormatError {
	return &FormatError{Field: field, Expected: minimum, Actual: actual, Err: ErrOutOfRange}
}

func invalidField(field, format string, args ...any) *FormatError {
	return &FormatError{Field: field, Detail: fmt.Sprintf(format, args...), Err: ErrOutOfRange}
}
