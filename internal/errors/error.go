// Package errors provides standardized error types for series and cell operations.
// This package defines Error for consistent error handling across all public
// APIs, with operation context, an error code for errors.Is matching, and
// error wrapping support.
package errors

import (
	"fmt"
)

// Code classifies an Error. Two errors with the same code match under errors.Is.
type Code int

const (
	// InvalidType marks an insertion or operation that violates a series' declared kind.
	InvalidType Code = iota + 1
	// ConversionError marks a strict scalar extraction attempted on a cell of the wrong kind.
	ConversionError
	// MixedTypeError marks an attempt to build a strict series from heterogeneous data.
	MixedTypeError
	// ColumnNotFound marks a lookup of a column that does not exist.
	ColumnNotFound
	// DuplicateColumn marks a column name used twice in one DataFrame.
	DuplicateColumn
	// LengthMismatch marks series of different lengths combined into one DataFrame.
	LengthMismatch
	// IndexOutOfRange marks positional access outside a series.
	IndexOutOfRange
	// UnsupportedType marks a Go or Arrow type with no cell representation.
	UnsupportedType
	// InvalidInput marks any other malformed argument.
	InvalidInput
)

var codeNames = map[Code]string{
	InvalidType:     "InvalidType",
	ConversionError: "ConversionError",
	MixedTypeError:  "MixedTypeError",
	ColumnNotFound:  "ColumnNotFound",
	DuplicateColumn: "DuplicateColumn",
	LengthMismatch:  "LengthMismatch",
	IndexOutOfRange: "IndexOutOfRange",
	UnsupportedType: "UnsupportedType",
	InvalidInput:    "InvalidInput",
}

// String returns the code name
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error represents standardized errors across all series operations
type Error struct {
	Op      string // Operation name (e.g., "Push", "From", "ConvertTo")
	Column  string // Series name if applicable
	Code    Code   // Error classification
	Message string // Human-readable error description
	Hint    string // Optional remediation hint
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *Error) Error() string {
	var msg string
	if e.Column != "" {
		msg = fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	} else {
		msg = fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
	}
	if e.Hint != "" {
		msg += " (Hint: " + e.Hint + ")"
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping support
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same Code. When target also names an
// operation, the operation must match too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Code != t.Code {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// WithHint returns a copy of the error carrying a remediation hint
func (e *Error) WithHint(hint string) *Error {
	cp := *e
	cp.Hint = hint
	return &cp
}

// Common error constructors for consistent error creation

// NewInvalidTypeError creates an error for a value whose kind a series refuses
func NewInvalidTypeError(op, column, want, got string) *Error {
	return &Error{
		Op:      op,
		Column:  column,
		Code:    InvalidType,
		Message: fmt.Sprintf("invalid data type: series holds %s, got %s", want, got),
	}
}

// NewConversionError creates an error for a strict extraction of the wrong kind
func NewConversionError(op, want, got string) *Error {
	return &Error{
		Op:      op,
		Code:    ConversionError,
		Message: fmt.Sprintf("cannot extract %s from %s cell", want, got),
	}
}

// NewMixedTypeError creates an error for heterogeneous data in a strict series
func NewMixedTypeError(op, column string) *Error {
	return &Error{
		Op:      op,
		Column:  column,
		Code:    MixedTypeError,
		Message: "mixed data types in type checked series",
	}
}

// NewColumnNotFoundError creates an error for operations on non-existent columns
func NewColumnNotFoundError(op, column string) *Error {
	return &Error{
		Op:      op,
		Column:  column,
		Code:    ColumnNotFound,
		Message: "column does not exist",
	}
}

// NewDuplicateColumnError creates an error for a repeated column name
func NewDuplicateColumnError(op, column string) *Error {
	return &Error{
		Op:      op,
		Column:  column,
		Code:    DuplicateColumn,
		Message: "column already exists",
	}
}

// NewLengthMismatchError creates an error for series of unequal length
func NewLengthMismatchError(op, column string, expected, actual int) *Error {
	return &Error{
		Op:      op,
		Column:  column,
		Code:    LengthMismatch,
		Message: fmt.Sprintf("expected length %d, got %d", expected, actual),
	}
}

// NewIndexOutOfRangeError creates an error for out-of-bounds positional access
func NewIndexOutOfRangeError(op string, index, length int) *Error {
	return &Error{
		Op:      op,
		Code:    IndexOutOfRange,
		Message: fmt.Sprintf("index %d out of range [0, %d)", index, length),
	}
}

// NewUnsupportedTypeError creates an error for unsupported data types
func NewUnsupportedTypeError(op, typeName string) *Error {
	return &Error{
		Op:      op,
		Code:    UnsupportedType,
		Message: fmt.Sprintf("unsupported type: %s", typeName),
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *Error {
	return &Error{
		Op:      op,
		Code:    InvalidInput,
		Message: message,
	}
}

// Predefined errors for errors.Is matching
var (
	// ErrInvalidType matches any InvalidType error
	ErrInvalidType = &Error{Code: InvalidType, Message: "invalid data type"}

	// ErrConversion matches any ConversionError
	ErrConversion = &Error{Code: ConversionError, Message: "conversion error"}

	// ErrMixedType matches any MixedTypeError
	ErrMixedType = &Error{Code: MixedTypeError, Message: "mixed data types"}

	// ErrColumnNotFound matches any ColumnNotFound error
	ErrColumnNotFound = &Error{Code: ColumnNotFound, Message: "column does not exist"}

	// ErrDuplicateColumn matches any DuplicateColumn error
	ErrDuplicateColumn = &Error{Code: DuplicateColumn, Message: "column already exists"}

	// ErrLengthMismatch matches any LengthMismatch error
	ErrLengthMismatch = &Error{Code: LengthMismatch, Message: "series must have the same length"}

	// ErrIndexOutOfRange matches any IndexOutOfRange error
	ErrIndexOutOfRange = &Error{Code: IndexOutOfRange, Message: "index out of bounds"}

	// ErrUnsupportedType matches any UnsupportedType error
	ErrUnsupportedType = &Error{Code: UnsupportedType, Message: "unsupported type"}

	// ErrInvalidInput matches any InvalidInput error
	ErrInvalidInput = &Error{Code: InvalidInput, Message: "invalid input"}
)
