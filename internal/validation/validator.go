// Package validation provides input validation utilities for series and
// DataFrame operations. Each validator captures its inputs at construction
// and reports the first violation as a typed error from internal/errors.
package validation

import (
	"fmt"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/errors"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnValidator validates column existence
type ColumnValidator struct {
	df      ColumnProvider
	columns []string
	op      string
}

// ColumnProvider interface for types that provide column information
type ColumnProvider interface {
	HasColumn(name string) bool
	Columns() []string
	Len() int
	Width() int
}

// NewColumnValidator creates a validator for column operations
func NewColumnValidator(df ColumnProvider, op string, columns ...string) *ColumnValidator {
	return &ColumnValidator{
		df:      df,
		columns: columns,
		op:      op,
	}
}

// Validate checks if all columns exist in the DataFrame
func (v *ColumnValidator) Validate() error {
	for _, column := range v.columns {
		if !v.df.HasColumn(column) {
			return errors.NewColumnNotFoundError(v.op, column)
		}
	}
	return nil
}

// LengthValidator validates that a column has the expected number of rows
type LengthValidator struct {
	expected int
	actual   int
	op       string
	column   string
}

// NewLengthValidator creates a validator for length consistency
func NewLengthValidator(expected, actual int, op, column string) *LengthValidator {
	return &LengthValidator{
		expected: expected,
		actual:   actual,
		op:       op,
		column:   column,
	}
}

// Validate checks if lengths match
func (v *LengthValidator) Validate() error {
	if v.expected != v.actual {
		return errors.NewLengthMismatchError(v.op, v.column, v.expected, v.actual)
	}
	return nil
}

// KindValidator validates that a value may be stored under a declared kind.
type KindValidator struct {
	want   cell.Kind
	got    cell.Kind
	op     string
	column string
}

// NewKindValidator creates a validator that accepts got when it is
// compatible with want.
func NewKindValidator(want cell.Kind, got cell.Typed, op, column string) *KindValidator {
	return &KindValidator{
		want:   want,
		got:    got.Kind(),
		op:     op,
		column: column,
	}
}

// Validate checks kind compatibility
func (v *KindValidator) Validate() error {
	if !cell.Compatible(v.want, v.got) {
		return errors.NewInvalidTypeError(v.op, v.column, v.want.String(), v.got.String())
	}
	return nil
}

// StrictKindValidator rejects a series declared Mixed. A DataFrame column
// must hold a single kind.
type StrictKindValidator struct {
	got    cell.Kind
	op     string
	column string
}

// NewStrictKindValidator creates a validator for a column about to join a
// DataFrame
func NewStrictKindValidator(got cell.Typed, op, column string) *StrictKindValidator {
	return &StrictKindValidator{
		got:    got.Kind(),
		op:     op,
		column: column,
	}
}

// Validate fails with a MixedTypeError for a Mixed kind
func (v *StrictKindValidator) Validate() error {
	if v.got == cell.Mixed {
		return errors.NewMixedTypeError(v.op, v.column).
			WithHint("resolve the series to a single kind before adding it to a DataFrame")
	}
	return nil
}

// BatchValidator validates every cell of a batch against one declared kind.
// It is used before a batch is appended so that a rejected batch leaves the
// target untouched.
type BatchValidator struct {
	want   cell.Kind
	cells  []cell.Cell
	op     string
	column string
}

// NewBatchValidator creates a validator for a batch insert
func NewBatchValidator(want cell.Kind, cells []cell.Cell, op, column string) *BatchValidator {
	return &BatchValidator{
		want:   want,
		cells:  cells,
		op:     op,
		column: column,
	}
}

// Validate returns the error for the first incompatible cell. The hint names
// its position in the batch.
func (v *BatchValidator) Validate() error {
	for i, c := range v.cells {
		if !cell.Compatible(v.want, c.Kind()) {
			err := errors.NewInvalidTypeError(v.op, v.column, v.want.String(), c.Kind().String())
			return err.WithHint(fmt.Sprintf("first rejected value is at batch position %d", i))
		}
	}
	return nil
}

// IndexValidator validates index bounds
type IndexValidator struct {
	index  int
	length int
	op     string
}

// NewIndexValidator creates a validator for index operations
func NewIndexValidator(index, length int, op string) *IndexValidator {
	return &IndexValidator{
		index:  index,
		length: length,
		op:     op,
	}
}

// Validate checks if index is within bounds
func (v *IndexValidator) Validate() error {
	if v.index < 0 || v.index >= v.length {
		return errors.NewIndexOutOfRangeError(v.op, v.index, v.length)
	}
	return nil
}

// NamesValidator validates that column names are non-empty and unique.
type NamesValidator struct {
	names []string
	op    string
}

// NewNamesValidator creates a validator for a set of column names
func NewNamesValidator(op string, names ...string) *NamesValidator {
	return &NamesValidator{
		names: names,
		op:    op,
	}
}

// Validate reports the first empty or repeated name
func (v *NamesValidator) Validate() error {
	seen := make(map[string]struct{}, len(v.names))
	for i, name := range v.names {
		if name == "" {
			return errors.NewInvalidInputError(v.op, fmt.Sprintf("column %d has no name", i))
		}
		if _, ok := seen[name]; ok {
			return errors.NewDuplicateColumnError(v.op, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// CompoundValidator combines multiple validators
type CompoundValidator struct {
	validators []Validator
}

// NewCompoundValidator creates a validator that checks multiple conditions
func NewCompoundValidator(validators ...Validator) *CompoundValidator {
	return &CompoundValidator{
		validators: validators,
	}
}

// Validate runs all validators and returns the first error encountered
func (v *CompoundValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convenience validation functions

// ValidateColumns is a convenience function for column validation
func ValidateColumns(df ColumnProvider, op string, columns ...string) error {
	return NewColumnValidator(df, op, columns...).Validate()
}

// ValidateLength is a convenience function for length validation
func ValidateLength(expected, actual int, op, column string) error {
	return NewLengthValidator(expected, actual, op, column).Validate()
}

// ValidateKind is a convenience function for kind validation
func ValidateKind(want cell.Kind, got cell.Typed, op, column string) error {
	return NewKindValidator(want, got, op, column).Validate()
}

// ValidateStrictKind is a convenience function for strict kind validation
func ValidateStrictKind(got cell.Typed, op, column string) error {
	return NewStrictKindValidator(got, op, column).Validate()
}

// ValidateBatch is a convenience function for batch validation
func ValidateBatch(want cell.Kind, cells []cell.Cell, op, column string) error {
	return NewBatchValidator(want, cells, op, column).Validate()
}

// ValidateIndex is a convenience function for index validation
func ValidateIndex(index, length int, op string) error {
	return NewIndexValidator(index, length, op).Validate()
}

// ValidateNames is a convenience function for name validation
func ValidateNames(op string, names ...string) error {
	return NewNamesValidator(op, names...).Validate()
}
