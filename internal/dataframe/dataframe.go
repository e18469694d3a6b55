// Package dataframe provides a table of named, equally long strict series.
package dataframe

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/cespare/xxhash/v2"
	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/errors"
	"github.com/paveg/tabula/internal/series"
	"github.com/paveg/tabula/internal/validation"
)

// DataFrame represents a table of data with kinded columns
type DataFrame struct {
	columns map[string]*series.Series
	order   []string // Maintains column order
}

// New creates a DataFrame from series. Names must be non-empty and unique,
// no series may be declared Mixed, and every series must have the same
// length. The DataFrame takes ownership of the series.
func New(cols ...*series.Series) (*DataFrame, error) {
	names := make([]string, len(cols))
	for i, s := range cols {
		names[i] = s.Name()
	}
	if err := validation.ValidateNames("New", names...); err != nil {
		return nil, err
	}
	for _, s := range cols {
		if err := validation.ValidateStrictKind(s, "New", s.Name()); err != nil {
			return nil, err
		}
	}
	for _, s := range cols[min(1, len(cols)):] {
		if err := validation.ValidateLength(cols[0].Len(), s.Len(), "New", s.Name()); err != nil {
			return nil, err
		}
	}

	df := &DataFrame{
		columns: make(map[string]*series.Series, len(cols)),
		order:   make([]string, 0, len(cols)),
	}
	for _, s := range cols {
		df.columns[s.Name()] = s
		df.order = append(df.order, s.Name())
	}
	return df, nil
}

// Columns returns the names of all columns in order
func (df *DataFrame) Columns() []string {
	if len(df.order) == 0 {
		return []string{}
	}
	return append([]string(nil), df.order...)
}

// Len returns the number of rows
func (df *DataFrame) Len() int {
	if len(df.order) == 0 {
		return 0
	}
	return df.columns[df.order[0]].Len()
}

// Width returns the number of columns
func (df *DataFrame) Width() int {
	return len(df.order)
}

// IsEmpty reports whether the DataFrame holds no rows. A DataFrame with
// columns but no rows is empty.
func (df *DataFrame) IsEmpty() bool {
	return df.Len() == 0
}

// Column returns the series for the given column name. The series is shared
// with the DataFrame; its length must not be changed.
func (df *DataFrame) Column(name string) (*series.Series, bool) {
	s, exists := df.columns[name]
	return s, exists
}

// HasColumn checks if a column exists
func (df *DataFrame) HasColumn(name string) bool {
	_, exists := df.columns[name]
	return exists
}

// Kinds returns the kind of each column in order
func (df *DataFrame) Kinds() []cell.Kind {
	kinds := make([]cell.Kind, len(df.order))
	for i, name := range df.order {
		kinds[i] = df.columns[name].Kind()
	}
	return kinds
}

// Select returns a new DataFrame with only the specified columns, in the
// order given. The series are shared.
func (df *DataFrame) Select(names ...string) (*DataFrame, error) {
	if err := validation.ValidateColumns(df, "Select", names...); err != nil {
		return nil, err
	}
	if err := validation.ValidateNames("Select", names...); err != nil {
		return nil, err
	}

	out := &DataFrame{
		columns: make(map[string]*series.Series, len(names)),
		order:   make([]string, 0, len(names)),
	}
	for _, name := range names {
		out.columns[name] = df.columns[name]
		out.order = append(out.order, name)
	}
	return out, nil
}

// Drop returns a new DataFrame without the specified columns
func (df *DataFrame) Drop(names ...string) (*DataFrame, error) {
	if err := validation.ValidateColumns(df, "Drop", names...); err != nil {
		return nil, err
	}

	dropSet := make(map[string]bool, len(names))
	for _, name := range names {
		dropSet[name] = true
	}

	out := &DataFrame{
		columns: make(map[string]*series.Series, len(df.order)),
		order:   make([]string, 0, len(df.order)),
	}
	for _, name := range df.order {
		if !dropSet[name] {
			out.columns[name] = df.columns[name]
			out.order = append(out.order, name)
		}
	}
	return out, nil
}

// AddColumn appends s as the last column.
func (df *DataFrame) AddColumn(s *series.Series) error {
	validators := []validation.Validator{
		validation.NewNamesValidator("AddColumn", append(df.Columns(), s.Name())...),
		validation.NewStrictKindValidator(s, "AddColumn", s.Name()),
	}
	if df.Width() > 0 {
		validators = append(validators, validation.NewLengthValidator(df.Len(), s.Len(), "AddColumn", s.Name()))
	}
	if err := validation.NewCompoundValidator(validators...).Validate(); err != nil {
		return err
	}

	df.columns[s.Name()] = s
	df.order = append(df.order, s.Name())
	return nil
}

// ConvertColumn re-kinds one column in place with Series.ConvertTo.
func (df *DataFrame) ConvertColumn(name string, target cell.Kind) error {
	if err := validation.ValidateColumns(df, "ConvertColumn", name); err != nil {
		return err
	}
	return df.columns[name].ConvertTo(target)
}

// Row returns the cells of row i in column order.
func (df *DataFrame) Row(i int) ([]cell.Cell, error) {
	if err := validation.ValidateIndex(i, df.Len(), "Row"); err != nil {
		return nil, err
	}
	row := make([]cell.Cell, len(df.order))
	for j, name := range df.order {
		row[j] = df.columns[name].At(i)
	}
	return row, nil
}

// Slice creates a new DataFrame containing rows from start (inclusive) to
// end (exclusive). The range is clamped to the available rows.
func (df *DataFrame) Slice(start, end int) *DataFrame {
	start = max(start, 0)
	end = min(end, df.Len())
	if end < start {
		end = start
	}

	out := &DataFrame{
		columns: make(map[string]*series.Series, len(df.order)),
		order:   append([]string(nil), df.order...),
	}
	for _, name := range df.order {
		src := df.columns[name]
		s := series.WithCapacity(name, src.Kind(), end-start)
		for i := start; i < end; i++ {
			// cells come from a series of the same kind
			_ = s.Push(src.At(i))
		}
		out.columns[name] = s
	}
	return out
}

// Concat appends the rows of others to a copy of df. Every DataFrame must
// have the same column names in the same order, with compatible kinds.
func (df *DataFrame) Concat(others ...*DataFrame) (*DataFrame, error) {
	out := df.Slice(0, df.Len())
	for _, other := range others {
		if !out.hasSameColumns(other) {
			return nil, errors.NewInvalidInputError("Concat", "DataFrames have different columns").
				WithHint(fmt.Sprintf("want %v, got %v", out.order, other.order))
		}
		for _, name := range out.order {
			if err := out.columns[name].PushBatch(other.columns[name].Cells()); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (df *DataFrame) hasSameColumns(other *DataFrame) bool {
	if len(df.order) != len(other.order) {
		return false
	}
	for i, name := range df.order {
		if other.order[i] != name {
			return false
		}
	}
	return true
}

// RowHash returns a hash of the cells of row i. Rows with equal cells hash
// alike.
func (df *DataFrame) RowHash(i int) uint64 {
	d := xxhash.New()
	for _, name := range df.order {
		df.columns[name].At(i).HashTo(d)
	}
	return d.Sum64()
}

// Duplicated reports for each row whether an earlier row holds the same
// cells.
func (df *DataFrame) Duplicated() []bool {
	n := df.Len()
	out := make([]bool, n)
	seen := make(map[uint64][]int, n)
	for i := range n {
		h := df.RowHash(i)
		for _, j := range seen[h] {
			if df.sameRow(i, j) {
				out[i] = true
				break
			}
		}
		if !out[i] {
			seen[h] = append(seen[h], i)
		}
	}
	return out
}

func (df *DataFrame) sameRow(i, j int) bool {
	for _, name := range df.order {
		s := df.columns[name]
		if s.At(i) != s.At(j) {
			return false
		}
	}
	return true
}

// Schema returns the Arrow schema of the DataFrame.
func (df *DataFrame) Schema() *arrow.Schema {
	fields := make([]arrow.Field, len(df.order))
	for i, name := range df.order {
		fields[i] = df.columns[name].Field()
	}
	return arrow.NewSchema(fields, nil)
}

// Record exports the DataFrame as an Arrow record. A nil allocator means the
// Go allocator. The caller must Release the record.
func (df *DataFrame) Record(mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	arrays := make([]arrow.Array, len(df.order))
	for i, name := range df.order {
		arrays[i] = df.columns[name].Arrow(mem)
	}
	defer func() {
		for _, arr := range arrays {
			arr.Release()
		}
	}()

	return array.NewRecord(df.Schema(), arrays, int64(df.Len()))
}

// FromRecord builds a DataFrame from an Arrow record.
func FromRecord(rec arrow.Record) (*DataFrame, error) {
	schema := rec.Schema()
	cols := make([]*series.Series, 0, rec.NumCols())
	for i, arr := range rec.Columns() {
		s, err := series.FromArrow(schema.Field(i), arr)
		if err != nil {
			return nil, fmt.Errorf("converting column %s: %w", schema.Field(i).Name, err)
		}
		cols = append(cols, s)
	}
	return New(cols...)
}

// String returns a string representation of the DataFrame
func (df *DataFrame) String() string {
	if len(df.order) == 0 {
		return "DataFrame[empty]"
	}

	parts := []string{fmt.Sprintf("DataFrame[%dx%d]", df.Len(), df.Width())}
	for _, name := range df.order {
		parts = append(parts, fmt.Sprintf("  %s: %s", name, df.columns[name].Kind()))
	}
	return strings.Join(parts, "\n")
}
