// Package testutil provides fixtures and assertions shared by tabula tests.
package testutil

import (
	"testing"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/dataframe"
	"github.com/paveg/tabula/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// defaultRowCount is the default number of rows in test DataFrames.
	defaultRowCount = 4
)

// TestDataFrameOption configures test DataFrame creation.
type TestDataFrameOption func(*testDataFrameConfig)

type testDataFrameConfig struct {
	includeNulls bool
	rowCount     int
	withActive   bool
}

// WithNulls makes every third age Missing.
func WithNulls() TestDataFrameOption {
	return func(cfg *testDataFrameConfig) {
		cfg.includeNulls = true
	}
}

// WithRowCount sets the number of rows in test data.
func WithRowCount(count int) TestDataFrameOption {
	return func(cfg *testDataFrameConfig) {
		cfg.rowCount = count
	}
}

// WithActiveColumn includes an 'active' boolean column.
func WithActiveColumn() TestDataFrameOption {
	return func(cfg *testDataFrameConfig) {
		cfg.withActive = true
	}
}

// CreateTestDataFrame creates a DataFrame of employee data:
//   - name (text): Alice, Bob, Charlie, David, ...
//   - age (int): 25, 30, 35, 28, ...
//   - grade (char): A, B, A, C, ...
//   - salary (float): 100000, 80000.5, 120000, 75000, ...
func CreateTestDataFrame(tb testing.TB, opts ...TestDataFrameOption) *dataframe.DataFrame {
	tb.Helper()

	cfg := &testDataFrameConfig{rowCount: defaultRowCount}
	for _, opt := range opts {
		opt(cfg)
	}

	ages := cycle(cell.OfSlice([]int64{25, 30, 35, 28, 32, 45, 29, 38}), cfg.rowCount)
	if cfg.includeNulls {
		for i := 2; i < len(ages); i += 3 {
			ages[i] = cell.NA()
		}
	}

	grades := []cell.Cell{cell.OfChar('A'), cell.OfChar('B'), cell.OfChar('A'), cell.OfChar('C')}
	cols := []*series.Series{
		mustFrom(tb, "name", cycle(cell.OfSlice([]string{"Alice", "Bob", "Charlie", "David", "Eve", "Frank"}), cfg.rowCount)),
		mustFrom(tb, "age", ages),
		mustFrom(tb, "grade", cycle(grades, cfg.rowCount)),
		mustFrom(tb, "salary", cycle(cell.OfSlice([]float64{100000, 80000.5, 120000, 75000}), cfg.rowCount)),
	}
	if cfg.withActive {
		cols = append(cols, mustFrom(tb, "active", cycle(cell.OfSlice([]bool{true, true, false}), cfg.rowCount)))
	}

	df, err := dataframe.New(cols...)
	require.NoError(tb, err)
	return df
}

// CreateSimpleTestDataFrame creates a two-column DataFrame for basic tests.
func CreateSimpleTestDataFrame(tb testing.TB) *dataframe.DataFrame {
	tb.Helper()

	df, err := dataframe.New(
		series.FromValues("name", []string{"Alice", "Bob"}),
		series.FromValues("age", []int64{25, 30}),
	)
	require.NoError(tb, err)
	return df
}

// SampleCells returns one cell of every concrete kind followed by a Missing
// cell.
func SampleCells() []cell.Cell {
	return []cell.Cell{
		cell.OfInt(-7),
		cell.OfUInt(7),
		cell.OfFloat(2.5),
		cell.OfChar('x'),
		cell.OfBool(true),
		cell.OfText("seven"),
		cell.NA(),
	}
}

// AssertDataFrameEqual compares column names, kinds and cells.
func AssertDataFrameEqual(t *testing.T, expected, actual *dataframe.DataFrame) {
	t.Helper()

	require.NotNil(t, expected, "expected DataFrame should not be nil")
	require.NotNil(t, actual, "actual DataFrame should not be nil")

	assert.Equal(t, expected.Len(), actual.Len(), "DataFrame lengths should match")
	assert.Equal(t, expected.Columns(), actual.Columns(), "DataFrame columns should match")
	assert.Equal(t, expected.Kinds(), actual.Kinds(), "DataFrame kinds should match")

	for _, colName := range expected.Columns() {
		expectedCol, _ := expected.Column(colName)
		actualCol, actualExists := actual.Column(colName)
		require.True(t, actualExists, "actual column %s should exist", colName)

		assert.Equal(t, expectedCol.Cells(), actualCol.Cells(), "column %s data should match", colName)
	}
}

// AssertDataFrameHasColumns verifies that a DataFrame has the expected columns.
func AssertDataFrameHasColumns(t *testing.T, df *dataframe.DataFrame, expectedColumns []string) {
	t.Helper()

	require.NotNil(t, df, "DataFrame should not be nil")
	assert.Len(t, df.Columns(), len(expectedColumns), "column count should match")

	for _, col := range expectedColumns {
		assert.True(t, df.HasColumn(col), "DataFrame should have column %s", col)
	}
}

// AssertDataFrameNotEmpty verifies that a DataFrame is not empty.
func AssertDataFrameNotEmpty(t *testing.T, df *dataframe.DataFrame) {
	t.Helper()

	require.NotNil(t, df, "DataFrame should not be nil")
	assert.Positive(t, df.Len(), "DataFrame should not be empty")
	assert.Positive(t, df.Width(), "DataFrame should have columns")
}

func mustFrom(tb testing.TB, name string, cells []cell.Cell) *series.Series {
	tb.Helper()
	s, err := series.From(name, cells)
	require.NoError(tb, err)
	return s
}

// cycle repeats base until it holds count cells
func cycle(base []cell.Cell, count int) []cell.Cell {
	out := make([]cell.Cell, count)
	for i := range count {
		out[i] = base[i%len(base)]
	}
	return out
}
