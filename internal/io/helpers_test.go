package io_test

import (
	"math"
	"testing"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/dataframe"
	"github.com/paveg/tabula/internal/series"
	"github.com/stretchr/testify/require"
)

// testDataFrame holds one column per textual kind, with missing cells and a
// field that needs quoting.
func testDataFrame(t *testing.T) *dataframe.DataFrame {
	t.Helper()

	build := func(name string, cells ...cell.Cell) *series.Series {
		s, err := series.From(name, cells)
		require.NoError(t, err)
		return s
	}

	df, err := dataframe.New(
		series.FromValues("name", []string{"Alice", "Bob", "Smith, J"}),
		build("age", cell.OfInt(-25), cell.OfInt(30), cell.NA()),
		build("score", cell.OfFloat(1.5), cell.OfFloat(2), cell.NA()),
		series.FromValues("active", []bool{true, false, true}),
		build("grade", cell.OfChar('A'), cell.NA(), cell.OfChar('C')),
	)
	require.NoError(t, err)
	return df
}

func posInf() float64 {
	return math.Inf(1)
}
