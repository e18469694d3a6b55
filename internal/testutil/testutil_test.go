package testutil_test

import (
	"testing"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCreateTestDataFrame(t *testing.T) {
	t.Run("default configuration", func(t *testing.T) {
		df := testutil.CreateTestDataFrame(t)

		assert.Equal(t, 4, df.Len())
		assert.Equal(t, []cell.Kind{cell.Text, cell.Int, cell.Char, cell.Float}, df.Kinds())
		testutil.AssertDataFrameHasColumns(t, df, []string{"name", "age", "grade", "salary"})
	})

	t.Run("with active column", func(t *testing.T) {
		df := testutil.CreateTestDataFrame(t, testutil.WithActiveColumn())

		assert.Equal(t, 5, df.Width())
		assert.True(t, df.HasColumn("active"))
	})

	t.Run("with custom row count", func(t *testing.T) {
		df := testutil.CreateTestDataFrame(t, testutil.WithRowCount(10))

		assert.Equal(t, 10, df.Len())
		assert.Equal(t, 4, df.Width())
	})

	t.Run("with nulls", func(t *testing.T) {
		df := testutil.CreateTestDataFrame(t, testutil.WithNulls(), testutil.WithRowCount(6))

		age, _ := df.Column("age")
		assert.Equal(t, 2, age.NullCount())
		assert.Equal(t, cell.Int, age.Kind())
	})

	t.Run("zero rows", func(t *testing.T) {
		df := testutil.CreateTestDataFrame(t, testutil.WithRowCount(0))

		assert.True(t, df.IsEmpty())
		assert.Equal(t, 4, df.Width())
	})
}

func TestCreateSimpleTestDataFrame(t *testing.T) {
	df := testutil.CreateSimpleTestDataFrame(t)

	assert.Equal(t, 2, df.Len())
	testutil.AssertDataFrameHasColumns(t, df, []string{"name", "age"})
	testutil.AssertDataFrameNotEmpty(t, df)
}

func TestAssertDataFrameEqual(t *testing.T) {
	testutil.AssertDataFrameEqual(t, testutil.CreateTestDataFrame(t), testutil.CreateTestDataFrame(t))
}

func TestSampleCells(t *testing.T) {
	cells := testutil.SampleCells()

	kinds := make([]cell.Kind, len(cells))
	for i, c := range cells {
		kinds[i] = c.Kind()
	}
	assert.Equal(t, []cell.Kind{
		cell.Int, cell.UInt, cell.Float, cell.Char, cell.Bool, cell.Text, cell.Missing,
	}, kinds)
}
