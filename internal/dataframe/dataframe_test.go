package dataframe

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/tabula/internal/cell"
	dferrors "github.com/paveg/tabula/internal/errors"
	"github.com/paveg/tabula/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDataFrame(t *testing.T) *DataFrame {
	t.Helper()

	names := series.FromValues("name", []string{"Alice", "Bob", "Charlie"})
	ages := series.FromValues("age", []int64{25, 30, 35})
	salaries := series.FromValues("salary", []float64{50000, 60000, 70000})

	df, err := New(names, ages, salaries)
	require.NoError(t, err)
	return df
}

func TestNewDataFrame(t *testing.T) {
	df := createTestDataFrame(t)

	assert.Equal(t, 3, df.Len())
	assert.Equal(t, 3, df.Width())
	assert.False(t, df.IsEmpty())
	assert.Equal(t, []string{"name", "age", "salary"}, df.Columns())
	assert.Equal(t, []cell.Kind{cell.Text, cell.Int, cell.Float}, df.Kinds())
}

func TestNewDataFrame_Empty(t *testing.T) {
	df, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, df.Len())
	assert.Equal(t, 0, df.Width())
	assert.True(t, df.IsEmpty())
	assert.Equal(t, []string{}, df.Columns())
	assert.Equal(t, "DataFrame[empty]", df.String())

	noRows, err := New(series.New("a", cell.Int))
	require.NoError(t, err)
	assert.True(t, noRows.IsEmpty())
	assert.Equal(t, 1, noRows.Width())
}

func TestNewDataFrame_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cols     []*series.Series
		sentinel error
	}{
		{
			"duplicate names",
			[]*series.Series{series.FromValues("a", []int{1}), series.FromValues("a", []int{2})},
			dferrors.ErrDuplicateColumn,
		},
		{
			"unnamed column",
			[]*series.Series{series.FromValues("", []int{1})},
			dferrors.ErrInvalidInput,
		},
		{
			"unequal lengths",
			[]*series.Series{series.FromValues("a", []int{1, 2}), series.FromValues("b", []int{1})},
			dferrors.ErrLengthMismatch,
		},
		{
			"mixed declared column",
			[]*series.Series{series.New("m", cell.Mixed)},
			dferrors.ErrMixedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df, err := New(tt.cols...)
			require.Error(t, err)
			assert.Nil(t, df)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestDataFrameColumn(t *testing.T) {
	df := createTestDataFrame(t)

	nameSeries, exists := df.Column("name")
	assert.True(t, exists)
	assert.Equal(t, "name", nameSeries.Name())
	assert.Equal(t, 3, nameSeries.Len())

	_, exists = df.Column("nonexistent")
	assert.False(t, exists)
	assert.False(t, df.HasColumn("nonexistent"))
}

func TestDataFrameSelect(t *testing.T) {
	df := createTestDataFrame(t)

	selected, err := df.Select("salary", "name")
	require.NoError(t, err)
	assert.Equal(t, 3, selected.Len())
	assert.Equal(t, []string{"salary", "name"}, selected.Columns())
	assert.False(t, selected.HasColumn("age"))

	_, err = df.Select("name", "height")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dferrors.ErrColumnNotFound))

	_, err = df.Select("name", "name")
	assert.True(t, errors.Is(err, dferrors.ErrDuplicateColumn))
}

func TestDataFrameDrop(t *testing.T) {
	df := createTestDataFrame(t)

	dropped, err := df.Drop("age")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "salary"}, dropped.Columns())
	assert.Equal(t, 3, df.Width())

	_, err = df.Drop("height")
	assert.True(t, errors.Is(err, dferrors.ErrColumnNotFound))
}

func TestDataFrameAddColumn(t *testing.T) {
	df := createTestDataFrame(t)

	require.NoError(t, df.AddColumn(series.FromValues("active", []bool{true, false, true})))
	assert.Equal(t, 4, df.Width())

	err := df.AddColumn(series.FromValues("short", []bool{true}))
	assert.True(t, errors.Is(err, dferrors.ErrLengthMismatch))

	err = df.AddColumn(series.FromValues("age", []int{1, 2, 3}))
	assert.True(t, errors.Is(err, dferrors.ErrDuplicateColumn))

	err = df.AddColumn(series.New("m", cell.Mixed))
	assert.True(t, errors.Is(err, dferrors.ErrMixedType))
	assert.Equal(t, 4, df.Width())

	empty, err := New()
	require.NoError(t, err)
	assert.True(t, errors.Is(empty.AddColumn(series.New("m", cell.Mixed)), dferrors.ErrMixedType))
	require.NoError(t, empty.AddColumn(series.FromValues("x", []int{1, 2})))
	assert.Equal(t, 2, empty.Len())
}

func TestDataFrameConvertColumn(t *testing.T) {
	df := createTestDataFrame(t)

	require.NoError(t, df.ConvertColumn("age", cell.Text))
	age, _ := df.Column("age")
	assert.Equal(t, cell.Text, age.Kind())
	assert.Equal(t, cell.OfText("25"), age.At(0))

	err := df.ConvertColumn("height", cell.Int)
	assert.True(t, errors.Is(err, dferrors.ErrColumnNotFound))

	err = df.ConvertColumn("age", cell.Mixed)
	assert.True(t, errors.Is(err, dferrors.ErrMixedType))
}

func TestDataFrameRow(t *testing.T) {
	df := createTestDataFrame(t)

	row, err := df.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []cell.Cell{cell.OfText("Bob"), cell.OfInt(30), cell.OfFloat(60000)}, row)

	_, err = df.Row(3)
	assert.True(t, errors.Is(err, dferrors.ErrIndexOutOfRange))
}

func TestDataFrameSlice(t *testing.T) {
	df := createTestDataFrame(t)

	tests := []struct {
		name       string
		start, end int
		expected   int
	}{
		{"middle", 1, 2, 1},
		{"clamped end", 1, 10, 2},
		{"negative start", -5, 2, 2},
		{"inverted", 2, 1, 0},
		{"past the end", 5, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sliced := df.Slice(tt.start, tt.end)
			assert.Equal(t, tt.expected, sliced.Len())
			assert.Equal(t, df.Columns(), sliced.Columns())
			assert.Equal(t, df.Kinds(), sliced.Kinds())
		})
	}

	sliced := df.Slice(1, 2)
	row, err := sliced.Row(0)
	require.NoError(t, err)
	assert.Equal(t, cell.OfText("Bob"), row[0])
}

func TestDataFrameConcat(t *testing.T) {
	df := createTestDataFrame(t)

	more, err := New(
		series.FromValues("name", []string{"Dana"}),
		series.FromValues("age", []int64{41}),
		series.FromValues("salary", []float64{80000}),
	)
	require.NoError(t, err)

	joined, err := df.Concat(more)
	require.NoError(t, err)
	assert.Equal(t, 4, joined.Len())
	assert.Equal(t, 3, df.Len())

	row, err := joined.Row(3)
	require.NoError(t, err)
	assert.Equal(t, cell.OfText("Dana"), row[0])

	t.Run("different columns", func(t *testing.T) {
		other, err := New(series.FromValues("name", []string{"x"}))
		require.NoError(t, err)
		_, err = df.Concat(other)
		assert.True(t, errors.Is(err, dferrors.ErrInvalidInput))
	})

	t.Run("different kinds", func(t *testing.T) {
		other, err := New(
			series.FromValues("name", []string{"x"}),
			series.FromValues("age", []string{"old"}),
			series.FromValues("salary", []float64{1}),
		)
		require.NoError(t, err)
		_, err = df.Concat(other)
		assert.True(t, errors.Is(err, dferrors.ErrInvalidType))
	})
}

func TestDataFrameDuplicated(t *testing.T) {
	df, err := New(
		series.FromValues("a", []int{1, 2, 1, 1}),
		series.FromValues("b", []string{"x", "y", "x", "z"}),
	)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, true, false}, df.Duplicated())
	assert.Equal(t, df.RowHash(0), df.RowHash(2))
	assert.NotEqual(t, df.RowHash(0), df.RowHash(3))
}

func TestDataFrameRecordRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()

	letters, err := series.From("letter", []cell.Cell{cell.OfChar('a'), cell.NA(), cell.OfChar('c')})
	require.NoError(t, err)
	df := createTestDataFrame(t)
	require.NoError(t, df.AddColumn(letters))

	rec := df.Record(mem)
	defer rec.Release()

	assert.Equal(t, int64(3), rec.NumRows())
	assert.Equal(t, int64(4), rec.NumCols())
	assert.Equal(t, "letter", rec.Schema().Field(3).Name)

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, df.Columns(), back.Columns())
	assert.Equal(t, df.Kinds(), back.Kinds())

	for _, name := range df.Columns() {
		want, _ := df.Column(name)
		got, _ := back.Column(name)
		assert.True(t, want.Equal(got), name)
	}
}

func TestDataFrameString(t *testing.T) {
	df := createTestDataFrame(t)
	str := df.String()
	assert.Contains(t, str, "DataFrame[3x3]")
	assert.Contains(t, str, "age: int")
	assert.Contains(t, str, "salary: float")
}
