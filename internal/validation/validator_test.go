package validation_test

import (
	"errors"
	"testing"

	"github.com/paveg/tabula/internal/cell"
	dferrors "github.com/paveg/tabula/internal/errors"
	"github.com/paveg/tabula/internal/series"
	"github.com/paveg/tabula/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockColumnProvider implements ColumnProvider for testing.
type MockColumnProvider struct {
	columns []string
	length  int
}

func (m *MockColumnProvider) HasColumn(name string) bool {
	for _, col := range m.columns {
		if col == name {
			return true
		}
	}
	return false
}

func (m *MockColumnProvider) Columns() []string {
	return m.columns
}

func (m *MockColumnProvider) Len() int {
	return m.length
}

func (m *MockColumnProvider) Width() int {
	return len(m.columns)
}

func TestColumnValidator(t *testing.T) {
	mockDF := &MockColumnProvider{
		columns: []string{"id", "name"},
		length:  3,
	}

	t.Run("Valid columns", func(t *testing.T) {
		err := validation.NewColumnValidator(mockDF, "Select", "id", "name").Validate()
		require.NoError(t, err)
	})

	t.Run("Invalid column", func(t *testing.T) {
		err := validation.NewColumnValidator(mockDF, "Select", "age").Validate()
		require.Error(t, err)

		var dfErr *dferrors.Error
		require.ErrorAs(t, err, &dfErr)
		assert.Equal(t, "Select", dfErr.Op)
		assert.Equal(t, "age", dfErr.Column)
		assert.Equal(t, "column does not exist", dfErr.Message)
		assert.True(t, errors.Is(err, dferrors.ErrColumnNotFound))
	})

	t.Run("Mixed valid and invalid columns", func(t *testing.T) {
		err := validation.NewColumnValidator(mockDF, "Drop", "id", "missing", "name").Validate()
		require.Error(t, err)

		var dfErr *dferrors.Error
		require.ErrorAs(t, err, &dfErr)
		assert.Equal(t, "missing", dfErr.Column)
	})
}

func TestLengthValidator(t *testing.T) {
	t.Run("Equal lengths", func(t *testing.T) {
		require.NoError(t, validation.NewLengthValidator(3, 3, "New", "b").Validate())
	})

	t.Run("Unequal lengths", func(t *testing.T) {
		err := validation.NewLengthValidator(3, 2, "New", "b").Validate()
		require.Error(t, err)

		var dfErr *dferrors.Error
		require.ErrorAs(t, err, &dfErr)
		assert.Equal(t, "New", dfErr.Op)
		assert.Equal(t, "b", dfErr.Column)
		assert.Contains(t, dfErr.Message, "expected length 3, got 2")
		assert.True(t, errors.Is(err, dferrors.ErrLengthMismatch))
	})
}

func TestKindValidator(t *testing.T) {
	tests := []struct {
		name    string
		want    cell.Kind
		got     cell.Cell
		wantErr bool
	}{
		{"same kind", cell.Int, cell.OfInt(1), false},
		{"missing value", cell.Int, cell.NA(), false},
		{"missing series accepts anything", cell.Missing, cell.OfText("x"), false},
		{"different kind", cell.Int, cell.OfBool(true), true},
		{"int is not uint", cell.UInt, cell.OfInt(1), true},
		{"mixed refuses concrete", cell.Mixed, cell.OfInt(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.NewKindValidator(tt.want, tt.got, "Push", "n").Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, dferrors.ErrInvalidType))
			assert.Contains(t, err.Error(), "series holds "+tt.want.String())
		})
	}
}

func TestBatchValidator(t *testing.T) {
	t.Run("Compatible batch", func(t *testing.T) {
		cells := []cell.Cell{cell.OfFloat(1), cell.NA(), cell.OfFloat(2)}
		require.NoError(t, validation.NewBatchValidator(cell.Float, cells, "PushBatch", "x").Validate())
	})

	t.Run("Empty batch", func(t *testing.T) {
		require.NoError(t, validation.ValidateBatch(cell.Text, nil, "PushBatch", "x"))
	})

	t.Run("Rejected batch names the position", func(t *testing.T) {
		cells := []cell.Cell{cell.OfFloat(1), cell.NA(), cell.OfText("oops"), cell.OfBool(true)}
		err := validation.NewBatchValidator(cell.Float, cells, "PushBatch", "x").Validate()
		require.Error(t, err)

		var dfErr *dferrors.Error
		require.ErrorAs(t, err, &dfErr)
		assert.Equal(t, dferrors.InvalidType, dfErr.Code)
		assert.Contains(t, dfErr.Message, "got text")
		assert.Contains(t, dfErr.Hint, "position 2")
	})
}

func TestIndexValidator(t *testing.T) {
	t.Run("Valid index", func(t *testing.T) {
		require.NoError(t, validation.NewIndexValidator(2, 5, "Get").Validate())
	})

	t.Run("Index too high", func(t *testing.T) {
		err := validation.NewIndexValidator(5, 5, "Get").Validate()
		require.Error(t, err)

		var dfErr *dferrors.Error
		require.ErrorAs(t, err, &dfErr)
		assert.Equal(t, "Get", dfErr.Op)
		assert.Contains(t, dfErr.Message, "index 5 out of range [0, 5)")
	})

	t.Run("Negative index", func(t *testing.T) {
		err := validation.NewIndexValidator(-1, 5, "Get").Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, dferrors.ErrIndexOutOfRange))
	})
}

func TestStrictKindValidator(t *testing.T) {
	for _, k := range cell.Kinds() {
		require.NoError(t, validation.NewStrictKindValidator(series.New("x", k), "New", "x").Validate(), k.String())
	}
	require.NoError(t, validation.ValidateStrictKind(series.New("x", cell.Missing), "New", "x"))

	err := validation.ValidateStrictKind(series.New("m", cell.Mixed), "AddColumn", "m")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dferrors.ErrMixedType))

	var dfErr *dferrors.Error
	require.ErrorAs(t, err, &dfErr)
	assert.Equal(t, "AddColumn", dfErr.Op)
	assert.Equal(t, "m", dfErr.Column)
}

func TestNamesValidator(t *testing.T) {
	require.NoError(t, validation.NewNamesValidator("New", "a", "b").Validate())
	require.NoError(t, validation.ValidateNames("New"))

	err := validation.NewNamesValidator("New", "a", "b", "a").Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, dferrors.ErrDuplicateColumn))

	var dfErr *dferrors.Error
	require.ErrorAs(t, err, &dfErr)
	assert.Equal(t, "a", dfErr.Column)

	err = validation.ValidateNames("New", "a", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dferrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "column 1 has no name")
}

func TestCompoundValidator(t *testing.T) {
	mockDF := &MockColumnProvider{
		columns: []string{"id"},
		length:  3,
	}

	t.Run("All validators pass", func(t *testing.T) {
		err := validation.NewCompoundValidator(
			validation.NewColumnValidator(mockDF, "Select", "id"),
			validation.NewLengthValidator(3, 3, "AddColumn", "x"),
			validation.NewKindValidator(cell.Text, cell.OfText("a"), "Push", "x"),
		).Validate()
		require.NoError(t, err)
	})

	t.Run("First validator fails", func(t *testing.T) {
		err := validation.NewCompoundValidator(
			validation.NewColumnValidator(mockDF, "Select", "missing"),
			validation.NewLengthValidator(3, 3, "AddColumn", "x"),
		).Validate()
		require.Error(t, err)

		var dfErr *dferrors.Error
		require.ErrorAs(t, err, &dfErr)
		assert.Equal(t, "missing", dfErr.Column)
	})

	t.Run("Second validator fails", func(t *testing.T) {
		err := validation.NewCompoundValidator(
			validation.NewColumnValidator(mockDF, "Select", "id"),
			validation.NewLengthValidator(3, 2, "AddColumn", "x"),
		).Validate()
		require.Error(t, err)

		var dfErr *dferrors.Error
		require.ErrorAs(t, err, &dfErr)
		assert.Equal(t, "AddColumn", dfErr.Op)
		assert.Contains(t, dfErr.Message, "expected length 3, got 2")
	})
}

func TestConvenienceFunctions(t *testing.T) {
	mockDF := &MockColumnProvider{
		columns: []string{"id"},
		length:  3,
	}

	t.Run("validation.ValidateColumns", func(t *testing.T) {
		require.NoError(t, validation.ValidateColumns(mockDF, "Select", "id"))
		require.Error(t, validation.ValidateColumns(mockDF, "Select", "missing"))
	})

	t.Run("validation.ValidateLength", func(t *testing.T) {
		require.NoError(t, validation.ValidateLength(3, 3, "New", "x"))
		require.Error(t, validation.ValidateLength(3, 2, "New", "x"))
	})

	t.Run("validation.ValidateKind", func(t *testing.T) {
		require.NoError(t, validation.ValidateKind(cell.Bool, cell.OfBool(true), "Push", "x"))
		require.Error(t, validation.ValidateKind(cell.Bool, cell.OfInt(1), "Push", "x"))
	})

	t.Run("validation.ValidateIndex", func(t *testing.T) {
		require.NoError(t, validation.ValidateIndex(2, 5, "Get"))
		require.Error(t, validation.ValidateIndex(5, 5, "Get"))
	})
}
