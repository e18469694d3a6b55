package cell

import (
	"errors"
	"math"
	"testing"

	dferrors "github.com/paveg/tabula/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellKind(t *testing.T) {
	tests := []struct {
		cell Cell
		kind Kind
	}{
		{OfInt(-1), Int},
		{OfUInt(1), UInt},
		{OfFloat(1.5), Float},
		{OfChar('a'), Char},
		{OfBool(true), Bool},
		{OfText("x"), Text},
		{NA(), Missing},
		{Cell{}, Int},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.cell.Kind())
			assert.Equal(t, tt.kind == Missing, tt.cell.IsNA())
		})
	}
}

func TestStrictExtraction(t *testing.T) {
	i, err := OfInt(-7).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), i)

	u, err := OfUInt(7).AsUInt()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u)

	f, err := OfFloat(0.25).AsFloat()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, f, 0)

	r, err := OfChar('é').AsChar()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)

	b, err := OfBool(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	s, err := OfText("hi").AsText()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	t.Run("wrong kind is a conversion error", func(t *testing.T) {
		_, err := OfUInt(3).AsInt()
		require.Error(t, err)
		assert.True(t, errors.Is(err, dferrors.ErrConversion))
		assert.Contains(t, err.Error(), "cannot extract int from uint cell")

		_, err = NA().AsText()
		assert.True(t, errors.Is(err, dferrors.ErrConversion))

		_, err = OfText("1.5").AsFloat()
		assert.True(t, errors.Is(err, dferrors.ErrConversion))

		_, err = OfText("a").AsChar()
		assert.True(t, errors.Is(err, dferrors.ErrConversion))

		_, err = OfInt(1).AsBool()
		assert.True(t, errors.Is(err, dferrors.ErrConversion))

		_, err = OfInt(1).AsUInt()
		assert.True(t, errors.Is(err, dferrors.ErrConversion))
	})
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, int64(3), OfInt(3).Value())
	assert.Equal(t, uint64(3), OfUInt(3).Value())
	assert.Equal(t, 3.5, OfFloat(3.5).Value())
	assert.Equal(t, 'z', OfChar('z').Value())
	assert.Equal(t, false, OfBool(false).Value())
	assert.Equal(t, "t", OfText("t").Value())
	assert.Nil(t, NA().Value())
}

func TestOf(t *testing.T) {
	type celsius float64
	type label string

	assert.Equal(t, OfInt(-3), Of(int8(-3)))
	assert.Equal(t, OfInt(-3), Of(int16(-3)))
	assert.Equal(t, OfInt(-3), Of(int32(-3)))
	assert.Equal(t, OfInt(-3), Of(-3))
	assert.Equal(t, OfUInt(3), Of(uint8(3)))
	assert.Equal(t, OfUInt(3), Of(uint16(3)))
	assert.Equal(t, OfUInt(3), Of(uint32(3)))
	assert.Equal(t, OfUInt(3), Of(uint(3)))
	assert.Equal(t, OfFloat(0.5), Of(float32(0.5)))
	assert.Equal(t, OfFloat(0.5), Of(0.5))
	assert.Equal(t, OfBool(true), Of(true))
	assert.Equal(t, OfText("s"), Of("s"))
	assert.Equal(t, OfFloat(21.5), Of(celsius(21.5)))
	assert.Equal(t, OfText("x"), Of(label("x")))

	// rune is int32, so it becomes an integer
	assert.Equal(t, Int, Of('a').Kind())
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, Int, KindFor[int16]())
	assert.Equal(t, UInt, KindFor[uint64]())
	assert.Equal(t, Float, KindFor[float32]())
	assert.Equal(t, Bool, KindFor[bool]())
	assert.Equal(t, Text, KindFor[string]())
}

func TestOfSlice(t *testing.T) {
	cells := OfSlice([]uint32{4, 7, 9})
	assert.Equal(t, []Cell{OfUInt(4), OfUInt(7), OfUInt(9)}, cells)
	assert.Empty(t, OfSlice([]string{}))
}

func TestFromAny(t *testing.T) {
	n := 42
	var nilPtr *int
	c := OfChar('q')

	tests := []struct {
		name     string
		input    any
		expected Cell
	}{
		{"nil", nil, NA()},
		{"int", 5, OfInt(5)},
		{"int64", int64(-5), OfInt(-5)},
		{"uint8", uint8(5), OfUInt(5)},
		{"float32", float32(2), OfFloat(2)},
		{"bool", true, OfBool(true)},
		{"string", "x", OfText("x")},
		{"cell", c, c},
		{"cell pointer", &c, c},
		{"pointer", &n, OfInt(42)},
		{"nil pointer", nilPtr, NA()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := FromAny(complex(1, 2))
		require.Error(t, err)
		assert.True(t, errors.Is(err, dferrors.ErrUnsupportedType))

		_, err = FromAny([]int{1})
		assert.True(t, errors.Is(err, dferrors.ErrUnsupportedType))
	})
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Cell
		expected int
		ok       bool
	}{
		{"int less", OfInt(-234_568), OfInt(-234_567), -1, true},
		{"int equal", OfInt(5), OfInt(5), 0, true},
		{"uint greater", OfUInt(9), OfUInt(2), 1, true},
		{"float less", OfFloat(23.45), OfFloat(23.455), -1, true},
		{"char less", OfChar('a'), OfChar('c'), -1, true},
		{"bool", OfBool(false), OfBool(true), -1, true},
		{"text", OfText("hello"), OfText("world"), -1, true},
		{"cross kind", OfInt(1), OfUInt(1), 0, false},
		{"missing", NA(), NA(), 0, false},
		{"nan", OfFloat(math.NaN()), OfFloat(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Compare(tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ok && tt.expected < 0, tt.a.Less(tt.b))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, OfText("hello").Equal(OfText("hello")))
	assert.False(t, OfInt(1).Equal(OfUInt(1)))
	assert.False(t, OfInt(1).Equal(OfFloat(1)))
	assert.True(t, NA().Equal(NA()))
	assert.True(t, OfFloat(0).Equal(OfFloat(math.Copysign(0, -1))))

	nan := OfFloat(math.NaN())
	assert.False(t, nan.Equal(nan))
}

func TestHash(t *testing.T) {
	assert.Equal(t, OfText("abc").Hash(), OfText("abc").Hash())
	assert.Equal(t, OfFloat(0).Hash(), OfFloat(math.Copysign(0, -1)).Hash())
	assert.Equal(t, NA().Hash(), NA().Hash())

	// same payload bits, different kind
	assert.NotEqual(t, OfInt(1).Hash(), OfUInt(1).Hash())
	assert.NotEqual(t, OfInt(0).Hash(), OfBool(false).Hash())
	assert.NotEqual(t, OfText("a").Hash(), OfChar('a').Hash())
	assert.NotEqual(t, OfText("a").Hash(), OfText("b").Hash())
}

func TestGoString(t *testing.T) {
	assert.Equal(t, `cell.OfText("a b")`, OfText("a b").GoString())
	assert.Equal(t, `cell.OfChar('z')`, OfChar('z').GoString())
	assert.Equal(t, "cell.OfInt(-4)", OfInt(-4).GoString())
	assert.Equal(t, "cell.NA()", NA().GoString())
}
