package cell

import (
	"github.com/paveg/tabula/internal/errors"
)

// Cell is a single dynamically kinded scalar value.
//
// The zero Cell is the integer 0. Use NA for a missing value.
type Cell struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	r    rune
	b    bool
	s    string
}

// Typed is implemented by anything that reports a Kind.
type Typed interface {
	Kind() Kind
}

// OfInt returns an Int cell.
func OfInt(v int64) Cell { return Cell{kind: Int, i: v} }

// OfUInt returns a UInt cell.
func OfUInt(v uint64) Cell { return Cell{kind: UInt, u: v} }

// OfFloat returns a Float cell.
func OfFloat(v float64) Cell { return Cell{kind: Float, f: v} }

// OfChar returns a Char cell.
func OfChar(v rune) Cell { return Cell{kind: Char, r: v} }

// OfBool returns a Bool cell.
func OfBool(v bool) Cell { return Cell{kind: Bool, b: v} }

// OfText returns a Text cell.
func OfText(v string) Cell { return Cell{kind: Text, s: v} }

// NA returns the Missing cell.
func NA() Cell { return Cell{kind: Missing} }

// Kind returns the kind of the cell
func (c Cell) Kind() Kind {
	return c.kind
}

// IsNA reports whether the cell is Missing
func (c Cell) IsNA() bool {
	return c.kind == Missing
}

// AsInt returns the payload of an Int cell
func (c Cell) AsInt() (int64, error) {
	if c.kind != Int {
		return 0, errors.NewConversionError("AsInt", Int.String(), c.kind.String())
	}
	return c.i, nil
}

// AsUInt returns the payload of a UInt cell
func (c Cell) AsUInt() (uint64, error) {
	if c.kind != UInt {
		return 0, errors.NewConversionError("AsUInt", UInt.String(), c.kind.String())
	}
	return c.u, nil
}

// AsFloat returns the payload of a Float cell
func (c Cell) AsFloat() (float64, error) {
	if c.kind != Float {
		return 0, errors.NewConversionError("AsFloat", Float.String(), c.kind.String())
	}
	return c.f, nil
}

// AsChar returns the payload of a Char cell
func (c Cell) AsChar() (rune, error) {
	if c.kind != Char {
		return 0, errors.NewConversionError("AsChar", Char.String(), c.kind.String())
	}
	return c.r, nil
}

// AsBool returns the payload of a Bool cell
func (c Cell) AsBool() (bool, error) {
	if c.kind != Bool {
		return false, errors.NewConversionError("AsBool", Bool.String(), c.kind.String())
	}
	return c.b, nil
}

// AsText returns the payload of a Text cell. Use String for the display form
// of any cell.
func (c Cell) AsText() (string, error) {
	if c.kind != Text {
		return "", errors.NewConversionError("AsText", Text.String(), c.kind.String())
	}
	return c.s, nil
}

// Value returns the payload as an untyped Go value: int64, uint64, float64,
// rune, bool, string, or nil for Missing.
func (c Cell) Value() any {
	switch c.kind {
	case Int:
		return c.i
	case UInt:
		return c.u
	case Float:
		return c.f
	case Char:
		return c.r
	case Bool:
		return c.b
	case Text:
		return c.s
	default:
		return nil
	}
}
