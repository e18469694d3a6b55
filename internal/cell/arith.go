package cell

import (
	"math"
	"strings"

	"github.com/paveg/tabula/internal/common"
)

// Op is a binary arithmetic operator on cells.
type Op int

const (
	// OpAdd is +.
	OpAdd Op = iota
	// OpSub is -.
	OpSub
	// OpMul is *.
	OpMul
	// OpDiv is /.
	OpDiv
)

// String returns the operator symbol
func (op Op) String() string {
	return common.FormatOperator(int(op))
}

// ParseOp parses an operator symbol.
func ParseOp(symbol string) (Op, bool) {
	v, ok := common.ParseOperator(symbol)
	return Op(v), ok
}

// Apply evaluates c op other. An unknown operator yields Missing.
func (c Cell) Apply(op Op, other Cell) Cell {
	switch op {
	case OpAdd:
		return c.Add(other)
	case OpSub:
		return c.Sub(other)
	case OpMul:
		return c.Mul(other)
	case OpDiv:
		return c.Div(other)
	default:
		return NA()
	}
}

// Add returns c + other.
//
//   - numeric + numeric is the arithmetic sum; Int+Int stays Int, UInt+UInt
//     stays UInt, every other numeric pairing widens to Float
//   - Bool + Bool is logical AND
//   - when either side is Char or Text and the other is any concrete kind,
//     the display forms are concatenated into Text
//   - anything else, including a Missing operand, is Missing
func (c Cell) Add(other Cell) Cell {
	switch {
	case c.kind.IsNumeric() && other.kind.IsNumeric():
		return numeric(OpAdd, c, other)
	case c.kind == Bool && other.kind == Bool:
		return OfBool(c.b && other.b)
	case concatenable(c.kind, other.kind):
		return OfText(c.String() + other.String())
	default:
		return NA()
	}
}

// Sub returns c - other.
//
//   - numeric - numeric is the arithmetic difference, widened like Add
//   - Bool - Bool is logical OR
//   - anything else, including any Char or Text operand, is Missing
func (c Cell) Sub(other Cell) Cell {
	switch {
	case c.kind.IsNumeric() && other.kind.IsNumeric():
		return numeric(OpSub, c, other)
	case c.kind == Bool && other.kind == Bool:
		return OfBool(c.b || other.b)
	default:
		return NA()
	}
}

// Mul returns c * other.
//
//   - numeric * numeric is the arithmetic product, widened like Add
//   - Bool * Bool is logical XOR
//   - Char or Text times Int, UInt or Bool repeats the display form that many
//     times into Text; a negative count yields empty Text
//   - anything else, such as Text * Text or Int * Text, is Missing
//
// A repetition too large to allocate panics, as strings.Repeat does. It is
// not reported as Missing.
func (c Cell) Mul(other Cell) Cell {
	switch {
	case c.kind.IsNumeric() && other.kind.IsNumeric():
		return numeric(OpMul, c, other)
	case c.kind == Bool && other.kind == Bool:
		return OfBool(c.b != other.b)
	case c.kind.IsStringy() && other.kind.IsIntegral():
		return OfText(strings.Repeat(c.String(), repeatCount(other)))
	default:
		return NA()
	}
}

// Div returns c / other.
//
// numeric / numeric is the arithmetic quotient, widened like Add. Int/Int and
// UInt/UInt truncate toward zero and panic when other is zero, exactly like
// Go integer division; this is not reported as an error. Float division
// follows IEEE 754, so dividing by zero yields +Inf, -Inf or NaN. Any pairing
// involving Bool, Char, Text or Missing is Missing.
func (c Cell) Div(other Cell) Cell {
	if c.kind.IsNumeric() && other.kind.IsNumeric() {
		return numeric(OpDiv, c, other)
	}
	return NA()
}

// AddAssign sets *c to *c + other.
func (c *Cell) AddAssign(other Cell) { *c = c.Add(other) }

// SubAssign sets *c to *c - other.
func (c *Cell) SubAssign(other Cell) { *c = c.Sub(other) }

// MulAssign sets *c to *c * other.
func (c *Cell) MulAssign(other Cell) { *c = c.Mul(other) }

// DivAssign sets *c to *c / other. It panics on integer division by zero.
func (c *Cell) DivAssign(other Cell) { *c = c.Div(other) }

func concatenable(a, b Kind) bool {
	return (a.IsStringy() && b.IsConcrete()) || (b.IsStringy() && a.IsConcrete())
}

// numeric applies op to two numeric cells. Integer results wrap on overflow.
func numeric(op Op, a, b Cell) Cell {
	switch {
	case a.kind == Int && b.kind == Int:
		x, y := a.i, b.i
		switch op {
		case OpAdd:
			return OfInt(x + y)
		case OpSub:
			return OfInt(x - y)
		case OpMul:
			return OfInt(x * y)
		default:
			return OfInt(x / y)
		}
	case a.kind == UInt && b.kind == UInt:
		x, y := a.u, b.u
		switch op {
		case OpAdd:
			return OfUInt(x + y)
		case OpSub:
			return OfUInt(x - y)
		case OpMul:
			return OfUInt(x * y)
		default:
			return OfUInt(x / y)
		}
	}

	// No common lossless integer type exists for Int with UInt, and anything
	// with Float is Float already.
	x, y := asFloat64(a), asFloat64(b)
	switch op {
	case OpAdd:
		return OfFloat(x + y)
	case OpSub:
		return OfFloat(x - y)
	case OpMul:
		return OfFloat(x * y)
	default:
		return OfFloat(x / y)
	}
}

func asFloat64(c Cell) float64 {
	switch c.kind {
	case Int:
		return float64(c.i)
	case UInt:
		return float64(c.u)
	default:
		return c.f
	}
}

func repeatCount(c Cell) int {
	switch c.kind {
	case Int:
		if c.i < 0 {
			return 0
		}
		if uint64(c.i) > math.MaxInt {
			return math.MaxInt
		}
		return int(c.i)
	case UInt:
		if c.u > math.MaxInt {
			return math.MaxInt
		}
		return int(c.u)
	case Bool:
		return int(boolToInt(c.b))
	default:
		return 0
	}
}
