package cell

import "math"

// 2^63 is exactly representable as float64; the int64 range is half-open on
// it.
const twoPow63 = 9223372036854775808.0

// ConvertTo returns the cell converted to target. Conversion is total and
// never panics: a value with no representation in target becomes Missing.
//
//   - numeric to numeric narrows by truncation toward zero; values outside the
//     target range, NaN and infinities become Missing
//   - signed and float values never convert to UInt, whatever their sign
//   - Bool converts to 1 or 0, and any kind converts to Bool by a nonzero test
//   - Char converts to UInt (its code point), Bool and Text only
//   - nothing but Text (exactly one code point) and Char converts to Char
//   - anything converts to Text through its display form
//   - Text converts to other kinds by parsing their textual grammar
//   - Missing, and any conversion to Missing or Mixed, yields Missing
//
// Converting twice to the same kind is the same as converting once.
func (c Cell) ConvertTo(target Kind) Cell {
	switch target {
	case Int:
		return c.toInt()
	case UInt:
		return c.toUInt()
	case Float:
		return c.toFloat()
	case Char:
		return c.toChar()
	case Bool:
		return c.toBool()
	case Text:
		if c.kind == Missing {
			return NA()
		}
		return OfText(c.String())
	default:
		return NA()
	}
}

func (c Cell) toInt() Cell {
	switch c.kind {
	case Int:
		return c
	case UInt:
		if c.u > math.MaxInt64 {
			return NA()
		}
		return OfInt(int64(c.u))
	case Float:
		t := math.Trunc(c.f)
		if math.IsNaN(t) || t < -twoPow63 || t >= twoPow63 {
			return NA()
		}
		return OfInt(int64(t))
	case Bool:
		return OfInt(boolToInt(c.b))
	case Text:
		if v, ok := parseInt(c.s); ok {
			return OfInt(v)
		}
		return NA()
	default:
		return NA()
	}
}

func (c Cell) toUInt() Cell {
	switch c.kind {
	case UInt:
		return c
	case Char:
		return OfUInt(uint64(c.r))
	case Bool:
		return OfUInt(uint64(boolToInt(c.b)))
	case Text:
		if v, ok := parseUint(c.s); ok {
			return OfUInt(v)
		}
		return NA()
	default:
		return NA()
	}
}

func (c Cell) toFloat() Cell {
	switch c.kind {
	case Int:
		return OfFloat(float64(c.i))
	case UInt:
		return OfFloat(float64(c.u))
	case Float:
		return c
	case Bool:
		return OfFloat(float64(boolToInt(c.b)))
	case Text:
		if v, ok := parseFloat(c.s); ok {
			return OfFloat(v)
		}
		return NA()
	default:
		return NA()
	}
}

func (c Cell) toChar() Cell {
	switch c.kind {
	case Char:
		return c
	case Text:
		if r, ok := parseChar(c.s); ok {
			return OfChar(r)
		}
		return NA()
	default:
		return NA()
	}
}

func (c Cell) toBool() Cell {
	switch c.kind {
	case Int:
		return OfBool(c.i != 0)
	case UInt:
		return OfBool(c.u != 0)
	case Float:
		return OfBool(c.f != 0)
	case Char:
		return OfBool(c.r != 0)
	case Bool:
		return c
	case Text:
		if b, ok := parseBool(c.s); ok {
			return OfBool(b)
		}
		return NA()
	default:
		return NA()
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
