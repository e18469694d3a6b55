package cell

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NAToken is the display form of a Missing cell.
const NAToken = "NA"

const (
	trueStr  = "true"
	falseStr = "false"
)

// String returns the display form of the cell. Missing renders as NAToken,
// floats in their shortest round-trip decimal form without an exponent.
func (c Cell) String() string {
	switch c.kind {
	case Int:
		return strconv.FormatInt(c.i, 10)
	case UInt:
		return strconv.FormatUint(c.u, 10)
	case Float:
		return strconv.FormatFloat(c.f, 'f', -1, 64)
	case Char:
		return string(c.r)
	case Bool:
		return strconv.FormatBool(c.b)
	case Text:
		return c.s
	default:
		return NAToken
	}
}

// GoString makes %#v print the constructor call that builds the cell.
func (c Cell) GoString() string {
	switch c.kind {
	case Int:
		return "cell.OfInt(" + c.String() + ")"
	case UInt:
		return "cell.OfUInt(" + c.String() + ")"
	case Float:
		return "cell.OfFloat(" + c.String() + ")"
	case Char:
		return "cell.OfChar(" + strconv.QuoteRune(c.r) + ")"
	case Bool:
		return "cell.OfBool(" + c.String() + ")"
	case Text:
		return "cell.OfText(" + strconv.Quote(c.s) + ")"
	default:
		return "cell.NA()"
	}
}

// FromText parses s into the most specific cell it can, trying in order:
// unsigned integer, signed integer, float, bool ("true"/"false"), single
// character, and finally raw text.
//
// A single leading '+' is accepted by the integer branches, so "+5" is
// UInt(5). Hexadecimal floats such as "0x1p3" are left as text, and decimal
// floats beyond the float64 range parse to an infinity.
//
// The order is significant. "-3" and "2.5" skip the unsigned branch, "x"
// becomes a Char rather than Text, and a one-character numeric string such as
// "5" is captured by the unsigned branch and becomes UInt(5), never Char('5').
// FromText never returns Missing; callers that treat tokens like "" or "NA" as
// missing must check for them first.
func FromText(s string) Cell {
	if u, ok := parseUint(s); ok {
		return OfUInt(u)
	}
	if i, ok := parseInt(s); ok {
		return OfInt(i)
	}
	if f, ok := parseFloat(s); ok {
		return OfFloat(f)
	}
	if b, ok := parseBool(s); ok {
		return OfBool(b)
	}
	if r, ok := parseChar(s); ok {
		return OfChar(r)
	}
	return OfText(s)
}

// parseUint accepts base 10 digits with at most one leading '+'.
func parseUint(s string) (uint64, bool) {
	digits := strings.TrimPrefix(s, "+")
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		return 0, false
	}
	u, err := strconv.ParseUint(digits, 10, 64)
	return u, err == nil
}

func parseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

// parseFloat accepts decimal notation only. Out of range values keep the
// infinity or zero strconv rounds them to.
func parseFloat(s string) (float64, bool) {
	body := strings.TrimLeft(s, "+-")
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f, true
	}
	if errors.Is(err, strconv.ErrRange) && (math.IsInf(f, 0) || f == 0) {
		return f, true
	}
	return 0, false
}

func parseBool(s string) (bool, bool) {
	switch s {
	case trueStr:
		return true, true
	case falseStr:
		return false, true
	default:
		return false, false
	}
}

// parseChar accepts exactly one valid UTF-8 encoded code point.
func parseChar(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, false
	}
	if r == utf8.RuneError && size == 1 {
		return 0, false
	}
	return r, true
}
