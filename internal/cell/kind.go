// Package cell provides the dynamically kinded scalar value used by every
// series and the rules that govern it: kind compatibility, textual parsing,
// explicit conversion and pairwise arithmetic between mismatched kinds.
//
// A Cell is a small comparable value. It is built only through the
// constructors in this package, so the kind it reports always matches the
// payload it carries. Arithmetic and conversion are total: combinations that
// make no sense degrade to the Missing cell instead of failing. The single
// exception is integer division by zero, which panics like native Go integer
// division.
package cell

import (
	"github.com/paveg/tabula/internal/common"
	"github.com/paveg/tabula/internal/errors"
)

// Kind identifies the logical type of a cell.
type Kind uint8

const (
	// Int is a signed 64-bit integer.
	Int Kind = iota
	// UInt is an unsigned 64-bit integer.
	UInt
	// Float is a 64-bit IEEE 754 floating point number.
	Float
	// Char is a single Unicode code point.
	Char
	// Bool is a boolean.
	Bool
	// Text is a UTF-8 string.
	Text
	// Missing marks a missing or invalid value.
	Missing
	// Mixed marks a heterogeneous collection. No cell ever reports it.
	Mixed
)

// String returns the canonical lower-case name of the kind
func (k Kind) String() string {
	return common.FormatKind(int(k))
}

// ParseKind parses a kind name such as "int" or "text". Matching ignores
// case; "na" is accepted for Missing.
func ParseKind(name string) (Kind, error) {
	v, ok := common.ParseKind(name)
	if !ok {
		return Missing, errors.NewInvalidInputError("ParseKind", "unknown kind: "+name)
	}
	return Kind(v), nil
}

// Kinds returns the concrete kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Int, UInt, Float, Char, Bool, Text}
}

// IsConcrete reports whether the kind carries a payload.
func (k Kind) IsConcrete() bool {
	return k <= Text
}

// IsNumeric reports whether the kind is Int, UInt or Float.
func (k Kind) IsNumeric() bool {
	return k == Int || k == UInt || k == Float
}

// IsIntegral reports whether the kind can serve as a repeat count.
func (k Kind) IsIntegral() bool {
	return k == Int || k == UInt || k == Bool
}

// IsStringy reports whether the kind is Char or Text.
func (k Kind) IsStringy() bool {
	return k == Char || k == Text
}

// Compatible reports whether a value of kind b may be stored where kind a is
// expected. Missing is a wildcard in both directions; Mixed is compatible only
// with itself and Missing. The relation is symmetric.
func Compatible(a, b Kind) bool {
	return a == b || a == Missing || b == Missing
}

// StructurallyEqual reports whether two kinds are the same storage type.
// Unlike Compatible, Missing does not stand in for a concrete kind here.
func StructurallyEqual(a, b Kind) bool {
	return a == b
}
