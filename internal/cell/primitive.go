package cell

import (
	"fmt"
	"reflect"

	"github.com/paveg/tabula/internal/errors"
	"golang.org/x/exp/constraints"
)

// Primitive is the set of native scalars that convert into a Cell.
//
// rune is an alias of int32, so a rune passed through Of becomes an Int cell.
// Use OfChar for characters.
type Primitive interface {
	constraints.Integer | constraints.Float | ~bool | ~string
}

// Of converts a native scalar into a cell. Signed integers of every width
// become Int, unsigned integers UInt, floats Float, bools Bool and strings Text.
func Of[T Primitive](v T) Cell {
	switch x := any(v).(type) {
	case int:
		return OfInt(int64(x))
	case int8:
		return OfInt(int64(x))
	case int16:
		return OfInt(int64(x))
	case int32:
		return OfInt(int64(x))
	case int64:
		return OfInt(x)
	case uint:
		return OfUInt(uint64(x))
	case uint8:
		return OfUInt(uint64(x))
	case uint16:
		return OfUInt(uint64(x))
	case uint32:
		return OfUInt(uint64(x))
	case uint64:
		return OfUInt(x)
	case uintptr:
		return OfUInt(uint64(x))
	case float32:
		return OfFloat(float64(x))
	case float64:
		return OfFloat(x)
	case bool:
		return OfBool(x)
	case string:
		return OfText(x)
	}

	// Named types such as `type Celsius float64` land here.
	c, _ := fromReflect(reflect.ValueOf(v))
	return c
}

// OfSlice converts a slice of native scalars into cells.
func OfSlice[T Primitive](values []T) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Of(v)
	}
	return cells
}

// KindFor reports the kind Of produces for T.
func KindFor[T Primitive]() Kind {
	var zero T
	return Of(zero).Kind()
}

// FromAny converts a dynamically typed value into a cell. nil becomes
// Missing and a Cell is returned unchanged. Pointers are dereferenced, a nil
// pointer becoming Missing.
func FromAny(value any) (Cell, error) {
	switch v := value.(type) {
	case nil:
		return NA(), nil
	case Cell:
		return v, nil
	case *Cell:
		if v == nil {
			return NA(), nil
		}
		return *v, nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return NA(), nil
		}
		rv = rv.Elem()
	}
	return fromReflect(rv)
}

func fromReflect(rv reflect.Value) (Cell, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return OfInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return OfUInt(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return OfFloat(rv.Float()), nil
	case reflect.Bool:
		return OfBool(rv.Bool()), nil
	case reflect.String:
		return OfText(rv.String()), nil
	default:
		return NA(), errors.NewUnsupportedTypeError("FromAny", fmt.Sprintf("%v", rv.Type()))
	}
}
