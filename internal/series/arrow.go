package series

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/errors"
)

// KindMetadataKey is the Arrow field metadata key that records the cell kind
// of an exported column. Char columns travel as utf8 and need it to come back
// as Char.
const KindMetadataKey = "tabula.kind"

// ArrowType returns the Arrow data type a column of kind k is exported as.
// Mixed has no Arrow type and yields nil.
func ArrowType(k cell.Kind) arrow.DataType {
	switch k {
	case cell.Int:
		return arrow.PrimitiveTypes.Int64
	case cell.UInt:
		return arrow.PrimitiveTypes.Uint64
	case cell.Float:
		return arrow.PrimitiveTypes.Float64
	case cell.Bool:
		return arrow.FixedWidthTypes.Boolean
	case cell.Char, cell.Text:
		return arrow.BinaryTypes.String
	case cell.Missing:
		return arrow.Null
	default:
		return nil
	}
}

// Field returns the Arrow field describing the series.
func (s *Series) Field() arrow.Field {
	return arrow.Field{
		Name:     s.name,
		Type:     ArrowType(s.kind),
		Nullable: true,
		Metadata: arrow.NewMetadata([]string{KindMetadataKey}, []string{s.kind.String()}),
	}
}

// Arrow builds an Arrow array holding the series. Missing cells become
// nulls. A nil allocator means the Go allocator. The caller owns the array
// and must Release it.
func (s *Series) Arrow(mem memory.Allocator) arrow.Array {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	switch s.kind {
	case cell.Int:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		for _, c := range s.cells {
			if v, err := c.AsInt(); err == nil {
				builder.Append(v)
			} else {
				builder.AppendNull()
			}
		}
		return builder.NewArray()
	case cell.UInt:
		builder := array.NewUint64Builder(mem)
		defer builder.Release()
		for _, c := range s.cells {
			if v, err := c.AsUInt(); err == nil {
				builder.Append(v)
			} else {
				builder.AppendNull()
			}
		}
		return builder.NewArray()
	case cell.Float:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		for _, c := range s.cells {
			if v, err := c.AsFloat(); err == nil {
				builder.Append(v)
			} else {
				builder.AppendNull()
			}
		}
		return builder.NewArray()
	case cell.Bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		for _, c := range s.cells {
			if v, err := c.AsBool(); err == nil {
				builder.Append(v)
			} else {
				builder.AppendNull()
			}
		}
		return builder.NewArray()
	case cell.Char, cell.Text:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		for _, c := range s.cells {
			if c.IsNA() {
				builder.AppendNull()
			} else {
				builder.Append(c.String())
			}
		}
		return builder.NewArray()
	default:
		builder := array.NewNullBuilder(mem)
		defer builder.Release()
		for range s.cells {
			builder.AppendNull()
		}
		return builder.NewArray()
	}
}

// FromArrow reads an Arrow array back into a series named after field. The
// kind is taken from the field's KindMetadataKey entry when present and from
// the Arrow type otherwise. Narrow integer and float types widen to 64 bits.
// Arrow types with no cell counterpart fail with an UnsupportedType error.
func FromArrow(field arrow.Field, arr arrow.Array) (*Series, error) {
	cells := make([]cell.Cell, arr.Len())
	for i := range cells {
		if arr.IsNull(i) {
			cells[i] = cell.NA()
			continue
		}
		c, ok := arrowValue(arr, i)
		if !ok {
			return nil, errors.NewUnsupportedTypeError("FromArrow", arr.DataType().String())
		}
		cells[i] = c
	}

	kind, ok := kindFromArrow(field, arr.DataType())
	if !ok {
		return nil, errors.NewUnsupportedTypeError("FromArrow", arr.DataType().String())
	}
	// Metadata may name a different kind than the storage type, as for Char
	// stored as utf8.
	for i, c := range cells {
		cells[i] = c.ConvertTo(kind)
	}
	return &Series{name: field.Name, kind: kind, cells: cells}, nil
}

func kindFromArrow(field arrow.Field, dt arrow.DataType) (cell.Kind, bool) {
	if idx := field.Metadata.FindKey(KindMetadataKey); idx >= 0 {
		if k, err := cell.ParseKind(field.Metadata.Values()[idx]); err == nil && k != cell.Mixed {
			return k, true
		}
	}

	//nolint:exhaustive // only the types with a cell counterpart
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		return cell.Int, true
	case arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return cell.UInt, true
	case arrow.FLOAT32, arrow.FLOAT64:
		return cell.Float, true
	case arrow.BOOL:
		return cell.Bool, true
	case arrow.STRING, arrow.LARGE_STRING:
		return cell.Text, true
	case arrow.NULL:
		return cell.Missing, true
	default:
		return cell.Missing, false
	}
}

func arrowValue(arr arrow.Array, i int) (cell.Cell, bool) {
	switch a := arr.(type) {
	case *array.Null:
		return cell.NA(), true
	case *array.Int8:
		return cell.Of(a.Value(i)), true
	case *array.Int16:
		return cell.Of(a.Value(i)), true
	case *array.Int32:
		return cell.Of(a.Value(i)), true
	case *array.Int64:
		return cell.OfInt(a.Value(i)), true
	case *array.Uint8:
		return cell.Of(a.Value(i)), true
	case *array.Uint16:
		return cell.Of(a.Value(i)), true
	case *array.Uint32:
		return cell.Of(a.Value(i)), true
	case *array.Uint64:
		return cell.OfUInt(a.Value(i)), true
	case *array.Float32:
		return cell.Of(a.Value(i)), true
	case *array.Float64:
		return cell.OfFloat(a.Value(i)), true
	case *array.Boolean:
		return cell.OfBool(a.Value(i)), true
	case *array.String:
		return cell.OfText(a.Value(i)), true
	case *array.LargeString:
		return cell.OfText(a.Value(i)), true
	default:
		return cell.NA(), false
	}
}
