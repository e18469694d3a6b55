package series

import "github.com/paveg/tabula/internal/cell"

// KindOf reports the single kind shared by cells, ignoring Missing ones.
//
// The first non-missing cell fixes the kind. A later non-missing cell of a
// different kind makes the result Mixed, and the scan stops there. The result
// is Missing only when cells is empty or every cell is Missing.
func KindOf(cells []cell.Cell) cell.Kind {
	result := cell.Missing
	for _, c := range cells {
		k := c.Kind()
		switch {
		case k == cell.Missing:
		case result == cell.Missing:
			result = k
		case k != result:
			return cell.Mixed
		}
	}
	return result
}

// InferKind returns the tightest kind every cell converts to without losing
// its meaning. Homogeneous input keeps its kind. Int mixed with UInt becomes
// Int when every unsigned value fits in int64; any other numeric mix becomes
// Float; everything else falls back to Text.
func InferKind(cells []cell.Cell) cell.Kind {
	kind := KindOf(cells)
	if kind != cell.Mixed {
		return kind
	}

	integral := true
	for _, c := range cells {
		switch c.Kind() {
		case cell.Missing:
		case cell.Int:
		case cell.UInt:
			if c.ConvertTo(cell.Int).IsNA() {
				integral = false
			}
		case cell.Float:
			integral = false
		default:
			return cell.Text
		}
	}

	if integral {
		return cell.Int
	}
	return cell.Float
}
