package series

import (
	"fmt"
	"slices"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/validation"
)

// MixedSeries is a named, growable sequence of cells of any kinds. It always
// reports the Mixed kind and allows writes by position.
type MixedSeries struct {
	name  string
	cells []cell.Cell
}

// NewMixed creates a mixed series holding a copy of cells.
func NewMixed(name string, cells []cell.Cell) *MixedSeries {
	return &MixedSeries{name: name, cells: slices.Clone(cells)}
}

// MixedFrom converts a strict series into a mixed one without loss. The
// cells are copied, so later changes to either series do not affect the
// other.
func MixedFrom(s *Series) *MixedSeries {
	return &MixedSeries{name: s.name, cells: slices.Clone(s.cells)}
}

// Name returns the series name, empty when unnamed
func (m *MixedSeries) Name() string {
	return m.name
}

// HasName reports whether the series is named
func (m *MixedSeries) HasName() bool {
	return m.name != ""
}

// SetName renames the series
func (m *MixedSeries) SetName(name string) {
	m.name = name
}

// Kind always returns Mixed
func (m *MixedSeries) Kind() cell.Kind {
	return cell.Mixed
}

// Len returns the number of cells
func (m *MixedSeries) Len() int {
	return len(m.cells)
}

// IsEmpty reports whether the series holds no cells
func (m *MixedSeries) IsEmpty() bool {
	return len(m.cells) == 0
}

// At returns the cell at index i and panics when i is out of range.
func (m *MixedSeries) At(i int) cell.Cell {
	return m.cells[i]
}

// Get returns the cell at index i or an IndexOutOfRange error.
func (m *MixedSeries) Get(i int) (cell.Cell, error) {
	if err := validation.ValidateIndex(i, len(m.cells), "Get"); err != nil {
		return cell.NA(), err
	}
	return m.cells[i], nil
}

// Set replaces the cell at index i with c, whatever its kind. It panics when
// i is out of range.
func (m *MixedSeries) Set(i int, c cell.Cell) {
	m.cells[i] = c
}

// Cells returns a copy of the stored cells.
func (m *MixedSeries) Cells() []cell.Cell {
	return slices.Clone(m.cells)
}

// Accepts always returns true
func (m *MixedSeries) Accepts(cell.Cell) bool {
	return true
}

// Push appends c. It never fails.
func (m *MixedSeries) Push(c cell.Cell) error {
	m.cells = append(m.cells, c)
	return nil
}

// PushBatch appends cells. It never fails.
func (m *MixedSeries) PushBatch(cells []cell.Cell) error {
	m.cells = append(m.cells, cells...)
	return nil
}

// ForcePush appends c
func (m *MixedSeries) ForcePush(c cell.Cell) {
	_ = m.Push(c)
}

// ForcePushBatch appends cells
func (m *MixedSeries) ForcePushBatch(cells []cell.Cell) {
	_ = m.PushBatch(cells)
}

// ConvertTo converts every cell to target in place. Converting to Mixed
// leaves the cells as they are.
func (m *MixedSeries) ConvertTo(target cell.Kind) error {
	if target == cell.Mixed {
		return nil
	}
	for i, c := range m.cells {
		m.cells[i] = c.ConvertTo(target)
	}
	return nil
}

// ToSeries converts the series to a strict Text series. Every cell has a
// textual form, so nothing but Missing cells are Missing afterwards.
func (m *MixedSeries) ToSeries() *Series {
	return &Series{name: m.name, kind: cell.Text, cells: convertAll(m.cells, cell.Text)}
}

// Infer converts the series to the tightest strict series that keeps every
// value, as chosen by InferKind.
func (m *MixedSeries) Infer() *Series {
	kind := InferKind(m.cells)
	return &Series{name: m.name, kind: kind, cells: convertAll(m.cells, kind)}
}

// Equal reports whether other has the same name and the same cells in the
// same order.
func (m *MixedSeries) Equal(other SeriesLike) bool {
	return equalCells(m, other)
}

// Unique returns the distinct cells in order of first appearance.
func (m *MixedSeries) Unique() []cell.Cell {
	return unique(m.cells)
}

// String returns a short description of the series
func (m *MixedSeries) String() string {
	return fmt.Sprintf("Series[%s]: %s (len=%d)", cell.Mixed, m.name, len(m.cells))
}
