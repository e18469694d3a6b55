package series

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/errors"
	"github.com/paveg/tabula/internal/validation"
)

// Series is a named, growable sequence of cells of one declared kind.
//
// Every stored cell is of the declared kind or Missing. A series declared
// Missing takes the kind of the first concrete cell it accepts.
type Series struct {
	name  string
	kind  cell.Kind
	cells []cell.Cell
}

// New creates an empty series of the given kind.
func New(name string, kind cell.Kind) *Series {
	return &Series{name: name, kind: kind}
}

// WithCapacity creates an empty series with room for n cells.
func WithCapacity(name string, kind cell.Kind, n int) *Series {
	return &Series{name: name, kind: kind, cells: make([]cell.Cell, 0, n)}
}

// From creates a series from cells, inferring its kind with KindOf. It fails
// with a MixedTypeError when the cells hold more than one concrete kind.
// The cells are copied.
func From(name string, cells []cell.Cell) (*Series, error) {
	kind := KindOf(cells)
	if kind == cell.Mixed {
		return nil, errors.NewMixedTypeError("From", name).
			WithHint("use NewMixed for heterogeneous data")
	}
	return &Series{name: name, kind: kind, cells: slices.Clone(cells)}, nil
}

// FromValues creates a series from native values. The kind is that of T,
// even when values is empty.
func FromValues[T cell.Primitive](name string, values []T) *Series {
	return &Series{name: name, kind: cell.KindFor[T](), cells: cell.OfSlice(values)}
}

// FromMixed converts every cell of m to target and returns the result as a
// strict series with m's name. Cells that do not convert become Missing. m is
// left unchanged.
func FromMixed(m *MixedSeries, target cell.Kind) (*Series, error) {
	if target == cell.Mixed {
		return nil, errors.NewMixedTypeError("FromMixed", m.name).
			WithHint("choose a concrete kind, or Text to keep every value")
	}
	return &Series{name: m.name, kind: target, cells: convertAll(m.cells, target)}, nil
}

// Name returns the series name, empty when unnamed
func (s *Series) Name() string {
	return s.name
}

// HasName reports whether the series is named
func (s *Series) HasName() bool {
	return s.name != ""
}

// SetName renames the series
func (s *Series) SetName(name string) {
	s.name = name
}

// Kind returns the declared kind
func (s *Series) Kind() cell.Kind {
	return s.kind
}

// Len returns the number of cells
func (s *Series) Len() int {
	return len(s.cells)
}

// IsEmpty reports whether the series holds no cells
func (s *Series) IsEmpty() bool {
	return len(s.cells) == 0
}

// At returns the cell at index i. It panics when i is out of range, like
// slice indexing. Use Get for a checked read.
func (s *Series) At(i int) cell.Cell {
	return s.cells[i]
}

// Get returns the cell at index i or an IndexOutOfRange error.
func (s *Series) Get(i int) (cell.Cell, error) {
	if err := validation.ValidateIndex(i, len(s.cells), "Get"); err != nil {
		return cell.NA(), err
	}
	return s.cells[i], nil
}

// Cells returns a copy of the stored cells.
func (s *Series) Cells() []cell.Cell {
	return slices.Clone(s.cells)
}

// NullCount returns the number of Missing cells.
func (s *Series) NullCount() int {
	n := 0
	for _, c := range s.cells {
		if c.IsNA() {
			n++
		}
	}
	return n
}

// Accepts reports whether c may be pushed
func (s *Series) Accepts(c cell.Cell) bool {
	return cell.Compatible(s.kind, c.Kind())
}

// Push appends c. It fails with an InvalidType error, leaving the series
// unchanged, when c is neither of the declared kind nor Missing.
func (s *Series) Push(c cell.Cell) error {
	if err := validation.ValidateKind(s.kind, c, "Push", s.name); err != nil {
		return err
	}
	s.adopt(c.Kind())
	s.cells = append(s.cells, c)
	return nil
}

// PushBatch appends every cell or none. The whole batch is checked before
// anything is appended.
func (s *Series) PushBatch(cells []cell.Cell) error {
	want := s.kind
	if want == cell.Missing {
		want = firstKind(cells)
	}
	if err := validation.ValidateBatch(want, cells, "PushBatch", s.name); err != nil {
		return err
	}
	s.adopt(want)
	s.cells = append(s.cells, cells...)
	return nil
}

// Pop removes and returns the last cell. ok is false when the series is
// empty.
func (s *Series) Pop() (c cell.Cell, ok bool) {
	if len(s.cells) == 0 {
		return cell.NA(), false
	}
	last := len(s.cells) - 1
	c = s.cells[last]
	s.cells = s.cells[:last]
	return c, true
}

// ConvertTo replaces every cell with its conversion to target and declares
// the series as target, even where individual conversions produced Missing.
// Mixed is not a valid target for a strict series; the series is then left
// unchanged and a MixedTypeError is returned.
func (s *Series) ConvertTo(target cell.Kind) error {
	if target == cell.Mixed {
		return errors.NewMixedTypeError("ConvertTo", s.name).
			WithHint("convert to a MixedSeries with MixedFrom")
	}
	for i, c := range s.cells {
		s.cells[i] = c.ConvertTo(target)
	}
	s.kind = target
	return nil
}

// Clone returns an independent copy of the series.
func (s *Series) Clone() *Series {
	return &Series{name: s.name, kind: s.kind, cells: slices.Clone(s.cells)}
}

// Equal reports whether other has the same name and the same cells in the
// same order.
func (s *Series) Equal(other SeriesLike) bool {
	return equalCells(s, other)
}

// Unique returns the distinct cells in order of first appearance.
func (s *Series) Unique() []cell.Cell {
	return unique(s.cells)
}

// String returns a short description of the series
func (s *Series) String() string {
	return fmt.Sprintf("Series[%s]: %s (len=%d)", s.kind, s.name, len(s.cells))
}

func (s *Series) adopt(k cell.Kind) {
	if s.kind == cell.Missing && k != cell.Missing {
		s.kind = k
	}
}

// firstKind returns the kind of the first non-missing cell, or Missing.
func firstKind(cells []cell.Cell) cell.Kind {
	for _, c := range cells {
		if !c.IsNA() {
			return c.Kind()
		}
	}
	return cell.Missing
}

func convertAll(cells []cell.Cell, target cell.Kind) []cell.Cell {
	out := make([]cell.Cell, len(cells))
	for i, c := range cells {
		out[i] = c.ConvertTo(target)
	}
	return out
}

// unique buckets cells by hash and compares within a bucket, so cells that
// are == collapse while hash collisions stay distinct. NaN is never == to
// itself and so every NaN is kept.
func unique(cells []cell.Cell) []cell.Cell {
	seen := make(map[uint64][]cell.Cell, len(cells))
	out := make([]cell.Cell, 0, len(cells))
	d := xxhash.New()
	for _, c := range cells {
		d.Reset()
		c.HashTo(d)
		h := d.Sum64()
		if slices.Contains(seen[h], c) {
			continue
		}
		seen[h] = append(seen[h], c)
		out = append(out, c)
	}
	return out
}
