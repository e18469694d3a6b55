// Package series provides the two column types built on cells.
//
// A Series is strict: it declares one Kind and refuses any value that is not
// of that kind or Missing. It has no indexed write, so the only way in is
// through Push, PushBatch or a whole-series ConvertTo, all of which check or
// rewrite the kind. A MixedSeries accepts anything and may be updated in
// place by position. The two convert into each other.
package series

import (
	"fmt"

	"github.com/paveg/tabula/internal/cell"
)

// SeriesLike is the behavior shared by Series and MixedSeries.
type SeriesLike interface {
	cell.Typed
	fmt.Stringer

	Name() string
	HasName() bool
	SetName(name string)

	Len() int
	IsEmpty() bool
	At(i int) cell.Cell
	Get(i int) (cell.Cell, error)
	Cells() []cell.Cell

	Accepts(c cell.Cell) bool
	Push(c cell.Cell) error
	PushBatch(cells []cell.Cell) error
	ConvertTo(target cell.Kind) error
}

var (
	_ SeriesLike = (*Series)(nil)
	_ SeriesLike = (*MixedSeries)(nil)
)

// equalCells reports whether two series carry the same name and cells.
// The kinds are not compared, so a Series and a MixedSeries holding the same
// values are equal.
func equalCells(a, b SeriesLike) bool {
	if a.Name() != b.Name() || a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}
