package cell

import (
	"cmp"
	"encoding/binary"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Equal reports whether two cells have the same kind and payload. It agrees
// with ==, so a Float NaN is not equal to itself.
func (c Cell) Equal(other Cell) bool {
	return c == other
}

// Compare orders two cells of the same kind. ok is false when the kinds
// differ, when either cell is Missing, or when a Float operand is NaN: cells
// are only ordered within a kind.
func (c Cell) Compare(other Cell) (result int, ok bool) {
	if c.kind != other.kind {
		return 0, false
	}
	switch c.kind {
	case Int:
		return cmp.Compare(c.i, other.i), true
	case UInt:
		return cmp.Compare(c.u, other.u), true
	case Float:
		if math.IsNaN(c.f) || math.IsNaN(other.f) {
			return 0, false
		}
		return cmp.Compare(c.f, other.f), true
	case Char:
		return cmp.Compare(c.r, other.r), true
	case Bool:
		return cmp.Compare(boolToInt(c.b), boolToInt(other.b)), true
	case Text:
		return strings.Compare(c.s, other.s), true
	default:
		return 0, false
	}
}

// Less reports whether c orders strictly before other.
func (c Cell) Less(other Cell) bool {
	r, ok := c.Compare(other)
	return ok && r < 0
}

// Hash returns a 64-bit hash of the kind and payload. Equal cells hash
// equally.
func (c Cell) Hash() uint64 {
	d := xxhash.New()
	c.hashTo(d)
	return d.Sum64()
}

// HashTo feeds the cell into a running digest, for hashing rows of cells.
func (c Cell) HashTo(d *xxhash.Digest) {
	c.hashTo(d)
}

func (c Cell) hashTo(d *xxhash.Digest) {
	var buf [9]byte
	buf[0] = byte(c.kind)
	switch c.kind {
	case Int:
		binary.LittleEndian.PutUint64(buf[1:], uint64(c.i))
	case UInt:
		binary.LittleEndian.PutUint64(buf[1:], c.u)
	case Float:
		f := c.f
		if f == 0 {
			// 0.0 == -0.0, so they must hash alike
			f = 0
		}
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
	case Char:
		binary.LittleEndian.PutUint64(buf[1:], uint64(c.r))
	case Bool:
		buf[1] = byte(boolToInt(c.b))
	case Text:
		_, _ = d.Write(buf[:1])
		_, _ = d.WriteString(c.s)
		return
	}
	_, _ = d.Write(buf[:])
}
