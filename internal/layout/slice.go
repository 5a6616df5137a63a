package layout

import (
	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
)

// Sel selects either a fixed index or the whole extent of one top-level mode.
type Sel struct {
	index int
	free  bool
}

// Free keeps a mode in the sliced layout.
var Free = Sel{free: true}

// At fixes a mode to logical index i. For a nested mode, i is decomposed
// row-major over the mode's leaves.
func At(i int) Sel {
	return Sel{index: i}
}

// IsFree reports whether the selector keeps its mode.
func (s Sel) IsFree() bool {
	return s.free
}

// Index returns the fixed index of a non-free selector.
func (s Sel) Index() int {
	return s.index
}

// Slice fixes the selected modes and returns the layout over the remaining
// free modes together with the base offset contributed by the fixed ones.
// Callers add the base offset to the origin of whatever storage l addresses.
//
// Example:
//
//	l, _ := RowMajorOf(4, 6)        // (4,6):(6,1)
//	row, base, _ := l.Slice(At(2), Free)
//	// row = (6):(1), base = 12
func (l Layout) Slice(sel ...Sel) (Layout, int, error) {
	if len(sel) != l.Rank() {
		return Layout{}, 0, errors.Wrapf(ErrArityMismatch, "%d selectors for rank-%d layout %s", len(sel), l.Rank(), l)
	}
	var shapes, strides []tuple.Tuple
	base := 0
	for i, s := range sel {
		m, err := l.Mode(i)
		if err != nil {
			return Layout{}, 0, err
		}
		if s.free {
			shapes = append(shapes, m.shape.Tuple)
			strides = append(strides, m.stride.Tuple)
			continue
		}
		off, err := m.OffsetOf(s.index)
		if err != nil {
			return Layout{}, 0, errors.Wrapf(err, "slice mode %d of %s", i, l)
		}
		base += off
	}
	return Layout{shape: Shape{tuple.Nest(shapes...)}, stride: Stride{tuple.Nest(strides...)}}, base, nil
}
