package tiler

import (
	"fmt"

	"github.com/born-ml/cute/internal/layout"
	"github.com/born-ml/cute/internal/tuple"
)

// Tile is one block of a partition. Layout addresses the elements of the
// tile in tile-local coordinates; Offset is added to every offset it yields
// to land in the source layout's storage.
type Tile struct {
	Coord  tuple.Tuple
	Layout layout.Layout
	Offset int
}

// Size returns the number of elements in the tile.
func (t Tile) Size() int {
	return t.Layout.Size()
}

// OffsetOf returns the absolute offset of the tile-local logical index i.
func (t Tile) OffsetOf(i int) (int, error) {
	off, err := t.Layout.OffsetOf(i)
	if err != nil {
		return 0, err
	}
	return t.Offset + off, nil
}

// Offsets returns the absolute offsets addressed by the tile in tile-local
// logical order.
func (t Tile) Offsets() []int {
	out := make([]int, t.Layout.Size())
	for i := range out {
		// i is always in range.
		off, _ := t.Layout.OffsetOf(i)
		out[i] = t.Offset + off
	}
	return out
}

// String formats the tile as coord@offset layout.
func (t Tile) String() string {
	return fmt.Sprintf("%s@%d %s", t.Coord, t.Offset, t.Layout)
}

// Disjoint reports whether a and b address no common offset.
func Disjoint(a, b Tile) bool {
	seen := make(map[int]struct{}, a.Size())
	for _, off := range a.Offsets() {
		seen[off] = struct{}{}
	}
	for _, off := range b.Offsets() {
		if _, ok := seen[off]; ok {
			return false
		}
	}
	return true
}
