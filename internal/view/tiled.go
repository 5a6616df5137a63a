package view

import (
	"iter"

	"github.com/born-ml/cute/internal/layout"
	"github.com/born-ml/cute/internal/tiler"
	"github.com/born-ml/cute/internal/tuple"
)

// Tiled is a view partitioned into tiles. Every tile view shares the parent's
// storage; views of distinct tiles address disjoint elements.
type Tiled[T any] struct {
	parent View[T]
	part   *tiler.Partition
}

// Tile partitions v by shape. It fails with tiler.ErrNonDivisibleTiling when
// shape does not evenly divide v's layout.
func (v View[T]) Tile(shape layout.Shape, opts ...tiler.Option) (*Tiled[T], error) {
	p, err := tiler.New(v.layout, shape, opts...)
	if err != nil {
		return nil, err
	}
	return &Tiled[T]{parent: v, part: p}, nil
}

// TileViews returns the views of all tiles of v in traversal order.
func (v View[T]) TileViews(shape layout.Shape, opts ...tiler.Option) ([]View[T], error) {
	t, err := v.Tile(shape, opts...)
	if err != nil {
		return nil, err
	}
	return t.Views(), nil
}

// Partition returns the underlying partition.
func (t *Tiled[T]) Partition() *tiler.Partition {
	return t.part
}

// Parent returns the partitioned view.
func (t *Tiled[T]) Parent() View[T] {
	return t.parent
}

// NumTiles returns the number of tiles.
func (t *Tiled[T]) NumTiles() int {
	return t.part.NumTiles()
}

func (t *Tiled[T]) bind(tile tiler.Tile) View[T] {
	return View[T]{layout: tile.Layout, data: t.parent.data, base: t.parent.base + tile.Offset}
}

// TileAt returns the view of the tile at coord.
func (t *Tiled[T]) TileAt(coord tuple.Tuple) (View[T], error) {
	tile, err := t.part.TileAt(coord)
	if err != nil {
		return View[T]{}, err
	}
	return t.bind(tile), nil
}

// Index returns the view of the k-th tile in traversal order.
func (t *Tiled[T]) Index(k int) (View[T], error) {
	tile, err := t.part.Tile(k)
	if err != nil {
		return View[T]{}, err
	}
	return t.bind(tile), nil
}

// All yields every tile coordinate with its view in traversal order.
func (t *Tiled[T]) All() iter.Seq2[tuple.Tuple, View[T]] {
	return func(yield func(tuple.Tuple, View[T]) bool) {
		for c, tile := range t.part.All() {
			if !yield(c, t.bind(tile)) {
				return
			}
		}
	}
}

// Views returns the views of all tiles in traversal order.
func (t *Tiled[T]) Views() []View[T] {
	out := make([]View[T], 0, t.part.NumTiles())
	for _, v := range t.All() {
		out = append(out, v)
	}
	return out
}
