// Package tiler partitions a layout into equally sized tiles.
//
// A Partition splits every top-level mode of a source layout by a tile
// extent. Tiles are identified by a flat tile coordinate (one entry per mode)
// or by their position k in traversal order, so any number of goroutines can
// walk the same partition without sharing iteration state.
//
// Tiles of a single partition never address the same offset, which makes
// each tile an independent unit of work.
package tiler

import (
	"iter"

	"github.com/born-ml/cute/internal/layout"
	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
)

// Option configures a Partition.
type Option func(*options)

type options struct {
	order layout.Major
}

// WithOrder sets the traversal order of tile coordinates. The default is
// row-major (last tile dimension fastest).
func WithOrder(m layout.Major) Option {
	return func(o *options) {
		o.order = m
	}
}

// Partition is the tiling of a source layout by a tile shape.
type Partition struct {
	source layout.Layout
	tile   layout.Shape
	zipped layout.Layout
	counts layout.Layout // selects a tile, one mode per source mode
	inner  layout.Layout // addresses within a tile
	extent []int         // tile count per mode
	order  layout.Major
}

// New partitions l by tile. tile must have l's rank and every extent of tile
// must evenly divide the size of the matching mode of l; otherwise
// ErrNonDivisibleTiling is returned.
//
// Example:
//
//	l, _ := layout.RowMajorOf(8, 8)
//	tile, _ := layout.NewShape(4, 4)
//	p, _ := tiler.New(l, tile)
//	t, _ := p.TileAt(tuple.Ints(1, 1)) // (4,4):(8,1) at offset 36
func New(l layout.Layout, tile layout.Shape, opts ...Option) (*Partition, error) {
	o := &options{order: layout.RowMajor}
	for _, opt := range opts {
		opt(o)
	}

	z, err := layout.ZippedDivide(l, tile)
	if err != nil {
		return nil, errors.Wrapf(err, "partition %s by %s", l, tile)
	}
	counts, err := z.Mode(0)
	if err != nil {
		return nil, err
	}
	inner, err := z.Mode(1)
	if err != nil {
		return nil, err
	}

	extent := make([]int, counts.Rank())
	for i := range extent {
		m, err := counts.Mode(i)
		if err != nil {
			return nil, err
		}
		extent[i] = m.Size()
	}

	return &Partition{
		source: l,
		tile:   tile,
		zipped: z,
		counts: counts,
		inner:  inner,
		extent: extent,
		order:  o.order,
	}, nil
}

// Source returns the partitioned layout.
func (p *Partition) Source() layout.Layout {
	return p.source
}

// TileShape returns the tile shape the partition was built with.
func (p *Partition) TileShape() layout.Shape {
	return p.tile
}

// Order returns the traversal order.
func (p *Partition) Order() layout.Major {
	return p.order
}

// Layout returns the two-mode layout ((tile counts),(tile extents)) behind
// the partition.
func (p *Partition) Layout() layout.Layout {
	return p.zipped
}

// TileCount returns the number of tiles along each mode.
func (p *Partition) TileCount() tuple.Tuple {
	return tuple.Ints(p.extent...)
}

// NumTiles returns the total number of tiles.
func (p *Partition) NumTiles() int {
	n := 1
	for _, e := range p.extent {
		n *= e
	}
	return n
}

// TileAt returns the tile at coord. coord holds one integer per mode of the
// source layout; ErrTileIndexOutOfRange is returned when any entry reaches
// the tile count of its mode.
func (p *Partition) TileAt(coord tuple.Tuple) (Tile, error) {
	if coord.Rank() != len(p.extent) {
		return Tile{}, errors.Wrapf(ErrArityMismatch, "tile coordinate %s for %d modes", coord, len(p.extent))
	}
	for i, e := range p.extent {
		c := coord.At(i)
		if !c.IsLeaf() {
			return Tile{}, errors.Wrapf(ErrArityMismatch, "tile coordinate %s: entry %d is nested", coord, i)
		}
		if c.Value() >= e {
			return Tile{}, errors.Wrapf(ErrTileIndexOutOfRange, "tile coordinate %s exceeds tile count %s", coord, p.TileCount())
		}
	}
	return p.tileAt(coord)
}

func (p *Partition) tileAt(coord tuple.Tuple) (Tile, error) {
	off, err := p.counts.Offset(coord)
	if err != nil {
		return Tile{}, err
	}
	return Tile{Coord: coord, Layout: p.inner, Offset: off}, nil
}

// Tile returns the k-th tile in traversal order.
func (p *Partition) Tile(k int) (Tile, error) {
	if k < 0 || k >= p.NumTiles() {
		return Tile{}, errors.Wrapf(ErrTileIndexOutOfRange, "tile %d of %d", k, p.NumTiles())
	}
	return p.tileAt(p.Coord(k))
}

// Coord returns the tile coordinate of the k-th tile in traversal order.
// k must be in [0, NumTiles()).
func (p *Partition) Coord(k int) tuple.Tuple {
	c := make([]int, len(p.extent))
	if p.order == layout.ColMajor {
		for i, e := range p.extent {
			c[i] = k % e
			k /= e
		}
	} else {
		for i := len(p.extent) - 1; i >= 0; i-- {
			c[i] = k % p.extent[i]
			k /= p.extent[i]
		}
	}
	return tuple.Ints(c...)
}

// All yields every tile with its coordinate in traversal order. Each call
// starts a fresh traversal from the first tile.
func (p *Partition) All() iter.Seq2[tuple.Tuple, Tile] {
	return func(yield func(tuple.Tuple, Tile) bool) {
		n := p.NumTiles()
		for k := 0; k < n; k++ {
			t, err := p.tileAt(p.Coord(k))
			if err != nil {
				// Coordinates come from the tile counts and always resolve.
				return
			}
			if !yield(t.Coord, t) {
				return
			}
		}
	}
}
