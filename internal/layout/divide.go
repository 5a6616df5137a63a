package layout

import (
	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
)

// divideModes splits every top-level mode i of l into a (count, tile) pair for
// tile extent T = tile[i]. The pair is l.Mode(i) composed with the row-major
// tiler (S/T, T):(T, 1), so a flat mode (S):(d) becomes (S/T, T):(T*d, d).
func divideModes(l Layout, tile Shape) (counts, tiles []Layout, err error) {
	if tile.Rank() != l.Rank() {
		return nil, nil, errors.Wrapf(ErrArityMismatch, "tile %s for rank-%d layout %s", tile, l.Rank(), l)
	}
	counts = make([]Layout, l.Rank())
	tiles = make([]Layout, l.Rank())
	for i := 0; i < l.Rank(); i++ {
		m, err := l.Mode(i)
		if err != nil {
			return nil, nil, err
		}
		s, t := m.Size(), tile.At(i).Product()
		if t == 0 || t > s || s%t != 0 {
			return nil, nil, errors.Wrapf(ErrNonDivisibleTiling, "mode %d: extent %d by tile %d", i, s, t)
		}
		tiler := Layout{shape: Shape{tuple.Ints(s/t, t)}, stride: Stride{tuple.Ints(t, 1)}}
		split, err := Compose(m, tiler)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "divide mode %d of %s", i, l)
		}
		counts[i], _ = split.Mode(0)
		tiles[i], _ = split.Mode(1)
	}
	return counts, tiles, nil
}

func nestLayouts(ls []Layout) Layout {
	shapes := make([]tuple.Tuple, len(ls))
	strides := make([]tuple.Tuple, len(ls))
	for i, l := range ls {
		shapes[i] = l.shape.Tuple
		strides[i] = l.stride.Tuple
	}
	return Layout{shape: Shape{tuple.Nest(shapes...)}, stride: Stride{tuple.Nest(strides...)}}
}

// LogicalDivide splits each mode of l by tile: ((c0,t0),(c1,t1),...), where
// c_i = S[i]/T[i] counts tiles and t_i = T[i] addresses within a tile.
func LogicalDivide(l Layout, tile Shape) (Layout, error) {
	counts, tiles, err := divideModes(l, tile)
	if err != nil {
		return Layout{}, err
	}
	pairs := make([]Layout, len(counts))
	for i := range counts {
		pairs[i] = nestLayouts([]Layout{counts[i], tiles[i]})
	}
	return nestLayouts(pairs), nil
}

// ZippedDivide gathers the tile counts and the tile extents into two modes:
// ((c0,c1,...),(t0,t1,...)). Mode 0 selects a tile, mode 1 addresses within it.
func ZippedDivide(l Layout, tile Shape) (Layout, error) {
	counts, tiles, err := divideModes(l, tile)
	if err != nil {
		return Layout{}, err
	}
	return nestLayouts([]Layout{nestLayouts(counts), nestLayouts(tiles)}), nil
}

// TiledDivide is ZippedDivide with the count mode unpacked: (c0,c1,...,(t0,t1,...)).
func TiledDivide(l Layout, tile Shape) (Layout, error) {
	counts, tiles, err := divideModes(l, tile)
	if err != nil {
		return Layout{}, err
	}
	return nestLayouts(append(counts, nestLayouts(tiles))), nil
}

// FlatDivide removes all nesting from ZippedDivide: (c0,c1,...,t0,t1,...).
func FlatDivide(l Layout, tile Shape) (Layout, error) {
	z, err := ZippedDivide(l, tile)
	if err != nil {
		return Layout{}, err
	}
	return z.Flat(), nil
}
