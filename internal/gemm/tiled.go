package gemm

import (
	"context"

	"github.com/born-ml/cute/internal/layout"
	"github.com/born-ml/cute/internal/parallel"
	"github.com/born-ml/cute/internal/tiler"
	"github.com/born-ml/cute/internal/tuple"
	"github.com/born-ml/cute/internal/view"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Config controls the tiled GEMM driver.
type Config struct {
	TileM    int             // Rows of a C tile.
	TileN    int             // Columns of a C tile.
	TileK    int             // Depth of one A/B panel step.
	Parallel parallel.Config // Scheduling of C tiles.
	Verify   bool            // Check that C tiles are pairwise disjoint before running.
}

// DefaultConfig returns 32x32x32 tiles scheduled on all CPUs.
func DefaultConfig() Config {
	return Config{
		TileM:    32,
		TileN:    32,
		TileK:    32,
		Parallel: parallel.DefaultConfig(),
	}
}

// Tiled computes C = A * B by partitioning C into TileM x TileN tiles, A into
// TileM x TileK tiles and B into TileK x TileN tiles. Each C tile is an
// independent unit of work: it is zeroed, then kernel accumulates one A/B
// panel pair at a time. A nil kernel selects Reference.
//
// Tile sizes larger than the matching matrix extent are clamped to it; any
// other tile size must divide its extent or ErrNonDivisibleTiling is
// returned.
func Tiled[T Number](ctx context.Context, a, b, c view.View[T], cfg Config, kernel Kernel[T]) error {
	if kernel == nil {
		kernel = Reference[T]
	}
	m, k, _, _, err := strided(a.Layout())
	if err != nil {
		return errors.Wrap(err, "A")
	}
	kb, n, _, _, err := strided(b.Layout())
	if err != nil {
		return errors.Wrap(err, "B")
	}
	mc, nc, _, _, err := strided(c.Layout())
	if err != nil {
		return errors.Wrap(err, "C")
	}
	if k != kb || m != mc || n != nc {
		return errors.Wrapf(ErrShapeMismatch, "(%d,%d)x(%d,%d) into (%d,%d)", m, k, kb, n, mc, nc)
	}
	for _, v := range []func() error{a.Validate, b.Validate, c.Validate} {
		if err := v(); err != nil {
			return err
		}
	}
	if m == 0 || n == 0 {
		return nil
	}

	tm, tn, tk := clamp(cfg.TileM, m), clamp(cfg.TileN, n), clamp(cfg.TileK, k)
	cTiles, err := tiles(c, tm, tn)
	if err != nil {
		return errors.Wrap(err, "partition C")
	}
	if k == 0 {
		return parallel.ForEach(ctx, cTiles.NumTiles(), func(_ context.Context, i int) error {
			ct, err := cTiles.Index(i)
			if err != nil {
				return err
			}
			return ct.Fill(0)
		}, cfg.Parallel)
	}
	aTiles, err := tiles(a, tm, tk)
	if err != nil {
		return errors.Wrap(err, "partition A")
	}
	bTiles, err := tiles(b, tk, tn)
	if err != nil {
		return errors.Wrap(err, "partition B")
	}
	if cfg.Verify {
		if err := verifyDisjoint(cTiles.Partition()); err != nil {
			return err
		}
	}

	panels := k / tk
	klog.V(4).Infof("gemm: (%d,%d)x(%d,%d) as %d tiles of %dx%d, %d panels of depth %d",
		m, k, k, n, cTiles.NumTiles(), tm, tn, panels, tk)

	return parallel.ForEach(ctx, cTiles.NumTiles(), func(ctx context.Context, idx int) error {
		coord := cTiles.Partition().Coord(idx)
		ct, err := cTiles.TileAt(coord)
		if err != nil {
			return err
		}
		if err := ct.Fill(0); err != nil {
			return err
		}
		i, j := coord.At(0).Value(), coord.At(1).Value()
		for p := 0; p < panels; p++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			at, err := aTiles.TileAt(tuple.Ints(i, p))
			if err != nil {
				return err
			}
			bt, err := bTiles.TileAt(tuple.Ints(p, j))
			if err != nil {
				return err
			}
			if err := kernel(ct, at, bt); err != nil {
				return errors.Wrapf(err, "tile %s panel %d", coord, p)
			}
		}
		return nil
	}, cfg.Parallel)
}

func clamp(tile, extent int) int {
	if tile <= 0 || tile > extent {
		return extent
	}
	return tile
}

func tiles[T any](v view.View[T], rows, cols int) (*view.Tiled[T], error) {
	s, err := layout.NewShape(rows, cols)
	if err != nil {
		return nil, err
	}
	return v.Tile(s)
}

// verifyDisjoint rejects partitions whose tiles share an offset, as happens
// with a broadcast (stride 0) output.
func verifyDisjoint(p *tiler.Partition) error {
	seen := make(map[int]tuple.Tuple)
	for c, t := range p.All() {
		for _, off := range t.Offsets() {
			if prev, ok := seen[off]; ok {
				return errors.Wrapf(ErrOverlappingTiles, "offset %d written by tile %s and tile %s", off, prev, c)
			}
			seen[off] = c
		}
	}
	return nil
}
