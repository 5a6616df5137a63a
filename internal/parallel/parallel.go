// Package parallel schedules independent work units, such as the tiles of a
// partition, onto a bounded set of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Maximum number of units in flight.
	MinTiles   int  // Below this many units, run sequentially.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinTiles:   4,
	}
}

// Sequential returns a config that runs every unit on the calling goroutine.
func Sequential() Config {
	return Config{NumWorkers: 1}
}

// ForEach calls f(ctx, i) for i in [0, n). Units run concurrently, at most
// cfg.NumWorkers at a time, unless parallelism is disabled or n is below
// cfg.MinTiles. The first error cancels ctx for the remaining units and is
// returned; units not yet started are skipped.
//
// f must only write to state owned by unit i.
func ForEach(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinTiles {
		klog.V(4).Infof("parallel: %d units sequentially", n)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	workers := min(cfg.NumWorkers, n)
	klog.V(4).Infof("parallel: %d units on %d workers", n, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		klog.V(4).Infof("parallel: stopped: %v", err)
		return err
	}
	// gctx is canceled once Wait returns; only the caller's ctx matters here.
	return ctx.Err()
}
