// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides non-owning tensor views and tiled matrix
// multiplication over layouts.
//
// # Overview
//
// A View binds a layout.Layout to a caller-owned slice. This package provides:
//   - Generic views (View[T]) with coordinate and linear-index access
//   - Slicing and tiling that rebind the same storage with a new base offset
//   - Copy between views of any layouts, plus float16 staging
//   - A tiled GEMM driver over views, with a pluggable per-tile kernel
//
// # Basic Usage
//
//	l, _ := layout.RowMajorOf(8, 8)
//	data := make([]float32, l.Cosize())
//	v := tensor.New(l, data)
//	_ = v.Store(layout.Ints(2, 3), 1.5)   // data[19] = 1.5
//
// # Ownership
//
// Views never own their storage. The slice passed to New must outlive every
// view derived from it, and writes through any view are visible through all
// others.
//
// # Tiles
//
// Tiles of one partition address disjoint elements, so each tile view can be
// written by its own goroutine:
//
//	tiles, _ := v.TileViews(layout.MustShape(4, 4))
//	for _, t := range tiles {
//	    go process(t)
//	}
//
// # Matrix Multiplication
//
//	cfg := tensor.DefaultGemmConfig()
//	err := tensor.MatMul(ctx, a, b, c, cfg, nil) // c = a * b
package tensor
