// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"context"

	"github.com/born-ml/cute/internal/gemm"
	"github.com/born-ml/cute/layout"
)

// Number is the element constraint of matrix multiplication:
// float32, float64, int32, int64.
type Number = gemm.Number

// Backend is a row-major BLAS-style GEMM that MatMul can hand tiles to.
//
// Implementations:
//   - Naive: portable Go triple loop
//
// Any cblas_?gemm binding with row-major semantics fits the interface.
type Backend[T Number] = gemm.Backend[T]

// Naive is the portable Go Backend.
type Naive[T Number] = gemm.Naive[T]

// Kernel accumulates C += A * B for one tile.
type Kernel[T Number] = gemm.Kernel[T]

// GemmConfig controls tile sizes and scheduling of MatMul.
type GemmConfig = gemm.Config

// Matrix is a rank-2 layout expressed as a BLAS operand.
type Matrix = gemm.Matrix

// Errors.
var (
	ErrNotDense         = gemm.ErrNotDense
	ErrShapeMismatch    = gemm.ErrShapeMismatch
	ErrOverlappingTiles = gemm.ErrOverlappingTiles
)

// DefaultGemmConfig returns 32x32x32 tiles scheduled on all CPUs.
func DefaultGemmConfig() GemmConfig {
	return gemm.DefaultConfig()
}

// Lower expresses a rank-2 layout as a BLAS operand.
func Lower(l layout.Layout) (Matrix, error) {
	return gemm.Lower(l)
}

// MatMul computes c = a * b tile by tile. A nil kernel uses the strided
// reference kernel.
//
// Example:
//
//	cfg := tensor.DefaultGemmConfig()
//	cfg.TileM, cfg.TileN, cfg.TileK = 64, 64, 16
//	err := tensor.MatMul(ctx, a, b, c, cfg, tensor.BackendKernel[float32](tensor.Naive[float32]{}))
func MatMul[T Number](ctx context.Context, a, b, c View[T], cfg GemmConfig, kernel Kernel[T]) error {
	return gemm.Tiled(ctx, a, b, c, cfg, kernel)
}

// Dispatch computes c = a * b in a single call to be.
func Dispatch[T Number](be Backend[T], a, b, c View[T]) error {
	return gemm.Dispatch(be, a, b, c)
}

// BackendKernel adapts be into a per-tile Kernel.
func BackendKernel[T Number](be Backend[T]) Kernel[T] {
	return gemm.BackendKernel(be)
}

// Reference is the strided triple-loop Kernel.
func Reference[T Number](c, a, b View[T]) error {
	return gemm.Reference(c, a, b)
}
