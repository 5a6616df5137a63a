// Package gemm drives matrix multiplication over layouts.
//
// It provides three pieces:
//   - Lower, which expresses a rank-2 layout as a BLAS operand (rows, cols,
//     leading dimension, transpose flag)
//   - Kernel, the per-tile contract C += A*B, with a strided Reference kernel
//     and an adapter for any BLAS-style Backend
//   - Tiled, which partitions C, A and B and runs one independent unit of
//     work per C tile through package parallel
//
// Example usage:
//
//	a := view.New(aLayout, aData) // (M,K)
//	b := view.New(bLayout, bData) // (K,N)
//	c := view.New(cLayout, cData) // (M,N), row-major
//	cfg := gemm.DefaultConfig()
//	if err := gemm.Tiled(ctx, a, b, c, cfg, nil); err != nil {
//	    return err
//	}
package gemm
