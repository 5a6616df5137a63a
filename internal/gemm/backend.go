package gemm

import (
	"github.com/born-ml/cute/internal/view"
	"github.com/pkg/errors"
)

// Number is the element type of a GEMM.
type Number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// Backend is a row-major BLAS GEMM:
//
//	C = alpha * op(A) * op(B) + beta * C
//
// where op(A) is m x k, op(B) is k x n and C is m x n with leading dimension
// ldc. Slices start at element (0,0) of each operand.
type Backend[T Number] interface {
	Gemm(ta, tb Transpose, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int) error
}

// Naive is a portable Backend written in Go.
type Naive[T Number] struct{}

// Gemm implements Backend.
func (Naive[T]) Gemm(ta, tb Transpose, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int) error {
	am := Matrix{Rows: m, Cols: k, LD: lda, Trans: ta}
	bm := Matrix{Rows: k, Cols: n, LD: ldb, Trans: tb}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for p := 0; p < k; p++ {
				sum += a[am.offset(i, p)] * b[bm.offset(p, j)]
			}
			idx := i*ldc + j
			if beta == 0 {
				c[idx] = alpha * sum
			} else {
				c[idx] = alpha*sum + beta*c[idx]
			}
		}
	}
	return nil
}

// operands checks that a (m x k), b (k x n) and c (m x n) conform and lie
// within their storage, and lowers them. c must lower to NoTrans.
func operands[T Number](a, b, c view.View[T]) (am, bm, cm Matrix, err error) {
	if am, err = Lower(a.Layout()); err != nil {
		return am, bm, cm, errors.Wrap(err, "lower A")
	}
	if bm, err = Lower(b.Layout()); err != nil {
		return am, bm, cm, errors.Wrap(err, "lower B")
	}
	if cm, err = Lower(c.Layout()); err != nil {
		return am, bm, cm, errors.Wrap(err, "lower C")
	}
	if cm.Trans != NoTrans {
		return am, bm, cm, errors.Wrapf(ErrNotDense, "C %s must be row-major", c.Layout())
	}
	if am.Cols != bm.Rows || cm.Rows != am.Rows || cm.Cols != bm.Cols {
		return am, bm, cm, errors.Wrapf(ErrShapeMismatch, "(%d,%d)x(%d,%d) into (%d,%d)",
			am.Rows, am.Cols, bm.Rows, bm.Cols, cm.Rows, cm.Cols)
	}
	for _, v := range []func() error{a.Validate, b.Validate, c.Validate} {
		if err := v(); err != nil {
			return am, bm, cm, err
		}
	}
	return am, bm, cm, nil
}

func dispatch[T Number](be Backend[T], a, b, c view.View[T], beta T) error {
	am, bm, cm, err := operands(a, b, c)
	if err != nil {
		return err
	}
	return be.Gemm(am.Trans, bm.Trans, am.Rows, bm.Cols, am.Cols,
		1, a.Data()[a.Base():], am.LD,
		b.Data()[b.Base():], bm.LD,
		beta, c.Data()[c.Base():], cm.LD)
}

// Dispatch lowers the views and computes C = A * B on be.
func Dispatch[T Number](be Backend[T], a, b, c view.View[T]) error {
	return dispatch(be, a, b, c, 0)
}

// BackendKernel adapts be into a Kernel that accumulates C += A * B.
func BackendKernel[T Number](be Backend[T]) Kernel[T] {
	return func(c, a, b view.View[T]) error {
		return dispatch(be, a, b, c, 1)
	}
}
