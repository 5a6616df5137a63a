package gemm

import (
	"github.com/born-ml/cute/internal/view"
	"github.com/pkg/errors"
)

// Kernel accumulates C += A * B for one tile. a is m x k, b is k x n and c
// is m x n; each may have any rank-2 strided layout.
type Kernel[T Number] func(c, a, b view.View[T]) error

// Reference is a strided triple-loop Kernel. It accepts any layout whose
// modes each coalesce to a single stride, dense or not.
func Reference[T Number](c, a, b view.View[T]) error {
	m, k, ars, acs, err := strided(a.Layout())
	if err != nil {
		return errors.Wrap(err, "A")
	}
	kb, n, brs, bcs, err := strided(b.Layout())
	if err != nil {
		return errors.Wrap(err, "B")
	}
	mc, nc, crs, ccs, err := strided(c.Layout())
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

	ad, bd, cd := a.Data()[a.Base():], b.Data()[b.Base():], c.Data()[c.Base():]
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := cd[i*crs+j*ccs]
			for p := 0; p < k; p++ {
				sum += ad[i*ars+p*acs] * bd[p*brs+j*bcs]
			}
			cd[i*crs+j*ccs] = sum
		}
	}
	return nil
}
