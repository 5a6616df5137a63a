package view

import (
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Copy copies src into dst element by element in logical order. Both views
// must have the same size and lie within their storage. Layouts may differ:
// copying between a row-major and a column-major view transposes.
func Copy[T any](dst, src View[T]) error {
	if err := checkPair(dst.layout.Size(), src.layout.Size(), dst.Validate, src.Validate); err != nil {
		return err
	}
	n := src.layout.Size()
	if dst.layout.IsContiguous() && src.layout.IsContiguous() {
		copy(dst.data[dst.base:dst.base+n], src.data[src.base:src.base+n])
		return nil
	}
	return convert(dst, src, func(x T) T { return x })
}

// Widen converts half-precision src into dst.
func Widen(dst View[float32], src View[float16.Float16]) error {
	if err := checkPair(dst.layout.Size(), src.layout.Size(), dst.Validate, src.Validate); err != nil {
		return err
	}
	return convert(dst, src, float16.Float16.Float32)
}

// Narrow rounds src to half precision into dst.
func Narrow(dst View[float16.Float16], src View[float32]) error {
	if err := checkPair(dst.layout.Size(), src.layout.Size(), dst.Validate, src.Validate); err != nil {
		return err
	}
	return convert(dst, src, float16.Fromfloat32)
}

func checkPair(dstSize, srcSize int, validate ...func() error) error {
	if dstSize != srcSize {
		return errors.Wrapf(ErrSizeMismatch, "copy %d elements into %d", srcSize, dstSize)
	}
	for _, f := range validate {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// convert walks both views in logical order. Both must be validated.
func convert[D, S any](dst View[D], src View[S], f func(S) D) error {
	for i := 0; i < src.layout.Size(); i++ {
		so, err := src.layout.OffsetOf(i)
		if err != nil {
			return err
		}
		do, err := dst.layout.OffsetOf(i)
		if err != nil {
			return err
		}
		dst.data[dst.base+do] = f(src.data[src.base+so])
	}
	return nil
}
