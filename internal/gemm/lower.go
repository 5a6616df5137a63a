package gemm

import (
	"github.com/born-ml/cute/internal/layout"
	"github.com/pkg/errors"
)

// Transpose tells a BLAS backend how to read a matrix operand.
type Transpose int

// Transpose modes for row-major BLAS calls.
const (
	NoTrans Transpose = iota // Stored row-major: element (i,j) at i*LD + j.
	Trans                    // Stored column-major: element (i,j) at j*LD + i.
)

// String returns the BLAS letter for t.
func (t Transpose) String() string {
	if t == Trans {
		return "T"
	}
	return "N"
}

// Matrix is a rank-2 layout expressed in BLAS terms.
type Matrix struct {
	Rows  int
	Cols  int
	LD    int // Leading dimension.
	Trans Transpose
}

// strided reduces a rank-2 layout to (rows, cols, row stride, col stride).
// Each mode must coalesce to a single strided run.
func strided(l layout.Layout) (rows, cols, rs, cs int, err error) {
	if l.Rank() != 2 {
		return 0, 0, 0, 0, errors.Wrapf(ErrNotDense, "rank-%d layout %s", l.Rank(), l)
	}
	var ext, str [2]int
	for i := range ext {
		m, err := l.Mode(i)
		if err != nil {
			return 0, 0, 0, 0, err
		}
		c := layout.Coalesce(m)
		if c.Rank() != 1 {
			return 0, 0, 0, 0, errors.Wrapf(ErrNotDense, "mode %d of %s is not a single stride", i, l)
		}
		ext[i] = c.Size()
		str[i] = c.Stride().At(0).Value()
	}
	return ext[0], ext[1], str[0], str[1], nil
}

// Lower expresses a rank-2 layout as a BLAS matrix operand. A layout with
// unit column stride lowers to NoTrans with LD equal to the row stride; unit
// row stride lowers to Trans with LD equal to the column stride. Anything
// else, including overlapping rows or columns, returns ErrNotDense.
func Lower(l layout.Layout) (Matrix, error) {
	rows, cols, rs, cs, err := strided(l)
	if err != nil {
		return Matrix{}, err
	}
	// The stride of a unit extent is never applied.
	if cols == 1 {
		cs = 1
	}
	if rows == 1 {
		if cs == 1 {
			rs = max(cols, 1)
		} else {
			rs = 1
		}
	}
	switch {
	case cs == 1 && rs >= cols:
		return Matrix{Rows: rows, Cols: cols, LD: max(rs, 1), Trans: NoTrans}, nil
	case rs == 1 && cs >= rows:
		return Matrix{Rows: rows, Cols: cols, LD: max(cs, 1), Trans: Trans}, nil
	}
	return Matrix{}, errors.Wrapf(ErrNotDense, "%s has strides (%d,%d)", l, rs, cs)
}

// offset returns the storage offset of element (i,j).
func (m Matrix) offset(i, j int) int {
	if m.Trans == Trans {
		return j*m.LD + i
	}
	return i*m.LD + j
}
