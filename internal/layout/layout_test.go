package layout

import (
	"testing"

	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRowMajor(t *testing.T, extents ...int) Layout {
	t.Helper()
	l, err := RowMajorOf(extents...)
	require.NoError(t, err)
	return l
}

func mustLayout(t *testing.T, shape, stride tuple.Tuple) Layout {
	t.Helper()
	l, err := New(ShapeOf(shape), StrideOf(stride))
	require.NoError(t, err)
	return l
}

// offsets enumerates l's offsets in logical order.
func offsets(t *testing.T, l Layout) []int {
	t.Helper()
	out := make([]int, l.Size())
	for i := range out {
		off, err := l.OffsetOf(i)
		require.NoError(t, err)
		out[i] = off
	}
	return out
}

func TestCanonicalStride(t *testing.T) {
	tests := []struct {
		name  string
		shape tuple.Tuple
		major Major
		want  string
	}{
		{name: "row-major 2D", shape: tuple.Ints(4, 4), major: RowMajor, want: "(4,1)"},
		{name: "col-major 2D", shape: tuple.Ints(4, 4), major: ColMajor, want: "(1,4)"},
		{name: "row-major 3D", shape: tuple.Ints(2, 3, 4), major: RowMajor, want: "(12,4,1)"},
		{name: "col-major 3D", shape: tuple.Ints(2, 3, 4), major: ColMajor, want: "(1,2,6)"},
		{name: "row-major nested", shape: tuple.Nest(tuple.Int(2), tuple.Ints(3, 4)), major: RowMajor, want: "(12,(4,1))"},
		{name: "col-major nested", shape: tuple.Nest(tuple.Int(2), tuple.Ints(3, 4)), major: ColMajor, want: "(1,(2,6))"},
		{name: "scalar", shape: tuple.Tuple{}, major: RowMajor, want: "()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalStride(ShapeOf(tt.shape), tt.major)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestLayout_SizeMatchesShapeProduct(t *testing.T) {
	shapes := []tuple.Tuple{
		tuple.Ints(4, 4),
		tuple.Ints(2, 3, 5),
		tuple.Nest(tuple.Int(2), tuple.Ints(3, 4)),
		tuple.Ints(7),
		tuple.Ints(3, 0),
	}
	for _, s := range shapes {
		for _, m := range []Major{RowMajor, ColMajor} {
			l := Contiguous(ShapeOf(s), m)
			assert.Equal(t, s.Product(), l.Size(), "%s %s", s, m)
		}
	}

	f, err := tuple.NewFixed([3]int{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, f.Product(), Contiguous(ShapeOf(f), RowMajor).Size())
}

func TestLayout_Scenario4x4(t *testing.T) {
	l := mustRowMajor(t, 4, 4)

	assert.Equal(t, "(4,4):(4,1)", l.String())
	assert.Equal(t, 16, l.Size())
	assert.Equal(t, 16, l.Cosize())

	off, err := l.Offset(tuple.Ints(2, 3))
	require.NoError(t, err)
	assert.Equal(t, 11, off)
}

func TestLayout_RowMajorMatchesNestedLoops(t *testing.T) {
	l := mustRowMajor(t, 3, 4, 5)

	want := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 5; k++ {
				off, err := l.Offset(tuple.Ints(i, j, k))
				require.NoError(t, err)
				assert.Equal(t, want, off)

				byIndex, err := l.OffsetOf(want)
				require.NoError(t, err)
				assert.Equal(t, want, byIndex)
				want++
			}
		}
	}
}

func TestLayout_New_Incongruent(t *testing.T) {
	_, err := New(ShapeOf(tuple.Ints(4, 4)), StrideOf(tuple.Ints(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArityMismatch))

	_, err = New(ShapeOf(tuple.Nest(tuple.Int(2), tuple.Ints(3, 4))), StrideOf(tuple.Ints(12, 4, 1)))
	assert.True(t, errors.Is(err, ErrArityMismatch))
}

func TestLayout_Cosize(t *testing.T) {
	tests := []struct {
		name   string
		shape  tuple.Tuple
		stride tuple.Tuple
		want   int
	}{
		{name: "compact", shape: tuple.Ints(4, 4), stride: tuple.Ints(4, 1), want: 16},
		{name: "padded rows", shape: tuple.Ints(4, 4), stride: tuple.Ints(8, 1), want: 28},
		{name: "broadcast", shape: tuple.Ints(4, 4), stride: tuple.Ints(0, 1), want: 4},
		{name: "empty", shape: tuple.Ints(4, 0), stride: tuple.Ints(1, 4), want: 0},
		{name: "nested", shape: tuple.Nest(tuple.Int(2), tuple.Ints(3, 4)), stride: tuple.Nest(tuple.Int(12), tuple.Ints(4, 1)), want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLayout(t, tt.shape, tt.stride)
			assert.Equal(t, tt.want, l.Cosize())
			assert.True(t, l.FitsIn(tt.want))
			if tt.want > 0 {
				assert.False(t, l.FitsIn(tt.want-1))
			}
		})
	}
}

func TestLayout_NestedCoordinates(t *testing.T) {
	shape := tuple.Nest(tuple.Int(2), tuple.Ints(3, 4))
	l := Contiguous(ShapeOf(shape), RowMajor)

	full, err := l.Offset(tuple.Nest(tuple.Int(1), tuple.Ints(2, 3)))
	require.NoError(t, err)
	assert.Equal(t, 12+8+3, full)

	// Integer 11 inside the (3,4) mode is (2,3).
	weak, err := l.Offset(tuple.Ints(1, 11))
	require.NoError(t, err)
	assert.Equal(t, full, weak)

	linear, err := l.Offset(tuple.Int(23))
	require.NoError(t, err)
	assert.Equal(t, full, linear)

	_, err = l.Offset(tuple.Ints(1, 12))
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	_, err = l.Offset(tuple.Ints(1, 2, 3))
	assert.True(t, errors.Is(err, ErrArityMismatch))
}

func TestLayout_CoordIndexRoundTrip(t *testing.T) {
	layouts := []Layout{
		mustRowMajor(t, 3, 5),
		Contiguous(ShapeOf(tuple.Nest(tuple.Int(2), tuple.Ints(3, 4))), ColMajor),
		mustLayout(t, tuple.Ints(4, 3), tuple.Ints(1, 7)),
	}

	for _, l := range layouts {
		for i := 0; i < l.Size(); i++ {
			c, err := l.Coord(i)
			require.NoError(t, err)
			assert.True(t, c.Congruent(l.Shape().Tuple), "coord %s for %s", c, l)

			idx, err := l.Index(c)
			require.NoError(t, err)
			assert.Equal(t, i, idx)

			byCoord, err := l.Offset(c)
			require.NoError(t, err)
			byIndex, err := l.OffsetOf(i)
			require.NoError(t, err)
			assert.Equal(t, byIndex, byCoord)
		}
	}

	l := mustRowMajor(t, 3, 5)
	_, err := l.Coord(15)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = l.OffsetOf(-1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestLayout_Mode(t *testing.T) {
	l := Contiguous(ShapeOf(tuple.Nest(tuple.Int(2), tuple.Ints(3, 4))), RowMajor)

	m, err := l.Mode(1)
	require.NoError(t, err)
	assert.Equal(t, "(3,4):(4,1)", m.String())

	_, err = l.Mode(2)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestLayout_IsContiguous(t *testing.T) {
	assert.True(t, mustRowMajor(t, 4, 4).IsContiguous())
	assert.True(t, Contiguous(ShapeOf(tuple.Nest(tuple.Int(2), tuple.Ints(3, 4))), RowMajor).IsContiguous())

	col, err := ColMajorOf(4, 4)
	require.NoError(t, err)
	assert.False(t, col.IsContiguous())

	assert.False(t, mustLayout(t, tuple.Ints(4, 4), tuple.Ints(8, 1)).IsContiguous())
}

func TestEquivalent(t *testing.T) {
	flat := mustRowMajor(t, 2, 3, 4)
	nested := Contiguous(ShapeOf(tuple.Nest(tuple.Int(2), tuple.Ints(3, 4))), RowMajor)
	col, err := ColMajorOf(2, 3, 4)
	require.NoError(t, err)

	assert.True(t, Equivalent(flat, nested))
	assert.False(t, flat.Equal(nested))
	assert.False(t, Equivalent(flat, col))
}
