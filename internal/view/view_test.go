package view

import (
	"testing"

	"github.com/born-ml/cute/internal/layout"
	"github.com/born-ml/cute/internal/tiler"
	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func seq(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

func rowMajor(t *testing.T, extents ...int) layout.Layout {
	t.Helper()
	l, err := layout.RowMajorOf(extents...)
	require.NoError(t, err)
	return l
}

func shape(t *testing.T, extents ...int) layout.Shape {
	t.Helper()
	s, err := layout.NewShape(extents...)
	require.NoError(t, err)
	return s
}

func TestView_Access(t *testing.T) {
	data := seq(16)
	v := New(rowMajor(t, 4, 4), data)
	require.NoError(t, v.Validate())

	x, err := v.Load(tuple.Ints(2, 3))
	require.NoError(t, err)
	assert.Equal(t, float32(11), x)

	require.NoError(t, v.Store(tuple.Ints(0, 1), 100))
	assert.Equal(t, float32(100), data[1], "store must write through to storage")

	p, err := v.AtIndex(15)
	require.NoError(t, err)
	*p = -1
	assert.Equal(t, float32(-1), data[15])

	_, err = v.At(tuple.Ints(4, 0))
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = v.At(tuple.Ints(1))
	assert.True(t, errors.Is(err, ErrArityMismatch))
}

func TestView_OutOfBounds(t *testing.T) {
	padded, err := layout.New(layout.ShapeOf(tuple.Ints(4, 4)), layout.StrideOf(tuple.Ints(8, 1)))
	require.NoError(t, err)

	tests := []struct {
		name string
		v    View[float32]
		ok   bool
	}{
		{name: "fits", v: New(padded, make([]float32, 28)), ok: true},
		{name: "short storage", v: New(padded, make([]float32, 27))},
		{name: "base pushes past end", v: NewAt(padded, make([]float32, 28), 1)},
		{name: "negative base", v: NewAt(padded, make([]float32, 64), -1)},
		{name: "empty layout", v: New(rowMajor(t, 0, 4), []float32(nil)), ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)
		})
	}

	// Unvalidated views still bound-check each access.
	v := New(padded, make([]float32, 20))
	_, err = v.At(tuple.Ints(2, 3))
	assert.NoError(t, err)
	_, err = v.At(tuple.Ints(3, 3))
	assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)
}

func TestView_Slice(t *testing.T) {
	data := seq(24)
	v := New(rowMajor(t, 4, 6), data)

	row, err := v.Slice(layout.At(2), layout.Free)
	require.NoError(t, err)
	assert.Equal(t, 12, row.Base())
	x, err := row.Load(tuple.Ints(5))
	require.NoError(t, err)
	assert.Equal(t, float32(17), x)

	col, err := v.Slice(layout.Free, layout.At(1))
	require.NoError(t, err)
	var got []float32
	for _, p := range col.All() {
		got = append(got, *p)
	}
	assert.Equal(t, []float32{1, 7, 13, 19}, got)

	require.NoError(t, col.Fill(0))
	assert.Equal(t, float32(0), data[13])
	assert.Equal(t, float32(12), data[12])
}

func TestView_Tile(t *testing.T) {
	data := seq(64)
	v := New(rowMajor(t, 8, 8), data)

	tiled, err := v.Tile(shape(t, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, tiled.NumTiles())

	tv, err := tiled.TileAt(tuple.Ints(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 36, tv.Base())
	var got []float32
	for _, p := range tv.All() {
		got = append(got, *p)
	}
	assert.Equal(t, []float32{36, 37, 38, 39, 44, 45, 46, 47, 52, 53, 54, 55, 60, 61, 62, 63}, got)

	_, err = tiled.TileAt(tuple.Ints(2, 0))
	assert.True(t, errors.Is(err, tiler.ErrTileIndexOutOfRange))

	byIndex, err := tiled.Index(3)
	require.NoError(t, err)
	assert.Equal(t, tv.Base(), byIndex.Base())

	// Writing through every tile view touches each element exactly once.
	for _, tv := range tiled.Views() {
		for _, p := range tv.All() {
			*p += 1000
		}
	}
	for i, x := range data {
		assert.Equal(t, float32(i+1000), x, "element %d", i)
	}

	_, err = v.TileViews(shape(t, 3, 4))
	assert.True(t, errors.Is(err, tiler.ErrNonDivisibleTiling))
}

func TestView_TileOfSlice(t *testing.T) {
	data := seq(2 * 4 * 4)
	v := New(rowMajor(t, 2, 4, 4), data)

	plane, err := v.Slice(layout.At(1), layout.Free, layout.Free)
	require.NoError(t, err)
	views, err := plane.TileViews(shape(t, 2, 2), tiler.WithOrder(layout.ColMajor))
	require.NoError(t, err)
	require.Len(t, views, 4)

	// Column-major order: (0,0), (1,0), (0,1), (1,1).
	bases := make([]int, len(views))
	for i, tv := range views {
		bases[i] = tv.Base()
	}
	assert.Equal(t, []int{16, 24, 18, 26}, bases)
}

func TestCopy(t *testing.T) {
	src := New(rowMajor(t, 3, 4), seq(12))

	t.Run("contiguous", func(t *testing.T) {
		dst := New(rowMajor(t, 3, 4), make([]float32, 12))
		require.NoError(t, Copy(dst, src))
		assert.Equal(t, src.Data(), dst.Data())
	})

	t.Run("transpose into col-major", func(t *testing.T) {
		col, err := layout.ColMajorOf(3, 4)
		require.NoError(t, err)
		dst := New(col, make([]float32, 12))
		require.NoError(t, Copy(dst, src))
		for i := 0; i < 3; i++ {
			for j := 0; j < 4; j++ {
				x, err := dst.Load(tuple.Ints(i, j))
				require.NoError(t, err)
				assert.Equal(t, float32(i*4+j), x)
			}
		}
		assert.Equal(t, float32(4), dst.Data()[1])
	})

	t.Run("into a tile", func(t *testing.T) {
		big := New(rowMajor(t, 6, 8), make([]float32, 48))
		tiled, err := big.Tile(shape(t, 3, 4))
		require.NoError(t, err)
		tv, err := tiled.TileAt(tuple.Ints(1, 1))
		require.NoError(t, err)
		require.NoError(t, Copy(tv, src))
		assert.Equal(t, float32(1), big.Data()[3*8+5])
		assert.Equal(t, float32(4), big.Data()[4*8+4])
		assert.Equal(t, float32(11), big.Data()[5*8+7])
	})

	t.Run("size mismatch", func(t *testing.T) {
		dst := New(rowMajor(t, 4, 4), make([]float32, 16))
		assert.True(t, errors.Is(Copy(dst, src), ErrSizeMismatch))
	})

	t.Run("short destination", func(t *testing.T) {
		dst := New(rowMajor(t, 3, 4), make([]float32, 11))
		assert.True(t, errors.Is(Copy(dst, src), ErrOutOfBounds))
	})
}

func TestWidenNarrow(t *testing.T) {
	values := []float32{0, 1, -2.5, 0.125, 65504}
	l := rowMajor(t, len(values))

	half := New(l, make([]float16.Float16, len(values)))
	require.NoError(t, Narrow(half, New(l, values)))

	back := New(l, make([]float32, len(values)))
	require.NoError(t, Widen(back, half))
	assert.Equal(t, values, back.Data())

	short := New(rowMajor(t, 2), make([]float32, 2))
	assert.True(t, errors.Is(Widen(short, half), ErrSizeMismatch))
}

func BenchmarkCopy(b *testing.B) {
	l, err := layout.RowMajorOf(256, 256)
	require.NoError(b, err)
	col, err := layout.ColMajorOf(256, 256)
	require.NoError(b, err)
	data := make([]float32, 256*256)
	src := New(l, data)

	b.Run("contiguous", func(b *testing.B) {
		dst := New(l, make([]float32, len(data)))
		for i := 0; i < b.N; i++ {
			_ = Copy(dst, src)
		}
	})
	b.Run("transpose", func(b *testing.B) {
		dst := New(col, make([]float32, len(data)))
		for i := 0; i < b.N; i++ {
			_ = Copy(dst, src)
		}
	})
}
