package tuple

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	f, err := NewFixed([3]int{4, 8, 2})
	require.NoError(t, err)

	assert.Equal(t, 3, f.Rank())
	assert.Equal(t, 64, f.Product())
	assert.Equal(t, 8, f.Value(1))
	assert.Equal(t, "(4,8,2)", f.String())

	e, err := f.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Value())

	_, err = f.Get(3)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestFixed_Negative(t *testing.T) {
	_, err := NewFixed([2]int{1, -1})
	assert.True(t, errors.Is(err, ErrNegativeValue))
}

func TestFixedFrom(t *testing.T) {
	f, err := FixedFrom[[2]int]([]int{5, 6})
	require.NoError(t, err)
	assert.Equal(t, [2]int{5, 6}, f.Array())

	_, err = FixedFrom[[2]int]([]int{5, 6, 7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArityMismatch))
}

// Both representations must agree through the shared Sequence capability set.
func TestSequence_StaticAndDynamicAgree(t *testing.T) {
	f, err := NewFixed([4]int{2, 3, 5, 7})
	require.NoError(t, err)
	d := Ints(2, 3, 5, 7)

	seqs := []Sequence{f, d}
	for _, s := range seqs {
		assert.Equal(t, 4, s.Rank())
		assert.Equal(t, 210, s.Product())
		e, err := s.Get(3)
		require.NoError(t, err)
		assert.Equal(t, 7, e.Value())
	}

	assert.True(t, f.Equal(d))
	assert.True(t, d.Equal(f.Tuple()))
}

func BenchmarkProduct(b *testing.B) {
	f, _ := NewFixed([4]int{2, 3, 5, 7})
	d := Ints(2, 3, 5, 7)

	b.Run("fixed", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = f.Product()
		}
	})

	b.Run("dynamic", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = d.Product()
		}
	})
}
