// Package view binds layouts to caller-owned storage.
//
// A View never owns or copies its storage: reads and writes through a view
// go straight to the backing slice, and the slice must stay alive for as
// long as any view over it is in use. Views derived by slicing or tiling
// share the same backing slice with an adjusted base offset.
package view

import (
	"iter"

	"github.com/born-ml/cute/internal/layout"
	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
)

// View is a layout over a slice of elements starting at a base offset.
type View[T any] struct {
	layout layout.Layout
	data   []T
	base   int
}

// New binds l to data at base offset 0. Bounds are not checked; call
// Validate once before using unchecked access paths.
func New[T any](l layout.Layout, data []T) View[T] {
	return View[T]{layout: l, data: data}
}

// NewAt binds l to data with every offset shifted by base.
func NewAt[T any](l layout.Layout, data []T, base int) View[T] {
	return View[T]{layout: l, data: data, base: base}
}

// Layout returns the view's layout.
func (v View[T]) Layout() layout.Layout {
	return v.layout
}

// Base returns the offset of the view's origin in Data.
func (v View[T]) Base() int {
	return v.base
}

// Data returns the backing slice.
func (v View[T]) Data() []T {
	return v.data
}

// Size returns the number of logical elements.
func (v View[T]) Size() int {
	return v.layout.Size()
}

// Validate checks that every offset of the view lies inside Data.
func (v View[T]) Validate() error {
	if v.base < 0 || v.base+v.layout.Cosize() > len(v.data) {
		return errors.Wrapf(ErrOutOfBounds, "layout %s at base %d over %d elements", v.layout, v.base, len(v.data))
	}
	return nil
}

func (v View[T]) element(off int) (*T, error) {
	p := v.base + off
	if p < 0 || p >= len(v.data) {
		return nil, errors.Wrapf(ErrOutOfBounds, "offset %d over %d elements", p, len(v.data))
	}
	return &v.data[p], nil
}

// At returns a pointer to the element at coord.
func (v View[T]) At(coord tuple.Tuple) (*T, error) {
	off, err := v.layout.Offset(coord)
	if err != nil {
		return nil, err
	}
	return v.element(off)
}

// AtIndex returns a pointer to the element at logical index i.
func (v View[T]) AtIndex(i int) (*T, error) {
	off, err := v.layout.OffsetOf(i)
	if err != nil {
		return nil, err
	}
	return v.element(off)
}

// Load reads the element at coord.
func (v View[T]) Load(coord tuple.Tuple) (T, error) {
	p, err := v.At(coord)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Store writes x to the element at coord.
func (v View[T]) Store(coord tuple.Tuple, x T) error {
	p, err := v.At(coord)
	if err != nil {
		return err
	}
	*p = x
	return nil
}

// Slice fixes the selected modes and returns a lower-rank view over the same
// storage.
func (v View[T]) Slice(sel ...layout.Sel) (View[T], error) {
	l, off, err := v.layout.Slice(sel...)
	if err != nil {
		return View[T]{}, err
	}
	return View[T]{layout: l, data: v.data, base: v.base + off}, nil
}

// All yields each logical index with a pointer to its element. It stops at
// the first offset outside Data.
func (v View[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.layout.Size(); i++ {
			p, err := v.AtIndex(i)
			if err != nil {
				return
			}
			if !yield(i, p) {
				return
			}
		}
	}
}

// Fill stores x into every element of the view.
func (v View[T]) Fill(x T) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.layout.IsContiguous() {
		s := v.data[v.base : v.base+v.layout.Size()]
		for i := range s {
			s[i] = x
		}
		return nil
	}
	for _, p := range v.All() {
		*p = x
	}
	return nil
}
