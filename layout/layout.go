// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layout provides the public API of the shape-and-stride algebra.
//
// The package exposes:
//   - Tuple: nested non-negative integer tuples, plus Fixed[A] for static arity
//   - Shape, Stride, Layout: offset functions from coordinates to storage
//   - Compose, Coalesce, Complement, Slice and the divide family
//   - Partition and Tile: equal-size tiling with a lazy tile sequence
//
// Logical indices are row-major throughout: the last dimension varies fastest.
//
// Example:
//
//	l, _ := layout.RowMajorOf(8, 8)          // (8,8):(8,1)
//	off, _ := l.Offset(layout.Ints(2, 3))     // 19
//	p, _ := layout.Partition(l, layout.MustShape(4, 4))
//	for coord, tile := range p.All() {
//	    fmt.Println(coord, tile.Offset, tile.Layout)
//	}
package layout

import (
	"github.com/born-ml/cute/internal/layout"
	"github.com/born-ml/cute/internal/tiler"
	"github.com/born-ml/cute/internal/tuple"
)

// Type aliases for public API

// Tuple is an immutable, possibly nested tuple of non-negative integers.
type Tuple = tuple.Tuple

// Sequence is implemented by both Tuple and Fixed.
type Sequence = tuple.Sequence

// Array constrains the static arities accepted by Fixed.
type Array = tuple.Array

// Fixed is a flat tuple whose arity is part of its type.
type Fixed[A Array] = tuple.Fixed[A]

// Shape is a tuple of extents.
type Shape = layout.Shape

// Stride is a tuple of strides congruent to a Shape.
type Stride = layout.Stride

// Major selects row-major or column-major canonical strides.
type Major = layout.Major

// Layout maps coordinates to storage offsets.
type Layout = layout.Layout

// Sel selects a fixed index or a whole mode when slicing.
type Sel = layout.Sel

// Tiling is a layout partitioned into equal tiles.
type Tiling = tiler.Partition

// Tile is one block of a Tiling.
type Tile = tiler.Tile

// Option configures a Tiling.
type Option = tiler.Option

// Stride orders.
const (
	RowMajor Major = layout.RowMajor
	ColMajor Major = layout.ColMajor
)

// Free keeps a mode when slicing.
var Free = layout.Free

// Errors.
var (
	ErrArityMismatch           = layout.ErrArityMismatch
	ErrIndexOutOfRange         = layout.ErrIndexOutOfRange
	ErrNegativeValue           = tuple.ErrNegativeValue
	ErrIncompatibleLayouts     = layout.ErrIncompatibleLayouts
	ErrNonComplementableLayout = layout.ErrNonComplementableLayout
	ErrNonDivisibleTiling      = layout.ErrNonDivisibleTiling
	ErrTileIndexOutOfRange     = tiler.ErrTileIndexOutOfRange
)

// Int returns a leaf tuple. It panics on a negative value.
func Int(v int) Tuple {
	return tuple.Int(v)
}

// Ints returns a flat tuple. It panics on a negative value.
func Ints(values ...int) Tuple {
	return tuple.Ints(values...)
}

// NewTuple builds a flat tuple, rejecting negative values.
func NewTuple(values ...int) (Tuple, error) {
	return tuple.New(values...)
}

// Nest builds a tuple from child tuples.
func Nest(children ...Tuple) Tuple {
	return tuple.Nest(children...)
}

// NewFixed builds a static-arity tuple.
func NewFixed[A Array](a A) (Fixed[A], error) {
	return tuple.NewFixed(a)
}

// FixedFrom builds a static-arity tuple from a slice whose length must
// match the arity of A.
func FixedFrom[A Array](values []int) (Fixed[A], error) {
	return tuple.FixedFrom[A](values)
}

// NewShape builds a flat shape.
func NewShape(extents ...int) (Shape, error) {
	return layout.NewShape(extents...)
}

// MustShape is like NewShape but panics on error.
func MustShape(extents ...int) Shape {
	s, err := layout.NewShape(extents...)
	if err != nil {
		panic(err)
	}
	return s
}

// ShapeOf wraps a tuple as a shape.
func ShapeOf(t Sequence) Shape {
	return layout.ShapeOf(t)
}

// NewStride builds a flat stride.
func NewStride(strides ...int) (Stride, error) {
	return layout.NewStride(strides...)
}

// StrideOf wraps a tuple as a stride.
func StrideOf(t Sequence) Stride {
	return layout.StrideOf(t)
}

// CanonicalStride derives the compact stride of shape.
func CanonicalStride(shape Shape, major Major) Stride {
	return layout.CanonicalStride(shape, major)
}

// New pairs a shape with a congruent stride.
func New(shape Shape, stride Stride) (Layout, error) {
	return layout.New(shape, stride)
}

// Contiguous returns the compact layout of shape.
func Contiguous(shape Shape, major Major) Layout {
	return layout.Contiguous(shape, major)
}

// RowMajorOf returns the compact row-major layout over extents.
func RowMajorOf(extents ...int) (Layout, error) {
	return layout.RowMajorOf(extents...)
}

// ColMajorOf returns the compact column-major layout over extents.
func ColMajorOf(extents ...int) (Layout, error) {
	return layout.ColMajorOf(extents...)
}

// At fixes a mode to index i when slicing.
func At(i int) Sel {
	return layout.At(i)
}

// Compose returns a∘b.
func Compose(a, b Layout) (Layout, error) {
	return layout.Compose(a, b)
}

// Coalesce merges contiguous modes of l.
func Coalesce(l Layout) Layout {
	return layout.Coalesce(l)
}

// Complement returns the layout covering what l leaves out of [0, cosize).
func Complement(l Layout, cosize int) (Layout, error) {
	return layout.Complement(l, cosize)
}

// Equivalent reports whether a and b map every logical index alike.
func Equivalent(a, b Layout) bool {
	return layout.Equivalent(a, b)
}

// LogicalDivide returns ((c0,t0),(c1,t1),...).
func LogicalDivide(l Layout, tile Shape) (Layout, error) {
	return layout.LogicalDivide(l, tile)
}

// ZippedDivide returns ((c0,c1,...),(t0,t1,...)).
func ZippedDivide(l Layout, tile Shape) (Layout, error) {
	return layout.ZippedDivide(l, tile)
}

// TiledDivide returns (c0,c1,...,(t0,t1,...)).
func TiledDivide(l Layout, tile Shape) (Layout, error) {
	return layout.TiledDivide(l, tile)
}

// FlatDivide returns (c0,c1,...,t0,t1,...).
func FlatDivide(l Layout, tile Shape) (Layout, error) {
	return layout.FlatDivide(l, tile)
}

// Partition tiles l by tile.
func Partition(l Layout, tile Shape, opts ...Option) (*Tiling, error) {
	return tiler.New(l, tile, opts...)
}

// WithOrder sets the tile traversal order of a Tiling.
func WithOrder(m Major) Option {
	return tiler.WithOrder(m)
}

// Disjoint reports whether two tiles share no offset.
func Disjoint(a, b Tile) bool {
	return tiler.Disjoint(a, b)
}
