// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/cute/internal/view"
	"github.com/born-ml/cute/layout"
	"github.com/x448/float16"
)

// Type aliases for public API

// View is a layout bound to a caller-owned slice of T.
//
// Example:
//
//	l, _ := layout.RowMajorOf(4, 6)
//	v := tensor.New(l, make([]float32, 24))
//	row, _ := v.Slice(layout.At(2), layout.Free) // base offset 12
type View[T any] = view.View[T]

// Tiled is a view partitioned into tiles.
type Tiled[T any] = view.Tiled[T]

// Float16 is an IEEE 754 half-precision value.
type Float16 = float16.Float16

// Errors.
var (
	ErrOutOfBounds  = view.ErrOutOfBounds
	ErrSizeMismatch = view.ErrSizeMismatch
)

// New binds l to data at base offset 0.
func New[T any](l layout.Layout, data []T) View[T] {
	return view.New(l, data)
}

// NewAt binds l to data with every offset shifted by base.
func NewAt[T any](l layout.Layout, data []T, base int) View[T] {
	return view.NewAt(l, data, base)
}

// Copy copies src into dst in logical order.
func Copy[T any](dst, src View[T]) error {
	return view.Copy(dst, src)
}

// Widen converts half-precision src into dst.
func Widen(dst View[float32], src View[Float16]) error {
	return view.Widen(dst, src)
}

// Narrow rounds src to half precision into dst.
func Narrow(dst View[Float16], src View[float32]) error {
	return view.Narrow(dst, src)
}
