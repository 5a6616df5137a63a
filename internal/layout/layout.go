// Package layout implements the shape-and-stride algebra: layouts map logical
// coordinates to memory offsets and can be composed, coalesced, complemented,
// sliced and divided into tiles.
//
// Logical linear indices are row-major throughout: the last leaf of a shape
// varies fastest. Where a shape is nested, a coordinate may address the nested
// mode either with a congruent sub-tuple or with a single integer that is
// decomposed row-major over the mode's leaves.
package layout

import (
	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
)

// Layout is an immutable (Shape, Stride) pair defining a function from a
// logical coordinate to a memory offset:
//
//	offset(coord) = sum_i coord[i] * stride[i]
//
// recursively over nested modes.
type Layout struct {
	shape  Shape
	stride Stride
}

// mode is a single flat (extent, stride) pair.
type mode struct {
	extent int
	stride int
}

// New pairs a shape with a congruent stride.
func New(shape Shape, stride Stride) (Layout, error) {
	if !shape.Congruent(stride.Tuple) {
		return Layout{}, errors.Wrapf(ErrArityMismatch, "stride %s is not congruent with shape %s", stride, shape)
	}
	return Layout{shape: shape, stride: stride}, nil
}

// Contiguous returns the compact layout of shape in the given order.
func Contiguous(shape Shape, major Major) Layout {
	return Layout{shape: shape, stride: CanonicalStride(shape, major)}
}

// RowMajorOf returns the compact row-major layout over extents.
func RowMajorOf(extents ...int) (Layout, error) {
	shape, err := NewShape(extents...)
	if err != nil {
		return Layout{}, err
	}
	return Contiguous(shape, RowMajor), nil
}

// ColMajorOf returns the compact column-major layout over extents.
func ColMajorOf(extents ...int) (Layout, error) {
	shape, err := NewShape(extents...)
	if err != nil {
		return Layout{}, err
	}
	return Contiguous(shape, ColMajor), nil
}

// fromModes builds a flat layout from modes.
func fromModes(modes []mode) Layout {
	extents := make([]int, len(modes))
	strides := make([]int, len(modes))
	for i, m := range modes {
		extents[i] = m.extent
		strides[i] = m.stride
	}
	return Layout{shape: Shape{tuple.Ints(extents...)}, stride: Stride{tuple.Ints(strides...)}}
}

// flatModes returns the leaf modes, outermost first.
func (l Layout) flatModes() []mode {
	extents := l.shape.Flatten()
	strides := l.stride.Flatten()
	modes := make([]mode, len(extents))
	for i := range extents {
		modes[i] = mode{extent: extents[i], stride: strides[i]}
	}
	return modes
}

// Shape returns the layout's shape.
func (l Layout) Shape() Shape {
	return l.shape
}

// Stride returns the layout's stride.
func (l Layout) Stride() Stride {
	return l.stride
}

// Rank returns the number of top-level modes.
func (l Layout) Rank() int {
	return l.shape.Rank()
}

// Size returns the number of logical elements.
func (l Layout) Size() int {
	return l.shape.Size()
}

// Cosize returns the span of offsets touched: 1 + sum((extent-1) * stride)
// over all leaves, or 0 for an empty layout.
func (l Layout) Cosize() int {
	if l.Size() == 0 {
		return 0
	}
	span := 1
	for _, m := range l.flatModes() {
		span += (m.extent - 1) * m.stride
	}
	return span
}

// FitsIn reports whether every offset of l addresses a buffer of length n.
func (l Layout) FitsIn(n int) bool {
	return l.Cosize() <= n
}

// Mode returns top-level mode i as a layout of its own.
func (l Layout) Mode(i int) (Layout, error) {
	s, err := l.shape.Get(i)
	if err != nil {
		return Layout{}, err
	}
	d := l.stride.At(i)
	return Layout{shape: Shape{s}, stride: Stride{d}}, nil
}

// Flat returns the layout with all nesting removed.
func (l Layout) Flat() Layout {
	return fromModes(l.flatModes())
}

// IsContiguous reports whether visiting logical indices in order touches
// consecutive offsets starting at 0.
func (l Layout) IsContiguous() bool {
	if l.Size() <= 1 {
		return true
	}
	c := Coalesce(l)
	return c.Rank() == 1 && c.stride.At(0).Value() == 1
}

// Equal reports structural equality of shape and stride.
func (l Layout) Equal(other Layout) bool {
	return l.shape.Equal(other.shape) && l.stride.Equal(other.stride)
}

// Equivalent reports whether a and b have the same size and map every
// logical index to the same offset, regardless of nesting.
func Equivalent(a, b Layout) bool {
	if a.Size() != b.Size() {
		return false
	}
	am, bm := a.flatModes(), b.flatModes()
	for i := 0; i < a.Size(); i++ {
		if offsetOfIndex(am, i) != offsetOfIndex(bm, i) {
			return false
		}
	}
	return true
}

// String formats the layout as shape:stride, e.g. (4,4):(4,1).
func (l Layout) String() string {
	return l.shape.String() + ":" + l.stride.String()
}

// Offset maps a coordinate to a memory offset.
func (l Layout) Offset(coord tuple.Tuple) (int, error) {
	leaves, err := leafCoords(l.shape.Tuple, coord)
	if err != nil {
		return 0, err
	}
	off := 0
	for i, d := range l.stride.Flatten() {
		off += leaves[i] * d
	}
	return off, nil
}

// OffsetOf maps a logical linear index to a memory offset.
func (l Layout) OffsetOf(index int) (int, error) {
	if index < 0 || index >= l.Size() {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, l.Size())
	}
	return offsetOfIndex(l.flatModes(), index), nil
}

// Coord returns the coordinate, congruent to the shape, of a logical index.
func (l Layout) Coord(index int) (tuple.Tuple, error) {
	if index < 0 || index >= l.Size() {
		return tuple.Tuple{}, errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, l.Size())
	}
	extents := l.shape.Flatten()
	coords := make([]int, len(extents))
	for i := len(extents) - 1; i >= 0; i-- {
		coords[i] = index % extents[i]
		index /= extents[i]
	}
	return l.shape.Unflatten(coords)
}

// Index returns the logical linear index of a coordinate.
func (l Layout) Index(coord tuple.Tuple) (int, error) {
	leaves, err := leafCoords(l.shape.Tuple, coord)
	if err != nil {
		return 0, err
	}
	idx := 0
	for i, e := range l.shape.Flatten() {
		idx = idx*e + leaves[i]
	}
	return idx, nil
}

// offsetOfIndex decomposes index row-major over modes. index must be in range.
func offsetOfIndex(modes []mode, index int) int {
	off := 0
	for i := len(modes) - 1; i >= 0; i-- {
		e := modes[i].extent
		off += (index % e) * modes[i].stride
		index /= e
	}
	return off
}

// leafCoords resolves a weakly congruent coordinate into one coordinate per
// leaf of shape.
func leafCoords(shape, coord tuple.Tuple) ([]int, error) {
	out := make([]int, 0, shape.Leaves())
	return appendLeafCoords(out, shape, coord)
}

func appendLeafCoords(out []int, shape, coord tuple.Tuple) ([]int, error) {
	if coord.IsLeaf() {
		c := coord.Value()
		if c >= shape.Product() {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "coordinate %d in mode %s", c, shape)
		}
		if shape.IsLeaf() {
			return append(out, c), nil
		}
		extents := shape.Flatten()
		start := len(out)
		out = append(out, extents...)
		for i := len(extents) - 1; i >= 0; i-- {
			out[start+i] = c % extents[i]
			c /= extents[i]
		}
		return out, nil
	}
	if shape.IsLeaf() || coord.Rank() != shape.Rank() {
		return nil, errors.Wrapf(ErrArityMismatch, "coordinate %s for shape %s", coord, shape)
	}
	var err error
	for i := 0; i < shape.Rank(); i++ {
		out, err = appendLeafCoords(out, shape.At(i), coord.At(i))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
