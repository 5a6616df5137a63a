package layout

import (
	"github.com/born-ml/cute/internal/tuple"
)

// Major selects the canonical stride order.
type Major int

// Supported stride orders.
const (
	RowMajor Major = iota // Last dimension varies fastest.
	ColMajor              // First dimension varies fastest.
)

// String returns a human-readable order name.
func (m Major) String() string {
	switch m {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return "unknown"
	}
}

// Shape is a tuple of per-dimension extents. Extent 0 denotes an empty dimension.
type Shape struct {
	tuple.Tuple
}

// NewShape builds a flat shape from extents.
func NewShape(extents ...int) (Shape, error) {
	t, err := tuple.New(extents...)
	if err != nil {
		return Shape{}, err
	}
	return Shape{t}, nil
}

// ShapeOf wraps an existing (possibly nested) tuple as a shape.
func ShapeOf(t tuple.Sequence) Shape {
	return Shape{t.Tuple()}
}

// Size returns the total element count: the product of all leaf extents.
func (s Shape) Size() int {
	return s.Product()
}

// Equal reports structural equality.
func (s Shape) Equal(other Shape) bool {
	return s.Tuple.Equal(other.Tuple)
}

// Stride is a tuple of per-dimension strides in elements, congruent to a Shape.
// A stride of 0 broadcasts the dimension.
type Stride struct {
	tuple.Tuple
}

// NewStride builds a flat stride from explicit values.
func NewStride(strides ...int) (Stride, error) {
	t, err := tuple.New(strides...)
	if err != nil {
		return Stride{}, err
	}
	return Stride{t}, nil
}

// StrideOf wraps an existing (possibly nested) tuple as a stride.
func StrideOf(t tuple.Sequence) Stride {
	return Stride{t.Tuple()}
}

// Equal reports structural equality.
func (d Stride) Equal(other Stride) bool {
	return d.Tuple.Equal(other.Tuple)
}

// CanonicalStride derives the compact stride for shape.
// Nested shapes get hierarchical strides: row-major (2,(3,4)) yields (12,(4,1)).
func CanonicalStride(shape Shape, major Major) Stride {
	extents := shape.Flatten()
	strides := make([]int, len(extents))
	acc := 1
	if major == ColMajor {
		for i := range extents {
			strides[i] = acc
			acc *= extents[i]
		}
	} else {
		for i := len(extents) - 1; i >= 0; i-- {
			strides[i] = acc
			acc *= extents[i]
		}
	}
	// Leaf count and non-negativity hold by construction.
	t, _ := shape.Unflatten(strides)
	return Stride{t}
}
