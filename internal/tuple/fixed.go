package tuple

import "github.com/pkg/errors"

// Array is the set of array types a Fixed tuple can be backed by.
// The arity of a Fixed tuple is part of its type.
type Array interface {
	~[1]int | ~[2]int | ~[3]int | ~[4]int | ~[5]int | ~[6]int | ~[7]int | ~[8]int
}

// Fixed is a flat tuple whose arity is fixed by its type parameter.
//
// Example:
//
//	f, err := tuple.NewFixed([3]int{4, 8, 2})
//	f.Rank()    // 3
//	f.Product() // 64
type Fixed[A Array] struct {
	a A
}

// NewFixed builds a Fixed tuple from an array literal.
func NewFixed[A Array](a A) (Fixed[A], error) {
	for i := 0; i < len(a); i++ {
		if a[i] < 0 {
			return Fixed[A]{}, errors.Wrapf(ErrNegativeValue, "element %d is %d", i, a[i])
		}
	}
	return Fixed[A]{a: a}, nil
}

// FixedFrom builds a Fixed tuple from a slice whose length must match the
// arity of A.
func FixedFrom[A Array](values []int) (Fixed[A], error) {
	var a A
	if len(values) != len(a) {
		return Fixed[A]{}, errors.Wrapf(ErrArityMismatch, "want %d elements, got %d", len(a), len(values))
	}
	for i := 0; i < len(a); i++ {
		a[i] = values[i]
	}
	return NewFixed(a)
}

// Rank returns the arity of A.
func (f Fixed[A]) Rank() int {
	return len(f.a)
}

// Get returns element i as a leaf.
func (f Fixed[A]) Get(i int) (Tuple, error) {
	if i < 0 || i >= len(f.a) {
		return Tuple{}, errors.Wrapf(ErrIndexOutOfRange, "element %d of rank-%d tuple", i, len(f.a))
	}
	return Int(f.a[i]), nil
}

// Value returns element i. Panics if i is out of range.
func (f Fixed[A]) Value(i int) int {
	return f.a[i]
}

// Product returns the product of all elements.
func (f Fixed[A]) Product() int {
	p := 1
	for i := 0; i < len(f.a); i++ {
		p *= f.a[i]
	}
	return p
}

// Array returns the backing array by value.
func (f Fixed[A]) Array() A {
	return f.a
}

// Tuple converts f to the variable-arity representation.
func (f Fixed[A]) Tuple() Tuple {
	elems := make([]Tuple, len(f.a))
	for i := 0; i < len(f.a); i++ {
		elems[i] = Tuple{value: f.a[i], leaf: true}
	}
	return Tuple{elems: elems}
}

// Equal reports structural equality with any Sequence.
func (f Fixed[A]) Equal(other Sequence) bool {
	return f.Tuple().Equal(other.Tuple())
}

// String implements fmt.Stringer.
func (f Fixed[A]) String() string {
	return f.Tuple().String()
}
