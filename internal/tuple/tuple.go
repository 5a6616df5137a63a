// Package tuple provides the hierarchical integer tuples that shapes, strides and
// coordinates are built from.
package tuple

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Sequence is the capability set shared by variable-arity tuples (Tuple) and
// fixed-arity tuples (Fixed). Algebra code is written once against Tuple; a
// Sequence converts to it through Tuple().
type Sequence interface {
	Rank() int
	Get(i int) (Tuple, error)
	Product() int
	Tuple() Tuple
}

// Tuple is an immutable ordered sequence of non-negative integers where each
// element is either a leaf integer or a nested Tuple.
//
// The zero value is the empty tuple. A leaf has rank 1 and Get(0) returns the
// leaf itself, so integers and rank-1 tuples can be used interchangeably where
// only the rank and the product matter.
type Tuple struct {
	value int
	elems []Tuple
	leaf  bool
}

// Int returns a leaf tuple holding v.
// Panics if v is negative; use New for unchecked input.
func Int(v int) Tuple {
	if v < 0 {
		panic("tuple: negative leaf value " + strconv.Itoa(v))
	}
	return Tuple{value: v, leaf: true}
}

// New builds a flat tuple whose arity is the length of values.
func New(values ...int) (Tuple, error) {
	elems := make([]Tuple, len(values))
	for i, v := range values {
		if v < 0 {
			return Tuple{}, errors.Wrapf(ErrNegativeValue, "element %d is %d", i, v)
		}
		elems[i] = Tuple{value: v, leaf: true}
	}
	return Tuple{elems: elems}, nil
}

// Must is a helper that wraps a call returning (Tuple, error) and panics if the
// error is non-nil. It is intended for literals in tests and examples.
func Must(t Tuple, err error) Tuple {
	if err != nil {
		panic(err)
	}
	return t
}

// Ints builds a flat tuple from literal values. Panics on negative input.
func Ints(values ...int) Tuple {
	return Must(New(values...))
}

// WithRank builds a flat tuple whose arity must equal rank.
func WithRank(rank int, values ...int) (Tuple, error) {
	if len(values) != rank {
		return Tuple{}, errors.Wrapf(ErrArityMismatch, "want %d elements, got %d", rank, len(values))
	}
	return New(values...)
}

// Nest builds a tuple from child tuples. The children are copied.
func Nest(children ...Tuple) Tuple {
	elems := make([]Tuple, len(children))
	copy(elems, children)
	return Tuple{elems: elems}
}

// IsLeaf reports whether t is a single integer.
func (t Tuple) IsLeaf() bool {
	return t.leaf
}

// Value returns the integer held by a leaf, or 0 for a non-leaf tuple.
func (t Tuple) Value() int {
	return t.value
}

// Rank returns the number of top-level elements.
func (t Tuple) Rank() int {
	if t.leaf {
		return 1
	}
	return len(t.elems)
}

// Get returns element i.
func (t Tuple) Get(i int) (Tuple, error) {
	if i < 0 || i >= t.Rank() {
		return Tuple{}, errors.Wrapf(ErrIndexOutOfRange, "element %d of rank-%d tuple", i, t.Rank())
	}
	if t.leaf {
		return t, nil
	}
	return t.elems[i], nil
}

// At returns element i and panics when i is out of range.
// Used internally once ranks have been validated.
func (t Tuple) At(i int) Tuple {
	e, err := t.Get(i)
	if err != nil {
		panic(err)
	}
	return e
}

// Elements returns a copy of the top-level elements.
// A leaf returns itself as its only element.
func (t Tuple) Elements() []Tuple {
	if t.leaf {
		return []Tuple{t}
	}
	out := make([]Tuple, len(t.elems))
	copy(out, t.elems)
	return out
}

// Product returns the product of all leaves. The empty tuple has product 1.
func (t Tuple) Product() int {
	if t.leaf {
		return t.value
	}
	p := 1
	for _, e := range t.elems {
		p *= e.Product()
	}
	return p
}

// Sum returns the sum of all leaves.
func (t Tuple) Sum() int {
	if t.leaf {
		return t.value
	}
	s := 0
	for _, e := range t.elems {
		s += e.Sum()
	}
	return s
}

// Tuple implements Sequence.
func (t Tuple) Tuple() Tuple {
	return t
}

// Equal reports structural equality: same nesting and same leaves.
func (t Tuple) Equal(other Tuple) bool {
	if t.leaf != other.leaf {
		return false
	}
	if t.leaf {
		return t.value == other.value
	}
	if len(t.elems) != len(other.elems) {
		return false
	}
	for i := range t.elems {
		if !t.elems[i].Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// Congruent reports whether t and other have the same nesting structure,
// ignoring leaf values.
func (t Tuple) Congruent(other Tuple) bool {
	if t.leaf || other.leaf {
		return t.leaf == other.leaf
	}
	if len(t.elems) != len(other.elems) {
		return false
	}
	for i := range t.elems {
		if !t.elems[i].Congruent(other.elems[i]) {
			return false
		}
	}
	return true
}

// Leaves returns the number of leaf integers.
func (t Tuple) Leaves() int {
	if t.leaf {
		return 1
	}
	n := 0
	for _, e := range t.elems {
		n += e.Leaves()
	}
	return n
}

// Flatten returns the leaves in order, outermost first.
func (t Tuple) Flatten() []int {
	out := make([]int, 0, t.Leaves())
	return t.appendLeaves(out)
}

func (t Tuple) appendLeaves(out []int) []int {
	if t.leaf {
		return append(out, t.value)
	}
	for _, e := range t.elems {
		out = e.appendLeaves(out)
	}
	return out
}

// Depth returns the nesting depth: 0 for a leaf, 1 for a flat tuple.
func (t Tuple) Depth() int {
	if t.leaf {
		return 0
	}
	d := 0
	for _, e := range t.elems {
		d = max(d, e.Depth())
	}
	return d + 1
}

// Unflatten rebuilds a tuple congruent to t from leaves given in Flatten order.
func (t Tuple) Unflatten(leaves []int) (Tuple, error) {
	if len(leaves) != t.Leaves() {
		return Tuple{}, errors.Wrapf(ErrArityMismatch, "want %d leaves, got %d", t.Leaves(), len(leaves))
	}
	out, _, err := t.unflatten(leaves)
	return out, err
}

func (t Tuple) unflatten(leaves []int) (Tuple, []int, error) {
	if t.leaf {
		if leaves[0] < 0 {
			return Tuple{}, nil, errors.Wrapf(ErrNegativeValue, "leaf %d", leaves[0])
		}
		return Tuple{value: leaves[0], leaf: true}, leaves[1:], nil
	}
	elems := make([]Tuple, len(t.elems))
	for i, e := range t.elems {
		var err error
		elems[i], leaves, err = e.unflatten(leaves)
		if err != nil {
			return Tuple{}, nil, err
		}
	}
	return Tuple{elems: elems}, leaves, nil
}

// Map applies f to every leaf and returns a congruent tuple.
// Panics if f returns a negative value.
func (t Tuple) Map(f func(int) int) Tuple {
	if t.leaf {
		return Int(f(t.value))
	}
	elems := make([]Tuple, len(t.elems))
	for i, e := range t.elems {
		elems[i] = e.Map(f)
	}
	return Tuple{elems: elems}
}

// Dot returns the inner product of two congruent tuples.
func Dot(a, b Tuple) (int, error) {
	if !a.Congruent(b) {
		return 0, errors.Wrapf(ErrNotCongruent, "%s . %s", a, b)
	}
	return dot(a, b), nil
}

func dot(a, b Tuple) int {
	if a.leaf {
		return a.value * b.value
	}
	s := 0
	for i := range a.elems {
		s += dot(a.elems[i], b.elems[i])
	}
	return s
}

// String formats leaves as integers and tuples as parenthesized lists: (2,(3,4)).
func (t Tuple) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t Tuple) write(sb *strings.Builder) {
	if t.leaf {
		sb.WriteString(strconv.Itoa(t.value))
		return
	}
	sb.WriteByte('(')
	for i, e := range t.elems {
		if i > 0 {
			sb.WriteByte(',')
		}
		e.write(sb)
	}
	sb.WriteByte(')')
}
