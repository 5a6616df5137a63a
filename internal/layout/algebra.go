package layout

import (
	"sort"

	"github.com/born-ml/cute/internal/tuple"
	"github.com/pkg/errors"
)

// Coalesce flattens l and merges adjacent modes (E,D),(e,d) with D == e*d into
// (E*e, d). Extent-1 modes are dropped. The result addresses the same offsets
// in the same logical order, and Coalesce(Coalesce(l)) equals Coalesce(l).
//
// Example:
//
//	(2,(3,4)):(12,(4,1)) -> (24):(1)
//	(4,4):(1,4)          -> (4,4):(1,4)
func Coalesce(l Layout) Layout {
	return fromModes(coalesceModes(l.flatModes()))
}

func coalesceModes(modes []mode) []mode {
	out := make([]mode, 0, len(modes))
	for _, m := range modes {
		if m.extent == 1 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].stride == m.extent*m.stride {
			out[n-1] = mode{extent: out[n-1].extent * m.extent, stride: m.stride}
			continue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return []mode{{extent: 1, stride: 0}}
	}
	return out
}

// Compose returns the layout a∘b: coordinate c maps to a.OffsetOf(b.Offset(c)).
// The result is congruent to b, except that a leaf of b may become a nested
// mode when its image straddles several modes of a.
//
// Composition is defined when every stride of b can be expressed through the
// mode structure of a. When a is linear (it coalesces to a single mode) any b
// whose offsets stay within a.Size() composes. Otherwise the non-trivial modes
// of b must not overlap, and each must land on whole or evenly divided modes
// of a. ErrIncompatibleLayouts is returned in every other case.
func Compose(a, b Layout) (Layout, error) {
	if b.Size() == 0 {
		return Layout{shape: b.shape, stride: Stride{b.stride.Map(func(int) int { return 0 })}}, nil
	}
	if b.Cosize() > a.Size() {
		return Layout{}, errors.Wrapf(ErrIncompatibleLayouts,
			"%s reaches index %d beyond size %d of %s", b, b.Cosize()-1, a.Size(), a)
	}

	am := coalesceModes(a.flatModes())
	if len(am) == 1 {
		d := am[0].stride
		return Layout{shape: b.shape, stride: Stride{b.stride.Map(func(r int) int { return r * d })}}, nil
	}

	if err := checkDisjointModes(b.flatModes()); err != nil {
		return Layout{}, errors.Wrapf(err, "compose %s with %s", a, b)
	}

	// Walk a fastest mode first.
	fast := make([]mode, len(am))
	for i, m := range am {
		fast[len(am)-1-i] = m
	}
	shape, stride, err := composeTuple(fast, b.shape.Tuple, b.stride.Tuple)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "compose %s with %s", a, b)
	}
	return Layout{shape: Shape{shape}, stride: Stride{stride}}, nil
}

// checkDisjointModes requires the non-trivial modes, sorted by stride, to
// occupy non-overlapping index ranges: each stride is a multiple of the span
// of the modes below it.
func checkDisjointModes(modes []mode) error {
	live := make([]mode, 0, len(modes))
	for _, m := range modes {
		if m.extent > 1 && m.stride > 0 {
			live = append(live, m)
		}
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].stride < live[j].stride })
	span := 1
	for _, m := range live {
		if m.stride%span != 0 {
			return errors.Wrapf(ErrIncompatibleLayouts, "mode %d:%d overlaps span %d", m.extent, m.stride, span)
		}
		span = m.extent * m.stride
	}
	return nil
}

func composeTuple(fast []mode, shape, stride tuple.Tuple) (tuple.Tuple, tuple.Tuple, error) {
	if shape.IsLeaf() {
		return composeLeaf(fast, shape.Value(), stride.Value())
	}
	shapes := make([]tuple.Tuple, shape.Rank())
	strides := make([]tuple.Tuple, shape.Rank())
	for i := range shapes {
		var err error
		shapes[i], strides[i], err = composeTuple(fast, shape.At(i), stride.At(i))
		if err != nil {
			return tuple.Tuple{}, tuple.Tuple{}, err
		}
	}
	return tuple.Nest(shapes...), tuple.Nest(strides...), nil
}

// composeLeaf maps the single mode (n):(r) through the fastest-first modes of a.
// The first r indices of a are divided out, then n indices are taken.
func composeLeaf(fast []mode, n, r int) (tuple.Tuple, tuple.Tuple, error) {
	if n <= 1 || r == 0 {
		return tuple.Int(n), tuple.Int(0), nil
	}

	i := 0
	cur := mode{}
	rest := r
	for {
		if i >= len(fast) {
			return tuple.Tuple{}, tuple.Tuple{}, errors.Wrapf(ErrIncompatibleLayouts, "stride %d exceeds layout", r)
		}
		m := fast[i]
		if rest%m.extent == 0 {
			rest /= m.extent
			i++
			if rest == 1 {
				if i >= len(fast) {
					return tuple.Tuple{}, tuple.Tuple{}, errors.Wrapf(ErrIncompatibleLayouts, "stride %d exceeds layout", r)
				}
				cur = fast[i]
				break
			}
			continue
		}
		if m.extent%rest != 0 {
			return tuple.Tuple{}, tuple.Tuple{}, errors.Wrapf(ErrIncompatibleLayouts,
				"stride %d does not divide mode %d:%d", r, m.extent, m.stride)
		}
		cur = mode{extent: m.extent / rest, stride: m.stride * rest}
		break
	}

	var out []mode
	want := n
	for {
		if want <= cur.extent {
			out = append(out, mode{extent: want, stride: cur.stride})
			break
		}
		if want%cur.extent != 0 {
			return tuple.Tuple{}, tuple.Tuple{}, errors.Wrapf(ErrIncompatibleLayouts,
				"extent %d does not divide into mode %d:%d", n, cur.extent, cur.stride)
		}
		out = append(out, cur)
		want /= cur.extent
		i++
		if i >= len(fast) {
			return tuple.Tuple{}, tuple.Tuple{}, errors.Wrapf(ErrIncompatibleLayouts, "extent %d exceeds layout", n)
		}
		cur = fast[i]
	}

	if len(out) == 1 {
		return tuple.Int(out[0].extent), tuple.Int(out[0].stride), nil
	}
	// out is fastest first; nested modes are stored outermost first.
	shapes := make([]tuple.Tuple, len(out))
	strides := make([]tuple.Tuple, len(out))
	for k, m := range out {
		shapes[len(out)-1-k] = tuple.Int(m.extent)
		strides[len(out)-1-k] = tuple.Int(m.stride)
	}
	return tuple.Nest(shapes...), tuple.Nest(strides...), nil
}

// Complement returns the layout covering the offsets in [0, cosize) that l
// does not reach, such that every offset in [0, cosize) is uniquely l(i) + c(j).
// Modes are ordered outermost (largest stride) first.
//
// l must be injective with strides that are multiples of the span of all
// smaller-stride modes, and cosize must be a multiple of l's total span.
// ErrNonComplementableLayout is returned otherwise.
//
// Example:
//
//	Complement((4):(1), 16)     -> (4):(4)
//	Complement((2,2):(8,1), 32) -> (2,4):(16,2)
func Complement(l Layout, cosize int) (Layout, error) {
	if cosize <= 0 || cosize < l.Cosize() {
		return Layout{}, errors.Wrapf(ErrNonComplementableLayout, "%s does not fit in %d", l, cosize)
	}

	live := make([]mode, 0, l.shape.Leaves())
	for _, m := range l.flatModes() {
		if m.extent == 0 {
			return Layout{}, errors.Wrapf(ErrNonComplementableLayout, "%s is empty", l)
		}
		if m.extent > 1 && m.stride > 0 {
			live = append(live, m)
		}
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].stride < live[j].stride })

	var inner []mode
	span := 1
	for _, m := range live {
		if m.stride%span != 0 {
			return Layout{}, errors.Wrapf(ErrNonComplementableLayout,
				"%s: stride %d is not a multiple of span %d", l, m.stride, span)
		}
		if gap := m.stride / span; gap > 1 {
			inner = append(inner, mode{extent: gap, stride: span})
		}
		span = m.extent * m.stride
	}
	if cosize%span != 0 {
		return Layout{}, errors.Wrapf(ErrNonComplementableLayout,
			"%s: target %d is not a multiple of span %d", l, cosize, span)
	}
	if rest := cosize / span; rest > 1 {
		inner = append(inner, mode{extent: rest, stride: span})
	}
	if len(inner) == 0 {
		return fromModes([]mode{{extent: 1, stride: 0}}), nil
	}

	out := make([]mode, len(inner))
	for i, m := range inner {
		out[len(inner)-1-i] = m
	}
	return fromModes(out), nil
}
