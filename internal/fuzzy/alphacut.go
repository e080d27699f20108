package fuzzy

import (
	"fmt"

	"github.com/ppiankov/alphacut/internal/numeric"
)

// plotInteriorSamples is the number of evenly spaced points drawn strictly inside each interval
const plotInteriorSamples = 32

// AlphaCut is the set of domain points whose membership is at least Level,
// stored as the union of closed intervals [Left[i], Right[i]].
type AlphaCut struct {
	level Alpha
	left  Border
	right Border
}

// NewAlphaCut validates left/right and builds an AlphaCut. Borders without a
// side are tagged Left and Right.
func NewAlphaCut(level Alpha, left, right Border) (AlphaCut, error) {
	lvl, err := level.Tighten()
	if err != nil {
		return AlphaCut{}, err
	}
	if left.Side() == SideNone {
		left = left.WithSide(SideLeft)
	}
	if right.Side() == SideNone {
		right = right.WithSide(SideRight)
	}
	if err := AreLeftRight(left, right); err != nil {
		return AlphaCut{}, err
	}
	return AlphaCut{level: lvl, left: left, right: right}, nil
}

// NewAlphaCutOf builds an AlphaCut from a level value and breakpoint slices
func NewAlphaCutOf(level any, left, right []numeric.Number) (AlphaCut, error) {
	lvl, err := AlphaOf(level, false)
	if err != nil {
		return AlphaCut{}, err
	}
	l, err := NewBorder(left, SideLeft)
	if err != nil {
		return AlphaCut{}, err
	}
	r, err := NewBorder(right, SideRight)
	if err != nil {
		return AlphaCut{}, err
	}
	return NewAlphaCut(lvl, l, r)
}

// FromBorderSides partitions tagged points into left and right breakpoints,
// merges them with Uncover and builds the resulting AlphaCut.
func FromBorderSides(level Alpha, points []TaggedPoint) (AlphaCut, error) {
	var left, right []numeric.Number
	for _, p := range points {
		switch p.Side {
		case SideLeft:
			left = append(left, p.Coord)
		case SideRight:
			right = append(right, p.Coord)
		default:
			return AlphaCut{}, ErrValue.New(fmt.Sprintf("border list must contain only left or right points, got %s", p.Side))
		}
	}
	lb, err := newBorder(left, true, SideLeft)
	if err != nil {
		return AlphaCut{}, err
	}
	rb, err := newBorder(right, true, SideRight)
	if err != nil {
		return AlphaCut{}, err
	}
	lb, rb, err = Uncover(lb, rb)
	if err != nil {
		return AlphaCut{}, err
	}
	return NewAlphaCut(level, lb, rb)
}

// Level returns the membership level of the cut
func (c AlphaCut) Level() Alpha {
	return c.level
}

// Left returns the left boundaries
func (c AlphaCut) Left() Border {
	return c.left
}

// Right returns the right boundaries
func (c AlphaCut) Right() Border {
	return c.right
}

// Kind returns the breakpoint representation
func (c AlphaCut) Kind() numeric.Kind {
	return c.left.Kind()
}

// IsConvex reports whether the cut is a single interval
func (c AlphaCut) IsConvex() bool {
	return c.left.Len() == 1 && c.right.Len() == 1
}

// ContainsPoint reports whether p lies in one of the intervals
func (c AlphaCut) ContainsPoint(p numeric.Number) (bool, error) {
	if p.Kind() != c.Kind() {
		return false, ErrType.New(fmt.Sprintf("cannot test a %s point against %s borders", p.Kind(), c.Kind()))
	}
	for i := range c.left.points {
		lo, _ := c.left.points[i].Cmp(p)
		hi, _ := p.Cmp(c.right.points[i])
		if lo <= 0 && hi <= 0 {
			return true, nil
		}
	}
	return false, nil
}

// ContainsCut reports whether narrow lies within c.
//
// For every interval (l, r) of narrow the enclosing interval of c is taken to
// be the first one whose left boundary is >= l, or the last interval when none
// is; r must not exceed its right boundary. This nearest-interval lookup can
// misjudge layouts with adjacent intervals and is kept as is.
func (c AlphaCut) ContainsCut(narrow AlphaCut) (bool, error) {
	if narrow.Kind() != c.Kind() {
		return false, ErrType.New(fmt.Sprintf("cannot compare %s cut with %s cut", narrow.Kind(), c.Kind()))
	}
	if narrow.left.Len() == 0 || c.left.Len() == 0 {
		return false, nil
	}
	if first, _ := narrow.left.points[0].Cmp(c.left.points[0]); first < 0 {
		return false, nil
	}
	last := len(c.left.points) - 1
	for i, l := range narrow.left.points {
		r := narrow.right.points[i]
		k := last
		for j, wl := range c.left.points {
			if cmp, _ := wl.Cmp(l); cmp >= 0 {
				k = j
				break
			}
		}
		if cmp, _ := r.Cmp(c.right.points[k]); cmp > 0 {
			return false, nil
		}
	}
	return true, nil
}

// IsWider reports whether narrow is contained in c
func (c AlphaCut) IsWider(narrow AlphaCut) (bool, error) {
	return c.ContainsCut(narrow)
}

// Invert reflects the cut through zero. Negation reverses order, so the old
// right boundaries become the new left ones.
func (c AlphaCut) Invert() (AlphaCut, error) {
	minusOne, err := ScalarBorder(numeric.MustInt(c.Kind(), -1), SideNone)
	if err != nil {
		return AlphaCut{}, err
	}
	newLeft, err := c.right.Mul(minusOne)
	if err != nil {
		return AlphaCut{}, err
	}
	newRight, err := c.left.Mul(minusOne)
	if err != nil {
		return AlphaCut{}, err
	}
	l, r, err := Uncover(newLeft.WithSide(SideLeft), newRight.WithSide(SideRight))
	if err != nil {
		return AlphaCut{}, err
	}
	return NewAlphaCut(c.level, l, r)
}

// Equal compares level and breakpoints. Cuts at levels of different
// representations are not equal.
func (c AlphaCut) Equal(o AlphaCut) bool {
	eq, err := c.level.Equal(o.level)
	if err != nil || !eq {
		return false
	}
	return c.left.Equal(o.left) && c.right.Equal(o.right)
}

func (c AlphaCut) String() string {
	return fmt.Sprintf("AlphaCut(%s, %s, %s)", c.level.Value(), c.left, c.right)
}

// PlotPoint is a single point of the display surface
type PlotPoint struct {
	Level float64
	Coord float64
	Side  Side
}

// PlotPoints returns both ends of every interval followed by evenly spaced interior samples
func (c AlphaCut) PlotPoints() []PlotPoint {
	level := c.level.Float64()
	out := make([]PlotPoint, 0, len(c.left.points)*(plotInteriorSamples+2))
	for i := range c.left.points {
		l := c.left.points[i].Float64()
		r := c.right.points[i].Float64()
		out = append(out,
			PlotPoint{Level: level, Coord: l, Side: SideLeft},
			PlotPoint{Level: level, Coord: r, Side: SideRight},
		)
		if r <= l {
			continue
		}
		step := (r - l) / (plotInteriorSamples + 1)
		for k := 1; k <= plotInteriorSamples; k++ {
			out = append(out, PlotPoint{Level: level, Coord: l + step*float64(k), Side: SideInside})
		}
	}
	return out
}
