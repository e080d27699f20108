package fuzzy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/alphacut/internal/numeric"
)

// Side tags a breakpoint as the start or end of an interval, or as a plot-only interior point
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideInside
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideInside:
		return "inside"
	default:
		return "none"
	}
}

// TaggedPoint is a breakpoint coordinate together with its side
type TaggedPoint struct {
	Side  Side
	Coord numeric.Number
}

// Border is an ordered tuple of breakpoints sharing one representation.
// A Border whose points are not strictly increasing is covered and has to go
// through Uncover before it can bound an AlphaCut.
type Border struct {
	points  []numeric.Number
	covered bool
	side    Side
}

// NewBorder builds a Border from points. Coverage is derived from the order of points.
func NewBorder(points []numeric.Number, side Side) (Border, error) {
	return newBorder(points, false, side)
}

// ScalarBorder builds a single-point Border
func ScalarBorder(point numeric.Number, side Side) (Border, error) {
	return newBorder([]numeric.Number{point}, false, side)
}

// BorderOf builds a Border from Go values accepted by numeric.FromValue
func BorderOf(side Side, values ...any) (Border, error) {
	points := make([]numeric.Number, len(values))
	for i, v := range values {
		n, err := numeric.FromValue(v)
		if err != nil {
			return Border{}, err
		}
		points[i] = n
	}
	return NewBorder(points, side)
}

func newBorder(points []numeric.Number, covered bool, side Side) (Border, error) {
	if len(points) == 0 {
		return Border{}, ErrValue.New("border cannot be empty")
	}
	if err := numeric.SameKind(points...); err != nil {
		return Border{}, ErrType.New("all elements of a border must share one representation")
	}
	b := Border{
		points:  append([]numeric.Number(nil), points...),
		covered: covered,
		side:    side,
	}
	for i := 1; i < len(b.points); i++ {
		if c, _ := b.points[i-1].Cmp(b.points[i]); c >= 0 {
			b.covered = true
			break
		}
	}
	return b, nil
}

// Len returns the number of breakpoints
func (b Border) Len() int {
	return len(b.points)
}

// Covered reports whether the breakpoints overlap or are unsorted
func (b Border) Covered() bool {
	return b.covered
}

// Kind returns the representation shared by every breakpoint
func (b Border) Kind() numeric.Kind {
	if len(b.points) == 0 {
		return numeric.KindInvalid
	}
	return b.points[0].Kind()
}

// Points returns a copy of the breakpoints
func (b Border) Points() []numeric.Number {
	return append([]numeric.Number(nil), b.points...)
}

// At returns breakpoint i
func (b Border) At(i int) numeric.Number {
	return b.points[i]
}

// Side returns the role of the Border
func (b Border) Side() Side {
	return b.side
}

// WithSide returns a copy of b with the given role
func (b Border) WithSide(side Side) Border {
	b.side = side
	return b
}

// Equal compares breakpoints only; roles and coverage are ignored.
func (b Border) Equal(o Border) bool {
	if len(b.points) != len(o.points) {
		return false
	}
	for i := range b.points {
		if !b.points[i].Equal(o.points[i]) {
			return false
		}
	}
	return true
}

func (b Border) String() string {
	parts := make([]string, len(b.points))
	for i, p := range b.points {
		parts[i] = p.String()
	}
	if len(parts) == 1 {
		return "Border((" + parts[0] + ",))"
	}
	return "Border((" + strings.Join(parts, ", ") + "))"
}

// Add returns every pairwise sum b[i]+o[j], b-major, as a covered Border
func (b Border) Add(o Border) (Border, error) {
	return b.cartesian(o, "add", numeric.Number.Add)
}

// Sub returns every pairwise difference b[i]-o[j], b-major, as a covered Border
func (b Border) Sub(o Border) (Border, error) {
	return b.cartesian(o, "subtract", numeric.Number.Sub)
}

// Mul multiplies by a single-point Border. At least one operand must have length 1.
func (b Border) Mul(o Border) (Border, error) {
	if b.Kind() != o.Kind() {
		return Border{}, ErrType.New(fmt.Sprintf("to multiply borders must have the same representation, got %s and %s", b.Kind(), o.Kind()))
	}
	if b.Len() != 1 && o.Len() != 1 {
		return Border{}, ErrValue.New("cannot multiply by a border with more than one point")
	}
	return b.cartesian(o, "multiply", numeric.Number.Mul)
}

func (b Border) cartesian(o Border, op string, fn func(numeric.Number, numeric.Number) (numeric.Number, error)) (Border, error) {
	if b.Kind() != o.Kind() {
		return Border{}, ErrType.New(fmt.Sprintf("to %s borders must have the same representation, got %s and %s", op, b.Kind(), o.Kind()))
	}
	out := make([]numeric.Number, 0, len(b.points)*len(o.points))
	for _, x := range b.points {
		for _, y := range o.points {
			v, err := fn(x, y)
			if err != nil {
				return Border{}, err
			}
			out = append(out, v)
		}
	}
	return newBorder(out, true, SideNone)
}

// Tagged returns every breakpoint tagged with the Border's side
func (b Border) Tagged() ([]TaggedPoint, error) {
	if b.side == SideNone {
		return nil, ErrType.New("cannot tag points of a border without a side")
	}
	out := make([]TaggedPoint, len(b.points))
	for i, p := range b.points {
		out[i] = TaggedPoint{Side: b.side, Coord: p}
	}
	return out, nil
}

// Uncover merges possibly overlapping left/right boundaries into sorted,
// disjoint ones with a sweep over all breakpoints. A left point opens an
// interval when the depth becomes 1 and a right point closes it when the
// depth returns to 0. Left points sort before right points at equal
// coordinates, so touching intervals are merged.
func Uncover(left, right Border) (Border, Border, error) {
	if left.Len() != right.Len() {
		return Border{}, Border{}, ErrValue.New(fmt.Sprintf("borders must have same length, got %d and %d", left.Len(), right.Len()))
	}
	if left.Kind() != right.Kind() {
		return Border{}, Border{}, ErrType.New(fmt.Sprintf("borders must have the same representation, got %s and %s", left.Kind(), right.Kind()))
	}

	sweep := make([]TaggedPoint, 0, left.Len()+right.Len())
	for _, p := range left.points {
		sweep = append(sweep, TaggedPoint{Side: SideLeft, Coord: p})
	}
	for _, p := range right.points {
		sweep = append(sweep, TaggedPoint{Side: SideRight, Coord: p})
	}
	sort.SliceStable(sweep, func(i, j int) bool {
		c, _ := sweep[i].Coord.Cmp(sweep[j].Coord)
		return c < 0
	})

	depth := 0
	var newLeft, newRight []numeric.Number
	for _, tp := range sweep {
		switch tp.Side {
		case SideLeft:
			depth++
			if depth == 1 {
				newLeft = append(newLeft, tp.Coord)
			}
		case SideRight:
			depth--
			if depth == 0 {
				newRight = append(newRight, tp.Coord)
			}
		}
		if depth < 0 {
			return Border{}, Border{}, ErrMalformedInterval.New(tp.Coord.String())
		}
	}

	l, err := newBorder(newLeft, false, SideLeft)
	if err != nil {
		return Border{}, Border{}, err
	}
	r, err := newBorder(newRight, false, SideRight)
	if err != nil {
		return Border{}, Border{}, err
	}
	return l, r, nil
}

// AreLeftRight checks that left and right bound a valid union of sorted,
// non-overlapping closed intervals.
func AreLeftRight(left, right Border) error {
	if left.Kind() != right.Kind() {
		return ErrType.New(fmt.Sprintf("borders must have the same representation, got %s and %s", left.Kind(), right.Kind()))
	}
	if left.Len() != right.Len() {
		return ErrValue.New(fmt.Sprintf("borders must have the same length, got %d and %d", left.Len(), right.Len()))
	}
	for i := range left.points {
		if c, _ := left.points[i].Cmp(right.points[i]); c > 0 {
			return ErrValue.New(fmt.Sprintf("alpha-cut length cannot be negative: [%s, %s]", left.points[i], right.points[i]))
		}
	}
	for i := 1; i < len(left.points); i++ {
		if c, _ := left.points[i].Cmp(right.points[i-1]); c < 0 {
			return ErrValue.New(fmt.Sprintf("two parts of alpha-cut cover each other at %s", left.points[i]))
		}
	}
	if left.covered || right.covered {
		return ErrValue.New("borders must not be covered to bound an alpha-cut, uncover them first")
	}
	return nil
}
