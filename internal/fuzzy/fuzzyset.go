package fuzzy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/alphacut/internal/numeric"
)

// FuzzySet is a family of alpha-cuts with unique levels, kept in descending
// level order. Every cut must lie within the cut at the next lower level.
//
// A FuzzySet is not safe for concurrent mutation; read-only use from several
// goroutines is fine.
type FuzzySet struct {
	cuts []AlphaCut
}

// NewFuzzySet builds a FuzzySet from cuts, validating level uniqueness and nesting.
func NewFuzzySet(cuts ...AlphaCut) (*FuzzySet, error) {
	sorted, err := arrange(nil, cuts)
	if err != nil {
		return nil, err
	}
	return &FuzzySet{cuts: sorted}, nil
}

// arrange merges added into existing, sorts by level descending and checks nesting.
// Neither input is modified.
func arrange(existing, added []AlphaCut) ([]AlphaCut, error) {
	out := make([]AlphaCut, 0, len(existing)+len(added))
	out = append(out, existing...)
	for _, c := range added {
		for _, have := range out {
			if have.level.Kind() != c.level.Kind() {
				return nil, ErrType.New(fmt.Sprintf("alpha-cut levels mix %s and %s representations", have.level.Kind(), c.level.Kind()))
			}
			if have.Kind() != c.Kind() {
				return nil, ErrType.New(fmt.Sprintf("alpha-cut borders mix %s and %s representations", have.Kind(), c.Kind()))
			}
			if eq, _ := have.level.Equal(c.level); eq {
				return nil, ErrDuplicateLevel.New(c.level.Value().String())
			}
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		c, _ := out[i].level.Compare(out[j].level)
		return c > 0
	})
	if err := checkNesting(out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkNesting compares each cut with its lower neighbour only.
func checkNesting(cuts []AlphaCut) error {
	for i := 1; i < len(cuts); i++ {
		higher, lower := cuts[i-1], cuts[i]
		ok, err := lower.ContainsCut(higher)
		if err != nil {
			return err
		}
		if !ok {
			return ErrObstructed.New(higher.level.Value().String(), lower.level.Value().String())
		}
	}
	return nil
}

// AlphaCuts returns the cuts in descending level order
func (fs *FuzzySet) AlphaCuts() []AlphaCut {
	return append([]AlphaCut(nil), fs.cuts...)
}

// Levels returns the stored levels in descending order
func (fs *FuzzySet) Levels() []Alpha {
	out := make([]Alpha, len(fs.cuts))
	for i, c := range fs.cuts {
		out[i] = c.level
	}
	return out
}

// Len returns the number of cuts
func (fs *FuzzySet) Len() int {
	return len(fs.cuts)
}

// Cut returns the cut stored at level
func (fs *FuzzySet) Cut(level Alpha) (AlphaCut, bool) {
	i := fs.index(level)
	if i < 0 {
		return AlphaCut{}, false
	}
	return fs.cuts[i], true
}

func (fs *FuzzySet) index(level Alpha) int {
	for i, c := range fs.cuts {
		if eq, _ := c.level.Equal(level); eq {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy
func (fs *FuzzySet) Clone() *FuzzySet {
	return &FuzzySet{cuts: fs.AlphaCuts()}
}

// AddAlphaCut inserts cuts and re-validates the whole family. On error the set is unchanged.
func (fs *FuzzySet) AddAlphaCut(cuts ...AlphaCut) error {
	next, err := arrange(fs.cuts, cuts)
	if err != nil {
		return err
	}
	fs.cuts = next
	return nil
}

// RemoveAlphaCut drops the cut at level and re-validates nesting. On error the set is unchanged.
func (fs *FuzzySet) RemoveAlphaCut(level Alpha) error {
	i := fs.index(level)
	if i < 0 {
		return ErrNotFound.New(level.Value().String())
	}
	next := make([]AlphaCut, 0, len(fs.cuts)-1)
	next = append(next, fs.cuts[:i]...)
	next = append(next, fs.cuts[i+1:]...)
	if err := checkNesting(next); err != nil {
		return err
	}
	fs.cuts = next
	return nil
}

// CheckMembershipLevel reports whether level is one of the stored levels.
// It is an exact lookup, not an evaluation of membership at a domain point.
func (fs *FuzzySet) CheckMembershipLevel(level Alpha) (bool, error) {
	for _, c := range fs.cuts {
		eq, err := c.level.Equal(level)
		if err != nil {
			return false, err
		}
		if eq {
			return true, nil
		}
	}
	return false, nil
}

// Equal compares the cuts pairwise in level order
func (fs *FuzzySet) Equal(o *FuzzySet) bool {
	if o == nil || len(fs.cuts) != len(o.cuts) {
		return false
	}
	for i := range fs.cuts {
		if !fs.cuts[i].Equal(o.cuts[i]) {
			return false
		}
	}
	return true
}

func (fs *FuzzySet) String() string {
	parts := make([]string, len(fs.cuts))
	for i, c := range fs.cuts {
		parts[i] = c.String()
	}
	return "FuzzySet[" + strings.Join(parts, ", ") + "]"
}

// Fingerprint is a deterministic description including representations,
// suitable for cache keys.
func (fs *FuzzySet) Fingerprint() string {
	var sb strings.Builder
	for _, c := range fs.cuts {
		fmt.Fprintf(&sb, "%s:%s|%s:%s|%s;", c.level.Kind(), c.level.Value(), c.Kind(), c.left, c.right)
	}
	return sb.String()
}

// Invert reflects every cut through zero
func (fs *FuzzySet) Invert() (*FuzzySet, error) {
	out := make([]AlphaCut, 0, len(fs.cuts))
	for _, c := range fs.cuts {
		inv, err := c.Invert()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return NewFuzzySet(out...)
}

type levelBucket struct {
	level  Alpha
	points []TaggedPoint
}

// AddWithTnorm adds two fuzzy sets with the extension principle. Every pair
// of cuts contributes the cartesian sums of its boundaries at level
// tnorm(levelA, levelB); the contributions of each level are merged into one cut.
func (fs *FuzzySet) AddWithTnorm(other *FuzzySet, tn Tnorm) (*FuzzySet, error) {
	var buckets []*levelBucket
	for _, sc := range fs.cuts {
		for _, oc := range other.cuts {
			level, err := tn.Evaluate(sc.level, oc.level)
			if err != nil {
				return nil, err
			}
			left, err := sc.left.Add(oc.left)
			if err != nil {
				return nil, err
			}
			right, err := sc.right.Add(oc.right)
			if err != nil {
				return nil, err
			}
			lt, _ := left.WithSide(SideLeft).Tagged()
			rt, _ := right.WithSide(SideRight).Tagged()

			bucket := findBucket(buckets, level)
			if bucket == nil {
				bucket = &levelBucket{level: level}
				buckets = append(buckets, bucket)
			}
			bucket.points = append(bucket.points, lt...)
			bucket.points = append(bucket.points, rt...)
		}
	}

	cuts := make([]AlphaCut, 0, len(buckets))
	for _, b := range buckets {
		c, err := FromBorderSides(b.level, b.points)
		if err != nil {
			return nil, err
		}
		cuts = append(cuts, c)
	}
	return NewFuzzySet(cuts...)
}

func findBucket(buckets []*levelBucket, level Alpha) *levelBucket {
	for _, b := range buckets {
		if eq, _ := b.level.Equal(level); eq {
			return b
		}
	}
	return nil
}

// SubWithTnorm subtracts other by adding its inversion
func (fs *FuzzySet) SubWithTnorm(other *FuzzySet, tn Tnorm) (*FuzzySet, error) {
	inv, err := other.Invert()
	if err != nil {
		return nil, err
	}
	return fs.AddWithTnorm(inv, tn)
}

// PointsToPlot returns the plot points of every cut in descending level order
func (fs *FuzzySet) PointsToPlot() []PlotPoint {
	var out []PlotPoint
	for _, c := range fs.cuts {
		out = append(out, c.PlotPoints()...)
	}
	return out
}

// Sample is one (x, membership) observation. Membership must already be normalised to [0, 1].
type Sample struct {
	X numeric.Number
	Y numeric.Number
}

// FromPoints builds a FuzzySet from samples ordered by strictly increasing X.
// For each level an interval opens where membership rises to the level and
// closes at the last sample before it drops below; an interval still open at
// the end closes at the last sample. Levels never reached are skipped.
func FromPoints(levels []Alpha, samples []Sample) (*FuzzySet, error) {
	for i := 1; i < len(samples); i++ {
		c, err := samples[i-1].X.Cmp(samples[i].X)
		if err != nil {
			return nil, err
		}
		if c >= 0 {
			return nil, ErrDomainObstructed.New(samples[i].X.String(), samples[i-1].X.String())
		}
	}

	cuts := make([]AlphaCut, 0, len(levels))
	for _, level := range levels {
		var left, right []numeric.Number
		var last numeric.Number
		inside := false
		for _, s := range samples {
			c, err := s.Y.Cmp(level.Value())
			if err != nil {
				return nil, err
			}
			if c >= 0 && !inside {
				left = append(left, s.X)
				inside = true
			}
			if c < 0 && inside {
				right = append(right, last)
				inside = false
			}
			last = s.X
		}
		if inside {
			right = append(right, last)
		}
		if len(left) == 0 {
			continue
		}
		lb, err := NewBorder(left, SideLeft)
		if err != nil {
			return nil, err
		}
		rb, err := NewBorder(right, SideRight)
		if err != nil {
			return nil, err
		}
		cut, err := NewAlphaCut(level, lb, rb)
		if err != nil {
			return nil, err
		}
		cuts = append(cuts, cut)
	}
	return NewFuzzySet(cuts...)
}
