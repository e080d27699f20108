package fuzzy

import (
	"fmt"
	"math"

	"github.com/ppiankov/alphacut/internal/numeric"
)

// Alpha is a membership degree backed by a float, decimal or rational value.
// A relaxed Alpha skips the [0, 1] range check so multi-term formulas can
// carry out-of-range intermediates; Tighten restores the check.
type Alpha struct {
	v       numeric.Number
	relaxed bool
}

// NewAlpha builds an Alpha from v
func NewAlpha(v numeric.Number, relaxed bool) (Alpha, error) {
	switch v.Kind() {
	case numeric.KindFloat, numeric.KindDecimal, numeric.KindRational:
	default:
		return Alpha{}, ErrType.New(fmt.Sprintf("alpha value must be a float, decimal or rational, not %s", v.Kind()))
	}
	a := Alpha{v: v, relaxed: relaxed}
	if !relaxed {
		if err := a.checkRange(); err != nil {
			return Alpha{}, err
		}
	}
	return a, nil
}

// AlphaOf builds an Alpha from any value accepted by numeric.FromValue
func AlphaOf(v any, relaxed bool) (Alpha, error) {
	n, err := numeric.FromValue(v)
	if err != nil {
		return Alpha{}, err
	}
	return NewAlpha(n, relaxed)
}

// MustAlpha is AlphaOf for strict literals; it panics on error.
func MustAlpha(v any) Alpha {
	a, err := AlphaOf(v, false)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Alpha) checkRange() error {
	zero := numeric.MustInt(a.v.Kind(), 0)
	one := numeric.MustInt(a.v.Kind(), 1)
	lo, _ := a.v.Cmp(zero)
	hi, _ := a.v.Cmp(one)
	if lo < 0 || hi > 0 || math.IsNaN(a.v.Float64()) {
		return ErrRange.New(a.v.String())
	}
	return nil
}

// Value returns the backing number
func (a Alpha) Value() numeric.Number {
	return a.v
}

// Kind returns the numeric representation of a
func (a Alpha) Kind() numeric.Kind {
	return a.v.Kind()
}

// Relaxed reports whether the range check is disabled
func (a Alpha) Relaxed() bool {
	return a.relaxed
}

// Float64 returns the level as a float64
func (a Alpha) Float64() float64 {
	return a.v.Float64()
}

// Tighten returns a strict copy of a, failing with ErrRange when a is outside [0, 1].
func (a Alpha) Tighten() (Alpha, error) {
	return NewAlpha(a.v, false)
}

func (a Alpha) String() string {
	return fmt.Sprintf("Alpha(%s)", a.v)
}

// Add returns a+b as a relaxed Alpha
func (a Alpha) Add(b Alpha) (Alpha, error) {
	return a.apply(b, numeric.Number.Add)
}

// Sub returns a-b as a relaxed Alpha
func (a Alpha) Sub(b Alpha) (Alpha, error) {
	return a.apply(b, numeric.Number.Sub)
}

// Mul returns a*b as a relaxed Alpha
func (a Alpha) Mul(b Alpha) (Alpha, error) {
	return a.apply(b, numeric.Number.Mul)
}

// Quo returns a/b as a relaxed Alpha
func (a Alpha) Quo(b Alpha) (Alpha, error) {
	return a.apply(b, numeric.Number.Quo)
}

// Pow returns a**b as a relaxed Alpha
func (a Alpha) Pow(b Alpha) (Alpha, error) {
	return a.apply(b, numeric.Number.Pow)
}

func (a Alpha) apply(b Alpha, op func(numeric.Number, numeric.Number) (numeric.Number, error)) (Alpha, error) {
	if a.Kind() != b.Kind() {
		return Alpha{}, ErrType.New(fmt.Sprintf("alphas have different representations %s and %s", a.Kind(), b.Kind()))
	}
	v, err := op(a.v, b.v)
	if err != nil {
		return Alpha{}, err
	}
	return NewAlpha(v, true)
}

// Equal compares a with other. Non-Alpha values are never equal; an Alpha of
// another representation is an ErrType rather than a plain mismatch.
func (a Alpha) Equal(other any) (bool, error) {
	var b Alpha
	switch o := other.(type) {
	case Alpha:
		b = o
	case *Alpha:
		if o == nil {
			return false, nil
		}
		b = *o
	default:
		return false, nil
	}
	c, err := a.Compare(b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// Compare orders a and b by value
func (a Alpha) Compare(b Alpha) (int, error) {
	if a.Kind() != b.Kind() {
		return 0, ErrType.New(fmt.Sprintf("cannot compare %s to %s", b, a))
	}
	return a.v.Cmp(b.v)
}

// Less reports a < b
func (a Alpha) Less(b Alpha) (bool, error) {
	c, err := a.Compare(b)
	return c < 0, err
}

// Greater reports a > b
func (a Alpha) Greater(b Alpha) (bool, error) {
	c, err := a.Compare(b)
	return c > 0, err
}

// constant returns 0 or 1 in the representation of a
func (a Alpha) constant(n int64) Alpha {
	return Alpha{v: numeric.MustInt(a.Kind(), n)}
}
