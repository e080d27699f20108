package fuzzy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/alphacut/internal/numeric"
)

// Tnorm combines two membership degrees of the same representation.
// The set of variants is closed: Min, Max, Product, Lukasiewicz, Drastic,
// Nilpotent, Hamacher and Sklar.
type Tnorm interface {
	Evaluate(a, b Alpha) (Alpha, error)
	Name() string
	tnorm()
}

type (
	Min         struct{}
	Max         struct{}
	Product     struct{}
	Lukasiewicz struct{}
	Drastic     struct{}
	Nilpotent   struct{}
	Hamacher    struct{}
)

// Sklar is the parametric Schweizer-Sklar family. Parameter must be set;
// -Inf selects Min, 0 selects Product and +Inf selects Drastic.
type Sklar struct {
	Parameter *float64
}

// NewSklar returns a Sklar t-norm with parameter p
func NewSklar(p float64) Sklar {
	return Sklar{Parameter: &p}
}

func (Min) tnorm()         {}
func (Max) tnorm()         {}
func (Product) tnorm()     {}
func (Lukasiewicz) tnorm() {}
func (Drastic) tnorm()     {}
func (Nilpotent) tnorm()   {}
func (Hamacher) tnorm()    {}
func (Sklar) tnorm()       {}

func (Min) Name() string         { return "min" }
func (Max) Name() string         { return "max" }
func (Product) Name() string     { return "product" }
func (Lukasiewicz) Name() string { return "lukasiewicz" }
func (Drastic) Name() string     { return "drastic" }
func (Nilpotent) Name() string   { return "nilpotent" }
func (Hamacher) Name() string    { return "hamacher" }

func (s Sklar) Name() string {
	if s.Parameter == nil {
		return "sklar"
	}
	return fmt.Sprintf("sklar(%g)", *s.Parameter)
}

func sameKind(a, b Alpha) error {
	if a.Kind() != b.Kind() {
		return ErrType.New(fmt.Sprintf("t-norm operands have different representations %s and %s", a.Kind(), b.Kind()))
	}
	return nil
}

// result tightens a t-norm value so it can serve as an alpha-cut level
func result(a Alpha, err error) (Alpha, error) {
	if err != nil {
		return Alpha{}, err
	}
	return a.Tighten()
}

func minAlpha(a, b Alpha) (Alpha, error) {
	less, err := b.Less(a)
	if err != nil {
		return Alpha{}, err
	}
	if less {
		return b, nil
	}
	return a, nil
}

func maxAlpha(a, b Alpha) (Alpha, error) {
	greater, err := b.Greater(a)
	if err != nil {
		return Alpha{}, err
	}
	if greater {
		return b, nil
	}
	return a, nil
}

func (Min) Evaluate(a, b Alpha) (Alpha, error) {
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	return result(minAlpha(a, b))
}

func (Max) Evaluate(a, b Alpha) (Alpha, error) {
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	return result(maxAlpha(a, b))
}

func (Product) Evaluate(a, b Alpha) (Alpha, error) {
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	return result(a.Mul(b))
}

// Evaluate computes max(0, a+b-1)
func (Lukasiewicz) Evaluate(a, b Alpha) (Alpha, error) {
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	sum, err := a.Add(b)
	if err != nil {
		return Alpha{}, err
	}
	v, err := sum.Sub(a.constant(1))
	if err != nil {
		return Alpha{}, err
	}
	return result(maxAlpha(a.constant(0), v))
}

// Evaluate returns b when a is 1, a when b is 1 and 0 otherwise
func (Drastic) Evaluate(a, b Alpha) (Alpha, error) {
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	one := a.constant(1)
	if eq, _ := a.Equal(one); eq {
		return result(b, nil)
	}
	if eq, _ := b.Equal(one); eq {
		return result(a, nil)
	}
	return a.constant(0), nil
}

// Evaluate returns min(a, b) when a+b > 1 and 0 otherwise
func (Nilpotent) Evaluate(a, b Alpha) (Alpha, error) {
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	sum, err := a.Add(b)
	if err != nil {
		return Alpha{}, err
	}
	if above, _ := sum.Greater(a.constant(1)); above {
		return result(minAlpha(a, b))
	}
	return a.constant(0), nil
}

// Evaluate computes ab / (a+b-ab), with 0 when both operands are 0
func (Hamacher) Evaluate(a, b Alpha) (Alpha, error) {
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	if a.Value().IsZero() && b.Value().IsZero() {
		return a.constant(0), nil
	}
	prod, err := a.Mul(b)
	if err != nil {
		return Alpha{}, err
	}
	sum, err := a.Add(b)
	if err != nil {
		return Alpha{}, err
	}
	den, err := sum.Sub(prod)
	if err != nil {
		return Alpha{}, err
	}
	return result(prod.Quo(den))
}

// Evaluate computes (a^p + b^p - 1)^(1/p). For p > 0 the base is clamped at 0
// first; for p < 0 a zero operand yields 0.
func (s Sklar) Evaluate(a, b Alpha) (Alpha, error) {
	if s.Parameter == nil {
		return Alpha{}, ErrMissingParameter.New("sklar")
	}
	if err := sameKind(a, b); err != nil {
		return Alpha{}, err
	}
	p := *s.Parameter
	switch {
	case math.IsNaN(p):
		return Alpha{}, ErrValue.New("sklar parameter is NaN")
	case math.IsInf(p, -1):
		return Min{}.Evaluate(a, b)
	case p == 0:
		return Product{}.Evaluate(a, b)
	case math.IsInf(p, 1):
		return Drastic{}.Evaluate(a, b)
	}

	pn, err := numeric.FromFloat(a.Kind(), p)
	if err != nil {
		return Alpha{}, err
	}
	par, err := NewAlpha(pn, true)
	if err != nil {
		return Alpha{}, err
	}
	zero, one := a.constant(0), a.constant(1)
	if p < 0 && (a.Value().IsZero() || b.Value().IsZero()) {
		return zero, nil
	}

	ap, err := a.Pow(par)
	if err != nil {
		return Alpha{}, err
	}
	bp, err := b.Pow(par)
	if err != nil {
		return Alpha{}, err
	}
	sum, err := ap.Add(bp)
	if err != nil {
		return Alpha{}, err
	}
	base, err := sum.Sub(one)
	if err != nil {
		return Alpha{}, err
	}
	if p > 0 {
		if base, err = maxAlpha(zero, base); err != nil {
			return Alpha{}, err
		}
		if base.Value().IsZero() {
			return zero, nil
		}
	}
	inv, err := one.Quo(par)
	if err != nil {
		return Alpha{}, err
	}
	return result(base.Pow(inv))
}

var tnorms = map[string]Tnorm{
	Min{}.Name():         Min{},
	Max{}.Name():         Max{},
	Product{}.Name():     Product{},
	Lukasiewicz{}.Name(): Lukasiewicz{},
	Drastic{}.Name():     Drastic{},
	Nilpotent{}.Name():   Nilpotent{},
	Hamacher{}.Name():    Hamacher{},
	"sklar":              Sklar{},
}

// ParseTnorm resolves a t-norm by name. The parameter is only used by sklar.
func ParseTnorm(name string, parameter *float64) (Tnorm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	t, ok := tnorms[key]
	if !ok {
		return nil, ErrValue.New(fmt.Sprintf("unknown t-norm %q, expected one of %s", name, strings.Join(TnormNames(), ", ")))
	}
	if key == "sklar" {
		if parameter == nil {
			return nil, ErrMissingParameter.New("sklar")
		}
		return NewSklar(*parameter), nil
	}
	return t, nil
}

// TnormNames lists the names accepted by ParseTnorm
func TnormNames() []string {
	names := make([]string, 0, len(tnorms))
	for name := range tnorms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
