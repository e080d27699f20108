package numeric

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrType is returned when operands use different representations or a value is not numeric.
var ErrType = errors.NewKind("type error: %s")

// ErrDivideByZero is returned when a divisor evaluates to zero.
var ErrDivideByZero = errors.NewKind("cannot divide %s by zero")

// Kind identifies the representation backing a Number
type Kind int

const (
	// KindInvalid is the zero Kind, carried by the zero Number.
	KindInvalid Kind = iota
	// KindInt is a 64-bit integer. Only breakpoints may use it.
	KindInt
	// KindFloat is an IEEE 754 float64.
	KindFloat
	// KindDecimal is an arbitrary-precision decimal.
	KindDecimal
	// KindRational is an exact fraction.
	KindRational
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindRational:
		return "rational"
	default:
		return "invalid"
	}
}

// ParseKind maps a representation name to its Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int", "integer":
		return KindInt, nil
	case "float", "float64":
		return KindFloat, nil
	case "decimal":
		return KindDecimal, nil
	case "rational", "fraction":
		return KindRational, nil
	default:
		return KindInvalid, ErrType.New(fmt.Sprintf("unknown representation %q", name))
	}
}

// Number is an immutable scalar in exactly one representation
type Number struct {
	kind Kind
	i    int64
	f    float64
	d    decimal.Decimal
	r    *big.Rat
}

// Int returns an integer Number
func Int(v int64) Number {
	return Number{kind: KindInt, i: v}
}

// Float returns a float Number
func Float(v float64) Number {
	return Number{kind: KindFloat, f: v}
}

// Decimal returns a decimal Number
func Decimal(v decimal.Decimal) Number {
	return Number{kind: KindDecimal, d: v}
}

// Rational returns a rational Number holding a copy of v.
// A nil v is treated as zero.
func Rational(v *big.Rat) Number {
	r := new(big.Rat)
	if v != nil {
		r.Set(v)
	}
	return Number{kind: KindRational, r: r}
}

// Frac returns the rational a/b. It panics if b is zero, like big.NewRat.
func Frac(a, b int64) Number {
	return Number{kind: KindRational, r: big.NewRat(a, b)}
}

// FromValue converts a Go value into a Number.
// Supported: signed/unsigned integers, float32/float64, decimal.Decimal,
// *big.Rat, big.Rat and Number. Anything else is an ErrType.
func FromValue(v any) (Number, error) {
	switch x := v.(type) {
	case Number:
		if x.kind == KindInvalid {
			return Number{}, ErrType.New("zero Number is not a value")
		}
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case decimal.Decimal:
		return Decimal(x), nil
	case *big.Rat:
		if x == nil {
			return Number{}, ErrType.New("nil *big.Rat")
		}
		return Rational(x), nil
	case big.Rat:
		return Rational(&x), nil
	default:
		return Number{}, ErrType.New(fmt.Sprintf("%T is not a supported numeric value", v))
	}
}

// FromInt returns n in the given representation
func FromInt(kind Kind, n int64) (Number, error) {
	switch kind {
	case KindInt:
		return Int(n), nil
	case KindFloat:
		return Float(float64(n)), nil
	case KindDecimal:
		return Decimal(decimal.NewFromInt(n)), nil
	case KindRational:
		return Number{kind: KindRational, r: new(big.Rat).SetInt64(n)}, nil
	default:
		return Number{}, ErrType.New(fmt.Sprintf("cannot build a value of kind %s", kind))
	}
}

// MustInt is FromInt for kinds known to be valid; it panics otherwise.
func MustInt(kind Kind, n int64) Number {
	v, err := FromInt(kind, n)
	if err != nil {
		panic(err)
	}
	return v
}

// FromFloat returns f in the given representation.
// Int accepts only integral values; Rational rejects infinities and NaN.
func FromFloat(kind Kind, f float64) (Number, error) {
	switch kind {
	case KindInt:
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return Number{}, ErrType.New(fmt.Sprintf("%v is not an integer", f))
		}
		return Int(int64(f)), nil
	case KindFloat:
		return Float(f), nil
	case KindDecimal:
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Number{}, ErrType.New(fmt.Sprintf("%v has no decimal representation", f))
		}
		return Decimal(decimal.NewFromFloat(f)), nil
	case KindRational:
		r := new(big.Rat)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Number{}, ErrType.New(fmt.Sprintf("%v has no rational representation", f))
		}
		r.SetFloat64(f)
		return Number{kind: KindRational, r: r}, nil
	default:
		return Number{}, ErrType.New(fmt.Sprintf("cannot build a value of kind %s", kind))
	}
}

// Parse reads text in the given representation. Rationals accept "a/b".
func Parse(kind Kind, text string) (Number, error) {
	s := strings.TrimSpace(text)
	switch kind {
	case KindInt:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Number{}, ErrType.Wrap(err, fmt.Sprintf("%q is not an int", text))
		}
		return Int(v), nil
	case KindFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Number{}, ErrType.Wrap(err, fmt.Sprintf("%q is not a float", text))
		}
		return Float(v), nil
	case KindDecimal:
		v, err := decimal.NewFromString(s)
		if err != nil {
			return Number{}, ErrType.Wrap(err, fmt.Sprintf("%q is not a decimal", text))
		}
		return Decimal(v), nil
	case KindRational:
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return Number{}, ErrType.New(fmt.Sprintf("%q is not a rational", text))
		}
		return Number{kind: KindRational, r: r}, nil
	default:
		return Number{}, ErrType.New(fmt.Sprintf("cannot parse into kind %s", kind))
	}
}

// Kind returns the representation of n
func (n Number) Kind() Kind {
	return n.kind
}

// IsValid reports whether n was built by a constructor
func (n Number) IsValid() bool {
	return n.kind != KindInvalid
}

// Sign returns -1, 0 or +1
func (n Number) Sign() int {
	switch n.kind {
	case KindInt:
		switch {
		case n.i < 0:
			return -1
		case n.i > 0:
			return 1
		}
		return 0
	case KindFloat:
		switch {
		case n.f < 0:
			return -1
		case n.f > 0:
			return 1
		}
		return 0
	case KindDecimal:
		return n.d.Sign()
	case KindRational:
		return n.r.Sign()
	}
	return 0
}

// IsZero reports whether n equals zero
func (n Number) IsZero() bool {
	return n.Sign() == 0
}

// Float64 returns the nearest float64
func (n Number) Float64() float64 {
	switch n.kind {
	case KindInt:
		return float64(n.i)
	case KindFloat:
		return n.f
	case KindDecimal:
		return n.d.InexactFloat64()
	case KindRational:
		f, _ := n.r.Float64()
		return f
	}
	return math.NaN()
}

// String formats n in its own representation
func (n Number) String() string {
	switch n.kind {
	case KindInt:
		return strconv.FormatInt(n.i, 10)
	case KindFloat:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	case KindDecimal:
		return n.d.String()
	case KindRational:
		return n.r.RatString()
	}
	return "<invalid>"
}

// SameKind returns ErrType unless every value shares the kind of the first
func SameKind(values ...Number) error {
	if len(values) == 0 {
		return nil
	}
	k := values[0].kind
	if k == KindInvalid {
		return ErrType.New("zero Number is not a value")
	}
	for _, v := range values[1:] {
		if v.kind != k {
			return ErrType.New(fmt.Sprintf("mixed representations %s and %s", k, v.kind))
		}
	}
	return nil
}

// Ints builds a slice of integer Numbers
func Ints(vs ...int64) []Number {
	out := make([]Number, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}

// Floats builds a slice of float Numbers
func Floats(vs ...float64) []Number {
	out := make([]Number, len(vs))
	for i, v := range vs {
		out[i] = Float(v)
	}
	return out
}

// ParseAll parses every element of texts in the given representation
func ParseAll(kind Kind, texts []string) ([]Number, error) {
	out := make([]Number, len(texts))
	for i, t := range texts {
		v, err := Parse(kind, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
