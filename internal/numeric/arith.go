package numeric

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// decimalPrecision matches the default division precision of shopspring/decimal.
const decimalPrecision = 16

func mismatch(op string, a, b Number) error {
	return ErrType.New(fmt.Sprintf("cannot %s %s and %s values", op, a.kind, b.kind))
}

// Add returns a+b
func (n Number) Add(o Number) (Number, error) {
	if n.kind != o.kind || n.kind == KindInvalid {
		return Number{}, mismatch("add", n, o)
	}
	switch n.kind {
	case KindInt:
		return Int(n.i + o.i), nil
	case KindFloat:
		return Float(n.f + o.f), nil
	case KindDecimal:
		return Decimal(n.d.Add(o.d)), nil
	default:
		return Number{kind: KindRational, r: new(big.Rat).Add(n.r, o.r)}, nil
	}
}

// Sub returns a-b
func (n Number) Sub(o Number) (Number, error) {
	if n.kind != o.kind || n.kind == KindInvalid {
		return Number{}, mismatch("subtract", n, o)
	}
	switch n.kind {
	case KindInt:
		return Int(n.i - o.i), nil
	case KindFloat:
		return Float(n.f - o.f), nil
	case KindDecimal:
		return Decimal(n.d.Sub(o.d)), nil
	default:
		return Number{kind: KindRational, r: new(big.Rat).Sub(n.r, o.r)}, nil
	}
}

// Mul returns a*b
func (n Number) Mul(o Number) (Number, error) {
	if n.kind != o.kind || n.kind == KindInvalid {
		return Number{}, mismatch("multiply", n, o)
	}
	switch n.kind {
	case KindInt:
		return Int(n.i * o.i), nil
	case KindFloat:
		return Float(n.f * o.f), nil
	case KindDecimal:
		return Decimal(n.d.Mul(o.d)), nil
	default:
		return Number{kind: KindRational, r: new(big.Rat).Mul(n.r, o.r)}, nil
	}
}

// Quo returns a/b. Integers cannot be divided without leaving their representation.
func (n Number) Quo(o Number) (Number, error) {
	if n.kind != o.kind || n.kind == KindInvalid {
		return Number{}, mismatch("divide", n, o)
	}
	if o.IsZero() {
		return Number{}, ErrDivideByZero.New(n.String())
	}
	switch n.kind {
	case KindInt:
		return Number{}, ErrType.New("int values do not support division")
	case KindFloat:
		return Float(n.f / o.f), nil
	case KindDecimal:
		return Decimal(n.d.Div(o.d)), nil
	default:
		return Number{kind: KindRational, r: new(big.Rat).Quo(n.r, o.r)}, nil
	}
}

// Neg returns -n
func (n Number) Neg() Number {
	switch n.kind {
	case KindInt:
		return Int(-n.i)
	case KindFloat:
		return Float(-n.f)
	case KindDecimal:
		return Decimal(n.d.Neg())
	case KindRational:
		return Number{kind: KindRational, r: new(big.Rat).Neg(n.r)}
	}
	return n
}

// Pow returns n raised to e.
// Rationals stay exact for integral exponents; fractional exponents go through float64.
func (n Number) Pow(e Number) (Number, error) {
	if n.kind != e.kind || n.kind == KindInvalid {
		return Number{}, mismatch("raise", n, e)
	}
	if n.IsZero() && e.Sign() < 0 {
		return Number{}, ErrDivideByZero.New("1")
	}
	if e.IsZero() {
		return FromInt(n.kind, 1)
	}
	switch n.kind {
	case KindInt:
		if e.i < 0 {
			return Number{}, ErrType.New("int values do not support negative exponents")
		}
		return Int(powInt(n.i, e.i)), nil
	case KindFloat:
		return Float(math.Pow(n.f, e.f)), nil
	case KindDecimal:
		if e.d.Equal(e.d.Truncate(0)) {
			return Decimal(n.d.Pow(e.d)), nil
		}
		if n.d.Sign() < 0 {
			return Number{}, ErrType.New(fmt.Sprintf("%s raised to %s is not real", n, e))
		}
		if n.d.IsZero() {
			return n, nil
		}
		// x^e = exp(e * ln x)
		ln, err := n.d.Ln(decimalPrecision)
		if err != nil {
			return Number{}, ErrType.Wrap(err, fmt.Sprintf("%s raised to %s", n, e))
		}
		res, err := ln.Mul(e.d).ExpTaylor(decimalPrecision)
		if err != nil {
			return Number{}, ErrType.Wrap(err, fmt.Sprintf("%s raised to %s", n, e))
		}
		return Decimal(res), nil
	default:
		if e.r.IsInt() && e.r.Num().IsInt64() {
			return Number{kind: KindRational, r: powRat(n.r, e.r.Num().Int64())}, nil
		}
		bf, _ := n.r.Float64()
		ef, _ := e.r.Float64()
		res := math.Pow(bf, ef)
		if math.IsNaN(res) || math.IsInf(res, 0) {
			return Number{}, ErrType.New(fmt.Sprintf("%s raised to %s is not a rational", n, e))
		}
		return Number{kind: KindRational, r: new(big.Rat).SetFloat64(res)}, nil
	}
}

func powInt(b, e int64) int64 {
	res := int64(1)
	for e > 0 {
		if e&1 == 1 {
			res *= b
		}
		b *= b
		e >>= 1
	}
	return res
}

func powRat(b *big.Rat, e int64) *big.Rat {
	neg := e < 0
	if neg {
		e = -e
	}
	exp := big.NewInt(e)
	num := new(big.Int).Exp(b.Num(), exp, nil)
	den := new(big.Int).Exp(b.Denom(), exp, nil)
	if neg {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

// Cmp compares n and o: -1 if n < o, 0 if equal, +1 if n > o
func (n Number) Cmp(o Number) (int, error) {
	if n.kind != o.kind || n.kind == KindInvalid {
		return 0, mismatch("compare", n, o)
	}
	switch n.kind {
	case KindInt:
		switch {
		case n.i < o.i:
			return -1, nil
		case n.i > o.i:
			return 1, nil
		}
		return 0, nil
	case KindFloat:
		switch {
		case n.f < o.f:
			return -1, nil
		case n.f > o.f:
			return 1, nil
		}
		return 0, nil
	case KindDecimal:
		return n.d.Cmp(o.d), nil
	default:
		return n.r.Cmp(o.r), nil
	}
}

// Equal reports whether n and o have the same kind and value
func (n Number) Equal(o Number) bool {
	c, err := n.Cmp(o)
	return err == nil && c == 0
}

// Min returns the smaller of a and b
func Min(a, b Number) (Number, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return Number{}, err
	}
	if c <= 0 {
		return a, nil
	}
	return b, nil
}

// Max returns the larger of a and b
func Max(a, b Number) (Number, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return Number{}, err
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}

// DecimalValue exposes the decimal backing n. The second result is false for other kinds.
func (n Number) DecimalValue() (decimal.Decimal, bool) {
	if n.kind != KindDecimal {
		return decimal.Decimal{}, false
	}
	return n.d, true
}

// RatValue returns a copy of the fraction backing n. The second result is false for other kinds.
func (n Number) RatValue() (*big.Rat, bool) {
	if n.kind != KindRational {
		return nil, false
	}
	return new(big.Rat).Set(n.r), true
}
