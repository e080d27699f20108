package fuzzy

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/alphacut/internal/numeric"
)

func TestNewAlpha_Range(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		_, err := AlphaOf(v, false)
		assert.NoError(t, err, "%v", v)
	}
	for _, v := range []float64{-0.1, 1.1} {
		_, err := AlphaOf(v, false)
		assert.True(t, ErrRange.Is(err), "%v", v)
	}
}

func TestNewAlpha_Relaxed(t *testing.T) {
	a, err := AlphaOf(-3.5, true)
	require.NoError(t, err)
	assert.True(t, a.Relaxed())

	_, err = a.Tighten()
	assert.True(t, ErrRange.Is(err))
}

func TestNewAlpha_RejectsInt(t *testing.T) {
	_, err := AlphaOf(1, false)
	assert.True(t, ErrType.Is(err))

	_, err = AlphaOf("0.5", false)
	assert.True(t, ErrType.Is(err))
}

func TestAlpha_Representations(t *testing.T) {
	d, err := AlphaOf(decimal.RequireFromString("0.25"), false)
	require.NoError(t, err)
	assert.Equal(t, numeric.KindDecimal, d.Kind())

	r, err := AlphaOf(big.NewRat(1, 4), false)
	require.NoError(t, err)
	assert.Equal(t, numeric.KindRational, r.Kind())
	assert.Equal(t, 0.25, r.Float64())
}

func TestAlpha_Arithmetic_ReturnsRelaxed(t *testing.T) {
	a := MustAlpha(0.75)
	b := MustAlpha(0.5)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Relaxed())
	assert.Equal(t, 1.25, sum.Float64())

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.Equal(t, -0.25, diff.Float64())

	q, err := b.Quo(a)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, q.Float64(), 1e-12)
}

func TestAlpha_Arithmetic_MixedRepresentations(t *testing.T) {
	f := MustAlpha(0.5)
	r := MustAlpha(big.NewRat(1, 2))

	ops := map[string]func(Alpha, Alpha) (Alpha, error){
		"add": Alpha.Add,
		"sub": Alpha.Sub,
		"mul": Alpha.Mul,
		"quo": Alpha.Quo,
		"pow": Alpha.Pow,
	}
	for name, op := range ops {
		_, err := op(f, r)
		assert.True(t, ErrType.Is(err), name)
	}

	_, err := f.Less(r)
	assert.True(t, ErrType.Is(err))
}

func TestAlpha_Quo_ByZero(t *testing.T) {
	_, err := MustAlpha(0.5).Quo(MustAlpha(0.0))
	assert.True(t, ErrDivideByZero.Is(err))
}

func TestAlpha_Equal(t *testing.T) {
	a := MustAlpha(0.5)

	eq, err := a.Equal(MustAlpha(0.5))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.Equal(0.5)
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = a.Equal(MustAlpha(decimal.RequireFromString("0.5")))
	assert.True(t, ErrType.Is(err))
}

func TestAlpha_Compare(t *testing.T) {
	lo := MustAlpha(big.NewRat(1, 3))
	hi := MustAlpha(big.NewRat(2, 3))

	less, err := lo.Less(hi)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := lo.Greater(hi)
	require.NoError(t, err)
	assert.False(t, greater)
}

func TestAlpha_String(t *testing.T) {
	assert.Equal(t, "Alpha(0.5)", MustAlpha(0.5).String())
	assert.Equal(t, "Alpha(1/3)", MustAlpha(big.NewRat(1, 3)).String())
}
