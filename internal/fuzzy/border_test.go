package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/alphacut/internal/numeric"
)

func mustBorder(t *testing.T, side Side, values ...any) Border {
	t.Helper()
	b, err := BorderOf(side, values...)
	require.NoError(t, err)
	return b
}

func TestNewBorder_Validation(t *testing.T) {
	_, err := NewBorder(nil, SideLeft)
	assert.True(t, ErrValue.Is(err))

	_, err = BorderOf(SideLeft, 1, 2.5)
	assert.True(t, ErrType.Is(err))
}

func TestNewBorder_Coverage(t *testing.T) {
	assert.False(t, mustBorder(t, SideLeft, 1, 2, 3).Covered())
	assert.True(t, mustBorder(t, SideLeft, 2, 1).Covered())
	assert.True(t, mustBorder(t, SideLeft, 1, 1).Covered())
}

func TestBorder_Add_Cartesian(t *testing.T) {
	a := mustBorder(t, SideNone, 1, 2, 3, 4, 5)
	b := mustBorder(t, SideNone, 9, 8, 7, 6, 5)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 25, sum.Len())
	assert.True(t, sum.Covered())

	want := numeric.Ints(10, 9, 8, 7, 6, 11, 10, 9, 8, 7)
	for i, w := range want {
		assert.True(t, w.Equal(sum.At(i)), "index %d: %s", i, sum.At(i))
	}
	assert.True(t, numeric.Int(10).Equal(sum.At(24)))
}

func TestBorder_Sub(t *testing.T) {
	diff, err := mustBorder(t, SideNone, 5).Sub(mustBorder(t, SideNone, 1, 2))
	require.NoError(t, err)
	assert.True(t, diff.Equal(mustBorder(t, SideNone, 4, 3)))
}

func TestBorder_Add_MixedKinds(t *testing.T) {
	_, err := mustBorder(t, SideNone, 1).Add(mustBorder(t, SideNone, 1.0))
	assert.True(t, ErrType.Is(err))
}

func TestBorder_Mul_Broadcast(t *testing.T) {
	minus := mustBorder(t, SideNone, -1)

	out, err := mustBorder(t, SideNone, 1, 2, 3).Mul(minus)
	require.NoError(t, err)
	assert.True(t, out.Equal(mustBorder(t, SideNone, -1, -2, -3)))

	out, err = minus.Mul(mustBorder(t, SideNone, 4, 5))
	require.NoError(t, err)
	assert.True(t, out.Equal(mustBorder(t, SideNone, -4, -5)))

	_, err = mustBorder(t, SideNone, 1, 2).Mul(mustBorder(t, SideNone, 3, 4))
	assert.True(t, ErrValue.Is(err))
}

func TestBorder_Tagged(t *testing.T) {
	_, err := mustBorder(t, SideNone, 1).Tagged()
	assert.True(t, ErrType.Is(err))

	tagged, err := mustBorder(t, SideRight, 1, 2).Tagged()
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	assert.Equal(t, SideRight, tagged[1].Side)
	assert.True(t, numeric.Int(2).Equal(tagged[1].Coord))
}

func TestBorder_String(t *testing.T) {
	assert.Equal(t, "Border((1,))", mustBorder(t, SideNone, 1).String())
	assert.Equal(t, "Border((1, 2))", mustBorder(t, SideNone, 1, 2).String())
}

func TestUncover_SeparatesIntervals(t *testing.T) {
	left := mustBorder(t, SideLeft, 2.0, 1.0)
	right := mustBorder(t, SideRight, 1.5, 2.5)

	l, r, err := Uncover(left, right)
	require.NoError(t, err)
	assert.True(t, l.Equal(mustBorder(t, SideLeft, 1.0, 2.0)))
	assert.True(t, r.Equal(mustBorder(t, SideRight, 1.5, 2.5)))
	assert.False(t, l.Covered())
	assert.False(t, r.Covered())
}

func TestUncover_MergesOverlaps(t *testing.T) {
	a := mustBorder(t, SideNone, 1, 2, 3, 4, 5)
	b := mustBorder(t, SideNone, 9, 8, 7, 6, 5)
	left, err := a.Add(b)
	require.NoError(t, err)
	right, err := left.Add(mustBorder(t, SideNone, 3))
	require.NoError(t, err)

	l, r, err := Uncover(left, right)
	require.NoError(t, err)
	assert.True(t, l.Equal(mustBorder(t, SideLeft, 6)))
	assert.True(t, r.Equal(mustBorder(t, SideRight, 17)))
}

func TestUncover_TouchingIntervalsMerge(t *testing.T) {
	l, r, err := Uncover(mustBorder(t, SideLeft, 0, 1), mustBorder(t, SideRight, 1, 2))
	require.NoError(t, err)
	assert.True(t, l.Equal(mustBorder(t, SideLeft, 0)))
	assert.True(t, r.Equal(mustBorder(t, SideRight, 2)))
}

func TestUncover_Errors(t *testing.T) {
	_, _, err := Uncover(mustBorder(t, SideLeft, 1.0), mustBorder(t, SideRight, -1.0))
	assert.True(t, ErrMalformedInterval.Is(err))

	_, _, err = Uncover(mustBorder(t, SideLeft, 1, 2), mustBorder(t, SideRight, 3))
	assert.True(t, ErrValue.Is(err))

	_, _, err = Uncover(mustBorder(t, SideLeft, 1), mustBorder(t, SideRight, 3.0))
	assert.True(t, ErrType.Is(err))
}

func TestAreLeftRight(t *testing.T) {
	assert.NoError(t, AreLeftRight(mustBorder(t, SideLeft, 0, 5), mustBorder(t, SideRight, 2, 7)))

	err := AreLeftRight(mustBorder(t, SideLeft, 0.0), mustBorder(t, SideRight, 2))
	assert.True(t, ErrType.Is(err))

	err = AreLeftRight(mustBorder(t, SideLeft, 0), mustBorder(t, SideRight, 2, 3))
	assert.True(t, ErrValue.Is(err))

	err = AreLeftRight(mustBorder(t, SideLeft, 3), mustBorder(t, SideRight, 2))
	assert.True(t, ErrValue.Is(err))

	err = AreLeftRight(mustBorder(t, SideLeft, 0, 1), mustBorder(t, SideRight, 2, 3))
	assert.True(t, ErrValue.Is(err))

	err = AreLeftRight(mustBorder(t, SideLeft, 1, 1), mustBorder(t, SideRight, 1, 1))
	assert.True(t, ErrValue.Is(err))
}
