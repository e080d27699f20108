package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/alphacut/internal/fuzzy"
	"github.com/ppiankov/alphacut/internal/numeric"
)

func testSet(t *testing.T, level any, left, right int64) *fuzzy.FuzzySet {
	t.Helper()
	cut, err := fuzzy.NewAlphaCutOf(level, numeric.Ints(left), numeric.Ints(right))
	require.NoError(t, err)
	fs, err := fuzzy.NewFuzzySet(cut)
	require.NoError(t, err)
	return fs
}

func TestCacheKey(t *testing.T) {
	a := testSet(t, 0.5, 0, 1)
	b := testSet(t, 0.5, 0, 2)

	k1 := CacheKey("add", "min", a, b)
	assert.Equal(t, k1, CacheKey("add", "min", a, b))
	assert.Contains(t, k1, "alphacut:v1:")
	assert.NotEqual(t, k1, CacheKey("add", "min", b, a))
	assert.NotEqual(t, k1, CacheKey("sub", "min", a, b))
	assert.NotEqual(t, k1, CacheKey("add", "product", a, b))
}

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	fs := testSet(t, 0.5, 0, 1)

	_, found := c.Get("k")
	assert.False(t, found)

	require.NoError(t, c.Set("k", fs, 0))
	got, found := c.Get("k")
	require.True(t, found)
	assert.True(t, got.Equal(fs))

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", testSet(t, 0.5, 0, 10), 0))

	got, _ := c.Get("k")
	extra, err := fuzzy.NewAlphaCutOf(0.9, numeric.Ints(2), numeric.Ints(3))
	require.NoError(t, err)
	require.NoError(t, got.AddAlphaCut(extra))

	again, _ := c.Get("k")
	assert.Equal(t, 1, again.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", testSet(t, 0.5, 0, 1), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("a", testSet(t, 0.5, 0, 1), 0))
	require.NoError(t, c.Set("b", testSet(t, 0.5, 0, 1), 0))

	require.NoError(t, c.Delete("a"))
	_, found := c.Get("a")
	assert.False(t, found)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}
