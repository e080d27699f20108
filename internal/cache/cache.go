package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/alphacut/internal/fuzzy"
)

// Cache memoises fuzzy set combination results
type Cache interface {
	Get(key string) (*fuzzy.FuzzySet, bool)
	Set(key string, value *fuzzy.FuzzySet, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key for op applied to left and right with the named t-norm.
// Operand fingerprints include representations, so float and decimal inputs never collide.
func CacheKey(op, tnorm string, left, right *fuzzy.FuzzySet) string {
	h := sha256.New()
	for _, part := range []string{op, tnorm, left.Fingerprint(), right.Fingerprint()} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "alphacut:v1:" + hex.EncodeToString(h.Sum(nil))
}
