// Package cache keeps rendered documents in memory between requests.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Cache defines the interface for caching rendered documents.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey derives a cache key from everything that shapes a rendered
// program: the output format, the month and both verses.
func DocumentKey(format string, year, month int, frenchVerse, arabicVerse string) string {
	h := sha256.New()
	for _, part := range []string{format, strconv.Itoa(year), strconv.Itoa(month), frenchVerse, arabicVerse} {
		h.Write([]byte(part))
		// separator so ("ab","c") and ("a","bc") differ
		h.Write([]byte{0})
	}
	return "synaxaire:v1:" + hex.EncodeToString(h.Sum(nil))
}
