package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a namespaced cache key from arbitrary text (search queries,
// embedding inputs). Hashing keeps long abstracts out of the key space.
func Key(namespace, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "veridex:v1:" + namespace + ":" + hex.EncodeToString(hash[:])
}
