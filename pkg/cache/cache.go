// Package cache provides pluggable result caching for expensive solves.
//
// The experiment runner uses a Cache to memoize work that is fully
// determined by its inputs: the Hungarian baseline for a generated cost
// matrix, and search results keyed by problem instance, algorithm, and seed.
// Backends range from a no-op [NullCache] through a local [FileCache] to the
// shared [RedisCache] and [MongoCache] used when experiment sweeps run on
// more than one machine.
//
// Keys are produced by a [Keyer] so that every backend sees the same
// namespace layout and key construction stays in one place.
package cache

import (
	"context"
	"time"
)

// Cache is the storage contract shared by all backends.
type Cache interface {
	// Get returns the data stored under key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Keyer generates cache keys for the cacheable artifacts of an experiment
// run. problemHash identifies a problem instance (a hash of its serialized
// form), so cached entries survive across processes as long as the instance
// is regenerated identically.
type Keyer interface {
	// BaselineKey keys the exact baseline solution of a problem instance.
	BaselineKey(problemHash string) string

	// ResultKey keys one algorithm's result on a problem instance. The
	// seed participates because stochastic algorithms produce different
	// results per seed.
	ResultKey(problemHash, algorithm string, seed uint64) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BaselineKey generates a key for a baseline solution.
func (DefaultKeyer) BaselineKey(problemHash string) string {
	return hashKey("baseline", problemHash)
}

// ResultKey generates a key for an algorithm result.
func (DefaultKeyer) ResultKey(problemHash, algorithm string, seed uint64) string {
	return hashKey("result", problemHash, algorithm, seed)
}

// ScopedKeyer wraps a Keyer with a prefix, isolating the cache namespaces of
// concurrent experiment sweeps that share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer falls back to the default layout.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BaselineKey generates a prefixed baseline key.
func (k *ScopedKeyer) BaselineKey(problemHash string) string {
	return k.prefix + k.inner.BaselineKey(problemHash)
}

// ResultKey generates a prefixed result key.
func (k *ScopedKeyer) ResultKey(problemHash, algorithm string, seed uint64) string {
	return k.prefix + k.inner.ResultKey(problemHash, algorithm, seed)
}
