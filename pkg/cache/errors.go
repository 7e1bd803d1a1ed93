package cache

import "errors"

// Sentinel errors for caching operations. Misses are reported through the
// Get contract's boolean, not as errors, so the only error condition shared
// across backends is reachability.
var (
	// ErrUnavailable is returned when a remote backend cannot be reached.
	ErrUnavailable = errors.New("cache backend unavailable")
)
