package interfaces

import "time"

// -----------------------------------------------------------------------------
// ICache is an injectable store for upstream responses with per-entry expiry.
// Constructed once per process and passed by reference; never ambient state.
// -----------------------------------------------------------------------------

type ICache interface {

	// Set stores a value under key for ttl.
	Set(key string, value interface{}, ttl time.Duration)

	// -----------------------------------------------------------------------------

	// Get returns the value and true if present and not expired.
	Get(key string) (interface{}, bool)

	// -----------------------------------------------------------------------------

	// Clear drops all entries.
	Clear()
}
