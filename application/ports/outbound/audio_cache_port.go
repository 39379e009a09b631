package outbound

import "context"

// AudioCachePort stores synthesized audio under deterministic keys with a
// TTL. Implementations honor an enable flag: when disabled, Get reports a
// clean absence and Set is a no-op, without contacting the backing store.
type AudioCachePort interface {
	// Get returns the cached bytes and whether the key was present. A miss
	// is (nil, false, nil); only store failures produce an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key with the configured expiry. Safe to call
	// for keys that were never looked up.
	Set(ctx context.Context, key string, data []byte) error
	Enabled() bool
}
