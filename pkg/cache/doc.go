// Package cache defines the session-scoped cache store used to guard term
// store fetches, together with an in-memory implementation and the default
// key derivation.
//
// Stores hold opaque byte payloads with a per-entry TTL. An expired entry is
// indistinguishable from a miss:
//
//	store := cache.NewMemory()
//	_ = store.Put(ctx, key, payload, 15*time.Minute)
//	value, ok, err := store.Get(ctx, key)
//
// Callers that decode payloads should treat decoding failures as
// ErrCacheCorrupt and fall back to the source of truth.
package cache
