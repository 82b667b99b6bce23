package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// DefaultTTL matches the fifteen minute session cache used for navigation
// terms.
const DefaultTTL = 900 * time.Second

var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
	// ErrCacheCorrupt marks a cached payload that could not be decoded. It is
	// never surfaced past the fetcher; the entry is treated as a miss.
	ErrCacheCorrupt = errors.New("cache: corrupt entry")
)

// Store is a session-scoped key/value cache with per-entry expiry.
//
// Get returns (nil, false, nil) on a miss or an expired entry. Put overwrites
// any previous entry for the key; entries are never mutated in place.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Entry is a single cached payload.
type Entry struct {
	Key       string
	Value     []byte
	WrittenAt time.Time
	TTL       time.Duration
}

// ExpiresAt returns WrittenAt + TTL. A non-positive TTL never expires.
func (e Entry) ExpiresAt() time.Time {
	if e.TTL <= 0 {
		return time.Time{}
	}
	return e.WrittenAt.Add(e.TTL)
}

// Expired reports whether the entry is no longer servable at now.
func (e Entry) Expired(now time.Time) bool {
	expires := e.ExpiresAt()
	if expires.IsZero() {
		return false
	}
	return !now.Before(expires)
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
