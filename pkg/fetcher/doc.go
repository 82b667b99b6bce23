// Package fetcher resolves term trees through a read-through session cache.
//
// A Fetch first consults the cache under a key scoped to the term set and
// locale. Hits are decoded and returned without touching the term store.
// Misses call the store, write the result back with the configured TTL, and
// return it. Concurrent misses for the same key share a single store call.
//
// Cache failures never surface: unreadable or undecodable entries are logged
// and handled as misses. Store failures are returned wrapped in
// ErrTermFetchFailed and are not retried.
package fetcher
