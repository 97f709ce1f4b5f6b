// Package cache provides a shared single-slot cache for resolved
// build-definition metadata.
//
// Resolving the build definitions matching a project and filter costs a full
// round trip enumerating every definition on the server, and the answer
// rarely changes. Every other query the adapter issues is parameterized by
// that metadata and cheap to repeat, so this is the only thing worth caching.
// The cache holds at most one entry; a write for a different key evicts the
// previous one.
package cache

import "sync"

// KeySeparator joins the endpoint and filter halves of a cache key.
const KeySeparator = "|"

// Key derives the cache key for a project endpoint and definition filter.
// Adapters with equal keys may share cached metadata.
func Key(endpoint, filter string) string {
	return endpoint + KeySeparator + filter
}

// DefinitionCache is a mutex-guarded single-slot cache shared by adapter
// instances. Pass one instance to every adapter that should share it; there
// is deliberately no package-level default.
type DefinitionCache struct {
	mu       sync.Mutex
	key      string
	metadata string
	occupied bool
}

// New creates an empty DefinitionCache.
func New() *DefinitionCache {
	return &DefinitionCache{}
}

// Get returns the cached metadata for key. A key that does not match the
// resident entry is simply absent, never an error.
func (c *DefinitionCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.occupied || c.key != key {
		return "", false
	}
	return c.metadata, true
}

// Put stores metadata under key, unconditionally replacing any resident
// entry. Last writer wins.
func (c *DefinitionCache) Put(key, metadata string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.metadata = metadata
	c.occupied = true
}

// Clear empties the cache.
func (c *DefinitionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = ""
	c.metadata = ""
	c.occupied = false
}
