// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credential

import "sync"

// Cache holds the credential fetched from the secret store for the lifetime
// of the process. It is never invalidated. An empty value does not count as
// cached, so a secret without a usable key is fetched again next time.
type Cache struct {
	mu    sync.Mutex
	value string
}

// Load returns the cached credential and whether one is present.
func (c *Cache) Load() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.value != ""
}

// Store records key. Storing "" leaves the cache empty.
func (c *Cache) Store(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = key
}
