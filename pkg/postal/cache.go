package postal

import (
	"sync"
)

// addressCache is a process-lifetime cache of resolved addresses keyed
// by (country, normalized postal code). There is no TTL: postal
// geography changes rarely enough that entries simply live until the
// process restarts or Flush is called.
type addressCache struct {
	mu      sync.RWMutex
	entries map[string]Address
}

func newAddressCache() *addressCache {
	return &addressCache{entries: make(map[string]Address)}
}

func cacheKey(countryCode, postalCode string) string {
	return countryCode + ":" + NormalizeCode(postalCode)
}

func (c *addressCache) Get(countryCode, postalCode string) (Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	addr, ok := c.entries[cacheKey(countryCode, postalCode)]
	return addr, ok
}

func (c *addressCache) Put(addr Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(addr.CountryCode, addr.PostalCode)] = addr
}

// PutIfAbsent stores the address only if no entry exists for its key.
// Used by the bulk dataset load so the first-seen record wins.
func (c *addressCache) PutIfAbsent(addr Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(addr.CountryCode, addr.PostalCode)
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = addr
	}
}

func (c *addressCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *addressCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Address)
}
