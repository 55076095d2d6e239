package compkey

import lru "github.com/hashicorp/golang-lru"

// KeepAlive pins recently used composite keys in an LRU so their tokens
// are not reclaimed between lookups. Without a pin, a key whose handles
// have all gone out of scope is re-interned from scratch on the next
// construction; with one, hot sequences keep their trie path warm. One
// KeepAlive can be shared by any number of containers.
type KeepAlive struct {
	cache *lru.ARCCache
}

// NewKeepAlive creates a keep-alive pinning up to size keys.
func NewKeepAlive(size int) *KeepAlive {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return &KeepAlive{cache: cache}
}

// Add pins k, possibly evicting the least recently used pin.
func (ka *KeepAlive) Add(k *CompositeKey) {
	if k == nil || k.token == nil {
		return
	}
	ka.cache.Add(k.token, k)
}

// Contains reports whether a key equal to k is currently pinned.
func (ka *KeepAlive) Contains(k *CompositeKey) bool {
	if k == nil || k.token == nil {
		return false
	}
	return ka.cache.Contains(k.token)
}

// Len returns the number of pinned keys.
func (ka *KeepAlive) Len() int {
	return ka.cache.Len()
}

// Purge drops every pin.
func (ka *KeepAlive) Purge() {
	ka.cache.Purge()
}
