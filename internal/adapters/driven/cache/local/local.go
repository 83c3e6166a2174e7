// Package local provides the in-process tier of the result cache: a
// bounded LRU map keyed by canonical query key. Eviction happens on
// insert once the bound is reached; expired entries are dropped lazily
// on read.
package local

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// DefaultCapacity bounds the local tier when no capacity is configured.
const DefaultCapacity = 1000

// Cache is a bounded in-memory LRU cache tier.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

var _ driven.CacheTier = (*Cache)(nil)

type cacheNode struct {
	key   string
	entry *domain.CacheEntry
}

// New creates a local cache tier bounded to capacity entries.
// Non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the entry for key, promoting it to most recently used.
// Expired entries are removed and reported as a miss.
func (c *Cache) Get(_ context.Context, key string) (*domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	node := elem.Value.(*cacheNode)
	if node.entry.Expired(time.Now()) {
		c.remove(elem)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return node.entry, true
}

// Put stores an entry, evicting the least recently used entry when the
// cache is full. The TTL is applied through the entry's ExpiresAt when
// the entry does not carry one already.
func (c *Cache) Put(_ context.Context, entry *domain.CacheEntry, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	if elem, ok := c.entries[entry.Key]; ok {
		elem.Value.(*cacheNode).entry = entry
		c.order.MoveToFront(elem)
		return nil
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}

	elem := c.order.PushFront(&cacheNode{key: entry.Key, entry: entry})
	c.entries[entry.Key] = elem
	return nil
}

// Invalidate drops every entry whose result set references any of the
// given content IDs.
func (c *Cache) Invalidate(_ context.Context, contentIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []*list.Element
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*cacheNode).entry
		for _, id := range contentIDs {
			if entry.References(id) {
				stale = append(stale, elem)
				break
			}
		}
	}
	for _, elem := range stale {
		c.remove(elem)
	}
	return nil
}

// Close releases resources. The local tier has none.
func (c *Cache) Close() error {
	return nil
}

// Len returns the number of cached entries, expired included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// remove must be called with the lock held.
func (c *Cache) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*cacheNode).key)
}
