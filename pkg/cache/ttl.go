package cache

import (
	"container/list"
	"sync"
	"time"
)

type ttlEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// TTLCache is a thread-safe LRU cache with per-entry expiry. When full,
// the least recently used entry is evicted; expired entries are dropped
// lazily on read.
type TTLCache[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	items    map[K]*list.Element
	order    *list.List
	now      func() time.Time
	mu       sync.Mutex
}

// NewTTLCache creates a cache holding at most capacity entries, each
// valid for ttl after being set. Panics on a non-positive capacity.
// A non-positive ttl disables expiry and leaves eviction to LRU order.
func NewTTLCache[K comparable, V any](capacity int, ttl time.Duration) *TTLCache[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	return &TTLCache[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the cached value and marks it as recently used.
// Expired entries are removed and reported as missing.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	entry := elem.Value.(*ttlEntry[K, V])
	if c.expired(entry) {
		c.remove(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return entry.value, true
}

// Set stores a value, refreshing its expiry. The oldest entry is evicted
// when the cache is full.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*ttlEntry[K, V])
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&ttlEntry[K, V]{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = elem

	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// Remove drops the entry for key. Missing keys are a no-op, so it can be
// wired directly as an invalidation callback.
func (c *TTLCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

// Len reports the number of entries, including not yet collected
// expired ones.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every entry.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.order.Init()
}

func (c *TTLCache[K, V]) expired(entry *ttlEntry[K, V]) bool {
	return !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt)
}

// Must be called with the lock held.
func (c *TTLCache[K, V]) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*ttlEntry[K, V]).key)
}
