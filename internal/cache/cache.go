// Package cache memoizes query results by filter signature. It is the only
// mutable shared structure in the engine: concurrent callers may race on a
// miss and compute the same result twice, which is harmless because both
// insert identical values.
package cache

import (
	"container/list"
	"sync"
)

type entry struct {
	key     string
	version uint64
	value   interface{}
}

// Cache is a bounded least-recently-used map from filter signature to a
// computed result. The filter space is small in practice, so the bound only
// guards memory on pathological workloads.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 128
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*entry).value, true
}

func (c *Cache) Set(key string, version uint64, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*entry).value = value
		return
	}
	c.items[key] = c.ll.PushFront(&entry{key: key, version: version, value: value})
	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// InvalidateVersion drops every entry computed against the given snapshot
// version. Signatures embed the version, so entries for a superseded
// snapshot could never be returned for the new one; this just frees them
// eagerly.
func (c *Cache) InvalidateVersion(version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for el := c.ll.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*entry).version == version {
			c.ll.Remove(el)
			delete(c.items, el.Value.(*entry).key)
		}
		el = next
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
