package server

import (
	"container/list"
	"sync"
)

type cacheKey struct {
	uri   string
	gen   uint64
	op    string
	pos   int
	where string
}

type cacheEntry struct {
	key    cacheKey
	result any
}

// resultCache is a least recently used cache of query results.
type resultCache struct {
	size int

	mu    sync.Mutex
	order *list.List
	items map[cacheKey]*list.Element
}

// newResultCache returns a cache holding up to size results. A cache with a
// non-positive size stores nothing.
func newResultCache(size int) *resultCache {
	return &resultCache{
		size:  size,
		order: list.New(),
		items: make(map[cacheKey]*list.Element),
	}
}

func (c *resultCache) get(key cacheKey) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).result, true
}

func (c *resultCache) put(key cacheKey, result any) {
	if c.size <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).result = result
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, result: result})
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

// invalidate drops all results for the document.
func (c *resultCache) invalidate(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if e := el.Value.(*cacheEntry); e.key.uri == uri {
			c.order.Remove(el)
			delete(c.items, e.key)
		}
		el = next
	}
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
