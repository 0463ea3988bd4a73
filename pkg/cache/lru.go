package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruCache struct {
	mu                 sync.Mutex
	maxEntriesPerSpace int
	// spaceLists maps namespace -> LRU list of *Entry (front = most recent)
	spaceLists map[string]*list.List
	// elements maps entryKey -> *list.Element for O(1) lookup
	elements map[string]*list.Element
}

// NewLRU returns a Cache backed by a per-namespace LRU eviction policy.
// maxEntriesPerSpace is the maximum number of entries retained per namespace.
func NewLRU(maxEntriesPerSpace int) Cache {
	return &lruCache{
		maxEntriesPerSpace: maxEntriesPerSpace,
		spaceLists:         make(map[string]*list.List),
		elements:           make(map[string]*list.Element),
	}
}

func entryKey(namespace, key string) string {
	return namespace + "\x00" + key
}

func (c *lruCache) Set(namespace, key, value string, opts ...Option) error {
	o := &setOptions{}
	for _, opt := range opts {
		opt(o)
	}

	now := time.Now()
	var expiresAt *time.Time
	if o.ttl > 0 {
		t := now.Add(o.ttl)
		expiresAt = &t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ek := entryKey(namespace, key)

	if elem, ok := c.elements[ek]; ok {
		// Update existing entry and move to front.
		e := elem.Value.(*Entry)
		e.Value = value
		e.ExpiresAt = expiresAt
		e.UpdatedAt = now
		c.spaceLists[namespace].MoveToFront(elem)
		return nil
	}

	// New entry.
	entry := &Entry{
		Key:       key,
		Value:     value,
		Namespace: namespace,
		ExpiresAt: expiresAt,
		UpdatedAt: now,
		CreatedAt: now,
	}

	l, ok := c.spaceLists[namespace]
	if !ok {
		l = list.New()
		c.spaceLists[namespace] = l
	}

	// Evict from back when at capacity.
	if l.Len() >= c.maxEntriesPerSpace {
		back := l.Back()
		if back != nil {
			evicted := l.Remove(back).(*Entry)
			delete(c.elements, entryKey(evicted.Namespace, evicted.Key))
		}
	}

	elem := l.PushFront(entry)
	c.elements[ek] = elem
	return nil
}

func (c *lruCache) Get(namespace, key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ek := entryKey(namespace, key)
	elem, ok := c.elements[ek]
	if !ok {
		return Entry{}, false
	}

	e := elem.Value.(*Entry)

	// Lazy TTL eviction.
	if e.ExpiresAt != nil && time.Now().After(*e.ExpiresAt) {
		c.spaceLists[namespace].Remove(elem)
		delete(c.elements, ek)
		if c.spaceLists[namespace].Len() == 0 {
			delete(c.spaceLists, namespace)
		}
		return Entry{}, false
	}

	c.spaceLists[namespace].MoveToFront(elem)
	return *e, true
}

func (c *lruCache) Delete(namespace, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ek := entryKey(namespace, key)
	elem, ok := c.elements[ek]
	if !ok {
		return false
	}

	c.spaceLists[namespace].Remove(elem)
	delete(c.elements, ek)
	if c.spaceLists[namespace].Len() == 0 {
		delete(c.spaceLists, namespace)
	}
	return true
}

func (c *lruCache) List(namespace string) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.spaceLists[namespace]
	if !ok {
		return nil
	}

	now := time.Now()
	var result []Entry
	var toRemove []*list.Element

	for elem := l.Front(); elem != nil; elem = elem.Next() {
		e := elem.Value.(*Entry)
		if e.ExpiresAt != nil && now.After(*e.ExpiresAt) {
			toRemove = append(toRemove, elem)
			continue
		}
		result = append(result, *e)
	}

	// Clean up expired entries found during iteration.
	for _, elem := range toRemove {
		e := elem.Value.(*Entry)
		l.Remove(elem)
		delete(c.elements, entryKey(e.Namespace, e.Key))
	}
	if l.Len() == 0 {
		delete(c.spaceLists, namespace)
	}

	return result
}

func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, l := range c.spaceLists {
		total += l.Len()
	}
	return total
}
