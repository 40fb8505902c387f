package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"morphseg/internal/domain"
)

// DecisionCache is an LRU of per-word segmentation records. Records are
// tied to a generation; Invalidate bumps it whenever the backing trie
// changes.
//
// Lookups of words that are not cached only take the read lock, so
// scoring goroutines working on distinct words do not queue behind each
// other. A hit takes the write lock to refresh recency in O(1).
type DecisionCache struct {
	mu      sync.RWMutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
	maxSize int
	gen     uint64
	hits    atomic.Uint64
	misses  atomic.Uint64
}

type cacheEntry struct {
	word   string
	record domain.SegmentationRecord
	gen    uint64
}

// NewDecisionCache returns a cache holding at most maxSize words, or nil
// when maxSize is not positive.
func NewDecisionCache(maxSize int) *DecisionCache {
	if maxSize <= 0 {
		return nil
	}
	return &DecisionCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
	}
}

func (c *DecisionCache) Get(word string) (domain.SegmentationRecord, bool) {
	c.mu.RLock()
	_, exists := c.entries[word]
	c.mu.RUnlock()
	if !exists {
		c.misses.Add(1)
		return domain.SegmentationRecord{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// the entry may have been evicted between the two locks
	elem, exists := c.entries[word]
	if !exists {
		c.misses.Add(1)
		return domain.SegmentationRecord{}, false
	}
	entry := elem.Value.(*cacheEntry)
	if entry.gen != c.gen {
		c.removeElement(elem)
		c.misses.Add(1)
		return domain.SegmentationRecord{}, false
	}

	c.order.MoveToFront(elem)
	c.hits.Add(1)
	return entry.record, true
}

func (c *DecisionCache) Put(word string, rec domain.SegmentationRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.entries[word]; exists {
		entry := elem.Value.(*cacheEntry)
		entry.record = rec
		entry.gen = c.gen
		c.order.MoveToFront(elem)
		return
	}

	c.entries[word] = c.order.PushFront(&cacheEntry{word: word, record: rec, gen: c.gen})
	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Invalidate drops every entry.
func (c *DecisionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.gen++
}

func (c *DecisionCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// Stats returns hit and miss counts since creation.
func (c *DecisionCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Must be called with the write lock held.
func (c *DecisionCache) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*cacheEntry).word)
}
