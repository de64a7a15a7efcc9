// Package intern implements the document-scoped string cache that turns
// repeated string content into backward pointers.
package intern

import "github.com/bigdig/fleece/internal/hash"

type entry struct {
	content string // kept to detect xxhash collisions
	pos     int    // absolute position of the most recent full instance
}

// Cache maps string content to the absolute position of the most recently
// written full (non-pointer) instance of that content. It is owned by the
// root scope, shared by reference with every descendant scope, and cleared
// only when the root resets. The cache is advisory: a lost or evicted entry
// costs only a duplicated literal, never correctness.
type Cache struct {
	entries map[uint64]entry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[uint64]entry),
	}
}

// Lookup returns the recorded position of content and whether one exists.
// A hash slot occupied by different content counts as a miss.
func (c *Cache) Lookup(content string) (int, bool) {
	e, ok := c.entries[c.key(content)]
	if !ok || e.content != content {
		return 0, false
	}

	return e.pos, true
}

// Insert records pos as the canonical instance of content, replacing any
// previous entry. Callers use this both for first writes and for the
// most-recent-instance-wins update after an out-of-range pointer forced a
// fresh literal.
func (c *Cache) Insert(content string, pos int) {
	c.entries[c.key(content)] = entry{content: content, pos: pos}
}

// Len returns the number of cached strings.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Reset clears all entries but preserves map capacity for reuse.
func (c *Cache) Reset() {
	clear(c.entries)
}

func (c *Cache) key(content string) uint64 {
	return hash.ID(content)
}
