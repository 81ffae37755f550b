package domain

import m "strata.dev/pkg/strata/internal/model"

type cacheState int

const (
	stateInProgress cacheState = iota + 1
	stateDone
)

type cacheEntry struct {
	state   cacheState
	verdict m.CacheVerdict
}

// moduleCache memoizes recursive resolution. Each name is absent,
// in progress (on the current import stack) or done; done entries are
// never replaced or evicted.
type moduleCache struct {
	entries map[string]*cacheEntry
	stack   []string
}

func newModuleCache() *moduleCache {
	return &moduleCache{entries: make(map[string]*cacheEntry)}
}

func (c *moduleCache) lookup(name string) (*cacheEntry, bool) {
	entry, ok := c.entries[name]
	return entry, ok
}

func (c *moduleCache) begin(name string) {
	c.entries[name] = &cacheEntry{state: stateInProgress}
	c.stack = append(c.stack, name)
}

func (c *moduleCache) finish(name string, verdict m.CacheVerdict) {
	c.entries[name] = &cacheEntry{state: stateDone, verdict: verdict}
	c.pop(name)
}

// abandon drops the in-progress marker after a fault so a later call can
// retry from scratch.
func (c *moduleCache) abandon(name string) {
	if entry, ok := c.entries[name]; ok && entry.state == stateInProgress {
		delete(c.entries, name)
	}

	c.pop(name)
}

func (c *moduleCache) pop(name string) {
	if n := len(c.stack); n > 0 && c.stack[n-1] == name {
		c.stack = c.stack[:n-1]
	}
}

// cycle returns the import chain that leads back to name.
func (c *moduleCache) cycle(name string) []string {
	for i, entry := range c.stack {
		if entry == name {
			chain := append([]string(nil), c.stack[i:]...)
			return append(chain, name)
		}
	}

	return []string{name, name}
}

func (c *moduleCache) len() int {
	return len(c.entries)
}
