package listdetail

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CacheConfig controls the per-Context response cache.
type CacheConfig struct {
	Enabled   bool
	ListTTL   time.Duration
	DetailTTL time.Duration
	MaxSize   int
}

// Defaults used when a CacheConfig field is left zero.
const (
	DefaultListTTL      = 5 * time.Minute
	DefaultDetailTTL    = 10 * time.Minute
	DefaultMaxCacheSize = 100
)

// DefaultCacheConfig returns an enabled cache with the default limits.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:   true,
		ListTTL:   DefaultListTTL,
		DetailTTL: DefaultDetailTTL,
		MaxSize:   DefaultMaxCacheSize,
	}
}

func (c CacheConfig) withDefaults() CacheConfig {
	if c.ListTTL <= 0 {
		c.ListTTL = DefaultListTTL
	}
	if c.DetailTTL <= 0 {
		c.DetailTTL = DefaultDetailTTL
	}
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxCacheSize
	}
	return c
}

// CacheStats reports cache activity since construction.
type CacheStats struct {
	Enabled   bool
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
}

type cacheEntry struct {
	key       string
	value     any
	expiresAt time.Time
}

// Cache is a bounded TTL store with FIFO eviction: when full, the entry
// inserted first is dropped, regardless of how recently it was read.
type Cache struct {
	clock   clockwork.Clock
	enabled bool
	maxSize int

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = oldest insertion
	stats   CacheStats
}

// NewCache builds a cache from cfg. A nil clock uses the real clock.
func NewCache(cfg CacheConfig, clock clockwork.Clock) *Cache {
	cfg = cfg.withDefaults()
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		clock:   clock,
		enabled: cfg.Enabled,
		maxSize: cfg.MaxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the live value under key. Expired entries are purged and
// reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)
	if !c.clock.Now().Before(entry.expiresAt) {
		c.removeElement(elem)
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return entry.value, true
}

// Set stores value under key for ttl. Re-setting a key counts as a fresh
// insertion. A non-positive ttl stores nothing.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if !c.enabled || ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeElement(elem)
	}
	for c.order.Len() >= c.maxSize {
		c.removeElement(c.order.Front())
		c.stats.Evictions++
	}
	entry := &cacheEntry{key: key, value: value, expiresAt: c.clock.Now().Add(ttl)}
	c.entries[key] = c.order.PushBack(entry)
}

// Invalidate drops key if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.removeElement(elem)
	}
}

// InvalidatePrefix drops every key starting with prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, elem := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeElement(elem)
		}
	}
}

// Clear empties the cache. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a copy of the counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := c.stats
	stats.Enabled = c.enabled
	stats.Size = c.order.Len()
	stats.MaxSize = c.maxSize
	return stats
}

// removeElement must be called with mu held.
func (c *Cache) removeElement(elem *list.Element) {
	entry := c.order.Remove(elem).(*cacheEntry)
	delete(c.entries, entry.key)
}
