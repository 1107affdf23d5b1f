// Package cache provides a capacity- and memory-bounded key/value store
// with pluggable eviction (LRU, LFU, FIFO), TTL expiry, and hit/miss
// accounting, plus an adaptive variant that resizes itself from its
// observed hit rate.
//
// Get, Set, and the eviction path are O(1) for the LRU strategy via a hash
// map paired with a doubly linked recency list. LFU and FIFO trade that
// for an O(n) scan at eviction time, preserving the first-found tie-break
// of map iteration order.
//
// All operations are short mutex-guarded critical sections; a cache is
// safe for concurrent use. LRU reordering on read is a write to the
// recency list, which is why reads take the same lock as writes.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/swatchkit/swatchkit/internal/sizeof"
)

// Strategy selects the eviction policy. It is fixed at construction.
type Strategy string

// Supported eviction strategies.
const (
	// LRU evicts the least recently accessed entry (recency-list tail).
	LRU Strategy = "lru"

	// LFU evicts the entry with the smallest access count; ties go to the
	// first entry found in iteration order.
	LFU Strategy = "lfu"

	// FIFO evicts the entry with the earliest creation time; ties go to
	// the first entry found in iteration order.
	FIFO Strategy = "fifo"
)

// Default option values.
const (
	DefaultMaxSize         = 100
	DefaultCleanupInterval = 60 * time.Second

	// entryOverhead is the fixed byte cost charged per entry on top of the
	// estimated value size (key, timestamps, list element).
	entryOverhead = 64
)

// Options configures an EvictionCache. The zero value normalizes to
// {MaxSize: 100, MaxMemory: unbounded, DefaultTTL: never, Strategy: LRU,
// CleanupInterval: 60s}.
type Options struct {
	// MaxSize is the item-count bound. Exceeding it evicts one entry by
	// policy before insertion.
	MaxSize int `json:"max_size"`

	// MaxMemory is an optional byte budget. Zero means unbounded. When an
	// insertion would exceed it, expired entries are purged first, then
	// entries are evicted by policy until the budget is satisfied or the
	// cache is empty.
	MaxMemory int64 `json:"max_memory"`

	// DefaultTTL applies to entries stored with Set. Zero means entries
	// never expire.
	DefaultTTL time.Duration `json:"default_ttl"`

	// Strategy is the eviction policy, immutable after construction.
	Strategy Strategy `json:"strategy"`

	// CleanupInterval is the suggested period for scheduled Cleanup calls.
	// The cache does not schedule anything itself; the owner (typically a
	// memory.Coordinator) does.
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxSize:         DefaultMaxSize,
		Strategy:        LRU,
		CleanupInterval: DefaultCleanupInterval,
	}
}

func (o Options) normalized() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.MaxMemory < 0 {
		o.MaxMemory = 0
	}
	if o.DefaultTTL < 0 {
		o.DefaultTTL = 0
	}
	switch o.Strategy {
	case LRU, LFU, FIFO:
	default:
		o.Strategy = LRU
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = DefaultCleanupInterval
	}
	return o
}

// Stats is a snapshot of cache accounting.
type Stats struct {
	Size        int     `json:"size"`
	MaxSize     int     `json:"max_size"`
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	HitRate     float64 `json:"hit_rate"`
	Evictions   uint64  `json:"evictions"`
	MemoryUsage int64   `json:"memory_usage"`
	Utilization float64 `json:"utilization"` // Size/MaxSize, 0-1
}

// entry is the unit of storage. Each entry lives in exactly one cache, in
// both the hash index and the recency list; the two are always updated
// together under the cache mutex.
type entry[V any] struct {
	key          string
	value        V
	createdAt    time.Time
	lastAccessed time.Time
	accessCount  int64
	expiresAt    time.Time // zero means never
	sizeBytes    int64
	elem         *list.Element
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// EvictionCache is a bounded in-memory key/value store.
type EvictionCache[V any] struct {
	mu      sync.Mutex
	opts    Options
	entries map[string]*entry[V]
	order   *list.List // front = most recently used
	memory  int64

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a cache with the given options.
func New[V any](opts Options) *EvictionCache[V] {
	opts = opts.normalized()
	return &EvictionCache[V]{
		opts:    opts,
		entries: make(map[string]*entry[V], opts.MaxSize),
		order:   list.New(),
	}
}

// Set stores a value under key with the cache's default TTL. A blank key
// fails with *InvalidKeyError; capacity pressure never fails, the cache
// always makes room.
func (c *EvictionCache[V]) Set(key string, value V) error {
	return c.SetTTL(key, value, c.opts.DefaultTTL)
}

// SetTTL stores a value with an explicit TTL. A zero ttl means the entry
// never expires. Re-inserting an existing key replaces the entry: the old
// size is subtracted, metadata starts fresh, and the entry is promoted to
// most recently used.
func (c *EvictionCache[V]) SetTTL(key string, value V, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return &InvalidKeyError{Key: key}
	}

	size := sizeof.Estimate(value) + entryOverhead
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.removeLocked(old)
	}

	if c.opts.MaxMemory > 0 {
		// A value that alone exceeds the budget is not stored; the bound is
		// hard, not best-effort.
		if size > c.opts.MaxMemory {
			return nil
		}
		if c.memory+size > c.opts.MaxMemory {
			c.purgeExpiredLocked(now)
			for c.memory+size > c.opts.MaxMemory && len(c.entries) > 0 {
				c.evictOneLocked()
			}
		}
	}

	if len(c.entries) >= c.opts.MaxSize {
		c.evictOneLocked()
	}

	e := &entry[V]{
		key:          key,
		value:        value,
		createdAt:    now,
		lastAccessed: now,
		sizeBytes:    size,
	}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	e.elem = c.order.PushFront(e)
	c.entries[key] = e
	c.memory += size
	return nil
}

// Get returns the value for key. An expired entry is lazily deleted and
// reported as a miss. A hit bumps the access metadata and, under LRU,
// promotes the entry to most recently used.
func (c *EvictionCache[V]) Get(key string) (V, bool) {
	var zero V
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if e.expired(now) {
		c.removeLocked(e)
		c.misses++
		return zero, false
	}

	e.lastAccessed = now
	e.accessCount++
	if c.opts.Strategy == LRU {
		c.order.MoveToFront(e.elem)
	}
	c.hits++
	return e.value, true
}

// Has reports whether key is present and unexpired, without touching
// access metadata or hit/miss counters.
func (c *EvictionCache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && !e.expired(time.Now())
}

// Delete removes key, reporting whether it was present.
func (c *EvictionCache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(e)
	return true
}

// Clear removes every entry.
func (c *EvictionCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[V], c.opts.MaxSize)
	c.order.Init()
	c.memory = 0
}

// Cleanup purges all expired entries and returns how many were removed.
func (c *EvictionCache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeExpiredLocked(time.Now())
}

// Len returns the current entry count.
func (c *EvictionCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// MemoryUsage returns the estimated bytes held.
func (c *EvictionCache[V]) MemoryUsage() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memory
}

// Stats returns a snapshot of cache accounting.
func (c *EvictionCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *EvictionCache[V]) statsLocked() Stats {
	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	utilization := 0.0
	if c.opts.MaxSize > 0 {
		utilization = float64(len(c.entries)) / float64(c.opts.MaxSize)
	}
	return Stats{
		Size:        len(c.entries),
		MaxSize:     c.opts.MaxSize,
		Hits:        c.hits,
		Misses:      c.misses,
		HitRate:     hitRate,
		Evictions:   c.evictions,
		MemoryUsage: c.memory,
		Utilization: utilization,
	}
}

// MaxSize returns the current item-count bound.
func (c *EvictionCache[V]) MaxSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts.MaxSize
}

// CleanupInterval returns the configured maintenance period.
func (c *EvictionCache[V]) CleanupInterval() time.Duration {
	return c.opts.CleanupInterval
}

// removeLocked detaches an entry from both the index and the recency list.
func (c *EvictionCache[V]) removeLocked(e *entry[V]) {
	delete(c.entries, e.key)
	c.order.Remove(e.elem)
	c.memory -= e.sizeBytes
}

func (c *EvictionCache[V]) purgeExpiredLocked(now time.Time) int {
	removed := 0
	for _, e := range c.entries {
		if e.expired(now) {
			c.removeLocked(e)
			removed++
		}
	}
	return removed
}

// evictOneLocked removes a single entry chosen by the configured policy.
// LFU and FIFO keep the historical first-found tie-break: whichever
// candidate map iteration reaches first wins.
func (c *EvictionCache[V]) evictOneLocked() {
	if len(c.entries) == 0 {
		return
	}
	var victim *entry[V]
	switch c.opts.Strategy {
	case LFU:
		for _, e := range c.entries {
			if victim == nil || e.accessCount < victim.accessCount {
				victim = e
			}
		}
	case FIFO:
		for _, e := range c.entries {
			if victim == nil || e.createdAt.Before(victim.createdAt) {
				victim = e
			}
		}
	default: // LRU
		if back := c.order.Back(); back != nil {
			victim = back.Value.(*entry[V])
		}
	}
	if victim != nil {
		c.removeLocked(victim)
		c.evictions++
	}
}

// shrinkToLocked evicts by policy until at most n entries remain.
func (c *EvictionCache[V]) shrinkToLocked(n int) {
	if n < 0 {
		n = 0
	}
	for len(c.entries) > n {
		c.evictOneLocked()
	}
}
