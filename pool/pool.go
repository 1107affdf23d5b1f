// Package pool provides a bounded, generic object pool for reusing
// transient records during bulk operations.
//
// Unlike sync.Pool, the free list has a hard upper bound, survives GC, and
// exposes hit/miss accounting so callers can tune capacity with Optimize.
// A Pool is safe for concurrent use; every operation is a short
// mutex-guarded critical section.
package pool

import (
	"sync"

	"github.com/swatchkit/swatchkit/internal/sizeof"
)

// Default capacity bounds, applied by Config.normalized.
const (
	DefaultMaxSize = 20

	// optimizeStep is the fixed capacity adjustment applied by Optimize.
	optimizeStep = 5
)

// Config bounds a pool. The zero value is usable: it normalizes to
// {MaxSize: 20, MinSize: 0, InitialSize: 0}.
type Config struct {
	// MaxSize is the most free objects the pool will retain. Released
	// objects beyond it are dropped.
	MaxSize int `json:"max_size"`

	// MinSize is the floor Shrink drains down to and the lowest capacity
	// Optimize will set.
	MinSize int `json:"min_size"`

	// InitialSize prewarms the pool at construction.
	InitialSize int `json:"initial_size"`
}

func (c Config) normalized() Config {
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.MinSize < 0 {
		c.MinSize = 0
	}
	if c.MinSize > c.MaxSize {
		c.MinSize = c.MaxSize
	}
	if c.InitialSize < 0 {
		c.InitialSize = 0
	}
	if c.InitialSize > c.MaxSize {
		c.InitialSize = c.MaxSize
	}
	return c
}

// Stats is a snapshot of pool accounting.
type Stats struct {
	PoolSize    int     `json:"pool_size"` // free objects currently held
	MaxSize     int     `json:"max_size"`
	Allocated   int     `json:"allocated"` // objects constructed by the factory
	Hits        uint64  `json:"hits"`      // acquires served from the free list
	Misses      uint64  `json:"misses"`    // acquires that constructed a new object
	HitRate     float64 `json:"hit_rate"`
	Utilization float64 `json:"utilization"` // free-list fill ratio, 0-1
}

// Pool is a bounded free list of reusable objects.
//
// Ownership contract: an object has exactly one borrower between Acquire
// and Release. Releasing an object the caller did not acquire, or using it
// after Release, is a caller bug the pool cannot detect.
type Pool[T any] struct {
	mu        sync.Mutex
	cfg       Config
	free      []T
	factory   func() T
	reset     func(T) T
	allocated int
	hits      uint64
	misses    uint64

	// itemBytes is a fixed per-object size estimate for memory accounting.
	itemBytes int64
}

// New creates a pool. factory constructs new objects on a miss; reset
// cleans an object on Release and may be nil when no cleanup is needed.
func New[T any](cfg Config, factory func() T, reset func(T) T) *Pool[T] {
	if factory == nil {
		panic("pool: nil factory")
	}
	cfg = cfg.normalized()
	p := &Pool[T]{
		cfg:     cfg,
		free:    make([]T, 0, cfg.MaxSize),
		factory: factory,
		reset:   reset,
	}
	p.itemBytes = sizeof.Estimate(factory())
	if cfg.InitialSize > 0 {
		p.Prewarm(cfg.InitialSize)
	}
	return p
}

// Acquire returns an object from the free list, constructing one via the
// factory when the list is empty.
func (p *Pool[T]) Acquire() T {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free = p.free[:n-1]
		p.hits++
		p.mu.Unlock()
		return obj
	}
	p.misses++
	p.allocated++
	p.mu.Unlock()
	return p.factory()
}

// Release resets the object and returns it to the free list. When the free
// list is already at MaxSize the object is dropped for the GC to collect.
func (p *Pool[T]) Release(obj T) {
	if p.reset != nil {
		obj = p.reset(obj)
	}
	p.mu.Lock()
	if len(p.free) < p.cfg.MaxSize {
		p.free = append(p.free, obj)
	}
	p.mu.Unlock()
}

// ReleaseMany releases a batch of objects.
func (p *Pool[T]) ReleaseMany(objs []T) {
	for _, obj := range objs {
		p.Release(obj)
	}
}

// Prewarm constructs up to n objects into the free list, capped at
// MaxSize.
func (p *Pool[T]) Prewarm(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < n && len(p.free) < p.cfg.MaxSize; i++ {
		p.free = append(p.free, p.factory())
		p.allocated++
	}
}

// Shrink drains the free list down to MinSize.
func (p *Pool[T]) Shrink() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trimLocked(p.cfg.MinSize)
}

// Clear empties the free list entirely.
func (p *Pool[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = p.free[:0]
}

// Len returns the number of free objects currently held.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// MaxSize returns the current capacity bound.
func (p *Pool[T]) MaxSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.MaxSize
}

// Optimize adjusts MaxSize from observed behavior: a pool that almost
// always hits while sitting mostly empty gets more headroom; one that
// misses often while sitting full gets trimmed. Capacity moves by a fixed
// step and never drops below MinSize.
func (p *Pool[T]) Optimize() {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.hits + p.misses
	if total == 0 {
		return
	}
	hitRate := float64(p.hits) / float64(total)
	utilization := float64(len(p.free)) / float64(p.cfg.MaxSize)

	switch {
	case hitRate > 0.8 && utilization < 0.2:
		p.cfg.MaxSize += optimizeStep
	case hitRate < 0.5 && utilization > 0.8:
		next := p.cfg.MaxSize - optimizeStep
		if next < p.cfg.MinSize {
			next = p.cfg.MinSize
		}
		p.cfg.MaxSize = next
		p.trimLocked(next)
	}
}

// Stats returns a snapshot of pool accounting.
func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.hits + p.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(p.hits) / float64(total)
	}
	utilization := 0.0
	if p.cfg.MaxSize > 0 {
		utilization = float64(len(p.free)) / float64(p.cfg.MaxSize)
	}
	return Stats{
		PoolSize:    len(p.free),
		MaxSize:     p.cfg.MaxSize,
		Allocated:   p.allocated,
		Hits:        p.hits,
		Misses:      p.misses,
		HitRate:     hitRate,
		Utilization: utilization,
	}
}

// MemoryEstimate approximates the bytes held by the free list.
func (p *Pool[T]) MemoryEstimate() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int64(len(p.free)) * p.itemBytes
}

func (p *Pool[T]) trimLocked(target int) {
	if target < 0 {
		target = 0
	}
	if len(p.free) > target {
		var zero T
		for i := target; i < len(p.free); i++ {
			p.free[i] = zero
		}
		p.free = p.free[:target]
	}
}
