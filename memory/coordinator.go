package memory

import (
	"sync"
	"time"
)

// Pressure classifies memory usage relative to the configured ceiling.
type Pressure string

// Pressure levels, from calm to emergency.
const (
	PressureNormal   Pressure = "normal"   // <= 60% of ceiling
	PressureModerate Pressure = "moderate" // > 60%
	PressureHigh     Pressure = "high"     // > 80%
	PressureCritical Pressure = "critical" // > 95%
)

// Cache is the coordinator's view of a cache. *cache.EvictionCache and
// *cache.AdaptiveCache satisfy it.
type Cache interface {
	Cleanup() int
	Clear()
	MemoryUsage() int64
	Len() int
}

// Pool is the coordinator's view of an object pool. *pool.Pool satisfies
// it.
type Pool interface {
	Shrink()
	Clear()
	MemoryEstimate() int64
	Len() int
}

// Config bounds the coordinator. The zero value normalizes to a 64 MB
// ceiling checked every 60 seconds.
type Config struct {
	// CeilingBytes is the budget pressure is measured against.
	CeilingBytes int64 `json:"ceiling_bytes"`

	// Interval is the scheduled cleanup period used by Start.
	Interval time.Duration `json:"interval"`
}

// Default coordinator settings.
const (
	DefaultCeilingBytes = 64 << 20
	DefaultInterval     = 60 * time.Second
)

func (c Config) normalized() Config {
	if c.CeilingBytes <= 0 {
		c.CeilingBytes = DefaultCeilingBytes
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	return c
}

// Stats is an on-demand aggregate over all registered targets.
type Stats struct {
	CacheBytes     int64    `json:"cache_bytes"`
	PoolBytes      int64    `json:"pool_bytes"`
	EstimatedBytes int64    `json:"estimated_bytes"`
	CacheEntries   int      `json:"cache_entries"`
	PooledObjects  int      `json:"pooled_objects"`
	CeilingBytes   int64    `json:"ceiling_bytes"`
	Pressure       Pressure `json:"pressure"`
}

// Coordinator aggregates registered caches and pools, classifies memory
// pressure, and issues graduated cleanup commands. It is safe for
// concurrent use and safe to destroy more than once.
type Coordinator struct {
	mu     sync.Mutex
	cfg    Config
	caches map[string]Cache
	pools  map[string]Pool
	task   *Task
}

// NewCoordinator creates a coordinator. Nothing is scheduled until Start.
func NewCoordinator(cfg Config) *Coordinator {
	return &Coordinator{
		cfg:    cfg.normalized(),
		caches: make(map[string]Cache),
		pools:  make(map[string]Pool),
	}
}

// RegisterCache attaches a cache under a unique name. Re-registering a
// name replaces the previous target.
func (co *Coordinator) RegisterCache(name string, c Cache) {
	co.mu.Lock()
	co.caches[name] = c
	co.mu.Unlock()
}

// RegisterPool attaches a pool under a unique name.
func (co *Coordinator) RegisterPool(name string, p Pool) {
	co.mu.Lock()
	co.pools[name] = p
	co.mu.Unlock()
}

// Unregister detaches the named cache or pool. Unknown names are ignored.
func (co *Coordinator) Unregister(name string) {
	co.mu.Lock()
	delete(co.caches, name)
	delete(co.pools, name)
	co.mu.Unlock()
}

// Stats recomputes the aggregate memory picture.
func (co *Coordinator) Stats() Stats {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.statsLocked()
}

func (co *Coordinator) statsLocked() Stats {
	s := Stats{CeilingBytes: co.cfg.CeilingBytes}
	for _, c := range co.caches {
		s.CacheBytes += c.MemoryUsage()
		s.CacheEntries += c.Len()
	}
	for _, p := range co.pools {
		s.PoolBytes += p.MemoryEstimate()
		s.PooledObjects += p.Len()
	}
	s.EstimatedBytes = s.CacheBytes + s.PoolBytes
	s.Pressure = classify(s.EstimatedBytes, co.cfg.CeilingBytes)
	return s
}

func classify(used, ceiling int64) Pressure {
	ratio := float64(used) / float64(ceiling)
	switch {
	case ratio > 0.95:
		return PressureCritical
	case ratio > 0.80:
		return PressureHigh
	case ratio > 0.60:
		return PressureModerate
	default:
		return PressureNormal
	}
}

// Cleanup applies the graduated response for the current pressure level
// and returns the level it acted on:
//
//   - normal, moderate: purge expired cache entries only
//   - high: purge expired entries and shrink all pools
//   - critical: clear caches and pools entirely
//
// Cleanup is idempotent; calling it repeatedly at the same level is safe.
func (co *Coordinator) Cleanup() Pressure {
	co.mu.Lock()
	defer co.mu.Unlock()

	level := co.statsLocked().Pressure
	switch level {
	case PressureCritical:
		for _, c := range co.caches {
			c.Clear()
		}
		for _, p := range co.pools {
			p.Clear()
		}
	case PressureHigh:
		for _, c := range co.caches {
			c.Cleanup()
		}
		for _, p := range co.pools {
			p.Shrink()
		}
	default:
		for _, c := range co.caches {
			c.Cleanup()
		}
	}
	return level
}

// Start schedules periodic Cleanup at the configured interval. Calling
// Start on a running coordinator is a no-op.
func (co *Coordinator) Start() {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.task != nil {
		return
	}
	co.task = Repeat(co.cfg.Interval, func() { co.Cleanup() })
}

// Destroy cancels the scheduled task and detaches every registered target.
// It is safe to call multiple times.
func (co *Coordinator) Destroy() {
	co.mu.Lock()
	task := co.task
	co.task = nil
	co.caches = make(map[string]Cache)
	co.pools = make(map[string]Pool)
	co.mu.Unlock()

	if task != nil {
		task.Stop()
	}
}
