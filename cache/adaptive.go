package cache

import (
	"sync"
	"time"
)

// Adaptive tuning defaults.
const (
	DefaultLowThreshold  = 0.4
	DefaultHighThreshold = 0.8
	DefaultAdjustStep    = 10
	DefaultMinSamples    = 50
	DefaultHistorySize   = 20
)

// AdaptiveOptions configures an AdaptiveCache on top of the base Options.
type AdaptiveOptions struct {
	Options

	// MinSize is the smallest MaxSize shrinking may reach.
	MinSize int `json:"min_size"`

	// MaxCeiling caps growth. Zero defaults to 10x the initial MaxSize.
	MaxCeiling int `json:"max_ceiling"`

	// AdjustStep is how far MaxSize moves per adjustment.
	AdjustStep int `json:"adjust_step"`

	// LowThreshold: hit rate below it shrinks the cache. Default 0.4.
	LowThreshold float64 `json:"low_threshold"`

	// HighThreshold: hit rate above it, with utilization above 80%, grows
	// the cache. Default 0.8.
	HighThreshold float64 `json:"high_threshold"`

	// MinSamples is the least hits+misses that must accumulate since the
	// previous adjustment before another one is considered. Default 50;
	// this keeps a handful of early lookups from whipsawing the capacity.
	MinSamples int `json:"min_samples"`

	// HistorySize bounds the adjustment history ring. Default 20.
	HistorySize int `json:"history_size"`
}

// DefaultAdaptiveOptions returns the documented defaults.
func DefaultAdaptiveOptions() AdaptiveOptions {
	return AdaptiveOptions{
		Options:       DefaultOptions(),
		AdjustStep:    DefaultAdjustStep,
		LowThreshold:  DefaultLowThreshold,
		HighThreshold: DefaultHighThreshold,
		MinSamples:    DefaultMinSamples,
		HistorySize:   DefaultHistorySize,
	}
}

func (o AdaptiveOptions) normalized() AdaptiveOptions {
	o.Options = o.Options.normalized()
	if o.MinSize < 0 {
		o.MinSize = 0
	}
	if o.MaxCeiling <= 0 {
		o.MaxCeiling = o.MaxSize * 10
	}
	if o.AdjustStep <= 0 {
		o.AdjustStep = DefaultAdjustStep
	}
	if o.LowThreshold <= 0 {
		o.LowThreshold = DefaultLowThreshold
	}
	if o.HighThreshold <= 0 {
		o.HighThreshold = DefaultHighThreshold
	}
	if o.MinSamples <= 0 {
		o.MinSamples = DefaultMinSamples
	}
	if o.HistorySize <= 0 {
		o.HistorySize = DefaultHistorySize
	}
	return o
}

// Adjustment records one capacity change (or considered change) made by
// AdjustSize.
type Adjustment struct {
	Time    time.Time `json:"time"`
	OldSize int       `json:"old_size"`
	NewSize int       `json:"new_size"`
	HitRate float64   `json:"hit_rate"`
}

// AdaptiveCache wraps an EvictionCache and periodically resizes its
// capacity from the observed hit rate: a cold cache shrinks toward
// MinSize, a hot and full cache grows toward MaxCeiling.
//
// The cache does not schedule itself; the owner calls AdjustSize manually
// or from a repeating task (Engine wires one through memory.Task).
type AdaptiveCache[V any] struct {
	*EvictionCache[V]

	aopts AdaptiveOptions

	amu        sync.Mutex
	lastHits   uint64
	lastMisses uint64
	history    []Adjustment
}

// NewAdaptive creates an adaptive cache. A MinSize larger than the initial
// MaxSize is a *ConfigurationError.
func NewAdaptive[V any](opts AdaptiveOptions) (*AdaptiveCache[V], error) {
	opts = opts.normalized()
	if opts.MinSize > opts.MaxSize {
		return nil, &ConfigurationError{Field: "MinSize", Reason: "must not exceed MaxSize"}
	}
	return &AdaptiveCache[V]{
		EvictionCache: New[V](opts.Options),
		aopts:         opts,
		history:       make([]Adjustment, 0, opts.HistorySize),
	}, nil
}

// AdjustSize inspects the hit rate accumulated since the previous
// adjustment and resizes MaxSize accordingly. It reports whether the
// capacity changed. Fewer than MinSamples lookups since the last call
// leave the cache untouched.
func (a *AdaptiveCache[V]) AdjustSize() bool {
	a.amu.Lock()
	defer a.amu.Unlock()

	a.mu.Lock()
	hits, misses := a.hits, a.misses
	size := len(a.entries)
	maxSize := a.opts.MaxSize
	a.mu.Unlock()

	windowHits := hits - a.lastHits
	windowMisses := misses - a.lastMisses
	window := windowHits + windowMisses
	if window < uint64(a.aopts.MinSamples) {
		return false
	}

	hitRate := float64(windowHits) / float64(window)
	utilization := float64(size) / float64(maxSize)

	newSize := maxSize
	switch {
	case hitRate < a.aopts.LowThreshold:
		newSize = maxSize - a.aopts.AdjustStep
		if newSize < a.aopts.MinSize {
			newSize = a.aopts.MinSize
		}
	case hitRate > a.aopts.HighThreshold && utilization > 0.8:
		newSize = maxSize + a.aopts.AdjustStep
		if newSize > a.aopts.MaxCeiling {
			newSize = a.aopts.MaxCeiling
		}
	}

	// The window resets whether or not the size moved; stale samples
	// should not dominate the next decision.
	a.lastHits = hits
	a.lastMisses = misses

	if newSize == maxSize {
		return false
	}

	a.mu.Lock()
	a.opts.MaxSize = newSize
	if newSize < len(a.entries) {
		a.shrinkToLocked(newSize)
	}
	a.mu.Unlock()

	a.recordLocked(Adjustment{
		Time:    time.Now(),
		OldSize: maxSize,
		NewSize: newSize,
		HitRate: hitRate,
	})
	return true
}

// History returns the most recent adjustments, newest last. The returned
// slice is a copy.
func (a *AdaptiveCache[V]) History() []Adjustment {
	a.amu.Lock()
	defer a.amu.Unlock()
	out := make([]Adjustment, len(a.history))
	copy(out, a.history)
	return out
}

// MinSize returns the configured shrink floor.
func (a *AdaptiveCache[V]) MinSize() int { return a.aopts.MinSize }

// MaxCeiling returns the configured growth cap.
func (a *AdaptiveCache[V]) MaxCeiling() int { return a.aopts.MaxCeiling }

// recordLocked appends to the bounded history ring; amu must be held.
func (a *AdaptiveCache[V]) recordLocked(adj Adjustment) {
	a.history = append(a.history, adj)
	if len(a.history) > a.aopts.HistorySize {
		a.history = a.history[len(a.history)-a.aopts.HistorySize:]
	}
}
