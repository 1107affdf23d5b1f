package memory

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is a controllable Cache for exercising the coordinator.
type fakeCache struct {
	bytes    int64
	entries  int
	cleanups int
	cleared  bool
}

func (f *fakeCache) Cleanup() int       { f.cleanups++; return 0 }
func (f *fakeCache) Clear()             { f.cleared = true; f.bytes = 0; f.entries = 0 }
func (f *fakeCache) MemoryUsage() int64 { return f.bytes }
func (f *fakeCache) Len() int           { return f.entries }

// fakePool is a controllable Pool.
type fakePool struct {
	bytes   int64
	items   int
	shrinks int
	cleared bool
}

func (f *fakePool) Shrink()               { f.shrinks++ }
func (f *fakePool) Clear()                { f.cleared = true; f.bytes = 0; f.items = 0 }
func (f *fakePool) MemoryEstimate() int64 { return f.bytes }
func (f *fakePool) Len() int              { return f.items }

func TestCoordinator_StatsAggregates(t *testing.T) {
	co := NewCoordinator(Config{CeilingBytes: 1000})
	co.RegisterCache("conv", &fakeCache{bytes: 300, entries: 7})
	co.RegisterPool("rgb", &fakePool{bytes: 100, items: 3})

	s := co.Stats()
	assert.Equal(t, int64(300), s.CacheBytes)
	assert.Equal(t, int64(100), s.PoolBytes)
	assert.Equal(t, int64(400), s.EstimatedBytes)
	assert.Equal(t, 7, s.CacheEntries)
	assert.Equal(t, 3, s.PooledObjects)
	assert.Equal(t, int64(1000), s.CeilingBytes)
}

func TestCoordinator_PressureThresholds(t *testing.T) {
	tests := []struct {
		bytes int64
		want  Pressure
	}{
		{0, PressureNormal},
		{500, PressureNormal},
		{600, PressureNormal}, // boundary is exclusive
		{700, PressureModerate},
		{800, PressureModerate},
		{900, PressureHigh},
		{950, PressureHigh},
		{990, PressureCritical},
	}
	for _, tt := range tests {
		co := NewCoordinator(Config{CeilingBytes: 1000})
		co.RegisterCache("c", &fakeCache{bytes: tt.bytes})
		assert.Equal(t, tt.want, co.Stats().Pressure, "usage %d/1000", tt.bytes)
	}
}

func TestCoordinator_CleanupNormalOnlyPurges(t *testing.T) {
	co := NewCoordinator(Config{CeilingBytes: 1000})
	c := &fakeCache{bytes: 100}
	p := &fakePool{bytes: 50}
	co.RegisterCache("c", c)
	co.RegisterPool("p", p)

	assert.Equal(t, PressureNormal, co.Cleanup())
	assert.Equal(t, 1, c.cleanups)
	assert.Equal(t, 0, p.shrinks)
	assert.False(t, c.cleared)
	assert.False(t, p.cleared)
}

func TestCoordinator_CleanupHighShrinksPools(t *testing.T) {
	co := NewCoordinator(Config{CeilingBytes: 1000})
	c := &fakeCache{bytes: 850}
	p := &fakePool{bytes: 50}
	co.RegisterCache("c", c)
	co.RegisterPool("p", p)

	assert.Equal(t, PressureHigh, co.Cleanup())
	assert.Equal(t, 1, c.cleanups)
	assert.Equal(t, 1, p.shrinks)
	assert.False(t, c.cleared)
}

func TestCoordinator_CleanupCriticalClearsEverything(t *testing.T) {
	co := NewCoordinator(Config{CeilingBytes: 1000})
	c := &fakeCache{bytes: 980}
	p := &fakePool{bytes: 50}
	co.RegisterCache("c", c)
	co.RegisterPool("p", p)

	assert.Equal(t, PressureCritical, co.Cleanup())
	assert.True(t, c.cleared)
	assert.True(t, p.cleared)

	// Everything freed: the next pass sees normal pressure.
	assert.Equal(t, PressureNormal, co.Cleanup())
}

func TestCoordinator_Unregister(t *testing.T) {
	co := NewCoordinator(Config{CeilingBytes: 1000})
	co.RegisterCache("c", &fakeCache{bytes: 700})
	co.RegisterPool("p", &fakePool{bytes: 200})

	co.Unregister("c")
	assert.Equal(t, int64(200), co.Stats().EstimatedBytes)

	co.Unregister("never-registered") // no-op
	co.Unregister("p")
	assert.Equal(t, int64(0), co.Stats().EstimatedBytes)
}

func TestCoordinator_DestroyIsRepeatable(t *testing.T) {
	co := NewCoordinator(Config{CeilingBytes: 1000, Interval: time.Millisecond})
	co.RegisterCache("c", &fakeCache{bytes: 100})
	co.Start()
	co.Start() // second Start is a no-op

	co.Destroy()
	co.Destroy()
	assert.Equal(t, 0, co.Stats().CacheEntries)

	// A destroyed coordinator can be restarted.
	co.Start()
	co.Destroy()
}

func TestCoordinator_ZeroConfigNormalizes(t *testing.T) {
	co := NewCoordinator(Config{})
	assert.Equal(t, int64(DefaultCeilingBytes), co.Stats().CeilingBytes)
}

func TestRepeat_FiresAndStops(t *testing.T) {
	var fired atomic.Int64
	task := Repeat(2*time.Millisecond, func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() >= 2 },
		time.Second, time.Millisecond)

	task.Stop()
	task.Stop() // idempotent

	after := fired.Load()
	time.Sleep(10 * time.Millisecond)
	assert.LessOrEqual(t, fired.Load(), after+1, "at most one in-flight tick after Stop")
}
