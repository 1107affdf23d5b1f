package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdaptiveForTest(t *testing.T, opts AdaptiveOptions) *AdaptiveCache[int] {
	t.Helper()
	a, err := NewAdaptive[int](opts)
	require.NoError(t, err)
	return a
}

func TestAdaptive_MinSizeAboveMaxSizeRejected(t *testing.T) {
	_, err := NewAdaptive[int](AdaptiveOptions{
		Options: Options{MaxSize: 10},
		MinSize: 20,
	})
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "MinSize", cfgErr.Field)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAdaptive_TooFewSamplesIsNoOp(t *testing.T) {
	a := newAdaptiveForTest(t, AdaptiveOptions{Options: Options{MaxSize: 10}})
	for i := 0; i < 10; i++ {
		a.Get("missing")
	}
	assert.False(t, a.AdjustSize(), "below MinSamples nothing moves")
	assert.Equal(t, 10, a.MaxSize())
	assert.Empty(t, a.History())
}

func TestAdaptive_GrowsWhenHotAndFull(t *testing.T) {
	a := newAdaptiveForTest(t, AdaptiveOptions{
		Options:    Options{MaxSize: 10},
		AdjustStep: 5,
	})

	// Fill the cache so utilization is 1.0, then drive a >90% hit rate.
	for i := 0; i < 10; i++ {
		require.NoError(t, a.Set(fmt.Sprintf("k%d", i), i))
	}
	for i := 0; i < 60; i++ {
		a.Get(fmt.Sprintf("k%d", i%10))
	}

	require.True(t, a.AdjustSize())
	assert.Equal(t, 15, a.MaxSize())

	history := a.History()
	require.Len(t, history, 1)
	assert.Equal(t, 10, history[0].OldSize)
	assert.Equal(t, 15, history[0].NewSize)
	assert.Greater(t, history[0].HitRate, 0.9)
}

func TestAdaptive_ShrinksWhenCold(t *testing.T) {
	a := newAdaptiveForTest(t, AdaptiveOptions{
		Options:    Options{MaxSize: 20},
		MinSize:    5,
		AdjustStep: 10,
	})

	for i := 0; i < 20; i++ {
		require.NoError(t, a.Set(fmt.Sprintf("k%d", i), i))
	}
	// All misses: hit rate 0.
	for i := 0; i < 60; i++ {
		a.Get("never-set")
	}

	require.True(t, a.AdjustSize())
	assert.Equal(t, 10, a.MaxSize())
	assert.LessOrEqual(t, a.Len(), 10, "shrinking must evict down to the new bound")

	// Another cold window clamps at MinSize instead of stepping below it.
	for i := 0; i < 60; i++ {
		a.Get("never-set")
	}
	require.True(t, a.AdjustSize())
	assert.Equal(t, 5, a.MaxSize())
}

func TestAdaptive_GrowthStopsAtCeiling(t *testing.T) {
	a := newAdaptiveForTest(t, AdaptiveOptions{
		Options:    Options{MaxSize: 10},
		MaxCeiling: 12,
		AdjustStep: 5,
	})
	for i := 0; i < 10; i++ {
		require.NoError(t, a.Set(fmt.Sprintf("k%d", i), i))
	}
	for i := 0; i < 60; i++ {
		a.Get(fmt.Sprintf("k%d", i%10))
	}
	require.True(t, a.AdjustSize())
	assert.Equal(t, 12, a.MaxSize())
}

func TestAdaptive_WindowResetsBetweenCalls(t *testing.T) {
	a := newAdaptiveForTest(t, AdaptiveOptions{Options: Options{MaxSize: 10}})

	// A middling hit rate changes nothing but still resets the window.
	require.NoError(t, a.Set("k", 1))
	for i := 0; i < 30; i++ {
		a.Get("k")
		a.Get("missing")
	}
	assert.False(t, a.AdjustSize(), "hit rate 0.5 sits between the thresholds")

	// The next call sees only lookups made after the reset.
	for i := 0; i < 10; i++ {
		a.Get("k")
	}
	assert.False(t, a.AdjustSize(), "10 fresh samples are below MinSamples")
}

func TestAdaptive_HistoryBounded(t *testing.T) {
	a := newAdaptiveForTest(t, AdaptiveOptions{
		Options:     Options{MaxSize: 1000},
		MinSize:     1,
		AdjustStep:  1,
		HistorySize: 3,
	})

	// Repeated cold windows generate one shrink adjustment each.
	for round := 0; round < 8; round++ {
		for i := 0; i < 60; i++ {
			a.Get("never-set")
		}
		require.True(t, a.AdjustSize(), "round %d", round)
	}

	history := a.History()
	require.Len(t, history, 3)
	// Newest last: the final shrink landed at 1000-8=992.
	assert.Equal(t, 992, history[2].NewSize)
}

func TestAdaptive_DefaultsNormalize(t *testing.T) {
	a := newAdaptiveForTest(t, AdaptiveOptions{Options: Options{MaxSize: 10}})
	assert.Equal(t, 100, a.MaxCeiling(), "ceiling defaults to 10x MaxSize")
	assert.Equal(t, 0, a.MinSize())
}
