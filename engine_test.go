package swatchkit

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swatchkit/swatchkit/cache"
	"github.com/swatchkit/swatchkit/colormath"
	"github.com/swatchkit/swatchkit/quantize"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	t.Cleanup(e.Shutdown)
	return e
}

func TestEngine_ConvertCachesResults(t *testing.T) {
	e := newTestEngine(t, Config{})

	red := colormath.NewRGB(255, 0, 0)
	first, err := e.Convert(red, colormath.SpaceHSL)
	require.NoError(t, err)
	second, err := e.Convert(red, colormath.SpaceHSL)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stats := e.Stats().Conversion
	assert.Equal(t, uint64(1), stats.Hits, "second conversion must be served from cache")
	assert.Equal(t, uint64(1), stats.Misses)

	hsl, ok := first.(colormath.HSL)
	require.True(t, ok)
	assert.Equal(t, 0.0, hsl.H)
	assert.Equal(t, 100.0, hsl.S)
	assert.Equal(t, 50.0, hsl.L)
}

func TestEngine_ConvertKeysIncludeAlpha(t *testing.T) {
	e := newTestEngine(t, Config{})

	opaque := colormath.NewRGB(255, 0, 0)
	translucent := colormath.RGB{R: 255, G: 0, B: 0, A: 0.5}

	first, err := e.Convert(opaque, colormath.SpaceHSL)
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.(colormath.HSL).A)

	// Same channels, different alpha: must not be served from the opaque
	// entry.
	second, err := e.Convert(translucent, colormath.SpaceHSL)
	require.NoError(t, err)
	assert.Equal(t, 0.5, second.(colormath.HSL).A)
	assert.Equal(t, uint64(2), e.Stats().Conversion.Misses)
}

func TestEngine_ConvertPropagatesErrors(t *testing.T) {
	e := newTestEngine(t, Config{})
	_, err := e.Convert(colormath.HSL{H: 999, S: 50, L: 50, A: 1}, colormath.SpaceRGB)
	require.Error(t, err)
	assert.ErrorIs(t, err, colormath.ErrInvalidInput)
}

func TestEngine_InvalidConfigRejected(t *testing.T) {
	cfg := Config{}
	cfg.Conversion.MaxSize = 10
	cfg.Conversion.MinSize = 50
	cfg.Conversion.AdjustStep = 5
	_, err := NewEngine(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrInvalidConfig)
}

func TestEngine_ConvertBulkRGBToHSL(t *testing.T) {
	e := newTestEngine(t, Config{EagerLUT: true, LUTPrecision: 32})

	in := []colormath.RGB{
		colormath.NewRGB(255, 0, 0),
		colormath.NewRGB(0, 255, 0),
		colormath.NewRGB(0, 0, 255),
	}
	out := e.ConvertBulkRGBToHSL(in, nil)
	require.Len(t, out, len(in))

	// Bucket-center quantization stays close to the exact conversion.
	for i, c := range in {
		exact := colormath.RGBToHSL(c)
		assert.InDelta(t, exact.L, out[i].L, 6, "color %v", c)
	}

	// A matching destination slice is reused.
	reuse := make([]colormath.HSL, len(in))
	got := e.ConvertBulkRGBToHSL(in, reuse)
	assert.Equal(t, &reuse[0], &got[0])
}

func TestEngine_DistanceAndQuantize(t *testing.T) {
	e := newTestEngine(t, Config{})

	d, err := e.Distance(colormath.NewRGB(0, 0, 0), colormath.NewRGB(255, 255, 255), colormath.MetricCIE76)
	require.NoError(t, err)
	assert.InDelta(t, 100, d, 0.5)

	colors := []colormath.RGB{
		colormath.NewRGB(10, 10, 10),
		colormath.NewRGB(12, 12, 12),
		colormath.NewRGB(240, 240, 240),
		colormath.NewRGB(245, 245, 245),
	}
	palette := e.Quantize(colors, 2, quantize.MethodMedianCut)
	assert.Len(t, palette, 2)
}

func TestEngine_ScratchPoolsWired(t *testing.T) {
	e := newTestEngine(t, Config{})

	r := e.RGBScratch().Acquire()
	r.R = 200
	e.RGBScratch().Release(r)
	assert.Equal(t, uint8(0), e.RGBScratch().Acquire().R)

	stats := e.Stats()
	require.Contains(t, stats.Pools, "scratch-rgb")
	require.Contains(t, stats.Pools, "scratch-hsl")
	require.Contains(t, stats.Pools, "scratch-hsv")
	assert.Equal(t, uint64(1), stats.Pools["scratch-rgb"].Hits)
}

func TestEngine_StatsCoversComponents(t *testing.T) {
	e := newTestEngine(t, Config{EagerLUT: true})

	stats := e.Stats()
	assert.True(t, stats.LUT.Built)
	assert.Greater(t, stats.Memory.CeilingBytes, int64(0))
	assert.Equal(t, cache.DefaultMaxSize, stats.Conversion.MaxSize)
}

func TestEngine_TuneRunsWithoutBackgroundTask(t *testing.T) {
	e := newTestEngine(t, Config{})
	e.Tune() // few samples: a no-op, but must not panic or deadlock
	e.Tune()
}

func TestEngine_AdjustTaskScheduling(t *testing.T) {
	auto := newTestEngine(t, Config{})
	assert.NotNil(t, auto.adjustTask, "zero interval schedules the default cadence")

	manual := newTestEngine(t, Config{AdjustInterval: -1})
	assert.Nil(t, manual.adjustTask, "negative interval leaves adjustment to Tune")
}

func TestEngine_ShutdownIdempotent(t *testing.T) {
	e, err := NewEngine(Config{})
	require.NoError(t, err)
	e.Shutdown()
	e.Shutdown()
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError),
		"default logger must be disabled")
}
