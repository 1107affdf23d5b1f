// Package swatchkit is a color-manipulation performance layer: cached and
// pooled color-space conversions, perceptual distance metrics, palette
// quantization, and coordinated memory management.
//
// The Engine is the package's context object. A host application
// constructs one Engine, passes it to consumers, and calls Shutdown during
// teardown; there is no process-wide singleton and no implicit lifecycle
// hook. The underlying packages (colormath, cache, pool, quantize, memory)
// are usable on their own when the caller wants a single piece without the
// wiring.
package swatchkit

import (
	"fmt"
	"time"

	"github.com/swatchkit/swatchkit/cache"
	"github.com/swatchkit/swatchkit/colormath"
	"github.com/swatchkit/swatchkit/memory"
	"github.com/swatchkit/swatchkit/pool"
	"github.com/swatchkit/swatchkit/quantize"
)

// DefaultAdjustInterval is the cadence of the background conversion-cache
// adjustment task.
const DefaultAdjustInterval = 60 * time.Second

// Config assembles an Engine. The zero value is usable; every section
// falls back to its package's documented defaults.
type Config struct {
	// Conversion configures the adaptive cache in front of Convert.
	Conversion cache.AdaptiveOptions `json:"conversion"`

	// LUTPrecision is the RGB→HSL lookup-table density in buckets per
	// axis. Zero means colormath.DefaultLUTPrecision.
	LUTPrecision int `json:"lut_precision"`

	// EagerLUT builds the lookup table synchronously in NewEngine instead
	// of deferring it to a background build.
	EagerLUT bool `json:"eager_lut"`

	// Scratch bounds the RGB/HSL/HSV scratch-record pools.
	Scratch pool.Config `json:"scratch"`

	// Memory configures the coordinator that watches every cache and pool
	// the engine owns.
	Memory memory.Config `json:"memory"`

	// AdjustInterval is the cadence for automatic conversion-cache
	// resizing. Zero means DefaultAdjustInterval; a negative value
	// disables the background task, leaving adjustment to explicit Tune
	// calls.
	AdjustInterval time.Duration `json:"adjust_interval"`
}

// Stats aggregates the engine's component statistics.
type Stats struct {
	Conversion cache.Stats           `json:"conversion"`
	LUT        colormath.LUTStats    `json:"lut"`
	Pools      map[string]pool.Stats `json:"pools"`
	Memory     memory.Stats          `json:"memory"`
}

// Engine owns a conversion cache, a lookup table, scratch pools, and the
// memory coordinator that supervises them.
type Engine struct {
	conv *cache.AdaptiveCache[colormath.Color]
	lut  *colormath.LookupTable

	rgbScratch *pool.Pool[*colormath.RGB]
	hslScratch *pool.Pool[*colormath.HSL]
	hsvScratch *pool.Pool[*colormath.HSV]

	coord      *memory.Coordinator
	adjustTask *memory.Task
}

// NewEngine builds and wires an engine: the conversion cache and all
// scratch pools are registered with the coordinator, the coordinator's
// cleanup schedule starts, and the LUT build begins (eagerly or in the
// background per Config.EagerLUT).
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Conversion.MaxSize == 0 && cfg.Conversion.AdjustStep == 0 {
		cfg.Conversion = cache.DefaultAdaptiveOptions()
	}
	conv, err := cache.NewAdaptive[colormath.Color](cfg.Conversion)
	if err != nil {
		return nil, fmt.Errorf("conversion cache: %w", err)
	}

	e := &Engine{
		conv:       conv,
		lut:        colormath.NewLookupTable(cfg.LUTPrecision),
		rgbScratch: pool.NewRGBScratch(cfg.Scratch),
		hslScratch: pool.NewHSLScratch(cfg.Scratch),
		hsvScratch: pool.NewHSVScratch(cfg.Scratch),
		coord:      memory.NewCoordinator(cfg.Memory),
	}

	e.coord.RegisterCache("conversion", e.conv)
	e.coord.RegisterPool("scratch-rgb", e.rgbScratch)
	e.coord.RegisterPool("scratch-hsl", e.hslScratch)
	e.coord.RegisterPool("scratch-hsv", e.hsvScratch)
	e.coord.Start()

	if cfg.EagerLUT {
		e.lut.Build()
	} else {
		e.lut.BuildAsync()
	}

	adjustEvery := cfg.AdjustInterval
	if adjustEvery == 0 {
		adjustEvery = DefaultAdjustInterval
	}
	if adjustEvery > 0 {
		e.adjustTask = memory.Repeat(adjustEvery, func() {
			if e.conv.AdjustSize() {
				Logger().Debug("conversion cache resized",
					"max_size", e.conv.MaxSize())
			}
		})
	}

	Logger().Info("swatchkit engine started",
		"lut_precision", e.lut.Precision(),
		"conversion_max", e.conv.MaxSize())
	return e, nil
}

// Convert translates a color to the target space through the conversion
// cache. Hot conversions cost one map lookup.
func (e *Engine) Convert(c colormath.Color, to colormath.Space) (colormath.Color, error) {
	key := cacheKey(c, to)
	if cached, ok := e.conv.Get(key); ok {
		return cached, nil
	}
	out, err := colormath.Convert(c, to)
	if err != nil {
		return nil, err
	}
	// Capacity pressure is handled inside the cache; the only Set failure
	// is a blank key, which this key construction cannot produce.
	_ = e.conv.Set(key, out)
	return out, nil
}

// cacheKey encodes every channel of the input, alpha included. String()
// is a display form that leaves alpha out; keying on it would collide
// colors that differ only in opacity.
func cacheKey(c colormath.Color, to colormath.Space) string {
	return fmt.Sprintf("%#v->%s", c, to)
}

// ConvertBulkRGBToHSL converts a batch of RGB colors through the lookup
// table, filling out in place when it has matching length, otherwise
// allocating. Results carry the LUT's bucket-center quantization once the
// table is built; before that they are exact.
func (e *Engine) ConvertBulkRGBToHSL(in []colormath.RGB, out []colormath.HSL) []colormath.HSL {
	if len(out) != len(in) {
		out = make([]colormath.HSL, len(in))
	}
	for i, c := range in {
		out[i], _ = e.lut.Lookup(c)
	}
	return out
}

// Distance computes the perceptual difference between two colors.
func (e *Engine) Distance(a, b colormath.Color, metric colormath.Metric) (float64, error) {
	return colormath.Distance(a, b, metric)
}

// Quantize reduces colors to a k-color palette with the given method.
func (e *Engine) Quantize(colors []colormath.RGB, k int, method quantize.Method) []colormath.RGB {
	switch method {
	case quantize.MethodMedianCut:
		return quantize.MedianCut(colors, k)
	default:
		return quantize.Cluster(colors, k, quantize.Options{}).Centers
	}
}

// RGBScratch returns the engine's pooled RGB scratch records.
func (e *Engine) RGBScratch() *pool.Pool[*colormath.RGB] { return e.rgbScratch }

// HSLScratch returns the engine's pooled HSL scratch records.
func (e *Engine) HSLScratch() *pool.Pool[*colormath.HSL] { return e.hslScratch }

// HSVScratch returns the engine's pooled HSV scratch records.
func (e *Engine) HSVScratch() *pool.Pool[*colormath.HSV] { return e.hsvScratch }

// LUT returns the engine's lookup table.
func (e *Engine) LUT() *colormath.LookupTable { return e.lut }

// Coordinator returns the engine's memory coordinator, for registering
// additional caches or pools owned by the host application.
func (e *Engine) Coordinator() *memory.Coordinator { return e.coord }

// Tune runs one conversion-cache adjustment and one pool optimization
// pass. Useful for hosts that prefer explicit maintenance points over the
// background AdjustInterval task.
func (e *Engine) Tune() {
	e.conv.AdjustSize()
	e.rgbScratch.Optimize()
	e.hslScratch.Optimize()
	e.hsvScratch.Optimize()
}

// Stats returns a snapshot across all engine components.
func (e *Engine) Stats() Stats {
	return Stats{
		Conversion: e.conv.Stats(),
		LUT:        e.lut.Stats(),
		Pools: map[string]pool.Stats{
			"scratch-rgb": e.rgbScratch.Stats(),
			"scratch-hsl": e.hslScratch.Stats(),
			"scratch-hsv": e.hsvScratch.Stats(),
		},
		Memory: e.coord.Stats(),
	}
}

// Shutdown stops background tasks and detaches the coordinator. It is
// idempotent; the engine must not be used afterwards.
func (e *Engine) Shutdown() {
	if e.adjustTask != nil {
		e.adjustTask.Stop()
	}
	e.coord.Destroy()
	Logger().Info("swatchkit engine stopped")
}
