package colormath

import "sync"

// DefaultLUTPrecision is the default number of buckets per RGB axis.
// 32 buckets yield 32,768 precomputed entries (~1 MB).
const DefaultLUTPrecision = 32

// LookupTable is a precomputed RGB→HSL grid used to accelerate bulk
// conversions. Each RGB channel is bucketed into `precision` slots and the
// HSL of the bucket center is returned, trading a bounded quantization
// error for constant-time lookups with no float math.
//
// The table starts empty: every Lookup before Build completes counts as a
// miss and falls back to the exact conversion, so correctness never depends
// on table warmth. Build may run eagerly or via BuildAsync in an idle
// window.
//
// Precision is a memory/accuracy tradeoff fixed at construction; it is
// never changed behind the caller's back.
//
// LookupTable is safe for concurrent use.
type LookupTable struct {
	mu        sync.RWMutex
	precision int
	table     []HSL
	built     bool
	hits      uint64
	misses    uint64
}

// LUTStats reports lookup accounting for a LookupTable.
type LUTStats struct {
	Precision int     `json:"precision"`
	Entries   int     `json:"entries"` // 0 until built
	Built     bool    `json:"built"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
}

// NewLookupTable creates an unbuilt table with the given buckets-per-axis
// precision. Precision values below 2 fall back to DefaultLUTPrecision.
func NewLookupTable(precision int) *LookupTable {
	if precision < 2 {
		precision = DefaultLUTPrecision
	}
	return &LookupTable{precision: precision}
}

// Precision returns the configured buckets per axis.
func (t *LookupTable) Precision() int { return t.precision }

// Build populates the table. It is idempotent: once built, subsequent
// calls return immediately.
func (t *LookupTable) Build() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.built {
		return
	}
	t.table = buildHSLTable(t.precision)
	t.built = true
}

// BuildAsync populates the table on a separate goroutine so it never
// blocks a conversion request. The returned channel closes when the build
// finishes (immediately if already built).
func (t *LookupTable) BuildAsync() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t.Build()
	}()
	return done
}

// Rebuild clears the table, resets counters, and regenerates it.
func (t *LookupTable) Rebuild() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table = buildHSLTable(t.precision)
	t.built = true
	t.hits = 0
	t.misses = 0
}

// Lookup returns the precomputed HSL for the bucket containing rgb, and
// whether the value came from the table. When the table is not built yet
// the exact conversion is computed instead and the call counts as a miss.
//
// Table results carry the bucket center's hue/saturation/lightness, so
// they may differ from the exact conversion by up to half a bucket per
// channel.
func (t *LookupTable) Lookup(c RGB) (HSL, bool) {
	t.mu.RLock()
	if !t.built {
		t.mu.RUnlock()
		t.mu.Lock()
		t.misses++
		t.mu.Unlock()
		return RGBToHSL(c), false
	}
	p := t.precision
	idx := (bucket(c.R, p)*p+bucket(c.G, p))*p + bucket(c.B, p)
	out := t.table[idx]
	t.mu.RUnlock()

	t.mu.Lock()
	t.hits++
	t.mu.Unlock()

	out.A = c.A
	return out, true
}

// Stats returns a snapshot of lookup accounting.
func (t *LookupTable) Stats() LUTStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := t.hits + t.misses
	rate := 0.0
	if total > 0 {
		rate = float64(t.hits) / float64(total)
	}
	return LUTStats{
		Precision: t.precision,
		Entries:   len(t.table),
		Built:     t.built,
		Hits:      t.hits,
		Misses:    t.misses,
		HitRate:   rate,
	}
}

// MemoryBytes estimates the table's memory footprint.
func (t *LookupTable) MemoryBytes() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	// Four float64 fields per entry.
	return int64(len(t.table)) * 32
}

func bucket(v uint8, precision int) int {
	idx := int(v) * precision / 256
	if idx >= precision {
		idx = precision - 1
	}
	return idx
}

func buildHSLTable(precision int) []HSL {
	table := make([]HSL, precision*precision*precision)
	step := 256.0 / float64(precision)
	center := func(i int) uint8 {
		v := (float64(i) + 0.5) * step
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	for r := 0; r < precision; r++ {
		for g := 0; g < precision; g++ {
			for b := 0; b < precision; b++ {
				idx := (r*precision+g)*precision + b
				table[idx] = RGBToHSL(RGB{R: center(r), G: center(g), B: center(b), A: 1})
			}
		}
	}
	return table
}
