// Package quantize reduces color sets to representative palettes using
// k-means++ clustering or median-cut partitioning over perceptual
// distances, with an elbow-method heuristic for choosing the cluster
// count and helpers for extracting palettes straight from images.
package quantize

import (
	"math/rand"
	"time"

	"github.com/swatchkit/swatchkit/colormath"
)

// DefaultMaxIterations bounds the k-means refinement loop.
const DefaultMaxIterations = 50

// Options tunes Cluster. The zero value normalizes to 50 iterations under
// the OKLab metric with a time-seeded random source.
type Options struct {
	// MaxIterations bounds the assign/update loop.
	MaxIterations int `json:"max_iterations"`

	// Metric is the distance used for seeding and assignment.
	Metric colormath.Metric `json:"metric"`

	// Seed makes the k-means++ seeding deterministic when non-zero.
	Seed int64 `json:"seed"`
}

func (o Options) normalized() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Metric == "" {
		o.Metric = colormath.MetricOKLab
	}
	return o
}

// Result is the outcome of one Cluster call. It is not retained by the
// package.
type Result struct {
	// Centers are the cluster representatives, at most k of them.
	Centers []colormath.RGB `json:"centers"`

	// Assignments maps each input color to its center index.
	Assignments []int `json:"assignments"`

	// Inertia is the sum of squared nearest-center distances; lower is
	// tighter.
	Inertia float64 `json:"inertia"`
}

// Cluster partitions colors into k groups using k-means with k-means++
// seeding: the first center is uniform random, each subsequent center is
// drawn with probability proportional to its squared distance from the
// nearest existing center. Centroids are recomputed as OKLab means (the
// perceptually uniform choice) and converted back to RGB.
//
// Degenerate inputs degrade gracefully: k <= 0 or no colors yields an
// empty Result; k >= len(colors) yields identity clustering with zero
// inertia.
func Cluster(colors []colormath.RGB, k int, opts Options) Result {
	if k <= 0 || len(colors) == 0 {
		return Result{}
	}
	if k >= len(colors) {
		centers := make([]colormath.RGB, len(colors))
		assignments := make([]int, len(colors))
		for i, c := range colors {
			centers[i] = c
			assignments[i] = i
		}
		return Result{Centers: centers, Assignments: assignments}
	}

	opts = opts.normalized()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	centers := seedCenters(colors, k, opts.Metric, rng)
	assignments := make([]int, len(colors))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		changed := false
		for i, c := range colors {
			best := nearestCenter(c, centers, opts.Metric)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		centers = updateCenters(colors, assignments, centers)
	}

	inertia := 0.0
	for i, c := range colors {
		d := colormath.DistanceRGB(c, centers[assignments[i]], opts.Metric)
		inertia += d * d
	}
	return Result{Centers: centers, Assignments: assignments, Inertia: inertia}
}

// seedCenters implements standard k-means++ seeding.
func seedCenters(colors []colormath.RGB, k int, metric colormath.Metric, rng *rand.Rand) []colormath.RGB {
	centers := make([]colormath.RGB, 0, k)
	centers = append(centers, colors[rng.Intn(len(colors))])

	// dist[i] is the squared distance from colors[i] to its nearest
	// chosen center, maintained incrementally.
	dist := make([]float64, len(colors))
	for i, c := range colors {
		d := colormath.DistanceRGB(c, centers[0], metric)
		dist[i] = d * d
	}

	for len(centers) < k {
		total := 0.0
		for _, d := range dist {
			total += d
		}
		var next colormath.RGB
		if total == 0 {
			// All remaining colors coincide with a center; any pick works.
			next = colors[rng.Intn(len(colors))]
		} else {
			target := rng.Float64() * total
			idx := len(colors) - 1
			acc := 0.0
			for i, d := range dist {
				acc += d
				if acc >= target {
					idx = i
					break
				}
			}
			next = colors[idx]
		}
		centers = append(centers, next)
		for i, c := range colors {
			d := colormath.DistanceRGB(c, next, metric)
			if sq := d * d; sq < dist[i] {
				dist[i] = sq
			}
		}
	}
	return centers
}

func nearestCenter(c colormath.RGB, centers []colormath.RGB, metric colormath.Metric) int {
	best := 0
	bestDist := colormath.DistanceRGB(c, centers[0], metric)
	for i := 1; i < len(centers); i++ {
		if d := colormath.DistanceRGB(c, centers[i], metric); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// updateCenters recomputes each cluster's mean in OKLab space and converts
// it back to RGB. Clusters that lost every member keep their old center.
func updateCenters(colors []colormath.RGB, assignments []int, centers []colormath.RGB) []colormath.RGB {
	type accum struct {
		l, a, b, alpha float64
		n              int
	}
	sums := make([]accum, len(centers))
	for i, c := range colors {
		lab := colormath.RGBToOKLab(c)
		s := &sums[assignments[i]]
		s.l += lab.L
		s.a += lab.A
		s.b += lab.B
		s.alpha += lab.Alpha
		s.n++
	}

	out := make([]colormath.RGB, len(centers))
	for i := range centers {
		s := sums[i]
		if s.n == 0 {
			out[i] = centers[i]
			continue
		}
		n := float64(s.n)
		mean := colormath.OKLab{L: s.l / n, A: s.a / n, B: s.b / n, Alpha: s.alpha / n}
		rgb, err := colormath.OKLabToRGB(mean)
		if err != nil {
			out[i] = centers[i]
			continue
		}
		out[i] = rgb
	}
	return out
}

// FindOptimalClusters picks a cluster count for colors by the elbow
// method: it clusters for every k in 1..maxK and returns the k whose
// inertia curve bends hardest (maximum second difference). maxK values
// below 3 are returned as-is since an elbow needs three points.
func FindOptimalClusters(colors []colormath.RGB, maxK int, opts Options) int {
	if maxK < 1 {
		return 1
	}
	if len(colors) == 0 {
		return 1
	}
	if maxK > len(colors) {
		maxK = len(colors)
	}
	if maxK <= 2 {
		return maxK
	}

	inertias := make([]float64, maxK+1)
	for k := 1; k <= maxK; k++ {
		inertias[k] = Cluster(colors, k, opts).Inertia
	}

	bestK := 2
	bestBend := -1.0
	for k := 2; k < maxK; k++ {
		bend := inertias[k-1] - 2*inertias[k] + inertias[k+1]
		if bend > bestBend {
			bestBend = bend
			bestK = k
		}
	}
	return bestK
}
