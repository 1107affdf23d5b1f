package quantize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swatchkit/swatchkit/colormath"
)

// twoTightClusters builds a set with an obvious two-group structure: colors
// near black and colors near white.
func twoTightClusters() []colormath.RGB {
	out := make([]colormath.RGB, 0, 40)
	for i := 0; i < 20; i++ {
		v := uint8(i)
		out = append(out, colormath.NewRGB(v, v, v))
		out = append(out, colormath.NewRGB(235+v, 235+v, 235+v))
	}
	return out
}

func TestCluster_DegenerateInputs(t *testing.T) {
	colors := []colormath.RGB{colormath.NewRGB(1, 2, 3)}

	assert.Empty(t, Cluster(nil, 3, Options{}).Centers)
	assert.Empty(t, Cluster(colors, 0, Options{}).Centers)
	assert.Empty(t, Cluster(colors, -1, Options{}).Centers)
}

func TestCluster_KAtLeastInputIsIdentity(t *testing.T) {
	colors := []colormath.RGB{
		colormath.NewRGB(255, 0, 0),
		colormath.NewRGB(0, 255, 0),
		colormath.NewRGB(0, 0, 255),
	}
	res := Cluster(colors, 5, Options{Seed: 1})
	assert.Equal(t, colors, res.Centers)
	assert.Equal(t, []int{0, 1, 2}, res.Assignments)
	assert.Zero(t, res.Inertia)
}

func TestCluster_SeparatesObviousGroups(t *testing.T) {
	colors := twoTightClusters()
	res := Cluster(colors, 2, Options{Seed: 42})

	require.Len(t, res.Centers, 2)
	require.Len(t, res.Assignments, len(colors))

	// Every dark color must share a cluster, and every light color the
	// other one.
	darkCluster := res.Assignments[0]
	for i, c := range colors {
		if c.R < 128 {
			assert.Equal(t, darkCluster, res.Assignments[i], "dark color %v", c)
		} else {
			assert.NotEqual(t, darkCluster, res.Assignments[i], "light color %v", c)
		}
	}

	// One center per side of the split.
	var darkCenters, lightCenters int
	for _, c := range res.Centers {
		if c.R < 128 {
			darkCenters++
		} else {
			lightCenters++
		}
	}
	assert.Equal(t, 1, darkCenters)
	assert.Equal(t, 1, lightCenters)
}

func TestCluster_DeterministicWithSeed(t *testing.T) {
	colors := twoTightClusters()
	a := Cluster(colors, 2, Options{Seed: 7})
	b := Cluster(colors, 2, Options{Seed: 7})
	assert.Equal(t, a.Centers, b.Centers)
	assert.Equal(t, a.Assignments, b.Assignments)
	assert.Equal(t, a.Inertia, b.Inertia)
}

func TestCluster_MoreIterationsNeverWorse(t *testing.T) {
	// A mixed set where refinement actually has work to do.
	colors := make([]colormath.RGB, 0, 60)
	for i := 0; i < 60; i++ {
		colors = append(colors, colormath.NewRGB(
			uint8((i*37)%256), uint8((i*91)%256), uint8((i*53)%256)))
	}

	prev := -1.0
	for _, iters := range []int{1, 5, 50} {
		res := Cluster(colors, 4, Options{Seed: 3, MaxIterations: iters})
		if prev >= 0 {
			assert.LessOrEqual(t, res.Inertia, prev+1e-9,
				"inertia must not increase with more iterations (iters=%d)", iters)
		}
		prev = res.Inertia
	}
}

func TestCluster_AllIdenticalColors(t *testing.T) {
	colors := make([]colormath.RGB, 10)
	for i := range colors {
		colors[i] = colormath.NewRGB(50, 60, 70)
	}
	res := Cluster(colors, 3, Options{Seed: 1})
	require.Len(t, res.Centers, 3)
	assert.Zero(t, res.Inertia)
}

func TestFindOptimalClusters(t *testing.T) {
	colors := twoTightClusters()
	k := FindOptimalClusters(colors, 6, Options{Seed: 9})
	assert.Equal(t, 2, k, "two tight groups should elbow at k=2")
}

func TestFindOptimalClusters_Bounds(t *testing.T) {
	colors := twoTightClusters()
	assert.Equal(t, 1, FindOptimalClusters(colors, 0, Options{}))
	assert.Equal(t, 1, FindOptimalClusters(nil, 5, Options{}))
	assert.Equal(t, 2, FindOptimalClusters(colors, 2, Options{}))
	assert.Equal(t, 1, FindOptimalClusters(colors[:1], 5, Options{}))
}
