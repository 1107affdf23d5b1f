package quantize

import (
	"sort"

	"github.com/swatchkit/swatchkit/colormath"
)

// MedianCut reduces colors to at most targetCount representatives by
// recursively splitting the bucket with the largest single-channel range
// at that channel's median, then replacing each final bucket with its
// OKLab-space mean. Unlike k-means it is deterministic and needs no
// iteration budget.
//
// targetCount <= 0 or an empty input yields nil. A targetCount at or above
// the number of input colors returns the colors unchanged.
func MedianCut(colors []colormath.RGB, targetCount int) []colormath.RGB {
	if targetCount <= 0 || len(colors) == 0 {
		return nil
	}
	if targetCount >= len(colors) {
		out := make([]colormath.RGB, len(colors))
		copy(out, colors)
		return out
	}

	buckets := [][]colormath.RGB{append([]colormath.RGB(nil), colors...)}
	for len(buckets) < targetCount {
		idx, channel, spread := widestBucket(buckets)
		if spread == 0 {
			break // nothing left to split
		}
		left, right := splitAtMedian(buckets[idx], channel)
		buckets[idx] = left
		buckets = append(buckets, right)
	}

	out := make([]colormath.RGB, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, oklabMean(bucket))
	}
	return out
}

// widestBucket finds the splittable bucket with the largest per-channel
// range. channel is 0 for R, 1 for G, 2 for B.
func widestBucket(buckets [][]colormath.RGB) (idx, channel, spread int) {
	spread = 0
	for i, bucket := range buckets {
		if len(bucket) < 2 {
			continue
		}
		for ch := 0; ch < 3; ch++ {
			lo, hi := 255, 0
			for _, c := range bucket {
				v := channelValue(c, ch)
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			if r := hi - lo; r > spread {
				spread = r
				idx = i
				channel = ch
			}
		}
	}
	return idx, channel, spread
}

// splitAtMedian sorts a bucket along one channel and cuts it at the
// median index. Both halves are non-empty for buckets of two or more.
func splitAtMedian(bucket []colormath.RGB, channel int) (left, right []colormath.RGB) {
	sorted := append([]colormath.RGB(nil), bucket...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return channelValue(sorted[i], channel) < channelValue(sorted[j], channel)
	})
	mid := len(sorted) / 2
	return sorted[:mid], sorted[mid:]
}

func channelValue(c colormath.RGB, channel int) int {
	switch channel {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

// oklabMean averages a bucket in OKLab and converts back to RGB.
func oklabMean(bucket []colormath.RGB) colormath.RGB {
	if len(bucket) == 1 {
		return bucket[0]
	}
	var l, a, b, alpha float64
	for _, c := range bucket {
		lab := colormath.RGBToOKLab(c)
		l += lab.L
		a += lab.A
		b += lab.B
		alpha += lab.Alpha
	}
	n := float64(len(bucket))
	mean := colormath.OKLab{L: l / n, A: a / n, B: b / n, Alpha: alpha / n}
	rgb, err := colormath.OKLabToRGB(mean)
	if err != nil {
		return bucket[0]
	}
	return rgb
}
