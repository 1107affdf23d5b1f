package colormath

import "math"

// normalizeHue wraps a hue into [0,360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HueDistance returns the angular distance between two hues along the
// shortest arc, in [0,180].
func HueDistance(h1, h2 float64) float64 {
	d := math.Abs(normalizeHue(h1) - normalizeHue(h2))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// LerpHue interpolates between two hues along the shortest arc.
// t=0 returns h1, t=1 returns h2; the result is wrapped into [0,360).
func LerpHue(h1, h2, t float64) float64 {
	h1 = normalizeHue(h1)
	h2 = normalizeHue(h2)
	d := h2 - h1
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return normalizeHue(h1 + d*t)
}
