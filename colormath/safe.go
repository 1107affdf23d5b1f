package colormath

import "math"

// The Safe* functions repair malformed channels instead of rejecting them:
// NaN becomes the channel's lower bound, out-of-range values are clamped.
// They exist for callers holding untrusted numeric input; the regular
// conversion path fails fast instead.

// SafeRGB clamps the alpha of an RGB color into [0,1].
func SafeRGB(c RGB) RGB {
	c.A = safeClamp(c.A, 0, 1)
	return c
}

// SafeHSL clamps all HSL channels into range, wrapping hue into [0,360).
func SafeHSL(c HSL) HSL {
	c.H = safeHue(c.H)
	c.S = safeClamp(c.S, 0, 100)
	c.L = safeClamp(c.L, 0, 100)
	c.A = safeClamp(c.A, 0, 1)
	return c
}

// SafeHSV clamps all HSV channels into range, wrapping hue into [0,360).
func SafeHSV(c HSV) HSV {
	c.H = safeHue(c.H)
	c.S = safeClamp(c.S, 0, 100)
	c.V = safeClamp(c.V, 0, 100)
	c.A = safeClamp(c.A, 0, 1)
	return c
}

// SafeLab clamps lightness into [0,100], zeroes NaN axes, and clamps alpha.
func SafeLab(c Lab) Lab {
	c.L = safeClamp(c.L, 0, 100)
	if math.IsNaN(c.A) {
		c.A = 0
	}
	if math.IsNaN(c.B) {
		c.B = 0
	}
	c.Alpha = safeClamp(c.Alpha, 0, 1)
	return c
}

// SafeOKLab clamps lightness into [0,1], zeroes NaN axes, and clamps alpha.
func SafeOKLab(c OKLab) OKLab {
	c.L = safeClamp(c.L, 0, 1)
	if math.IsNaN(c.A) {
		c.A = 0
	}
	if math.IsNaN(c.B) {
		c.B = 0
	}
	c.Alpha = safeClamp(c.Alpha, 0, 1)
	return c
}

func safeClamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func safeHue(h float64) float64 {
	if math.IsNaN(h) {
		return 0
	}
	return normalizeHue(h)
}
