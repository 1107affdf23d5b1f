package pool

import "github.com/swatchkit/swatchkit/colormath"

// Prebuilt pools for the scratch color records that bulk conversions churn
// through. Each reset zeroes the record so a borrower never sees stale
// channels.

// NewRGBScratch returns a pool of reusable RGB records.
func NewRGBScratch(cfg Config) *Pool[*colormath.RGB] {
	return New(cfg,
		func() *colormath.RGB { return &colormath.RGB{A: 1} },
		func(c *colormath.RGB) *colormath.RGB {
			*c = colormath.RGB{A: 1}
			return c
		},
	)
}

// NewHSLScratch returns a pool of reusable HSL records.
func NewHSLScratch(cfg Config) *Pool[*colormath.HSL] {
	return New(cfg,
		func() *colormath.HSL { return &colormath.HSL{A: 1} },
		func(c *colormath.HSL) *colormath.HSL {
			*c = colormath.HSL{A: 1}
			return c
		},
	)
}

// NewHSVScratch returns a pool of reusable HSV records.
func NewHSVScratch(cfg Config) *Pool[*colormath.HSV] {
	return New(cfg,
		func() *colormath.HSV { return &colormath.HSV{A: 1} },
		func(c *colormath.HSV) *colormath.HSV {
			*c = colormath.HSV{A: 1}
			return c
		},
	)
}
