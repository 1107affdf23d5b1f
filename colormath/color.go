package colormath

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Space identifies a color representation.
type Space string

// Supported color spaces.
const (
	SpaceRGB   Space = "rgb"
	SpaceHSL   Space = "hsl"
	SpaceHSV   Space = "hsv"
	SpaceLab   Space = "lab"
	SpaceLCh   Space = "lch"
	SpaceOKLab Space = "oklab"
	SpaceOKLCh Space = "oklch"
)

// Color is the closed union of all supported color representations.
// Exactly the seven concrete types in this package implement it.
type Color interface {
	// Space reports which representation this value carries.
	Space() Space

	// String renders the value in a compact human-readable form.
	String() string

	// toRGBF converts to the internal float RGB hub after validation.
	// Unexported so the union stays closed.
	toRGBF() (rgbf, error)
}

// rgbf is the internal conversion hub: a go-colorful color (channels in
// [0,1]) plus the alpha the library does not model.
type rgbf struct {
	c colorful.Color
	a float64
}

// RGB is an sRGB color with 8-bit integer channels and an alpha in [0,1].
type RGB struct {
	R uint8   `json:"r"` // Red component (0-255)
	G uint8   `json:"g"` // Green component (0-255)
	B uint8   `json:"b"` // Blue component (0-255)
	A float64 `json:"a"` // Alpha/opacity (0-1)
}

// NewRGB builds an opaque RGB color.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b, A: 1}
}

// Space implements Color.
func (c RGB) Space() Space { return SpaceRGB }

// String returns the color as "rgb(r, g, b)".
func (c RGB) String() string { return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B) }

// Hex returns the color in "#RRGGBB" form (alpha excluded).
func (c RGB) Hex() string { return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B) }

func (c RGB) toRGBF() (rgbf, error) {
	if err := validateAlpha(SpaceRGB, c.A); err != nil {
		return rgbf{}, err
	}
	return rgbf{
		c: colorful.Color{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
		},
		a: c.A,
	}, nil
}

// HSL is a hue/saturation/lightness color. H is in degrees [0,360),
// S and L are percentages [0,100]. Convert produces whole-number channels;
// the *Precise helpers keep full float precision.
type HSL struct {
	H float64 `json:"h"` // Hue in degrees (0-360)
	S float64 `json:"s"` // Saturation percent (0-100)
	L float64 `json:"l"` // Lightness percent (0-100)
	A float64 `json:"a"` // Alpha/opacity (0-1)
}

// NewHSL builds an opaque HSL color.
func NewHSL(h, s, l float64) HSL {
	return HSL{H: h, S: s, L: l, A: 1}
}

// Space implements Color.
func (c HSL) Space() Space { return SpaceHSL }

// String returns the color as "hsl(h, s%, l%)".
func (c HSL) String() string { return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.H, c.S, c.L) }

func (c HSL) toRGBF() (rgbf, error) {
	if err := validateHueChannels(SpaceHSL, c.H, "s", c.S, "l", c.L, c.A); err != nil {
		return rgbf{}, err
	}
	return rgbf{c: colorful.Hsl(c.H, c.S/100.0, c.L/100.0), a: c.A}, nil
}

// HSV is a hue/saturation/value color. H is in degrees [0,360),
// S and V are percentages [0,100].
type HSV struct {
	H float64 `json:"h"` // Hue in degrees (0-360)
	S float64 `json:"s"` // Saturation percent (0-100)
	V float64 `json:"v"` // Value percent (0-100)
	A float64 `json:"a"` // Alpha/opacity (0-1)
}

// NewHSV builds an opaque HSV color.
func NewHSV(h, s, v float64) HSV {
	return HSV{H: h, S: s, V: v, A: 1}
}

// Space implements Color.
func (c HSV) Space() Space { return SpaceHSV }

// String returns the color as "hsv(h, s%, v%)".
func (c HSV) String() string { return fmt.Sprintf("hsv(%g, %g%%, %g%%)", c.H, c.S, c.V) }

func (c HSV) toRGBF() (rgbf, error) {
	if err := validateHueChannels(SpaceHSV, c.H, "s", c.S, "v", c.V, c.A); err != nil {
		return rgbf{}, err
	}
	return rgbf{c: colorful.Hsv(c.H, c.S/100.0, c.V/100.0), a: c.A}, nil
}

// Lab is a CIE L*a*b* color under the D65 illuminant. L is 0-100,
// A and B are unbounded in principle but roughly -128 to 128 for colors
// reachable from sRGB.
type Lab struct {
	L     float64 `json:"l"`     // Lightness (0-100)
	A     float64 `json:"a"`     // Green-red axis
	B     float64 `json:"b"`     // Blue-yellow axis
	Alpha float64 `json:"alpha"` // Alpha/opacity (0-1)
}

// NewLab builds an opaque Lab color.
func NewLab(l, a, b float64) Lab {
	return Lab{L: l, A: a, B: b, Alpha: 1}
}

// Space implements Color.
func (c Lab) Space() Space { return SpaceLab }

// String returns the color as "lab(l, a, b)".
func (c Lab) String() string { return fmt.Sprintf("lab(%g, %g, %g)", c.L, c.A, c.B) }

func (c Lab) toRGBF() (rgbf, error) {
	if err := validateLabChannels(SpaceLab, c.L, 100, c.A, c.B, c.Alpha); err != nil {
		return rgbf{}, err
	}
	// go-colorful keeps L*a*b* scaled down by 100.
	return rgbf{c: colorful.Lab(c.L/100.0, c.A/100.0, c.B/100.0), a: c.Alpha}, nil
}

// LCh is the cylindrical form of Lab: lightness, chroma, hue.
type LCh struct {
	L     float64 `json:"l"`     // Lightness (0-100)
	C     float64 `json:"c"`     // Chroma (>= 0)
	H     float64 `json:"h"`     // Hue in degrees (0-360)
	Alpha float64 `json:"alpha"` // Alpha/opacity (0-1)
}

// NewLCh builds an opaque LCh color.
func NewLCh(l, c, h float64) LCh {
	return LCh{L: l, C: c, H: h, Alpha: 1}
}

// Space implements Color.
func (c LCh) Space() Space { return SpaceLCh }

// String returns the color as "lch(l, c, h)".
func (c LCh) String() string { return fmt.Sprintf("lch(%g, %g, %g)", c.L, c.C, c.H) }

func (c LCh) toRGBF() (rgbf, error) {
	if err := validateLChChannels(SpaceLCh, c.L, 100, c.C, c.H, c.Alpha); err != nil {
		return rgbf{}, err
	}
	return rgbf{c: colorful.Hcl(c.H, c.C/100.0, c.L/100.0), a: c.Alpha}, nil
}

// OKLab is a color in the OKLAB perceptual space. L is 0-1, A and B are
// roughly -0.4 to 0.4 for sRGB colors.
type OKLab struct {
	L     float64 `json:"l"`     // Lightness (0-1)
	A     float64 `json:"a"`     // Green-red axis
	B     float64 `json:"b"`     // Blue-yellow axis
	Alpha float64 `json:"alpha"` // Alpha/opacity (0-1)
}

// NewOKLab builds an opaque OKLab color.
func NewOKLab(l, a, b float64) OKLab {
	return OKLab{L: l, A: a, B: b, Alpha: 1}
}

// Space implements Color.
func (c OKLab) Space() Space { return SpaceOKLab }

// String returns the color as "oklab(l, a, b)".
func (c OKLab) String() string { return fmt.Sprintf("oklab(%g, %g, %g)", c.L, c.A, c.B) }

func (c OKLab) toRGBF() (rgbf, error) {
	if err := validateLabChannels(SpaceOKLab, c.L, 1, c.A, c.B, c.Alpha); err != nil {
		return rgbf{}, err
	}
	r, g, b := oklabToLinearRGB(c.L, c.A, c.B)
	return rgbf{
		c: colorful.Color{
			R: linearToSRGB(clamp01(r)),
			G: linearToSRGB(clamp01(g)),
			B: linearToSRGB(clamp01(b)),
		},
		a: c.Alpha,
	}, nil
}

// OKLCh is the cylindrical form of OKLab.
type OKLCh struct {
	L     float64 `json:"l"`     // Lightness (0-1)
	C     float64 `json:"c"`     // Chroma (0 to ~0.37)
	H     float64 `json:"h"`     // Hue in degrees (0-360)
	Alpha float64 `json:"alpha"` // Alpha/opacity (0-1)
}

// NewOKLCh builds an opaque OKLCh color.
func NewOKLCh(l, c, h float64) OKLCh {
	return OKLCh{L: l, C: c, H: h, Alpha: 1}
}

// Space implements Color.
func (c OKLCh) Space() Space { return SpaceOKLCh }

// String returns the color as "oklch(l, c, h)".
func (c OKLCh) String() string { return fmt.Sprintf("oklch(%g, %g, %g)", c.L, c.C, c.H) }

func (c OKLCh) toRGBF() (rgbf, error) {
	if err := validateLChChannels(SpaceOKLCh, c.L, 1, c.C, c.H, c.Alpha); err != nil {
		return rgbf{}, err
	}
	hRad := c.H * (math.Pi / 180.0)
	lab := OKLab{L: c.L, A: c.C * math.Cos(hRad), B: c.C * math.Sin(hRad), Alpha: c.Alpha}
	return lab.toRGBF()
}

// ParseHex parses a "#RRGGBB" or "#RGB" string into an opaque RGB color.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, &ConversionError{From: SpaceRGB, To: SpaceRGB, Channel: "hex", Err: err}
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b, A: 1}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
