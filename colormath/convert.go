package colormath

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Convert translates a color into the target representation, rounding the
// result to the target's conventional precision (RGB → integer channels,
// HSL/HSV → whole degrees and percent, Lab/LCh → 3 decimals, OKLab/OKLCh →
// 6 decimals).
//
// Conversions route through an internal sRGB hub. Colors that fall outside
// the sRGB gamut (possible when starting from Lab or OKLab) are mapped to
// the nearest in-gamut color when the target is RGB, HSL, or HSV.
//
// A malformed input channel (NaN or out of range) fails with a
// *ConversionError wrapping an *InvalidInputError; the input is never
// silently clamped. See the Safe* functions for clamping behavior.
func Convert(c Color, to Space) (Color, error) {
	return convert(c, to, true)
}

// ConvertPrecise is Convert without output rounding. Use it when the result
// feeds further computation; rounded HSL/HSV quantize too coarsely to
// round-trip within one RGB channel unit.
func ConvertPrecise(c Color, to Space) (Color, error) {
	return convert(c, to, false)
}

func convert(c Color, to Space, round bool) (Color, error) {
	f, err := c.toRGBF()
	if err != nil {
		var inv *InvalidInputError
		channel := ""
		if errors.As(err, &inv) {
			channel = inv.Channel
		}
		return nil, &ConversionError{From: c.Space(), To: to, Channel: channel, Err: err}
	}
	out, err := fromRGBF(f, to, round)
	if err != nil {
		return nil, &ConversionError{From: c.Space(), To: to, Err: err}
	}
	return out, nil
}

func fromRGBF(f rgbf, to Space, round bool) (Color, error) {
	switch to {
	case SpaceRGB:
		r, g, b := f.c.Clamped().RGB255()
		return RGB{R: r, G: g, B: b, A: f.a}, nil
	case SpaceHSL:
		h, s, l := f.c.Clamped().Hsl()
		out := HSL{H: h, S: s * 100, L: l * 100, A: f.a}
		if round {
			out.H = roundHue(out.H)
			out.S = math.Round(out.S)
			out.L = math.Round(out.L)
		}
		return out, nil
	case SpaceHSV:
		h, s, v := f.c.Clamped().Hsv()
		out := HSV{H: h, S: s * 100, V: v * 100, A: f.a}
		if round {
			out.H = roundHue(out.H)
			out.S = math.Round(out.S)
			out.V = math.Round(out.V)
		}
		return out, nil
	case SpaceLab:
		l, a, b := f.c.Lab()
		out := Lab{L: snapChannel(l*100, 0, 100), A: a * 100, B: b * 100, Alpha: f.a}
		if round {
			out.L = roundTo(out.L, 3)
			out.A = roundTo(out.A, 3)
			out.B = roundTo(out.B, 3)
		}
		return out, nil
	case SpaceLCh:
		h, cc, l := f.c.Hcl()
		out := LCh{L: snapChannel(l*100, 0, 100), C: cc * 100, H: h, Alpha: f.a}
		if round {
			out.L = roundTo(out.L, 3)
			out.C = roundTo(out.C, 3)
			out.H = roundTo(out.H, 3)
		}
		return out, nil
	case SpaceOKLab:
		out := rgbfToOKLab(f)
		if round {
			out.L = roundTo(out.L, 6)
			out.A = roundTo(out.A, 6)
			out.B = roundTo(out.B, 6)
		}
		return out, nil
	case SpaceOKLCh:
		out := rgbfToOKLCh(f)
		if round {
			out.L = roundTo(out.L, 6)
			out.C = roundTo(out.C, 6)
			out.H = roundTo(out.H, 6)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported color space %q", to)
	}
}

// RGBToHSL converts RGB to HSL with whole-number channels. The RGB channels
// cannot be malformed, so no error is possible; alpha is carried through
// untouched.
func RGBToHSL(c RGB) HSL {
	h, s, l := rgbHub(c).Hsl()
	return HSL{H: roundHue(h), S: math.Round(s * 100), L: math.Round(l * 100), A: c.A}
}

// RGBToHSLPrecise converts RGB to HSL keeping full float precision.
func RGBToHSLPrecise(c RGB) HSL {
	h, s, l := rgbHub(c).Hsl()
	return HSL{H: h, S: s * 100, L: l * 100, A: c.A}
}

// RGBToHSV converts RGB to HSV with whole-number channels.
func RGBToHSV(c RGB) HSV {
	h, s, v := rgbHub(c).Hsv()
	return HSV{H: roundHue(h), S: math.Round(s * 100), V: math.Round(v * 100), A: c.A}
}

// RGBToHSVPrecise converts RGB to HSV keeping full float precision.
func RGBToHSVPrecise(c RGB) HSV {
	h, s, v := rgbHub(c).Hsv()
	return HSV{H: h, S: s * 100, V: v * 100, A: c.A}
}

// RGBToLab converts RGB to CIE Lab (D65) keeping full float precision.
func RGBToLab(c RGB) Lab {
	l, a, b := rgbHub(c).Lab()
	return Lab{L: snapChannel(l*100, 0, 100), A: a * 100, B: b * 100, Alpha: c.A}
}

// RGBToLCh converts RGB to CIE LCh keeping full float precision.
func RGBToLCh(c RGB) LCh {
	h, cc, l := rgbHub(c).Hcl()
	return LCh{L: snapChannel(l*100, 0, 100), C: cc * 100, H: h, Alpha: c.A}
}

// RGBToOKLab converts RGB to OKLab.
func RGBToOKLab(c RGB) OKLab {
	return rgbfToOKLab(rgbf{c: rgbHub(c), a: c.A})
}

// RGBToOKLCh converts RGB to OKLCh.
func RGBToOKLCh(c RGB) OKLCh {
	return rgbfToOKLCh(rgbf{c: rgbHub(c), a: c.A})
}

// HSLToRGB converts HSL to RGB, failing on malformed channels.
func HSLToRGB(c HSL) (RGB, error) {
	return hubToRGB(c)
}

// HSVToRGB converts HSV to RGB, failing on malformed channels.
func HSVToRGB(c HSV) (RGB, error) {
	return hubToRGB(c)
}

// LabToRGB converts Lab to RGB, failing on malformed channels. Out-of-gamut
// results are mapped to the nearest sRGB color.
func LabToRGB(c Lab) (RGB, error) {
	return hubToRGB(c)
}

// LChToRGB converts LCh to RGB, failing on malformed channels.
func LChToRGB(c LCh) (RGB, error) {
	return hubToRGB(c)
}

// OKLabToRGB converts OKLab to RGB, failing on malformed channels.
func OKLabToRGB(c OKLab) (RGB, error) {
	return hubToRGB(c)
}

// OKLChToRGB converts OKLCh to RGB, failing on malformed channels.
func OKLChToRGB(c OKLCh) (RGB, error) {
	return hubToRGB(c)
}

func hubToRGB(c Color) (RGB, error) {
	out, err := convert(c, SpaceRGB, true)
	if err != nil {
		return RGB{}, err
	}
	return out.(RGB), nil
}

func rgbHub(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func roundHue(h float64) float64 {
	h = math.Round(h)
	if h >= 360 {
		h -= 360
	}
	return h
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// snapChannel moves a value sitting within 1e-9 outside [lo,hi] onto the
// nearest bound. go-colorful leaves float noise on boundary colors (black
// comes back with L around -2.8e-15), and an L channel carrying that noise
// fails its own range validation on the return trip.
func snapChannel(v, lo, hi float64) float64 {
	if v < lo && lo-v < 1e-9 {
		return lo
	}
	if v > hi && v-hi < 1e-9 {
		return hi
	}
	return v
}
