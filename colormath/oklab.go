package colormath

import "math"

// OKLAB support is hand-rolled: go-colorful (as of v1.2.0) stops at CIE
// spaces. The matrices below are the standard OKLab definition by
// Björn Ottosson.

// srgbToLinear converts a single sRGB component in [0,1] to linear RGB.
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB converts a single linear RGB component in [0,1] to sRGB.
func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// linearRGBToOKLab converts linear RGB to OKLab components.
func linearRGBToOKLab(r, g, b float64) (float64, float64, float64) {
	// M1: linear RGB → LMS
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	// M2: LMS' → Lab
	L := 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp
	A := 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp
	B := 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp

	return L, A, B
}

// oklabToLinearRGB converts OKLab components to linear RGB. The result may
// fall outside [0,1] for colors outside the sRGB gamut.
func oklabToLinearRGB(L, a, b float64) (float64, float64, float64) {
	// Inverse M2: Lab → LMS'
	lp := L + 0.3963377774*a + 0.2158037573*b
	mp := L - 0.1055613458*a - 0.0638541728*b
	sp := L - 0.0894841775*a - 1.2914855480*b

	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	// Inverse M1: LMS → linear RGB
	r := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	bl := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	return r, g, bl
}

// rgbfToOKLab converts the internal hub representation to OKLab.
func rgbfToOKLab(f rgbf) OKLab {
	lr := srgbToLinear(f.c.R)
	lg := srgbToLinear(f.c.G)
	lb := srgbToLinear(f.c.B)
	L, A, B := linearRGBToOKLab(lr, lg, lb)
	return OKLab{L: L, A: A, B: B, Alpha: f.a}
}

// rgbfToOKLCh converts the internal hub representation to OKLCh.
func rgbfToOKLCh(f rgbf) OKLCh {
	lab := rgbfToOKLab(f)
	c := math.Sqrt(lab.A*lab.A + lab.B*lab.B)
	h := math.Atan2(lab.B, lab.A) * (180.0 / math.Pi)
	if h < 0 {
		h += 360.0
	}
	return OKLCh{L: lab.L, C: c, H: h, Alpha: f.a}
}
