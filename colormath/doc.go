// Package colormath provides pure color-space conversions and perceptual
// distance metrics between RGB, HSL, HSV, CIE LAB, LCH, OKLAB, and OKLCH.
//
// All conversion functions are stateless and safe for concurrent use. The
// only stateful type in the package is LookupTable, a precomputed RGB→HSL
// grid that accelerates bulk conversions; it guards its internals with a
// mutex and is safe for concurrent use.
//
// # Channel Ranges
//
// Each representation has fixed channel ranges:
//   - RGB: R/G/B 0-255 (integer), alpha 0-1
//   - HSL/HSV: H 0-360 degrees (exclusive), S/L/V 0-100 percent
//   - LAB: L 0-100, A/B roughly -128 to 128
//   - LCH: L 0-100, C >= 0, H 0-360 degrees
//   - OKLAB: L 0-1, A/B roughly -0.4 to 0.4
//   - OKLCH: L 0-1, C 0 to ~0.37, H 0-360 degrees
//
// # Rounding
//
// Convert rounds outputs to each representation's conventional precision:
// RGB to integer channels, HSL/HSV to whole degrees and percent. Use
// ConvertPrecise (or the *Precise helpers) when round-trip fidelity
// matters; rounded HSL quantizes lightness to 1% steps, which can move an
// RGB channel by more than one unit on the way back.
//
// # Error Handling
//
// Malformed input (NaN or out-of-range channels) fails with a
// *ConversionError identifying the offending channel. Conversions never
// silently clamp; the Safe* variants exist for callers that want clamping
// instead of errors.
package colormath
