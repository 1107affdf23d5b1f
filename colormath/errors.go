package colormath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the sentinel matched by errors.Is for any malformed
// color channel.
var ErrInvalidInput = errors.New("invalid color input")

// InvalidInputError reports a malformed channel on an input color.
type InvalidInputError struct {
	Space   Space   // representation being validated
	Channel string  // offending channel name, e.g. "h"
	Value   float64 // the rejected value
	Reason  string  // "NaN" or the expected range, e.g. "must be in [0,100]"
}

// Error implements error.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s channel %q: value %g %s", e.Space, e.Channel, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// ConversionError reports a failed color-space conversion. It wraps the
// underlying cause, which is an *InvalidInputError when a channel was
// malformed.
type ConversionError struct {
	From    Space
	To      Space
	Channel string // offending channel, empty when not channel-specific
	Err     error
}

// Error implements error.
func (e *ConversionError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("convert %s to %s: channel %q: %v", e.From, e.To, e.Channel, e.Err)
	}
	return fmt.Sprintf("convert %s to %s: %v", e.From, e.To, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error { return e.Err }

func invalidChannel(space Space, channel string, value float64, reason string) error {
	return &InvalidInputError{Space: space, Channel: channel, Value: value, Reason: reason}
}

func checkRange(space Space, channel string, value, lo, hi float64) error {
	if math.IsNaN(value) {
		return invalidChannel(space, channel, value, "is NaN")
	}
	if value < lo || value > hi {
		return invalidChannel(space, channel, value, fmt.Sprintf("must be in [%g,%g]", lo, hi))
	}
	return nil
}

func validateAlpha(space Space, a float64) error {
	return checkRange(space, "alpha", a, 0, 1)
}

// validateHueChannels checks an HSL- or HSV-shaped color: hue in [0,360),
// two percentage channels, and alpha.
func validateHueChannels(space Space, h float64, n2 string, v2 float64, n3 string, v3 float64, a float64) error {
	if math.IsNaN(h) {
		return invalidChannel(space, "h", h, "is NaN")
	}
	if h < 0 || h >= 360 {
		return invalidChannel(space, "h", h, "must be in [0,360)")
	}
	if err := checkRange(space, n2, v2, 0, 100); err != nil {
		return err
	}
	if err := checkRange(space, n3, v3, 0, 100); err != nil {
		return err
	}
	return validateAlpha(space, a)
}

// validateLabChannels checks a Lab-shaped color. The a/b axes are open
// ended, so only NaN is rejected there.
func validateLabChannels(space Space, l, lMax, a, b, alpha float64) error {
	if err := checkRange(space, "l", l, 0, lMax); err != nil {
		return err
	}
	if math.IsNaN(a) {
		return invalidChannel(space, "a", a, "is NaN")
	}
	if math.IsNaN(b) {
		return invalidChannel(space, "b", b, "is NaN")
	}
	return validateAlpha(space, alpha)
}

// validateLChChannels checks an LCh-shaped color: bounded lightness,
// non-negative chroma, hue in [0,360).
func validateLChChannels(space Space, l, lMax, c, h, alpha float64) error {
	if err := checkRange(space, "l", l, 0, lMax); err != nil {
		return err
	}
	if math.IsNaN(c) || c < 0 {
		return invalidChannel(space, "c", c, "must be >= 0")
	}
	if math.IsNaN(h) {
		return invalidChannel(space, "h", h, "is NaN")
	}
	if h < 0 || h >= 360 {
		return invalidChannel(space, "h", h, "must be in [0,360)")
	}
	return validateAlpha(space, alpha)
}
