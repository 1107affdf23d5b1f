package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is matched by errors.Is when a cache key is rejected.
var ErrInvalidKey = errors.New("invalid cache key")

// ErrInvalidConfig is matched by errors.Is for configuration errors.
var ErrInvalidConfig = errors.New("invalid cache configuration")

// InvalidKeyError reports a rejected cache key. Keys must contain at least
// one non-whitespace character.
type InvalidKeyError struct {
	Key string
}

// Error implements error.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("cache key %q is empty or blank", e.Key)
}

// Unwrap lets errors.Is match ErrInvalidKey.
func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// ConfigurationError reports an invalid cache configuration, such as a
// MinSize larger than MaxSize.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cache configuration: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfig }
