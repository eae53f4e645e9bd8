package config

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Errors returned by configuration operations.
var (
	// ErrTypeMismatch indicates the value type doesn't match the setting.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the configuration fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")
)

// ValidationError describes an invalid setting.
type ValidationError struct {
	Key     string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Key, e.Message, e.Value)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Validate checks every setting and reports all failures together.
func (c Config) Validate() error {
	var errs []error
	bad := func(key string, v any, format string, args ...any) {
		errs = append(errs, &ValidationError{Key: key, Value: v, Message: fmt.Sprintf(format, args...)})
	}

	if c.BinMaxBits < 8 || c.BinMaxBits > 256 || c.BinMaxBits%8 != 0 {
		bad("bin_max_bits", c.BinMaxBits, "must be a multiple of 8 between 8 and 256")
	}
	if c.SciPrecision < 1 || c.SciPrecision > 34 {
		bad("sci_precision", c.SciPrecision, "must be between 1 and 34")
	}
	if !(c.SciThreshold > 0) {
		bad("sci_threshold", c.SciThreshold, "must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		bad("log_level", c.LogLevel, "must be debug, info, warn or error")
	}

	colors := []struct{ key, val string }{
		{"theme.mode_bar", c.Theme.ModeBar},
		{"theme.message", c.Theme.Message},
		{"theme.error", c.Theme.Error},
		{"theme.ruler", c.Theme.Ruler},
	}
	for _, col := range colors {
		if _, err := colorful.Hex(col.val); err != nil {
			bad(col.key, col.val, "not a #RRGGBB color")
		}
	}

	return errors.Join(errs...)
}
