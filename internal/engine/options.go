package engine

import (
	"github.com/dshills/rpncalc/internal/engine/command"
	"github.com/dshills/rpncalc/internal/engine/mode"
)

// Default configuration values.
const (
	DefaultBinMaxBits   = 48
	DefaultSciPrecision = 10
	DefaultSciThreshold = 10000
	DefaultWindowTitle  = ">> rpn <<"

	// HelpHint is the message shown when nothing else is reported.
	HelpHint = "? - Help"
)

// Config is fixed for the lifetime of a session.
type Config struct {
	// BinMaxBits is the Programmer mode word width.
	BinMaxBits int

	// SciPrecision is the number of significant digits in Scientific
	// notation output.
	SciPrecision int

	// SciThreshold is the magnitude at which Scientific mode switches to
	// notation output.
	SciThreshold float64

	// WindowTitle names the calculator view.
	WindowTitle string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		BinMaxBits:   DefaultBinMaxBits,
		SciPrecision: DefaultSciPrecision,
		SciThreshold: DefaultSciThreshold,
		WindowTitle:  DefaultWindowTitle,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BinMaxBits <= 0 {
		c.BinMaxBits = d.BinMaxBits
	}
	if c.SciPrecision <= 0 {
		c.SciPrecision = d.SciPrecision
	}
	if c.SciThreshold <= 0 {
		c.SciThreshold = d.SciThreshold
	}
	if c.WindowTitle == "" {
		c.WindowTitle = d.WindowTitle
	}
	return c
}

// Extension is a set of operations added to one mode's table.
type Extension struct {
	Mode mode.Mode
	Set  command.Set
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithExtensions adds operations to the mode tables. Extensions that
// conflict with built-in keys are skipped and logged.
func WithExtensions(exts ...Extension) Option {
	return func(e *Engine) {
		e.extensions = append(e.extensions, exts...)
	}
}
