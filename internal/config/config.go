package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/dshills/rpncalc/internal/config/loader"
	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/renderer"
)

// EnvPrefix prefixes environment overrides, e.g. RPNCALC_BIN_MAX_BITS.
const EnvPrefix = "RPNCALC_"

// Theme holds the display colors as hex strings.
type Theme struct {
	ModeBar string
	Message string
	Error   string
	Ruler   string
}

// Config is the effective configuration. A session keeps the Config it
// started with; reloads take effect on the next session.
type Config struct {
	BinMaxBits   int
	SciPrecision int
	SciThreshold float64
	WindowTitle  string

	LogLevel   string
	LogFile    string
	PluginPath string

	Theme Theme
}

// Default returns the built-in configuration.
func Default() Config {
	p := renderer.DefaultPalette()
	return Config{
		BinMaxBits:   engine.DefaultBinMaxBits,
		SciPrecision: engine.DefaultSciPrecision,
		SciThreshold: engine.DefaultSciThreshold,
		WindowTitle:  engine.DefaultWindowTitle,
		LogLevel:     "info",
		Theme: Theme{
			ModeBar: p.ModeBar,
			Message: p.Message,
			Error:   p.Error,
			Ruler:   p.Ruler,
		},
	}
}

// EngineConfig returns the settings the calculator engine uses.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		BinMaxBits:   c.BinMaxBits,
		SciPrecision: c.SciPrecision,
		SciThreshold: c.SciThreshold,
		WindowTitle:  c.WindowTitle,
	}
}

// Palette returns the theme colors for the renderer.
func (c Config) Palette() renderer.Palette {
	return renderer.Palette{
		ModeBar: c.Theme.ModeBar,
		Message: c.Theme.Message,
		Error:   c.Theme.Error,
		Ruler:   c.Theme.Ruler,
	}
}

// Load builds a Config from defaults, the file at path and the
// environment, then validates it. An empty path skips the file. A
// missing file is an error only when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		l, err := loader.ForPath(path)
		if err != nil {
			return cfg, err
		}
		m, err := l.Load()
		if err != nil {
			return cfg, err
		}
		if m == nil && required {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if err := cfg.Apply(m); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	env, err := loader.NewEnvLoader(EnvPrefix, Keys()).Load()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Apply(env); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Apply overlays the settings present in m. Unknown keys are ignored.
func (c *Config) Apply(m map[string]any) error {
	if m == nil {
		return nil
	}
	for _, s := range settings {
		raw, ok := loader.Lookup(m, s.key)
		if !ok {
			continue
		}
		if err := s.set(c, raw); err != nil {
			return &ValidationError{Key: s.key, Value: raw, Message: err.Error()}
		}
	}
	return nil
}

// DumpJSON returns the configuration as a JSON object keyed like the
// config files.
func (c Config) DumpJSON() (string, error) {
	out := "{}"
	for _, s := range settings {
		var err error
		out, err = sjson.Set(out, s.key, s.get(c))
		if err != nil {
			return "", fmt.Errorf("dump %s: %w", s.key, err)
		}
	}
	return out, nil
}

// DefaultPath returns the config file used when none is given:
// $XDG_CONFIG_HOME/rpncalc/config.toml or its OS equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rpncalc", "config.toml")
}

// DefaultLogPath returns the log file used when none is configured.
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "rpncalc", "rpncalc.log")
	}
	return filepath.Join(os.TempDir(), "rpncalc.log")
}

// Keys returns the setting paths in file order.
func Keys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.key
	}
	return keys
}

type setting struct {
	key string
	get func(Config) any
	set func(*Config, any) error
}

var settings = []setting{
	{"bin_max_bits",
		func(c Config) any { return c.BinMaxBits },
		func(c *Config, v any) (err error) { c.BinMaxBits, err = toInt(v); return }},
	{"sci_precision",
		func(c Config) any { return c.SciPrecision },
		func(c *Config, v any) (err error) { c.SciPrecision, err = toInt(v); return }},
	{"sci_threshold",
		func(c Config) any { return c.SciThreshold },
		func(c *Config, v any) (err error) { c.SciThreshold, err = toFloat(v); return }},
	{"window_title",
		func(c Config) any { return c.WindowTitle },
		func(c *Config, v any) (err error) { c.WindowTitle, err = toString(v); return }},
	{"log_level",
		func(c Config) any { return c.LogLevel },
		func(c *Config, v any) (err error) { c.LogLevel, err = toString(v); return }},
	{"log_file",
		func(c Config) any { return c.LogFile },
		func(c *Config, v any) (err error) { c.LogFile, err = toString(v); return }},
	{"plugin_path",
		func(c Config) any { return c.PluginPath },
		func(c *Config, v any) (err error) { c.PluginPath, err = toString(v); return }},
	{"theme.mode_bar",
		func(c Config) any { return c.Theme.ModeBar },
		func(c *Config, v any) (err error) { c.Theme.ModeBar, err = toString(v); return }},
	{"theme.message",
		func(c Config) any { return c.Theme.Message },
		func(c *Config, v any) (err error) { c.Theme.Message, err = toString(v); return }},
	{"theme.error",
		func(c Config) any { return c.Theme.Error },
		func(c *Config, v any) (err error) { c.Theme.Error, err = toString(v); return }},
	{"theme.ruler",
		func(c Config) any { return c.Theme.Ruler },
		func(c *Config, v any) (err error) { c.Theme.Ruler, err = toString(v); return }},
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrTypeMismatch, n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: want integer, got %T", ErrTypeMismatch, v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrTypeMismatch, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: want number, got %T", ErrTypeMismatch, v)
	}
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: want string, got %T", ErrTypeMismatch, v)
	}
	return s, nil
}
