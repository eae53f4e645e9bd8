package loader

import (
	"os"
	"strings"
)

// EnvLoader loads configuration from environment variables.
//
// Each known setting path maps to PREFIX + the upper-cased path with dots
// replaced by underscores, so theme.mode_bar reads RPNCALC_THEME_MODE_BAR.
// Values are returned as strings; callers coerce them.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates an environment loader for the given setting paths.
// The prefix should include the trailing underscore (e.g., "RPNCALC_").
func NewEnvLoader(prefix string, paths []string) *EnvLoader {
	mapping := make(map[string]string, len(paths))
	for _, p := range paths {
		mapping[EnvName(prefix, p)] = p
	}
	return &EnvLoader{prefix: prefix, mapping: mapping, lookup: os.LookupEnv}
}

// EnvName returns the variable name for a setting path.
func EnvName(prefix, path string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

// Load reads the mapped variables. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, val)
		}
	}
	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}
