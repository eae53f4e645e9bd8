// Package loader reads configuration sources into generic maps.
//
// File loaders handle TOML, YAML and JSON; EnvLoader reads prefixed
// environment variables. Every loader returns nested maps keyed by the
// snake_case setting names used in config files.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseFunc decodes file content into a map.
type parseFunc func(data []byte) (map[string]any, error)

// FileLoader loads one config file with a format-specific parser.
type FileLoader struct {
	fs     FileSystem
	path   string
	format string
	parse  parseFunc
}

// ForPath returns a loader for path chosen by its extension:
// .toml, .yaml/.yml or .json.
func ForPath(path string) (*FileLoader, error) {
	return ForPathWithFS(DefaultFS(), path)
}

// ForPathWithFS is ForPath with a custom file system.
func ForPathWithFS(fsys FileSystem, path string) (*FileLoader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l := &FileLoader{fs: fsys, path: path}
	switch ext {
	case ".toml":
		l.format, l.parse = "toml", parseTOML
	case ".yaml", ".yml":
		l.format, l.parse = "yaml", parseYAML
	case ".json":
		l.format, l.parse = "json", parseJSON
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return l, nil
}

// Path returns the file path.
func (l *FileLoader) Path() string { return l.path }

// Format returns the format name: toml, yaml or json.
func (l *FileLoader) Format() string { return l.format }

// Load reads and parses the file. A missing file yields nil, nil.
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	m, err := l.parse(data)
	if err != nil {
		return nil, &ParseError{Path: l.path, Message: err.Error(), Err: err}
	}
	return m, nil
}

// Lookup returns the value at a dotted path in a nested map.
func Lookup(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = m
	for _, p := range parts {
		mm, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = mm[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// setByPath stores v at a dotted path, creating intermediate maps.
func setByPath(m map[string]any, path string, v any) {
	parts := strings.Split(path, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

// asMap accepts the map shapes the decoders produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
