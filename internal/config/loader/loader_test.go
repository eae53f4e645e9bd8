package loader

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestFileLoaderFormats(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/c.toml", `
bin_max_bits = 32
window_title = "calc"

[theme]
mode_bar = "#112233"
`)
	memfs.AddFile("/c.yaml", `
bin_max_bits: 32
window_title: calc
theme:
  mode_bar: "#112233"
`)
	memfs.AddFile("/c.json", `{"bin_max_bits": 32, "window_title": "calc", "theme": {"mode_bar": "#112233"}}`)

	for _, path := range []string{"/c.toml", "/c.yaml", "/c.json"} {
		t.Run(path, func(t *testing.T) {
			l, err := ForPathWithFS(memfs, path)
			if err != nil {
				t.Fatalf("ForPath: %v", err)
			}
			m, err := l.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			bits, ok := Lookup(m, "bin_max_bits")
			if !ok {
				t.Fatal("bin_max_bits missing")
			}
			switch n := bits.(type) {
			case int64:
				if n != 32 {
					t.Errorf("bin_max_bits = %d", n)
				}
			case int:
				if n != 32 {
					t.Errorf("bin_max_bits = %d", n)
				}
			case float64:
				if n != 32 {
					t.Errorf("bin_max_bits = %v", n)
				}
			default:
				t.Errorf("bin_max_bits has type %T", bits)
			}

			if got, _ := Lookup(m, "theme.mode_bar"); got != "#112233" {
				t.Errorf("theme.mode_bar = %v", got)
			}
			if got, _ := Lookup(m, "window_title"); got != "calc" {
				t.Errorf("window_title = %v", got)
			}
		})
	}
}

func TestFileLoaderMissingFile(t *testing.T) {
	l, err := ForPathWithFS(NewMemFS(), "/missing.toml")
	if err != nil {
		t.Fatal(err)
	}
	m, err := l.Load()
	if err != nil || m != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", m, err)
	}
}

func TestFileLoaderParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "bin_max_bits = = 3")
	memfs.AddFile("/bad.json", `{"bin_max_bits": `)
	memfs.AddFile("/list.json", `[1, 2]`)

	for _, path := range []string{"/bad.toml", "/bad.json", "/list.json"} {
		l, _ := ForPathWithFS(memfs, path)
		_, err := l.Load()
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected ParseError, got %v", path, err)
			continue
		}
		if pe.Path != path {
			t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
		}
	}
}

func TestForPathUnsupported(t *testing.T) {
	_, err := ForPath("/etc/rpncalc.ini")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestEnvLoader(t *testing.T) {
	env := map[string]string{
		"RPNCALC_BIN_MAX_BITS":   "64",
		"RPNCALC_THEME_MODE_BAR": "#abcdef",
		"RPNCALC_UNRELATED":      "x",
	}
	l := NewEnvLoader("RPNCALC_", []string{"bin_max_bits", "sci_precision", "theme.mode_bar"})
	l.lookup = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"bin_max_bits": "64",
		"theme":        map[string]any{"mode_bar": "#abcdef"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("RPNCALC_", "theme.error"); got != "RPNCALC_THEME_ERROR" {
		t.Errorf("EnvName() = %q", got)
	}
}
