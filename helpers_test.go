package figcon

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type tierDirs struct {
	defaults  string
	secondary string
	primary   string
}

// newTiers copies the layered fixtures into a temp tree: the secondary file
// is hidden to exercise the dot-prefixed fallback.
func newTiers(t *testing.T) tierDirs {
	t.Helper()
	root := t.TempDir()
	dirs := tierDirs{
		defaults:  filepath.Join("testdata", "defaults"),
		secondary: filepath.Join(root, "home"),
		primary:   root,
	}
	if err := os.MkdirAll(dirs.secondary, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	copyFixture(t, filepath.Join("testdata", "layers", "config1.yaml"), filepath.Join(dirs.primary, "config.yaml"))
	copyFixture(t, filepath.Join("testdata", "layers", "config2.yaml"), filepath.Join(dirs.secondary, ".config.yaml"))
	return dirs
}

func (d tierDirs) open(t *testing.T, opts ...Option) *Figcon {
	t.Helper()
	opts = append([]Option{
		WithSecondaryLocation(d.secondary),
		WithPrimaryLocation(d.primary),
	}, opts...)
	fc, err := New(d.defaults, opts...)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return fc
}

func copyFixture(t *testing.T, src, dst string) {
	t.Helper()
	raw, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read fixture %s: %v", src, err)
	}
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", dst, err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// mustLookup resolves path and renders the exported value with fmt.Sprint so
// int and int64 compare alike.
func mustLookup(t *testing.T, fc *Figcon, path string) string {
	t.Helper()
	value, err := fc.Lookup(path)
	if err != nil {
		t.Fatalf("lookup %s: %v", path, err)
	}
	return fmt.Sprint(Export(value))
}

type fakeProgramCache struct {
	store  map[string]any
	hits   int
	misses int
}

func (c *fakeProgramCache) Get(key string) (any, bool) {
	if c.store == nil {
		c.store = make(map[string]any)
	}
	value, ok := c.store[key]
	if ok {
		c.hits++
		return value, true
	}
	c.misses++
	return nil, false
}

func (c *fakeProgramCache) Set(key string, value any) {
	if c.store == nil {
		c.store = make(map[string]any)
	}
	c.store[key] = value
}

type recordingLogger struct {
	loads      []LoadEvent
	activities []ActivityLogEvent
}

func (l *recordingLogger) LogLoad(event LoadEvent) {
	l.loads = append(l.loads, event)
}

func (l *recordingLogger) LogActivity(event ActivityLogEvent) {
	l.activities = append(l.activities, event)
}
