package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheClearCommand(t *testing.T) {
	// A cache path with printf verbs must survive the status output intact.
	cacheHome := filepath.Join(t.TempDir(), "100%susage")
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	dir := filepath.Join(cacheHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "layout"), []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache directory should be removed, stat err = %v", err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCacheUsage(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		entries, size, err := cacheUsage(filepath.Join(t.TempDir(), "nope"))
		if err != nil {
			t.Fatalf("cacheUsage() error: %v", err)
		}
		if entries != 0 || size != 0 {
			t.Errorf("cacheUsage() = %d entries, %d bytes, want 0, 0", entries, size)
		}
	})

	t.Run("counts files and bytes", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "a"), []byte("12345"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "sub", "b"), []byte("123"), 0o644); err != nil {
			t.Fatal(err)
		}

		entries, size, err := cacheUsage(dir)
		if err != nil {
			t.Fatalf("cacheUsage() error: %v", err)
		}
		if entries != 2 {
			t.Errorf("entries = %d, want 2", entries)
		}
		if size != 8 {
			t.Errorf("size = %d, want 8", size)
		}
	})
}
