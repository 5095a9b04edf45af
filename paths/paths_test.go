package paths_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seekjob/desktophost/paths"
)

func TestResolveOverrideWins(t *testing.T) {
	p, err := paths.Resolve("/tmp/override", func() (string, error) {
		t.Fatal("app data resolver should not be consulted when an override is set")
		return "", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DataDir != "/tmp/override" {
		t.Fatalf("expected override data dir, got %q", p.DataDir)
	}
	if p.LogsDir != filepath.Join("/tmp/override", "logs") {
		t.Fatalf("unexpected logs dir %q", p.LogsDir)
	}
}

func TestResolveFallsBackToHost(t *testing.T) {
	p, err := paths.Resolve("  ", func() (string, error) {
		return "/var/data/seekjob", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DataDir != "/var/data/seekjob" {
		t.Fatalf("expected host-resolved data dir, got %q", p.DataDir)
	}
}

func TestResolvePropagatesHostError(t *testing.T) {
	_, err := paths.Resolve("", func() (string, error) {
		return "", errors.New("no app data dir")
	})
	if err == nil {
		t.Fatal("expected error from host resolver")
	}
}

func TestEnsureCreatesDirectories(t *testing.T) {
	base := t.TempDir()
	p, err := paths.Resolve(filepath.Join(base, "data"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Ensure(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(p.LogsDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("logs dir was not created: %v", err)
	}
}

func TestDatabaseURLFormat(t *testing.T) {
	p, _ := paths.Resolve("/home/u/.seekjob", nil)
	url := p.DatabaseURL()
	want := "sqlite:///" + filepath.Join("/home/u/.seekjob", "app.db")
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}
	if !strings.HasPrefix(url, "sqlite:///") {
		t.Fatalf("database URL must use the sqlite:/// scheme: %q", url)
	}
}

func TestResolveLegacyDB(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.db")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := paths.ResolveLegacyDB(existing, nil); got != existing {
		t.Fatalf("expected hint %q, got %q", existing, got)
	}
	if got := paths.ResolveLegacyDB(filepath.Join(dir, "missing.db"), []string{existing}); got != existing {
		t.Fatalf("expected candidate fallback %q, got %q", existing, got)
	}
	if got := paths.ResolveLegacyDB("", nil); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
