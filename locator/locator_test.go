package locator_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seekjob/desktophost/errors"
	"github.com/seekjob/desktophost/locator"
)

const binName = "seekjob-backend"

func staticDir(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestOverrideWinsOverBundledCandidates(t *testing.T) {
	resourceDir := t.TempDir()
	bundled := touch(t, filepath.Join(resourceDir, binName))
	override := touch(t, filepath.Join(t.TempDir(), "custom-backend"))

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		BinOverride: override,
		ResourceDir: staticDir(resourceDir),
	})

	cmd, err := loc.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != override {
		t.Fatalf("expected override %q to win over bundled %q, got %q", override, bundled, cmd.Program)
	}
	if len(cmd.Args) != 0 {
		t.Fatalf("override command should carry no args, got %v", cmd.Args)
	}
}

func TestMissingOverrideFallsThrough(t *testing.T) {
	resourceDir := t.TempDir()
	bundled := touch(t, filepath.Join(resourceDir, binName))

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		BinOverride: filepath.Join(t.TempDir(), "does-not-exist"),
		ResourceDir: staticDir(resourceDir),
	})

	cmd, err := loc.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != bundled {
		t.Fatalf("expected fallthrough to bundled %q, got %q", bundled, cmd.Program)
	}
}

func TestDevPairRequiresDevMode(t *testing.T) {
	interp := touch(t, filepath.Join(t.TempDir(), "python3"))
	script := touch(t, filepath.Join(t.TempDir(), "main.py"))
	resourceDir := t.TempDir()
	bundled := touch(t, filepath.Join(resourceDir, binName))

	cfg := locator.Config{
		BinaryName:     binName,
		DevInterpreter: interp,
		DevScript:      script,
		DevMode:        true,
		ResourceDir:    staticDir(resourceDir),
	}

	cmd, err := locator.New(cfg).Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != interp || len(cmd.Args) != 1 || cmd.Args[0] != script {
		t.Fatalf("expected interpreter+script command, got %+v", cmd)
	}

	cfg.DevMode = false
	cmd, err = locator.New(cfg).Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != bundled {
		t.Fatalf("dev pair must be ignored outside dev mode, got %q", cmd.Program)
	}
}

func TestDevPairRequiresBothPaths(t *testing.T) {
	interp := touch(t, filepath.Join(t.TempDir(), "python3"))
	resourceDir := t.TempDir()
	bundled := touch(t, filepath.Join(resourceDir, binName))

	loc := locator.New(locator.Config{
		BinaryName:     binName,
		DevInterpreter: interp,
		DevScript:      filepath.Join(t.TempDir(), "missing.py"),
		DevMode:        true,
		ResourceDir:    staticDir(resourceDir),
	})

	cmd, err := loc.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != bundled {
		t.Fatalf("expected fallthrough when the script is missing, got %q", cmd.Program)
	}
}

func TestFixedCandidatePriorityOrder(t *testing.T) {
	resourceDir := t.TempDir()
	distPath := touch(t, filepath.Join(resourceDir, "backend", "dist", binName))
	nestedPath := touch(t, filepath.Join(resourceDir, "backend", binName))

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		ResourceDir: staticDir(resourceDir),
	})

	cmd, err := loc.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != distPath {
		t.Fatalf("backend/dist must outrank backend/: expected %q, got %q (nested %q)", distPath, cmd.Program, nestedPath)
	}
}

func TestUpIndirectionCandidates(t *testing.T) {
	resourceDir := t.TempDir()
	upPath := touch(t, filepath.Join(resourceDir, "_up_", "backend", "dist", binName))

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		ResourceDir: staticDir(resourceDir),
	})

	cmd, err := loc.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != upPath {
		t.Fatalf("expected _up_ candidate %q, got %q", upPath, cmd.Program)
	}
}

func TestRecursiveSearchWithinDepthBound(t *testing.T) {
	resourceDir := t.TempDir()
	deep := touch(t, filepath.Join(resourceDir, "x1", "x2", "x3", binName))

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		ResourceDir: staticDir(resourceDir),
	})

	cmd, err := loc.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != deep {
		t.Fatalf("expected recursive find %q, got %q", deep, cmd.Program)
	}
}

func TestRecursiveSearchDepthBoundEnforced(t *testing.T) {
	resourceDir := t.TempDir()
	touch(t, filepath.Join(resourceDir, "d1", "d2", "d3", "d4", "d5", "d6", "d7", binName))

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		ResourceDir: staticDir(resourceDir),
	})

	_, err := loc.Resolve()
	if err == nil {
		t.Fatal("expected NotFound for a binary beyond the depth bound")
	}
	if errors.CodeOf(err) != errors.ErrCodeNotFound {
		t.Fatalf("expected %s, got %s", errors.ErrCodeNotFound, errors.CodeOf(err))
	}
}

func TestFilesCheckedBeforeSubdirectories(t *testing.T) {
	resourceDir := t.TempDir()
	// "aaa" sorts before the binary name, so a walk that descends eagerly
	// would find the nested copy first. Files must win at each level.
	nested := touch(t, filepath.Join(resourceDir, "sub", "aaa", binName))
	shallow := touch(t, filepath.Join(resourceDir, "sub", binName))

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		ResourceDir: staticDir(resourceDir),
	})
	cmd, err := loc.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Program != shallow {
		t.Fatalf("expected shallow file %q before descending, got %q (nested %q)", shallow, cmd.Program, nested)
	}
}

func TestNotFoundNamesResourceDir(t *testing.T) {
	resourceDir := t.TempDir()

	loc := locator.New(locator.Config{
		BinaryName:  binName,
		ResourceDir: staticDir(resourceDir),
	})

	_, err := loc.Resolve()
	if err == nil {
		t.Fatal("expected NotFound for an empty resource dir")
	}
	if !strings.Contains(err.Error(), resourceDir) {
		t.Fatalf("error should name the resource dir: %v", err)
	}
	if !strings.Contains(err.Error(), binName) {
		t.Fatalf("error should name the expected binary: %v", err)
	}
}
