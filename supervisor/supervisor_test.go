package supervisor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seekjob/desktophost/errors"
	"github.com/seekjob/desktophost/locator"
	"github.com/seekjob/desktophost/paths"
	"github.com/seekjob/desktophost/supervisor"
)

func sinkPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "out.log"), filepath.Join(dir, "err.log")
}

func waitExit(t *testing.T, h *supervisor.Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child did not exit in time")
	}
}

func TestSpawnRedirectsOutput(t *testing.T) {
	out, errPath := sinkPaths(t)

	h, err := supervisor.Spawn(locator.Command{
		Program: "sh",
		Args:    []string{"-c", "echo to-stdout; echo to-stderr >&2"},
	}, nil, out, errPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitExit(t, h)

	stdout, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read stdout sink: %v", err)
	}
	if !strings.Contains(string(stdout), "to-stdout") {
		t.Fatalf("stdout sink missing output: %q", stdout)
	}
	stderr, err := os.ReadFile(errPath)
	if err != nil {
		t.Fatalf("read stderr sink: %v", err)
	}
	if !strings.Contains(string(stderr), "to-stderr") {
		t.Fatalf("stderr sink missing output: %q", stderr)
	}
}

func TestSpawnAppendsToExistingSink(t *testing.T) {
	out, errPath := sinkPaths(t)
	if err := os.WriteFile(out, []byte("previous-run\n"), 0o644); err != nil {
		t.Fatalf("seed sink: %v", err)
	}

	h, err := supervisor.Spawn(locator.Command{
		Program: "sh",
		Args:    []string{"-c", "echo second-run"},
	}, nil, out, errPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitExit(t, h)

	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "previous-run") || !strings.Contains(string(data), "second-run") {
		t.Fatalf("sink should be appended, not truncated: %q", data)
	}
}

func TestSpawnMergesEnv(t *testing.T) {
	out, errPath := sinkPaths(t)
	t.Setenv("SUPERVISOR_TEST_INHERITED", "from-parent")

	h, err := supervisor.Spawn(locator.Command{
		Program: "sh",
		Args:    []string{"-c", "echo $SUPERVISOR_TEST_INHERITED $SUPERVISOR_TEST_EXTRA"},
	}, []string{"SUPERVISOR_TEST_EXTRA=from-spawn"}, out, errPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitExit(t, h)

	data, _ := os.ReadFile(out)
	got := strings.TrimSpace(string(data))
	if got != "from-parent from-spawn" {
		t.Fatalf("expected merged environment, got %q", got)
	}
}

func TestSpawnMissingExecutable(t *testing.T) {
	out, errPath := sinkPaths(t)

	_, err := supervisor.Spawn(locator.Command{
		Program: filepath.Join(t.TempDir(), "no-such-binary"),
	}, nil, out, errPath)
	if err == nil {
		t.Fatal("expected spawn error for a missing executable")
	}
	if errors.CodeOf(err) != errors.ErrCodeSpawn {
		t.Fatalf("expected %s, got %s", errors.ErrCodeSpawn, errors.CodeOf(err))
	}
}

func TestSpawnUnwritableSink(t *testing.T) {
	dir := t.TempDir()
	_, err := supervisor.Spawn(locator.Command{Program: "sh"}, nil,
		filepath.Join(dir, "missing-subdir", "out.log"),
		filepath.Join(dir, "err.log"))
	if err == nil {
		t.Fatal("expected IO error for an uncreatable sink")
	}
	if errors.CodeOf(err) != errors.ErrCodeIO {
		t.Fatalf("expected %s, got %s", errors.ErrCodeIO, errors.CodeOf(err))
	}
}

func TestKillIfPresentIsIdempotent(t *testing.T) {
	out, errPath := sinkPaths(t)

	h, err := supervisor.Spawn(locator.Command{
		Program: "sleep",
		Args:    []string{"60"},
	}, nil, out, errPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h.KillIfPresent()
	// Second call must not panic or error after the reference is cleared.
	h.KillIfPresent()

	waitExit(t, h)
	if h.Running() {
		t.Fatal("child should be reported as exited")
	}
	h.KillIfPresent() // still a no-op after exit
}

func TestBuildEnv(t *testing.T) {
	p, _ := paths.Resolve("/data/seekjob", nil)
	env := supervisor.BuildEnv(8731, p, "")

	want := map[string]string{
		supervisor.EnvPort:        "8731",
		supervisor.EnvPortAlias:   "8731",
		supervisor.EnvDataDir:     "/data/seekjob",
		supervisor.EnvDatabaseURL: p.DatabaseURL(),
		supervisor.EnvLegacyDB:    "",
	}
	got := make(map[string]string, len(env))
	for _, kv := range env {
		parts := strings.SplitN(kv, "=", 2)
		got[parts[0]] = parts[1]
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("env %s: expected %q, got %q", k, v, got[k])
		}
	}
	if len(env) != len(want) {
		t.Fatalf("unexpected extra env entries: %v", env)
	}
}
