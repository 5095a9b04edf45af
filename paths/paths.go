package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seekjob/desktophost/errors"
)

// Log file names under <dataDir>/logs. The backend's stdio is redirected
// here so crashes are diagnosable after the host exits.
const (
	StdoutLogName = "backend.stdout.log"
	StderrLogName = "backend.stderr.log"
)

// ResolvedPaths holds the directories the backend's working environment and
// log redirection depend on. Computed once at startup and never mutated.
type ResolvedPaths struct {
	DataDir string
	LogsDir string
}

// Resolve determines the data directory: an explicit override wins,
// otherwise the host's application-data resolver is consulted.
func Resolve(override string, appDataDir func() (string, error)) (ResolvedPaths, error) {
	dataDir := strings.TrimSpace(override)
	if dataDir == "" {
		dir, err := appDataDir()
		if err != nil {
			return ResolvedPaths{}, errors.IO("resolve", "app data dir", err)
		}
		dataDir = dir
	}
	return ResolvedPaths{
		DataDir: dataDir,
		LogsDir: filepath.Join(dataDir, "logs"),
	}, nil
}

// Ensure creates the data and log directories. Both must exist before the
// child is spawned.
func (p ResolvedPaths) Ensure() error {
	if err := os.MkdirAll(p.DataDir, 0o755); err != nil {
		return errors.IO("create", p.DataDir, err)
	}
	if err := os.MkdirAll(p.LogsDir, 0o755); err != nil {
		return errors.IO("create", p.LogsDir, err)
	}
	return nil
}

// StdoutLog returns the path of the backend's stdout sink.
func (p ResolvedPaths) StdoutLog() string {
	return filepath.Join(p.LogsDir, StdoutLogName)
}

// StderrLog returns the path of the backend's stderr sink.
func (p ResolvedPaths) StderrLog() string {
	return filepath.Join(p.LogsDir, StderrLogName)
}

// DatabaseURL derives the backend's connection string from the database file
// inside the data directory.
func (p ResolvedPaths) DatabaseURL() string {
	return fmt.Sprintf("sqlite:///%s", filepath.Join(p.DataDir, "app.db"))
}

// ResolveLegacyDB returns the first existing legacy database path: the hint
// if it names an existing file, then the configured candidates in order.
// Returns "" when nothing resolves.
func ResolveLegacyDB(hint string, candidates []string) string {
	hint = strings.TrimSpace(hint)
	if hint != "" {
		if _, err := os.Stat(hint); err == nil {
			return hint
		}
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
