package supervisor

import (
	"fmt"
	"os"

	"github.com/seekjob/desktophost/paths"
)

// Environment variables the backend contract requires. The port is passed
// under two names because backend builds have disagreed on which one to read.
const (
	EnvPort        = "SEEKJOB_PORT"
	EnvPortAlias   = "PORT"
	EnvDataDir     = "SEEKJOB_DATA_DIR"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLegacyDB    = "SEEKJOB_LEGACY_DB_PATH"
)

// BuildEnv produces the child-specific environment entries. The legacy
// database path is always present, empty when nothing resolved.
func BuildEnv(port int, p paths.ResolvedPaths, legacyDBPath string) []string {
	return []string{
		fmt.Sprintf("%s=%d", EnvPort, port),
		fmt.Sprintf("%s=%d", EnvPortAlias, port),
		fmt.Sprintf("%s=%s", EnvDataDir, p.DataDir),
		fmt.Sprintf("%s=%s", EnvDatabaseURL, p.DatabaseURL()),
		fmt.Sprintf("%s=%s", EnvLegacyDB, legacyDBPath),
	}
}

// mergeEnv merges additional env vars onto the current environment. The
// child inherits everything the host has; extra entries win on conflict.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
