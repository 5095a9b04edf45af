// Command seekjob-stub-backend is a stand-in for the real SeekJob backend.
// It honours the host's spawn contract (SEEKJOB_PORT, SEEKJOB_DATA_DIR) and
// serves GET /api/health, which makes it useful for host development and
// packaging smoke tests without a backend build.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/seekjob/desktophost/backendstub"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := backendstub.FromEnv()
	if cfg.Port == 0 {
		fmt.Fprintln(os.Stderr, "seekjob-stub-backend: SEEKJOB_PORT or PORT must be set")
		os.Exit(2)
	}
	if err := backendstub.Run(ctx, cfg); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "seekjob-stub-backend:", err)
		os.Exit(1)
	}
}
