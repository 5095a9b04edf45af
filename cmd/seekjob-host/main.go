// Command seekjob-host supervises the SeekJob backend for a desktop
// installation: it reserves a loopback port, launches the bundled backend
// binary, waits for it to become healthy, and keeps it alive until the host
// receives SIGINT or SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/seekjob/desktophost/bootstrap"
	"github.com/seekjob/desktophost/config"
	"github.com/seekjob/desktophost/logger"
	"github.com/seekjob/desktophost/observability"
	"github.com/seekjob/desktophost/version"
)

// EnvResourceDir overrides where bundled resources are looked up. Defaults
// to the directory containing this executable.
const EnvResourceDir = "SEEKJOB_RESOURCE_DIR"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault().Fatal("invalid configuration", logger.ErrorFields("load_config", err))
	}
	logger.Init(cfg.Logging)
	log := logger.WithComponent("host")

	log.Info("seekjob desktop host starting", logger.Fields(
		"version", version.Get().String(),
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var telemetry *observability.Telemetry
	if cfg.Telemetry.Enabled {
		telemetry, err = observability.Init(ctx, observability.Config{
			ServiceName:    cfg.Name,
			ServiceVersion: version.Get().Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			Interval:       cfg.Telemetry.Interval,
		})
		if err != nil {
			log.Warn("telemetry disabled", logger.ErrorFields("init_telemetry", err))
		}
	}

	orch, err := bootstrap.New(cfg, bootstrap.HostFuncs{
		Resource: resourceDir,
		AppData:  appDataDir,
	})
	if err != nil {
		log.Fatal("cannot construct orchestrator", logger.ErrorFields("new_orchestrator", err))
	}

	// A failed start is not fatal: the host keeps running in a degraded
	// state so the error and log locations can be surfaced to the user.
	if err := orch.Start(ctx); err != nil {
		log.Error("backend unavailable, continuing degraded", logger.ErrorFields("start_backend", err))
	}
	log.Info("host ready", logger.Fields(
		"state", string(orch.State()),
		"api_base", orch.APIBase(),
		logger.FieldPath, orch.Paths().LogsDir,
	))

	<-ctx.Done()
	log.Info("shutdown signal received")

	orch.Stop()
	if telemetry != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown incomplete", logger.ErrorFields("shutdown_telemetry", err))
		}
	}
}

// resourceDir locates the directory holding bundled resources. Installers
// place the backend next to the host executable; developers point
// SEEKJOB_RESOURCE_DIR at a checkout.
func resourceDir() (string, error) {
	if dir := os.Getenv(EnvResourceDir); dir != "" {
		return dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// appDataDir resolves the per-user application data directory. UserConfigDir
// already follows platform conventions (Application Support on macOS, XDG on
// Linux, AppData on Windows).
func appDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "SeekJob"), nil
}
