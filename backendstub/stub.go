package backendstub

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Environment variables the stub honours on top of the backend contract.
const (
	EnvStartupDelay = "SEEKJOB_STUB_STARTUP_DELAY"
	EnvUnready      = "SEEKJOB_STUB_UNREADY"
)

// Config controls the stub's behavior.
type Config struct {
	// Port to listen on. Zero means "read the contract env vars".
	Port int
	// StartupDelay postpones binding the listener, simulating a slow boot.
	StartupDelay time.Duration
	// Unready makes the stub hold its port contract but never serve,
	// simulating a backend that hangs during initialization.
	Unready bool
	// DataDir is reported in the health payload when set.
	DataDir string
}

// FromEnv builds a Config from the backend-contract environment variables.
func FromEnv() Config {
	cfg := Config{
		DataDir: os.Getenv("SEEKJOB_DATA_DIR"),
	}
	if v := os.Getenv("SEEKJOB_PORT"); v != "" {
		cfg.Port, _ = strconv.Atoi(v)
	}
	if cfg.Port == 0 {
		if v := os.Getenv("PORT"); v != "" {
			cfg.Port, _ = strconv.Atoi(v)
		}
	}
	if v := os.Getenv(EnvStartupDelay); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.StartupDelay = d
		}
	}
	cfg.Unready = os.Getenv(EnvUnready) == "1"
	return cfg
}

// Run serves the stub until ctx is canceled. It writes a startup line to
// stdout first so the host's log redirection is observable.
func Run(ctx context.Context, cfg Config) error {
	fmt.Printf("seekjob stub backend starting on port %d\n", cfg.Port)

	if cfg.Unready {
		// Never bind, never answer. The host's readiness probe must give up.
		<-ctx.Done()
		return ctx.Err()
	}

	if cfg.StartupDelay > 0 {
		select {
		case <-time.After(cfg.StartupDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"data_dir": cfg.DataDir,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
