package bootstrap

import (
	"context"
	"time"

	"github.com/seekjob/desktophost/locator"
	"github.com/seekjob/desktophost/logger"
	"github.com/seekjob/desktophost/supervisor"
)

// commandResolver resolves the backend command. Satisfied by
// *locator.Locator and by test fakes.
type commandResolver interface {
	Resolve() (locator.Command, error)
}

// readinessProber blocks until the backend is healthy or the timeout
// expires. Satisfied by *health.Prober and by test fakes.
type readinessProber interface {
	WaitUntilHealthy(ctx context.Context, baseURL string, timeout time.Duration) bool
}

// portReserver reserves an ephemeral loopback port.
type portReserver func() (int, error)

// spawner launches the backend command.
type spawner func(cmd locator.Command, env []string, stdoutPath, stderrPath string) (*supervisor.Handle, error)

// Option configures the Orchestrator during creation. The With* options
// exist so the lifecycle is testable with fakes for each collaborator.
type Option func(*Orchestrator)

// WithResolver replaces the backend locator.
func WithResolver(r commandResolver) Option {
	return func(o *Orchestrator) { o.resolver = r }
}

// WithProber replaces the readiness prober.
func WithProber(p readinessProber) Option {
	return func(o *Orchestrator) { o.prober = p }
}

// WithPortReserver replaces the port allocator.
func WithPortReserver(r portReserver) Option {
	return func(o *Orchestrator) { o.reserve = r }
}

// WithSpawner replaces the process spawner.
func WithSpawner(s spawner) Option {
	return func(o *Orchestrator) { o.spawn = s }
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}
