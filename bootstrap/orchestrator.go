package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/seekjob/desktophost/config"
	"github.com/seekjob/desktophost/errors"
	"github.com/seekjob/desktophost/health"
	"github.com/seekjob/desktophost/locator"
	"github.com/seekjob/desktophost/logger"
	"github.com/seekjob/desktophost/observability"
	"github.com/seekjob/desktophost/paths"
	"github.com/seekjob/desktophost/portalloc"
	"github.com/seekjob/desktophost/supervisor"
)

// State is the orchestrator lifecycle state.
type State string

const (
	StateNotStarted State = "not_started"
	StateStarting   State = "starting"
	StateReady      State = "ready"
	StateFailed     State = "failed"
	StateStopped    State = "stopped"
)

// DegradedAPIBase is the placeholder, deliberately unreachable API base the
// orchestrator exposes after a failed start.
const DegradedAPIBase = "http://127.0.0.1:0/api"

const tracerName = "github.com/seekjob/desktophost/bootstrap"

// Orchestrator supervises exactly one backend child for the lifetime of the
// host. Create one with New, call Start once during host setup and Stop once
// at host shutdown. Stop is safe from a different goroutine than Start.
type Orchestrator struct {
	cfg     *config.Settings
	host    Host
	log     *logger.Logger
	metrics *observability.BootstrapMetrics

	resolver commandResolver
	reserve  portReserver
	spawn    spawner
	prober   readinessProber

	mu       sync.Mutex
	state    State
	apiBase  string
	resolved paths.ResolvedPaths
	handle   *supervisor.Handle
}

// New creates an Orchestrator. The host capabilities are required; a nil
// host is a programming error, not a recoverable condition.
func New(cfg *config.Settings, host Host, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if host == nil {
		return nil, fmt.Errorf("bootstrap: host capabilities are required")
	}

	o := &Orchestrator{
		cfg:     cfg,
		host:    host,
		log:     logger.WithComponent("bootstrap"),
		state:   StateNotStarted,
		apiBase: DegradedAPIBase,
		reserve: portalloc.Reserve,
		spawn:   supervisor.Spawn,
	}

	metrics, err := observability.NewBootstrapMetrics()
	if err != nil {
		o.log.Warn("bootstrap metrics unavailable", logger.ErrorFields("init_metrics", err))
	} else {
		o.metrics = metrics
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.resolver == nil {
		o.resolver = locator.New(locator.Config{
			BinaryName:     cfg.Backend.BinaryName,
			BinOverride:    cfg.Backend.BinOverride,
			DevInterpreter: cfg.Backend.DevInterpreter,
			DevScript:      cfg.Backend.DevScript,
			DevMode:        cfg.DevMode(),
			ResourceDir:    host.ResourceDir,
		})
	}
	if o.prober == nil {
		proberOpts := []health.Option{health.WithInterval(cfg.Backend.ProbeInterval)}
		if o.metrics != nil {
			m := o.metrics
			proberOpts = append(proberOpts, health.WithAttemptObserver(func(ok bool) {
				m.RecordProbe(context.Background(), ok)
			}))
		}
		o.prober = health.New(proberOpts...)
	}

	return o, nil
}

// Start resolves directories, reserves a port, locates and spawns the
// backend, and blocks until the health probe succeeds or the ready ceiling
// expires. On failure the child (if any) is killed and the orchestrator is
// left in a degraded state; the error is returned for the host to surface.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateNotStarted {
		state := o.state
		o.mu.Unlock()
		return errors.New(errors.ErrCodeInternal, fmt.Sprintf("start called in state %s", state))
	}
	o.state = StateStarting
	o.mu.Unlock()

	began := time.Now()
	ctx, span := observability.Tracer(tracerName).Start(ctx, "bootstrap.start")
	defer span.End()

	err := o.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(errors.CodeOf(err)))
		o.recordStart(ctx, string(errors.CodeOf(err)), time.Since(began))
		return err
	}

	o.recordStart(ctx, "ready", time.Since(began))
	return nil
}

// run performs the startup sequence. Any error degrades the orchestrator
// before returning.
func (o *Orchestrator) run(ctx context.Context) error {
	resolved, err := paths.Resolve(o.cfg.Backend.DataDirOverride, o.host.AppDataDir)
	if err != nil {
		return o.degrade(err)
	}
	if err := resolved.Ensure(); err != nil {
		return o.degrade(err)
	}

	port, err := o.reserve()
	if err != nil {
		return o.degrade(err)
	}
	apiBase := fmt.Sprintf("http://127.0.0.1:%d/api", port)

	cmd, err := o.resolver.Resolve()
	if err != nil {
		return o.degrade(err)
	}

	legacyDB := paths.ResolveLegacyDB(o.cfg.Backend.LegacyDBPath, o.cfg.Backend.LegacyDBCandidates)
	env := supervisor.BuildEnv(port, resolved, legacyDB)

	handle, err := o.spawn(cmd, env, resolved.StdoutLog(), resolved.StderrLog())
	if err != nil {
		return o.degrade(err)
	}

	o.mu.Lock()
	o.handle = handle
	o.resolved = resolved
	o.mu.Unlock()

	o.log.Info("waiting for backend readiness", logger.Fields(
		logger.FieldPort, port,
		"api_base", apiBase,
		"timeout", o.cfg.Backend.ReadyTimeout.String(),
	))

	if !o.prober.WaitUntilHealthy(ctx, apiBase, o.cfg.Backend.ReadyTimeout) {
		handle.KillIfPresent()
		return o.degrade(errors.ReadinessTimeout(apiBase, o.cfg.Backend.ReadyTimeout))
	}

	o.mu.Lock()
	o.state = StateReady
	o.apiBase = apiBase
	o.mu.Unlock()

	o.log.Info("backend ready", logger.Fields(
		"api_base", apiBase,
		logger.FieldPid, handle.Pid(),
		logger.FieldInstance, handle.ID(),
	))
	return nil
}

// degrade records the failure and leaves the host in a usable state: a
// placeholder API base and, best effort, an existing logs directory so the
// UI can still display paths and errors.
func (o *Orchestrator) degrade(err error) error {
	o.log.Error("backend bootstrap failed", logger.ErrorFields("start", err))

	resolved, rerr := paths.Resolve(o.cfg.Backend.DataDirOverride, o.host.AppDataDir)
	if rerr != nil {
		resolved, _ = paths.Resolve(".", nil)
	}
	if eerr := resolved.Ensure(); eerr != nil {
		o.log.Warn("cannot prepare degraded directories", logger.ErrorFields("ensure", eerr))
	}

	o.mu.Lock()
	o.state = StateFailed
	o.apiBase = DegradedAPIBase
	o.resolved = resolved
	o.mu.Unlock()

	return err
}

// Stop terminates the supervised child. Idempotent; kill errors are
// swallowed. Intended to be invoked exactly once, from the host's shutdown
// callback.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.handle != nil {
		o.handle.KillIfPresent()
	}
	if o.state != StateStopped {
		o.log.Info("backend stopped", logger.Fields("previous_state", string(o.state)))
	}
	o.state = StateStopped
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// APIBase returns the backend API base URL, or the degraded placeholder
// when no backend is reachable.
func (o *Orchestrator) APIBase() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.apiBase
}

// Paths returns the resolved data and log directories.
func (o *Orchestrator) Paths() paths.ResolvedPaths {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resolved
}

// BackendRunning reports whether a supervised child exists and has not
// exited.
func (o *Orchestrator) BackendRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.handle != nil && o.handle.Running()
}

func (o *Orchestrator) recordStart(ctx context.Context, outcome string, d time.Duration) {
	if o.metrics != nil {
		o.metrics.RecordStart(ctx, outcome, d)
	}
}
