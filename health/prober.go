package health

import (
	"context"
	"net/http"
	"time"

	"github.com/seekjob/desktophost/logger"
)

// DefaultInterval is the delay between probe attempts.
const DefaultInterval = 300 * time.Millisecond

// Prober polls GET {baseURL}/health on a fixed interval.
type Prober struct {
	interval time.Duration
	client   *http.Client
	log      *logger.Logger

	// onAttempt, when set, observes every probe attempt. Used for telemetry.
	onAttempt func(ok bool)
}

// Option customizes a Prober.
type Option func(*Prober)

// WithInterval overrides the probe interval.
func WithInterval(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithClient overrides the HTTP client.
func WithClient(c *http.Client) Option {
	return func(p *Prober) { p.client = c }
}

// WithAttemptObserver registers a callback invoked after every attempt.
func WithAttemptObserver(fn func(ok bool)) Option {
	return func(p *Prober) { p.onAttempt = fn }
}

// New creates a Prober. Each attempt is capped at the probe interval so a
// hanging endpoint cannot stretch the loop past its deadline.
func New(opts ...Option) *Prober {
	p := &Prober{
		interval: DefaultInterval,
		log:      logger.WithComponent("health"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: p.interval}
	}
	return p
}

// WaitUntilHealthy blocks until GET {baseURL}/health returns HTTP 200, the
// cumulative elapsed time reaches timeout, or ctx is canceled. It returns
// true only on a 200. Network errors and non-200 responses both mean "not
// yet ready" and never abort the loop early.
func (p *Prober) WaitUntilHealthy(ctx context.Context, baseURL string, timeout time.Duration) bool {
	url := baseURL + "/health"
	var elapsed time.Duration

	for elapsed < timeout {
		ok := p.probe(ctx, url)
		if p.onAttempt != nil {
			p.onAttempt(ok)
		}
		if ok {
			p.log.Debug("backend healthy", logger.Fields("url", url, "waited", elapsed.String()))
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(p.interval):
		}
		elapsed += p.interval
	}

	p.log.Warn("backend never became healthy", logger.Fields("url", url, "waited", elapsed.String()))
	return false
}

func (p *Prober) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
