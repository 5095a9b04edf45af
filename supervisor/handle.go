package supervisor

import (
	"os"
	"sync"
)

// Handle is the exclusive owner of the spawned process reference. At most
// one live OS process reference exists per Handle; after the first kill the
// reference is cleared and further kills are no-ops.
type Handle struct {
	mu   sync.Mutex
	proc *os.Process

	pid  int
	id   string
	done chan struct{}
}

// ID returns the instance id assigned at spawn, used for log correlation.
func (h *Handle) ID() string { return h.id }

// Pid returns the OS process id the child was spawned with.
func (h *Handle) Pid() int { return h.pid }

// KillIfPresent terminates the child if the reference is still held.
// Best-effort: kill errors (already exited, already killed) are swallowed.
// Safe to call multiple times and from any goroutine.
func (h *Handle) KillIfPresent() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.proc == nil {
		return
	}
	_ = h.proc.Kill()
	h.proc = nil
}

// Done is closed once the child has exited and been reaped.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Running reports whether the child has not yet exited.
func (h *Handle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}
