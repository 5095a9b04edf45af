// Package supervisor spawns and terminates the single backend child process.
//
// The child runs for the lifetime of the host. Its stdio is redirected to
// append-mode log files, its environment is merged onto the host's, and the
// live process reference is held behind a mutex so the shutdown path can
// reach it from a different goroutine than the one that spawned it.
package supervisor
