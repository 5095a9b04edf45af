// Package bootstrap composes the port allocator, backend locator, process
// supervisor, and health prober into a single start/stop lifecycle for the
// desktop host.
//
// Start blocks until the backend answers its health endpoint or the ready
// ceiling expires. A failed start leaves the orchestrator in a degraded
// state (placeholder API base, no live child) so the host application can
// keep running and surface the error instead of refusing to launch.
package bootstrap
