// Package observability provides optional OpenTelemetry export of host
// telemetry: how long bootstrap took, how many health probes ran, and how
// starts ended. Disabled by default; the host works fully without a
// collector.
package observability
