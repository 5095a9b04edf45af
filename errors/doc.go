// Package errors provides structured error handling for the desktop host.
// Every failure the bootstrap path can produce carries a machine-readable
// code so callers can distinguish a missing backend binary from a spawn
// failure or a readiness timeout without string matching.
package errors
