// Package paths resolves and prepares the on-disk layout the backend
// process depends on: the application data directory, the log directory,
// and the derived database location.
package paths
