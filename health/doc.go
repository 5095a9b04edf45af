// Package health polls the backend's readiness endpoint until it answers
// or a deadline expires.
package health
