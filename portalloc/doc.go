// Package portalloc reserves ephemeral loopback ports for the supervised
// backend process.
package portalloc
