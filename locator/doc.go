// Package locator resolves the backend executable to launch.
//
// Resolution walks an ordered list of strategies and stops at the first
// match: an explicit binary override, a development interpreter+script pair,
// the fixed candidate paths common packaging layouts produce, and finally a
// bounded recursive search under the host's resource directory.
package locator
