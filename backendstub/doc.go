// Package backendstub implements the backend process contract with a stub
// HTTP service: it reads the documented environment variables, optionally
// delays startup, and serves GET /api/health. Used for development of the
// host without a packaged backend and by the end-to-end bootstrap tests.
package backendstub
