// Package version exposes build identification for the desktop host.
//
// Version, commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/seekjob/desktophost/version.Version=1.0.0"
//
// When ldflags are absent the values fall back to module build info.
package version
