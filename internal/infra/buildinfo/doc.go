// Package buildinfo provides build information for respkv.
//
// This package exposes build-time information injected via ldflags:
//
//   - Version: Semantic version (e.g., "1.0.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//
// The Go compiler version is read from the runtime.
package buildinfo
