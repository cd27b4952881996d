// Package main provides the entry point for respkv-server.
//
// The server is the core respkv service that provides:
//
//   - RESP protocol listener for key-value access
//   - Optional Prometheus metrics endpoint
//   - Live log level reload on config file changes
//
// Usage:
//
//	respkv-server [flags]
//	respkv-server --config /path/to/config.yaml
//
// The server loads configuration, initializes infrastructure
// components, and starts all configured listeners.
package main
