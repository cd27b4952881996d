// Package config provides server configuration for respkv.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (addresses, ranges)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files and environment variables.
package config
