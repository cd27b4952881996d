// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	RESP    RESPConfig    `koanf:"resp"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// RESPConfig configures the RESP protocol listener.
type RESPConfig struct {
	Addr string `koanf:"addr"`

	// ReadTimeout bounds how long a started request may take to
	// arrive in full.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds how long a reply flush may take.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// IdleTimeout bounds how long a connection may sit between
	// requests.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// RateLimit is the per-IP request budget in requests per second.
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// MetricsConfig configures the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StoreSection configures the key-value store.
type StoreSection struct {
	// Shards is the number of store shards. Must be a power of two;
	// zero or any other value falls back to the default.
	Shards int `koanf:"shards"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
