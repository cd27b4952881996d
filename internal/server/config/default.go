// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultRESPAddr    = "127.0.0.1:6379"
	DefaultMetricsAddr = "127.0.0.1:9090"

	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 5 * time.Minute
	DefaultRateLimit    = 1000

	DefaultStoreShards = 16

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			RESP: RESPConfig{
				Addr:         DefaultRESPAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
				IdleTimeout:  DefaultIdleTimeout,
				RateLimit:    DefaultRateLimit,
			},
			Metrics: MetricsConfig{
				Enabled: false,
				Addr:    DefaultMetricsAddr,
			},
		},
		Store: StoreSection{
			Shards: DefaultStoreShards,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
