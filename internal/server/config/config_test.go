// Package config defines the server configuration structure.
package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Check server defaults
	if cfg.Server.RESP.Addr != DefaultRESPAddr {
		t.Errorf("RESP.Addr = %q, want %q", cfg.Server.RESP.Addr, DefaultRESPAddr)
	}
	if cfg.Server.RESP.ReadTimeout != 30*time.Second {
		t.Errorf("RESP.ReadTimeout = %v, want %v", cfg.Server.RESP.ReadTimeout, 30*time.Second)
	}
	if cfg.Server.RESP.IdleTimeout != 5*time.Minute {
		t.Errorf("RESP.IdleTimeout = %v, want %v", cfg.Server.RESP.IdleTimeout, 5*time.Minute)
	}
	if cfg.Server.RESP.RateLimit != DefaultRateLimit {
		t.Errorf("RESP.RateLimit = %d, want %d", cfg.Server.RESP.RateLimit, DefaultRateLimit)
	}
	if cfg.Server.Metrics.Enabled {
		t.Error("Metrics should be disabled by default")
	}
	if cfg.Server.Metrics.Addr != DefaultMetricsAddr {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Server.Metrics.Addr, DefaultMetricsAddr)
	}

	// Check store defaults
	if cfg.Store.Shards != DefaultStoreShards {
		t.Errorf("Store.Shards = %d, want %d", cfg.Store.Shards, DefaultStoreShards)
	}

	// Check log defaults
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
}

func TestVerify_Defaults(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("Verify(Default()) error = %v, want nil", err)
	}
}

func TestVerify_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *ServerConfig)
	}{
		{"empty resp addr", func(cfg *ServerConfig) {
			cfg.Server.RESP.Addr = ""
		}},
		{"resp addr without port", func(cfg *ServerConfig) {
			cfg.Server.RESP.Addr = "127.0.0.1"
		}},
		{"negative read timeout", func(cfg *ServerConfig) {
			cfg.Server.RESP.ReadTimeout = -time.Second
		}},
		{"negative rate limit", func(cfg *ServerConfig) {
			cfg.Server.RESP.RateLimit = -1
		}},
		{"metrics enabled with bad addr", func(cfg *ServerConfig) {
			cfg.Server.Metrics.Enabled = true
			cfg.Server.Metrics.Addr = "nonsense"
		}},
		{"negative shards", func(cfg *ServerConfig) {
			cfg.Store.Shards = -1
		}},
		{"bad log level", func(cfg *ServerConfig) {
			cfg.Log.Level = "verbose"
		}},
		{"bad log format", func(cfg *ServerConfig) {
			cfg.Log.Format = "xml"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Verify(cfg); err == nil {
				t.Error("Verify() = nil, want error")
			}
		})
	}
}

func TestVerify_MetricsDisabledSkipsAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Metrics.Enabled = false
	cfg.Server.Metrics.Addr = "nonsense"

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v, want nil when metrics disabled", err)
	}
}
