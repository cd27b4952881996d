// Package config defines the server configuration structure.
package config

import (
	"errors"
	"net"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.RESP.Addr == "" {
		return errors.New("server.resp.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.RESP.Addr); err != nil {
		return errors.New("server.resp.addr is not a host:port address: " + err.Error())
	}
	if cfg.RESP.ReadTimeout < 0 || cfg.RESP.WriteTimeout < 0 || cfg.RESP.IdleTimeout < 0 {
		return errors.New("server.resp timeouts must not be negative")
	}
	if cfg.RESP.RateLimit < 0 {
		return errors.New("server.resp.rate_limit must not be negative")
	}
	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
			return errors.New("server.metrics.addr is not a host:port address: " + err.Error())
		}
	}
	return nil
}

func verifyStore(cfg *StoreSection) error {
	if cfg.Shards < 0 {
		return errors.New("store.shards must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of debug, info, warn, error")
	}
	switch cfg.Format {
	case "", "json", "text":
	default:
		return errors.New("log.format must be json or text")
	}
	return nil
}
