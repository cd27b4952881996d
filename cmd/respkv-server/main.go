// Package main provides the entry point for respkv-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/davrk/respkv/internal/infra/buildinfo"
	"github.com/davrk/respkv/internal/infra/confloader"
	"github.com/davrk/respkv/internal/infra/shutdown"
	"github.com/davrk/respkv/internal/server/config"
	"github.com/davrk/respkv/internal/server/respserver"
	"github.com/davrk/respkv/internal/store"
	"github.com/davrk/respkv/internal/telemetry/logger"
	"github.com/davrk/respkv/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("respkv-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	logger.SetDefault(log)
	slogLogger := logger.Slog(log)

	log.Info("starting respkv-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	st := store.NewWithShards(cfg.Store.Shards)

	var metrics *metric.Metrics
	var metricsSrv *http.Server
	if cfg.Server.Metrics.Enabled {
		metrics = metric.New(st.Len)
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{
			Addr:    cfg.Server.Metrics.Addr,
			Handler: mux,
		}
	}

	respSrv := respserver.New(&respserver.Config{
		Addr:         cfg.Server.RESP.Addr,
		ReadTimeout:  cfg.Server.RESP.ReadTimeout,
		WriteTimeout: cfg.Server.RESP.WriteTimeout,
		IdleTimeout:  cfg.Server.RESP.IdleTimeout,
		RateLimit:    cfg.Server.RESP.RateLimit,
	}, st, slogLogger, metrics)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	ctx := context.Background()
	if err := respSrv.Start(ctx); err != nil {
		return fmt.Errorf("start resp server: %w", err)
	}
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down resp server")
		return respSrv.Shutdown(ctx)
	})

	if metricsSrv != nil {
		go func() {
			log.Info("metrics server listening", "addr", metricsSrv.Addr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", "error", err)
			}
		}()
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down metrics server")
			return metricsSrv.Shutdown(ctx)
		})
	}

	// Reload the log level on config file edits.
	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// startConfigWatcher watches the config file and applies log level
// changes without a restart.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(log)))
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			log.Info("log level changed", "level", cfg.Log.Level)
			logger.SetLevel(cfg.Log.Level)
		}
	})

	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}
	watcher.StartAsync()
	return watcher, nil
}
