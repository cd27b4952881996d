// Package shutdown provides graceful shutdown for respkv.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic shutdown via Trigger
//   - Timeout-based forced shutdown
//   - Cleanup callback registration
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return srv.Shutdown(ctx) })
//	return h.Wait()
package shutdown
