package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/davrk/respkv/internal/client"
	"github.com/davrk/respkv/internal/command"
	"github.com/davrk/respkv/internal/resp"
	"github.com/davrk/respkv/internal/server/respserver"
	"github.com/davrk/respkv/internal/store"
)

func startServer(b *testing.B) string {
	b.Helper()

	cfg := &respserver.Config{
		Addr:         "127.0.0.1:0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  time.Minute,
	}
	srv := respserver.New(cfg, store.New(), nil, nil)
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("Start() error = %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// BenchmarkRoundTrip_Ping measures one full client round trip.
func BenchmarkRoundTrip_Ping(b *testing.B) {
	addr := startServer(b)

	c, err := client.Dial(addr)
	if err != nil {
		b.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Do("PING"); err != nil {
			b.Fatalf("Do(PING) error = %v", err)
		}
	}
}

// BenchmarkRoundTrip_SetGet alternates writes and reads over TCP.
func BenchmarkRoundTrip_SetGet(b *testing.B) {
	addr := startServer(b)

	c, err := client.Dial(addr)
	if err != nil {
		b.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("key-%d", i%1024)
		if _, err := c.Do("SET", key, "value"); err != nil {
			b.Fatalf("Do(SET) error = %v", err)
		}
		if _, err := c.Do("GET", key); err != nil {
			b.Fatalf("Do(GET) error = %v", err)
		}
	}
}

// BenchmarkDispatch measures command execution without the network.
func BenchmarkDispatch(b *testing.B) {
	st := store.New()
	st.Set("key", "value")

	req := resp.Array(resp.BulkString("GET"), resp.BulkString("key"))
	cmd, err := command.Parse(req)
	if err != nil {
		b.Fatalf("Parse() error = %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		respserver.Execute(cmd, st)
	}
}

// BenchmarkDecodeDispatchEncode measures the full request path from
// wire bytes to reply bytes.
func BenchmarkDecodeDispatchEncode(b *testing.B) {
	st := store.New()
	st.Set("key", "value")
	wire := []byte("*2\r\n$3\r\nGET\r\n$3\r\nkey\r\n")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, _, err := resp.Decode(wire)
		if err != nil {
			b.Fatalf("Decode() error = %v", err)
		}
		cmd, err := command.Parse(v)
		if err != nil {
			b.Fatalf("Parse() error = %v", err)
		}
		_ = respserver.Execute(cmd, st).Encode()
	}
}
