// Package main provides the entry point for respkv-cli.
//
// The CLI talks to a respkv server over the RESP protocol:
//
//   - ping, get, set, del, exists: single-command mode
//   - repl: interactive mode with history
//
// Usage:
//
//	respkv-cli --server 127.0.0.1:6379 set greeting hello
//	respkv-cli repl
package main
