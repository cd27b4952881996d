// Package command provides CLI command definitions for respkv.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command and global flags
//   - kv.go: Key-value subcommands and the REPL entry point
//
// Commands follow a consistent pattern of parsing flags, sending one
// request over the RESP client, and formatting the reply.
package command
