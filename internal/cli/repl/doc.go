// Package repl provides interactive mode for respkv-cli.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop and command dispatch
//   - history.go: Command history persistence
//
// Lines are split on whitespace with double-quote support, sent to
// the server verbatim, and the reply is printed in redis-cli style.
package repl
