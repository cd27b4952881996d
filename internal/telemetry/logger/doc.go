// Package logger provides structured logging for respkv.
//
// It wraps log/slog with a small interface, JSON or text output, and a
// global level that can be adjusted at runtime (configuration reload
// changes the level without restarting the server).
package logger
