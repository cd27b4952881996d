// Package resp implements the RESP2 wire format used by respkv.
//
// It provides a tagged Value type covering the five RESP2 shapes
// (simple string, error, integer, bulk string, array) and a bit-exact
// codec between Values and raw bytes. Decode consumes exactly one value
// from a buffer and hands back the remainder, which is what makes
// pipelined requests in a single read decode correctly one at a time.
package resp
