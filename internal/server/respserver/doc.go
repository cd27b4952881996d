// Package respserver implements the RESP2 protocol server for respkv.
//
// One goroutine serves one connection end to end: it frames requests
// out of the byte stream, dispatches them against the shared store and
// writes the encoded replies back, preserving per-connection request
// order across pipelined commands. Framing errors close only the
// offending connection; command errors travel back as RESP Error
// values and leave the connection open.
package respserver
