// Package store provides the shared in-memory key-value store.
//
// The store is the only mutable state shared between connection
// goroutines. It shards the keyspace across independently locked maps
// to reduce contention; lock scope is limited to a single operation
// and never spans network I/O.
package store
