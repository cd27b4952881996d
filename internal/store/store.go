package store

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Store is a concurrent-safe sharded map from string keys to string
// values. Keys hash to shards with MurmurHash3; each shard carries its
// own RWMutex, so readers of one shard never wait on writers of
// another.
type Store struct {
	shards    []*shard
	shardMask uint32
}

type shard struct {
	mu    sync.RWMutex
	items map[string]string
}

// New creates a store with the default shard count.
func New() *Store {
	return NewWithShards(DefaultShardCount)
}

// NewWithShards creates a store with the given shard count.
// shardCount must be a power of 2; anything else falls back to the
// default.
func NewWithShards(shardCount int) *Store {
	if shardCount <= 0 || shardCount&(shardCount-1) != 0 {
		shardCount = DefaultShardCount
	}

	s := &Store{
		shards:    make([]*shard, shardCount),
		shardMask: uint32(shardCount - 1),
	}
	for i := range s.shards {
		s.shards[i] = &shard{items: make(map[string]string)}
	}
	return s
}

func (s *Store) getShard(key string) *shard {
	return s.shards[murmur3.Sum32([]byte(key))&s.shardMask]
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	sh := s.getShard(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	val, ok := sh.items[key]
	return val, ok
}

// Set inserts or overwrites the value under key.
func (s *Store) Set(key, value string) {
	sh := s.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.items[key] = value
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	sh := s.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	_, ok := sh.items[key]
	if ok {
		delete(sh.items, key)
	}
	return ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	sh := s.getShard(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	_, ok := sh.items[key]
	return ok
}

// Len returns the total number of stored keys. The count is taken
// shard by shard, so it is approximate while writers are active.
func (s *Store) Len() int {
	count := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		count += len(sh.items)
		sh.mu.RUnlock()
	}
	return count
}

// Clear removes all keys.
func (s *Store) Clear() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.items = make(map[string]string)
		sh.mu.Unlock()
	}
}
