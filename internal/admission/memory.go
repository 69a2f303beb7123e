package admission

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const defaultShards = 32

// MemoryStore keeps event logs in process memory.
//
// Logs are created lazily and never removed, so the number of keys grows
// with the number of distinct subjects seen since start.
type MemoryStore struct {
	shards []*memoryShard
}

type memoryShard struct {
	mu   sync.RWMutex
	logs map[string]*eventLog
}

type eventLog struct {
	mu     sync.Mutex
	events []time.Time
}

type MemoryOption func(*MemoryStore)

// WithShards sets the number of map shards.
func WithShards(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.shards = newShards(n)
		}
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{shards: newShards(defaultShards)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newShards(n int) []*memoryShard {
	shards := make([]*memoryShard, n)
	for i := range shards {
		shards[i] = &memoryShard{logs: make(map[string]*eventLog)}
	}
	return shards
}

// Record implements Store.
func (s *MemoryStore) Record(_ context.Context, key string, now time.Time) (int, error) {
	if key == "" {
		return 0, ErrEmptyKey
	}

	log := s.logFor(key)

	log.mu.Lock()
	defer log.mu.Unlock()

	var count int
	log.events, count = recordEvent(log.events, now)
	return count, nil
}

// Usage implements Store.
func (s *MemoryStore) Usage(_ context.Context) (Usage, error) {
	var u Usage
	for _, sh := range s.shards {
		sh.mu.RLock()
		u.Keys += len(sh.logs)
		for _, log := range sh.logs {
			log.mu.Lock()
			u.Events += len(log.events)
			log.mu.Unlock()
		}
		sh.mu.RUnlock()
	}
	return u, nil
}

func (s *MemoryStore) logFor(key string) *eventLog {
	sh := s.shards[shardIndex(key, len(s.shards))]

	sh.mu.RLock()
	log, ok := sh.logs[key]
	sh.mu.RUnlock()
	if ok {
		return log
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if log, ok = sh.logs[key]; ok {
		return log
	}
	log = &eventLog{}
	sh.logs[key] = log
	return log
}

func shardIndex(key string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
