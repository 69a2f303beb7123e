package admission

import (
	"context"
	"sync"
	"time"
)

// MemoryStatsStore counts decisions in process memory. Nothing expires.
type MemoryStatsStore struct {
	mu      sync.Mutex
	total   Counters
	byDay   map[string]Counters
	byRoute map[string]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		byDay:   make(map[string]Counters),
		byRoute: make(map[string]Counters),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev StatsEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	day := dayKey(at)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Allowed)

	c := s.byDay[day]
	c.add(ev.Allowed)
	s.byDay[day] = c

	if ev.Route != "" {
		r := s.byRoute[ev.Route]
		r.add(ev.Allowed)
		s.byRoute[ev.Route] = r
	}
	return nil
}

func (s *MemoryStatsStore) Snapshot(_ context.Context) (StatsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		Total:   s.total,
		ByDay:   make(map[string]Counters, len(s.byDay)),
		ByRoute: make(map[string]Counters, len(s.byRoute)),
	}
	for k, v := range s.byDay {
		snap.ByDay[k] = v
	}
	for k, v := range s.byRoute {
		snap.ByRoute[k] = v
	}
	return snap, nil
}
