package admission

import (
	"context"
	"time"
)

// StatsEvent is one admission decision.
type StatsEvent struct {
	Key     string
	Allowed bool
	Route   string
	At      time.Time
}

type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

func (c *Counters) add(allowed bool) {
	if allowed {
		c.Allowed++
		return
	}
	c.Denied++
}

// StatsSnapshot aggregates recorded decisions. ByDay is keyed by YYYY-MM-DD (UTC).
type StatsSnapshot struct {
	Total   Counters            `json:"total"`
	ByDay   map[string]Counters `json:"by_day"`
	ByRoute map[string]Counters `json:"by_route"`
}

// StatsStore persists admission decisions. Callers treat Record as
// best-effort and never fail a request because of it.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
	Snapshot(ctx context.Context) (StatsSnapshot, error)
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
