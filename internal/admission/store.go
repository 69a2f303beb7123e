package admission

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyKey is returned when a request carries no subject key.
var ErrEmptyKey = errors.New("admission: empty key")

// Store records request events per key.
//
// Record must prune entries older than now's UTC day, append now and count
// today's entries as one indivisible step for the given key.
type Store interface {
	Record(ctx context.Context, key string, now time.Time) (int, error)
	Usage(ctx context.Context) (Usage, error)
}

// Usage describes how much state a Store retains.
type Usage struct {
	Keys   int `json:"tracked_keys"`
	Events int `json:"retained_events"`
}
