package admission

import (
	"context"
	"fmt"
	"math"
	"time"
)

// DefaultDailyQuota is the number of requests allowed per key per UTC day.
const DefaultDailyQuota = 3

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed    bool
	Count      int
	Quota      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// retryAfter returns the wait from now until reset, rounded up to a second.
func retryAfter(now, reset time.Time) time.Duration {
	wait := reset.Sub(now)
	if wait <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(wait.Seconds())) * time.Second
}

// Policy admits at most quota requests per key per UTC calendar day.
type Policy struct {
	store Store
	quota int
}

func NewPolicy(store Store, quota int) *Policy {
	if quota <= 0 {
		quota = DefaultDailyQuota
	}
	return &Policy{store: store, quota: quota}
}

func (p *Policy) Quota() int { return p.quota }

// Store returns the backing event store.
func (p *Policy) Store() Store { return p.store }

// DeniedMessage is the client-facing text for a denied request.
func (p *Policy) DeniedMessage() string {
	return fmt.Sprintf("Rate limit exceeded. Max %d requests per day.", p.quota)
}

// CheckAndRecord records the attempt for key at now and decides on it.
// The attempt is recorded whether or not it is allowed.
func (p *Policy) CheckAndRecord(ctx context.Context, key string, now time.Time) (Decision, error) {
	count, err := p.store.Record(ctx, key, now)
	if err != nil {
		return Decision{}, err
	}

	remaining := p.quota - count
	if remaining < 0 {
		remaining = 0
	}

	reset := NextReset(now)
	return Decision{
		Allowed:    count <= p.quota,
		Count:      count,
		Quota:      p.quota,
		Remaining:  remaining,
		ResetAt:    reset,
		RetryAfter: retryAfter(now, reset),
	}, nil
}
