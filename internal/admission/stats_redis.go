package admission

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore keeps decision counters in Redis hashes: a cumulative total,
// one hash per UTC day (expiring after ttl) and one per-route hash.
type RedisStatsStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "admission:stats",
		ttl:    30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStatsStore) Record(ctx context.Context, ev StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	bucket := s.prefix + ":day:" + dayKey(at)
	pipe.HIncrBy(ctx, bucket, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucket, s.ttl)
	}

	if route := strings.TrimSpace(ev.Route); route != "" {
		pipe.HIncrBy(ctx, s.prefix+":route", route+"|"+field, 1)
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStatsStore) Snapshot(ctx context.Context) (StatsSnapshot, error) {
	snap := StatsSnapshot{
		ByDay:   make(map[string]Counters),
		ByRoute: make(map[string]Counters),
	}

	total, err := s.rdb.HGetAll(ctx, s.prefix+":total").Result()
	if err != nil {
		return snap, fmt.Errorf("admission: stats total: %w", err)
	}
	snap.Total = countersFromHash(total)

	dayPrefix := s.prefix + ":day:"
	iter := s.rdb.Scan(ctx, 0, dayPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		fields, err := s.rdb.HGetAll(ctx, key).Result()
		if err != nil {
			return snap, fmt.Errorf("admission: stats day: %w", err)
		}
		snap.ByDay[strings.TrimPrefix(key, dayPrefix)] = countersFromHash(fields)
	}
	if err := iter.Err(); err != nil {
		return snap, fmt.Errorf("admission: stats scan: %w", err)
	}

	routes, err := s.rdb.HGetAll(ctx, s.prefix+":route").Result()
	if err != nil {
		return snap, fmt.Errorf("admission: stats routes: %w", err)
	}
	for field, raw := range routes {
		route, kind, ok := strings.Cut(field, "|")
		if !ok {
			continue
		}
		n, _ := strconv.ParseInt(raw, 10, 64)
		c := snap.ByRoute[route]
		if kind == "allowed" {
			c.Allowed += n
		} else {
			c.Denied += n
		}
		snap.ByRoute[route] = c
	}

	return snap, nil
}

func countersFromHash(fields map[string]string) Counters {
	var c Counters
	c.Allowed, _ = strconv.ParseInt(fields["allowed"], 10, 64)
	c.Denied, _ = strconv.ParseInt(fields["denied"], 10, 64)
	return c
}
