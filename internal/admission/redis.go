package admission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// recordScript prunes, appends and counts inside Redis so concurrent callers
// on any number of API instances observe a consistent log.
//
// KEYS[1] log key; ARGV[1] day start ms; ARGV[2] next day start ms;
// ARGV[3] event ms; ARGV[4] unique member.
var recordScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', '(' .. ARGV[1])
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[4])
return redis.call('ZCOUNT', KEYS[1], ARGV[1], '(' .. ARGV[2])
`)

// RedisStore keeps one sorted set per key. Keys carry no TTL; stale entries
// are only pruned when the same key is written again.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

type RedisOption func(*RedisStore)

func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func NewRedisStore(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{rdb: rdb, prefix: "admission:log"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record implements Store.
func (s *RedisStore) Record(ctx context.Context, key string, now time.Time) (int, error) {
	if key == "" {
		return 0, ErrEmptyKey
	}

	start := DayStart(now)
	count, err := recordScript.Run(ctx, s.rdb, []string{s.key(key)},
		start.UnixMilli(),
		NextReset(now).UnixMilli(),
		now.UnixMilli(),
		uuid.NewString(),
	).Int()
	if err != nil {
		return 0, fmt.Errorf("admission: redis record: %w", err)
	}
	return count, nil
}

// Usage implements Store by scanning the key prefix.
func (s *RedisStore) Usage(ctx context.Context) (Usage, error) {
	var u Usage

	iter := s.rdb.Scan(ctx, 0, s.prefix+":*", 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return u, fmt.Errorf("admission: redis scan: %w", err)
	}
	u.Keys = len(keys)
	if len(keys) == 0 {
		return u, nil
	}

	pipe := s.rdb.Pipeline()
	cards := make([]*redis.IntCmd, len(keys))
	for i, k := range keys {
		cards[i] = pipe.ZCard(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return u, fmt.Errorf("admission: redis usage: %w", err)
	}
	for _, c := range cards {
		u.Events += int(c.Val())
	}
	return u, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + ":" + k
}
