package libs

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateStore shares windows between instances. The first hit in a
// window sets the key's expiry and the key TTL is the time left.
type RedisRateStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisRateStore(client redis.Cmdable, prefix string) *RedisRateStore {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisRateStore{client: client, prefix: prefix}
}

func (s *RedisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	k := s.prefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit ttl: %w", err)
	}

	// A key left without expiry (crash between INCR and PEXPIRE) gets one now.
	if ttl < 0 {
		_ = s.client.PExpire(ctx, k, window).Err()
		ttl = window
	}
	return count, time.Now().Add(ttl), nil
}
