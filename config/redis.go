package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when redis is not configured or unreachable;
// callers fall back to in-process state.
func ConnectRedis(ctx context.Context, cfg *Config) *redis.Client {
	var opt *redis.Options
	switch {
	case cfg.RedisURL != "":
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Warn("failed to parse REDIS_URL, running without redis", "error", err)
			return nil
		}
		opt = parsed
	case cfg.RedisAddr != "":
		opt = &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	default:
		return nil
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis connection failed, running without redis", "error", err)
		_ = client.Close()
		return nil
	}

	slog.Info("redis connected", "addr", opt.Addr)
	return client
}
