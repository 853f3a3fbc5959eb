// Package ratelimit implements a sliding-window request limiter backed by
// Redis sorted sets. It deliberately shares no state or locking with the
// ledger: quota checks stay available when the ledger is slow and vice
// versa. When Redis itself is unavailable the limiter fails open, trading
// strict quota enforcement for availability of paid functionality.
package ratelimit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a request under the given key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RedisAPI captures the subset of the Redis client used by the limiter.
type RedisAPI interface {
	ZRemRangeByScore(ctx context.Context, key, min, max string) *redis.IntCmd
	ZCard(ctx context.Context, key string) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter is a sliding-window limiter: one sorted-set member per
// request, scored by nanosecond timestamp, trimmed to the window on every
// check.
type RedisLimiter struct {
	Client      RedisAPI
	Window      time.Duration
	MaxRequests int64
	Logger      *slog.Logger
}

// NewRedisLimiter creates a RedisLimiter.
func NewRedisLimiter(client RedisAPI, window time.Duration, maxRequests int64, logger *slog.Logger) *RedisLimiter {
	return &RedisLimiter{
		Client:      client,
		Window:      window,
		MaxRequests: maxRequests,
		Logger:      logger,
	}
}

var _ Limiter = (*RedisLimiter)(nil)

// Allow reports whether the caller identified by key is within its window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	now := time.Now()
	redisKey := "rate:" + key
	windowFloor := now.Add(-l.Window).UnixNano()

	if err := l.Client.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowFloor, 10)).Err(); err != nil {
		return l.failOpen(err)
	}

	count, err := l.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return l.failOpen(err)
	}
	if count >= l.MaxRequests {
		return false
	}

	member := redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()}
	if err := l.Client.ZAdd(ctx, redisKey, member).Err(); err != nil {
		return l.failOpen(err)
	}
	if err := l.Client.Expire(ctx, redisKey, l.Window).Err(); err != nil {
		l.Logger.Warn("failed to set rate window expiry", "key", key, "error", err)
	}

	return true
}

func (l *RedisLimiter) failOpen(err error) bool {
	l.Logger.Warn("rate limiter degraded, allowing request", "error", err)
	return true
}
