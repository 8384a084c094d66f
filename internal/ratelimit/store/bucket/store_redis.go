package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"idcheck/internal/ratelimit/models"
)

// slidingWindowScript checks and records one event atomically. A plain
// GET/check/INCR sequence races under concurrent requests; the script does
// the whole decision server-side.
//
// KEYS[1] = sorted set of event timestamps
// ARGV[1] = now (unix milliseconds)
// ARGV[2] = window (milliseconds)
// ARGV[3] = limit
//
// Returns {allowed, count, oldest} where oldest is the unix-millisecond
// timestamp of the earliest surviving event (0 when empty).
const slidingWindowScript = `
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call("ZREMRANGEBYSCORE", KEYS[1], 0, now - window)
local count = redis.call("ZCARD", KEYS[1])

if count + 1 > limit then
    local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
    return {0, count, tonumber(oldest[2]) or 0}
end

redis.call("ZADD", KEYS[1], now, now .. "-" .. redis.call("INCR", KEYS[1] .. ":seq"))
redis.call("PEXPIRE", KEYS[1], window)
redis.call("PEXPIRE", KEYS[1] .. ":seq", window)
local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
return {1, count + 1, tonumber(oldest[2]) or 0}
`

// RedisStore keeps sliding windows in Redis sorted sets, shared across
// instances.
type RedisStore struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		script: redis.NewScript(slidingWindowScript),
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	now := time.Now()
	raw, err := s.script.Run(ctx, s.client,
		[]string{"ratelimit:" + key},
		now.UnixMilli(), window.Milliseconds(), limit,
	).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}

	vals, ok := raw.([]interface{})
	if !ok || len(vals) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %T", raw)
	}
	allowed := vals[0].(int64) == 1
	count := int(vals[1].(int64))
	oldest := vals[2].(int64)

	resetAt := now.Add(window)
	if oldest > 0 {
		resetAt = time.UnixMilli(oldest).Add(window)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &models.Result{
		Allowed:   allowed,
		Remaining: remaining,
		ResetAt:   resetAt,
		Limit:     limit,
	}, nil
}

// Reset clears the counter for a key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, "ratelimit:"+key, "ratelimit:"+key+":seq").Err()
}
