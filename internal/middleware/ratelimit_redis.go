package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter shares fixed window counters between replicas. It fails open
// when redis is unreachable.
type RedisLimiter struct {
	client  redis.Scripter
	script  *redis.Script
	timeout time.Duration
}

func NewRedisLimiter(client redis.Scripter) *RedisLimiter {
	return &RedisLimiter{
		client:  client,
		script:  redis.NewScript(rateLimitScript),
		timeout: 250 * time.Millisecond,
	}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := max(window.Milliseconds(), 1)
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		slog.Warn("rate limit check failed", "key", key, "err", err)
		return true
	}
	return allowed == 1
}
