package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/spurtek/spurtek-leads/pkg/logging"
)

var tracer = otel.Tracer("spurtek.internal.ratelimit")

const keyPrefix = "ratelimit:"

// slidingWindowScript keeps one sorted-set member per admitted request,
// scored by its arrival time in milliseconds. Rejected requests are not
// recorded. Returns {allowed, count, oldestScore}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
redis.call('ZREMRANGEBYSCORE', key, '-inf', ARGV[2])
local count = redis.call('ZCARD', key)
local allowed = 0
if count < tonumber(ARGV[3]) then
	redis.call('ZADD', key, ARGV[1], ARGV[4])
	count = count + 1
	allowed = 1
end
redis.call('PEXPIRE', key, ARGV[5])
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = tonumber(ARGV[1])
if oldest[2] then
	oldestScore = tonumber(oldest[2])
end
return {allowed, count, oldestScore}
`)

// RedisLimiter implements a sliding-window log on Redis.
type RedisLimiter struct {
	client redis.Scripter
	logger *logging.Logger
	now    func() time.Time
}

// NewRedisLimiter creates a limiter on top of a go-redis client.
func NewRedisLimiter(client redis.Scripter, logger *logging.Logger) *RedisLimiter {
	if client == nil {
		panic("ratelimit: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisLimiter{client: client, logger: logger, now: time.Now}
}

// WithClock overrides the time source.
func (l *RedisLimiter) WithClock(now func() time.Time) *RedisLimiter {
	if now != nil {
		l.now = now
	}
	return l
}

// Check records a request for identifier when it fits in the window. Store
// failures fail open: the request is allowed and the error only logged.
func (l *RedisLimiter) Check(ctx context.Context, identifier string, limit int, window time.Duration) (Result, error) {
	ctx, span := tracer.Start(ctx, "ratelimit.check")
	defer span.End()
	span.SetAttributes(attribute.Int("ratelimit.limit", limit))

	if limit <= 0 || window <= 0 {
		return Result{Allowed: true}, nil
	}

	nowMs := l.now().UnixMilli()
	windowMs := window.Milliseconds()
	key := keyPrefix + identifier
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	raw, err := slidingWindowScript.Run(ctx, l.client, []string{key},
		nowMs, nowMs-windowMs, limit, member, windowMs,
	).Slice()
	if err == nil && len(raw) != 3 {
		err = fmt.Errorf("ratelimit: unexpected script reply of %d values", len(raw))
	}
	if err != nil {
		l.logger.Error("rate limit check failed", "error", err, "key", key)
		span.SetAttributes(attribute.Bool("ratelimit.unavailable", true))
		return Result{Allowed: true}, nil
	}

	allowed := toInt64(raw[0]) == 1
	count := int(toInt64(raw[1]))
	remaining := limit - count
	if remaining < 0 || !allowed {
		remaining = 0
	}

	result := Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.UnixMilli(toInt64(raw[2]) + windowMs),
	}
	span.SetAttributes(attribute.Bool("ratelimit.allowed", allowed))
	if !allowed {
		l.logger.Warn("rate limit exceeded", "key", key, "count", count, "max", limit)
	}
	return result, nil
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case string:
		parsed, _ := strconv.ParseFloat(n, 64)
		return int64(parsed)
	default:
		return 0
	}
}

var _ Limiter = (*RedisLimiter)(nil)
