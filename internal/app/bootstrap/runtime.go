package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/spurtek/spurtek-leads/internal/config"
	"github.com/spurtek/spurtek-leads/internal/ratelimit"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildLimiter picks the Redis sliding window when a client is available and
// the permissive limiter otherwise.
func BuildLimiter(redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) ratelimit.Limiter {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient == nil {
		development := cfg != nil && cfg.IsDevelopment()
		if !development {
			logger.Warn("redis not configured, rate limiting disabled")
		}
		return ratelimit.NewNoopLimiter(development, logger)
	}
	return ratelimit.NewRedisLimiter(redisClient, logger)
}

// BuildPolicies applies configured budgets to the default policies.
func BuildPolicies(cfg *appconfig.Config) ratelimit.Policies {
	policies := ratelimit.DefaultPolicies()
	if cfg == nil {
		return policies
	}
	apply := func(p *ratelimit.Policy, limit int) {
		p.Limit = limit
		if cfg.RateLimitWindow > 0 {
			p.Window = cfg.RateLimitWindow
		}
	}
	apply(&policies.Quote, cfg.RateLimitQuote)
	apply(&policies.Demo, cfg.RateLimitDemo)
	apply(&policies.Contact, cfg.RateLimitContact)
	apply(&policies.Download, cfg.RateLimitDownload)
	apply(&policies.Newsletter, cfg.RateLimitNewsletter)
	return policies
}
