package ratelimit

import (
	"context"
	"time"

	"github.com/spurtek/spurtek-leads/pkg/logging"
)

// NoopLimiter admits every request. It stands in when no counter store is
// configured so the forms stay usable.
type NoopLimiter struct {
	logger *logging.Logger
	quiet  bool
}

// NewNoopLimiter returns a permissive limiter. Outside development each
// check logs a warning.
func NewNoopLimiter(development bool, logger *logging.Logger) *NoopLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &NoopLimiter{logger: logger, quiet: development}
}

func (n *NoopLimiter) Check(_ context.Context, identifier string, _ int, _ time.Duration) (Result, error) {
	if !n.quiet {
		n.logger.Warn("rate limiting not configured - request allowed", "identifier", identifier)
	}
	return Result{Allowed: true}, nil
}

var _ Limiter = (*NoopLimiter)(nil)
