package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spurtek/spurtek-leads/internal/observability/metrics"
	"github.com/spurtek/spurtek-leads/internal/ratelimit"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// UnknownClient identifies callers whose address could not be determined.
// They share one budget per endpoint.
const UnknownClient = "unknown"

const tooManyRequestsMessage = "Too many requests. Please try again later."

// ClientIdentifier returns the caller address as reported by the edge proxy:
// the first X-Forwarded-For entry, then X-Real-IP, then UnknownClient.
func ClientIdentifier(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-Ip")); xri != "" {
		return xri
	}
	return UnknownClient
}

// RateLimit returns an HTTP middleware that rejects requests exceeding the
// policy with 429 Too Many Requests. Limiter errors let the request through.
func RateLimit(limiter ratelimit.Limiter, policy ratelimit.Policy, m *metrics.LeadMetrics, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		if limiter == nil || !policy.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientIdentifier(r)
			res, err := limiter.Check(r.Context(), policy.Key(client), policy.Limit, policy.Window)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request", "endpoint", policy.Name, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !res.Allowed {
				m.ObserveRateLimited(policy.Name)
				writeLimitHeaders(w, res, time.Now())
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": tooManyRequestsMessage})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeLimitHeaders(w http.ResponseWriter, res ratelimit.Result, now time.Time) {
	if res.Limit <= 0 || res.Reset.IsZero() {
		return
	}
	w.Header().Set(headerRateLimitLimit, strconv.Itoa(res.Limit))
	w.Header().Set(headerRateLimitRemaining, strconv.Itoa(res.Remaining))
	w.Header().Set(headerRateLimitReset, strconv.FormatInt(res.Reset.Unix(), 10))
	wait := int(math.Ceil(res.Reset.Sub(now).Seconds()))
	if wait < 1 {
		wait = 1
	}
	w.Header().Set(headerRetryAfter, strconv.Itoa(wait))
}
