// Package ratelimit throttles public form endpoints per client address.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one limiter check. Limit, Remaining and Reset are
// zero when no backing store produced them.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter decides whether identifier may make another request within window.
type Limiter interface {
	Check(ctx context.Context, identifier string, limit int, window time.Duration) (Result, error)
}

// Policy is the request budget of one endpoint. Name doubles as the key
// prefix so endpoints never share quota.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Key scopes a client identifier to this policy.
func (p Policy) Key(client string) string {
	return p.Name + ":" + client
}

// Enabled reports whether the policy limits anything.
func (p Policy) Enabled() bool {
	return p.Limit > 0 && p.Window > 0
}

// Policies groups the budgets of every public endpoint.
type Policies struct {
	Quote      Policy
	Demo       Policy
	Contact    Policy
	Download   Policy
	Newsletter Policy
}

// DefaultPolicies returns the production budgets.
func DefaultPolicies() Policies {
	return Policies{
		Quote:      Policy{Name: "quote", Limit: 5, Window: time.Hour},
		Demo:       Policy{Name: "demo", Limit: 3, Window: time.Hour},
		Contact:    Policy{Name: "contact", Limit: 3, Window: time.Hour},
		Download:   Policy{Name: "download", Limit: 10, Window: time.Hour},
		Newsletter: Policy{Name: "newsletter", Limit: 5, Window: time.Hour},
	}
}
