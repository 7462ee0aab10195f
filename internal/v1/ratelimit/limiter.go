// Package ratelimit caps fresh room joins per source IP using an in-memory
// fixed window of the configured length. Reconnections (an existing seat rejoining by name) bypass
// the cap entirely — only first-time joins consume it.
package ratelimit

import (
	"context"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"tablehost/internal/v1/config"
	"tablehost/internal/v1/logging"
	"tablehost/internal/v1/metrics"
)

// Limiter enforces the per-IP fresh-join cap.
type Limiter struct {
	joins *limiter.Limiter
}

// New builds a Limiter from the configured join cap and window.
func New(cfg *config.Config) *Limiter {
	rate := limiter.Rate{
		Period: time.Duration(cfg.RateLimitJoinWindow) * time.Second,
		Limit:  int64(cfg.RateLimitJoinLimit),
	}
	store := memory.NewStore()
	return &Limiter{joins: limiter.New(store, rate)}
}

// AllowFreshJoin reports whether ip may attempt another first-time join.
// A false return means the caller should reject the join with a rate-limit
// error; a store failure fails open rather than blocking play.
func (l *Limiter) AllowFreshJoin(ctx context.Context, ip string) bool {
	result, err := l.joins.Get(ctx, ip)
	if err != nil {
		logging.Error(ctx, "rate limiter store failed, failing open", zap.Error(err))
		return true
	}
	metrics.RateLimitRequests.WithLabelValues("join").Inc()
	if result.Reached {
		metrics.RateLimitExceeded.WithLabelValues("fresh_join_cap").Inc()
		return false
	}
	return true
}
