package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/catalog-server/internal/config"
	"github.com/listenupapp/catalog-server/internal/logger"
	"github.com/listenupapp/catalog-server/internal/ratelimit"
)

// RateLimiterHandle wraps the per-client limiter. Limiter is nil when
// rate limiting is disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter == nil {
		return nil
	}
	return h.Limiter.Shutdown()
}

// ProvideRateLimiter provides the limiter for mutating requests.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled")
		return &RateLimiterHandle{}, nil
	}

	limiter := ratelimit.NewPerInterval(cfg.RateLimit.RequestsPerMinute, time.Minute, cfg.RateLimit.Burst)
	log.Info("Rate limiting enabled",
		"requests_per_minute", cfg.RateLimit.RequestsPerMinute,
		"burst", cfg.RateLimit.Burst,
	)

	return &RateLimiterHandle{Limiter: limiter}, nil
}
