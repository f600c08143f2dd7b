package enhance

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// CachedEnhancer decorates an Enhancer with a TTL cache keyed by email
// id, so re-processing the same message within a session does not repeat
// the external call.
type CachedEnhancer struct {
	inner  core.Enhancer
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewCachedEnhancer wraps an enhancer with a cache of the given TTL.
func NewCachedEnhancer(inner core.Enhancer, ttl time.Duration, logger *zap.Logger) *CachedEnhancer {
	return &CachedEnhancer{
		inner:  inner,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// EnhanceEmail returns a cached enhancement when available, calling
// through otherwise. Only successful results are cached.
func (c *CachedEnhancer) EnhanceEmail(ctx context.Context, email *core.Email) (*core.Enhancement, error) {
	if hit, ok := c.cache.Get(email.ID); ok {
		c.logger.Debug("Enhancement cache hit", zap.String("email_id", email.ID))
		return hit.(*core.Enhancement), nil
	}

	enh, err := c.inner.EnhanceEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(email.ID, enh)
	return enh, nil
}

// Close closes the inner enhancer when it supports closing.
func (c *CachedEnhancer) Close() error {
	if closer, ok := c.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
