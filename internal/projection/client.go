package projection

import (
	"context"

	"go.uber.org/zap"

	"github.com/zentharo/request-service/pkg/apperrors"
)

// Client reconciles the authoritative request list into status buckets and
// falls back to the durable cache when the backend is unreachable.
type Client struct {
	source   Lister
	cache    Cache
	notifier Notifier
	logger   *zap.Logger
}

// NewClient constructs the projection client. A nil notifier is replaced
// with the no-op implementation.
func NewClient(source Lister, cache Cache, notifier Notifier, logger *zap.Logger) *Client {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Client{source: source, cache: cache, notifier: notifier, logger: logger}
}

// Refresh fetches the authoritative list and projects it. On a transport
// failure it serves the last cached list instead of failing the caller;
// once connectivity returns, the authoritative list fully replaces the
// fallback view.
func (c *Client) Refresh(ctx context.Context) (Buckets, error) {
	requests, err := c.source.ListRequests(ctx)
	if err != nil {
		if !apperrors.IsTransport(err) {
			return Buckets{}, err
		}
		c.logger.Warn("backend unreachable, using cached requests", zap.Error(err))
		c.notifier.Notify(ctx, "Backend unreachable. Showing last known requests.")

		cached, cacheErr := c.cache.Load(ctx)
		if cacheErr != nil {
			c.logger.Warn("fallback cache read failed", zap.Error(cacheErr))
			return Buckets{}, nil
		}
		return Project(cached), nil
	}

	if err := c.cache.Store(ctx, requests); err != nil {
		c.logger.Warn("fallback cache write failed", zap.Error(err))
	}
	return Project(requests), nil
}
