package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/zentharo/request-service/internal/events"
	"github.com/zentharo/request-service/internal/observability"
	"github.com/zentharo/request-service/internal/service"
)

// StartStatsWorker recomputes per-status counts whenever the request set
// changes and publishes the snapshot to metrics.
func StartStatsWorker(dispatcher events.Dispatcher, requests *service.RequestService, metrics *observability.Metrics, logger *zap.Logger) {
	if dispatcher == nil || requests == nil {
		return
	}
	recompute := func(ctx context.Context, event events.Event) error {
		stats, err := requests.Statistics(ctx)
		if err != nil {
			logger.Warn("stats recompute failed", zap.Error(err))
			return nil
		}
		metrics.SetStatusCounts(stats)
		return nil
	}
	dispatcher.Subscribe(events.EventRequestCreated, recompute)
	dispatcher.Subscribe(events.EventRequestStatusChanged, recompute)
	dispatcher.Subscribe(events.EventRequestDeleted, recompute)
}
