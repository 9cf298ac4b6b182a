package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/zentharo/request-service/internal/config"
	"github.com/zentharo/request-service/internal/observability"
	"github.com/zentharo/request-service/internal/persistence"
	"github.com/zentharo/request-service/internal/projection"
)

// Prints the projected status buckets once, falling back to the durable
// cache when the API is unreachable.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	source := projection.NewHTTPSource(cfg.Client.APIBaseURL, cfg.Client.ListTimeout())
	cache := projection.NewRedisCache(redis.Client, cfg.Client.CacheKey)
	client := projection.NewClient(source, cache, logNotifier{logger}, logger)

	buckets, err := client.Refresh(context.Background())
	if err != nil {
		logger.Fatal("refresh failed", zap.Error(err))
	}

	stats := buckets.Statistics()
	fmt.Printf("requests: %d total / %d pending / %d approved / %d completed\n",
		stats.Total, stats.Pending, stats.Approved, stats.Completed)
	for _, request := range buckets.All() {
		fmt.Printf("  [%s] %s - %s (%s)\n",
			request.Status, request.ID, request.CustomerDetails.Name, request.SubmittedAt().Format("2006-01-02 15:04"))
	}
}

type logNotifier struct {
	logger *zap.Logger
}

func (n logNotifier) Notify(_ context.Context, message string) {
	n.logger.Warn(message)
}
