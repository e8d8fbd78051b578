package main

import (
	"context"
	"time"

	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/logger"
	"github.com/campushq/campus-chatbot-go/internal/metrics"
	"github.com/campushq/campus-chatbot-go/internal/ratelimit"
	"github.com/campushq/campus-chatbot-go/internal/storage"
)

// updateGauges periodically refreshes the catalog row count and rate
// limiter gauges so dashboards show current state without a scrape-time
// database hit.
func updateGauges(ctx context.Context, db *storage.DB, userLimiter *ratelimit.UserRateLimiter,
	m *metrics.Metrics, log *logger.Logger) {

	ticker := time.NewTicker(config.MetricsUpdateInterval)
	defer ticker.Stop()

	performGaugeUpdate(ctx, db, userLimiter, m, log)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			performGaugeUpdate(ctx, db, userLimiter, m, log)
		}
	}
}

func performGaugeUpdate(ctx context.Context, db *storage.DB, userLimiter *ratelimit.UserRateLimiter,
	m *metrics.Metrics, log *logger.Logger) {

	counts, err := db.TableCounts(ctx)
	if err != nil {
		log.WithError(err).Debug("Failed to count catalog rows for metrics")
	} else {
		for table, count := range counts {
			m.SetCatalogRows(table, count)
		}
	}

	m.SetRateLimiterUsers("user", userLimiter.GetActiveCount())
}
