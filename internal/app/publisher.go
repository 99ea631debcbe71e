package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/gilded-rose/internal/core/service"
	"github.com/rl1809/gilded-rose/internal/metrics"
	"github.com/rl1809/gilded-rose/internal/port"
)

const publishTimeout = 5 * time.Second

// StartPublishers drains queue with n workers. The returned WaitGroup is done
// once the queue is closed and empty.
func StartPublishers(n int, queue <-chan service.Published, publisher port.ReportPublisher, logger *zap.Logger) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, queue, publisher, logger)
		}(i)
	}
	return &wg
}

func workerLoop(id int, queue <-chan service.Published, publisher port.ReportPublisher, logger *zap.Logger) {
	for p := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)

		if err := publisher.PublishReport(ctx, p.SimulationID, p.Report); err != nil {
			metrics.ReportsPublished.WithLabelValues("error").Inc()
			logger.Warn("publish report failed",
				zap.Int("worker", id),
				zap.String("simulation_id", p.SimulationID),
				zap.Int("day", p.Report.Day),
				zap.Error(err))
		} else {
			metrics.ReportsPublished.WithLabelValues("ok").Inc()
		}

		cancel()
	}
}
