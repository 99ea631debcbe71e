package port

import (
	"context"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

type ReportPublisher interface {
	// PublishReport hands one day's report of a simulation to external consumers.
	PublishReport(ctx context.Context, simulationID string, report domain.Report) error
}
