package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/gilded-rose/internal/core/domain"
	"github.com/rl1809/gilded-rose/internal/metrics"
)

const DefaultMaxDays = 365

var (
	ErrInvalidRequest = errors.New("invalid simulation request")
	ErrTooManyDays    = errors.New("too many days requested")
)

type SimulationRequest struct {
	Items []domain.Seed `validate:"dive"`
	Days  int           `validate:"gte=0"`
}

type Simulation struct {
	ID      string          `json:"id"`
	Reports []domain.Report `json:"reports"`
}

// Final is the report after the last simulated day.
func (s Simulation) Final() domain.Report {
	if len(s.Reports) == 0 {
		return domain.Report{}
	}
	return s.Reports[len(s.Reports)-1]
}

// Published pairs a report with the simulation that produced it.
type Published struct {
	SimulationID string
	Report       domain.Report
}

type Options struct {
	Classifier domain.Classifier
	MaxDays    int
	// QueueSize > 0 enables the publish queue drained by ReportQueue consumers.
	QueueSize int
}

type SimulationService struct {
	classifier  domain.Classifier
	maxDays     int
	validate    *validator.Validate
	logger      *zap.Logger

	// mu guards closed; senders hold the read lock so Close cannot close
	// reportQueue under a pending send.
	mu          sync.RWMutex
	closed      bool
	reportQueue chan Published
}

func NewSimulationService(opts Options, logger *zap.Logger) *SimulationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = DefaultMaxDays
	}

	v := validator.New()
	v.RegisterStructValidation(validateSeed, domain.Seed{})

	s := &SimulationService{
		classifier: opts.Classifier,
		maxDays:    opts.MaxDays,
		validate:   v,
		logger:     logger,
	}
	if opts.QueueSize > 0 {
		s.reportQueue = make(chan Published, opts.QueueSize)
	}
	return s
}

func validateSeed(sl validator.StructLevel) {
	seed := sl.Current().Interface().(domain.Seed)
	if seed.Name == "" {
		sl.ReportError(seed.Name, "Name", "name", "required", "")
	}
	if seed.Quality < domain.MinQuality {
		sl.ReportError(seed.Quality, "Quality", "quality", "gte", "0")
	}
	if seed.SellIn < domain.MinSellIn || seed.SellIn > domain.MaxSellIn {
		sl.ReportError(seed.SellIn, "SellIn", "sell_in", "range", "")
	}
}

// Simulate builds an inventory from req.Items and advances it req.Days times.
// Reports holds the day-0 state followed by one report per day.
func (s *SimulationService) Simulate(ctx context.Context, req SimulationRequest) (*Simulation, error) {
	if err := s.validate.Struct(req); err != nil {
		metrics.SimulationsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if req.Days > s.maxDays {
		metrics.SimulationsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyDays, req.Days, s.maxDays)
	}

	inv, err := s.classifier.BuildInventory(req.Items)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	sim := &Simulation{
		ID:      uuid.NewString(),
		Reports: make([]domain.Report, 0, req.Days+1),
	}
	log := s.logger.With(zap.String("simulation_id", sim.ID))
	log.Debug("simulation started", zap.Int("items", inv.Len()), zap.Int("days", req.Days))

	if err := s.record(ctx, sim, inv.Report()); err != nil {
		return nil, err
	}

	for day := 1; day <= req.Days; day++ {
		if err := ctx.Err(); err != nil {
			metrics.SimulationsTotal.WithLabelValues("cancelled").Inc()
			return nil, err
		}

		inv.Advance()
		s.observeTick(inv)

		if err := s.record(ctx, sim, inv.Report()); err != nil {
			return nil, err
		}
	}

	metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	log.Info("simulation finished", zap.Int("items", inv.Len()), zap.Int("days", req.Days))
	return sim, nil
}

func (s *SimulationService) record(ctx context.Context, sim *Simulation, report domain.Report) error {
	sim.Reports = append(sim.Reports, report)
	if s.reportQueue == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.logger.Warn("report queue closed, report not published",
			zap.String("simulation_id", sim.ID), zap.Int("day", report.Day))
		return nil
	}

	select {
	case s.reportQueue <- Published{SimulationID: sim.ID, Report: report}:
		return nil
	case <-ctx.Done():
		metrics.SimulationsTotal.WithLabelValues("cancelled").Inc()
		return ctx.Err()
	}
}

func (s *SimulationService) observeTick(inv *domain.Inventory) {
	metrics.TicksTotal.Inc()
	for _, item := range inv.Items() {
		metrics.ItemsAdvanced.WithLabelValues(item.Category().String()).Inc()
	}
}

// ReportQueue is nil when the service was built without a queue.
func (s *SimulationService) ReportQueue() <-chan Published {
	return s.reportQueue
}

func (s *SimulationService) MaxDays() int {
	return s.maxDays
}

// Close closes the report queue once. Simulations still running afterwards
// keep their reports but no longer enqueue them.
func (s *SimulationService) Close() {
	if s.reportQueue == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.reportQueue)
	}
}
