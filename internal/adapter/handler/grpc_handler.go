package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/gilded-rose/internal/adapter/handler/pb"
	"github.com/rl1809/gilded-rose/internal/core/domain"
	"github.com/rl1809/gilded-rose/internal/core/service"
	"github.com/rl1809/gilded-rose/internal/port"
)

type GRPCHandler struct {
	pb.UnimplementedShopServer
	simulations *service.SimulationService
	source      port.ItemSource
	logger      *zap.Logger
}

func NewGRPCHandler(simulations *service.SimulationService, source port.ItemSource, logger *zap.Logger) *GRPCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{simulations: simulations, source: source, logger: logger}
}

func (h *GRPCHandler) Simulate(ctx context.Context, req *pb.SimulateRequest) (*pb.SimulateResponse, error) {
	var seeds []domain.Seed
	if len(req.GetItems()) == 0 {
		loaded, err := h.source.LoadSeeds(ctx)
		if err != nil {
			h.logger.Error("load seeds failed", zap.Error(err))
			return nil, status.Error(codes.Unavailable, "item source unavailable")
		}
		seeds = loaded
	} else {
		seeds = make([]domain.Seed, 0, len(req.GetItems()))
		for _, s := range req.GetItems() {
			if s == nil {
				return nil, status.Error(codes.InvalidArgument, "nil item")
			}
			seeds = append(seeds, domain.Seed{Name: s.Name, SellIn: int(s.SellIn), Quality: int(s.Quality)})
		}
	}

	sim, err := h.simulations.Simulate(ctx, service.SimulationRequest{Items: seeds, Days: int(req.GetDays())})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrTooManyDays):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, status.FromContextError(err).Err()
		}
		h.logger.Error("simulation failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	resp := &pb.SimulateResponse{
		SimulationId: sim.ID,
		Reports:      make([]*pb.DayReport, 0, len(sim.Reports)),
	}
	for _, report := range sim.Reports {
		resp.Reports = append(resp.Reports, toDayReport(report))
	}
	return resp, nil
}

func toDayReport(report domain.Report) *pb.DayReport {
	out := &pb.DayReport{
		Day:   int32(report.Day),
		Items: make([]*pb.ItemState, 0, len(report.Items)),
		Text:  report.String(),
	}
	for _, item := range report.Items {
		out.Items = append(out.Items, &pb.ItemState{
			Name:     item.Name,
			Category: item.Category,
			SellIn:   int64(item.SellIn),
			Quality:  int32(item.Quality),
		})
	}
	return out
}
