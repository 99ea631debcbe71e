package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/gilded-rose/internal/adapter/handler"
	"github.com/rl1809/gilded-rose/internal/adapter/handler/pb"
	"github.com/rl1809/gilded-rose/internal/adapter/storage"
	"github.com/rl1809/gilded-rose/internal/config"
	"github.com/rl1809/gilded-rose/internal/core/domain"
	"github.com/rl1809/gilded-rose/internal/core/service"
)

// Serve runs the HTTP and gRPC transports until ctx is cancelled or one of
// them fails, then shuts everything down in order.
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	source, closeSource, err := NewItemSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer closeSource()
	logger.Info("item source ready", zap.String("kind", cfg.Source.Kind))

	opts := service.Options{
		Classifier: domain.Classifier{Conjured: cfg.Simulator.Conjured},
		MaxDays:    cfg.Simulator.MaxDays,
	}

	var rdb *redis.Client
	if cfg.PublishingEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		opts.QueueSize = cfg.Simulator.QueueSize
	}

	simulations := service.NewSimulationService(opts, logger)

	workersDone := func() {}
	if rdb != nil {
		wg := StartPublishers(cfg.Simulator.PublishWorkers, simulations.ReportQueue(), storage.NewRedisAdapter(rdb), logger)
		workersDone = wg.Wait
		logger.Info("started publish workers", zap.Int("count", cfg.Simulator.PublishWorkers))
	}

	grpcServer := grpc.NewServer()
	pb.RegisterShopServer(grpcServer, handler.NewGRPCHandler(simulations, source, logger))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler.NewRouter(handler.NewHTTPHandler(simulations, source, logger), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-errCh:
		logger.Error("server failed, shutting down", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown", zap.Error(err))
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	// handlers still running after a shutdown timeout stop enqueueing here
	simulations.Close()
	workersDone()
	logger.Info("workers stopped")

	return runErr
}
