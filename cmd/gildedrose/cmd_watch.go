package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/gilded-rose/internal/adapter/handler"
	"github.com/rl1809/gilded-rose/internal/adapter/storage"
	"github.com/rl1809/gilded-rose/internal/core/domain"
)

var (
	watchRedis string
	watchCount int
)

var watchCmd = &cobra.Command{
	Use:   "watch <simulation-id>",
	Short: "Follow the daily reports a running server publishes for one simulation",
	Long: `Subscribes to reports:<simulation-id> on Redis and prints every report as it
arrives, in the same layout as "simulate". The simulation id is returned by the
server in the X-Simulation-ID header or the "id" field of a JSON response.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchRedis, "redis", "", "Redis address (overrides redis.addr)")
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "Exit after this many reports (0 = until interrupted)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	addr := cfg.Redis.Addr
	if watchRedis != "" {
		addr = watchRedis
	}
	if addr == "" {
		return errors.New("watch needs a redis address (--redis or GILDEDROSE_REDIS_ADDR)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	msgs, err := storage.NewRedisAdapter(rdb).Subscribe(ctx, args[0])
	if err != nil {
		return fmt.Errorf("watch %s: %w", args[0], err)
	}
	log.Debug("watching simulation", zap.String("simulation_id", args[0]), zap.String("redis", addr))

	seen := 0
	for msg := range msgs {
		if err := handler.WriteDays(cmd.OutOrStdout(), []domain.Report{msg.Report}); err != nil {
			return err
		}
		seen++
		if watchCount > 0 && seen >= watchCount {
			return nil
		}
	}
	return nil
}
