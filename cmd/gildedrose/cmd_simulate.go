package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/gilded-rose/internal/adapter/handler"
	"github.com/rl1809/gilded-rose/internal/app"
	"github.com/rl1809/gilded-rose/internal/core/domain"
	"github.com/rl1809/gilded-rose/internal/core/service"
)

var (
	simDays     int
	simSource   string
	simFile     string
	simDSN      string
	simShop     string
	simConjured bool
	simFormat   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Print the inventory report for each simulated day",
	Long: `Loads the starting items from the configured source, then prints the
report for day 0 and for every following day:

  -------- day 0 --------
  name, sellIn, quality
  +5 Dexterity Vest, 10, 20
  ...

Flags override the config file and GILDEDROSE_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&simDays, "days", "d", 2, "Number of days to simulate")
	simulateCmd.Flags().StringVar(&simSource, "source", "", "Item source: fixture, yaml or mysql")
	simulateCmd.Flags().StringVarP(&simFile, "file", "f", "", "YAML item file (implies --source yaml)")
	simulateCmd.Flags().StringVar(&simDSN, "dsn", "", "MySQL DSN for --source mysql")
	simulateCmd.Flags().StringVar(&simShop, "shop", "", "Shop to load from MySQL")
	simulateCmd.Flags().BoolVar(&simConjured, "conjured", false, "Treat \"Conjured Mana Cake\" as a conjured item")
	simulateCmd.Flags().StringVar(&simFormat, "format", "text", "Output format: text or json")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	src := cfg.Source
	if simFile != "" {
		src.Kind, src.File = "yaml", simFile
	}
	if simSource != "" {
		src.Kind = simSource
	}
	if simDSN != "" {
		src.MySQLDSN = simDSN
	}
	if simShop != "" {
		src.Shop = simShop
	}
	if simFormat != "text" && simFormat != "json" {
		return fmt.Errorf("unknown format %q", simFormat)
	}

	ctx := cmd.Context()
	source, closeSource, err := app.NewItemSource(ctx, src)
	if err != nil {
		return err
	}
	defer closeSource()

	seeds, err := source.LoadSeeds(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	log.Debug("items loaded", zap.String("source", src.Kind), zap.Int("count", len(seeds)))

	svc := service.NewSimulationService(service.Options{
		Classifier: domain.Classifier{Conjured: simConjured || cfg.Simulator.Conjured},
		MaxDays:    cfg.Simulator.MaxDays,
	}, log)

	sim, err := svc.Simulate(ctx, service.SimulationRequest{Items: seeds, Days: simDays})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if simFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sim)
	}
	return handler.WriteDays(out, sim.Reports)
}
