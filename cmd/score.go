package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/batch"
	"github.com/spigell/transferability/internal/filtering"
	"github.com/spigell/transferability/internal/logger"
	"github.com/spigell/transferability/internal/metrics"
	"github.com/spigell/transferability/internal/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score FILE...",
	Short: "Compute reports from pre-labeled analysis files without calling a model",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().IntP("parallel", "p", batch.DefaultLimit, "how many files are scored at once")
	scoreCmd.Flags().Int("min-transferability", 0, "drop reports with a lower transferability index")
	scoreCmd.Flags().StringSlice("quadrant", nil, "keep only reports in these quadrants")
	scoreCmd.Flags().StringSlice("risk", nil, "keep only reports with these risk categories")
	scoreCmd.Flags().StringSlice("skip-filter", nil, "disable filters by name: min_transferability, quadrants, risk_categories")
	scoreCmd.Flags().StringP("output", "o", "", "output format: text, json or yaml")
}

func score(cmd *cobra.Command, paths []string) {
	ctx := context.Background()

	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	overrideFromFlags(cmd, config)
	overrideFiltersFromFlags(cmd, config.Filters)

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		lg.Fatal("parsing output format", zap.Error(err))
	}

	parallel, _ := cmd.Flags().GetInt("parallel")

	skip, _ := cmd.Flags().GetStringSlice("skip-filter")
	filters, err := buildFilters(config.Filters, skip, lg)
	if err != nil {
		lg.Fatal("preparing filters", zap.Error(err))
	}

	lg.Info("scoring files", zap.Int("count", len(paths)), zap.Int("parallel", parallel))

	results, err := batch.Score(ctx, paths, parallel, metrics.New())
	if err != nil {
		lg.Fatal("scoring files", zap.Error(err))
	}

	results, err = filters.RunFilters(ctx, results)
	if err != nil {
		lg.Fatal("filtering failed", zap.Error(err))
	}

	if results.Len() == 0 {
		lg.Info("exiting", zap.String("reason", "no reports left after filters"))
		return
	}

	entries := make([]report.Entry, 0, results.Len())
	for _, item := range results.Items {
		lg.Debug("report computed", append(logger.ReportFields(item.Report), zap.String("path", item.Path))...)
		entries = append(entries, report.Entry{Source: item.Path, Report: item.Report})
	}

	if err := report.WriteAll(os.Stdout, entries, format); err != nil {
		lg.Fatal("writing reports", zap.Error(err))
	}
}

func overrideFiltersFromFlags(cmd *cobra.Command, cfg *filtering.Config) {
	if flag := cmd.Flag("min-transferability"); flag != nil && flag.Changed {
		cfg.MinTransferability, _ = cmd.Flags().GetInt("min-transferability")
	}
	if flag := cmd.Flag("quadrant"); flag != nil && flag.Changed {
		cfg.Quadrants, _ = cmd.Flags().GetStringSlice("quadrant")
	}
	if flag := cmd.Flag("risk"); flag != nil && flag.Changed {
		cfg.RiskCategories, _ = cmd.Flags().GetStringSlice("risk")
	}
}

// buildFilters creates the filter chain and disables the skipped steps.
func buildFilters(cfg *filtering.Config, skip []string, lg *zap.Logger) (*filtering.Filtering, error) {
	filters := filtering.FromConfig(cfg, lg)

	known := make(map[string]bool)
	for _, status := range filters.Describe() {
		known[status.Name] = true
	}

	for _, name := range skip {
		if !known[name] {
			return nil, fmt.Errorf("unknown filter %q", name)
		}
		filters.DisableByName(name, "skipped by flag")
	}

	for _, status := range filters.Describe() {
		lg.Debug("filter",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	if err := filters.Validate(); err != nil {
		return nil, err
	}
	return filters, nil
}
