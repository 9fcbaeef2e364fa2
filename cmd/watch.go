package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/logger"
	"github.com/spigell/transferability/internal/metrics"
	"github.com/spigell/transferability/internal/report"
	"github.com/spigell/transferability/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Rescore a pre-labeled analysis file every time it changes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		watchFile(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("output", "o", "", "output format: text, json or yaml")
}

func watchFile(cmd *cobra.Command, path string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	overrideFromFlags(cmd, config)

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		lg.Fatal("parsing output format", zap.Error(err))
	}

	onChange := func(r *metrics.FullReport) {
		lg.Info("report computed", logger.ReportFields(r)...)
		if format == report.FormatText {
			fmt.Fprintln(os.Stdout)
		}
		if err := report.Write(os.Stdout, r, format); err != nil {
			lg.Error("writing the report", zap.Error(err))
		}
	}

	if err := watch.Watch(ctx, path, metrics.New(), lg, onChange); err != nil {
		lg.Fatal("watching file", zap.Error(err))
	}
}
