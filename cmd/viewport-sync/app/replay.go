package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/viewport-sync/internal/config"
	"github.com/stacklok/viewport-sync/internal/logger"
	"github.com/stacklok/viewport-sync/internal/replay"
	"github.com/stacklok/viewport-sync/internal/telemetry"
)

// telemetryShutdownTimeout bounds the final flush of the OTLP exporters
const telemetryShutdownTimeout = 10 * time.Second

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a synchronization scenario",
	Long: `Replay a scenario against an in-memory viewer and print the final state.

The configuration file (--config) declares:
- Viewports and their image stacks
- Synchronizer groups linking viewports, with their trigger events
- The scripted user actions (scroll, jump, disable, remove, enable, disableSync, fail)

See examples/ directory for sample scenarios.`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().String("config", "", "Path to scenario file (YAML format, required)")
	replayCmd.Flags().String("format", formatTable, "Output format (table or json)")

	err := viper.BindPFlag("config", replayCmd.Flags().Lookup("config"))
	if err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}

	if err := replayCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runReplay(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to read format flag: %w", err)
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyLogging(cfg)
	logger.Infof("Loaded scenario '%s' from %s", cfg.Scenario.Name, configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Failed to shutdown telemetry: %v", err)
		}
	}()

	metrics, err := telemetry.NewSyncMetrics(tel.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	runner := replay.NewRunner(cfg,
		replay.WithMetrics(metrics),
		replay.WithTracer(tel.Tracer(telemetry.TracerName)),
	)
	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	return writeReport(cmd.OutOrStdout(), report, format)
}

// applyLogging applies the configured log level unless --debug was given
func applyLogging(cfg *config.Config) {
	if viper.GetBool("debug") {
		return
	}
	level, err := logger.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		logger.Warnf("Invalid log level '%s', using INFO", cfg.GetLogLevel())
		level = zapcore.InfoLevel
	}
	logger.Initialize(level, cfg.Logging.Development)
}
