package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"CallingHome/internal/app"
	"CallingHome/internal/config"
	"CallingHome/internal/console"
	"CallingHome/internal/history"
	"CallingHome/internal/telemetry"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	flag.StringVar(&cfg.SenderName, "sender", cfg.SenderName, "Default sender name")
	flag.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory for saved messages")
	flag.StringVar(&cfg.Color, "color", cfg.Color, "Color output (auto|always|never)")
	flag.StringVar(&cfg.Audience, "audience", cfg.Audience, "Starting audience (lawyer|lawmaker)")
	flag.StringVar(&cfg.Channel, "channel", cfg.Channel, "Starting channel (sms|email)")
	flag.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for log, trace and metric files")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	flag.BoolVar(&cfg.TelemetryEnabled, "telemetry", cfg.TelemetryEnabled, "Export traces and metrics to the log directory")
	flag.DurationVar(&cfg.MetricsInterval, "metrics-interval", cfg.MetricsInterval, "How often metrics are exported")
	flag.BoolVar(&cfg.HistoryEnabled, "history", cfg.HistoryEnabled, "Record generated messages in the history database")
	flag.StringVar(&cfg.HistoryPath, "history-path", cfg.HistoryPath, "Path to the history database (default <log-dir>/callinghome.db)")
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := telemetry.InitLogger(cfg.LogDir, cfg.EffectiveLogLevel())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer closeLog()

	if cfg.Debug {
		logger.Info("Debug mode enabled")
	}

	sess, err := app.NewSession(cfg)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	ctx := context.Background()
	var opts []app.Option

	if cfg.TelemetryEnabled {
		tracer, meter, cleanup, err := telemetry.InitTelemetry(ctx, telemetry.Options{
			Dir:            cfg.LogDir,
			MetricInterval: cfg.MetricsInterval,
			SessionID:      sess.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer cleanup()
		opts = append(opts, app.WithTelemetry(tracer, meter))
	}

	if cfg.HistoryEnabled {
		store, err := history.Open(cfg.HistoryFile())
		if err != nil {
			return fmt.Errorf("failed to initialize history: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Error("failed to close history", "error", err)
			}
		}()
		opts = append(opts, app.WithHistory(store))
	}

	con := console.New(os.Stdin, os.Stdout, console.NewPalette(cfg.Color, os.Stdout))

	a, err := app.New(cfg, con, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	return a.RunSession(ctx, sess)
}
