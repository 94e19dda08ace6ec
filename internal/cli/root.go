// Package cli wires flags, config, and the telemetry source together
// and launches the dashboard.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gpudeck/gpudeck/internal/config"
	"github.com/gpudeck/gpudeck/internal/logger"
	"github.com/gpudeck/gpudeck/internal/source"
	"github.com/gpudeck/gpudeck/internal/tracker"
	"github.com/gpudeck/gpudeck/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "gpudeck",
	Short: "Live terminal dashboard for NVIDIA GPU telemetry",
	Long: `gpudeck polls per-device GPU metrics in the background and renders
them as a grid of cards: gauges for memory, fan, temperature, and
power, or the processes running on each device.

Keys: q quits, p toggles between the gauge and process views.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	fl := rootCmd.Flags()
	fl.Duration("interval", time.Second, "polling interval")
	fl.String("source", config.SourceNVSMI, "telemetry source: nvsmi, nvml, or demo")
	fl.Int("width", 0, "cap card width in columns, 0 fits the terminal")
	fl.String("log-file", "", "write logs to this file")
	fl.Bool("debug", false, "log at debug level")

	viper.SetEnvPrefix("GPUDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(fl)
}

// SetVersionInfo records build metadata injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

// loadConfig resolves flags and GPUDECK_* environment overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	cfg.Interval = viper.GetDuration("interval")
	cfg.Source = viper.GetString("source")
	cfg.CardWidth = viper.GetInt("width")
	cfg.LogFile = viper.GetString("log-file")
	cfg.Debug = viper.GetBool("debug")
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logger.Sync(log)

	src, cleanup, err := buildSource(cfg, log)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// The construction-time poll fixes the device count; failure here
	// means the dashboard never starts.
	trk, err := tracker.New(context.Background(), src)
	if err != nil {
		return err
	}
	log.Info("session started",
		zap.Int("devices", trk.NumDevices()),
		zap.String("source", cfg.Source),
		zap.Duration("interval", cfg.Interval))

	loop := tracker.NewLoop(trk, cfg.Interval, log)
	return ui.Run(cfg, trk, loop, log)
}

func buildSource(cfg config.Config, log *zap.Logger) (source.SnapshotSource, func(), error) {
	switch cfg.Source {
	case config.SourceNVML:
		s, err := source.NewNVMLSource(log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.SourceDemo:
		return demoSource(), nil, nil
	default:
		return source.NewNVSMISource(log), nil, nil
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
