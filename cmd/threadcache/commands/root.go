package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"threadcache-backend/cmd/threadcache/globals"
	"threadcache-backend/internal/parser"
	"threadcache-backend/internal/telemetry"
	"threadcache-backend/lib/configutil"
	libtelemetry "threadcache-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "threadcache.json5", "The config file, searched for upwards from the cwd when not found.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
}

var rootCmd = &cobra.Command{
	Use:           "threadcache",
	Short:         "threadcache parses saved forum thread and review pages into cache records.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		libtelemetry.InitSlog(verbose)

		config, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		err = libtelemetry.Setup(cmd.Context(), "threadcache", config.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		if config.Telemetry.Otlp.Metrics.Enabled() {
			libtelemetry.InstrumentPerfStats(cmd.Context(), 15*time.Second)
		}

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config:    config,
			Parser:    parser.NewParser(config.Site),
			Telemetry: telemetry.NewScopedAPI("threadcache", telemetry.SlogAPI{}),
		}))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return libtelemetry.Shutdown(context.Background())
	},
}

func loadConfig(path string) (globals.Config, error) {
	var config globals.Config
	var err error
	if filepath.Base(path) == path {
		config, err = configutil.ReadRecursively[globals.Config](path)
	} else {
		config, err = configutil.ReadConfig[globals.Config](path)
	}
	if errors.Is(err, configutil.ErrNotFound) {
		slog.Debug("no config file found, using defaults", "path", path)
		return globals.DefaultConfig, nil
	}
	if err != nil {
		return globals.Config{}, fmt.Errorf("read config: %w", err)
	}
	return configutil.WithDefaults(config, globals.DefaultConfig)
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
