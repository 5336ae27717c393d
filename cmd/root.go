package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inovacc/fieldlog/internal/config"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg is loaded once per invocation by the root PersistentPreRunE
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Work report log with optional shared sync",
	Long: `Fieldlog keeps technicians' work reports, the technician, project and
vehicle lists and the shared settings in one document on this device.

When a connection configuration is set (see 'fieldlog settings set'), the
document is mirrored through a relay so every device sees the same data.
The last write to reach the relay wins.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <config dir>/fieldlog/fieldlog.ini)")
	rootCmd.PersistentFlags().Var(newEnumValue(&logLevel, "debug", "info", "warn", "error"), "log-level", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Var(newEnumValue(&logFormat, "text", "json"), "log-format", "Log format: text or json")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	if configPath == "" {
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err = config.Load(configPath, dir)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := setupLogger(cfg.Log)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	return nil
}

// setupLogger creates the process logger. Logs go to stderr so command
// output on stdout stays clean.
func setupLogger(section config.LogSection) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(section.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if section.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler), nil
}
