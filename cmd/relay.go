package cmd

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inovacc/fieldlog/internal/database"
	"github.com/inovacc/fieldlog/internal/relay"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay server commands",
	Long:  `The relay holds the shared document and streams every accepted write to all connected devices.`,
}

var relayServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay",
	Long: `Run the relay on the configured address until interrupted with Ctrl+C
or SIGTERM, or until idle for --idle-timeout (0 runs indefinitely). A relay
with connected devices is never idle.

Devices connect with a connection configuration such as:

  {"endpoint":"<this host>:7070","projectId":"crew-north"}`,
	Args: cobra.NoArgs,
	RunE: runRelayServe,
}

var (
	relayListen      string
	relayBackend     string
	relayPath        string
	relayIdleTimeout time.Duration
)

const relayShutdownTimeout = 30 * time.Second

func init() {
	rootCmd.AddCommand(relayCmd)
	relayCmd.AddCommand(relayServeCmd)

	relayServeCmd.Flags().StringVarP(&relayListen, "listen", "l", "", "Address to listen on (default from config: 127.0.0.1:7070)")
	relayServeCmd.Flags().Var(newEnumValue(&relayBackend, "bolt", "sqlite", "memory"), "backend", "Storage backend: bolt, sqlite or memory")
	relayServeCmd.Flags().StringVar(&relayPath, "db", "", "Storage path")
	relayServeCmd.Flags().DurationVar(&relayIdleTimeout, "idle-timeout", 0, "Shutdown after being idle for this duration (0 to disable)")
}

func runRelayServe(cmd *cobra.Command, _ []string) error {
	section := cfg.Relay

	if cmd.Flags().Changed("listen") {
		section.Listen = relayListen
	}

	if cmd.Flags().Changed("backend") {
		section.Backend = relayBackend
	}

	if cmd.Flags().Changed("db") {
		section.Path = relayPath
	}

	if cmd.Flags().Changed("idle-timeout") {
		section.IdleTimeout = relayIdleTimeout
	}

	logger := slog.Default().With(slog.String("component", "relay"))

	db, err := database.Open(database.Backend(section.Backend), section.Path)
	if err != nil {
		return fmt.Errorf("open relay storage: %w", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("close relay storage", slog.Any("error", err))
		}
	}()

	svc, err := relay.NewService(db, logger)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", section.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", section.Listen, err)
	}

	srv := relay.NewServer(svc, section.IdleTimeout, logger)

	if srv.IdleTracker.IsEnabled() {
		logger.Info("idle timeout enabled", slog.Duration("idle_timeout", section.IdleTimeout))
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		return srv.Serve(lis)
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			logger.Info("received shutdown signal")
		case <-srv.IdleTracker.ShutdownChan():
			logger.Info("relay idle, shutting down", slog.Duration("idle_timeout", section.IdleTimeout))
		}

		srv.Shutdown(relayShutdownTimeout)

		return nil
	})

	return g.Wait()
}
