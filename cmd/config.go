package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the fieldlog configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	_, _ = fmt.Fprintf(os.Stdout, "Config file: %s\n\n", configPath)
	_, _ = fmt.Fprintf(os.Stdout, "[cache]\nbackend = %s\npath    = %s\n\n", cfg.Cache.Backend, cfg.Cache.Path)
	_, _ = fmt.Fprintf(os.Stdout, "[log]\nlevel  = %s\nformat = %s\n\n", cfg.Log.Level, cfg.Log.Format)
	_, _ = fmt.Fprintf(os.Stdout, "[sync]\nwait         = %s\npush_timeout = %s\n\n", cfg.Sync.Wait, cfg.Sync.PushTimeout)
	_, _ = fmt.Fprintf(os.Stdout, "[relay]\nlisten       = %s\nbackend      = %s\npath         = %s\nidle_timeout = %s\n",
		cfg.Relay.Listen, cfg.Relay.Backend, cfg.Relay.Path, cfg.Relay.IdleTimeout)

	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Wrote %s\n", configPath)

	return nil
}
