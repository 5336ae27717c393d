package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inovacc/fieldlog/internal/ledger"
	"github.com/inovacc/fieldlog/internal/remote"
	"github.com/inovacc/fieldlog/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the shared settings (admin)",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the connection configuration",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the admin password or the connection configuration",
	Long: `Change the admin password and/or the connection configuration.

The connection configuration is the JSON an administrator receives for the
relay, for example:

  {"endpoint":"relay.example.com:7070","projectId":"crew-north","timeout":"5s"}

It is stored in the document but never overwritten by remote snapshots, so
each device keeps its own. An empty configuration means local-only mode.

Examples:
  fieldlog settings set --connection-config '{"endpoint":"10.0.0.5:7070"}'
  fieldlog settings set --connection-file relay.json
  fieldlog settings set --clear-connection
  fieldlog settings set --new-admin-password`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var (
	settingsAdminPwd     string
	settingsNewAdmin     bool
	settingsConnection   string
	settingsConnFile     string
	settingsClearConnect bool
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	settingsCmd.PersistentFlags().StringVar(&settingsAdminPwd, "admin-password", "", "Current admin password (prompted when empty)")

	f := settingsSetCmd.Flags()
	f.BoolVar(&settingsNewAdmin, "new-admin-password", false, "Prompt for a new admin password")
	f.StringVar(&settingsConnection, "connection-config", "", "Connection configuration JSON")
	f.StringVar(&settingsConnFile, "connection-file", "", "Read the connection configuration from a file")
	f.BoolVar(&settingsClearConnect, "clear-connection", false, "Remove the connection configuration (local-only mode)")

	settingsSetCmd.MarkFlagsMutuallyExclusive("connection-config", "connection-file", "clear-connection")
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		doc := ctrl.Snapshot()
		if err := requireAdmin(doc, settingsAdminPwd); err != nil {
			return err
		}

		if doc.ConnectionConfig == "" {
			_, _ = fmt.Fprintln(os.Stdout, "Connection: none (local only)")
			return nil
		}

		_, _ = fmt.Fprintf(os.Stdout, "Connection: %s\n", doc.ConnectionConfig)
		_, _ = fmt.Fprintf(os.Stdout, "Status:     %s\n", ctrl.Status())

		if err := ctrl.LastSyncError(); err != nil {
			_, _ = fmt.Fprintf(os.Stdout, "Error:      %v\n", err)
		}

		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	connChanged := cmd.Flags().Changed("connection-config") || settingsConnFile != "" || settingsClearConnect
	if !connChanged && !settingsNewAdmin {
		return errors.New("nothing to change: pass --new-admin-password or a connection flag")
	}

	conn := settingsConnection

	if settingsConnFile != "" {
		data, err := os.ReadFile(settingsConnFile)
		if err != nil {
			return fmt.Errorf("read connection file: %w", err)
		}

		conn = string(data)
	}

	conn = strings.TrimSpace(conn)

	// Reject what the mirror could never use before it reaches the document.
	if conn != "" {
		if _, err := remote.ParseConfig(conn); err != nil {
			return err
		}
	}

	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		doc := ctrl.Snapshot()
		if err := requireAdmin(doc, settingsAdminPwd); err != nil {
			return err
		}

		adminPwd := doc.AdminPassword
		if settingsNewAdmin {
			pwd, err := readNewPassword()
			if err != nil {
				return err
			}

			adminPwd = pwd
		}

		if !connChanged {
			conn = doc.ConnectionConfig
		}

		if _, err := ctrl.Mutate(ledger.UpdateSettings(adminPwd, conn)); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "Settings updated (%s)\n", ctrl.Status())

		if err := ctrl.LastSyncError(); err != nil {
			_, _ = fmt.Fprintf(os.Stdout, "Remote not reachable yet: %v\n", err)
		}

		return nil
	})
}

func readNewPassword() (string, error) {
	pwd, err := readPassword("New admin password: ")
	if err != nil {
		return "", err
	}

	confirm, err := readPassword("Repeat new admin password: ")
	if err != nil {
		return "", err
	}

	if pwd != confirm {
		return "", errors.New("passwords do not match")
	}

	return pwd, nil
}
