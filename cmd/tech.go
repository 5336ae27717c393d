package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inovacc/fieldlog/internal/ledger"
	"github.com/inovacc/fieldlog/internal/store"
)

var techCmd = &cobra.Command{
	Use:     "tech",
	Aliases: []string{"technician"},
	Short:   "Manage technicians (admin)",
}

var techListCmd = &cobra.Command{
	Use:   "list",
	Short: "List technicians",
	Args:  cobra.NoArgs,
	RunE:  runTechList,
}

var techAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a technician",
	Long: `Add a technician. Without --password the technician gets the default
password 1234.`,
	Args: cobra.ExactArgs(1),
	RunE: runTechAdd,
}

var techRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a technician and their reports",
	Long: `Rename a technician. Every report filed under the old name is
rewritten to the new one. --password also changes the password.`,
	Args: cobra.ExactArgs(2),
	RunE: runTechRename,
}

var techRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a technician (their reports are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runTechRemove,
}

var (
	techAdminPwd string
	techPassword string
	techYes      bool
)

func init() {
	rootCmd.AddCommand(techCmd)
	techCmd.AddCommand(techListCmd, techAddCmd, techRenameCmd, techRemoveCmd)

	techCmd.PersistentFlags().StringVar(&techAdminPwd, "admin-password", "", "Admin password (prompted when empty)")
	techAddCmd.Flags().StringVar(&techPassword, "password", "", "Technician password")
	techRenameCmd.Flags().StringVar(&techPassword, "password", "", "New technician password")
	techRemoveCmd.Flags().BoolVarP(&techYes, "yes", "y", false, "Skip confirmation prompt")
}

func runTechList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		doc := ctrl.Snapshot()
		if err := requireAdmin(doc, techAdminPwd); err != nil {
			return err
		}

		if len(doc.Technicians) == 0 {
			printList("technicians", "fieldlog tech add <name>", nil)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tREPORTS")

		for _, t := range doc.Technicians {
			n := len(ledger.Filter{Technician: t.Name}.Apply(doc.Reports))
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", truncateString(t.ID, 12), t.Name, n)
		}

		return w.Flush()
	})
}

func runTechAdd(cmd *cobra.Command, args []string) error {
	return adminMutation(cmd, techAdminPwd, ledger.AddTechnician(args[0], techPassword),
		fmt.Sprintf("Added technician %s", args[0]))
}

func runTechRename(cmd *cobra.Command, args []string) error {
	return adminMutation(cmd, techAdminPwd, ledger.RenameTechnician(args[0], args[1], techPassword),
		fmt.Sprintf("Renamed technician %s to %s", args[0], args[1]))
}

func runTechRemove(cmd *cobra.Command, args []string) error {
	if !techYes && !promptConfirm(fmt.Sprintf("Remove technician %q? [y/N]: ", args[0])) {
		_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
		return nil
	}

	return adminMutation(cmd, techAdminPwd, ledger.RemoveTechnician(args[0]),
		fmt.Sprintf("Removed technician %s", args[0]))
}
