package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/fieldlog/internal/ledger"
	"github.com/inovacc/fieldlog/internal/model"
	"github.com/inovacc/fieldlog/internal/store"
)

// adminMutation authenticates the admin, applies m and prints done.
func adminMutation(cmd *cobra.Command, adminPwd string, m model.Mutation, done string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		if err := requireAdmin(ctrl.Snapshot(), adminPwd); err != nil {
			return err
		}

		if _, err := ctrl.Mutate(m); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s (%s)\n", done, ctrl.Status())

		return nil
	})
}

// catalog describes a plain string list in the document.
type catalog struct {
	name    string // singular, e.g. "project"
	plural  string
	list    func(model.Document) []string
	add     func(string) model.Mutation
	rename  func(string, string) model.Mutation
	remove  func(string) model.Mutation
	renameN string // note printed in rename help

	// extra adds subcommands sharing the --admin-password flag
	extra func(adminPwd *string) []*cobra.Command
}

// newCatalogCmd builds list/add/rename/remove subcommands for c.
func newCatalogCmd(c catalog) *cobra.Command {
	var (
		adminPwd string
		yes      bool
	)

	root := &cobra.Command{
		Use:   c.name,
		Short: fmt.Sprintf("Manage %s (admin)", c.plural),
	}

	root.PersistentFlags().StringVar(&adminPwd, "admin-password", "", "Admin password (prompted when empty)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + c.plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(ctrl *store.Controller) error {
				doc := ctrl.Snapshot()
				if err := requireAdmin(doc, adminPwd); err != nil {
					return err
				}

				printList(c.plural, fmt.Sprintf("fieldlog %s add <name>", c.name), c.list(doc))

				return nil
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a " + c.name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return adminMutation(cmd, adminPwd, c.add(args[0]), fmt.Sprintf("Added %s %s", c.name, args[0]))
		},
	}

	rename := &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a " + c.name,
		Long:  fmt.Sprintf("Rename a %s. %s", c.name, c.renameN),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return adminMutation(cmd, adminPwd, c.rename(args[0], args[1]),
				fmt.Sprintf("Renamed %s %s to %s", c.name, args[0], args[1]))
		},
	}

	remove := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a " + c.name,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !promptConfirm(fmt.Sprintf("Remove %s %q? [y/N]: ", c.name, args[0])) {
				_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}

			return adminMutation(cmd, adminPwd, c.remove(args[0]), fmt.Sprintf("Removed %s %s", c.name, args[0]))
		},
	}

	remove.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	root.AddCommand(list, add, rename, remove)

	if c.extra != nil {
		root.AddCommand(c.extra(&adminPwd)...)
	}

	return root
}

func init() {
	projectCmd := newCatalogCmd(catalog{
		name:    "project",
		plural:  "projects",
		list:    func(d model.Document) []string { return d.Projects },
		add:     ledger.AddProject,
		rename:  ledger.RenameProject,
		remove:  ledger.RemoveProject,
		renameN: "Reports keep their project number.",
		extra: func(adminPwd *string) []*cobra.Command {
			return []*cobra.Command{newProjectImportCmd(adminPwd)}
		},
	})

	vehicleCmd := newCatalogCmd(catalog{
		name:    "vehicle",
		plural:  "vehicles",
		list:    func(d model.Document) []string { return d.Vehicles },
		add:     ledger.AddVehicle,
		rename:  ledger.RenameVehicle,
		remove:  ledger.RemoveVehicle,
		renameN: "Reports that used the old name are rewritten.",
	})

	rootCmd.AddCommand(projectCmd, vehicleCmd)
}

func newProjectImportCmd(adminPwd *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import projects from a CSV or text file",
		Long: `Import one project per line. Commas and semicolons are turned into
" - ", so a spreadsheet saved as CSV with "12345;Label" rows becomes
"12345 - Label". Projects already in the list are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			return withSession(cmd.Context(), func(ctrl *store.Controller) error {
				before := ctrl.Snapshot()
				if err := requireAdmin(before, *adminPwd); err != nil {
					return err
				}

				after, err := ctrl.Mutate(ledger.ImportProjects(string(data)))
				if err != nil {
					return err
				}

				n := len(after.Projects) - len(before.Projects)
				if n == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No new projects found.")
					return nil
				}

				_, _ = fmt.Fprintf(os.Stdout, "Imported %d projects (%s)\n", n, ctrl.Status())

				return nil
			})
		},
	}
}
