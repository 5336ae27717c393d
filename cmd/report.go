package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/inovacc/fieldlog/internal/export"
	"github.com/inovacc/fieldlog/internal/ledger"
	"github.com/inovacc/fieldlog/internal/model"
	"github.com/inovacc/fieldlog/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "File, list and export work reports",
}

var reportAddCmd = &cobra.Command{
	Use:   "add",
	Short: "File a work report as a technician",
	Long: `File a work report. The report is attributed to the technician who
authenticates, whatever technician an edited report carried before.

Pass --id to edit an existing report instead of filing a new one.

Examples:
  fieldlog report add --tech "Juan Pérez" --project 10001 --vehicle "Furgoneta 1 (1234-BBC)" \
      --start 08:00 --end 15:30 --desc "Filter change" --driver --food 12.5`,
	Args: cobra.NoArgs,
	RunE: runReportAdd,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports (admin)",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show a technician's most recent reports",
	Args:  cobra.NoArgs,
	RunE:  runReportRecent,
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a report (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDelete,
}

var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export reports as CSV (admin)",
	Long: `Export the reports matching the filters as CSV. Without --out the file
is written to the current directory and named after the filters, e.g.
partes_trabajo_JuanPérez_10001.csv. Use --out - for stdout.`,
	Args: cobra.NoArgs,
	RunE: runReportExport,
}

var (
	reportTech     string
	reportPassword string
	reportAdminPwd string
	reportInput    model.WorkReport
	reportFilter   ledger.Filter
	reportRecentN  int
	reportOut      string
	reportYes      bool
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportAddCmd, reportListCmd, reportRecentCmd, reportDeleteCmd, reportExportCmd)

	f := reportAddCmd.Flags()
	f.StringVar(&reportTech, "tech", "", "Technician filing the report (required)")
	f.StringVar(&reportPassword, "password", "", "Technician password (prompted when empty)")
	f.StringVar(&reportInput.ID, "id", "", "Existing report id to edit")
	f.StringVar(&reportInput.ProjectNum, "project", "", "5-digit project number (required)")
	f.StringVar(&reportInput.Date, "date", time.Now().Format(time.DateOnly), "Date, YYYY-MM-DD")
	f.StringVar(&reportInput.StartTime, "start", "", "Start time, HH:MM")
	f.StringVar(&reportInput.EndTime, "end", "", "End time, HH:MM")
	f.StringVar(&reportInput.Description, "desc", "", "Work description")
	f.StringVar(&reportInput.Vehicle, "vehicle", "", "Vehicle used (required)")
	f.BoolVar(&reportInput.IsDriver, "driver", false, "The technician drove the vehicle")
	f.Float64Var(&reportInput.Expenses.Food, "food", 0, "Food expenses")
	f.Float64Var(&reportInput.Expenses.Gas, "gas", 0, "Fuel expenses")
	f.Float64Var(&reportInput.Expenses.Parking, "parking", 0, "Parking expenses")
	f.Float64Var(&reportInput.Expenses.Others, "others", 0, "Other expenses")
	f.StringVar(&reportInput.Expenses.OthersDesc, "others-desc", "", "Description of other expenses")
	f.StringSliceVar(&reportInput.ImageNames, "image", nil, "Attached image name (repeatable)")

	_ = reportAddCmd.MarkFlagRequired("tech")
	_ = reportAddCmd.MarkFlagRequired("project")
	_ = reportAddCmd.MarkFlagRequired("vehicle")

	addFilterFlags(reportListCmd.Flags(), &reportFilter)
	addFilterFlags(reportExportCmd.Flags(), &reportFilter)

	for _, c := range []*cobra.Command{reportListCmd, reportDeleteCmd, reportExportCmd} {
		c.Flags().StringVar(&reportAdminPwd, "admin-password", "", "Admin password (prompted when empty)")
	}

	reportRecentCmd.Flags().StringVar(&reportTech, "tech", "", "Technician (required)")
	reportRecentCmd.Flags().StringVar(&reportPassword, "password", "", "Technician password (prompted when empty)")
	reportRecentCmd.Flags().IntVarP(&reportRecentN, "count", "n", 5, "Number of reports")
	_ = reportRecentCmd.MarkFlagRequired("tech")

	reportExportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output file, directory or - for stdout")
	reportDeleteCmd.Flags().BoolVarP(&reportYes, "yes", "y", false, "Skip confirmation prompt")
}

func runReportAdd(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		tech, err := requireTechnician(ctrl.Snapshot(), reportTech, reportPassword)
		if err != nil {
			return err
		}

		doc, err := ctrl.Mutate(ledger.SaveReport(reportInput, tech.Name))
		if err != nil {
			return err
		}

		action := "Filed"
		if reportInput.ID != "" {
			action = "Updated"
		}

		// SaveReport puts new reports first and edits in place
		id := doc.Reports[0].ID
		if reportInput.ID != "" {
			id = reportInput.ID
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s report %s (%s)\n", action, id, ctrl.Status())

		return nil
	})
}

func runReportList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		doc := ctrl.Snapshot()
		if err := requireAdmin(doc, reportAdminPwd); err != nil {
			return err
		}

		reports := reportFilter.Apply(doc.Reports)
		printReports(reports)
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d reports\n", len(reports), len(doc.Reports))

		return nil
	})
}

func runReportRecent(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		doc := ctrl.Snapshot()

		tech, err := requireTechnician(doc, reportTech, reportPassword)
		if err != nil {
			return err
		}

		printReports(ledger.RecentReports(doc, tech.Name, reportRecentN))

		return nil
	})
}

func runReportDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		if err := requireAdmin(ctrl.Snapshot(), reportAdminPwd); err != nil {
			return err
		}

		if !reportYes && !promptConfirm(fmt.Sprintf("Delete report %s? [y/N]: ", args[0])) {
			_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
			return nil
		}

		if _, err := ctrl.Mutate(ledger.DeleteReport(args[0])); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "Deleted report %s\n", args[0])

		return nil
	})
}

func runReportExport(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		doc := ctrl.Snapshot()
		if err := requireAdmin(doc, reportAdminPwd); err != nil {
			return err
		}

		reports := reportFilter.Apply(doc.Reports)

		if reportOut == "-" {
			return export.WriteCSV(os.Stdout, reports)
		}

		path := exportPath(reportOut, export.Filename(reportFilter))

		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}

		if err := export.WriteCSV(file, reports); err != nil {
			_ = file.Close()
			return err
		}

		if err := file.Close(); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "Exported %d reports to %s\n", len(reports), path)

		return nil
	})
}

// exportPath resolves --out: empty means the current directory, a directory
// gets the generated name.
func exportPath(out, name string) string {
	if out == "" {
		return name
	}

	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, name)
	}

	return out
}

func printReports(reports []model.WorkReport) {
	if len(reports) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No reports.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDATE\tTECHNICIAN\tPROJECT\tHOURS\tVEHICLE\tDESCRIPTION")

	for _, r := range reports {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s-%s\t%s\t%s\n",
			truncateString(r.ID, 12), r.Date, r.Technician, r.ProjectNum,
			r.StartTime, r.EndTime, truncateString(r.Vehicle, 24), truncateString(r.Description, 40))
	}

	_ = w.Flush()
}
