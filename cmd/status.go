package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/inovacc/fieldlog/internal/model"
	"github.com/inovacc/fieldlog/internal/remote"
	"github.com/inovacc/fieldlog/internal/store"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(14)
	cloudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	localStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status and document summary",
	Long: `Show whether this device is synced through a relay (cloud) or working
on its local copy only (local), and summarize the document.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctrl *store.Controller) error {
		renderStatus(os.Stdout, statusView{
			status:  ctrl.Status(),
			state:   ctrl.State(),
			syncErr: ctrl.LastSyncError(),
			doc:     ctrl.Snapshot(),
			cache:   fmt.Sprintf("%s (%s)", cfg.Cache.Path, cfg.Cache.Backend),
		})

		return nil
	})
}

type statusView struct {
	status  remote.Status
	state   remote.State
	syncErr error
	doc     model.Document
	cache   string
}

func renderStatus(w io.Writer, v statusView) {
	syncLabel := localStyle.Render(string(v.status))
	if v.status == remote.StatusCloud {
		syncLabel = cloudStyle.Render(string(v.status))
	}

	rows := []string{
		row("Sync", fmt.Sprintf("%s (%s)", syncLabel, v.state)),
	}

	if v.syncErr != nil {
		rows = append(rows, row("Sync error", errorStyle.Render(v.syncErr.Error())))
	}

	if v.doc.ConnectionConfig == "" {
		rows = append(rows, row("Relay", "not configured"))
	} else if c, err := remote.ParseConfig(v.doc.ConnectionConfig); err == nil {
		rows = append(rows, row("Relay", c.Endpoint))
	}

	rows = append(rows,
		row("Cache", v.cache),
		row("Technicians", fmt.Sprint(len(v.doc.Technicians))),
		row("Projects", fmt.Sprint(len(v.doc.Projects))),
		row("Vehicles", fmt.Sprint(len(v.doc.Vehicles))),
		row("Reports", fmt.Sprint(len(v.doc.Reports))),
	)

	_, _ = fmt.Fprintln(w, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}
