package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inovacc/fieldlog/internal/model"
	"github.com/inovacc/fieldlog/internal/remote"
	"github.com/inovacc/fieldlog/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stay connected and print document changes",
	Long: `Open the document, keep the remote mirror running and print a line
every time the document changes, until interrupted with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchInterval time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "status-interval", time.Minute, "How often to report the sync status (0 to disable)")
}

type change struct {
	doc    model.Document
	origin store.Origin
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	changes := make(chan change, 16)

	// The observer runs under the controller lock: never block it.
	observe := func(doc model.Document, origin store.Origin) {
		select {
		case changes <- change{doc: doc, origin: origin}:
		default:
			slog.Warn("watch output is behind, skipping a change")
		}
	}

	s, err := openSession(ctx, store.WithObserver(observe))
	if err != nil {
		return err
	}
	defer s.Close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case c := <-changes:
				printChange(c)
			}
		}
	})

	g.Go(func() error {
		if watchInterval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		last := remote.Status("")

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if st := s.ctrl.Status(); st != last {
					slog.Info("sync status", slog.String("status", string(st)), slog.Any("error", s.ctrl.LastSyncError()))
					last = st
				}
			}
		}
	})

	_, _ = fmt.Fprintf(os.Stdout, "Watching document (%s), press Ctrl+C to stop\n", s.ctrl.Status())

	return g.Wait()
}

func printChange(c change) {
	line := fmt.Sprintf("%s [%s] %d reports, %d technicians, %d projects, %d vehicles",
		time.Now().Format(time.TimeOnly), c.origin,
		len(c.doc.Reports), len(c.doc.Technicians), len(c.doc.Projects), len(c.doc.Vehicles))

	if len(c.doc.Reports) > 0 {
		r := c.doc.Reports[0]
		line += fmt.Sprintf("; latest %s %s %s", r.Date, r.Technician, r.ProjectNum)
	}

	_, _ = fmt.Fprintln(os.Stdout, line)
}
