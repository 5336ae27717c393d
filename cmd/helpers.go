package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/inovacc/fieldlog/internal/cache"
	"github.com/inovacc/fieldlog/internal/database"
	"github.com/inovacc/fieldlog/internal/ledger"
	"github.com/inovacc/fieldlog/internal/model"
	"github.com/inovacc/fieldlog/internal/remote"
	"github.com/inovacc/fieldlog/internal/store"
)

// session is an opened document: the controller and the database under it.
type session struct {
	ctrl *store.Controller
	db   database.Store
}

// openSession opens the local cache, loads the document and, when a
// connection configuration is set, waits up to [sync] wait for the first
// remote snapshot.
func openSession(ctx context.Context, opts ...store.Option) (*session, error) {
	db, err := database.Open(database.Backend(cfg.Cache.Backend), cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	opts = append([]store.Option{
		store.WithLogger(slog.Default()),
		store.WithMirrorOptions(remote.WithPushTimeout(cfg.Sync.PushTimeout)),
	}, opts...)

	ctrl := store.New(cache.New(db), opts...)

	if _, err := ctrl.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Sync.Wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, cfg.Sync.Wait)
		err := ctrl.WaitSynced(waitCtx)
		cancel()

		if errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("remote not synced yet, continuing with the local copy", slog.Duration("waited", cfg.Sync.Wait))
		}
	}

	return &session{ctrl: ctrl, db: db}, nil
}

// Close pushes pending writes within the push timeout, then closes the cache.
func (s *session) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sync.PushTimeout)
	defer cancel()

	if err := s.ctrl.Close(ctx); err != nil {
		slog.Warn("pending pushes not delivered", slog.Any("error", err))
	}

	if err := s.db.Close(); err != nil {
		slog.Warn("close cache", slog.Any("error", err))
	}
}

// withSession runs fn against an opened session.
func withSession(ctx context.Context, fn func(*store.Controller) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s.ctrl)
}

// requireAdmin checks password, prompting for it when empty.
func requireAdmin(doc model.Document, password string) error {
	if password == "" {
		var err error

		password, err = readPassword("Admin password: ")
		if err != nil {
			return err
		}
	}

	return ledger.AuthenticateAdmin(doc, password)
}

// requireTechnician checks a technician's password, prompting for it when
// empty.
func requireTechnician(doc model.Document, name, password string) (model.TechUser, error) {
	if password == "" {
		var err error

		password, err = readPassword(fmt.Sprintf("Password for %s: ", name))
		if err != nil {
			return model.TechUser{}, err
		}
	}

	return ledger.AuthenticateTechnician(doc, name, password)
}

// readPassword reads a password from the terminal without echoing
func readPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(os.Stderr)

		if err != nil {
			return "", err
		}

		return string(password), nil
	}

	// Fallback for non-terminal (piped input)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}

	return "", fmt.Errorf("failed to read password")
}

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Delete this file? [y/N]: ")
func promptConfirm(prompt string) bool {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}

// printList prints one entry per line, or a hint when there are none.
func printList(kind, addCmd string, entries []string) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No %s configured.\n", kind)
		_, _ = fmt.Fprintf(os.Stdout, "Add one with: %s\n", addCmd)

		return
	}

	for _, e := range entries {
		_, _ = fmt.Fprintln(os.Stdout, e)
	}
}
