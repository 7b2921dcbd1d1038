package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/activitylog"
	"github.com/harmonic-pos/salonledger/internal/auth"
	"github.com/harmonic-pos/salonledger/internal/config"
	"github.com/harmonic-pos/salonledger/internal/gitops"
	"github.com/harmonic-pos/salonledger/internal/ledger"
	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/snapshot"
)

// session is an open data directory: config, snapshot store and the ledger
// working on the loaded document.
type session struct {
	dir      string
	cfg      *config.Config
	store    snapshot.Store
	ledger   *ledger.Ledger
	recorder *activitylog.Recorder
	logger   *slog.Logger

	mu      sync.Mutex
	changes []ledger.Change
}

func (c *cli) openSession(ctx context.Context, hooks ...func(ledger.Change)) (*session, error) {
	dir, err := filepath.Abs(c.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config (run 'salonledger init' first?): %w", err)
	}

	store, err := snapshot.Open(cfg.Storage.Driver, cfg.StoragePath(dir))
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Driver, err)
	}
	doc, _, err := snapshot.LoadOrSeed(ctx, store, seedDocument(cfg, c.logger), c.logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	operator := c.operator
	if operator == "" {
		operator = cfg.Admin.Username
	}
	s := &session{
		dir:      dir,
		cfg:      cfg,
		store:    store,
		recorder: activitylog.NewRecorder(dir, operator),
		logger:   c.logger,
	}
	opts := []ledger.Option{
		ledger.WithPolicy(cfg.Policy()),
		ledger.WithSections(cfg.AllowedSections()),
		ledger.WithPaymentMethods(cfg.AllowedPaymentMethods()),
		ledger.WithClock(c.now),
		ledger.WithLogger(c.logger),
		ledger.WithHook(s.recorder.Record),
		ledger.WithHook(s.track),
	}
	for _, h := range hooks {
		opts = append(opts, ledger.WithHook(h))
	}
	s.ledger = ledger.New(doc, store, opts...)
	c.logger.Debug("session opened", "dir", dir, "driver", cfg.Storage.Driver)
	return s, nil
}

// seedDocument builds the first document of a data directory: one admin user.
func seedDocument(cfg *config.Config, logger *slog.Logger) func() (*model.Document, error) {
	return func() (*model.Document, error) {
		password, fromEnv := config.AdminPassword()
		if !fromEnv {
			logger.Warn("seeding admin with the default password, set SALONLEDGER_ADMIN_PASSWORD to change it",
				"username", cfg.Admin.Username)
		}
		admin, err := auth.NewUser(cfg.Admin.Username, password, model.RoleAdmin)
		if err != nil {
			return nil, err
		}
		return model.NewDocument(admin), nil
	}
}

func (s *session) track(c ledger.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, c)
}

// checkpoint writes the activity log and, when enabled, commits the data
// directory with a message naming the changes since the last checkpoint.
func (s *session) checkpoint(ctx context.Context) error {
	s.mu.Lock()
	changes := s.changes
	s.changes = nil
	s.mu.Unlock()

	if err := s.recorder.Flush(); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	if len(changes) == 0 || !s.cfg.Git.AutoCommit || !gitops.IsRepo(s.dir) {
		return nil
	}
	author := gitops.Author{Name: s.cfg.Git.AuthorName, Email: s.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(ctx, s.dir, commitMessage(changes), author)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	s.logger.Debug("history committed", "hash", hash, "changes", len(changes))
	return nil
}

// commitMessage summarizes changes as "<action>: <record>" plus a count of the rest.
func commitMessage(changes []ledger.Change) string {
	first := changes[0]
	subject := first.Action
	if first.RecordID != "" {
		subject += ": " + first.RecordID
	}
	if len(changes) == 1 {
		return subject
	}
	var body strings.Builder
	fmt.Fprintf(&body, "%s (+%d more)\n\n", subject, len(changes)-1)
	for _, c := range changes {
		fmt.Fprintf(&body, "%s %s %s\n", c.Action, c.RecordID, c.Details)
	}
	return body.String()
}

// close flushes pending side effects and releases the store.
func (s *session) close(ctx context.Context) error {
	var errs []error
	if s.ledger.Dirty() {
		if err := s.ledger.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.checkpoint(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing store: %w", err))
	}
	return errors.Join(errs...)
}

// run hands fn the open session, opening and closing one around fn unless
// the shell already holds one.
func (c *cli) run(cmd *cobra.Command, fn func(s *session) error) (err error) {
	if c.shared != nil {
		return fn(c.shared)
	}
	ctx := cmd.Context()
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(ctx); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(s)
}
