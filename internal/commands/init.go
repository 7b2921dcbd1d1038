package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/config"
	"github.com/harmonic-pos/salonledger/internal/gitops"
	"github.com/harmonic-pos/salonledger/internal/snapshot"
)

// dataDirs are created by init inside every data directory.
var dataDirs = []string{
	"logs",
	"reports",
	"backups",
	"exports",
	"import",
	filepath.Join("import", "processed"),
}

func newInitCommand(c *cli) *cobra.Command {
	var name string
	var driver string
	var history bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new salon data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := c.runInit(cmd, absDir, name, driver, history); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized salon ledger at %s (%s storage)\n", absDir, driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&driver, "driver", config.DriverFile, "storage driver: file, sqlite or bolt")
	cmd.Flags().BoolVar(&history, "git", false, "keep a git history of the data directory")

	return cmd
}

func (c *cli) runInit(cmd *cobra.Command, dir, name, driver string, history bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	for _, d := range dataDirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	cfg.Storage.Driver = driver
	cfg.Storage.Path = config.DefaultStoragePath(driver)
	cfg.Git.AutoCommit = history
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the first snapshot so the admin user exists before any command runs.
	store, err := snapshot.Open(cfg.Storage.Driver, cfg.StoragePath(dir))
	if err != nil {
		return fmt.Errorf("opening %s store: %w", driver, err)
	}
	_, _, err = snapshot.LoadOrSeed(cmd.Context(), store, seedDocument(cfg, c.logger), c.logger)
	if cerr := store.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing store: %w", cerr)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !history {
		return nil
	}
	if err := gitops.Init(cmd.Context(), dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	if _, err := gitops.Commit(cmd.Context(), dir, "init: Initialize "+name, author); err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	return nil
}
