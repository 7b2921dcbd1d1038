package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/snapshot"
)

func newBackupCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [FILE]",
		Short: "Write the whole ledger to a JSON backup file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				path := filepath.Join(s.dir, "backups", "salonledger-"+c.now().Format("2006-01-02-150405")+".json")
				if len(args) > 0 {
					path = args[0]
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("creating backup dir: %w", err)
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating backup: %w", err)
				}
				if err := snapshot.Export(f, s.ledger.Snapshot()); err != nil {
					f.Close()
					return fmt.Errorf("writing backup: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("writing backup: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backed up to %s\n", path)
				return nil
			})
		},
	}
}

func newRestoreCommand(c *cli) *cobra.Command {
	var previous bool

	cmd := &cobra.Command{
		Use:   "restore [FILE]",
		Short: "Replace the ledger with a backup file or the previous snapshot",
		Long: `Replace the whole ledger with the contents of a backup file.
The file is validated first; nothing changes if it fails.

With --previous, the snapshot kept from before the last save is restored instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if previous == (len(args) == 1) {
				return errors.New("give either a backup FILE or --previous")
			}
			return c.run(cmd, func(s *session) error {
				var doc *model.Document
				var err error
				source := "previous snapshot"
				if previous {
					doc, err = s.store.LoadBackup(cmd.Context())
				} else {
					source = args[0]
					doc, err = importBackup(args[0])
				}
				if err != nil {
					return fmt.Errorf("restoring from %s: %w", source, err)
				}
				if err := s.ledger.Replace(cmd.Context(), doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %d staff, %d products, %d transactions from %s\n",
					len(doc.Staff), len(doc.Products), len(doc.Transactions), source)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&previous, "previous", false, "restore the snapshot kept by the last save")
	return cmd
}

func importBackup(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()
	return snapshot.Import(f)
}

func newClearCommand(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase all data and start over with only the admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("clear erases every record; pass --yes to confirm")
			}
			return c.run(cmd, func(s *session) error {
				doc, err := seedDocument(s.cfg, s.logger)()
				if err != nil {
					return err
				}
				if err := s.ledger.Replace(cmd.Context(), doc); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm erasing all data")
	return cmd
}
