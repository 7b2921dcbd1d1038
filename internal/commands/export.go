package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/journal"
)

func newExportCommand(c *cli) *cobra.Command {
	var out string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export COLLECTION",
		Short: "Export a collection as CSV",
		Long: fmt.Sprintf(`Export a collection as CSV. COLLECTION is one of: %s.

The file goes to <dir>/exports/<collection>-<date>.csv unless --out is set.`,
			strings.Join(journal.CollectionNames(), ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: journal.CollectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, ok := journal.Collections[args[0]]
			if !ok {
				return fmt.Errorf("unknown collection %q (want one of %s)", args[0], strings.Join(journal.CollectionNames(), ", "))
			}
			return c.run(cmd, func(s *session) error {
				var buf bytes.Buffer
				if err := write(&buf, s.ledger.Snapshot()); err != nil {
					return fmt.Errorf("exporting %s: %w", args[0], err)
				}
				if stdout {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				path := out
				if path == "" {
					path = filepath.Join(s.dir, "exports", fmt.Sprintf("%s-%s.csv", args[0], c.now().Format(dateLayout)))
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("creating export dir: %w", err)
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print instead of writing a file")
	return cmd
}
