package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/buildinfo"
)

// cli carries global flags and process-wide collaborators to every command.
type cli struct {
	dir      string
	debug    bool
	operator string

	logger *slog.Logger
	now    func() time.Time
	// shared is the open session while the interactive shell runs.
	shared *session
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRoot(&cli{now: time.Now})
}

func newRoot(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "salonledger",
		Short:   "Commission and earnings ledger for a salon",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if c.debug {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.dir, "dir", ".", "data directory")
	rootCmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&c.operator, "operator", "", "name recorded in the activity log (default: configured admin)")

	rootCmd.AddCommand(
		newInitCommand(c),
		newStaffCommand(c),
		newProductCommand(c),
		newSellCommand(c),
		newPayCommand(c),
		newExpenseCommand(c),
		newReportCommand(c),
		newExportCommand(c),
		newBackupCommand(c),
		newRestoreCommand(c),
		newClearCommand(c),
		newUserCommand(c),
		newLogCommand(c),
		newShellCommand(c),
	)

	return rootCmd
}
