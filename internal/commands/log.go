package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/activitylog"
	"github.com/harmonic-pos/salonledger/internal/gitops"
)

func newLogCommand(c *cli) *cobra.Command {
	var limit int
	var history bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				if history {
					if !gitops.IsRepo(s.dir) {
						return fmt.Errorf("%s has no git history (init with --git)", s.dir)
					}
					commits, err := gitops.Log(cmd.Context(), s.dir, limit)
					if err != nil {
						return err
					}
					for _, e := range commits {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", e.Hash, e.Subject)
					}
					return nil
				}

				if err := s.recorder.Flush(); err != nil {
					return err
				}
				entries, err := activitylog.Read(s.dir)
				if err != nil {
					return err
				}
				if limit > 0 && len(entries) > limit {
					entries = entries[len(entries)-limit:]
				}
				tw := newTable(cmd.OutOrStdout(), "TIME", "ACTOR", "ACTION", "RECORD", "DETAILS")
				for i := len(entries) - 1; i >= 0; i-- {
					e := entries[i]
					row(tw, e.Timestamp.In(c.now().Location()).Format(time.DateTime), e.Actor, e.Action, orDash(e.RecordID), e.Details)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most n entries")
	cmd.Flags().BoolVar(&history, "history", false, "show git commits instead of the activity log")
	return cmd
}
