package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/ledger"
)

func newStaffCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff members",
	}
	cmd.AddCommand(
		newStaffAddCommand(c),
		newStaffEditCommand(c),
		newStaffRemoveCommand(c),
		newStaffListCommand(c),
	)
	return cmd
}

func newStaffAddCommand(c *cli) *cobra.Command {
	var sections []string
	var percent string

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add staff members (names may also be comma separated)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := parsePercent(percent)
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session) error {
				added, err := s.ledger.AddStaff(cmd.Context(), ledger.StaffInput{
					Names:             strings.Join(args, ","),
					Sections:          sections,
					CommissionPercent: pct,
				})
				for _, st := range added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s [%s]\n", st.ID, st.Name, st.Sections)
				}
				return err
			})
		},
	}
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "sections worked, e.g. MANICURE,PEDICURE (required)")
	_ = cmd.MarkFlagRequired("sections")
	cmd.Flags().StringVar(&percent, "percent", "", "product commission override, e.g. 10")
	return cmd
}

func newStaffEditCommand(c *cli) *cobra.Command {
	var name, percent string
	var sections []string
	var clearPercent bool

	cmd := &cobra.Command{
		Use:   "edit STAFF_ID",
		Short: "Change a staff member's name, sections or commission override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd ledger.StaffUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("sections") {
				upd.Sections = sections
			}
			if cmd.Flags().Changed("percent") {
				pct, err := parsePercent(percent)
				if err != nil {
					return err
				}
				upd.CommissionPercent = pct
			}
			upd.ClearCommission = clearPercent
			return c.run(cmd, func(s *session) error {
				st, err := s.ledger.EditStaff(cmd.Context(), args[0], upd)
				if err != nil && st.ID == "" {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s [%s] override %s\n", st.ID, st.Name, st.Sections, overrideText(st))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "replace sections")
	cmd.Flags().StringVar(&percent, "percent", "", "set product commission override")
	cmd.Flags().BoolVar(&clearPercent, "clear-percent", false, "drop the override and use the default product percent")
	cmd.MarkFlagsMutuallyExclusive("percent", "clear-percent")
	return cmd
}

func newStaffRemoveCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rm STAFF_ID",
		Short: "Remove a staff member; past transactions keep the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				st, err := s.ledger.DeleteStaff(cmd.Context(), args[0])
				if err != nil && st.ID == "" {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", st.ID, st.Name)
				return err
			})
		},
	}
}

func newStaffListCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List staff members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "SECTIONS", "OVERRIDE", "DAILY", "MONTHLY", "YEARLY")
				for _, st := range s.ledger.Staff() {
					row(tw, st.ID, st.Name, st.Sections, overrideText(st), amount(st.Daily), amount(st.Monthly), amount(st.Yearly))
				}
				return tw.Flush()
			})
		},
	}
}
