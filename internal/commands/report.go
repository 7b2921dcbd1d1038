package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/report"
)

func newReportCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Earnings, commission and profit reports",
	}
	cmd.AddCommand(
		newReportSummaryCommand(c),
		newReportStaffCommand(c),
		newReportTransactionsCommand(c),
		newReportProfitCommand(c),
		newReportSlipCommand(c),
	)
	return cmd
}

func newReportSummaryCommand(c *cli) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Revenue, staff and salon earnings and net profit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := report.ParseWindow(window)
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session) error {
				sum := report.Summarize(s.ledger.Snapshot(), w, c.now())
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Window:       %s\n", sum.Window)
				fmt.Fprintf(out, "Transactions: %d\n", sum.Count)
				fmt.Fprintf(out, "Revenue:      %s\n", amount(sum.Revenue))
				fmt.Fprintf(out, "Staff earn:   %s\n", amount(sum.StaffEarn))
				fmt.Fprintf(out, "Salon earn:   %s\n", amount(sum.SalonEarn))
				fmt.Fprintf(out, "Expenses:     %s\n", amount(sum.Expenses))
				fmt.Fprintf(out, "Net profit:   %s\n", amount(sum.NetProfit))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "month", "today, month, year or all")
	return cmd
}

func newReportStaffCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "staff",
		Short: "Commission owed to each staff member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				doc := s.ledger.Snapshot()
				tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "SECTIONS", "DAILY", "MONTHLY", "YEARLY")
				for _, sc := range report.StaffCommissions(doc) {
					row(tw, sc.StaffID, sc.Name, sc.Sections, amount(sc.Daily), amount(sc.Monthly), amount(sc.Yearly))
				}
				row(tw, "", "TOTAL", "", "", amount(report.TotalMonthlyCommission(doc)), "")
				return tw.Flush()
			})
		},
	}
}

func newReportTransactionsCommand(c *cli) *cobra.Command {
	var window string
	var services bool
	var limit int

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List sales, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := report.ParseWindow(window)
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session) error {
				txs := report.Transactions(s.ledger.Snapshot(), w, c.now())
				if services {
					txs = report.ServiceTransactions(txs)
				}
				if limit <= 0 {
					limit = len(txs)
				}
				loc := c.now().Location()
				tw := newTable(cmd.OutOrStdout(), "ID", "TIME", "ITEM", "SECTION", "QTY", "TOTAL", "STAFF", "STAFF EARN", "SALON EARN", "PAYMENT")
				for _, tx := range report.Recent(txs, limit) {
					row(tw, tx.ID, tx.Timestamp.In(loc).Format("2006-01-02 15:04"), tx.ProductName, orDash(string(tx.Section)),
						tx.Quantity, amount(tx.Total), orDash(tx.StaffName), amount(tx.StaffEarn), amount(tx.SalonEarn), tx.PaymentMethod)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "today", "today, month, year or all")
	cmd.Flags().BoolVar(&services, "services", false, "only service sales")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n transactions (0 for all)")
	return cmd
}

func writeReport(cmd *cobra.Command, dir, name, text string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func newReportProfitCommand(c *cli) *cobra.Command {
	var outDir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Detailed monthly profit report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				now := c.now()
				text, err := report.MonthlyProfitText(s.ledger.Snapshot(), now)
				if err != nil {
					return err
				}
				if stdout {
					fmt.Fprint(cmd.OutOrStdout(), text)
					return nil
				}
				dir := outDir
				if dir == "" {
					dir = filepath.Join(s.dir, "reports")
				}
				return writeReport(cmd, dir, report.MonthlyProfitFileName(now), text)
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the report (default <dir>/reports)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print instead of writing a file")
	return cmd
}

func newReportSlipCommand(c *cli) *cobra.Command {
	var outDir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "slip STAFF_ID",
		Short: "Salary slip for a staff member's current month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				st, err := s.ledger.StaffMember(args[0])
				if err != nil {
					return err
				}
				now := c.now()
				text := report.SalarySlipText(st, now)
				if stdout {
					fmt.Fprint(cmd.OutOrStdout(), text)
					return nil
				}
				dir := outDir
				if dir == "" {
					dir = filepath.Join(s.dir, "reports")
				}
				return writeReport(cmd, dir, report.SalarySlipFileName(st, now), text)
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the slip (default <dir>/reports)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print instead of writing a file")
	return cmd
}
