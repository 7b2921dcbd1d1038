package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/ledger"
	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
	"github.com/harmonic-pos/salonledger/internal/report"
)

func newExpenseCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record business expenses",
	}
	cmd.AddCommand(
		newExpenseAddCommand(c),
		newExpenseEditCommand(c),
		newExpenseRemoveCommand(c),
		newExpenseListCommand(c),
	)
	return cmd
}

func printExpense(w io.Writer, verb string, e model.Expense) {
	fmt.Fprintf(w, "%s %s %s %s on %s (%s)\n", verb, e.ID, e.Title, amount(e.Amount), e.Date.Format(dateLayout), e.PaymentMethod)
}

func newExpenseAddCommand(c *cli) *cobra.Command {
	var amt, date, payment string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := money.Parse(amt)
			if err != nil {
				return err
			}
			in := ledger.ExpenseInput{Title: args[0], Amount: a, PaymentMethod: payment}
			if date != "" {
				if in.Date, err = parseDate(date, c.now().Location()); err != nil {
					return err
				}
			}
			return c.run(cmd, func(s *session) error {
				e, err := s.ledger.AddExpense(cmd.Context(), in)
				if err != nil && e.ID == "" {
					return err
				}
				printExpense(cmd.OutOrStdout(), "Added", e)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&amt, "amount", "", "amount spent (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&payment, "payment", "", "payment method (default Cash)")
	return cmd
}

func newExpenseEditCommand(c *cli) *cobra.Command {
	var title, amt, date, payment string

	cmd := &cobra.Command{
		Use:   "edit EXPENSE_ID",
		Short: "Change an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd ledger.ExpenseUpdate
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("amount") {
				a, err := money.Parse(amt)
				if err != nil {
					return err
				}
				upd.Amount = &a
			}
			if cmd.Flags().Changed("date") {
				d, err := parseDate(date, c.now().Location())
				if err != nil {
					return err
				}
				upd.Date = &d
			}
			if cmd.Flags().Changed("payment") {
				upd.PaymentMethod = &payment
			}
			return c.run(cmd, func(s *session) error {
				e, err := s.ledger.EditExpense(cmd.Context(), args[0], upd)
				if err != nil && e.ID == "" {
					return err
				}
				printExpense(cmd.OutOrStdout(), "Updated", e)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&amt, "amount", "", "new amount")
	cmd.Flags().StringVar(&date, "date", "", "new date as YYYY-MM-DD")
	cmd.Flags().StringVar(&payment, "payment", "", "new payment method")
	return cmd
}

func newExpenseRemoveCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rm EXPENSE_ID",
		Short: "Remove an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				e, err := s.ledger.DeleteExpense(cmd.Context(), args[0])
				if err != nil && e.ID == "" {
					return err
				}
				printExpense(cmd.OutOrStdout(), "Removed", e)
				return err
			})
		},
	}
}

func newExpenseListCommand(c *cli) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := report.ParseWindow(window)
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session) error {
				expenses := report.ExpensesIn(s.ledger.Snapshot(), w, c.now())
				tw := newTable(cmd.OutOrStdout(), "ID", "DATE", "TITLE", "AMOUNT", "PAYMENT")
				for _, e := range expenses {
					row(tw, e.ID, e.Date.Format(dateLayout), e.Title, amount(e.Amount), e.PaymentMethod)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "all", "today, month, year or all")
	return cmd
}
