package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/ledger"
	"github.com/harmonic-pos/salonledger/internal/money"
)

func newSellCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Record a product or service sale",
	}
	cmd.AddCommand(newSellProductCommand(c), newSellServiceCommand(c))
	return cmd
}

func newSellProductCommand(c *cli) *cobra.Command {
	var qty int
	var price, staffID, payment string

	cmd := &cobra.Command{
		Use:   "product PRODUCT_ID",
		Short: "Sell stocked items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sale := ledger.ProductSale{
				ProductID:     args[0],
				Quantity:      qty,
				StaffID:       staffID,
				PaymentMethod: payment,
			}
			if price != "" {
				p, err := money.Parse(price)
				if err != nil {
					return err
				}
				sale.UnitPrice = &p
			}
			return c.run(cmd, func(s *session) error {
				tx, err := s.ledger.SellProduct(cmd.Context(), sale)
				if err != nil && tx.ID == "" {
					return err
				}
				printTransaction(cmd.OutOrStdout(), tx)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "quantity")
	cmd.Flags().StringVar(&price, "price", "", "unit price (default: catalog price)")
	cmd.Flags().StringVar(&staffID, "staff", "", "staff ID earning the commission")
	cmd.Flags().StringVar(&payment, "payment", "", "payment method (default Cash)")
	return cmd
}

func newSellServiceCommand(c *cli) *cobra.Command {
	var section, price, staffID, payment string

	cmd := &cobra.Command{
		Use:   "service NAME...",
		Short: "Record one or more services at the same price",
		Long: `Record services. Names may be separate arguments or comma separated.
A name may carry its own section, as in "Foot Spa (PEDICURE)".
Each service fails on its own; the rest are still recorded.

Example:
  salonledger sell service "Haircut, Beard Trim" --section BARBER --price 100 --staff STF-0001`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := money.Parse(price)
			if err != nil {
				return err
			}
			sale := ledger.ServiceSale{
				Section:       section,
				Price:         p,
				StaffID:       staffID,
				PaymentMethod: payment,
			}
			return c.run(cmd, func(s *session) error {
				res, err := s.ledger.SellServices(cmd.Context(), strings.Join(args, ","), sale)
				out := cmd.OutOrStdout()
				total := decimal.Zero
				for _, tx := range res.Sold {
					printTransaction(out, tx)
					total = total.Add(tx.Total)
				}
				for _, f := range res.Failed {
					fmt.Fprintf(out, "Skipped %q: %v\n", f.Name, f.Err)
				}
				if len(res.Sold) > 1 {
					fmt.Fprintf(out, "%d services recorded, total %s\n", len(res.Sold), amount(total))
				}
				if err != nil {
					return err
				}
				if len(res.Sold) == 0 && len(res.Failed) > 0 {
					return fmt.Errorf("no services recorded: %w", res.Failed[0].Err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "section for names without one")
	cmd.Flags().StringVar(&price, "price", "", "price of each service (required)")
	_ = cmd.MarkFlagRequired("price")
	cmd.Flags().StringVar(&staffID, "staff", "", "staff ID earning the commission")
	cmd.Flags().StringVar(&payment, "payment", "", "payment method (default Cash)")
	return cmd
}

func newPayCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pay STAFF_ID",
		Short: "Pay out a staff member's monthly commission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				rec, err := s.ledger.PaySalary(cmd.Context(), args[0])
				if rec.ID == "" {
					return fmt.Errorf("paying %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s paid %s %s (moved %s to yearly)\n",
					rec.ID, rec.StaffName, amount(rec.AmountPaid), amount(rec.MovedTotal))
				return err
			})
		},
	}
}
