package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/catalog"
	"github.com/harmonic-pos/salonledger/internal/ledger"
	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

func newProductCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}
	cmd.AddCommand(
		newProductAddCommand(c),
		newProductEditCommand(c),
		newProductRemoveCommand(c),
		newProductListCommand(c),
		newProductImportCommand(c),
	)
	return cmd
}

func newProductAddCommand(c *cli) *cobra.Command {
	var price string
	var stock int

	cmd := &cobra.Command{
		Use:   `add "NAME [| PRICE [| STOCK]]"...`,
		Short: "Add products; each argument is one line",
		Long: `Add one or more products. Each argument is a product line:
a bare name takes --price and --stock, and "name | price | stock"
sets its own values. Either every product is added or none is.

Example:
  salonledger product add "Shampoo | 50 | 10" "Conditioner | 45"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var defaults catalog.ProductDraft
			if price != "" {
				p, err := money.Parse(price)
				if err != nil {
					return err
				}
				defaults.Price = p
			}
			defaults.Stock = stock
			drafts, err := catalog.ParseProductLines(strings.Join(args, "\n"), defaults)
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session) error {
				added, err := s.ledger.AddProducts(cmd.Context(), drafts)
				printProducts(cmd.OutOrStdout(), "Added", added)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "price for lines that do not set one")
	cmd.Flags().IntVar(&stock, "stock", 0, "stock for lines that do not set one")
	return cmd
}

func printProducts(w io.Writer, verb string, products []model.Product) {
	for _, p := range products {
		fmt.Fprintf(w, "%s %s %s @ %s (stock %d)\n", verb, p.ID, p.Name, amount(p.Price), p.Stock)
	}
}

func newProductEditCommand(c *cli) *cobra.Command {
	var name, price string
	var stock int

	cmd := &cobra.Command{
		Use:   "edit PRODUCT_ID",
		Short: "Change a product's name, price or stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd ledger.ProductUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("price") {
				p, err := money.Parse(price)
				if err != nil {
					return err
				}
				upd.Price = &p
			}
			if cmd.Flags().Changed("stock") {
				upd.Stock = &stock
			}
			return c.run(cmd, func(s *session) error {
				p, err := s.ledger.EditProduct(cmd.Context(), args[0], upd)
				if err != nil && p.ID == "" {
					return err
				}
				printProducts(cmd.OutOrStdout(), "Updated", []model.Product{p})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&price, "price", "", "new price")
	cmd.Flags().IntVar(&stock, "stock", 0, "new stock level")
	return cmd
}

func newProductRemoveCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rm PRODUCT_ID",
		Short: "Remove a product; past transactions keep the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				p, err := s.ledger.DeleteProduct(cmd.Context(), args[0])
				if err != nil && p.ID == "" {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", p.ID, p.Name)
				return err
			})
		},
	}
}

func newProductListCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "PRICE", "STOCK")
				for _, p := range s.ledger.Products() {
					row(tw, p.ID, p.Name, amount(p.Price), p.Stock)
				}
				return tw.Flush()
			})
		},
	}
}

func newProductImportCommand(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import products from a file, or every file waiting in import/",
		Long: `Import products from a CSV (name,price,stock header) or a text file
with one "name | price | stock" line per product.

Without FILE, every .csv and .txt in <dir>/import/ is imported and moved
to import/processed/. A file that fails stays where it is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := catalog.DefaultRegistry()
			return c.run(cmd, func(s *session) error {
				if len(args) == 1 {
					f := format
					if f == "" {
						f = catalog.FormatForFile(args[0])
					}
					added, err := importFile(cmd, s, registry, args[0], f)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d product(s) from %s\n", len(added), filepath.Base(args[0]))
					return nil
				}

				files, err := catalog.Scan(s.dir)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No files to import.")
					return nil
				}
				var errs []error
				for _, fi := range files {
					added, err := importFile(cmd, s, registry, fi.Path, fi.Format)
					if err != nil {
						errs = append(errs, err)
						continue
					}
					if err := catalog.MarkProcessed(s.dir, fi.Name); err != nil {
						errs = append(errs, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d product(s) from %s\n", len(added), fi.Name)
				}
				return errors.Join(errs...)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "file format: "+strings.Join(catalog.DefaultRegistry().Formats(), " or ")+" (default: from extension)")
	return cmd
}

func importFile(cmd *cobra.Command, s *session, registry *catalog.Registry, path, format string) ([]model.Product, error) {
	parser, err := registry.Lookup(format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	drafts, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%s: no products found", filepath.Base(path))
	}
	added, err := s.ledger.AddProducts(cmd.Context(), drafts)
	if err != nil {
		return added, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return added, nil
}
