package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprint(col)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func amount(d decimal.Decimal) string {
	return money.Format(d)
}

func overrideText(s model.Staff) string {
	if s.CommissionPercent == nil {
		return "-"
	}
	return s.CommissionPercent.String() + "%"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func parsePercent(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return nil, fmt.Errorf("parsing percent %q: %w", s, err)
	}
	return &d, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func printTransaction(w io.Writer, tx model.Transaction) {
	fmt.Fprintf(w, "%s  %s x%d  total %s  staff %s %s  salon %s  %s\n",
		tx.ID, tx.ProductName, tx.Quantity, amount(tx.Total),
		orDash(tx.StaffName), amount(tx.StaffEarn), amount(tx.SalonEarn), tx.PaymentMethod)
}
