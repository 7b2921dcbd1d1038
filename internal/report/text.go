package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// ErrNoTransactions is returned when a text report would be empty.
var ErrNoTransactions = errors.New("no transactions for this month")

const timestampLayout = "2006-01-02 15:04"

// MonthlyProfitText renders the detailed profit report for now's month.
func MonthlyProfitText(doc *model.Document, now time.Time) (string, error) {
	txs := Transactions(doc, ThisMonth, now)
	if len(txs) == 0 {
		return "", ErrNoTransactions
	}
	s := Summarize(doc, ThisMonth, now)

	var b strings.Builder
	b.WriteString("Monthly Salon Profit Report (Detailed)\n")
	fmt.Fprintf(&b, "Month: %d/%d\n\n", int(now.Month()), now.Year())
	fmt.Fprintf(&b, "Total Revenue: %s\n", money.Format(s.Revenue))
	fmt.Fprintf(&b, "Total Staff Earn: %s\n", money.Format(s.StaffEarn))
	fmt.Fprintf(&b, "Total Salon Earn: %s\n", money.Format(s.SalonEarn))
	fmt.Fprintf(&b, "Total Expenses: %s\n", money.Format(s.Expenses))
	fmt.Fprintf(&b, "Net Profit: %s\n\n", money.Format(s.NetProfit))
	b.WriteString("Transactions:\n")
	b.WriteString("ID | Date | Item | Qty | Total | Staff | StaffEarn | SalonEarn | Payment\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "%s | %s | %s | %d | %s | %s | %s | %s | %s\n",
			tx.ID,
			tx.Timestamp.In(now.Location()).Format(timestampLayout),
			tx.ProductName,
			tx.Quantity,
			money.Format(tx.Total),
			tx.StaffName,
			money.Format(tx.StaffEarn),
			money.Format(tx.SalonEarn),
			tx.PaymentMethod,
		)
	}
	return b.String(), nil
}

// MonthlyProfitFileName is the suggested file name for MonthlyProfitText.
func MonthlyProfitFileName(now time.Time) string {
	return fmt.Sprintf("salon_full_month_profit_%d_%02d.txt", now.Year(), int(now.Month()))
}

// SalarySlipText renders a salary slip for the staff member's current month.
func SalarySlipText(s model.Staff, now time.Time) string {
	var b strings.Builder
	b.WriteString("Staff Salary Report\n")
	fmt.Fprintf(&b, "Name: %s\n", s.Name)
	fmt.Fprintf(&b, "ID: %s\n", s.ID)
	fmt.Fprintf(&b, "Sections: %s\n", s.Sections)
	fmt.Fprintf(&b, "Month: %d/%d\n", int(now.Month()), now.Year())
	fmt.Fprintf(&b, "Amount: %s\n", money.Format(s.Monthly))
	return b.String()
}

// SalarySlipFileName is the suggested file name for SalarySlipText.
func SalarySlipFileName(s model.Staff, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, s.Name)
	return fmt.Sprintf("salary_%s_%s.txt", name, now.Format("2006-01-02"))
}
