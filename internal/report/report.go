// Package report derives read-only views of a ledger document.
package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// Window selects the calendar period a report covers.
type Window int

const (
	Today Window = iota
	ThisMonth
	ThisYear
	AllTime
)

var windowNames = map[Window]string{
	Today:     "today",
	ThisMonth: "month",
	ThisYear:  "year",
	AllTime:   "all",
}

func (w Window) String() string {
	if n, ok := windowNames[w]; ok {
		return n
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// ParseWindow accepts today/day/daily, month/monthly, year/yearly and all.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "day", "daily":
		return Today, nil
	case "month", "monthly", "":
		return ThisMonth, nil
	case "year", "yearly":
		return ThisYear, nil
	case "all":
		return AllTime, nil
	}
	return 0, fmt.Errorf("unknown report window %q (want today, month, year or all)", s)
}

// Contains reports whether t falls in the window around now, using now's
// calendar (location).
func (w Window) Contains(t, now time.Time) bool {
	t = t.In(now.Location())
	switch w {
	case Today:
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case ThisMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case ThisYear:
		return t.Year() == now.Year()
	default:
		return true
	}
}

// Summary totals the transactions and expenses of one window.
type Summary struct {
	Window    Window
	Count     int
	Revenue   decimal.Decimal
	StaffEarn decimal.Decimal
	SalonEarn decimal.Decimal
	Expenses  decimal.Decimal
	// NetProfit is SalonEarn minus Expenses.
	NetProfit decimal.Decimal
}

// Summarize totals doc over w.
func Summarize(doc *model.Document, w Window, now time.Time) Summary {
	s := Summary{Window: w}
	for _, tx := range Transactions(doc, w, now) {
		s.Count++
		s.Revenue = s.Revenue.Add(tx.Total)
		s.StaffEarn = s.StaffEarn.Add(tx.StaffEarn)
		s.SalonEarn = s.SalonEarn.Add(tx.SalonEarn)
	}
	for _, e := range doc.Expenses {
		if w.Contains(e.Date, now) {
			s.Expenses = s.Expenses.Add(e.Amount)
		}
	}
	s.NetProfit = s.SalonEarn.Sub(s.Expenses)
	return s
}

// Transactions returns the transactions in w, oldest first.
func Transactions(doc *model.Document, w Window, now time.Time) []model.Transaction {
	var out []model.Transaction
	for _, tx := range doc.Transactions {
		if w.Contains(tx.Timestamp, now) {
			out = append(out, tx)
		}
	}
	return out
}

// ServiceTransactions keeps only service sales.
func ServiceTransactions(txs []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if tx.IsService() {
			out = append(out, tx)
		}
	}
	return out
}

// Recent returns up to n transactions, newest first.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		return nil
	}
	if n > len(txs) {
		n = len(txs)
	}
	out := slices.Clone(txs[len(txs)-n:])
	slices.Reverse(out)
	return out
}

// StaffCommission is one row of the monthly commission listing.
type StaffCommission struct {
	StaffID  string
	Name     string
	Sections model.SectionSet
	Daily    decimal.Decimal
	Monthly  decimal.Decimal
	Yearly   decimal.Decimal
}

// StaffCommissions lists each staff member's running totals as stored.
// Monthly is the amount a payout would pay today.
func StaffCommissions(doc *model.Document) []StaffCommission {
	rows := make([]StaffCommission, 0, len(doc.Staff))
	for _, s := range doc.Staff {
		rows = append(rows, StaffCommission{
			StaffID:  s.ID,
			Name:     s.Name,
			Sections: s.Sections,
			Daily:    s.Daily,
			Monthly:  s.Monthly,
			Yearly:   s.Yearly,
		})
	}
	return rows
}

// ExpensesIn returns the expenses dated inside w.
func ExpensesIn(doc *model.Document, w Window, now time.Time) []model.Expense {
	var out []model.Expense
	for _, e := range doc.Expenses {
		if w.Contains(e.Date, now) {
			out = append(out, e)
		}
	}
	return out
}

// TotalMonthlyCommission sums every staff member's monthly accrual.
func TotalMonthlyCommission(doc *model.Document) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(doc.Staff))
	for i, s := range doc.Staff {
		amounts[i] = s.Monthly
	}
	return money.Sum(amounts...)
}
