package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonic-pos/salonledger/internal/model"
)

var now = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(id string, at time.Time, total, staff string, service bool) model.Transaction {
	t := model.Transaction{
		ID:          id,
		Kind:        model.SaleProduct,
		ProductID:   "PRD-0001",
		ProductName: "Shampoo",
		Quantity:    1,
		Total:       dec(total),
		StaffEarn:   dec(staff),
		SalonEarn:   dec(total).Sub(dec(staff)),
		StaffName:   "Rina",
		Timestamp:   at,
	}
	if service {
		t.Kind = model.SaleService
		t.ProductID = ""
		t.ProductName = "Cut (BARBER)"
	}
	return t
}

func sampleDocument() *model.Document {
	doc := model.NewDocument(model.User{Username: "admin", Role: model.RoleAdmin})
	doc.Transactions = []model.Transaction{
		tx("TX-2024-12-001", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), "80.00", "32.00", true),
		tx("TX-2025-02-001", time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC), "50.00", "2.50", false),
		tx("TX-2025-03-001", time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC), "100.00", "40.00", true),
		tx("TX-2025-03-002", time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC), "50.00", "2.50", false),
		tx("TX-2025-03-003", time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC), "100.00", "40.00", true),
	}
	doc.Expenses = []model.Expense{
		{ID: "EXP-2025-03-001", Title: "Rent", Amount: dec("30.00"), Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "EXP-2025-01-001", Title: "Towels", Amount: dec("12.00"), Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
	}
	doc.Staff = []model.Staff{
		{ID: "STF-0001", Name: "Rina", Sections: model.SectionSet{model.SectionBarber}, Daily: dec("30"), Monthly: dec("120"), Yearly: dec("500")},
		{ID: "STF-0002", Name: "Sari", Sections: model.SectionSet{model.SectionManicure}, Monthly: dec("15.50")},
	}
	return doc
}

func TestParseWindow(t *testing.T) {
	for in, want := range map[string]Window{"today": Today, "Daily": Today, "month": ThisMonth, "": ThisMonth, "YEARLY": ThisYear, "all": AllTime} {
		got, err := ParseWindow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseWindow("week")
	assert.Error(t, err)
}

func TestWindowContains_UsesLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	localNow := time.Date(2025, 3, 15, 8, 0, 0, 0, loc)
	// 2025-03-14 20:00 UTC is already the 15th in WIB.
	assert.True(t, Today.Contains(time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC), localNow))
	assert.False(t, Today.Contains(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC), localNow))
}

func TestSummarize(t *testing.T) {
	doc := sampleDocument()

	tests := []struct {
		w                                          Window
		count                                      int
		revenue, staff, salon, expenses, netProfit string
	}{
		{Today, 2, "150.00", "42.50", "107.50", "0.00", "107.50"},
		{ThisMonth, 3, "250.00", "82.50", "167.50", "30.00", "137.50"},
		{ThisYear, 4, "300.00", "85.00", "215.00", "42.00", "173.00"},
		{AllTime, 5, "380.00", "117.00", "263.00", "42.00", "221.00"},
	}
	for _, tt := range tests {
		s := Summarize(doc, tt.w, now)
		assert.Equal(t, tt.count, s.Count, tt.w.String())
		assert.Equal(t, tt.revenue, s.Revenue.StringFixed(2), tt.w.String())
		assert.Equal(t, tt.staff, s.StaffEarn.StringFixed(2), tt.w.String())
		assert.Equal(t, tt.salon, s.SalonEarn.StringFixed(2), tt.w.String())
		assert.Equal(t, tt.expenses, s.Expenses.StringFixed(2), tt.w.String())
		assert.Equal(t, tt.netProfit, s.NetProfit.StringFixed(2), tt.w.String())
		assert.True(t, s.StaffEarn.Add(s.SalonEarn).Equal(s.Revenue))
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(model.NewDocument(), ThisMonth, now)
	assert.Zero(t, s.Count)
	assert.True(t, s.NetProfit.IsZero())
}

func TestServiceTransactionsAndRecent(t *testing.T) {
	doc := sampleDocument()

	services := ServiceTransactions(doc.Transactions)
	require.Len(t, services, 3)
	for _, s := range services {
		assert.True(t, s.IsService())
	}

	recent := Recent(doc.Transactions, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "TX-2025-03-003", recent[0].ID)
	assert.Equal(t, "TX-2025-03-002", recent[1].ID)
	assert.Len(t, Recent(doc.Transactions, 50), 5)
	assert.Nil(t, Recent(doc.Transactions, 0))
	assert.Equal(t, "TX-2025-03-001", doc.Transactions[2].ID, "Recent must not reorder the input")
}

func TestStaffCommissions(t *testing.T) {
	doc := sampleDocument()
	rows := StaffCommissions(doc)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rina", rows[0].Name)
	assert.Equal(t, "120.00", rows[0].Monthly.StringFixed(2))
	assert.Equal(t, "135.50", TotalMonthlyCommission(doc).StringFixed(2))
}

func TestExpensesIn(t *testing.T) {
	doc := sampleDocument()
	assert.Len(t, ExpensesIn(doc, ThisMonth, now), 1)
	assert.Len(t, ExpensesIn(doc, ThisYear, now), 2)
}
