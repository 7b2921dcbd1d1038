package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonic-pos/salonledger/internal/model"
)

func TestMonthlyProfitText(t *testing.T) {
	text, err := MonthlyProfitText(sampleDocument(), now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Monthly Salon Profit Report (Detailed)\nMonth: 3/2025\n"))
	assert.Contains(t, text, "Total Revenue: 250.00\n")
	assert.Contains(t, text, "Total Staff Earn: 82.50\n")
	assert.Contains(t, text, "Total Salon Earn: 167.50\n")
	assert.Contains(t, text, "Net Profit: 137.50\n")
	assert.Contains(t, text, "TX-2025-03-003 | 2025-03-14 11:00 | Cut (BARBER) | 1 | 100.00 | Rina | 40.00 | 60.00 | \n")
	assert.NotContains(t, text, "TX-2025-02-001")
}

func TestMonthlyProfitText_Empty(t *testing.T) {
	_, err := MonthlyProfitText(sampleDocument(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestSalarySlipText(t *testing.T) {
	s := model.Staff{ID: "STF-0001", Name: "Rina Putri", Sections: model.SectionSet{model.SectionBarber}, Monthly: dec("120")}

	text := SalarySlipText(s, now)
	assert.Equal(t, "Staff Salary Report\nName: Rina Putri\nID: STF-0001\nSections: BARBER\nMonth: 3/2025\nAmount: 120.00\n", text)
	assert.Equal(t, "salary_Rina_Putri_2025-03-14.txt", SalarySlipFileName(s, now))
	assert.Equal(t, "salon_full_month_profit_2025_03.txt", MonthlyProfitFileName(now))
}
