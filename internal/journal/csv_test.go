package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonic-pos/salonledger/internal/model"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func serviceTx() model.Transaction {
	return model.Transaction{
		ID:                "TX-2025-01-001",
		Kind:              model.SaleService,
		ProductName:       "Gel polish, extra coat (MANICURE)",
		Section:           model.SectionManicure,
		Quantity:          1,
		UnitPrice:         dec("100.00"),
		Total:             dec("100.00"),
		StaffID:           "STF-0001",
		StaffName:         "Rina",
		StaffEarn:         dec("40.00"),
		SalonEarn:         dec("60.00"),
		CommissionPercent: dec("40"),
		PaymentMethod:     model.PaymentCash,
		Timestamp:         testTime,
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	original := serviceTx()

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, []model.Transaction{original}))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	tx := got[0]
	assert.Equal(t, original.ID, tx.ID)
	assert.Equal(t, original.ProductName, tx.ProductName, "commas in names must survive quoting")
	assert.Equal(t, original.Section, tx.Section)
	assert.True(t, original.Total.Equal(tx.Total))
	assert.True(t, original.StaffEarn.Equal(tx.StaffEarn))
	assert.True(t, original.SalonEarn.Equal(tx.SalonEarn))
	assert.True(t, original.Timestamp.Equal(tx.Timestamp))
	assert.True(t, tx.IsService())
}

func TestMarshalTransaction_FixedPlaces(t *testing.T) {
	tx := serviceTx()
	tx.Total = dec("100")
	row := MarshalTransaction(tx)
	assert.Len(t, row, numTxFields)
	assert.Equal(t, "100.00", row[colTxTotal])
	assert.Equal(t, "2025-01-15T10:30:00Z", row[colTxTime])
}

func TestUnmarshalTransaction_BadFieldCount(t *testing.T) {
	_, err := UnmarshalTransaction([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 15 fields")
}

func TestReadTransactions_Empty(t *testing.T) {
	got, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWriteStaff_OverrideAndSections(t *testing.T) {
	override := dec("7.5")
	staff := []model.Staff{
		{ID: "STF-0001", Name: "Rina", Sections: model.SectionSet{model.SectionManicure, model.SectionPedicure}, CommissionPercent: &override},
		{ID: "STF-0002", Name: "Budi", Sections: model.SectionSet{model.SectionBarber}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStaff(&buf, staff))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, StaffHeader, lines[0])
	assert.Equal(t, "STF-0001,Rina,MANICURE;PEDICURE,7.5,0.00,0.00,0.00", lines[1])
	assert.Equal(t, "STF-0002,Budi,BARBER,,0.00,0.00,0.00", lines[2])
}

func TestCollections(t *testing.T) {
	doc := model.NewDocument(model.User{Username: "admin"})
	doc.Transactions = append(doc.Transactions, serviceTx())
	doc.Products = append(doc.Products, model.Product{ID: "PRD-0001", Name: "Shampoo", Price: dec("50"), Stock: 3})
	doc.Expenses = append(doc.Expenses, model.Expense{ID: "EXP-2025-01-001", Title: "Rent", Amount: dec("500"), Date: testTime, PaymentMethod: model.PaymentTransfer})
	doc.SalaryHistory = append(doc.SalaryHistory, model.SalaryRecord{ID: "SAL-2025-01-001", StaffID: "STF-0001", StaffName: "Rina", AmountPaid: dec("120"), MovedDaily: dec("30"), MovedMonthly: dec("120"), MovedTotal: dec("150"), Timestamp: testTime, Year: 2025, Month: 1})

	assert.Equal(t, []string{"expenses", "products", "salaryHistory", "staff", "transactions"}, CollectionNames())

	for _, name := range CollectionNames() {
		var buf bytes.Buffer
		require.NoError(t, Collections[name](&buf, doc), name)
		assert.NotEmpty(t, buf.String(), name)
	}

	var buf bytes.Buffer
	require.NoError(t, Collections["expenses"](&buf, doc))
	assert.Contains(t, buf.String(), "EXP-2025-01-001,Rent,500.00,2025-01-15,Transfer")

	buf.Reset()
	require.NoError(t, Collections["salaryHistory"](&buf, doc))
	assert.Contains(t, buf.String(), "SAL-2025-01-001,STF-0001,Rina,120.00,30.00,120.00,150.00")
}
