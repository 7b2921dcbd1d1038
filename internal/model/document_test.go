package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_EmptyCollections(t *testing.T) {
	doc := NewDocument(User{Username: "admin", Role: RoleAdmin})

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"staff":[]`)
	assert.Contains(t, s, `"transactions":[]`)
	assert.Contains(t, s, `"salaryHistory":[]`)
	assert.Contains(t, s, `"expenses":[]`)
}

func TestNormalize(t *testing.T) {
	doc := &Document{}
	doc.Normalize()
	assert.Equal(t, SchemaVersion, doc.Version)
	assert.NotNil(t, doc.Staff)
	assert.NotNil(t, doc.Products)
	assert.NotNil(t, doc.Expenses)
}

func TestLookups(t *testing.T) {
	doc := NewDocument(User{Username: "Admin"})
	doc.Staff = append(doc.Staff, Staff{ID: "STF-0001", Name: "Rina"})
	doc.Products = append(doc.Products, Product{ID: "PRD-0001", Name: "Shampoo"})
	doc.Expenses = append(doc.Expenses, Expense{ID: "EXP-2025-01-001", Title: "Rent"})

	require.NotNil(t, doc.StaffByID("STF-0001"))
	assert.Nil(t, doc.StaffByID("STF-9999"))
	require.NotNil(t, doc.ProductByID("PRD-0001"))
	require.NotNil(t, doc.ExpenseByID("EXP-2025-01-001"))

	assert.NotNil(t, doc.UserByName("Admin"))
	assert.Nil(t, doc.UserByName("admin"), "usernames are case-sensitive")

	// Pointers alias the slice element.
	doc.StaffByID("STF-0001").Accrue(decimal.NewFromInt(10))
	assert.True(t, doc.Staff[0].Yearly.Equal(decimal.NewFromInt(10)))
}

func TestTransactionIsService(t *testing.T) {
	assert.True(t, Transaction{ProductName: "Nail art (MANICURE)"}.IsService())
	assert.False(t, Transaction{ProductID: "PRD-0001"}.IsService())
}

func TestClone_IsDeep(t *testing.T) {
	pct := decimal.NewFromInt(10)
	doc := NewDocument(User{Username: "admin", Role: RoleAdmin})
	doc.Staff = append(doc.Staff, Staff{ID: "STF-0001", Name: "Rina", Sections: SectionSet{SectionBarber}, CommissionPercent: &pct})
	doc.Products = append(doc.Products, Product{ID: "PRD-0001", Name: "Comb", Stock: 3})
	doc.Sequences = map[string]int{"STF": 1}

	c := doc.Clone()
	c.Sequences["STF"] = 7
	c.Staff[0].Sections[0] = SectionManicure
	*c.Staff[0].CommissionPercent = decimal.NewFromInt(99)
	c.Products[0].Stock = 0
	c.Users[0].Username = "changed"

	assert.Equal(t, SectionBarber, doc.Staff[0].Sections[0])
	assert.True(t, doc.Staff[0].CommissionPercent.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 3, doc.Products[0].Stock)
	assert.Equal(t, "admin", doc.Users[0].Username)
	assert.Equal(t, 1, doc.Sequences["STF"])
}
