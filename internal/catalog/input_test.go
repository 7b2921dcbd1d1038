package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonic-pos/salonledger/internal/model"
)

func TestSplitNames(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Ana", []string{"Ana"}},
		{"Ana, Budi\nCici", []string{"Ana", "Budi", "Cici"}},
		{" Ana ,,\r\n, Budi ", []string{"Ana", "Budi"}},
		{" , \n", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitNames(tt.raw), "SplitNames(%q)", tt.raw)
	}
}

func TestParseProductLines(t *testing.T) {
	defaults := ProductDraft{Price: decimal.RequireFromString("10.00"), Stock: 3}
	raw := "Shampoo | 45 | 12\nConditioner\r\n\nComb | | 7\nWax | 19.999"

	drafts, err := ParseProductLines(raw, defaults)
	require.NoError(t, err)
	require.Len(t, drafts, 4)

	assert.Equal(t, "Shampoo", drafts[0].Name)
	assert.Equal(t, "45.00", drafts[0].Price.StringFixed(2))
	assert.Equal(t, 12, drafts[0].Stock)

	assert.Equal(t, "Conditioner", drafts[1].Name)
	assert.Equal(t, "10.00", drafts[1].Price.StringFixed(2))
	assert.Equal(t, 3, drafts[1].Stock)

	assert.Equal(t, "Comb", drafts[2].Name)
	assert.Equal(t, "10.00", drafts[2].Price.StringFixed(2))
	assert.Equal(t, 7, drafts[2].Stock)

	assert.Equal(t, "20.00", drafts[3].Price.StringFixed(2))
	assert.Equal(t, 3, drafts[3].Stock)
}

func TestParseProductLines_Errors(t *testing.T) {
	_, err := ParseProductLines("Shampoo | abc", ProductDraft{})
	assert.ErrorContains(t, err, "line 1")

	_, err = ParseProductLines("ok\nComb | 5 | many", ProductDraft{})
	assert.ErrorContains(t, err, "line 2")

	_, err = ParseProductLines("a | 1 | 2 | 3", ProductDraft{})
	assert.ErrorContains(t, err, "too many fields")
}

func TestSplitServiceEntry(t *testing.T) {
	tests := []struct {
		entry       string
		wantName    string
		wantSection string
	}{
		{"Gel Polish", "Gel Polish", "MANICURE"},
		{"Foot Spa (PEDICURE)", "Foot Spa", "PEDICURE"},
		{" Fade Cut ( barber ) ", "Fade Cut", "barber"},
		{"(BARBER)", "(BARBER)", "MANICURE"},
		{"Odd ()", "Odd ()", "MANICURE"},
		{"Gel Polish (long lasting)", "Gel Polish (long lasting)", "MANICURE"},
		{"Nail Art (2 hands)", "Nail Art (2 hands)", "MANICURE"},
		{"Hot Towel (SPA)", "Hot Towel (SPA)", "MANICURE"},
	}
	allowed := model.NewSectionSet("MANICURE", "PEDICURE", "BARBER")
	for _, tt := range tests {
		name, section := SplitServiceEntry(tt.entry, "MANICURE", allowed)
		assert.Equal(t, tt.wantName, name, tt.entry)
		assert.Equal(t, tt.wantSection, section, tt.entry)
	}
}
