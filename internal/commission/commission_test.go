package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/harmonic-pos/salonledger/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pct(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestProductSplit(t *testing.T) {
	policy := DefaultPolicy()
	tests := []struct {
		name      string
		staff     *model.Staff
		total     string
		wantStaff string
		wantSalon string
	}{
		{"no staff", nil, "100.00", "0.00", "100.00"},
		{"default percent", &model.Staff{}, "100.00", "5.00", "95.00"},
		{"override", &model.Staff{CommissionPercent: pct("12.5")}, "80.00", "10.00", "70.00"},
		{"explicit zero override", &model.Staff{CommissionPercent: pct("0")}, "100.00", "0.00", "100.00"},
		{"rounding", &model.Staff{CommissionPercent: pct("0.5")}, "33.33", "0.17", "33.16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := policy.ProductSplit(dec(tt.total), tt.staff)
			assert.True(t, s.StaffEarn.Equal(dec(tt.wantStaff)), "staff earn %s", s.StaffEarn)
			assert.True(t, s.SalonEarn.Equal(dec(tt.wantSalon)), "salon earn %s", s.SalonEarn)
			assert.True(t, s.StaffEarn.Add(s.SalonEarn).Equal(dec(tt.total)))
		})
	}
}

func TestServiceSplit_IgnoresOverride(t *testing.T) {
	policy := DefaultPolicy()

	s := policy.ServiceSplit(dec("100.00"), &model.Staff{CommissionPercent: pct("10")})
	assert.True(t, s.StaffEarn.Equal(dec("40.00")))
	assert.True(t, s.SalonEarn.Equal(dec("60.00")))
	assert.True(t, s.Percent.Equal(dec("40")))

	s = policy.ServiceSplit(dec("100.00"), nil)
	assert.True(t, s.StaffEarn.IsZero())
	assert.True(t, s.SalonEarn.Equal(dec("100.00")))
}

func TestConfiguredPercentages(t *testing.T) {
	policy := Policy{ProductPercent: dec("0.5"), ServicePercent: dec("35")}
	assert.True(t, policy.ProductSplit(dec("200"), &model.Staff{}).StaffEarn.Equal(dec("1.00")))
	assert.True(t, policy.ServiceSplit(dec("200"), &model.Staff{}).StaffEarn.Equal(dec("70.00")))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.Error(t, Policy{ProductPercent: dec("-1"), ServicePercent: dec("40")}.Validate())
	assert.Error(t, Policy{ProductPercent: dec("5"), ServicePercent: dec("100.01")}.Validate())
	assert.NoError(t, ValidatePercent(dec("100")))
}
