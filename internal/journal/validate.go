package journal

import (
	"fmt"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// Rule names reported by ValidateDocument.
const (
	RuleBalanced     = "balanced"
	RuleTwoPlaces    = "two-places"
	RuleAccruals     = "accruals"
	RuleSections     = "sections"
	RuleProduct      = "product"
	RuleSalaryRollup = "salary-rollup"
	RuleExpense      = "expense"
	RuleUniqueIDs    = "unique-ids"
	RuleQuantity     = "quantity"
	RuleUsers        = "users"
)

// ValidationError describes a single integrity violation in a document.
type ValidationError struct {
	Rule        string
	RecordID    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.RecordID, e.Description)
}

// ValidateDocument checks every collection of doc and returns all violations.
func ValidateDocument(doc *model.Document) []ValidationError {
	var errs []ValidationError

	if len(doc.Users) == 0 {
		errs = append(errs, ValidationError{Rule: RuleUsers, RecordID: "-", Description: "document has no users"})
	}

	seen := make(map[string]bool)
	unique := func(kind, id string) {
		key := kind + "/" + id
		if seen[key] {
			errs = append(errs, ValidationError{Rule: RuleUniqueIDs, RecordID: id, Description: fmt.Sprintf("duplicate %s id", kind)})
		}
		seen[key] = true
	}

	for _, s := range doc.Staff {
		unique("staff", s.ID)
		if len(s.Sections) == 0 {
			errs = append(errs, ValidationError{Rule: RuleSections, RecordID: s.ID, Description: "staff has no sections"})
		}
		if s.Daily.IsNegative() || s.Monthly.IsNegative() || s.Yearly.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:        RuleAccruals,
				RecordID:    s.ID,
				Description: fmt.Sprintf("negative accrual daily=%s monthly=%s yearly=%s", s.Daily, s.Monthly, s.Yearly),
			})
		}
	}

	for _, p := range doc.Products {
		unique("product", p.ID)
		if !p.Price.IsPositive() {
			errs = append(errs, ValidationError{Rule: RuleProduct, RecordID: p.ID, Description: fmt.Sprintf("price %s must be positive", p.Price)})
		}
		if p.Stock < 0 {
			errs = append(errs, ValidationError{Rule: RuleProduct, RecordID: p.ID, Description: fmt.Sprintf("stock %d is negative", p.Stock)})
		}
	}

	for _, tx := range doc.Transactions {
		unique("transaction", tx.ID)
		if !tx.StaffEarn.Add(tx.SalonEarn).Equal(tx.Total) {
			errs = append(errs, ValidationError{
				Rule:        RuleBalanced,
				RecordID:    tx.ID,
				Description: fmt.Sprintf("staff (%s) + salon (%s) != total (%s)", money.Format(tx.StaffEarn), money.Format(tx.SalonEarn), money.Format(tx.Total)),
			})
		}
		if tx.Quantity < 1 {
			errs = append(errs, ValidationError{Rule: RuleQuantity, RecordID: tx.ID, Description: fmt.Sprintf("quantity %d must be positive", tx.Quantity)})
		}
		if !money.HasAtMostTwoPlaces(tx.Total) || !money.HasAtMostTwoPlaces(tx.StaffEarn) {
			errs = append(errs, ValidationError{
				Rule:        RuleTwoPlaces,
				RecordID:    tx.ID,
				Description: fmt.Sprintf("amounts total=%s staffEarn=%s carry more than 2 decimal places", tx.Total, tx.StaffEarn),
			})
		}
	}

	for _, rec := range doc.SalaryHistory {
		unique("salary", rec.ID)
		if !rec.MovedDaily.Add(rec.MovedMonthly).Equal(rec.MovedTotal) {
			errs = append(errs, ValidationError{
				Rule:        RuleSalaryRollup,
				RecordID:    rec.ID,
				Description: fmt.Sprintf("moved daily (%s) + monthly (%s) != total (%s)", money.Format(rec.MovedDaily), money.Format(rec.MovedMonthly), money.Format(rec.MovedTotal)),
			})
		}
	}

	for _, e := range doc.Expenses {
		unique("expense", e.ID)
		if !e.Amount.IsPositive() {
			errs = append(errs, ValidationError{Rule: RuleExpense, RecordID: e.ID, Description: fmt.Sprintf("amount %s must be positive", e.Amount)})
		}
	}

	return errs
}
