package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/id"
	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// PaySalary pays out a staff member's monthly commission. Daily and monthly
// both roll into yearly and are reset to zero.
func (l *Ledger) PaySalary(ctx context.Context, staffID string) (model.SalaryRecord, error) {
	return commit(ctx, l, func(now time.Time) (model.SalaryRecord, []Change, error) {
		staff, err := l.lookupStaff(staffID)
		if err != nil {
			return model.SalaryRecord{}, nil, err
		}
		if staff == nil {
			return model.SalaryRecord{}, nil, fmt.Errorf("%w: no staff given", ErrStaffNotFound)
		}
		if !staff.Monthly.IsPositive() {
			return model.SalaryRecord{}, nil, fmt.Errorf("%w: %s has %s", ErrNothingToPay, staff.Name, money.Format(staff.Monthly))
		}

		ids := make([]string, len(l.doc.SalaryHistory))
		for i, r := range l.doc.SalaryHistory {
			ids[i] = r.ID
		}
		rec := model.SalaryRecord{
			ID:           entryID(id.PrefixSalary, now, ids),
			StaffID:      staff.ID,
			StaffName:    staff.Name,
			AmountPaid:   staff.Monthly,
			MovedDaily:   staff.Daily,
			MovedMonthly: staff.Monthly,
			MovedTotal:   staff.Daily.Add(staff.Monthly),
			Timestamp:    now,
			Year:         now.Year(),
			Month:        int(now.Month()),
		}

		staff.Yearly = staff.Yearly.Add(rec.MovedTotal)
		staff.Daily = decimal.Zero
		staff.Monthly = decimal.Zero
		l.doc.SalaryHistory = append(l.doc.SalaryHistory, rec)

		return rec, []Change{{
			Action:   ActionPaySalary,
			RecordID: rec.ID,
			Details:  fmt.Sprintf("paid %s to %s, moved %s to yearly", money.Format(rec.AmountPaid), rec.StaffName, money.Format(rec.MovedTotal)),
		}}, nil
	})
}

// SalaryHistory returns a copy of all payouts, oldest first.
func (l *Ledger) SalaryHistory() []model.SalaryRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.SalaryRecord{}, l.doc.SalaryHistory...)
}
