package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harmonic-pos/salonledger/internal/id"
	"github.com/harmonic-pos/salonledger/internal/model"
)

// commit runs mutate under the lock and saves when it succeeds. mutate must
// return an error before touching the document if the input is invalid.
func commit[T any](ctx context.Context, l *Ledger, mutate func(now time.Time) (T, []Change, error)) (T, error) {
	l.mu.Lock()
	now := l.now()
	out, changes, err := mutate(now)
	if err != nil {
		l.mu.Unlock()
		var zero T
		return zero, err
	}
	err = l.save(ctx)
	l.mu.Unlock()
	for _, c := range changes {
		c.At = now
		l.notify(c)
	}
	return out, err
}

func (l *Ledger) lookupStaff(staffID string) (*model.Staff, error) {
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return nil, nil
	}
	s := l.doc.StaffByID(staffID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrStaffNotFound, staffID)
	}
	return s, nil
}

func (l *Ledger) paymentMethod(raw string) (model.PaymentMethod, error) {
	pm, ok := model.MatchPaymentMethod(raw, l.payments)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPayment, raw)
	}
	return pm, nil
}

func (l *Ledger) section(raw string) (model.Section, error) {
	sec := model.ParseSection(raw)
	if sec == "" || !l.sections.Has(sec) {
		return "", fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidSection, raw, l.sections)
	}
	return sec, nil
}

func (l *Ledger) sectionSet(raw []string) (model.SectionSet, error) {
	set := model.NewSectionSet(raw...)
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: at least one section is required", ErrInvalidSection)
	}
	for _, sec := range set {
		if !l.sections.Has(sec) {
			return nil, fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidSection, sec, l.sections)
		}
	}
	return set, nil
}

func entryID(prefix string, now time.Time, existing []string) string {
	y, m := now.Year(), int(now.Month())
	return id.FormatEntryID(prefix, y, m, id.NextEntrySeq(prefix, y, m, existing))
}

func (l *Ledger) transactionIDs() []string {
	ids := make([]string, len(l.doc.Transactions))
	for i, tx := range l.doc.Transactions {
		ids[i] = tx.ID
	}
	return ids
}
