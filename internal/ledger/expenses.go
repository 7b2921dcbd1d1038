package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/id"
	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// ExpenseInput records money spent. A zero Date means now.
type ExpenseInput struct {
	Title         string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentMethod string
}

// ExpenseUpdate changes an expense. Nil fields are left alone.
type ExpenseUpdate struct {
	Title         *string
	Amount        *decimal.Decimal
	Date          *time.Time
	PaymentMethod *string
}

func (l *Ledger) validateExpense(e *model.Expense) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return ErrInvalidName
	}
	e.Amount = money.Round2(e.Amount)
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: expense amount %s", ErrInvalidPrice, e.Amount)
	}
	return nil
}

// AddExpense appends an expense.
func (l *Ledger) AddExpense(ctx context.Context, in ExpenseInput) (model.Expense, error) {
	return commit(ctx, l, func(now time.Time) (model.Expense, []Change, error) {
		pm, err := l.paymentMethod(in.PaymentMethod)
		if err != nil {
			return model.Expense{}, nil, err
		}
		e := model.Expense{Title: in.Title, Amount: in.Amount, Date: in.Date, PaymentMethod: pm}
		if e.Date.IsZero() {
			e.Date = now
		}
		if err := l.validateExpense(&e); err != nil {
			return model.Expense{}, nil, err
		}
		ids := make([]string, len(l.doc.Expenses))
		for i, x := range l.doc.Expenses {
			ids[i] = x.ID
		}
		e.ID = entryID(id.PrefixExpense, e.Date, ids)
		l.doc.Expenses = append(l.doc.Expenses, e)
		return e, []Change{{Action: ActionAddExpense, RecordID: e.ID, Details: fmt.Sprintf("%s %s", e.Title, money.Format(e.Amount))}}, nil
	})
}

// EditExpense updates an expense in place.
func (l *Ledger) EditExpense(ctx context.Context, expenseID string, upd ExpenseUpdate) (model.Expense, error) {
	return commit(ctx, l, func(_ time.Time) (model.Expense, []Change, error) {
		cur := l.doc.ExpenseByID(expenseID)
		if cur == nil {
			return model.Expense{}, nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, expenseID)
		}
		next := *cur
		if upd.Title != nil {
			next.Title = *upd.Title
		}
		if upd.Amount != nil {
			next.Amount = *upd.Amount
		}
		if upd.Date != nil {
			next.Date = *upd.Date
		}
		if upd.PaymentMethod != nil {
			pm, err := l.paymentMethod(*upd.PaymentMethod)
			if err != nil {
				return model.Expense{}, nil, err
			}
			next.PaymentMethod = pm
		}
		if err := l.validateExpense(&next); err != nil {
			return model.Expense{}, nil, err
		}
		*cur = next
		return next, []Change{{Action: ActionEditExpense, RecordID: next.ID, Details: fmt.Sprintf("%s %s", next.Title, money.Format(next.Amount))}}, nil
	})
}

// DeleteExpense removes an expense.
func (l *Ledger) DeleteExpense(ctx context.Context, expenseID string) (model.Expense, error) {
	return commit(ctx, l, func(_ time.Time) (model.Expense, []Change, error) {
		for i, e := range l.doc.Expenses {
			if e.ID == expenseID {
				l.doc.Expenses = append(l.doc.Expenses[:i], l.doc.Expenses[i+1:]...)
				return e, []Change{{Action: ActionDeleteExpense, RecordID: e.ID, Details: e.Title}}, nil
			}
		}
		return model.Expense{}, nil, fmt.Errorf("%w: %s", ErrExpenseNotFound, expenseID)
	})
}

// Expenses returns a copy of all expenses.
func (l *Ledger) Expenses() []model.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Expense{}, l.doc.Expenses...)
}
