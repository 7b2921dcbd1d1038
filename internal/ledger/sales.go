package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/catalog"
	"github.com/harmonic-pos/salonledger/internal/id"
	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// ProductSale is a request to sell stocked items.
type ProductSale struct {
	ProductID string
	Quantity  int
	// UnitPrice replaces the catalog price when set.
	UnitPrice     *decimal.Decimal
	StaffID       string
	PaymentMethod string
}

// ServiceSale is a request to record a service.
type ServiceSale struct {
	Name          string
	Section       string
	Price         decimal.Decimal
	StaffID       string
	PaymentMethod string
}

// BatchFailure is one service in a batch that was not sold.
type BatchFailure struct {
	Name string
	Err  error
}

// BatchResult reports a batch service sale. Entries fail independently.
type BatchResult struct {
	Sold   []model.Transaction
	Failed []BatchFailure
}

// SellProduct decrements stock, splits the total with the staff member and
// appends a transaction.
func (l *Ledger) SellProduct(ctx context.Context, sale ProductSale) (model.Transaction, error) {
	return commit(ctx, l, func(now time.Time) (model.Transaction, []Change, error) {
		if sale.Quantity < 1 {
			return model.Transaction{}, nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, sale.Quantity)
		}
		p := l.doc.ProductByID(strings.TrimSpace(sale.ProductID))
		if p == nil {
			return model.Transaction{}, nil, fmt.Errorf("%w: %s", ErrProductNotFound, sale.ProductID)
		}
		if p.Stock < sale.Quantity {
			return model.Transaction{}, nil, fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, p.Name, p.Stock, sale.Quantity)
		}
		staff, err := l.lookupStaff(sale.StaffID)
		if err != nil {
			return model.Transaction{}, nil, err
		}
		unit := p.Price
		if sale.UnitPrice != nil {
			unit = money.Round2(*sale.UnitPrice)
			if !unit.IsPositive() {
				return model.Transaction{}, nil, fmt.Errorf("%w: unit price %s", ErrInvalidPrice, sale.UnitPrice)
			}
		}
		pm, err := l.paymentMethod(sale.PaymentMethod)
		if err != nil {
			return model.Transaction{}, nil, err
		}

		total := money.Round2(unit.Mul(decimal.NewFromInt(int64(sale.Quantity))))
		split := l.policy.ProductSplit(total, staff)
		tx := model.Transaction{
			ID:                entryID(id.PrefixTransaction, now, l.transactionIDs()),
			Kind:              model.SaleProduct,
			ProductID:         p.ID,
			ProductName:       p.Name,
			Quantity:          sale.Quantity,
			UnitPrice:         unit,
			Total:             total,
			StaffEarn:         split.StaffEarn,
			SalonEarn:         split.SalonEarn,
			CommissionPercent: split.Percent,
			PaymentMethod:     pm,
			Timestamp:         now,
		}

		p.Stock -= sale.Quantity
		if staff != nil {
			tx.StaffID, tx.StaffName = staff.ID, staff.Name
			staff.Accrue(split.StaffEarn)
		}
		l.doc.Transactions = append(l.doc.Transactions, tx)

		return tx, []Change{{
			Action:   ActionSellProduct,
			RecordID: tx.ID,
			Details:  fmt.Sprintf("%d x %s = %s (staff %s)", tx.Quantity, tx.ProductName, money.Format(tx.Total), money.Format(tx.StaffEarn)),
		}}, nil
	})
}

// SellService records one service sale at the fixed service commission.
func (l *Ledger) SellService(ctx context.Context, sale ServiceSale) (model.Transaction, error) {
	return commit(ctx, l, func(now time.Time) (model.Transaction, []Change, error) {
		tx, err := l.sellService(sale, now)
		if err != nil {
			return model.Transaction{}, nil, err
		}
		return tx, []Change{serviceChange(tx)}, nil
	})
}

// SellServices sells each name in names (comma or newline separated) with the
// rest of sale shared. An entry may name its own section as "Foot Spa (PEDICURE)".
// A failing entry is reported and skipped. The returned
// error is only set when nothing could be attempted or the save failed.
func (l *Ledger) SellServices(ctx context.Context, names string, sale ServiceSale) (BatchResult, error) {
	list := catalog.SplitNames(names)
	if len(list) == 0 {
		return BatchResult{}, ErrInvalidName
	}

	l.mu.Lock()
	now := l.now()
	var res BatchResult
	for _, entry := range list {
		item := sale
		item.Name, item.Section = catalog.SplitServiceEntry(entry, sale.Section, l.sections)
		tx, err := l.sellService(item, now)
		if err != nil {
			res.Failed = append(res.Failed, BatchFailure{Name: entry, Err: err})
			continue
		}
		res.Sold = append(res.Sold, tx)
	}
	var err error
	if len(res.Sold) > 0 {
		err = l.save(ctx)
	}
	l.mu.Unlock()

	for _, tx := range res.Sold {
		l.notify(serviceChange(tx))
	}
	for _, f := range res.Failed {
		l.logger.Warn("service skipped", "name", f.Name, "error", f.Err)
	}
	return res, err
}

// sellService validates and applies one service sale. Caller holds l.mu.
func (l *Ledger) sellService(sale ServiceSale, now time.Time) (model.Transaction, error) {
	name := strings.TrimSpace(sale.Name)
	if name == "" {
		return model.Transaction{}, ErrInvalidName
	}
	price := money.Round2(sale.Price)
	if !price.IsPositive() {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrInvalidPrice, sale.Price)
	}
	sec, err := l.section(sale.Section)
	if err != nil {
		return model.Transaction{}, err
	}
	staff, err := l.lookupStaff(sale.StaffID)
	if err != nil {
		return model.Transaction{}, err
	}
	if staff != nil && !staff.Sections.Has(sec) {
		return model.Transaction{}, fmt.Errorf("%w: %s works in %s, not %s", ErrSectionMismatch, staff.Name, staff.Sections, sec)
	}
	pm, err := l.paymentMethod(sale.PaymentMethod)
	if err != nil {
		return model.Transaction{}, err
	}

	split := l.policy.ServiceSplit(price, staff)
	tx := model.Transaction{
		ID:                entryID(id.PrefixTransaction, now, l.transactionIDs()),
		Kind:              model.SaleService,
		ProductName:       fmt.Sprintf("%s (%s)", name, sec),
		Section:           sec,
		Quantity:          1,
		UnitPrice:         price,
		Total:             price,
		StaffEarn:         split.StaffEarn,
		SalonEarn:         split.SalonEarn,
		CommissionPercent: split.Percent,
		PaymentMethod:     pm,
		Timestamp:         now,
	}
	if staff != nil {
		tx.StaffID, tx.StaffName = staff.ID, staff.Name
		staff.Accrue(split.StaffEarn)
	}
	l.doc.Transactions = append(l.doc.Transactions, tx)
	return tx, nil
}

func serviceChange(tx model.Transaction) Change {
	return Change{
		Action:   ActionSellService,
		RecordID: tx.ID,
		Details:  fmt.Sprintf("%s = %s (staff %s)", tx.ProductName, money.Format(tx.Total), money.Format(tx.StaffEarn)),
	}
}
