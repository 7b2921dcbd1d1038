package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/catalog"
	"github.com/harmonic-pos/salonledger/internal/commission"
	"github.com/harmonic-pos/salonledger/internal/id"
	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// StaffInput adds one or more staff members sharing sections and override.
type StaffInput struct {
	// Names may hold several names separated by commas or newlines.
	Names             string
	Sections          []string
	CommissionPercent *decimal.Decimal
}

// StaffUpdate changes identity fields. Nil fields are left alone.
type StaffUpdate struct {
	Name              *string
	Sections          []string
	CommissionPercent *decimal.Decimal
	// ClearCommission drops the override so the default product percent applies.
	ClearCommission bool
}

// ProductUpdate changes product fields. Nil fields are left alone.
type ProductUpdate struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

func validPercent(pct *decimal.Decimal) error {
	if pct == nil {
		return nil
	}
	if err := commission.ValidatePercent(*pct); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPercent, err)
	}
	return nil
}

// AddStaff creates a staff member per name with zeroed accruals.
func (l *Ledger) AddStaff(ctx context.Context, in StaffInput) ([]model.Staff, error) {
	return commit(ctx, l, func(_ time.Time) ([]model.Staff, []Change, error) {
		names := catalog.SplitNames(in.Names)
		if len(names) == 0 {
			return nil, nil, ErrInvalidName
		}
		sections, err := l.sectionSet(in.Sections)
		if err != nil {
			return nil, nil, err
		}
		if err := validPercent(in.CommissionPercent); err != nil {
			return nil, nil, err
		}

		var added []model.Staff
		var changes []Change
		for _, name := range names {
			s := model.Staff{
				ID:       l.nextCatalogID(id.PrefixStaff),
				Name:     name,
				Sections: append(model.SectionSet(nil), sections...),
			}
			if in.CommissionPercent != nil {
				pct := *in.CommissionPercent
				s.CommissionPercent = &pct
			}
			l.doc.Staff = append(l.doc.Staff, s)
			added = append(added, s)
			changes = append(changes, Change{Action: ActionAddStaff, RecordID: s.ID, Details: fmt.Sprintf("%s [%s]", s.Name, s.Sections)})
		}
		return added, changes, nil
	})
}

// EditStaff updates name, sections or the commission override. Accruals are
// never touched here.
func (l *Ledger) EditStaff(ctx context.Context, staffID string, upd StaffUpdate) (model.Staff, error) {
	return commit(ctx, l, func(_ time.Time) (model.Staff, []Change, error) {
		s := l.doc.StaffByID(staffID)
		if s == nil {
			return model.Staff{}, nil, fmt.Errorf("%w: %s", ErrStaffNotFound, staffID)
		}
		var name string
		if upd.Name != nil {
			name = strings.TrimSpace(*upd.Name)
			if name == "" {
				return model.Staff{}, nil, ErrInvalidName
			}
		}
		var sections model.SectionSet
		if upd.Sections != nil {
			var err error
			if sections, err = l.sectionSet(upd.Sections); err != nil {
				return model.Staff{}, nil, err
			}
		}
		if err := validPercent(upd.CommissionPercent); err != nil {
			return model.Staff{}, nil, err
		}

		if upd.Name != nil {
			s.Name = name
		}
		if sections != nil {
			s.Sections = sections
		}
		switch {
		case upd.ClearCommission:
			s.CommissionPercent = nil
		case upd.CommissionPercent != nil:
			pct := *upd.CommissionPercent
			s.CommissionPercent = &pct
		}
		return *s, []Change{{Action: ActionEditStaff, RecordID: s.ID, Details: s.Name}}, nil
	})
}

// DeleteStaff removes a staff member. Transactions keep their copy of the name.
func (l *Ledger) DeleteStaff(ctx context.Context, staffID string) (model.Staff, error) {
	return commit(ctx, l, func(_ time.Time) (model.Staff, []Change, error) {
		for i, s := range l.doc.Staff {
			if s.ID == staffID {
				l.doc.Staff = append(l.doc.Staff[:i], l.doc.Staff[i+1:]...)
				return s, []Change{{Action: ActionDeleteStaff, RecordID: s.ID, Details: s.Name}}, nil
			}
		}
		return model.Staff{}, nil, fmt.Errorf("%w: %s", ErrStaffNotFound, staffID)
	})
}

// Staff returns a copy of all staff members.
func (l *Ledger) Staff() []model.Staff {
	return l.Snapshot().Staff
}

// StaffMember returns one staff member by ID.
func (l *Ledger) StaffMember(staffID string) (model.Staff, error) {
	for _, s := range l.Staff() {
		if s.ID == staffID {
			return s, nil
		}
	}
	return model.Staff{}, fmt.Errorf("%w: %s", ErrStaffNotFound, staffID)
}

func validateDraft(d catalog.ProductDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidName
	}
	if !money.Round2(d.Price).IsPositive() {
		return fmt.Errorf("%w: %s for %q", ErrInvalidPrice, d.Price, d.Name)
	}
	if d.Stock < 0 {
		return fmt.Errorf("%w: %d for %q", ErrInvalidStock, d.Stock, d.Name)
	}
	return nil
}

// AddProducts adds every draft or none of them.
func (l *Ledger) AddProducts(ctx context.Context, drafts []catalog.ProductDraft) ([]model.Product, error) {
	return commit(ctx, l, func(_ time.Time) ([]model.Product, []Change, error) {
		if len(drafts) == 0 {
			return nil, nil, ErrInvalidName
		}
		for _, d := range drafts {
			if err := validateDraft(d); err != nil {
				return nil, nil, err
			}
		}

		var added []model.Product
		var changes []Change
		for _, d := range drafts {
			p := model.Product{
				ID:    l.nextCatalogID(id.PrefixProduct),
				Name:  strings.TrimSpace(d.Name),
				Price: money.Round2(d.Price),
				Stock: d.Stock,
			}
			l.doc.Products = append(l.doc.Products, p)
			added = append(added, p)
			changes = append(changes, Change{Action: ActionAddProduct, RecordID: p.ID, Details: fmt.Sprintf("%s @ %s x%d", p.Name, money.Format(p.Price), p.Stock)})
		}
		return added, changes, nil
	})
}

// AddProduct adds a single product.
func (l *Ledger) AddProduct(ctx context.Context, d catalog.ProductDraft) (model.Product, error) {
	added, err := l.AddProducts(ctx, []catalog.ProductDraft{d})
	if len(added) == 0 {
		return model.Product{}, err
	}
	return added[0], err
}

// EditProduct updates name, price or stock.
func (l *Ledger) EditProduct(ctx context.Context, productID string, upd ProductUpdate) (model.Product, error) {
	return commit(ctx, l, func(_ time.Time) (model.Product, []Change, error) {
		p := l.doc.ProductByID(productID)
		if p == nil {
			return model.Product{}, nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		next := *p
		if upd.Name != nil {
			next.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Price != nil {
			next.Price = money.Round2(*upd.Price)
		}
		if upd.Stock != nil {
			next.Stock = *upd.Stock
		}
		if err := validateDraft(catalog.ProductDraft{Name: next.Name, Price: next.Price, Stock: next.Stock}); err != nil {
			return model.Product{}, nil, err
		}
		*p = next
		return next, []Change{{Action: ActionEditProduct, RecordID: p.ID, Details: fmt.Sprintf("%s @ %s x%d", p.Name, money.Format(p.Price), p.Stock)}}, nil
	})
}

// DeleteProduct removes a product. Transactions keep their copy of the name.
func (l *Ledger) DeleteProduct(ctx context.Context, productID string) (model.Product, error) {
	return commit(ctx, l, func(_ time.Time) (model.Product, []Change, error) {
		for i, p := range l.doc.Products {
			if p.ID == productID {
				l.doc.Products = append(l.doc.Products[:i], l.doc.Products[i+1:]...)
				return p, []Change{{Action: ActionDeleteProduct, RecordID: p.ID, Details: p.Name}}, nil
			}
		}
		return model.Product{}, nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	})
}

// Products returns a copy of the product catalog.
func (l *Ledger) Products() []model.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Product{}, l.doc.Products...)
}

// nextCatalogID issues a staff or product ID. Numbers are never handed out
// twice: the document's high-water mark and every ID still referenced by
// history both count as taken. Caller holds l.mu.
func (l *Ledger) nextCatalogID(prefix string) string {
	var used []string
	switch prefix {
	case id.PrefixStaff:
		for _, s := range l.doc.Staff {
			used = append(used, s.ID)
		}
		for _, tx := range l.doc.Transactions {
			used = append(used, tx.StaffID)
		}
		for _, r := range l.doc.SalaryHistory {
			used = append(used, r.StaffID)
		}
	case id.PrefixProduct:
		for _, p := range l.doc.Products {
			used = append(used, p.ID)
		}
		for _, tx := range l.doc.Transactions {
			used = append(used, tx.ProductID)
		}
	}
	seq := id.NextCatalogSeq(prefix, used)
	if last := l.doc.Sequences[prefix]; last >= seq {
		seq = last + 1
	}
	if l.doc.Sequences == nil {
		l.doc.Sequences = map[string]int{}
	}
	l.doc.Sequences[prefix] = seq
	return id.FormatCatalogID(prefix, seq)
}
