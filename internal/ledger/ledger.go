// Package ledger owns the in-memory document and applies every mutation to it:
// sales, salary payouts, expenses and catalog edits. Each mutation is
// validated in full before any field changes and is followed by a snapshot save.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/harmonic-pos/salonledger/internal/commission"
	"github.com/harmonic-pos/salonledger/internal/model"
)

// Saver persists a document. snapshot.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, doc *model.Document) error
}

// Change describes one applied mutation. Hooks receive it after the save.
type Change struct {
	Action   string
	RecordID string
	Details  string
	At       time.Time
}

// Actions reported in Change.Action.
const (
	ActionSellProduct   = "sell-product"
	ActionSellService   = "sell-service"
	ActionPaySalary     = "pay-salary"
	ActionAddStaff      = "add-staff"
	ActionEditStaff     = "edit-staff"
	ActionDeleteStaff   = "delete-staff"
	ActionAddProduct    = "add-product"
	ActionEditProduct   = "edit-product"
	ActionDeleteProduct = "delete-product"
	ActionAddExpense    = "add-expense"
	ActionEditExpense   = "edit-expense"
	ActionDeleteExpense = "delete-expense"
	ActionUpsertUser    = "upsert-user"
	ActionReplace       = "replace-document"
)

// Ledger serializes all access to a Document.
type Ledger struct {
	mu       sync.Mutex
	doc      *model.Document
	saver    Saver
	dirty    bool
	policy   commission.Policy
	sections model.SectionSet
	payments []model.PaymentMethod
	now      func() time.Time
	logger   *slog.Logger
	hooks    []func(Change)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPolicy sets the commission percentages.
func WithPolicy(p commission.Policy) Option {
	return func(l *Ledger) { l.policy = p }
}

// WithSections restricts the sections staff and services may use.
func WithSections(s model.SectionSet) Option {
	return func(l *Ledger) {
		if len(s) > 0 {
			l.sections = s
		}
	}
}

// WithPaymentMethods restricts the accepted payment methods.
func WithPaymentMethods(pms []model.PaymentMethod) Option {
	return func(l *Ledger) {
		if len(pms) > 0 {
			l.payments = pms
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// WithHook registers fn to run after every applied change.
func WithHook(fn func(Change)) Option {
	return func(l *Ledger) { l.hooks = append(l.hooks, fn) }
}

// New wraps doc. saver receives the document after every mutation.
func New(doc *model.Document, saver Saver, opts ...Option) *Ledger {
	doc.Normalize()
	l := &Ledger{
		doc:      doc,
		saver:    saver,
		policy:   commission.DefaultPolicy(),
		sections: model.SectionSet(model.DefaultSections),
		payments: model.DefaultPaymentMethods,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the commission policy in use.
func (l *Ledger) Policy() commission.Policy { return l.policy }

// Sections returns the allowed sections.
func (l *Ledger) Sections() model.SectionSet { return l.sections }

// PaymentMethods returns the accepted payment methods.
func (l *Ledger) PaymentMethods() []model.PaymentMethod { return l.payments }

// View runs fn with the document locked. fn must not keep references to it.
func (l *Ledger) View(fn func(doc *model.Document)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.doc)
}

// Snapshot returns a deep copy of the document.
func (l *Ledger) Snapshot() *model.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Clone()
}

// Dirty reports whether the last save failed or a change is unsaved.
func (l *Ledger) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// Flush saves the document if a change has not been persisted yet.
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.dirty {
		return nil
	}
	return l.save(ctx)
}

// Save writes the document unconditionally.
func (l *Ledger) Save(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(ctx)
}

// Replace swaps in a whole new document, as restore and clear do.
func (l *Ledger) Replace(ctx context.Context, doc *model.Document) error {
	doc.Normalize()
	l.mu.Lock()
	l.doc = doc
	err := l.save(ctx)
	l.mu.Unlock()
	l.notify(Change{Action: ActionReplace, Details: "document replaced"})
	return err
}

// save must be called with l.mu held.
func (l *Ledger) save(ctx context.Context) error {
	l.dirty = true
	if err := l.saver.Save(ctx, l.doc); err != nil {
		l.logger.Error("snapshot save failed", "error", err)
		return &PersistenceError{Err: err}
	}
	l.dirty = false
	return nil
}

func (l *Ledger) notify(c Change) {
	if c.At.IsZero() {
		c.At = l.now()
	}
	l.logger.Debug("ledger change", "action", c.Action, "record", c.RecordID, "details", c.Details)
	for _, fn := range l.hooks {
		fn(c)
	}
}
