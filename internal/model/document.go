package model

import "maps"

// SchemaVersion is written into every saved document.
const SchemaVersion = 1

// Document is the aggregate root: the whole business state in one value.
type Document struct {
	Version       int            `json:"version"`
	Users         []User         `json:"users"`
	Staff         []Staff        `json:"staff"`
	Products      []Product      `json:"products"`
	Transactions  []Transaction  `json:"transactions"`
	SalaryHistory []SalaryRecord `json:"salaryHistory"`
	Expenses      []Expense      `json:"expenses"`

	// Sequences holds the highest catalog number ever issued per ID prefix.
	Sequences map[string]int `json:"sequences,omitempty"`
}

// NewDocument returns an empty document holding only the given users.
func NewDocument(users ...User) *Document {
	return &Document{
		Version:       SchemaVersion,
		Users:         users,
		Staff:         []Staff{},
		Products:      []Product{},
		Transactions:  []Transaction{},
		SalaryHistory: []SalaryRecord{},
		Expenses:      []Expense{},
	}
}

// Normalize replaces nil collections with empty ones so the JSON form is stable.
func (d *Document) Normalize() {
	if d.Version == 0 {
		d.Version = SchemaVersion
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Staff == nil {
		d.Staff = []Staff{}
	}
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.SalaryHistory == nil {
		d.SalaryHistory = []SalaryRecord{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
}

// StaffByID returns a pointer into d.Staff, or nil.
func (d *Document) StaffByID(id string) *Staff {
	for i := range d.Staff {
		if d.Staff[i].ID == id {
			return &d.Staff[i]
		}
	}
	return nil
}

// ProductByID returns a pointer into d.Products, or nil.
func (d *Document) ProductByID(id string) *Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}

// ExpenseByID returns a pointer into d.Expenses, or nil.
func (d *Document) ExpenseByID(id string) *Expense {
	for i := range d.Expenses {
		if d.Expenses[i].ID == id {
			return &d.Expenses[i]
		}
	}
	return nil
}

// UserByName returns a pointer into d.Users, or nil. The match is case-sensitive.
func (d *Document) UserByName(username string) *User {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return &d.Users[i]
		}
	}
	return nil
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := &Document{
		Version:       d.Version,
		Users:         append([]User{}, d.Users...),
		Staff:         make([]Staff, len(d.Staff)),
		Products:      append([]Product{}, d.Products...),
		Transactions:  append([]Transaction{}, d.Transactions...),
		SalaryHistory: append([]SalaryRecord{}, d.SalaryHistory...),
		Expenses:      append([]Expense{}, d.Expenses...),
		Sequences:     maps.Clone(d.Sequences),
	}
	for i, s := range d.Staff {
		s.Sections = append(SectionSet(nil), s.Sections...)
		if s.CommissionPercent != nil {
			pct := *s.CommissionPercent
			s.CommissionPercent = &pct
		}
		c.Staff[i] = s
	}
	return c
}
