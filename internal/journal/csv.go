package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// Headers for each exported collection.
const (
	TransactionHeader = "id,kind,product_id,product_name,section,quantity,unit_price,total,staff_id,staff_name,staff_earn,salon_earn,commission_percent,payment_method,timestamp"
	SalaryHeader      = "id,staff_id,staff_name,amount_paid,moved_daily,moved_monthly,moved_total,timestamp,year,month"
	ExpenseHeader     = "id,title,amount,date,payment_method"
	StaffHeader       = "id,name,sections,commission_percent,daily,monthly,yearly"
	ProductHeader     = "id,name,price,stock"
)

const (
	numTxFields   = 15
	timeFormat    = time.RFC3339
	dateFormat    = "2006-01-02"
	colTxID       = 0
	colTxKind     = 1
	colTxProdID   = 2
	colTxProdName = 3
	colTxSection  = 4
	colTxQty      = 5
	colTxUnit     = 6
	colTxTotal    = 7
	colTxStaffID  = 8
	colTxStaff    = 9
	colTxStaffErn = 10
	colTxSalonErn = 11
	colTxPercent  = 12
	colTxPayment  = 13
	colTxTime     = 14
)

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numTxFields)
	row[colTxID] = tx.ID
	row[colTxKind] = string(tx.Kind)
	row[colTxProdID] = tx.ProductID
	row[colTxProdName] = tx.ProductName
	row[colTxSection] = string(tx.Section)
	row[colTxQty] = strconv.Itoa(tx.Quantity)
	row[colTxUnit] = money.Format(tx.UnitPrice)
	row[colTxTotal] = money.Format(tx.Total)
	row[colTxStaffID] = tx.StaffID
	row[colTxStaff] = tx.StaffName
	row[colTxStaffErn] = money.Format(tx.StaffEarn)
	row[colTxSalonErn] = money.Format(tx.SalonEarn)
	row[colTxPercent] = tx.CommissionPercent.String()
	row[colTxPayment] = string(tx.PaymentMethod)
	row[colTxTime] = tx.Timestamp.Format(timeFormat)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numTxFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numTxFields, len(record))
	}

	qty, err := strconv.Atoi(record[colTxQty])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing quantity %q: %w", record[colTxQty], err)
	}

	ts, err := time.Parse(timeFormat, record[colTxTime])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing timestamp %q: %w", record[colTxTime], err)
	}

	amounts := make(map[int]decimal.Decimal, 5)
	for _, col := range []int{colTxUnit, colTxTotal, colTxStaffErn, colTxSalonErn, colTxPercent} {
		d, err := decimal.NewFromString(record[col])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[col], err)
		}
		amounts[col] = d
	}

	return model.Transaction{
		ID:                record[colTxID],
		Kind:              model.SaleKind(record[colTxKind]),
		ProductID:         record[colTxProdID],
		ProductName:       record[colTxProdName],
		Section:           model.Section(record[colTxSection]),
		Quantity:          qty,
		UnitPrice:         amounts[colTxUnit],
		Total:             amounts[colTxTotal],
		StaffID:           record[colTxStaffID],
		StaffName:         record[colTxStaff],
		StaffEarn:         amounts[colTxStaffErn],
		SalonEarn:         amounts[colTxSalonErn],
		CommissionPercent: amounts[colTxPercent],
		PaymentMethod:     model.PaymentMethod(record[colTxPayment]),
		Timestamp:         ts,
	}, nil
}

// ReadTransactions reads a transactions CSV written by WriteTransactions.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numTxFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions (including header).
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	rows := make([][]string, len(txs))
	for i, tx := range txs {
		rows[i] = MarshalTransaction(tx)
	}
	return writeRows(w, TransactionHeader, rows)
}

// MarshalSalary converts a SalaryRecord to a CSV row.
func MarshalSalary(rec model.SalaryRecord) []string {
	return []string{
		rec.ID,
		rec.StaffID,
		rec.StaffName,
		money.Format(rec.AmountPaid),
		money.Format(rec.MovedDaily),
		money.Format(rec.MovedMonthly),
		money.Format(rec.MovedTotal),
		rec.Timestamp.Format(timeFormat),
		strconv.Itoa(rec.Year),
		strconv.Itoa(rec.Month),
	}
}

// WriteSalaryHistory writes salary records (including header).
func WriteSalaryHistory(w io.Writer, recs []model.SalaryRecord) error {
	rows := make([][]string, len(recs))
	for i, rec := range recs {
		rows[i] = MarshalSalary(rec)
	}
	return writeRows(w, SalaryHeader, rows)
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	return []string{e.ID, e.Title, money.Format(e.Amount), e.Date.Format(dateFormat), string(e.PaymentMethod)}
}

// WriteExpenses writes expenses (including header).
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = MarshalExpense(e)
	}
	return writeRows(w, ExpenseHeader, rows)
}

// MarshalStaff converts a Staff to a CSV row. Sections are semicolon-separated.
func MarshalStaff(s model.Staff) []string {
	sections := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		sections[i] = string(sec)
	}
	override := ""
	if s.CommissionPercent != nil {
		override = s.CommissionPercent.String()
	}
	return []string{
		s.ID,
		s.Name,
		strings.Join(sections, ";"),
		override,
		money.Format(s.Daily),
		money.Format(s.Monthly),
		money.Format(s.Yearly),
	}
}

// WriteStaff writes staff (including header).
func WriteStaff(w io.Writer, staff []model.Staff) error {
	rows := make([][]string, len(staff))
	for i, s := range staff {
		rows[i] = MarshalStaff(s)
	}
	return writeRows(w, StaffHeader, rows)
}

// MarshalProduct converts a Product to a CSV row.
func MarshalProduct(p model.Product) []string {
	return []string{p.ID, p.Name, money.Format(p.Price), strconv.Itoa(p.Stock)}
}

// WriteProducts writes products (including header).
func WriteProducts(w io.Writer, products []model.Product) error {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = MarshalProduct(p)
	}
	return writeRows(w, ProductHeader, rows)
}

// Collections maps export names to writers over a document.
var Collections = map[string]func(io.Writer, *model.Document) error{
	"transactions":  func(w io.Writer, d *model.Document) error { return WriteTransactions(w, d.Transactions) },
	"salaryHistory": func(w io.Writer, d *model.Document) error { return WriteSalaryHistory(w, d.SalaryHistory) },
	"expenses":      func(w io.Writer, d *model.Document) error { return WriteExpenses(w, d.Expenses) },
	"staff":         func(w io.Writer, d *model.Document) error { return WriteStaff(w, d.Staff) },
	"products":      func(w io.Writer, d *model.Document) error { return WriteProducts(w, d.Products) },
}

// CollectionNames returns the export names in sorted order.
func CollectionNames() []string {
	names := make([]string, 0, len(Collections))
	for name := range Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeRows(w io.Writer, header string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
