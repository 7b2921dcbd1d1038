package snapshot

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonic-pos/salonledger/internal/model"
)

var discard = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

func sampleDocument(staffName string) *model.Document {
	doc := model.NewDocument(model.User{Username: "admin", PasswordHash: "x", Role: model.RoleAdmin})
	doc.Staff = append(doc.Staff, model.Staff{
		ID:       "STF-0001",
		Name:     staffName,
		Sections: model.SectionSet{model.SectionBarber},
		Daily:    decimal.RequireFromString("12.50"),
		Monthly:  decimal.RequireFromString("12.50"),
		Yearly:   decimal.RequireFromString("12.50"),
	})
	doc.Products = append(doc.Products, model.Product{ID: "PRD-0001", Name: "Shampoo", Price: decimal.RequireFromString("25.00"), Stock: 4})
	doc.Sequences = map[string]int{"STF": 3, "PRD": 1}
	return doc
}

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	stores := map[string]Store{}
	for _, d := range Drivers {
		s, err := Open(d, filepath.Join(dir, d, "ledger"))
		require.NoError(t, err, d)
		t.Cleanup(func() { _ = s.Close() })
		stores[d] = s
	}
	return stores
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x"))
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestStores_EmptyLoad(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		_, err := s.Load(ctx)
		assert.ErrorIs(t, err, ErrNoSnapshot, name)
		_, err = s.LoadBackup(ctx)
		assert.ErrorIs(t, err, ErrNoSnapshot, name)
	}
}

func TestStores_SaveKeepsBackup(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		require.NoError(t, s.Save(ctx, sampleDocument("Rina")), name)
		_, err := s.LoadBackup(ctx)
		assert.ErrorIs(t, err, ErrNoSnapshot, "%s: first save has no backup", name)

		require.NoError(t, s.Save(ctx, sampleDocument("Tono")), name)

		cur, err := s.Load(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, "Tono", cur.Staff[0].Name, name)
		assert.True(t, cur.Staff[0].Monthly.Equal(decimal.RequireFromString("12.5")), name)
		assert.Equal(t, 4, cur.Products[0].Stock, name)

		prev, err := s.LoadBackup(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, "Rina", prev.Staff[0].Name, name)
	}
}

func TestStores_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, d := range Drivers {
		path := filepath.Join(dir, d+".snap")
		s, err := Open(d, path)
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, sampleDocument("Rina")))
		require.NoError(t, s.Close())

		s, err = Open(d, path)
		require.NoError(t, err)
		doc, err := s.Load(ctx)
		require.NoError(t, err, d)
		assert.Equal(t, "Rina", doc.Staff[0].Name, d)
		assert.Equal(t, 3, doc.Sequences["STF"], d)
		require.NoError(t, s.Close())
	}
}

func TestFileStore_WritesBackupFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, sampleDocument("Rina")))
	require.NoError(t, s.Save(ctx, sampleDocument("Tono")))

	backup, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Contains(t, string(backup), `"name": "Rina"`)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(current), `"name": "Tono"`)
	assert.Contains(t, string(current), `"salaryHistory": []`)
}

func TestFileStore_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSnapshot))
}

func TestLoadOrSeed(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	calls := 0
	seed := func() (*model.Document, error) {
		calls++
		return sampleDocument("Seeded"), nil
	}

	doc, seeded, err := LoadOrSeed(ctx, s, seed, discard)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, "Seeded", doc.Staff[0].Name)

	doc, seeded, err = LoadOrSeed(ctx, s, seed, discard)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, "Seeded", doc.Staff[0].Name)
	assert.Equal(t, 1, calls)
}

func TestDecode_NormalizesMissingCollections(t *testing.T) {
	doc, err := Decode([]byte(`{"users":[{"username":"admin","passwordHash":"x","role":"admin"}]}`))
	require.NoError(t, err)
	assert.Equal(t, model.SchemaVersion, doc.Version)
	assert.NotNil(t, doc.Expenses)
	assert.NotNil(t, doc.SalaryHistory)
}

func TestExportImport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleDocument("Rina")))

	doc, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Rina", doc.Staff[0].Name)
}

func TestImport_RejectsInvalid(t *testing.T) {
	bad := sampleDocument("Rina")
	bad.Transactions = append(bad.Transactions, model.Transaction{
		ID:        "TX-2025-01-001",
		Kind:      model.SaleService,
		Quantity:  1,
		Total:     decimal.RequireFromString("100.00"),
		StaffEarn: decimal.RequireFromString("40.00"),
		SalonEarn: decimal.RequireFromString("50.00"),
		Timestamp: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	})
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, bad))

	_, err := Import(&buf)
	var invalid *InvalidDocumentError
	require.ErrorAs(t, err, &invalid)
	assert.NotEmpty(t, invalid.Problems)

	_, err = Import(strings.NewReader("[]"))
	assert.Error(t, err)
}
