package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonic-pos/salonledger/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Harmonic Salon")
	cfg.Commission.ProductPercent = 7.5
	cfg.Storage.Driver = DriverBolt
	cfg.Storage.Path = "ledger.bolt"
	cfg.Autosave.Interval = time.Minute

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Harmonic Salon", got.Business.Name)
	assert.InDelta(t, 7.5, got.Commission.ProductPercent, 0.001)
	assert.InDelta(t, 40, got.Commission.ServicePercent, 0.001)
	assert.Equal(t, DriverBolt, got.Storage.Driver)
	assert.Equal(t, "ledger.bolt", got.Storage.Path)
	assert.Equal(t, time.Minute, got.Autosave.Interval)
	assert.Equal(t, cfg.Sections, got.Sections)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Salon")

	assert.Equal(t, "My Salon", cfg.Business.Name)
	assert.InDelta(t, 5, cfg.Commission.ProductPercent, 0.001)
	assert.InDelta(t, 40, cfg.Commission.ServicePercent, 0.001)
	assert.Equal(t, []string{"MANICURE", "PEDICURE", "BARBER"}, cfg.Sections)
	assert.Equal(t, []string{"Cash", "Card", "Transfer"}, cfg.PaymentMethods)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "data.json", cfg.Storage.Path)
	assert.Equal(t, 30*time.Second, cfg.Autosave.Interval)
	assert.Equal(t, 5*time.Second, cfg.Autosave.Idle)
	assert.Equal(t, 10*time.Second, cfg.Autosave.ExitTimeout)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.False(t, cfg.Git.AutoCommit)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business:\n  name: Corner Cuts\nstorage:\n  driver: sqlite\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Corner Cuts", cfg.Business.Name)
	assert.Equal(t, "salonledger.db", cfg.Storage.Path)
	assert.Len(t, cfg.Sections, 3)
	assert.Equal(t, 30*time.Second, cfg.Autosave.Interval)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Test Salon")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Salon")
	assert.Contains(t, contents, "product_percent: 5")
	assert.Contains(t, contents, "service_percent: 40")
	assert.Contains(t, contents, "driver: file")
	assert.Contains(t, contents, "interval: 30s")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SALONLEDGER_STORAGE_DRIVER", "sqlite")
	t.Setenv("SALONLEDGER_PRODUCT_PERCENT", "10")
	t.Setenv("SALONLEDGER_AUTOSAVE_INTERVAL", "2m")

	cfg := Default("Env Salon")
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "salonledger.db", cfg.Storage.Path)
	assert.InDelta(t, 10, cfg.Commission.ProductPercent, 0.001)
	assert.Equal(t, 2*time.Minute, cfg.Autosave.Interval)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("SALONLEDGER_SERVICE_PERCENT", "forty")
	err := Default("x").ApplyEnv()
	assert.ErrorContains(t, err, "SALONLEDGER_SERVICE_PERCENT")
}

func TestLoadDir_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default("Dot Salon")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SALONLEDGER_SERVICE_PERCENT=35\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SALONLEDGER_SERVICE_PERCENT") })

	cfg, err := LoadDir(dir)
	require.NoError(t, err)
	assert.InDelta(t, 35, cfg.Commission.ServicePercent, 0.001)
}

func TestValidate(t *testing.T) {
	cfg := Default("x")
	cfg.Commission.ServicePercent = 120
	assert.ErrorContains(t, cfg.Validate(), "service percent")

	cfg = Default("x")
	cfg.Storage.Driver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "unknown storage driver")
}

func TestPolicyAndAllowedSets(t *testing.T) {
	cfg := Default("x")
	cfg.Commission.ProductPercent = 0.5
	cfg.Sections = []string{"barber", "Nails", "BARBER"}

	p := cfg.Policy()
	assert.True(t, p.ProductPercent.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, p.ServicePercent.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, model.SectionSet{"BARBER", "NAILS"}, cfg.AllowedSections())
	assert.Equal(t, model.DefaultPaymentMethods, cfg.AllowedPaymentMethods())
}

func TestStoragePath(t *testing.T) {
	cfg := Default("x")
	assert.Equal(t, filepath.Join("/data", "data.json"), cfg.StoragePath("/data"))
	cfg.Storage.Path = "/var/lib/ledger.json"
	assert.Equal(t, "/var/lib/ledger.json", cfg.StoragePath("/data"))
}
