package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/harmonic-pos/salonledger/internal/commission"
	"github.com/harmonic-pos/salonledger/internal/model"
)

// FileName is the config file inside a data directory.
const FileName = "salonledger.yaml"

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config represents the top-level salonledger.yaml configuration.
type Config struct {
	Business       BusinessConfig   `yaml:"business"`
	Commission     CommissionConfig `yaml:"commission"`
	Sections       []string         `yaml:"sections"`
	PaymentMethods []string         `yaml:"payment_methods"`
	Storage        StorageConfig    `yaml:"storage"`
	Autosave       AutosaveConfig   `yaml:"autosave"`
	Admin          AdminConfig      `yaml:"admin"`
	Git            GitConfig        `yaml:"git"`
}

// BusinessConfig identifies the business.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// CommissionConfig holds the staff share percentages.
type CommissionConfig struct {
	ProductPercent float64 `yaml:"product_percent"`
	ServicePercent float64 `yaml:"service_percent"`
}

// StorageConfig selects the snapshot driver. Path is relative to the data directory.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// AutosaveConfig controls background saves in long-running sessions.
type AutosaveConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Idle        time.Duration `yaml:"idle"`
	ExitTimeout time.Duration `yaml:"exit_timeout"`
}

// AdminConfig names the user seeded into a new document.
// The password never lives in this file; see SALONLEDGER_ADMIN_PASSWORD.
type AdminConfig struct {
	Username string `yaml:"username"`
}

// GitConfig controls committing the data directory after each change.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a salonledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// LoadDir reads <dir>/salonledger.yaml, then applies <dir>/.env and the
// process environment on top, and validates the result.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	if err := LoadDotEnv(dir); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads <dir>/.env if present. Variables already set in the
// environment win.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new business.
func Default(businessName string) *Config {
	cfg := &Config{
		Business: BusinessConfig{Name: businessName},
		Git: GitConfig{
			AuthorName:  "Salon Ledger",
			AuthorEmail: "ledger@salonledger.local",
		},
	}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Commission == (CommissionConfig{}) {
		c.Commission = CommissionConfig{
			ProductPercent: commission.DefaultProductPercent.InexactFloat64(),
			ServicePercent: commission.DefaultServicePercent.InexactFloat64(),
		}
	}
	if len(c.Sections) == 0 {
		for _, s := range model.DefaultSections {
			c.Sections = append(c.Sections, string(s))
		}
	}
	if len(c.PaymentMethods) == 0 {
		for _, pm := range model.DefaultPaymentMethods {
			c.PaymentMethods = append(c.PaymentMethods, string(pm))
		}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFile
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath(c.Storage.Driver)
	}
	if c.Autosave.Interval == 0 {
		c.Autosave.Interval = 30 * time.Second
	}
	if c.Autosave.Idle == 0 {
		c.Autosave.Idle = 5 * time.Second
	}
	if c.Autosave.ExitTimeout == 0 {
		c.Autosave.ExitTimeout = 10 * time.Second
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
}

// DefaultStoragePath returns the snapshot location used when none is configured.
func DefaultStoragePath(driver string) string {
	switch driver {
	case DriverSQLite:
		return "salonledger.db"
	case DriverBolt:
		return "salonledger.bolt"
	default:
		return "data.json"
	}
}

// ApplyEnv overrides fields from SALONLEDGER_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("SALONLEDGER_STORAGE_DRIVER"); v != "" {
		if c.Storage.Path == DefaultStoragePath(c.Storage.Driver) {
			c.Storage.Path = DefaultStoragePath(v)
		}
		c.Storage.Driver = v
	}
	if v := os.Getenv("SALONLEDGER_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("SALONLEDGER_PRODUCT_PERCENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SALONLEDGER_PRODUCT_PERCENT: %w", err)
		}
		c.Commission.ProductPercent = f
	}
	if v := os.Getenv("SALONLEDGER_SERVICE_PERCENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SALONLEDGER_SERVICE_PERCENT: %w", err)
		}
		c.Commission.ServicePercent = f
	}
	if v := os.Getenv("SALONLEDGER_AUTOSAVE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SALONLEDGER_AUTOSAVE_INTERVAL: %w", err)
		}
		c.Autosave.Interval = d
	}
	return nil
}

// AdminPassword returns the password for the seeded admin user and whether it
// came from the environment.
func AdminPassword() (string, bool) {
	if v := os.Getenv("SALONLEDGER_ADMIN_PASSWORD"); v != "" {
		return v, true
	}
	return "admin", false
}

// Validate checks the config for values the ledger cannot run with.
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("commission: %w", err)
	}
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverBolt:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Autosave.Interval < 0 || c.Autosave.Idle < 0 || c.Autosave.ExitTimeout < 0 {
		return fmt.Errorf("autosave durations must not be negative")
	}
	return nil
}

// Policy converts the configured percentages into a commission policy.
func (c *Config) Policy() commission.Policy {
	return commission.Policy{
		ProductPercent: decimal.NewFromFloat(c.Commission.ProductPercent),
		ServicePercent: decimal.NewFromFloat(c.Commission.ServicePercent),
	}
}

// AllowedSections returns the configured sections, normalized.
func (c *Config) AllowedSections() model.SectionSet {
	return model.NewSectionSet(c.Sections...)
}

// AllowedPaymentMethods returns the configured payment methods.
func (c *Config) AllowedPaymentMethods() []model.PaymentMethod {
	pms := make([]model.PaymentMethod, len(c.PaymentMethods))
	for i, pm := range c.PaymentMethods {
		pms[i] = model.PaymentMethod(pm)
	}
	return pms
}

// StoragePath resolves the snapshot location against the data directory.
func (c *Config) StoragePath(dir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(dir, c.Storage.Path)
}
