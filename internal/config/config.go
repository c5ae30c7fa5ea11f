package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/statements/internal/period"
)

// FileName is the project configuration file at the repository root.
const FileName = "statements.yaml"

// Environment variables that override file settings.
const (
	EnvLogLevel = "STATEMENTS_LOG_LEVEL"
	EnvCurrency = "STATEMENTS_CURRENCY"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the top-level statements.yaml configuration.
type Config struct {
	Business     BusinessConfig `yaml:"business"`
	Fiscal       FiscalConfig   `yaml:"fiscal"`
	BankAccounts []BankAccount  `yaml:"bank_accounts,omitempty"`
	Report       ReportConfig   `yaml:"report"`
	Logging      LoggingConfig  `yaml:"logging"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
	CompanyID  string `yaml:"company_id"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// BankAccount marks a chart-of-accounts entry as holding cash, whatever its
// type or name.
type BankAccount struct {
	Name      string `yaml:"name"`
	AccountID int    `yaml:"account_id"`
}

// ReportConfig holds report defaults used when flags are omitted.
type ReportConfig struct {
	Preset      string `yaml:"preset"`
	Granularity string `yaml:"granularity"`
	Currency    string `yaml:"currency"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Path returns the config path inside repoRoot.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads a statements.yaml file from disk and applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ApplyEnv()
	return &cfg, nil
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

// Default returns a Config with sensible defaults for a new project.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
			CompanyID:  slug(businessName),
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Report: ReportConfig{
			Preset:      string(period.ThisYearToLastMonth),
			Granularity: "month",
			Currency:    money.USD,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ApplyEnv overrides file settings from the environment.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCurrency)); v != "" {
		c.Report.Currency = strings.ToUpper(v)
	}
}

// Validate checks the settings the report commands depend on.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.FiscalStartMonth(); err != nil {
		errs = append(errs, err)
	}
	if c.Report.Preset != "" {
		if _, err := period.ParsePreset(c.Report.Preset); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := period.ParseGranularity(c.Report.Granularity); err != nil {
		errs = append(errs, err)
	}
	if c.Report.Currency != "" && money.GetCurrency(c.Report.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Report.Currency))
	}
	for _, ba := range c.BankAccounts {
		if ba.AccountID == 0 {
			errs = append(errs, fmt.Errorf("bank account %q: account_id is required", ba.Name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// FiscalStartMonth returns the month of fiscal.year_start. An empty value
// means January.
func (c *Config) FiscalStartMonth() (time.Month, error) {
	s := strings.TrimSpace(c.Fiscal.YearStart)
	if s == "" {
		return time.January, nil
	}
	mm, _, ok := strings.Cut(s, "-")
	m, err := strconv.Atoi(mm)
	if !ok || err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("fiscal.year_start %q: want MM-DD", c.Fiscal.YearStart)
	}
	return time.Month(m), nil
}

// BankAccountIDs returns the account IDs configured as bank accounts.
func (c *Config) BankAccountIDs() []int {
	ids := make([]int, 0, len(c.BankAccounts))
	for _, ba := range c.BankAccounts {
		ids = append(ids, ba.AccountID)
	}
	return ids
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
