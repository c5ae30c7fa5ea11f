package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/statements/internal/model"
)

// ChartPath returns the chart-of-accounts location inside a project root.
func ChartPath(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a project root.
func Load(repoRoot string) ([]model.Account, error) {
	f, err := os.Open(ChartPath(repoRoot))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return accts, nil
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func Save(repoRoot string, accts []model.Account) error {
	path := ChartPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, accts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
