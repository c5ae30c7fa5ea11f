package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/model"
)

// PageSize is the largest page a remote ledger source returns.
const PageSize = 1000

// Store reads and writes month journal files laid out as
// <root>/YYYY/MM/journal.csv.
type Store struct {
	repoRoot string
	log      *zap.Logger
}

// NewStore creates a Store rooted at repoRoot. A nil logger disables logging.
func NewStore(repoRoot string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{repoRoot: repoRoot, log: log}
}

// Load reads every month journal under the root and returns the lines
// concatenated in ascending date order.
func (s *Store) Load() ([]model.Transaction, error) {
	years, err := os.ReadDir(s.repoRoot)
	if err != nil {
		return nil, fmt.Errorf("reading ledger root: %w", err)
	}

	var txns []model.Transaction
	files := 0
	for _, y := range years {
		if !y.IsDir() || !isNumber(y.Name(), 4) {
			continue
		}
		months, err := os.ReadDir(filepath.Join(s.repoRoot, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading year %s: %w", y.Name(), err)
		}
		for _, m := range months {
			if !m.IsDir() || !isNumber(m.Name(), 2) {
				continue
			}
			month, err := s.readFile(filepath.Join(s.repoRoot, y.Name(), m.Name(), "journal.csv"))
			if err != nil {
				return nil, err
			}
			if month != nil {
				files++
			}
			txns = append(txns, month...)
		}
	}

	sort.SliceStable(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })
	s.log.Debug("loaded ledger", zap.String("root", s.repoRoot), zap.Int("files", files), zap.Int("lines", len(txns)))
	return txns, nil
}

func (s *Store) readFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return txns, nil
}

// Save writes txns into their month files, replacing existing content.
func (s *Store) Save(txns []model.Transaction) error {
	byMonth := make(map[string][]model.Transaction)
	var keys []string
	for _, txn := range txns {
		key := txn.Date.Format("2006/01")
		if _, ok := byMonth[key]; !ok {
			keys = append(keys, key)
		}
		byMonth[key] = append(byMonth[key], txn)
	}

	for _, key := range keys {
		dir := filepath.Join(s.repoRoot, filepath.FromSlash(key))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating journal dir: %w", err)
		}
		f, err := os.Create(filepath.Join(dir, "journal.csv"))
		if err != nil {
			return fmt.Errorf("creating journal: %w", err)
		}
		if err := WriteTransactions(f, byMonth[key]); err != nil {
			f.Close()
			return fmt.Errorf("writing journal %s: %w", key, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing journal %s: %w", key, err)
		}
	}
	return nil
}

// PageFetcher returns up to limit lines starting at offset, ordered by date.
type PageFetcher interface {
	FetchPage(ctx context.Context, offset, limit int) ([]model.Transaction, error)
}

// FetchAll assembles a full snapshot from a paginated source. Paging stops at
// the first page shorter than PageSize.
func FetchAll(ctx context.Context, src PageFetcher) ([]model.Transaction, error) {
	var txns []model.Transaction
	for offset := 0; ; offset += PageSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetching ledger: %w", err)
		}
		page, err := src.FetchPage(ctx, offset, PageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching ledger page at %d: %w", offset, err)
		}
		if len(page) > PageSize {
			return nil, fmt.Errorf("fetching ledger page at %d: got %d rows, limit %d", offset, len(page), PageSize)
		}
		txns = append(txns, page...)
		if len(page) < PageSize {
			break
		}
	}
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })
	return txns, nil
}

func isNumber(s string, width int) bool {
	if len(s) != width {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
