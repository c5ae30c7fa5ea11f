package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/gitops"
	"github.com/cleared-dev/statements/internal/ledger"
	"github.com/cleared-dev/statements/internal/logging"
	"github.com/cleared-dev/statements/internal/rollup"
)

// project is a loaded, validated snapshot of a statements repository.
type project struct {
	root     string
	cfg      *config.Config
	log      *zap.Logger
	accounts *accounts.Index
	ledger   *ledger.Index
	commit   string
}

// loadProject reads config, chart and ledger from repoDir and builds the
// indexes every report shares.
func loadProject(ctx context.Context, repoDir string, stderr io.Writer) (*project, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(config.Path(root))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.New(stderr, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	chart, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}
	acctIdx, err := accounts.NewIndex(chart)
	if err != nil {
		return nil, fmt.Errorf("indexing chart of accounts: %w", err)
	}

	txns, err := ledger.NewStore(root, log).Load()
	if err != nil {
		return nil, err
	}
	ledgerIdx, err := ledger.NewIndex(acctIdx, txns)
	if err != nil {
		return nil, fmt.Errorf("indexing ledger: %w", err)
	}

	commit, err := gitops.Head(ctx, root)
	if err != nil && !errors.Is(err, gitops.ErrNotRepo) {
		log.Warn("reading ledger revision", zap.Error(err))
	}

	log.Debug("loaded project",
		zap.String("root", root),
		zap.String("company", acctIdx.Company()),
		zap.Int("accounts", acctIdx.Len()),
		zap.Int("lines", ledgerIdx.Len()))

	return &project{
		root:     root,
		cfg:      cfg,
		log:      log,
		accounts: acctIdx,
		ledger:   ledgerIdx,
		commit:   commit,
	}, nil
}

// aggregator returns a fresh aggregator; each report gets its own memo.
func (p *project) aggregator() *rollup.Aggregator {
	return rollup.New(p.accounts, p.ledger)
}

func (p *project) company() string {
	if c := p.accounts.Company(); c != "" {
		return c
	}
	return p.cfg.Business.CompanyID
}
