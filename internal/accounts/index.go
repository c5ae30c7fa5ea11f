package accounts

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cleared-dev/statements/internal/model"
)

var (
	// ErrCycleDetected is returned when a parent chain never reaches a root.
	ErrCycleDetected = errors.New("account tree cycle detected")
	// ErrUnknownParent is returned when parent_id does not resolve.
	ErrUnknownParent = errors.New("unknown parent account")
	// ErrDuplicateAccount is returned when two accounts share an ID.
	ErrDuplicateAccount = errors.New("duplicate account")
	// ErrCrossCompany is returned when accounts of several companies are mixed.
	ErrCrossCompany = errors.New("account belongs to another company")
)

// Index provides parent/child and ancestry lookups over a flat chart of
// accounts. It is immutable after NewIndex and safe for concurrent reads.
type Index struct {
	company  string
	accounts []model.Account
	pos      map[int]int   // account ID -> position in accounts
	children map[int][]int // parent ID -> child IDs in input order
	roots    []int
}

// NewIndex validates the chart and builds the adjacency maps.
func NewIndex(accts []model.Account) (*Index, error) {
	idx := &Index{
		accounts: accts,
		pos:      make(map[int]int, len(accts)),
		children: make(map[int][]int),
	}
	if len(accts) > 0 {
		idx.company = accts[0].CompanyID
	}

	for i, a := range accts {
		if a.ID == 0 {
			return nil, fmt.Errorf("account %q: id must be non-zero", a.Name)
		}
		if _, ok := idx.pos[a.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAccount, a.ID)
		}
		if !a.Type.Valid() {
			return nil, fmt.Errorf("account %d: %w: %q", a.ID, model.ErrUnknownAccountType, string(a.Type))
		}
		if a.CompanyID != idx.company {
			return nil, fmt.Errorf("%w: account %d is in %q, chart is %q", ErrCrossCompany, a.ID, a.CompanyID, idx.company)
		}
		idx.pos[a.ID] = i
	}

	for _, a := range accts {
		if a.IsRoot() {
			idx.roots = append(idx.roots, a.ID)
			continue
		}
		if _, ok := idx.pos[a.ParentID]; !ok {
			return nil, fmt.Errorf("account %d: %w %d", a.ID, ErrUnknownParent, a.ParentID)
		}
		idx.children[a.ParentID] = append(idx.children[a.ParentID], a.ID)
	}

	if err := idx.checkAcyclic(); err != nil {
		return nil, err
	}
	return idx, nil
}

// checkAcyclic walks every parent chain; each must reach a root within
// len(accounts) steps without revisiting an account.
func (idx *Index) checkAcyclic() error {
	reachesRoot := make(map[int]bool, len(idx.accounts))
	for _, a := range idx.accounts {
		visited := map[int]bool{}
		cur := a
		for steps := 0; ; steps++ {
			if cur.IsRoot() || reachesRoot[cur.ID] {
				break
			}
			if visited[cur.ID] || steps > len(idx.accounts) {
				return fmt.Errorf("%w: account %d", ErrCycleDetected, a.ID)
			}
			visited[cur.ID] = true
			cur = idx.accounts[idx.pos[cur.ParentID]]
		}
		for id := range visited {
			reachesRoot[id] = true
		}
	}
	return nil
}

// Company returns the company every account in the index belongs to.
func (idx *Index) Company() string { return idx.company }

// All returns all accounts in input order.
func (idx *Index) All() []model.Account { return idx.accounts }

// Len returns the number of accounts.
func (idx *Index) Len() int { return len(idx.accounts) }

// Get returns an account by ID.
func (idx *Index) Get(id int) (model.Account, bool) {
	i, ok := idx.pos[id]
	if !ok {
		return model.Account{}, false
	}
	return idx.accounts[i], true
}

// Exists reports whether an account ID exists.
func (idx *Index) Exists(id int) bool {
	_, ok := idx.pos[id]
	return ok
}

// ByType returns all accounts of the given type.
func (idx *Index) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range idx.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Children returns the direct children of id in chart order.
func (idx *Index) Children(id int) []int {
	return idx.children[id]
}

// HasChildren reports whether id has at least one child account.
func (idx *Index) HasChildren(id int) bool {
	return len(idx.children[id]) > 0
}

// Ancestors returns the parent chain of id ordered from root to direct parent.
func (idx *Index) Ancestors(id int) []int {
	a, ok := idx.Get(id)
	if !ok {
		return nil
	}
	var chain []int
	for !a.IsRoot() {
		chain = append(chain, a.ParentID)
		a, _ = idx.Get(a.ParentID)
	}
	slices.Reverse(chain)
	return chain
}

// Depth returns the number of ancestors of id.
func (idx *Index) Depth(id int) int {
	return len(idx.Ancestors(id))
}

// Subtree returns id followed by all of its descendants in pre-order.
func (idx *Index) Subtree(id int) []int {
	if !idx.Exists(id) {
		return nil
	}
	out := []int{id}
	for _, c := range idx.children[id] {
		out = append(out, idx.Subtree(c)...)
	}
	return out
}

// Roots returns root accounts, optionally restricted to the given types.
func (idx *Index) Roots(types ...model.AccountType) []model.Account {
	var result []model.Account
	for _, id := range idx.roots {
		a := idx.accounts[idx.pos[id]]
		if len(types) == 0 || slices.Contains(types, a.Type) {
			result = append(result, a)
		}
	}
	return result
}
