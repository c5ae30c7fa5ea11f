package accounts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// Header is the column order WriteAccounts produces.
var Header = []string{"account_id", "account_name", "account_type", "parent_id", "company_id", "description"}

// required columns; the rest default to empty.
var required = []string{"account_id", "account_name", "account_type"}

// columns maps a header name to its position in a record.
type columns map[string]int

func headerColumns(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing %s column", name)
		}
	}
	return cols, nil
}

func (c columns) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ReadAccounts reads chart-of-accounts.csv. Columns are located by header
// name, so extra columns (such as tax_line) and any column order are accepted.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	cols, err := headerColumns(header)
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	var accounts []model.Account
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading accounts CSV: %w", err)
		}
		acct, err := cols.account(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv in Header order.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a row in Header order.
func MarshalAccount(acct model.Account) []string {
	parent := ""
	if acct.ParentID != 0 {
		parent = strconv.Itoa(acct.ParentID)
	}
	return []string{strconv.Itoa(acct.ID), acct.Name, string(acct.Type), parent, acct.CompanyID, acct.Description}
}

// UnmarshalAccount converts a row in Header order to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != len(Header) {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(record))
	}
	cols, _ := headerColumns(Header)
	return cols.account(record)
}

func (c columns) account(record []string) (model.Account, error) {
	raw := c.get(record, "account_id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", raw, err)
	}

	var parentID int
	if raw := c.get(record, "parent_id"); raw != "" {
		parentID, err = strconv.Atoi(raw)
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing parent_id %q: %w", raw, err)
		}
	}

	typ, err := model.ParseAccountType(c.get(record, "account_type"))
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_type: %w", err)
	}

	return model.Account{
		ID:          id,
		Name:        c.get(record, "account_name"),
		Type:        typ,
		ParentID:    parentID,
		CompanyID:   c.get(record, "company_id"),
		Description: c.get(record, "description"),
	}, nil
}
