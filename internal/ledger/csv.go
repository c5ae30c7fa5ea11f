package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/id"
	"github.com/cleared-dev/statements/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "line_id,date,account_id,description,debit,credit,transaction_id,source,company_id"

const (
	numFields  = 9
	dateFormat = "2006-01-02"
	colLineID  = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
	colTxnID   = 6
	colSource  = 7
	colCompany = 8
)

// ReadTransactions reads all lines from a journal.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes lines to a journal.csv writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colLineID] = txn.ID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colAcctID] = strconv.Itoa(txn.AccountID)
	row[colDesc] = txn.Description

	if !txn.Debit.IsZero() {
		row[colDebit] = txn.Debit.StringFixed(2)
	}
	if !txn.Credit.IsZero() {
		row[colCredit] = txn.Credit.StringFixed(2)
	}

	row[colTxnID] = txn.TransactionID
	row[colSource] = string(txn.Source)
	row[colCompany] = txn.CompanyID
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction. Amounts that are
// present but not numeric are errors, never zero.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	accountID, err := strconv.Atoi(record[colAcctID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	debit, err := parseAmount(record[colDebit])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
	}
	credit, err := parseAmount(record[colCredit])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
	}

	txnID := record[colTxnID]
	if txnID == "" {
		txnID = id.Group(record[colLineID])
	}

	source := model.Source(record[colSource])
	if source == "" {
		source = model.SourceLedger
	}

	return model.Transaction{
		ID:            record[colLineID],
		Date:          date,
		AccountID:     accountID,
		Description:   record[colDesc],
		Debit:         debit,
		Credit:        credit,
		TransactionID: txnID,
		Source:        source,
		CompanyID:     record[colCompany],
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
