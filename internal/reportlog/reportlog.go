// Package reportlog keeps an append-only CSV record of generated reports.
package reportlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Entry is one row in the report log.
type Entry struct {
	Timestamp time.Time
	Report    string // pnl, balance, cashflow or drilldown
	Start     string // YYYY-MM-DD, empty for as-of reports
	End       string
	Rows      int
	Company   string
	Commit    string // ledger revision, empty outside a git repository
}

// Header is the CSV header for report-log.csv.
const Header = "timestamp,report,start,end,rows,company,commit"

const (
	numFields    = 7
	logDir       = "logs"
	logFile      = "logs/report-log.csv"
	colTimestamp = 0
	colReport    = 1
	colStart     = 2
	colEnd       = 3
	colRows      = 4
	colCompany   = 5
	colCommit    = 6
)

// mu serializes appends from concurrently built reports.
var mu sync.Mutex

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colReport] = e.Report
	row[colStart] = e.Start
	row[colEnd] = e.End
	row[colRows] = strconv.Itoa(e.Rows)
	row[colCompany] = e.Company
	row[colCommit] = e.Commit
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}

	return Entry{
		Timestamp: ts,
		Report:    record[colReport],
		Start:     record[colStart],
		End:       record[colEnd],
		Rows:      rows,
		Company:   record[colCompany],
		Commit:    record[colCommit],
	}, nil
}

// Append writes entries to <repoRoot>/logs/report-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening report log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/report-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(repoRoot, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening report log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
