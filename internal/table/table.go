// Package table implements the ordered-row data table behind the
// Canvas-Git mapping file. A Table has a fixed column schema shared by all
// rows; column order is preserved through a CSV round-trip. The zero-row
// table has no columns, which is a valid, observable state.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Row maps a column name to its value. Column order lives on the owning
// Table, not on the row.
type Row map[string]string

// Table is an ordered sequence of rows sharing one column schema.
type Table struct {
	columns []string
	rows    []Row
}

// New creates a table with the given columns and rows. A nil column slice
// produces the empty table.
func New(columns []string, rows ...Row) *Table {
	if len(rows) == 0 && len(columns) == 0 {
		return &Table{}
	}
	return &Table{columns: columns, rows: rows}
}

// FormatError reports a mapping file that cannot be parsed as delimited
// text with a header row.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed table file %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed table: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Load parses comma-separated text with a header row. Row order matches
// input order. An empty stream yields the empty table.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Err: err}
		}

		row := make(Row, len(header))
		for i, column := range header {
			row[column] = record[i]
		}
		rows = append(rows, row)
	}

	return &Table{columns: header, rows: rows}, nil
}

// LoadFile loads a table from a CSV file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) {
			ferr.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Write serializes the header and then every row, in order. An empty table
// writes nothing at all: no rows means no defined columns, so there is no
// header to emit.
func (t *Table) Write(w io.Writer) error {
	if t.Empty() {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}

	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, column := range t.columns {
			record[i] = row[column]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path, replacing any previous contents.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Columns returns the ordered column names. Empty for the empty table.
func (t *Table) Columns() []string {
	columns := make([]string, len(t.columns))
	copy(columns, t.columns)
	return columns
}

// Rows returns the rows in stored order. The returned slice is shared;
// callers must not modify it.
func (t *Table) Rows() []Row { return t.rows }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// HasColumn reports whether the table schema contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, column := range t.columns {
		if column == name {
			return true
		}
	}
	return false
}

// Unique filters items down to those with a distinct key, keeping the first
// occurrence and the original relative order. Raw course listings can
// return the same entity more than once, e.g. a section that appears under
// several cross-listed courses.
func Unique[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	unique := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, item)
	}

	return unique
}
