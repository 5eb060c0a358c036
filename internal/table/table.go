// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     table
// Description: In-memory table with named, typed columns
// Author:      Mike Stoffels
// Created:     2026-02-10
// License:     MIT
// ============================================================================

package table

import (
	"fmt"
	"strings"

	"github.com/msto63/mTW/pkg/core/apperror"
)

// Column is a named list of cells. All columns of a table have the
// same length.
type Column struct {
	Name  string
	Cells []Value
}

// Table is the in-memory working copy of a tabular dataset. It is a
// plain value container; operations clone it before mutating so that
// snapshots stay untouched.
type Table struct {
	Columns []Column
}

// New creates an empty table with the given column names
func New(names ...string) (*Table, error) {
	t := &Table{Columns: make([]Column, 0, len(names))}
	for _, name := range names {
		if t.HasColumn(name) {
			return nil, apperror.Newf("duplicate column %q", name).
				WithCode(apperror.CodeDuplicateColumn)
		}
		t.Columns = append(t.Columns, Column{Name: name})
	}
	return t, nil
}

// NewWithRows creates a table from column names and row-major data.
// Short rows are padded with null, long rows are an error.
func NewWithRows(names []string, rows [][]Value) (*Table, error) {
	t, err := New(names...)
	if err != nil {
		return nil, err
	}
	for ri, row := range rows {
		if len(row) > len(names) {
			return nil, apperror.Newf("row %d has %d values, table has %d columns",
				ri+1, len(row), len(names)).WithCode(apperror.CodeColumnSetMismatch)
		}
		for ci := range t.Columns {
			if ci < len(row) {
				t.Columns[ci].Cells = append(t.Columns[ci].Cells, row[ci])
			} else {
				t.Columns[ci].Cells = append(t.Columns[ci].Cells, Null())
			}
		}
	}
	return t, nil
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// ColumnIndex returns the position of the named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Column returns the named column, or an unknown-column error naming it
func (t *Table) Column(name string) (*Column, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", name).
			WithCode(apperror.CodeUnknownColumn).
			WithDetail("column", name)
	}
	return &t.Columns[idx], nil
}

// Row returns a copy of the cells of the given zero-based row
func (t *Table) Row(idx int) []Value {
	row := make([]Value, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = c.Cells[idx]
	}
	return row
}

// Clone returns a deep copy. Cell values are immutable, so copying the
// cell slices is sufficient.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		cells := make([]Value, len(c.Cells))
		copy(cells, c.Cells)
		out.Columns[i] = Column{Name: c.Name, Cells: cells}
	}
	return out
}

// Equal reports whether two tables have identical shape, column names
// and cell values
func (t *Table) Equal(other *Table) bool {
	if t.ColumnCount() != other.ColumnCount() || t.RowCount() != other.RowCount() {
		return false
	}
	for i, c := range t.Columns {
		oc := other.Columns[i]
		if c.Name != oc.Name {
			return false
		}
		for j, v := range c.Cells {
			if !v.Equal(oc.Cells[j]) {
				return false
			}
		}
	}
	return true
}

// Shape returns rows and columns as a pair
func (t *Table) Shape() (rows, cols int) {
	return t.RowCount(), t.ColumnCount()
}

// CheckRowIndex validates a one-based row index and returns it
// zero-based. The error message carries the valid range.
func (t *Table) CheckRowIndex(idx int) (int, error) {
	n := t.RowCount()
	if idx < 1 || idx > n {
		return 0, apperror.Newf("Row index %d out of range (1-%d)", idx, n).
			WithCode(apperror.CodeIndexOutOfRange).
			WithDetail("row_index", idx).
			WithDetail("rows", n)
	}
	return idx - 1, nil
}

// String renders a compact shape description for logging
func (t *Table) String() string {
	return fmt.Sprintf("Table(%d rows x %d columns)", t.RowCount(), t.ColumnCount())
}

// Preview renders the first n rows as aligned plain text. Used for
// logging and the command line preview.
func (t *Table) Preview(n int) string {
	if len(t.Columns) == 0 {
		return "(leere Tabelle)"
	}
	if n > t.RowCount() {
		n = t.RowCount()
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c.Name)
		for j := 0; j < n; j++ {
			if l := len(c.Cells[j].AsString()); l > widths[i] {
				widths[i] = l
			}
		}
	}

	var b strings.Builder
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], c.Name)
	}
	b.WriteByte('\n')
	for j := 0; j < n; j++ {
		for i, c := range t.Columns {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], c.Cells[j].AsString())
		}
		b.WriteByte('\n')
	}
	if rest := t.RowCount() - n; rest > 0 {
		fmt.Fprintf(&b, "... %d weitere Zeilen\n", rest)
	}
	return b.String()
}
