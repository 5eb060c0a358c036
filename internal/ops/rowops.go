// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     ops
// Description: Row-level operations (delete, filter, insert, sort, dedupe)
// Author:      Mike Stoffels
// Created:     2026-02-11
// License:     MIT
// ============================================================================

package ops

import (
	"sort"
	"strings"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// DeleteRow removes a single row. The index is one-based.
func DeleteRow(t *table.Table, rowIndex int) (*table.Table, error) {
	idx, err := t.CheckRowIndex(rowIndex)
	if err != nil {
		return nil, err
	}
	return filterRows(t, func(i int) bool { return i != idx }), nil
}

// DeleteRows removes several rows at once. All indices are validated
// against the current row count before anything is removed.
func DeleteRows(t *table.Table, rowIndices []int) (*table.Table, error) {
	drop := make(map[int]bool, len(rowIndices))
	for _, ri := range rowIndices {
		idx, err := t.CheckRowIndex(ri)
		if err != nil {
			return nil, err
		}
		drop[idx] = true
	}
	return filterRows(t, func(i int) bool { return !drop[i] }), nil
}

// DeleteRowsCondition removes all rows whose cell in the given column
// matches the predicate
func DeleteRowsCondition(t *table.Table, column, operator string, value table.Value) (*table.Table, error) {
	if _, ok := t.ColumnIndex(column); !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	op, err := ParseOperator(operator)
	if err != nil {
		return nil, err
	}
	mask, err := columnMask(t, column, op, value)
	if err != nil {
		return nil, err
	}
	return filterRows(t, func(i int) bool { return !mask[i] }), nil
}

// KeepRowsCondition keeps only the rows whose cell in the given column
// matches the predicate
func KeepRowsCondition(t *table.Table, column, operator string, value table.Value) (*table.Table, error) {
	if _, ok := t.ColumnIndex(column); !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	op, err := ParseOperator(operator)
	if err != nil {
		return nil, err
	}
	mask, err := columnMask(t, column, op, value)
	if err != nil {
		return nil, err
	}
	return filterRows(t, func(i int) bool { return mask[i] }), nil
}

// InsertRow inserts a full row before the one-based index. Index N+1
// appends. The value list must cover every column.
func InsertRow(t *table.Table, rowIndex int, values []table.Value) (*table.Table, error) {
	if len(values) != t.ColumnCount() {
		return nil, apperror.Newf("Expected %d values, got %d", t.ColumnCount(), len(values)).
			WithCode(apperror.CodeColumnSetMismatch)
	}
	n := t.RowCount()
	if rowIndex < 1 || rowIndex > n+1 {
		return nil, apperror.Newf("Row index %d out of range (1-%d)", rowIndex, n+1).
			WithCode(apperror.CodeIndexOutOfRange)
	}

	idx := rowIndex - 1
	out := t.Clone()
	for ci := range out.Columns {
		cells := out.Columns[ci].Cells
		cells = append(cells, table.Null())
		copy(cells[idx+1:], cells[idx:])
		cells[idx] = values[ci]
		out.Columns[ci].Cells = cells
	}
	return out, nil
}

// SortRows orders the rows by one column. Null cells sort last in both
// directions. The sort is stable, equal rows keep their relative order.
func SortRows(t *table.Table, column string, ascending bool) (*table.Table, error) {
	ci, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}

	order := make([]int, t.RowCount())
	for i := range order {
		order[i] = i
	}
	cells := t.Columns[ci].Cells
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := cells[order[a]], cells[order[b]]
		if va.IsNull() || vb.IsNull() {
			return !va.IsNull() && vb.IsNull()
		}
		cmp := table.CompareValues(va, vb)
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return reorderRows(t, order), nil
}

// RemoveDuplicates drops repeated rows, keeping the first occurrence.
// With subset columns only those cells decide equality.
func RemoveDuplicates(t *table.Table, subsetColumns []string) (*table.Table, error) {
	cols := make([]int, 0)
	if len(subsetColumns) > 0 {
		for _, name := range subsetColumns {
			ci, ok := t.ColumnIndex(name)
			if !ok {
				return nil, apperror.Newf("Column '%s' not found", name).
					WithCode(apperror.CodeUnknownColumn)
			}
			cols = append(cols, ci)
		}
	} else {
		for ci := range t.Columns {
			cols = append(cols, ci)
		}
	}

	seen := make(map[string]bool, t.RowCount())
	keep := make([]bool, t.RowCount())
	for ri := 0; ri < t.RowCount(); ri++ {
		var b strings.Builder
		for _, ci := range cols {
			b.WriteString(rowKeyPart(t.Columns[ci].Cells[ri]))
			b.WriteByte(0x1f)
		}
		key := b.String()
		if !seen[key] {
			seen[key] = true
			keep[ri] = true
		}
	}
	return filterRows(t, func(i int) bool { return keep[i] }), nil
}

// rowKeyPart canonicalizes a cell for duplicate detection so that
// numerically equal cells of different kinds collapse
func rowKeyPart(v table.Value) string {
	if v.IsNull() {
		return "_"
	}
	if isNumericKind(v) {
		f, _ := v.AsFloat()
		return "n:" + table.Float(f).AsString()
	}
	if v.Kind() == table.KindDate {
		return "d:" + v.AsString()
	}
	return "s:" + v.AsString()
}

// filterRows builds a new table containing the rows whose index passes
// the keep function
func filterRows(t *table.Table, keep func(int) bool) *table.Table {
	out := &table.Table{Columns: make([]table.Column, len(t.Columns))}
	n := t.RowCount()
	for ci, c := range t.Columns {
		cells := make([]table.Value, 0, n)
		for ri := 0; ri < n; ri++ {
			if keep(ri) {
				cells = append(cells, c.Cells[ri])
			}
		}
		out.Columns[ci] = table.Column{Name: c.Name, Cells: cells}
	}
	return out
}

// reorderRows builds a new table with rows arranged by the index list
func reorderRows(t *table.Table, order []int) *table.Table {
	out := &table.Table{Columns: make([]table.Column, len(t.Columns))}
	for ci, c := range t.Columns {
		cells := make([]table.Value, len(order))
		for i, ri := range order {
			cells[i] = c.Cells[ri]
		}
		out.Columns[ci] = table.Column{Name: c.Name, Cells: cells}
	}
	return out
}
