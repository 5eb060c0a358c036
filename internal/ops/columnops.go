// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     ops
// Description: Column-level operations (add, drop, rename, reorder, merge)
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

// DeleteColumn removes a column by name
func DeleteColumn(t *table.Table, columnName string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(columnName)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", columnName).
			WithCode(apperror.CodeUnknownColumn)
	}
	out := t.Clone()
	out.Columns = append(out.Columns[:idx], out.Columns[idx+1:]...)
	return out, nil
}

// RenameColumn changes a column name. The new name must not collide
// with an existing column.
func RenameColumn(t *table.Table, oldName, newName string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(oldName)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", oldName).
			WithCode(apperror.CodeUnknownColumn)
	}
	if newName != oldName && t.HasColumn(newName) {
		return nil, apperror.Newf("Column '%s' already exists", newName).
			WithCode(apperror.CodeDuplicateColumn)
	}
	out := t.Clone()
	out.Columns[idx].Name = newName
	return out, nil
}

// AddConstantColumn appends a new column filled with one value
func AddConstantColumn(t *table.Table, columnName string, value table.Value) (*table.Table, error) {
	if t.HasColumn(columnName) {
		return nil, apperror.Newf("Column '%s' already exists", columnName).
			WithCode(apperror.CodeDuplicateColumn)
	}
	out := t.Clone()
	cells := make([]table.Value, t.RowCount())
	for i := range cells {
		cells[i] = value
	}
	out.Columns = append(out.Columns, table.Column{Name: columnName, Cells: cells})
	return out, nil
}

// AddEmptyColumn appends a new column of nulls
func AddEmptyColumn(t *table.Table, columnName string) (*table.Table, error) {
	return AddConstantColumn(t, columnName, table.Null())
}

// ReorderColumns arranges the columns into the given order, which must
// be an exact permutation of the current column names
func ReorderColumns(t *table.Table, newOrder []string) (*table.Table, error) {
	for _, name := range newOrder {
		if !t.HasColumn(name) {
			return nil, apperror.Newf("Column '%s' not found", name).
				WithCode(apperror.CodeUnknownColumn)
		}
	}

	wanted := make(map[string]bool, len(newOrder))
	for _, name := range newOrder {
		if wanted[name] {
			return nil, apperror.Newf("Duplicate column '%s' in new order", name).
				WithCode(apperror.CodeColumnSetMismatch)
		}
		wanted[name] = true
	}
	var missing []string
	for _, c := range t.Columns {
		if !wanted[c.Name] {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, apperror.Newf("Missing columns in new order: {%s}", strings.Join(missing, ", ")).
			WithCode(apperror.CodeColumnSetMismatch).
			WithDetail("missing", missing)
	}

	out := &table.Table{Columns: make([]table.Column, 0, len(newOrder))}
	src := t.Clone()
	for _, name := range newOrder {
		idx, _ := src.ColumnIndex(name)
		out.Columns = append(out.Columns, src.Columns[idx])
	}
	return out, nil
}

// DuplicateColumn copies a column under a new name, appended at the end
func DuplicateColumn(t *table.Table, source, target string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(source)
	if !ok {
		return nil, apperror.Newf("Source column '%s' not found", source).
			WithCode(apperror.CodeUnknownColumn)
	}
	if t.HasColumn(target) {
		return nil, apperror.Newf("Target column '%s' already exists", target).
			WithCode(apperror.CodeDuplicateColumn)
	}
	out := t.Clone()
	cells := make([]table.Value, len(out.Columns[idx].Cells))
	copy(cells, out.Columns[idx].Cells)
	out.Columns = append(out.Columns, table.Column{Name: target, Cells: cells})
	return out, nil
}

// MergeColumns joins the text rendering of several columns into one new
// column. Null cells render as empty text.
func MergeColumns(t *table.Table, columns []string, separator, target string) (*table.Table, error) {
	indices := make([]int, 0, len(columns))
	for _, name := range columns {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return nil, apperror.Newf("Column '%s' not found", name).
				WithCode(apperror.CodeUnknownColumn)
		}
		indices = append(indices, idx)
	}
	if t.HasColumn(target) {
		return nil, apperror.Newf("Target column '%s' already exists", target).
			WithCode(apperror.CodeDuplicateColumn)
	}

	out := t.Clone()
	cells := make([]table.Value, t.RowCount())
	parts := make([]string, len(indices))
	for ri := range cells {
		for pi, ci := range indices {
			parts[pi] = t.Columns[ci].Cells[ri].AsString()
		}
		cells[ri] = table.Text(strings.Join(parts, separator))
	}
	out.Columns = append(out.Columns, table.Column{Name: target, Cells: cells})
	return out, nil
}
