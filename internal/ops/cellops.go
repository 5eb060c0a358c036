// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     ops
// Description: Cell-level value operations (replace, fill, trim, case)
// Author:      Mike Stoffels
// Created:     2026-02-11
// License:     MIT
// ============================================================================

package ops

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// ReplaceText replaces whole-cell matches of one value with another.
// Matching follows the loose equality of conditions, substrings are
// not touched.
func ReplaceText(t *table.Table, column string, oldValue, newValue table.Value) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	out := t.Clone()
	for ri, cell := range out.Columns[idx].Cells {
		if looseEqual(cell, oldValue) {
			out.Columns[idx].Cells[ri] = newValue
		}
	}
	return out, nil
}

// ReplaceConditional sets cells matching a comparison predicate to a
// new value. Only the ordering operators are allowed here.
func ReplaceConditional(t *table.Table, column, operator string, condValue, newValue table.Value) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	op, err := ParseComparisonOperator(operator)
	if err != nil {
		return nil, err
	}
	out := t.Clone()
	for ri, cell := range out.Columns[idx].Cells {
		if Matches(cell, op, condValue) {
			out.Columns[idx].Cells[ri] = newValue
		}
	}
	return out, nil
}

// SetColumnValue overwrites every cell of an existing column with one
// constant
func SetColumnValue(t *table.Table, column string, value table.Value) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	out := t.Clone()
	for ri := range out.Columns[idx].Cells {
		out.Columns[idx].Cells[ri] = value
	}
	return out, nil
}

// FillNA replaces null cells of a column with a fallback value
func FillNA(t *table.Table, column string, value table.Value) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	out := t.Clone()
	for ri, cell := range out.Columns[idx].Cells {
		if cell.IsNull() {
			out.Columns[idx].Cells[ri] = value
		}
	}
	return out, nil
}

// TrimWhitespace strips leading and trailing whitespace from text
// cells. An empty column name trims every column; non-text cells are
// left alone either way.
func TrimWhitespace(t *table.Table, column string) (*table.Table, error) {
	out := t.Clone()
	if column != "" {
		idx, ok := out.ColumnIndex(column)
		if !ok {
			return nil, apperror.Newf("Column '%s' not found", column).
				WithCode(apperror.CodeUnknownColumn)
		}
		trimColumn(&out.Columns[idx])
		return out, nil
	}
	for ci := range out.Columns {
		trimColumn(&out.Columns[ci])
	}
	return out, nil
}

func trimColumn(c *table.Column) {
	for ri, cell := range c.Cells {
		if cell.Kind() == table.KindText {
			c.Cells[ri] = table.Text(strings.TrimSpace(cell.TextValue()))
		}
	}
}

// ChangeCase rewrites a column as text in upper, lower or title case.
// Non-null cells of any kind are stringified first, null stays null.
func ChangeCase(t *table.Table, column, caseType string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	if caseType != "upper" && caseType != "lower" && caseType != "title" {
		return nil, apperror.Newf("Invalid case_type: %s", caseType).
			WithCode(apperror.CodeInvalidInput)
	}

	titleCaser := cases.Title(language.Und)
	out := t.Clone()
	for ri, cell := range out.Columns[idx].Cells {
		if cell.IsNull() {
			continue
		}
		s := cell.AsString()
		switch caseType {
		case "upper":
			s = strings.ToUpper(s)
		case "lower":
			s = strings.ToLower(s)
		case "title":
			s = titleCaser.String(s)
		}
		out.Columns[idx].Cells[ri] = table.Text(s)
	}
	return out, nil
}

// AssignSequence fills an existing column with a running sequence.
// Number sequences count from start, letter sequences run A..Z, AA..
func AssignSequence(t *table.Table, column, sequenceType string, start int) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	if sequenceType != "number" && sequenceType != "uppercase" && sequenceType != "lowercase" {
		return nil, apperror.Newf("Invalid sequence_type: %s. Must be 'number', 'uppercase', or 'lowercase'", sequenceType).
			WithCode(apperror.CodeInvalidInput)
	}

	out := t.Clone()
	for ri := range out.Columns[idx].Cells {
		switch sequenceType {
		case "number":
			out.Columns[idx].Cells[ri] = table.Int(int64(start + ri))
		case "uppercase":
			out.Columns[idx].Cells[ri] = table.Text(sequenceLetters(ri, true))
		case "lowercase":
			out.Columns[idx].Cells[ri] = table.Text(sequenceLetters(ri, false))
		}
	}
	return out, nil
}

// sequenceLetters converts a zero-based index into spreadsheet-style
// letters: 0 is A, 25 is Z, 26 is AA.
func sequenceLetters(n int, upper bool) string {
	base := byte('a')
	if upper {
		base = 'A'
	}
	var letters []byte
	for n >= 0 {
		letters = append([]byte{base + byte(n%26)}, letters...)
		n = n/26 - 1
	}
	return string(letters)
}
