// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     ops
// Description: Date operations (reformat, extract parts, durations)
// Author:      Mike Stoffels
// Created:     2026-02-12
// License:     MIT
// ============================================================================

package ops

import (
	"math"
	"strings"
	"time"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// ReformatDate rewrites a date column from one strftime format into
// another. Null cells pass through, any other cell that does not match
// the old format fails the whole operation.
func ReformatDate(t *table.Table, column, oldFormat, newFormat string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	oldLayout, err := strftimeLayout(oldFormat)
	if err != nil {
		return nil, err
	}
	newLayout, err := strftimeLayout(newFormat)
	if err != nil {
		return nil, err
	}

	out := t.Clone()
	for ri, cell := range out.Columns[idx].Cells {
		if cell.IsNull() {
			continue
		}
		var parsed time.Time
		if cell.Kind() == table.KindDate {
			parsed = cell.DateValue()
		} else {
			parsed, err = time.Parse(oldLayout, cell.AsString())
			if err != nil {
				return nil, apperror.Newf("time data '%s' does not match format '%s'",
					cell.AsString(), oldFormat).
					WithCode(apperror.CodeParseFailure).
					WithDetail("row", ri+1)
			}
		}
		out.Columns[idx].Cells[ri] = table.Text(parsed.Format(newLayout))
	}
	return out, nil
}

// ExtractDatePart pulls the year, month or day out of a date column
// into a target column, creating or overwriting it
func ExtractDatePart(t *table.Table, column, part, targetColumn string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	if part != "year" && part != "month" && part != "day" {
		return nil, apperror.Newf("Invalid part: %s", part).
			WithCode(apperror.CodeInvalidInput)
	}

	cells := make([]table.Value, t.RowCount())
	for ri, cell := range t.Columns[idx].Cells {
		if cell.IsNull() {
			cells[ri] = table.Null()
			continue
		}
		dt, ok := cell.AsDate()
		if !ok {
			return nil, apperror.Newf("Unable to parse date: %s", cell.AsString()).
				WithCode(apperror.CodeParseFailure).
				WithDetail("row", ri+1)
		}
		switch part {
		case "year":
			cells[ri] = table.Int(int64(dt.Year()))
		case "month":
			cells[ri] = table.Int(int64(dt.Month()))
		case "day":
			cells[ri] = table.Int(int64(dt.Day()))
		}
	}
	return setOrAppendColumn(t, targetColumn, cells), nil
}

// ConvertToDatetime coerces a column to the date type. Cells that
// cannot be parsed become null instead of failing the operation.
func ConvertToDatetime(t *table.Table, column string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	out := t.Clone()
	for ri, cell := range out.Columns[idx].Cells {
		if cell.IsNull() {
			continue
		}
		if dt, ok := cell.AsDate(); ok {
			out.Columns[idx].Cells[ri] = table.Date(dt)
		} else {
			out.Columns[idx].Cells[ri] = table.Null()
		}
	}
	return out, nil
}

// CalculateDuration writes the time difference between two date
// columns into a target column, in whole days or fractional hours.
// Rows where either side is null get a null duration.
func CalculateDuration(t *table.Table, startCol, endCol, targetCol, unit string) (*table.Table, error) {
	si, ok := t.ColumnIndex(startCol)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", startCol).
			WithCode(apperror.CodeUnknownColumn)
	}
	ei, ok := t.ColumnIndex(endCol)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", endCol).
			WithCode(apperror.CodeUnknownColumn)
	}

	n := t.RowCount()
	starts := make([]time.Time, n)
	ends := make([]time.Time, n)
	null := make([]bool, n)
	for ri := 0; ri < n; ri++ {
		sv := t.Columns[si].Cells[ri]
		ev := t.Columns[ei].Cells[ri]
		if sv.IsNull() || ev.IsNull() {
			null[ri] = true
			continue
		}
		var ok bool
		if starts[ri], ok = sv.AsDate(); !ok {
			return nil, apperror.Newf("Unable to parse date: %s", sv.AsString()).
				WithCode(apperror.CodeParseFailure).
				WithDetail("column", startCol).
				WithDetail("row", ri+1)
		}
		if ends[ri], ok = ev.AsDate(); !ok {
			return nil, apperror.Newf("Unable to parse date: %s", ev.AsString()).
				WithCode(apperror.CodeParseFailure).
				WithDetail("column", endCol).
				WithDetail("row", ri+1)
		}
	}

	if unit != "days" && unit != "hours" {
		return nil, apperror.Newf("Unsupported unit: %s", unit).
			WithCode(apperror.CodeInvalidInput)
	}

	cells := make([]table.Value, n)
	for ri := 0; ri < n; ri++ {
		if null[ri] {
			cells[ri] = table.Null()
			continue
		}
		d := ends[ri].Sub(starts[ri])
		if unit == "days" {
			cells[ri] = table.Int(int64(math.Floor(d.Hours() / 24)))
		} else {
			cells[ri] = table.Float(d.Seconds() / 3600)
		}
	}
	return setOrAppendColumn(t, targetCol, cells), nil
}

// setOrAppendColumn clones the table and writes the cells into the
// named column, appending it when it does not exist yet
func setOrAppendColumn(t *table.Table, name string, cells []table.Value) *table.Table {
	out := t.Clone()
	if idx, ok := out.ColumnIndex(name); ok {
		out.Columns[idx].Cells = cells
		return out
	}
	out.Columns = append(out.Columns, table.Column{Name: name, Cells: cells})
	return out
}

// strftime directives and their Go layout counterparts
var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'p': "PM",
	'M': "04",
	'S': "05",
	'B': "January",
	'b': "Jan",
	'A': "Monday",
	'a': "Mon",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
	'%': "%",
}

// strftimeLayout translates a strftime format string into a Go time
// layout
func strftimeLayout(format string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteByte(format[i])
			continue
		}
		if i+1 >= len(format) {
			return "", apperror.Newf("stray %% in format '%s'", format).
				WithCode(apperror.CodeParseFailure)
		}
		i++
		layout, ok := strftimeDirectives[format[i]]
		if !ok {
			return "", apperror.Newf("'%c' is a bad directive in format '%s'", format[i], format).
				WithCode(apperror.CodeParseFailure)
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}
