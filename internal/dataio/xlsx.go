// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     dataio
// Description: XLSX reading and writing via excelize
// Author:      Mike Stoffels
// Created:     2026-02-16
// License:     MIT
// ============================================================================

package dataio

import (
	"github.com/xuri/excelize/v2"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// LoadXLSX reads a table from an XLSX file. An empty sheet name selects
// the first sheet. The first row is the header.
func LoadXLSX(path, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to open file").
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to read sheet").
			WithCode(apperror.CodeIOError).
			WithDetail("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, apperror.New("file contains no data").
			WithCode(apperror.CodeIOError).
			WithDetail("sheet", sheet)
	}

	return buildTable(rows[0], rows[1:])
}

// SaveXLSX writes a table to an XLSX file with a single sheet named
// Sheet1. Cells keep their native types so spreadsheets treat numbers
// as numbers.
func SaveXLSX(t *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for ci, name := range t.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return apperror.Wrap(err, "failed to write sheet").
				WithCode(apperror.CodeIOError)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return apperror.Wrap(err, "failed to write sheet").
				WithCode(apperror.CodeIOError)
		}
	}

	for ci := range t.Columns {
		for ri, v := range t.Columns[ci].Cells {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return apperror.Wrap(err, "failed to write sheet").
					WithCode(apperror.CodeIOError)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return apperror.Wrap(err, "failed to write sheet").
					WithCode(apperror.CodeIOError)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperror.Wrap(err, "failed to save file").
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
	return nil
}

// cellValue maps a table value onto the native type excelize stores
func cellValue(v table.Value) interface{} {
	switch v.Kind() {
	case table.KindInt:
		return v.IntValue()
	case table.KindFloat:
		return v.FloatValue()
	case table.KindBool:
		return v.BoolValue()
	case table.KindDate:
		return v.DateValue()
	case table.KindText:
		return v.TextValue()
	default:
		return nil
	}
}
