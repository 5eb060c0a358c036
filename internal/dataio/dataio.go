// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     dataio
// Description: Table loading and saving for CSV and XLSX files
// Author:      Mike Stoffels
// Created:     2026-02-16
// License:     MIT
// ============================================================================

// Package dataio reads and writes tables. The format is picked by file
// extension; cells are type-inferred on load and rendered back to their
// canonical text or native spreadsheet form on save.
package dataio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// Load reads a table from path, dispatching on the file extension.
// XLSX files read their first sheet; use LoadSheet to pick another.
func Load(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "")
	default:
		return nil, apperror.Newf("unsupported file format: %s", filepath.Ext(path)).
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
}

// LoadSheet reads a table from path like Load, selecting a sheet for
// XLSX files. The sheet argument is ignored for CSV.
func LoadSheet(path, sheet string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, sheet)
	default:
		return nil, apperror.Newf("unsupported file format: %s", filepath.Ext(path)).
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
}

// Save writes a table to path, dispatching on the file extension
func Save(t *table.Table, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return SaveCSV(t, path)
	case ".xlsx":
		return SaveXLSX(t, path)
	default:
		return apperror.Newf("unsupported file format: %s", filepath.Ext(path)).
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
}

// buildTable turns a header row plus raw text records into a typed
// table. Rows shorter than the header are padded with null, longer rows
// are truncated to the header width.
func buildTable(headers []string, records [][]string) (*table.Table, error) {
	names := dedupeHeaders(headers)

	rows := make([][]table.Value, len(records))
	for ri, rec := range records {
		row := make([]table.Value, len(names))
		for ci := range names {
			if ci < len(rec) {
				row[ci] = table.ParseCell(rec[ci])
			} else {
				row[ci] = table.Null()
			}
		}
		rows[ri] = row
	}

	t, err := table.NewWithRows(names, rows)
	if err != nil {
		return nil, err
	}
	inferDateColumns(t)
	return t, nil
}

// dedupeHeaders trims header names, replaces empty ones, and suffixes
// repeats with .1, .2 and so on, keeping the first occurrence bare.
func dedupeHeaders(raw []string) []string {
	names := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	counts := make(map[string]int)

	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Column_%d", i+1)
		}
		if taken[name] {
			base := name
			n := counts[base]
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if !taken[name] {
					counts[base] = n
					break
				}
			}
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// inferDateColumns upgrades all-text columns whose every value parses
// as a date. CSV delivers dates as plain text; typed date cells let the
// date operations and metadata labels work without a conversion step.
func inferDateColumns(t *table.Table) {
	for ci := range t.Columns {
		cells := t.Columns[ci].Cells
		parsed := make([]table.Value, len(cells))
		nonNull := 0
		allDates := true

		for i, v := range cells {
			if v.IsNull() {
				parsed[i] = v
				continue
			}
			if v.Kind() != table.KindText {
				allDates = false
				break
			}
			ts, ok := table.ParseDateString(v.TextValue())
			if !ok {
				allDates = false
				break
			}
			parsed[i] = table.Date(ts)
			nonNull++
		}

		if allDates && nonNull > 0 {
			t.Columns[ci].Cells = parsed
		}
	}
}
