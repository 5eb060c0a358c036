// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     dataio
// Description: CSV reading and writing
// Author:      Mike Stoffels
// Created:     2026-02-16
// License:     MIT
// ============================================================================

package dataio

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// LoadCSV reads a table from a CSV file. The first row is the header.
func LoadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to open file").
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a table from CSV data. Rows may have uneven field
// counts; they are padded or truncated to the header width.
func ReadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperror.Wrap(err, "failed to read CSV").
			WithCode(apperror.CodeIOError)
	}
	if len(records) == 0 {
		return nil, apperror.New("file contains no data").
			WithCode(apperror.CodeIOError)
	}

	headers := records[0]
	// Spreadsheet exports often lead with a UTF-8 BOM
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	return buildTable(headers, records[1:])
}

// SaveCSV writes a table to a CSV file
func SaveCSV(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperror.Wrap(err, "failed to create file").
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
	defer f.Close()

	if err := WriteCSV(t, f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return apperror.Wrap(err, "failed to write file").
			WithCode(apperror.CodeIOError).
			WithDetail("path", path)
	}
	return nil
}

// WriteCSV writes a table as CSV: header row first, then cells in
// canonical text form with nulls as empty fields.
func WriteCSV(t *table.Table, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.ColumnNames()); err != nil {
		return apperror.Wrap(err, "failed to write CSV").
			WithCode(apperror.CodeIOError)
	}

	rows := t.RowCount()
	record := make([]string, t.ColumnCount())
	for ri := 0; ri < rows; ri++ {
		for ci := range t.Columns {
			record[ci] = t.Columns[ci].Cells[ri].AsString()
		}
		if err := writer.Write(record); err != nil {
			return apperror.Wrap(err, "failed to write CSV").
				WithCode(apperror.CodeIOError)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperror.Wrap(err, "failed to write CSV").
			WithCode(apperror.CodeIOError)
	}
	return nil
}
