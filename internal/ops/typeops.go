// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     ops
// Description: Column type conversion
// Author:      Mike Stoffels
// Created:     2026-02-12
// License:     MIT
// ============================================================================

package ops

import (
	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// ConvertType casts a column to a target type. Numeric targets turn
// unreadable cells into null, fractional values truncate toward zero
// for the int target. Boolean follows the truthiness rules of the
// value type and keeps null as null.
func ConvertType(t *table.Table, column, targetType string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}

	var convert func(table.Value) table.Value
	switch targetType {
	case "int":
		convert = func(v table.Value) table.Value {
			if i, ok := v.AsInt(); ok {
				return table.Int(i)
			}
			return table.Null()
		}
	case "float":
		convert = func(v table.Value) table.Value {
			if f, ok := v.AsFloat(); ok {
				return table.Float(f)
			}
			return table.Null()
		}
	case "str", "text":
		convert = func(v table.Value) table.Value {
			return table.Text(v.AsString())
		}
	case "boolean", "bool":
		convert = func(v table.Value) table.Value {
			if b, ok := v.AsBool(); ok {
				return table.Bool(b)
			}
			return table.Null()
		}
	default:
		return nil, apperror.Newf("Invalid target_type: %s", targetType).
			WithCode(apperror.CodeInvalidInput)
	}

	out := t.Clone()
	for ri, cell := range out.Columns[idx].Cells {
		if cell.IsNull() {
			continue
		}
		out.Columns[idx].Cells[ri] = convert(cell)
	}
	return out, nil
}
