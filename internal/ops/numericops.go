// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     ops
// Description: Numeric operations (scale, round, normalize, ratios)
// Author:      Mike Stoffels
// Created:     2026-02-12
// License:     MIT
// ============================================================================

package ops

import (
	"math"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// MultiplyColumn multiplies every cell by a factor. Cells that cannot
// be read as numbers become null.
func MultiplyColumn(t *table.Table, column string, factor table.Value) (*table.Table, error) {
	return mapNumeric(t, column, func(cell table.Value) table.Value {
		return numericCombine(cell, factor, func(a, b float64) float64 { return a * b })
	})
}

// AddToColumn adds a constant to every cell. Cells that cannot be read
// as numbers become null.
func AddToColumn(t *table.Table, column string, value table.Value) (*table.Table, error) {
	return mapNumeric(t, column, func(cell table.Value) table.Value {
		return numericCombine(cell, value, func(a, b float64) float64 { return a + b })
	})
}

// RoundColumn rounds every numeric cell to the given number of decimal
// places, ties going to the even neighbour
func RoundColumn(t *table.Table, column string, decimals int) (*table.Table, error) {
	shift := math.Pow(10, float64(decimals))
	return mapNumeric(t, column, func(cell table.Value) table.Value {
		if cell.Kind() == table.KindInt {
			return cell
		}
		f, ok := cell.AsFloat()
		if !ok {
			return table.Null()
		}
		return table.Float(math.RoundToEven(f*shift) / shift)
	})
}

// NormalizeColumn rescales a column. Method "minmax" maps onto [0, 1],
// "zscore" standardizes to mean zero and sample deviation one. A
// column without spread collapses to all zeros.
func NormalizeColumn(t *table.Table, column, method string) (*table.Table, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}
	if method != "minmax" && method != "zscore" {
		return nil, apperror.Newf("Invalid method: %s", method).
			WithCode(apperror.CodeInvalidInput)
	}

	values, present := numericColumn(t.Columns[idx].Cells)

	var scale func(float64) float64
	switch method {
	case "minmax":
		minV, maxV, any := minMax(values, present)
		if !any || maxV <= minV {
			return constantColumn(t, idx, table.Int(0)), nil
		}
		scale = func(v float64) float64 { return (v - minV) / (maxV - minV) }
	default:
		mean, std := meanStd(values, present)
		if !(std > 0) {
			return constantColumn(t, idx, table.Int(0)), nil
		}
		scale = func(v float64) float64 { return (v - mean) / std }
	}

	out := t.Clone()
	for ri := range out.Columns[idx].Cells {
		if present[ri] {
			out.Columns[idx].Cells[ri] = table.Float(scale(values[ri]))
		} else {
			out.Columns[idx].Cells[ri] = table.Null()
		}
	}
	return out, nil
}

// CreateRatio writes numerator/denominator into a target column,
// creating or overwriting it. Division by zero yields null.
func CreateRatio(t *table.Table, numeratorCol, denominatorCol, target string) (*table.Table, error) {
	ni, ok := t.ColumnIndex(numeratorCol)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", numeratorCol).
			WithCode(apperror.CodeUnknownColumn)
	}
	di, ok := t.ColumnIndex(denominatorCol)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", denominatorCol).
			WithCode(apperror.CodeUnknownColumn)
	}

	cells := make([]table.Value, t.RowCount())
	for ri := range cells {
		num, nok := t.Columns[ni].Cells[ri].AsFloat()
		den, dok := t.Columns[di].Cells[ri].AsFloat()
		if !nok || !dok || den == 0 {
			cells[ri] = table.Null()
			continue
		}
		cells[ri] = table.Float(num / den)
	}
	return setOrAppendColumn(t, target, cells), nil
}

// numericCombine applies a binary float operation, keeping the integer
// kind when both operands are integers
func numericCombine(cell, operand table.Value, op func(a, b float64) float64) table.Value {
	cf, cok := cell.AsFloat()
	of, ook := operand.AsFloat()
	if !cok || !ook {
		return table.Null()
	}
	result := op(cf, of)
	if cell.Kind() == table.KindInt && operand.Kind() == table.KindInt {
		return table.Int(int64(result))
	}
	return table.Float(result)
}

// mapNumeric clones the table and rewrites one column cell by cell
func mapNumeric(t *table.Table, column string, fn func(table.Value) table.Value) (*table.Table, error) {
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
		out.Columns[idx].Cells[ri] = fn(cell)
	}
	return out, nil
}

// numericColumn coerces a cell slice to floats, flagging which rows
// hold usable numbers
func numericColumn(cells []table.Value) (values []float64, present []bool) {
	values = make([]float64, len(cells))
	present = make([]bool, len(cells))
	for i, cell := range cells {
		if f, ok := cell.AsFloat(); ok {
			values[i] = f
			present[i] = true
		}
	}
	return values, present
}

func minMax(values []float64, present []bool) (minV, maxV float64, any bool) {
	for i, v := range values {
		if !present[i] {
			continue
		}
		if !any || v < minV {
			minV = v
		}
		if !any || v > maxV {
			maxV = v
		}
		any = true
	}
	return minV, maxV, any
}

// meanStd computes mean and sample standard deviation (n-1) over the
// usable values
func meanStd(values []float64, present []bool) (mean, std float64) {
	n := 0
	for i, v := range values {
		if present[i] {
			mean += v
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	mean /= float64(n)
	if n < 2 {
		return mean, 0
	}
	var sq float64
	for i, v := range values {
		if present[i] {
			sq += (v - mean) * (v - mean)
		}
	}
	return mean, math.Sqrt(sq / float64(n-1))
}

// constantColumn clones the table and fills one column with a single
// value on every row
func constantColumn(t *table.Table, idx int, v table.Value) *table.Table {
	out := t.Clone()
	for ri := range out.Columns[idx].Cells {
		out.Columns[idx].Cells[ri] = v
	}
	return out
}
