// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     ops
// Description: Aggregation operations returning insights over the table
// Author:      Mike Stoffels
// Created:     2026-02-12
// License:     MIT
// ============================================================================

package ops

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// Insight is the result of an aggregation. It never modifies the
// table, the response is markdown ready for the chat view.
type Insight struct {
	Response string
	Data     map[string]interface{}
}

// GroupAggregate groups rows by one or more key columns and reduces
// another column per group. Rows with a null group key are skipped,
// groups are reported in key order.
func GroupAggregate(t *table.Table, groupBy []string, aggColumn, aggFunc string) (*Insight, error) {
	keyIdx := make([]int, 0, len(groupBy))
	for _, name := range groupBy {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return nil, apperror.Newf("Column '%s' not found", name).
				WithCode(apperror.CodeUnknownColumn)
		}
		keyIdx = append(keyIdx, idx)
	}
	aggIdx, ok := t.ColumnIndex(aggColumn)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", aggColumn).
			WithCode(apperror.CodeUnknownColumn)
	}
	switch aggFunc {
	case "sum", "mean", "count", "min", "max":
	default:
		return nil, apperror.Newf("Invalid function: %s. Use: ['sum', 'mean', 'count', 'min', 'max']", aggFunc).
			WithCode(apperror.CodeInvalidInput)
	}

	type group struct {
		keys  []table.Value
		cells []table.Value
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

rows:
	for ri := 0; ri < t.RowCount(); ri++ {
		keys := make([]table.Value, len(keyIdx))
		var kb strings.Builder
		for i, ci := range keyIdx {
			cell := t.Columns[ci].Cells[ri]
			if cell.IsNull() {
				continue rows
			}
			keys[i] = cell
			kb.WriteString(rowKeyPart(cell))
			kb.WriteByte(0x1f)
		}
		key := kb.String()
		g, seen := groups[key]
		if !seen {
			g = &group{keys: keys}
			groups[key] = g
			order = append(order, key)
		}
		g.cells = append(g.cells, t.Columns[aggIdx].Cells[ri])
	}

	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := groups[order[a]].keys, groups[order[b]].keys
		for i := range ka {
			if c := table.CompareValues(ka[i], kb[i]); c != 0 {
				return c < 0
			}
		}
		return false
	})

	data := make(map[string]interface{}, len(order))
	lines := make([][2]string, 0, len(order))
	for _, key := range order {
		g := groups[key]
		result := aggregateCells(g.cells, aggFunc)

		parts := make([]string, len(g.keys))
		for i, kv := range g.keys {
			parts[i] = kv.AsString()
		}
		label := strings.Join(parts, "  ")
		lines = append(lines, [2]string{label, result.AsString()})
		data[strings.Join(parts, ", ")] = valueAny(result)
	}

	funcLabel := strings.ToUpper(aggFunc[:1]) + aggFunc[1:]
	response := fmt.Sprintf("**%s of %s by %s:**\n\n```\n%s\n```",
		funcLabel, aggColumn, strings.Join(groupBy, ", "), alignPairs(lines))
	return &Insight{Response: response, Data: data}, nil
}

// aggregateCells reduces one group of cells
func aggregateCells(cells []table.Value, aggFunc string) table.Value {
	switch aggFunc {
	case "count":
		n := int64(0)
		for _, c := range cells {
			if !c.IsNull() {
				n++
			}
		}
		return table.Int(n)
	case "sum":
		var sum float64
		allInt := true
		for _, c := range cells {
			if f, ok := c.AsFloat(); ok {
				sum += f
				if c.Kind() != table.KindInt {
					allInt = false
				}
			}
		}
		if allInt {
			return table.Int(int64(sum))
		}
		return table.Float(sum)
	case "mean":
		var sum float64
		n := 0
		for _, c := range cells {
			if f, ok := c.AsFloat(); ok {
				sum += f
				n++
			}
		}
		if n == 0 {
			return table.Float(math.NaN())
		}
		return table.Float(sum / float64(n))
	case "min", "max":
		var best table.Value
		found := false
		for _, c := range cells {
			if c.IsNull() {
				continue
			}
			if !found {
				best = c
				found = true
				continue
			}
			cmp := table.CompareValues(c, best)
			if (aggFunc == "min" && cmp < 0) || (aggFunc == "max" && cmp > 0) {
				best = c
			}
		}
		if !found {
			return table.Null()
		}
		return best
	}
	return table.Null()
}

// CountByCategory counts how often each value occurs in a column,
// most frequent first. Null cells are not counted but the row total
// includes them.
func CountByCategory(t *table.Table, column string) (*Insight, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}

	counts := make(map[string]int64)
	labels := make(map[string]string)
	order := make([]string, 0)
	for _, cell := range t.Columns[idx].Cells {
		if cell.IsNull() {
			continue
		}
		key := rowKeyPart(cell)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			labels[key] = cell.AsString()
		}
		counts[key]++
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	data := make(map[string]interface{}, len(order))
	lines := make([][2]string, 0, len(order))
	for _, key := range order {
		lines = append(lines, [2]string{labels[key], fmt.Sprintf("%d", counts[key])})
		data[labels[key]] = counts[key]
	}

	response := fmt.Sprintf("**Count by %s:**\n\n```\n%s\n```\n\nTotal: %d rows",
		column, alignPairs(lines), t.RowCount())
	return &Insight{Response: response, Data: data}, nil
}

// UniqueCounts reports distinct value counts, for one column or for
// every column when the name is empty
func UniqueCounts(t *table.Table, column string) (*Insight, error) {
	if column != "" {
		idx, ok := t.ColumnIndex(column)
		if !ok {
			return nil, apperror.Newf("Column '%s' not found", column).
				WithCode(apperror.CodeUnknownColumn)
		}
		unique := distinctCount(t.Columns[idx].Cells)
		total := t.RowCount()
		percentage := 0.0
		if total > 0 {
			percentage = float64(unique) / float64(total) * 100
		}
		response := fmt.Sprintf("**Unique values in %s:**\n- Unique: %d\n- Total: %d\n- Percentage: %.1f%%",
			column, unique, total, percentage)
		return &Insight{Response: response}, nil
	}

	var b strings.Builder
	b.WriteString("**Unique values per column:**\n\n")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %d", c.Name, distinctCount(c.Cells))
	}
	return &Insight{Response: b.String()}, nil
}

func distinctCount(cells []table.Value) int {
	seen := make(map[string]bool)
	for _, cell := range cells {
		if !cell.IsNull() {
			seen[rowKeyPart(cell)] = true
		}
	}
	return len(seen)
}

// summaryOrder fixes the line order of summary statistics
var summaryOrder = []string{"Count", "Mean", "Median", "Std Dev", "Min", "Max", "25%", "75%"}

// SummaryStats renders descriptive statistics for a column. Cells that
// do not read as numbers are left out of the calculation.
func SummaryStats(t *table.Table, column string) (*Insight, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return nil, apperror.Newf("Column '%s' not found", column).
			WithCode(apperror.CodeUnknownColumn)
	}

	var nums []float64
	for _, cell := range t.Columns[idx].Cells {
		if f, ok := cell.AsFloat(); ok {
			nums = append(nums, f)
		}
	}
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)

	mean, std := meanStdSlice(nums)
	stats := map[string]interface{}{
		"Count":   int64(len(nums)),
		"Mean":    mean,
		"Median":  quantile(sorted, 0.5),
		"Std Dev": std,
		"Min":     sliceMin(sorted),
		"Max":     sliceMax(sorted),
		"25%":     quantile(sorted, 0.25),
		"75%":     quantile(sorted, 0.75),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Summary statistics for %s:**\n\n", column)
	for i, k := range summaryOrder {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch v := stats[k].(type) {
		case int64:
			fmt.Fprintf(&b, "- %s: %d", k, v)
		case float64:
			fmt.Fprintf(&b, "- %s: %s", k, fmtStat(v))
		}
	}
	return &Insight{Response: b.String(), Data: stats}, nil
}

// fmtStat formats a statistic to two decimals, rendering the missing
// value marker for empty inputs
func fmtStat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

// quantile interpolates linearly over the sorted values
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

func sliceMin(sorted []float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	return sorted[0]
}

func sliceMax(sorted []float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	return sorted[len(sorted)-1]
}

// meanStdSlice computes mean and sample standard deviation, NaN when
// there is nothing to measure
func meanStdSlice(nums []float64) (mean, std float64) {
	if len(nums) == 0 {
		return math.NaN(), math.NaN()
	}
	for _, v := range nums {
		mean += v
	}
	mean /= float64(len(nums))
	if len(nums) < 2 {
		return mean, math.NaN()
	}
	var sq float64
	for _, v := range nums {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(nums)-1))
}

// alignPairs renders label/value pairs as two aligned columns, labels
// left-justified and values right-justified
func alignPairs(lines [][2]string) string {
	labelW, valueW := 0, 0
	for _, l := range lines {
		if len(l[0]) > labelW {
			labelW = len(l[0])
		}
		if len(l[1]) > valueW {
			valueW = len(l[1])
		}
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s  %*s", labelW, l[0], valueW, l[1])
	}
	return b.String()
}

// valueAny unwraps a cell into a plain Go value for structured
// insight payloads
func valueAny(v table.Value) interface{} {
	switch v.Kind() {
	case table.KindInt:
		return v.IntValue()
	case table.KindFloat:
		return v.FloatValue()
	case table.KindBool:
		return v.BoolValue()
	case table.KindDate:
		return v.AsString()
	case table.KindText:
		return v.TextValue()
	default:
		return nil
	}
}
