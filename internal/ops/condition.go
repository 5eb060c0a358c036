// Package ops implements the table operation catalog. Every function
// takes the current table and typed parameters and returns a new table
// (or an insight), leaving its input untouched.
package ops

import (
	"strings"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// Operator is a comparison or string predicate used by conditional
// operations
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpContains     Operator = "contains"
	OpStartsWith   Operator = "startswith"
	OpEndsWith     Operator = "endswith"
)

// ParseOperator validates an operator string for row filtering
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual,
		OpContains, OpStartsWith, OpEndsWith:
		return op, nil
	default:
		return "", unsupportedOperator(s)
	}
}

// ParseComparisonOperator validates an operator for conditional value
// replacement, which accepts only the ordering operators
func ParseComparisonOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		return op, nil
	default:
		return "", unsupportedOperator(s)
	}
}

func unsupportedOperator(s string) error {
	return apperror.Newf("Unsupported operator: %s", s).
		WithCode(apperror.CodeInvalidOperator).
		WithDetail("operator", s)
}

// looseEqual compares a cell against a condition value. Numbers,
// booleans and numeric text compare numerically within the numeric
// kinds, text compares exactly, null equals nothing.
func looseEqual(cell, operand table.Value) bool {
	if cell.IsNull() || operand.IsNull() {
		return false
	}
	if isNumericKind(cell) && isNumericKind(operand) {
		cf, _ := cell.AsFloat()
		of, _ := operand.AsFloat()
		return cf == of
	}
	return cell.Equal(operand)
}

func isNumericKind(v table.Value) bool {
	switch v.Kind() {
	case table.KindInt, table.KindFloat, table.KindBool:
		return true
	default:
		return false
	}
}

// Matches evaluates a predicate against a single cell. Ordering
// operators compare numerically when both sides coerce to numbers and
// by text otherwise; null cells only ever match "!=". String operators
// work on the text rendering of the cell and never match null.
func Matches(cell table.Value, op Operator, operand table.Value) bool {
	switch op {
	case OpEqual:
		return looseEqual(cell, operand)
	case OpNotEqual:
		return !looseEqual(cell, operand)
	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		if cell.IsNull() || operand.IsNull() {
			return false
		}
		cmp := table.CompareValues(cell, operand)
		switch op {
		case OpLess:
			return cmp < 0
		case OpGreater:
			return cmp > 0
		case OpLessEqual:
			return cmp <= 0
		default:
			return cmp >= 0
		}
	case OpContains:
		return !cell.IsNull() && strings.Contains(cell.AsString(), operand.AsString())
	case OpStartsWith:
		return !cell.IsNull() && strings.HasPrefix(cell.AsString(), operand.AsString())
	case OpEndsWith:
		return !cell.IsNull() && strings.HasSuffix(cell.AsString(), operand.AsString())
	default:
		return false
	}
}

// columnMask evaluates the predicate over one column and returns the
// per-row match results
func columnMask(t *table.Table, column string, op Operator, operand table.Value) ([]bool, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, len(col.Cells))
	for i, cell := range col.Cells {
		mask[i] = Matches(cell, op, operand)
	}
	return mask, nil
}
