// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     command
// Description: Closed action set of the execution engine
// Author:      Mike Stoffels
// Created:     2026-02-13
// License:     MIT
// ============================================================================

package command

// Action names one operation of the engine. The set is closed, every
// action has exactly one typed parameter struct.
type Action string

const (
	// Row operations
	ActionDeleteRow           Action = "delete_row"
	ActionDeleteRows          Action = "delete_rows"
	ActionDeleteRowsCondition Action = "delete_rows_condition"
	ActionKeepRowsCondition   Action = "keep_rows_condition"
	ActionInsertRow           Action = "insert_row"
	ActionSortRows            Action = "sort_rows"
	ActionRemoveDuplicates    Action = "remove_duplicates"

	// Column operations
	ActionDeleteColumn      Action = "delete_column"
	ActionRenameColumn      Action = "rename_column"
	ActionAddConstantColumn Action = "add_constant_column"
	ActionAddEmptyColumn    Action = "add_empty_column"
	ActionReorderColumns    Action = "reorder_columns"
	ActionDuplicateColumn   Action = "duplicate_column"
	ActionMergeColumns      Action = "merge_columns"

	// Cell operations
	ActionReplaceText        Action = "replace_text"
	ActionReplaceConditional Action = "replace_conditional"
	ActionSetColumnValue     Action = "set_column_value"
	ActionFillNA             Action = "fill_na"
	ActionTrimWhitespace     Action = "trim_whitespace"
	ActionChangeCase         Action = "change_case"
	ActionAssignSequence     Action = "assign_sequence"

	// Date operations
	ActionReformatDate      Action = "reformat_date"
	ActionExtractDatePart   Action = "extract_date_part"
	ActionConvertToDatetime Action = "convert_to_datetime"
	ActionCalculateDuration Action = "calculate_duration"

	// Numeric operations
	ActionMultiplyColumn  Action = "multiply_column"
	ActionAddToColumn     Action = "add_to_column"
	ActionRoundColumn     Action = "round_column"
	ActionNormalizeColumn Action = "normalize_column"
	ActionCreateRatio     Action = "create_ratio"

	// Type conversion
	ActionConvertType Action = "convert_type"

	// Aggregations, read-only insights over the table
	ActionGroupAggregate  Action = "group_aggregate"
	ActionCountByCategory Action = "count_by_category"
	ActionUniqueCounts    Action = "unique_counts"
	ActionSummaryStats    Action = "summary_stats"

	// Pass-through actions from the translation layer
	ActionInsight Action = "insight"
	ActionError   Action = "error"
)

// Actions lists every action in catalog order
var Actions = []Action{
	ActionDeleteRow, ActionDeleteRows, ActionDeleteRowsCondition,
	ActionKeepRowsCondition, ActionInsertRow, ActionSortRows,
	ActionRemoveDuplicates,
	ActionDeleteColumn, ActionRenameColumn, ActionAddConstantColumn,
	ActionAddEmptyColumn, ActionReorderColumns, ActionDuplicateColumn,
	ActionMergeColumns,
	ActionReplaceText, ActionReplaceConditional, ActionSetColumnValue,
	ActionFillNA, ActionTrimWhitespace, ActionChangeCase,
	ActionAssignSequence,
	ActionReformatDate, ActionExtractDatePart, ActionConvertToDatetime,
	ActionCalculateDuration,
	ActionMultiplyColumn, ActionAddToColumn, ActionRoundColumn,
	ActionNormalizeColumn, ActionCreateRatio,
	ActionConvertType,
	ActionGroupAggregate, ActionCountByCategory, ActionUniqueCounts,
	ActionSummaryStats,
	ActionInsight, ActionError,
}

// String returns the wire name of the action
func (a Action) String() string {
	return string(a)
}

// Valid reports whether the action is part of the catalog
func (a Action) Valid() bool {
	_, ok := decoders[a]
	return ok
}

// Mutating reports whether the action changes the table. Mutating
// commands take a snapshot before running and appear in the history.
func (a Action) Mutating() bool {
	switch a {
	case ActionGroupAggregate, ActionCountByCategory, ActionUniqueCounts,
		ActionSummaryStats, ActionInsight, ActionError:
		return false
	default:
		return a.Valid()
	}
}

// Aggregation reports whether the action is a read-only aggregation
// over the table
func (a Action) Aggregation() bool {
	switch a {
	case ActionGroupAggregate, ActionCountByCategory, ActionUniqueCounts, ActionSummaryStats:
		return true
	default:
		return false
	}
}
