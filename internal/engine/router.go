// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     engine
// Description: Routing from validated commands to catalog operations
// Author:      Mike Stoffels
// Created:     2026-02-14
// License:     MIT
// ============================================================================

package engine

import (
	"github.com/msto63/mTW/internal/command"
	"github.com/msto63/mTW/internal/ops"
	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// route dispatches a mutating command to its catalog function. The
// switch is over the typed parameter variants, so an action that never
// passed the command decoder cannot reach an operation.
func route(t *table.Table, cmd command.Command) (*table.Table, error) {
	switch p := cmd.Params.(type) {
	case command.DeleteRowParams:
		return ops.DeleteRow(t, p.RowIndex)
	case command.DeleteRowsParams:
		return ops.DeleteRows(t, p.RowIndices)
	case command.DeleteRowsConditionParams:
		return ops.DeleteRowsCondition(t, p.Column, p.Operator, p.Value)
	case command.KeepRowsConditionParams:
		return ops.KeepRowsCondition(t, p.Column, p.Operator, p.Value)
	case command.InsertRowParams:
		return ops.InsertRow(t, p.RowIndex, p.Values)
	case command.SortRowsParams:
		return ops.SortRows(t, p.Column, p.Ascending)
	case command.RemoveDuplicatesParams:
		return ops.RemoveDuplicates(t, p.SubsetColumns)

	case command.DeleteColumnParams:
		return ops.DeleteColumn(t, p.ColumnName)
	case command.RenameColumnParams:
		return ops.RenameColumn(t, p.OldName, p.NewName)
	case command.AddConstantColumnParams:
		return ops.AddConstantColumn(t, p.ColumnName, p.Value)
	case command.AddEmptyColumnParams:
		return ops.AddEmptyColumn(t, p.ColumnName)
	case command.ReorderColumnsParams:
		return ops.ReorderColumns(t, p.NewOrder)
	case command.DuplicateColumnParams:
		return ops.DuplicateColumn(t, p.Source, p.Target)
	case command.MergeColumnsParams:
		return ops.MergeColumns(t, p.Columns, p.Separator, p.Target)

	case command.ReplaceTextParams:
		return ops.ReplaceText(t, p.Column, p.OldValue, p.NewValue)
	case command.ReplaceConditionalParams:
		return ops.ReplaceConditional(t, p.Column, p.Operator, p.CondValue, p.NewValue)
	case command.SetColumnValueParams:
		return ops.SetColumnValue(t, p.Column, p.Value)
	case command.FillNAParams:
		return ops.FillNA(t, p.Column, p.Value)
	case command.TrimWhitespaceParams:
		return ops.TrimWhitespace(t, p.Column)
	case command.ChangeCaseParams:
		return ops.ChangeCase(t, p.Column, p.CaseType)
	case command.AssignSequenceParams:
		return ops.AssignSequence(t, p.Column, p.SequenceType, p.Start)

	case command.ReformatDateParams:
		return ops.ReformatDate(t, p.Column, p.OldFormat, p.NewFormat)
	case command.ExtractDatePartParams:
		return ops.ExtractDatePart(t, p.Column, p.Part, p.TargetColumn)
	case command.ConvertToDatetimeParams:
		return ops.ConvertToDatetime(t, p.Column)
	case command.CalculateDurationParams:
		return ops.CalculateDuration(t, p.StartCol, p.EndCol, p.TargetCol, p.Unit)

	case command.MultiplyColumnParams:
		return ops.MultiplyColumn(t, p.Column, p.Factor)
	case command.AddToColumnParams:
		return ops.AddToColumn(t, p.Column, p.Value)
	case command.RoundColumnParams:
		return ops.RoundColumn(t, p.Column, p.Decimals)
	case command.NormalizeColumnParams:
		return ops.NormalizeColumn(t, p.Column, p.Method)
	case command.CreateRatioParams:
		return ops.CreateRatio(t, p.NumeratorCol, p.DenominatorCol, p.Target)

	case command.ConvertTypeParams:
		return ops.ConvertType(t, p.Column, p.TargetType)

	default:
		return nil, apperror.Newf("Unsupported action: %s", cmd.Action).
			WithCode(apperror.CodeUnknownAction).
			WithDetail("action", string(cmd.Action))
	}
}

// routeAggregation dispatches the read-only aggregations
func routeAggregation(t *table.Table, cmd command.Command) (*ops.Insight, error) {
	switch p := cmd.Params.(type) {
	case command.GroupAggregateParams:
		return ops.GroupAggregate(t, p.GroupBy, p.AggColumn, p.AggFunc)
	case command.CountByCategoryParams:
		return ops.CountByCategory(t, p.Column)
	case command.UniqueCountsParams:
		return ops.UniqueCounts(t, p.Column)
	case command.SummaryStatsParams:
		return ops.SummaryStats(t, p.Column)
	default:
		return nil, apperror.Newf("Unsupported action: %s", cmd.Action).
			WithCode(apperror.CodeUnknownAction).
			WithDetail("action", string(cmd.Action))
	}
}
