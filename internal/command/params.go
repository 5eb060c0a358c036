// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     command
// Description: Typed parameter structs, one per action
// Author:      Mike Stoffels
// Created:     2026-02-13
// License:     MIT
// ============================================================================

package command

import "github.com/msto63/mTW/internal/table"

// Params is the sealed union of per-action parameter structs. A value
// of this type always came through Decode and is fully validated.
type Params interface {
	isParams()
}

// Row operations

type DeleteRowParams struct {
	RowIndex int
}

type DeleteRowsParams struct {
	RowIndices []int
}

type DeleteRowsConditionParams struct {
	Column   string
	Operator string
	Value    table.Value
}

type KeepRowsConditionParams struct {
	Column   string
	Operator string
	Value    table.Value
}

type InsertRowParams struct {
	RowIndex int
	Values   []table.Value
}

type SortRowsParams struct {
	Column    string
	Ascending bool
}

type RemoveDuplicatesParams struct {
	SubsetColumns []string
}

// Column operations

type DeleteColumnParams struct {
	ColumnName string
}

type RenameColumnParams struct {
	OldName string
	NewName string
}

type AddConstantColumnParams struct {
	ColumnName string
	Value      table.Value
}

type AddEmptyColumnParams struct {
	ColumnName string
}

type ReorderColumnsParams struct {
	NewOrder []string
}

type DuplicateColumnParams struct {
	Source string
	Target string
}

type MergeColumnsParams struct {
	Columns   []string
	Separator string
	Target    string
}

// Cell operations

type ReplaceTextParams struct {
	Column   string
	OldValue table.Value
	NewValue table.Value
}

type ReplaceConditionalParams struct {
	Column    string
	Operator  string
	CondValue table.Value
	NewValue  table.Value
}

type SetColumnValueParams struct {
	Column string
	Value  table.Value
}

type FillNAParams struct {
	Column string
	Value  table.Value
}

type TrimWhitespaceParams struct {
	Column string // empty = all columns
}

type ChangeCaseParams struct {
	Column   string
	CaseType string
}

type AssignSequenceParams struct {
	Column       string
	SequenceType string
	Start        int
}

// Date operations

type ReformatDateParams struct {
	Column    string
	OldFormat string
	NewFormat string
}

type ExtractDatePartParams struct {
	Column       string
	Part         string
	TargetColumn string
}

type ConvertToDatetimeParams struct {
	Column string
}

type CalculateDurationParams struct {
	StartCol  string
	EndCol    string
	TargetCol string
	Unit      string
}

// Numeric operations

type MultiplyColumnParams struct {
	Column string
	Factor table.Value
}

type AddToColumnParams struct {
	Column string
	Value  table.Value
}

type RoundColumnParams struct {
	Column   string
	Decimals int
}

type NormalizeColumnParams struct {
	Column string
	Method string
}

type CreateRatioParams struct {
	NumeratorCol   string
	DenominatorCol string
	Target         string
}

// Type conversion

type ConvertTypeParams struct {
	Column     string
	TargetType string
}

// Aggregations

type GroupAggregateParams struct {
	GroupBy   []string
	AggColumn string
	AggFunc   string
}

type CountByCategoryParams struct {
	Column string
}

type UniqueCountsParams struct {
	Column string // empty = all columns
}

type SummaryStatsParams struct {
	Column string
}

// Pass-through actions

// InsightParams carries a textual answer from the translation layer
// that needs no table operation
type InsightParams struct {
	Response string
}

// ErrorParams is the error marker the translation layer emits when it
// could not produce a command
type ErrorParams struct {
	Message     string
	RawResponse string
}

func (DeleteRowParams) isParams()           {}
func (DeleteRowsParams) isParams()          {}
func (DeleteRowsConditionParams) isParams() {}
func (KeepRowsConditionParams) isParams()   {}
func (InsertRowParams) isParams()           {}
func (SortRowsParams) isParams()            {}
func (RemoveDuplicatesParams) isParams()    {}
func (DeleteColumnParams) isParams()        {}
func (RenameColumnParams) isParams()        {}
func (AddConstantColumnParams) isParams()   {}
func (AddEmptyColumnParams) isParams()      {}
func (ReorderColumnsParams) isParams()      {}
func (DuplicateColumnParams) isParams()     {}
func (MergeColumnsParams) isParams()        {}
func (ReplaceTextParams) isParams()         {}
func (ReplaceConditionalParams) isParams()  {}
func (SetColumnValueParams) isParams()      {}
func (FillNAParams) isParams()              {}
func (TrimWhitespaceParams) isParams()      {}
func (ChangeCaseParams) isParams()          {}
func (AssignSequenceParams) isParams()      {}
func (ReformatDateParams) isParams()        {}
func (ExtractDatePartParams) isParams()     {}
func (ConvertToDatetimeParams) isParams()   {}
func (CalculateDurationParams) isParams()   {}
func (MultiplyColumnParams) isParams()      {}
func (AddToColumnParams) isParams()         {}
func (RoundColumnParams) isParams()         {}
func (NormalizeColumnParams) isParams()     {}
func (CreateRatioParams) isParams()         {}
func (ConvertTypeParams) isParams()         {}
func (GroupAggregateParams) isParams()      {}
func (CountByCategoryParams) isParams()     {}
func (UniqueCountsParams) isParams()        {}
func (SummaryStatsParams) isParams()        {}
func (InsightParams) isParams()             {}
func (ErrorParams) isParams()               {}
