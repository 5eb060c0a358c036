// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     command
// Description: Validation boundary turning untyped commands into the
//              closed action set
// Author:      Mike Stoffels
// Created:     2026-02-13
// License:     MIT
// ============================================================================

package command

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

// Command is one fully validated instruction for the engine
type Command struct {
	Action    Action
	Reasoning string
	Params    Params
}

// Decode validates a raw command object. The action must be part of
// the catalog and every required parameter must be present with a
// usable type, otherwise an UnknownAction or MissingParameter error is
// returned and nothing reaches the operation catalog.
func Decode(raw map[string]interface{}) (Command, error) {
	actionStr, _ := raw["action"].(string)
	if actionStr == "" {
		return Command{}, apperror.New("No action specified in command").
			WithCode(apperror.CodeUnknownAction)
	}
	action := Action(actionStr)

	// The pass-through actions carry their payload on the command
	// object itself, not under parameters.
	switch action {
	case ActionError:
		msg, _ := raw["error"].(string)
		if msg == "" {
			msg = "Unknown error"
		}
		rawResp, _ := raw["raw_response"].(string)
		return Command{Action: action, Params: ErrorParams{Message: msg, RawResponse: rawResp}}, nil
	case ActionInsight:
		resp, _ := raw["response"].(string)
		reasoning, _ := raw["reasoning"].(string)
		return Command{Action: action, Reasoning: reasoning, Params: InsightParams{Response: resp}}, nil
	}

	decode, ok := decoders[action]
	if !ok {
		return Command{}, apperror.Newf("Unsupported action: %s", actionStr).
			WithCode(apperror.CodeUnknownAction).
			WithDetail("action", actionStr)
	}

	params, _ := raw["parameters"].(map[string]interface{})
	reasoning, _ := raw["reasoning"].(string)

	r := &reader{action: action, params: params, used: make(map[string]bool)}
	decoded := decode(r)
	if r.err != nil {
		return Command{}, r.err
	}
	if err := r.checkUnused(); err != nil {
		return Command{}, err
	}
	return Command{Action: action, Reasoning: reasoning, Params: decoded}, nil
}

// ParseJSON decodes a translation result: either a single command
// object or an array of command objects (a plan). A doubly nested
// array is unwrapped one level. An empty array is an error, numbers
// keep their integer/float distinction.
func ParseJSON(data []byte) ([]Command, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var head interface{}
	if err := dec.Decode(&head); err != nil {
		return nil, apperror.Wrap(err, "invalid command JSON").
			WithCode(apperror.CodeParseFailure)
	}

	var objects []map[string]interface{}
	switch v := head.(type) {
	case map[string]interface{}:
		objects = append(objects, v)
	case []interface{}:
		// Some models wrap the plan in one extra array level
		if len(v) > 0 {
			if inner, ok := v[0].([]interface{}); ok {
				v = inner
			}
		}
		if len(v) == 0 {
			return nil, apperror.New("translation returned an empty plan").
				WithCode(apperror.CodeEmptyPlan)
		}
		for i, item := range v {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, apperror.Newf("plan entry %d is not a command object", i+1).
					WithCode(apperror.CodeParseFailure)
			}
			objects = append(objects, obj)
		}
	default:
		return nil, apperror.New("command JSON must be an object or an array").
			WithCode(apperror.CodeParseFailure)
	}

	commands := make([]Command, 0, len(objects))
	for _, obj := range objects {
		cmd, err := Decode(obj)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// decoders maps every catalog action to its parameter decoder. The
// pass-through actions insight and error are handled before lookup but
// registered here so Valid covers them.
var decoders = map[Action]func(*reader) Params{
	ActionDeleteRow: func(r *reader) Params {
		return DeleteRowParams{RowIndex: r.intVal("row_index")}
	},
	ActionDeleteRows: func(r *reader) Params {
		return DeleteRowsParams{RowIndices: r.intList("row_indices")}
	},
	ActionDeleteRowsCondition: func(r *reader) Params {
		return DeleteRowsConditionParams{
			Column:   r.str("column"),
			Operator: r.str("operator"),
			Value:    r.value("value"),
		}
	},
	ActionKeepRowsCondition: func(r *reader) Params {
		return KeepRowsConditionParams{
			Column:   r.str("column"),
			Operator: r.str("operator"),
			Value:    r.value("value"),
		}
	},
	ActionInsertRow: func(r *reader) Params {
		return InsertRowParams{
			RowIndex: r.intVal("row_index"),
			Values:   r.valueList("values"),
		}
	},
	ActionSortRows: func(r *reader) Params {
		return SortRowsParams{
			Column:    r.str("column"),
			Ascending: r.optionalBool("ascending", true),
		}
	},
	ActionRemoveDuplicates: func(r *reader) Params {
		return RemoveDuplicatesParams{SubsetColumns: r.optionalStrList("subset_columns")}
	},
	ActionDeleteColumn: func(r *reader) Params {
		return DeleteColumnParams{ColumnName: r.str("column_name")}
	},
	ActionRenameColumn: func(r *reader) Params {
		return RenameColumnParams{OldName: r.str("old_name"), NewName: r.str("new_name")}
	},
	ActionAddConstantColumn: func(r *reader) Params {
		return AddConstantColumnParams{ColumnName: r.str("column_name"), Value: r.value("value")}
	},
	ActionAddEmptyColumn: func(r *reader) Params {
		return AddEmptyColumnParams{ColumnName: r.str("column_name")}
	},
	ActionReorderColumns: func(r *reader) Params {
		return ReorderColumnsParams{NewOrder: r.strList("new_order")}
	},
	ActionDuplicateColumn: func(r *reader) Params {
		return DuplicateColumnParams{Source: r.str("source"), Target: r.str("target")}
	},
	ActionMergeColumns: func(r *reader) Params {
		return MergeColumnsParams{
			Columns:   r.strList("columns"),
			Separator: r.str("separator"),
			Target:    r.str("target"),
		}
	},
	ActionReplaceText: func(r *reader) Params {
		return ReplaceTextParams{
			Column:   r.str("column"),
			OldValue: r.value("old_value"),
			NewValue: r.value("new_value"),
		}
	},
	ActionReplaceConditional: func(r *reader) Params {
		op, val := r.condition("condition")
		return ReplaceConditionalParams{
			Column:    r.str("column"),
			Operator:  op,
			CondValue: val,
			NewValue:  r.value("new_value"),
		}
	},
	ActionSetColumnValue: func(r *reader) Params {
		return SetColumnValueParams{Column: r.str("column"), Value: r.value("value")}
	},
	ActionFillNA: func(r *reader) Params {
		return FillNAParams{Column: r.str("column"), Value: r.value("value")}
	},
	ActionTrimWhitespace: func(r *reader) Params {
		return TrimWhitespaceParams{Column: r.optionalStr("column", "")}
	},
	ActionChangeCase: func(r *reader) Params {
		return ChangeCaseParams{Column: r.str("column"), CaseType: r.str("case_type")}
	},
	ActionAssignSequence: func(r *reader) Params {
		return AssignSequenceParams{
			Column:       r.str("column"),
			SequenceType: r.str("sequence_type"),
			Start:        r.optionalInt("start", 1),
		}
	},
	ActionReformatDate: func(r *reader) Params {
		return ReformatDateParams{
			Column:    r.str("column"),
			OldFormat: r.str("old_format"),
			NewFormat: r.str("new_format"),
		}
	},
	ActionExtractDatePart: func(r *reader) Params {
		return ExtractDatePartParams{
			Column:       r.str("column"),
			Part:         r.str("part"),
			TargetColumn: r.str("target_column"),
		}
	},
	ActionConvertToDatetime: func(r *reader) Params {
		return ConvertToDatetimeParams{Column: r.str("column")}
	},
	ActionCalculateDuration: func(r *reader) Params {
		return CalculateDurationParams{
			StartCol:  r.str("start_col"),
			EndCol:    r.str("end_col"),
			TargetCol: r.str("target_col"),
			Unit:      r.optionalStr("unit", "days"),
		}
	},
	ActionMultiplyColumn: func(r *reader) Params {
		return MultiplyColumnParams{Column: r.str("column"), Factor: r.value("factor")}
	},
	ActionAddToColumn: func(r *reader) Params {
		return AddToColumnParams{Column: r.str("column"), Value: r.value("value")}
	},
	ActionRoundColumn: func(r *reader) Params {
		return RoundColumnParams{Column: r.str("column"), Decimals: r.intVal("decimals")}
	},
	ActionNormalizeColumn: func(r *reader) Params {
		return NormalizeColumnParams{
			Column: r.str("column"),
			Method: r.optionalStr("method", "minmax"),
		}
	},
	ActionCreateRatio: func(r *reader) Params {
		return CreateRatioParams{
			NumeratorCol:   r.str("numerator_col"),
			DenominatorCol: r.str("denominator_col"),
			Target:         r.str("target"),
		}
	},
	ActionConvertType: func(r *reader) Params {
		return ConvertTypeParams{Column: r.str("column"), TargetType: r.str("target_type")}
	},
	ActionGroupAggregate: func(r *reader) Params {
		return GroupAggregateParams{
			GroupBy:   r.strOrStrList("group_by"),
			AggColumn: r.str("agg_column"),
			AggFunc:   r.str("agg_func"),
		}
	},
	ActionCountByCategory: func(r *reader) Params {
		return CountByCategoryParams{Column: r.str("column")}
	},
	ActionUniqueCounts: func(r *reader) Params {
		return UniqueCountsParams{Column: r.optionalStr("column", "")}
	},
	ActionSummaryStats: func(r *reader) Params {
		return SummaryStatsParams{Column: r.str("column")}
	},
	ActionInsight: func(r *reader) Params { return InsightParams{} },
	ActionError:   func(r *reader) Params { return ErrorParams{} },
}

// reader extracts typed parameters, recording the first failure and
// which keys were consumed
type reader struct {
	action Action
	params map[string]interface{}
	used   map[string]bool
	err    error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) missing(key string) {
	r.fail(apperror.Newf("Missing parameter '%s' for %s", key, r.action).
		WithCode(apperror.CodeMissingParameter).
		WithDetail("parameter", key).
		WithDetail("action", string(r.action)))
}

func (r *reader) badType(key, want string, got interface{}) {
	r.fail(apperror.Newf("Invalid parameter '%s' for %s: expected %s, got %T", key, r.action, want, got).
		WithCode(apperror.CodeInvalidInput).
		WithDetail("parameter", key))
}

func (r *reader) lookup(key string) (interface{}, bool) {
	r.used[key] = true
	v, ok := r.params[key]
	return v, ok
}

func (r *reader) checkUnused() error {
	for key := range r.params {
		if !r.used[key] {
			return apperror.Newf("Unexpected parameter '%s' for %s", key, r.action).
				WithCode(apperror.CodeInvalidInput).
				WithDetail("parameter", key)
		}
	}
	return nil
}

func (r *reader) str(key string) string {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		r.missing(key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.badType(key, "string", v)
		return ""
	}
	return s
}

func (r *reader) optionalStr(key, def string) string {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		r.badType(key, "string", v)
		return def
	}
	return s
}

func (r *reader) intVal(key string) int {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		r.missing(key)
		return 0
	}
	return r.asInt(key, v)
}

func (r *reader) optionalInt(key string, def int) int {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		return def
	}
	return r.asInt(key, v)
}

// asInt accepts the integer renderings of JSON and YAML decoding
func (r *reader) asInt(key string, v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	r.badType(key, "integer", v)
	return 0
}

func (r *reader) optionalBool(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.badType(key, "boolean", v)
		return def
	}
	return b
}

func (r *reader) value(key string) table.Value {
	v, ok := r.lookup(key)
	if !ok {
		r.missing(key)
		return table.Null()
	}
	return table.FromAny(v)
}

func (r *reader) valueList(key string) []table.Value {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		r.missing(key)
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		r.badType(key, "list", v)
		return nil
	}
	out := make([]table.Value, len(items))
	for i, item := range items {
		out[i] = table.FromAny(item)
	}
	return out
}

func (r *reader) intList(key string) []int {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		r.missing(key)
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		r.badType(key, "list of integers", v)
		return nil
	}
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = r.asInt(fmt.Sprintf("%s[%d]", key, i+1), item)
	}
	return out
}

func (r *reader) strList(key string) []string {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		r.missing(key)
		return nil
	}
	return r.asStrList(key, v)
}

func (r *reader) optionalStrList(key string) []string {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		return nil
	}
	return r.asStrList(key, v)
}

// strOrStrList accepts both a single name and a list of names
func (r *reader) strOrStrList(key string) []string {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		r.missing(key)
		return nil
	}
	if s, ok := v.(string); ok {
		return []string{s}
	}
	return r.asStrList(key, v)
}

func (r *reader) asStrList(key string, v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		r.badType(key, "list of strings", v)
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			r.badType(fmt.Sprintf("%s[%d]", key, i+1), "string", item)
			return nil
		}
		out[i] = s
	}
	return out
}

// condition reads the nested {"operator": ..., "value": ...} object of
// replace_conditional
func (r *reader) condition(key string) (string, table.Value) {
	v, ok := r.lookup(key)
	if !ok || v == nil {
		r.missing(key)
		return "", table.Null()
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		r.badType(key, "condition object", v)
		return "", table.Null()
	}
	opRaw, ok := obj["operator"].(string)
	if !ok {
		r.missing(key + ".operator")
		return "", table.Null()
	}
	return opRaw, table.FromAny(obj["value"])
}
