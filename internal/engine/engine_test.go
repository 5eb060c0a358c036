package engine

import (
	"strings"
	"testing"

	"github.com/msto63/mTW/internal/command"
	"github.com/msto63/mTW/internal/table"
)

func revenueTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.NewWithRows(
		[]string{"ID", "Name", "Revenue"},
		[][]table.Value{
			{table.Int(1), table.Text("Alice"), table.Int(100)},
			{table.Int(2), table.Text("Bob"), table.Int(200)},
			{table.Int(3), table.Text("Charlie"), table.Int(-50)},
			{table.Int(4), table.Text("David"), table.Int(300)},
			{table.Int(5), table.Text("Eve"), table.Int(150)},
		},
	)
	if err != nil {
		t.Fatalf("NewWithRows: %v", err)
	}
	return tbl
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(revenueTable(t), Options{})
}

func mustDecode(t *testing.T, raw map[string]interface{}) command.Command {
	t.Helper()
	cmd, err := command.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return cmd
}

func TestExecuteSuccess(t *testing.T) {
	e := newTestEngine(t)
	res := e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "delete_row",
		"reasoning":  "Zeile 3 entfernen",
		"parameters": map[string]interface{}{"row_index": 3},
	}))

	if res.Status != StatusSuccess {
		t.Fatalf("status = %s, detail = %s", res.Status, res.ErrorDetail)
	}
	if res.Message != "Successfully executed: delete_row" {
		t.Errorf("message = %q", res.Message)
	}
	if res.Action != command.ActionDeleteRow {
		t.Errorf("action = %s", res.Action)
	}
	if res.Reasoning != "Zeile 3 entfernen" {
		t.Errorf("reasoning = %q", res.Reasoning)
	}
	if res.NewRowCount != 4 || res.NewColumnCount != 3 {
		t.Errorf("shape = %dx%d", res.NewRowCount, res.NewColumnCount)
	}
	if e.Table().RowCount() != 4 {
		t.Errorf("table rows = %d", e.Table().RowCount())
	}
}

func TestExecuteErrorRollsBack(t *testing.T) {
	e := newTestEngine(t)
	before := e.Table().Clone()

	res := e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "sort_rows",
		"parameters": map[string]interface{}{"column": "Gewinn"},
	}))

	if res.Status != StatusError {
		t.Fatalf("status = %s", res.Status)
	}
	if res.Message != "Execution failed: Column 'Gewinn' not found" {
		t.Errorf("message = %q", res.Message)
	}
	if res.ErrorDetail != "Column 'Gewinn' not found" {
		t.Errorf("error_detail = %q", res.ErrorDetail)
	}
	if !e.Table().Equal(before) {
		t.Error("table changed after failed command")
	}
	if e.HistoryDepth() != 1 {
		t.Errorf("history depth = %d, want 1", e.HistoryDepth())
	}
	if len(e.History()) != 0 {
		t.Errorf("log entries = %d, want 0", len(e.History()))
	}
	if e.CanUndo() {
		t.Error("failed command must not enable undo")
	}
}

func TestHistoryInvariant(t *testing.T) {
	e := newTestEngine(t)

	steps := []map[string]interface{}{
		{"action": "delete_row", "parameters": map[string]interface{}{"row_index": 1}},
		{"action": "sort_rows", "parameters": map[string]interface{}{"column": "Revenue"}},
		{"action": "add_constant_column", "parameters": map[string]interface{}{"column_name": "Land", "value": "DE"}},
	}
	for i, raw := range steps {
		res := e.Execute(mustDecode(t, raw))
		if res.Status != StatusSuccess {
			t.Fatalf("step %d failed: %s", i+1, res.ErrorDetail)
		}
		if got, want := e.HistoryDepth(), i+2; got != want {
			t.Errorf("after step %d: history depth = %d, want %d", i+1, got, want)
		}
		if got, want := len(e.History()), i+1; got != want {
			t.Errorf("after step %d: log entries = %d, want %d", i+1, got, want)
		}
	}

	// Failed command leaves both untouched
	e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "delete_row",
		"parameters": map[string]interface{}{"row_index": 99},
	}))
	if e.HistoryDepth() != 4 || len(e.History()) != 3 {
		t.Errorf("after failure: depth = %d, log = %d", e.HistoryDepth(), len(e.History()))
	}
}

func TestUndoRestoresPriorState(t *testing.T) {
	e := newTestEngine(t)
	initial := e.Table().Clone()

	e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "delete_row",
		"parameters": map[string]interface{}{"row_index": 1},
	}))
	afterFirst := e.Table().Clone()

	e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "sort_rows",
		"parameters": map[string]interface{}{"column": "Revenue"},
	}))

	if !e.Undo() {
		t.Fatal("undo returned false")
	}
	if !e.Table().Equal(afterFirst) {
		t.Error("undo did not restore the state before the second mutation")
	}
	if len(e.History()) != 1 {
		t.Errorf("log entries = %d, want 1", len(e.History()))
	}

	if !e.Undo() {
		t.Fatal("second undo returned false")
	}
	if !e.Table().Equal(initial) {
		t.Error("undo did not restore the initial state")
	}
	if e.Undo() {
		t.Error("undo past the initial snapshot must be a no-op")
	}
	if !e.Table().Equal(initial) {
		t.Error("no-op undo changed the table")
	}
}

func TestAggregationBypassesHistory(t *testing.T) {
	e := newTestEngine(t)

	res := e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "summary_stats",
		"reasoning":  "Statistik zu Revenue",
		"parameters": map[string]interface{}{"column": "Revenue"},
	}))

	if res.Status != StatusInsight {
		t.Fatalf("status = %s, detail = %s", res.Status, res.ErrorDetail)
	}
	if !strings.Contains(res.Response, "**Summary statistics for Revenue:**") {
		t.Errorf("response = %q", res.Response)
	}
	if res.Reasoning != "Statistik zu Revenue" {
		t.Errorf("reasoning = %q", res.Reasoning)
	}
	if e.HistoryDepth() != 1 {
		t.Errorf("history depth = %d, aggregations must not snapshot", e.HistoryDepth())
	}
	if e.CanUndo() {
		t.Error("aggregation must not enable undo")
	}

	// Failing aggregation: error result, still no history growth
	res = e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "summary_stats",
		"parameters": map[string]interface{}{"column": "Gewinn"},
	}))
	if res.Status != StatusError {
		t.Fatalf("status = %s", res.Status)
	}
	if e.HistoryDepth() != 1 {
		t.Errorf("history depth = %d after failed aggregation", e.HistoryDepth())
	}
}

func TestGroupAggregateCarriesData(t *testing.T) {
	e := newTestEngine(t)
	res := e.Execute(mustDecode(t, map[string]interface{}{
		"action": "group_aggregate",
		"parameters": map[string]interface{}{
			"group_by":   "Name",
			"agg_column": "Revenue",
			"agg_func":   "sum",
		},
	}))
	if res.Status != StatusInsight {
		t.Fatalf("status = %s, detail = %s", res.Status, res.ErrorDetail)
	}
	if len(res.Data) != 5 {
		t.Errorf("data entries = %d, want 5", len(res.Data))
	}
}

func TestInsightPassThrough(t *testing.T) {
	e := newTestEngine(t)
	res := e.Execute(mustDecode(t, map[string]interface{}{
		"action":    "insight",
		"response":  "Die Tabelle hat 5 Zeilen.",
		"reasoning": "Direkt beantwortbar",
	}))
	if res.Status != StatusInsight {
		t.Fatalf("status = %s", res.Status)
	}
	if res.Response != "Die Tabelle hat 5 Zeilen." {
		t.Errorf("response = %q", res.Response)
	}
	if e.HistoryDepth() != 1 {
		t.Errorf("history depth = %d", e.HistoryDepth())
	}
}

func TestErrorMarkerPassThrough(t *testing.T) {
	e := newTestEngine(t)
	res := e.Execute(mustDecode(t, map[string]interface{}{
		"action":       "error",
		"error":        "Antwort war kein JSON",
		"raw_response": "i'd rather not",
	}))
	if res.Status != StatusError {
		t.Fatalf("status = %s", res.Status)
	}
	if res.Message != "Antwort war kein JSON" {
		t.Errorf("message = %q", res.Message)
	}
	if res.RawResponse != "i'd rather not" {
		t.Errorf("raw_response = %q", res.RawResponse)
	}
	if e.HistoryDepth() != 1 {
		t.Errorf("history depth = %d", e.HistoryDepth())
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t)
	e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "delete_row",
		"parameters": map[string]interface{}{"row_index": 1},
	}))

	fresh, err := table.NewWithRows(
		[]string{"Stadt"},
		[][]table.Value{{table.Text("Berlin")}},
	)
	if err != nil {
		t.Fatalf("NewWithRows: %v", err)
	}
	e.Reset(fresh)

	if e.Table().RowCount() != 1 || e.Table().ColumnCount() != 1 {
		rows, cols := e.Table().Shape()
		t.Errorf("shape = %dx%d", rows, cols)
	}
	if e.HistoryDepth() != 1 || len(e.History()) != 0 {
		t.Errorf("depth = %d, log = %d", e.HistoryDepth(), len(e.History()))
	}
	if e.CanUndo() {
		t.Error("reset engine must not allow undo")
	}
}

func TestContextDescribesTable(t *testing.T) {
	e := newTestEngine(t)
	ctx := e.Context()
	if ctx.Rows != 5 || ctx.Cols != 3 {
		t.Errorf("context shape = %dx%d", ctx.Rows, ctx.Cols)
	}
	if len(ctx.Columns) != 3 || ctx.Columns[2].Name != "Revenue" {
		t.Errorf("columns = %+v", ctx.Columns)
	}
	if len(ctx.Columns[0].Sample) != 3 {
		t.Errorf("sample rows = %d, want 3", len(ctx.Columns[0].Sample))
	}
}

func TestExecutePlanStopsOnFirstError(t *testing.T) {
	e := newTestEngine(t)

	plan := []command.Command{
		mustDecode(t, map[string]interface{}{
			"action":     "delete_row",
			"parameters": map[string]interface{}{"row_index": 5},
		}),
		mustDecode(t, map[string]interface{}{
			"action":     "sort_rows",
			"parameters": map[string]interface{}{"column": "Gewinn"},
		}),
		mustDecode(t, map[string]interface{}{
			"action":     "delete_column",
			"parameters": map[string]interface{}{"column_name": "Name"},
		}),
	}

	pr := e.ExecutePlan(plan)

	if len(pr.Results) != 2 {
		t.Fatalf("results = %d, want 2 (third step never attempted)", len(pr.Results))
	}
	if pr.Results[0].Status != StatusSuccess || pr.Results[1].Status != StatusError {
		t.Errorf("statuses = %s, %s", pr.Results[0].Status, pr.Results[1].Status)
	}
	if pr.Results[0].Message != "Step 1/3: Successfully executed: delete_row" {
		t.Errorf("step 1 message = %q", pr.Results[0].Message)
	}
	if pr.Results[1].Message != "Step 2/3: Execution failed: Column 'Gewinn' not found" {
		t.Errorf("step 2 message = %q", pr.Results[1].Message)
	}
	if pr.Summary != "Completed 1/2 operations" {
		t.Errorf("summary = %q", pr.Summary)
	}

	// Table reflects only the first step
	if e.Table().RowCount() != 4 {
		t.Errorf("rows = %d, want 4", e.Table().RowCount())
	}
	if !e.Table().HasColumn("Name") {
		t.Error("third step must not have run")
	}
	if e.HistoryDepth() != 2 {
		t.Errorf("history depth = %d, want 2", e.HistoryDepth())
	}
}

func TestExecutePlanInsightsContinue(t *testing.T) {
	e := newTestEngine(t)

	plan := []command.Command{
		mustDecode(t, map[string]interface{}{
			"action":   "insight",
			"response": "Schau dir Revenue an.",
		}),
		mustDecode(t, map[string]interface{}{
			"action":     "count_by_category",
			"parameters": map[string]interface{}{"column": "Name"},
		}),
		mustDecode(t, map[string]interface{}{
			"action":     "delete_row",
			"parameters": map[string]interface{}{"row_index": 1},
		}),
	}

	pr := e.ExecutePlan(plan)

	if len(pr.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(pr.Results))
	}
	if pr.Results[0].Status != StatusInsight || pr.Results[1].Status != StatusInsight {
		t.Errorf("insight statuses = %s, %s", pr.Results[0].Status, pr.Results[1].Status)
	}
	if pr.Results[0].Message != "" {
		t.Errorf("insight message = %q, want empty", pr.Results[0].Message)
	}
	if pr.Results[2].Message != "Step 3/3: Successfully executed: delete_row" {
		t.Errorf("step 3 message = %q", pr.Results[2].Message)
	}
	if pr.Summary != "Completed 1/3 operations" {
		t.Errorf("summary = %q", pr.Summary)
	}
}

func TestExecutePlanSingleCommand(t *testing.T) {
	e := newTestEngine(t)
	pr := e.ExecutePlan([]command.Command{
		mustDecode(t, map[string]interface{}{
			"action":     "delete_row",
			"parameters": map[string]interface{}{"row_index": 1},
		}),
	})
	if len(pr.Results) != 1 {
		t.Fatalf("results = %d", len(pr.Results))
	}
	if pr.Results[0].Message != "Successfully executed: delete_row" {
		t.Errorf("message = %q, single commands get no step prefix", pr.Results[0].Message)
	}
	if pr.Summary != "" {
		t.Errorf("summary = %q, want empty for single command", pr.Summary)
	}
}

func TestEngineUsableAfterFailures(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 3; i++ {
		e.Execute(mustDecode(t, map[string]interface{}{
			"action":     "delete_row",
			"parameters": map[string]interface{}{"row_index": 99},
		}))
	}
	res := e.Execute(mustDecode(t, map[string]interface{}{
		"action":     "delete_row",
		"parameters": map[string]interface{}{"row_index": 1},
	}))
	if res.Status != StatusSuccess {
		t.Fatalf("engine unusable after failures: %s", res.ErrorDetail)
	}
	if e.HistoryDepth() != 2 {
		t.Errorf("history depth = %d", e.HistoryDepth())
	}
}
