// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     translate
// Description: System prompt and request prompt construction
// Author:      Mike Stoffels
// Created:     2026-02-15
// License:     MIT
// ============================================================================

package translate

import (
	"fmt"
	"strings"

	"github.com/msto63/mTW/internal/table"
)

// historyTurns and historyMaxChars bound how much prior conversation is
// replayed into the prompt
const (
	historyTurns    = 6
	historyMaxChars = 150
)

// systemPrompt documents the full command catalog for the model. Every
// action listed here has a decoder in internal/command; keep the two in
// sync when the catalog changes.
const systemPrompt = `You are a table manipulation assistant. Given a user request and table context,
output a STRUCTURED COMMAND in JSON format.

CRITICAL RULES:
1. Output ONLY valid JSON - no explanations before or after
2. Use action names from the supported list below
3. Include all required parameters
4. Add "reasoning" field explaining the command
5. For INSIGHTS/QUESTIONS (not operations), use action "insight" instead
6. For MULTI-STEP requests, return an ARRAY of commands to execute in sequence

MULTI-STEP HANDLING:
- If user asks for ONE thing: return single command object
- If user asks for MULTIPLE things: return array of command objects
- Execute commands in logical order (e.g., rename before using new name)

COMMAND vs INSIGHT:
- "Remove row 3" -> COMMAND (modifies data)
- "How many rows?" -> INSIGHT (just answers question)
- "Change column A to 7" -> COMMAND (modifies data)
- "What's the sum of revenue?" -> INSIGHT (just answers question)

Supported COMMAND actions:

**Row Operations:**
- delete_row: {"row_index": int} - 1-indexed
- delete_rows: {"row_indices": [int, int, ...]} - 1-indexed
- delete_rows_condition: {"column": str, "operator": str, "value": any}
- keep_rows_condition: {"column": str, "operator": str, "value": any}
- insert_row: {"row_index": int, "values": [...]}
- sort_rows: {"column": str, "ascending": bool}
- remove_duplicates: {"subset_columns": [str] or null}

**Column Operations:**
- delete_column: {"column_name": str}
- rename_column: {"old_name": str, "new_name": str}
- add_constant_column: {"column_name": str, "value": any}
- add_empty_column: {"column_name": str}
- reorder_columns: {"new_order": [str, ...]}
- duplicate_column: {"source": str, "target": str}
- merge_columns: {"columns": [str, ...], "separator": str, "target": str}

**Cell/Value Operations:**
- replace_text: {"column": str, "old_value": str, "new_value": str}
- replace_conditional: {"column": str, "condition": {"operator": str, "value": any}, "new_value": any}
- set_column_value: {"column": str, "value": any}
- fill_na: {"column": str, "value": any}
- trim_whitespace: {"column": str or null}  # null = all columns
- change_case: {"column": str, "case_type": "upper"/"lower"/"title"}
- assign_sequence: {"column": str, "sequence_type": "number"/"uppercase"/"lowercase", "start": int}  # start only for numbers

**Date/Time Operations:**
- reformat_date: {"column": str, "old_format": str, "new_format": str}
- extract_date_part: {"column": str, "part": "year"/"month"/"day", "target_column": str}
- convert_to_datetime: {"column": str}
- calculate_duration: {"start_col": str, "end_col": str, "target_col": str, "unit": "days"/"hours"}

**Numeric Operations:**
- multiply_column: {"column": str, "factor": float}
- add_to_column: {"column": str, "value": float}
- round_column: {"column": str, "decimals": int}
- normalize_column: {"column": str, "method": "minmax"/"zscore"}
- create_ratio: {"numerator_col": str, "denominator_col": str, "target": str}

**Type Conversion:**
- convert_type: {"column": str, "target_type": "int"/"float"/"str"/"boolean"}

**Aggregation (returns insights, doesn't modify data):**
- group_aggregate: {"group_by": [str...], "agg_column": str, "agg_func": "sum"/"mean"/"count"/"min"/"max"}
- count_by_category: {"column": str}
- unique_counts: {"column": str or null}  # null = all columns
- summary_stats: {"column": str}

Operators: "==", "!=", "<", ">", "<=", ">=", "contains", "startswith", "endswith"

OUTPUT FORMAT for SINGLE COMMAND:
{
  "action": "delete_row",
  "parameters": {"row_index": 3},
  "reasoning": "User requested to remove 3rd row"
}

OUTPUT FORMAT for MULTI-STEP:
[
  {
    "action": "rename_column",
    "parameters": {"old_name": "Col1", "new_name": "Quarter"},
    "reasoning": "Step 1: Rename first column"
  },
  {
    "action": "add_constant_column",
    "parameters": {"column_name": "Value", "value": 8},
    "reasoning": "Step 2: Add new column with value 8"
  }
]

OUTPUT FORMAT for INSIGHTS:
{
  "action": "insight",
  "response": "The table has 1000 rows and 5 columns",
  "reasoning": "User asked a question about the data"
}

EXAMPLES:
User: "Remove third row"
Output: {"action": "delete_row", "parameters": {"row_index": 3}, "reasoning": "Delete row at index 3"}

User: "How many rows?"
Output: {"action": "insight", "response": "1000 rows", "reasoning": "User asked for row count"}

User: "Rename Col1 to ID and add a Status column with value Active"
Output: [
  {"action": "rename_column", "parameters": {"old_name": "Col1", "new_name": "ID"}, "reasoning": "Rename first column"},
  {"action": "add_constant_column", "parameters": {"column_name": "Status", "value": "Active"}, "reasoning": "Add Status column"}
]

User: "What's the total revenue by country?"
Output: {"action": "group_aggregate", "parameters": {"group_by": ["country"], "agg_column": "revenue", "agg_func": "sum"}, "reasoning": "User wants aggregated revenue by country"}

User: "Number the rows in the ID column starting at 1"
Output: {"action": "assign_sequence", "parameters": {"column": "ID", "sequence_type": "number", "start": 1}, "reasoning": "Fill ID with a 1-based sequence"}
`

// insightSystemPrompt drives the direct question-answering path
const insightSystemPrompt = `You are a data analyst assistant. Answer questions about tables concisely and accurately.

RULES:
1. Base answers ONLY on provided context and statistics
2. Be concise - 1-2 sentences
3. Include specific numbers when available
4. Don't hallucinate insights not in the data
`

// buildPrompt renders the user prompt: recent conversation, table
// context and the request itself
func buildPrompt(request string, tc table.Context, history []Message) string {
	var b strings.Builder

	if len(history) > 0 {
		recent := history
		if len(recent) > historyTurns {
			recent = recent[len(recent)-historyTurns:]
		}
		b.WriteString("RECENT CONVERSATION:\n")
		for _, msg := range recent {
			role := "Assistant"
			if msg.Role == "user" {
				role = "User"
			}
			content := msg.Content
			if len(content) > historyMaxChars {
				content = content[:historyMaxChars]
			}
			fmt.Fprintf(&b, "%s: %s\n", role, content)
		}
		b.WriteString("\n")
	}

	b.WriteString("TABLE CONTEXT:\n")
	fmt.Fprintf(&b, "Columns: [%s]\n", strings.Join(columnNames(tc), ", "))
	fmt.Fprintf(&b, "Shape: (%d, %d) (rows, columns)\n", tc.Rows, tc.Cols)
	b.WriteString("Preview (first rows):\n")
	b.WriteString(renderPreview(tc))

	fmt.Fprintf(&b, "\nUSER REQUEST:\n%q\n\nGenerate the JSON command or insight response:\n", request)

	return b.String()
}

// buildInsightPrompt renders the prompt for the direct answer path
func buildInsightPrompt(question string, tc table.Context, stats string) string {
	var b strings.Builder

	b.WriteString("TABLE:\n")
	fmt.Fprintf(&b, "Columns: [%s]\n", strings.Join(columnNames(tc), ", "))
	fmt.Fprintf(&b, "Shape: (%d, %d)\n", tc.Rows, tc.Cols)
	b.WriteString("Column types: ")
	types := make([]string, len(tc.Columns))
	for i, col := range tc.Columns {
		types[i] = fmt.Sprintf("%s=%s", col.Name, col.Type)
	}
	b.WriteString(strings.Join(types, ", "))
	b.WriteString("\n")

	if stats != "" {
		fmt.Fprintf(&b, "\nSTATISTICS:\n%s\n", stats)
	}

	fmt.Fprintf(&b, "\nQUESTION: %s\n\nAnswer concisely:\n", question)

	return b.String()
}

func columnNames(tc table.Context) []string {
	names := make([]string, len(tc.Columns))
	for i, col := range tc.Columns {
		names[i] = col.Name
	}
	return names
}

// renderPreview prints the sample rows as one record per line
func renderPreview(tc table.Context) string {
	if len(tc.Columns) == 0 {
		return "  (empty table)\n"
	}

	rows := 0
	for _, col := range tc.Columns {
		if len(col.Sample) > rows {
			rows = len(col.Sample)
		}
	}
	if rows == 0 {
		return "  (no rows)\n"
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		parts := make([]string, 0, len(tc.Columns))
		for _, col := range tc.Columns {
			cell := ""
			if r < len(col.Sample) {
				cell = col.Sample[r]
			}
			parts = append(parts, fmt.Sprintf("%s: %s", col.Name, cell))
		}
		fmt.Fprintf(&b, "  {%s}\n", strings.Join(parts, ", "))
	}
	return b.String()
}
