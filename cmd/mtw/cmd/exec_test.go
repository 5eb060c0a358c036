package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/msto63/mTW/internal/command"
)

func writePlan(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func resetPlanFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		execPlan = ""
		execCommand = ""
	})
}

func TestLoadPlanYAML(t *testing.T) {
	resetPlanFlags(t)
	execCommand = ""
	execPlan = writePlan(t, "plan.yaml", `- action: delete_row
  parameters:
    row_index: 3
  reasoning: Testzeile entfernen
- action: sort_rows
  parameters:
    column: Umsatz
    ascending: false
`)

	cmds, err := loadPlan()
	if err != nil {
		t.Fatalf("loadPlan() error = %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("len(cmds) = %d, want 2", len(cmds))
	}
	if cmds[0].Action != command.ActionDeleteRow {
		t.Errorf("cmds[0].Action = %v, want delete_row", cmds[0].Action)
	}
	if p, ok := cmds[0].Params.(command.DeleteRowParams); !ok || p.RowIndex != 3 {
		t.Errorf("cmds[0].Params = %+v, want RowIndex 3", cmds[0].Params)
	}
	if cmds[0].Reasoning != "Testzeile entfernen" {
		t.Errorf("cmds[0].Reasoning = %q, want the plan entry reasoning", cmds[0].Reasoning)
	}
	if p, ok := cmds[1].Params.(command.SortRowsParams); !ok || p.Column != "Umsatz" || p.Ascending {
		t.Errorf("cmds[1].Params = %+v, want descending sort on Umsatz", cmds[1].Params)
	}
}

func TestLoadPlanJSONFile(t *testing.T) {
	resetPlanFlags(t)
	execCommand = ""
	execPlan = writePlan(t, "plan.json",
		`[{"action": "delete_row", "parameters": {"row_index": 0}}]`)

	cmds, err := loadPlan()
	if err != nil {
		t.Fatalf("loadPlan() error = %v", err)
	}
	if len(cmds) != 1 || cmds[0].Action != command.ActionDeleteRow {
		t.Fatalf("cmds = %+v, want one delete_row", cmds)
	}
}

func TestLoadPlanInlineCommand(t *testing.T) {
	resetPlanFlags(t)
	execPlan = ""
	execCommand = `{"action": "sort_rows", "parameters": {"column": "Umsatz"}}`

	cmds, err := loadPlan()
	if err != nil {
		t.Fatalf("loadPlan() error = %v", err)
	}
	if len(cmds) != 1 {
		t.Fatalf("len(cmds) = %d, want 1", len(cmds))
	}
	if p, ok := cmds[0].Params.(command.SortRowsParams); !ok || !p.Ascending {
		t.Errorf("cmds[0].Params = %+v, ascending should default to true", cmds[0].Params)
	}
}

func TestLoadPlanInvalidYAML(t *testing.T) {
	resetPlanFlags(t)
	execCommand = ""
	execPlan = writePlan(t, "plan.yaml", "[unvollständig")

	if _, err := loadPlan(); err == nil {
		t.Error("loadPlan() should fail on invalid YAML")
	}
}

func TestLoadPlanUnknownAction(t *testing.T) {
	resetPlanFlags(t)
	execCommand = ""
	execPlan = writePlan(t, "plan.yaml", `- action: explodiere
  parameters: {}
`)

	if _, err := loadPlan(); err == nil {
		t.Error("loadPlan() should reject unknown actions")
	}
}
