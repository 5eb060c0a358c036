package ops

import (
	"testing"

	"github.com/msto63/mTW/internal/table"
)

// mustTable builds a test table or stops the test
func mustTable(t *testing.T, names []string, rows [][]table.Value) *table.Table {
	t.Helper()
	tbl, err := table.NewWithRows(names, rows)
	if err != nil {
		t.Fatalf("building test table: %v", err)
	}
	return tbl
}

// column fetches a column's cells or stops the test
func column(t *testing.T, tbl *table.Table, name string) []table.Value {
	t.Helper()
	c, err := tbl.Column(name)
	if err != nil {
		t.Fatalf("column %s: %v", name, err)
	}
	return c.Cells
}

// colStrings renders a column through AsString for easy comparison
func colStrings(t *testing.T, tbl *table.Table, name string) []string {
	t.Helper()
	cells := column(t, tbl, name)
	out := make([]string, len(cells))
	for i, v := range cells {
		out[i] = v.AsString()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// salesTable is the five-person revenue fixture used across row and
// sort tests
func salesTable(t *testing.T) *table.Table {
	t.Helper()
	return mustTable(t,
		[]string{"ID", "Name", "Revenue"},
		[][]table.Value{
			{table.Int(1), table.Text("Alice"), table.Int(100)},
			{table.Int(2), table.Text("Bob"), table.Int(200)},
			{table.Int(3), table.Text("Charlie"), table.Int(-50)},
			{table.Int(4), table.Text("David"), table.Int(300)},
			{table.Int(5), table.Text("Eve"), table.Int(150)},
		})
}
