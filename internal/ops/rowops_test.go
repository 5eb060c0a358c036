package ops

import (
	"testing"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

func TestDeleteRow(t *testing.T) {
	tbl := salesTable(t)

	out, err := DeleteRow(tbl, 3)
	if err != nil {
		t.Fatalf("DeleteRow() error = %v", err)
	}
	if out.RowCount() != 4 {
		t.Errorf("rows = %d, want 4", out.RowCount())
	}
	want := []string{"Alice", "Bob", "David", "Eve"}
	if got := colStrings(t, out, "Name"); !equalStrings(got, want) {
		t.Errorf("Name = %v, want %v", got, want)
	}
	if tbl.RowCount() != 5 {
		t.Error("input table was mutated")
	}
}

func TestDeleteRowBoundaries(t *testing.T) {
	tbl := salesTable(t)

	if _, err := DeleteRow(tbl, 0); !apperror.HasCode(err, apperror.CodeIndexOutOfRange) {
		t.Errorf("DeleteRow(0) error = %v, want index out of range", err)
	}
	if _, err := DeleteRow(tbl, 6); !apperror.HasCode(err, apperror.CodeIndexOutOfRange) {
		t.Errorf("DeleteRow(6) error = %v, want index out of range", err)
	}
	out, err := DeleteRow(tbl, 5)
	if err != nil {
		t.Fatalf("DeleteRow(5) error = %v", err)
	}
	if out.RowCount() != 4 {
		t.Errorf("rows = %d, want 4", out.RowCount())
	}
}

func TestDeleteRows(t *testing.T) {
	tbl := salesTable(t)

	out, err := DeleteRows(tbl, []int{1, 5, 1})
	if err != nil {
		t.Fatalf("DeleteRows() error = %v", err)
	}
	want := []string{"Bob", "Charlie", "David"}
	if got := colStrings(t, out, "Name"); !equalStrings(got, want) {
		t.Errorf("Name = %v, want %v", got, want)
	}

	if _, err := DeleteRows(tbl, []int{2, 9}); !apperror.HasCode(err, apperror.CodeIndexOutOfRange) {
		t.Errorf("DeleteRows with bad index error = %v, want index out of range", err)
	}
}

func TestDeleteRowsCondition(t *testing.T) {
	tbl := salesTable(t)

	out, err := DeleteRowsCondition(tbl, "Revenue", "<", table.Int(0))
	if err != nil {
		t.Fatalf("DeleteRowsCondition() error = %v", err)
	}
	if out.RowCount() != 4 {
		t.Errorf("rows = %d, want 4", out.RowCount())
	}
	for _, v := range column(t, out, "Revenue") {
		if f, _ := v.AsFloat(); f == -50 {
			t.Error("negative revenue row still present")
		}
	}

	if _, err := DeleteRowsCondition(tbl, "Umsatz", "<", table.Int(0)); !apperror.HasCode(err, apperror.CodeUnknownColumn) {
		t.Errorf("missing column error = %v", err)
	}
	if _, err := DeleteRowsCondition(tbl, "Revenue", "between", table.Int(0)); !apperror.HasCode(err, apperror.CodeInvalidOperator) {
		t.Errorf("bad operator error = %v", err)
	}
}

func TestKeepRowsCondition(t *testing.T) {
	tbl := salesTable(t)

	out, err := KeepRowsCondition(tbl, "Name", "contains", table.Text("a"))
	if err != nil {
		t.Fatalf("KeepRowsCondition() error = %v", err)
	}
	want := []string{"Charlie", "David"}
	if got := colStrings(t, out, "Name"); !equalStrings(got, want) {
		t.Errorf("Name = %v, want %v", got, want)
	}
}

func TestInsertRow(t *testing.T) {
	tbl := salesTable(t)

	out, err := InsertRow(tbl, 2, []table.Value{table.Int(9), table.Text("Frank"), table.Int(50)})
	if err != nil {
		t.Fatalf("InsertRow() error = %v", err)
	}
	want := []string{"Alice", "Frank", "Bob", "Charlie", "David", "Eve"}
	if got := colStrings(t, out, "Name"); !equalStrings(got, want) {
		t.Errorf("Name = %v, want %v", got, want)
	}

	appended, err := InsertRow(tbl, 6, []table.Value{table.Int(9), table.Text("Zoe"), table.Int(1)})
	if err != nil {
		t.Fatalf("InsertRow(append) error = %v", err)
	}
	if got := colStrings(t, appended, "Name")[5]; got != "Zoe" {
		t.Errorf("last name = %q, want Zoe", got)
	}
}

func TestInsertRowValidation(t *testing.T) {
	tbl := salesTable(t)

	_, err := InsertRow(tbl, 1, []table.Value{table.Int(1)})
	if err == nil || err.Error() != "Expected 3 values, got 1" {
		t.Errorf("short values error = %v", err)
	}

	_, err = InsertRow(tbl, 7, []table.Value{table.Int(1), table.Text("x"), table.Int(2)})
	if err == nil || err.Error() != "Row index 7 out of range (1-6)" {
		t.Errorf("out of range error = %v", err)
	}
}

func TestSortRows(t *testing.T) {
	tbl := salesTable(t)

	out, err := SortRows(tbl, "Revenue", true)
	if err != nil {
		t.Fatalf("SortRows() error = %v", err)
	}
	want := []string{"-50", "100", "150", "200", "300"}
	if got := colStrings(t, out, "Revenue"); !equalStrings(got, want) {
		t.Errorf("ascending Revenue = %v, want %v", got, want)
	}

	desc, err := SortRows(tbl, "Revenue", false)
	if err != nil {
		t.Fatalf("SortRows(desc) error = %v", err)
	}
	if got := colStrings(t, desc, "Revenue")[0]; got != "300" {
		t.Errorf("descending first = %q, want 300", got)
	}
}

func TestSortRowsNullsLast(t *testing.T) {
	tbl := mustTable(t,
		[]string{"v"},
		[][]table.Value{{table.Int(2)}, {table.Null()}, {table.Int(1)}})

	for _, ascending := range []bool{true, false} {
		out, err := SortRows(tbl, "v", ascending)
		if err != nil {
			t.Fatalf("SortRows() error = %v", err)
		}
		cells := column(t, out, "v")
		if !cells[2].IsNull() {
			t.Errorf("ascending=%v: null not sorted last: %v", ascending, cells)
		}
	}
}

func TestSortRowsStableOnTies(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Gruppe", "Name"},
		[][]table.Value{
			{table.Int(2), table.Text("Anna")},
			{table.Int(1), table.Text("Bernd")},
			{table.Int(2), table.Text("Clara")},
			{table.Int(1), table.Text("Dora")},
			{table.Int(2), table.Text("Emil")},
		})

	out, err := SortRows(tbl, "Gruppe", true)
	if err != nil {
		t.Fatalf("SortRows() error = %v", err)
	}
	want := []string{"Bernd", "Dora", "Anna", "Clara", "Emil"}
	if got := colStrings(t, out, "Name"); !equalStrings(got, want) {
		t.Errorf("tied rows reordered: got %v, want %v", got, want)
	}
}

func TestRemoveDuplicates(t *testing.T) {
	tbl := mustTable(t,
		[]string{"a", "b"},
		[][]table.Value{
			{table.Int(1), table.Text("x")},
			{table.Float(1.0), table.Text("x")},
			{table.Int(1), table.Text("y")},
			{table.Int(1), table.Text("x")},
		})

	out, err := RemoveDuplicates(tbl, nil)
	if err != nil {
		t.Fatalf("RemoveDuplicates() error = %v", err)
	}
	if out.RowCount() != 2 {
		t.Errorf("rows = %d, want 2 (int 1 and float 1.0 count as equal)", out.RowCount())
	}

	subset, err := RemoveDuplicates(tbl, []string{"a"})
	if err != nil {
		t.Fatalf("RemoveDuplicates(subset) error = %v", err)
	}
	if subset.RowCount() != 1 {
		t.Errorf("subset rows = %d, want 1", subset.RowCount())
	}

	if _, err := RemoveDuplicates(tbl, []string{"nope"}); !apperror.HasCode(err, apperror.CodeUnknownColumn) {
		t.Errorf("bad subset column error = %v", err)
	}
}
