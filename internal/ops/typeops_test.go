package ops

import (
	"testing"

	"github.com/msto63/mTW/internal/table"
)

func TestConvertTypeInt(t *testing.T) {
	tbl := mustTable(t,
		[]string{"v"},
		[][]table.Value{
			{table.Float(3.7)},
			{table.Float(-3.7)},
			{table.Text("12")},
			{table.Text("abc")},
			{table.Null()},
		})

	out, err := ConvertType(tbl, "v", "int")
	if err != nil {
		t.Fatalf("ConvertType() error = %v", err)
	}
	cells := column(t, out, "v")
	if cells[0].IntValue() != 3 || cells[1].IntValue() != -3 {
		t.Errorf("truncation = %v %v, want 3 -3", cells[0], cells[1])
	}
	if cells[2].Kind() != table.KindInt || cells[2].IntValue() != 12 {
		t.Errorf("numeric text = %v, want int 12", cells[2])
	}
	if !cells[3].IsNull() || !cells[4].IsNull() {
		t.Error("unparsable and null cells should be null")
	}
}

func TestConvertTypeFloat(t *testing.T) {
	tbl := mustTable(t,
		[]string{"v"},
		[][]table.Value{{table.Int(3)}, {table.Text("2.5")}, {table.Bool(true)}})

	out, err := ConvertType(tbl, "v", "float")
	if err != nil {
		t.Fatalf("ConvertType() error = %v", err)
	}
	for i, want := range []float64{3, 2.5, 1} {
		cell := column(t, out, "v")[i]
		if cell.Kind() != table.KindFloat || cell.FloatValue() != want {
			t.Errorf("row %d = %v, want float %v", i+1, cell, want)
		}
	}
}

func TestConvertTypeStr(t *testing.T) {
	tbl := mustTable(t,
		[]string{"v"},
		[][]table.Value{{table.Int(7)}, {table.Bool(false)}, {table.Null()}})

	out, err := ConvertType(tbl, "v", "str")
	if err != nil {
		t.Fatalf("ConvertType() error = %v", err)
	}
	cells := column(t, out, "v")
	if cells[0].Kind() != table.KindText || cells[0].TextValue() != "7" {
		t.Errorf("int = %v, want text 7", cells[0])
	}
	if cells[1].TextValue() != "false" {
		t.Errorf("bool = %v, want text false", cells[1])
	}
	if !cells[2].IsNull() {
		t.Error("null should stay null, not become text")
	}
}

func TestConvertTypeBoolean(t *testing.T) {
	tbl := mustTable(t,
		[]string{"v"},
		[][]table.Value{
			{table.Int(0)},
			{table.Int(3)},
			{table.Text("false")},
			{table.Text("ja klar")},
			{table.Text("")},
			{table.Null()},
		})

	out, err := ConvertType(tbl, "v", "boolean")
	if err != nil {
		t.Fatalf("ConvertType() error = %v", err)
	}
	cells := column(t, out, "v")
	wantBools := []bool{false, true, false, true, false}
	for i, want := range wantBools {
		if cells[i].Kind() != table.KindBool || cells[i].BoolValue() != want {
			t.Errorf("row %d = %v, want bool %v", i+1, cells[i], want)
		}
	}
	if !cells[5].IsNull() {
		t.Error("null should stay null under boolean conversion")
	}
}

func TestConvertTypeInvalid(t *testing.T) {
	tbl := mustTable(t, []string{"v"}, [][]table.Value{{table.Int(1)}})

	_, err := ConvertType(tbl, "v", "decimal")
	if err == nil || err.Error() != "Invalid target_type: decimal" {
		t.Errorf("invalid target error = %v", err)
	}
}
