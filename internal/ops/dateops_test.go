package ops

import (
	"strings"
	"testing"

	"github.com/msto63/mTW/internal/table"
	"github.com/msto63/mTW/pkg/core/apperror"
)

func TestReformatDate(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Datum"},
		[][]table.Value{
			{table.Text("15.03.2024")},
			{table.Null()},
			{table.Text("01.12.2023")},
		})

	out, err := ReformatDate(tbl, "Datum", "%d.%m.%Y", "%Y-%m-%d")
	if err != nil {
		t.Fatalf("ReformatDate() error = %v", err)
	}
	cells := column(t, out, "Datum")
	if got := cells[0].AsString(); got != "2024-03-15" {
		t.Errorf("first = %q, want 2024-03-15", got)
	}
	if !cells[1].IsNull() {
		t.Error("null cell should pass through")
	}
	if got := cells[2].AsString(); got != "2023-12-01" {
		t.Errorf("third = %q, want 2023-12-01", got)
	}
}

func TestReformatDateFailsWholeOperation(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Datum"},
		[][]table.Value{
			{table.Text("15.03.2024")},
			{table.Text("kein datum")},
		})

	_, err := ReformatDate(tbl, "Datum", "%d.%m.%Y", "%Y-%m-%d")
	if err == nil {
		t.Fatal("unparsable cell should fail the operation")
	}
	if !apperror.HasCode(err, apperror.CodeParseFailure) {
		t.Errorf("code = %v, want %v", apperror.GetCode(err), apperror.CodeParseFailure)
	}
	if !strings.Contains(err.Error(), "kein datum") {
		t.Errorf("error should name the offending cell: %v", err)
	}
}

func TestReformatDateBadDirective(t *testing.T) {
	tbl := mustTable(t, []string{"d"}, [][]table.Value{{table.Text("2024-01-01")}})

	_, err := ReformatDate(tbl, "d", "%Q", "%Y")
	if err == nil || !strings.Contains(err.Error(), "bad directive") {
		t.Errorf("bad directive error = %v", err)
	}
	_, err = ReformatDate(tbl, "d", "%Y-%m-%d", "%")
	if err == nil || !strings.Contains(err.Error(), "stray %") {
		t.Errorf("stray percent error = %v", err)
	}
}

func TestExtractDatePart(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Datum"},
		[][]table.Value{
			{table.Text("2024-03-15")},
			{table.Null()},
		})

	tests := []struct {
		part string
		want string
	}{
		{"year", "2024"},
		{"month", "3"},
		{"day", "15"},
	}
	for _, tt := range tests {
		t.Run(tt.part, func(t *testing.T) {
			out, err := ExtractDatePart(tbl, "Datum", tt.part, "Teil")
			if err != nil {
				t.Fatalf("ExtractDatePart() error = %v", err)
			}
			cells := column(t, out, "Teil")
			if got := cells[0].AsString(); got != tt.want {
				t.Errorf("part = %q, want %q", got, tt.want)
			}
			if !cells[1].IsNull() {
				t.Error("null source should give null part")
			}
		})
	}

	if _, err := ExtractDatePart(tbl, "Datum", "week", "Teil"); err == nil || err.Error() != "Invalid part: week" {
		t.Errorf("invalid part error = %v", err)
	}
}

func TestExtractDatePartOverwritesTarget(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Datum", "Jahr"},
		[][]table.Value{{table.Text("2024-03-15"), table.Text("alt")}})

	out, err := ExtractDatePart(tbl, "Datum", "year", "Jahr")
	if err != nil {
		t.Fatalf("ExtractDatePart() error = %v", err)
	}
	if got := colStrings(t, out, "Jahr")[0]; got != "2024" {
		t.Errorf("Jahr = %q, want 2024", got)
	}
	if out.ColumnCount() != 2 {
		t.Errorf("columns = %d, want 2 (overwrite, not append)", out.ColumnCount())
	}
}

func TestConvertToDatetime(t *testing.T) {
	tbl := mustTable(t,
		[]string{"d"},
		[][]table.Value{
			{table.Text("2024-03-15")},
			{table.Text("15.03.2024")},
			{table.Text("unsinn")},
			{table.Null()},
		})

	out, err := ConvertToDatetime(tbl, "d")
	if err != nil {
		t.Fatalf("ConvertToDatetime() error = %v", err)
	}
	cells := column(t, out, "d")
	if cells[0].Kind() != table.KindDate || cells[1].Kind() != table.KindDate {
		t.Errorf("parsable cells should become dates: %v %v", cells[0].Kind(), cells[1].Kind())
	}
	if cells[0].AsString() != "2024-03-15" || cells[1].AsString() != "2024-03-15" {
		t.Errorf("parsed = %q %q", cells[0].AsString(), cells[1].AsString())
	}
	if !cells[2].IsNull() {
		t.Error("unparsable cell should become null")
	}
	if !cells[3].IsNull() {
		t.Error("null stays null")
	}
}

func TestCalculateDuration(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Start", "Ende"},
		[][]table.Value{
			{table.Text("2024-03-01"), table.Text("2024-03-15")},
			{table.Text("2024-03-15"), table.Text("2024-03-01")},
			{table.Null(), table.Text("2024-03-01")},
		})

	out, err := CalculateDuration(tbl, "Start", "Ende", "Dauer", "days")
	if err != nil {
		t.Fatalf("CalculateDuration() error = %v", err)
	}
	cells := column(t, out, "Dauer")
	if got := cells[0].AsString(); got != "14" {
		t.Errorf("duration = %q, want 14", got)
	}
	if got := cells[1].AsString(); got != "-14" {
		t.Errorf("negative duration = %q, want -14", got)
	}
	if !cells[2].IsNull() {
		t.Error("null start should give null duration")
	}
}

func TestCalculateDurationHours(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Start", "Ende"},
		[][]table.Value{
			{table.Text("2024-03-01 08:00:00"), table.Text("2024-03-01 14:30:00")},
		})

	out, err := CalculateDuration(tbl, "Start", "Ende", "Stunden", "hours")
	if err != nil {
		t.Fatalf("CalculateDuration() error = %v", err)
	}
	if got := column(t, out, "Stunden")[0].AsString(); got != "6.5" {
		t.Errorf("hours = %q, want 6.5", got)
	}

	_, err = CalculateDuration(tbl, "Start", "Ende", "x", "weeks")
	if err == nil || err.Error() != "Unsupported unit: weeks" {
		t.Errorf("invalid unit error = %v", err)
	}
}

func TestCalculateDurationFloorsPartialDays(t *testing.T) {
	tbl := mustTable(t,
		[]string{"Start", "Ende"},
		[][]table.Value{
			{table.Text("2024-03-01 00:00:00"), table.Text("2024-03-02 12:00:00")},
			{table.Text("2024-03-02 12:00:00"), table.Text("2024-03-01 00:00:00")},
		})

	out, err := CalculateDuration(tbl, "Start", "Ende", "Tage", "days")
	if err != nil {
		t.Fatalf("CalculateDuration() error = %v", err)
	}
	got := colStrings(t, out, "Tage")
	if got[0] != "1" || got[1] != "-2" {
		t.Errorf("days = %v, want [1 -2] (floor semantics)", got)
	}
}
