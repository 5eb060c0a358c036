package table

import (
	"strconv"
	"strings"
)

// InferKind derives the column type from its non-null cells. A mix of
// int and float is float, any other mix degrades to text.
func InferKind(c Column) Kind {
	kind := KindNull
	for _, v := range c.Cells {
		if v.IsNull() {
			continue
		}
		switch {
		case kind == KindNull:
			kind = v.Kind()
		case kind == v.Kind():
		case kind == KindInt && v.Kind() == KindFloat:
			kind = KindFloat
		case kind == KindFloat && v.Kind() == KindInt:
		default:
			return KindText
		}
	}
	return kind
}

// ParseCell infers a typed value from raw text input, as read from CSV
// cells. Empty text becomes null, numbers and booleans get their type,
// everything else stays text.
func ParseCell(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Null()
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Float(f)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Text(s)
}

// ColumnInfo describes one column for table metadata
type ColumnInfo struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	NonNull int      `json:"non_null"`
	Sample  []string `json:"sample,omitempty"`
}

// Context is the structural summary of a table handed to the
// translation layer and shown in status output
type Context struct {
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Columns []ColumnInfo `json:"columns"`
}

// Describe builds the metadata context. sampleRows caps how many cell
// samples each column carries; zero means no samples.
func (t *Table) Describe(sampleRows int) Context {
	ctx := Context{
		Rows:    t.RowCount(),
		Cols:    t.ColumnCount(),
		Columns: make([]ColumnInfo, 0, len(t.Columns)),
	}
	if sampleRows > t.RowCount() {
		sampleRows = t.RowCount()
	}
	for _, c := range t.Columns {
		info := ColumnInfo{
			Name: c.Name,
			Type: InferKind(c).String(),
		}
		for _, v := range c.Cells {
			if !v.IsNull() {
				info.NonNull++
			}
		}
		for j := 0; j < sampleRows; j++ {
			info.Sample = append(info.Sample, c.Cells[j].AsString())
		}
		ctx.Columns = append(ctx.Columns, info)
	}
	return ctx
}
