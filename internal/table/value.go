// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     table
// Description: Closed cell value type with explicit coercions
// Author:      Mike Stoffels
// Created:     2026-02-10
// License:     MIT
// ============================================================================

package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type a Value holds
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
	KindDate
)

// String returns the type label used in column metadata
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// Value is a single cell value. The zero value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	t    time.Time
}

// Null returns the null value
func Null() Value {
	return Value{}
}

// Int creates an integer value
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float creates a floating-point value
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Text creates a text value
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Bool creates a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Date creates a date/time value
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IntValue returns the raw integer, valid only for KindInt
func (v Value) IntValue() int64 {
	return v.i
}

// FloatValue returns the raw float, valid only for KindFloat
func (v Value) FloatValue() float64 {
	return v.f
}

// TextValue returns the raw string, valid only for KindText
func (v Value) TextValue() string {
	return v.s
}

// BoolValue returns the raw bool, valid only for KindBool
func (v Value) BoolValue() bool {
	return v.b
}

// DateValue returns the raw time, valid only for KindDate
func (v Value) DateValue() time.Time {
	return v.t
}

// AsFloat coerces the value to a float64. Text is parsed as a number.
// Returns false when the value cannot represent a number (null, date,
// unparsable text); best-effort numeric operations turn those cells null.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsInt coerces the value to an int64, truncating fractional parts
func (v Value) AsInt() (int64, bool) {
	f, ok := v.AsFloat()
	if !ok {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

// AsString renders the value as text. Null renders as the empty string.
func (v Value) AsString() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// AsBool coerces the value to a boolean. Numbers are true when non-zero.
// Recognized boolean words parse to their value, other non-empty text is
// true and empty text is false. Null stays null (second result false).
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindInt:
		return v.i != 0, true
	case KindFloat:
		return v.f != 0, true
	case KindDate:
		return true, true
	case KindText:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no", "":
			return false, true
		default:
			return true, true
		}
	default:
		return false, false
	}
}

// AsDate coerces the value to a date. Text is parsed permissively.
func (v Value) AsDate() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.t, true
	case KindText:
		return ParseDateString(v.s)
	default:
		return time.Time{}, false
	}
}

// Equal reports strict equality: same kind and same value
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	case KindDate:
		return v.t.Equal(other.t)
	default:
		return true
	}
}

// String implements fmt.Stringer
func (v Value) String() string {
	return v.AsString()
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	case KindText:
		return json.Marshal(v.s)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.AsString())
	default:
		return []byte("null"), nil
	}
}

// FromAny converts a decoded JSON or parameter value into a Value.
// json.Number keeps the integer/float distinction of the wire format.
func FromAny(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case float32:
		return Float(float64(x))
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return Int(int64(x))
		}
		return Float(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i)
		}
		if f, err := x.Float64(); err == nil {
			return Float(f)
		}
		return Text(x.String())
	case string:
		return Text(x)
	case time.Time:
		return Date(x)
	default:
		return Text(fmt.Sprintf("%v", x))
	}
}

// dateLayouts are the formats tried by permissive date parsing
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006",
	"02.01.2006 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDateString parses a date string against the known layouts
func ParseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CompareValues orders two values for sorting and comparisons.
// Numbers compare numerically, everything else by its text rendering.
// Null sorts after any non-null value regardless of direction.
func CompareValues(a, b Value) int {
	if a.IsNull() || b.IsNull() {
		switch {
		case a.IsNull() && b.IsNull():
			return 0
		case a.IsNull():
			return 1
		default:
			return -1
		}
	}

	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a.AsString(), b.AsString())
}
