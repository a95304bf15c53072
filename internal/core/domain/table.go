package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// ColumnKind is the value type of a table column.
type ColumnKind string

const (
	// KindString holds string values.
	KindString ColumnKind = "string"
	// KindInt holds int64 values.
	KindInt ColumnKind = "int"
	// KindFloat holds float64 values.
	KindFloat ColumnKind = "float"
	// KindTime holds time.Time values in UTC.
	KindTime ColumnKind = "time"
)

// Column describes one named, typed column.
type Column struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Table is a tabular dataset with named, typed columns and ordered rows.
// Values are stored in canonical form: string, int64, float64, time.Time (UTC) or nil.
// A Table is treated as immutable once it is handed to a cache.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{
		Columns: slices.Clone(columns),
		Rows:    [][]any{},
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c.Name == name {
			return i, nil
		}
	}
	return -1, zerr.With(ErrColumnNotFound, "column", name)
}

// Append adds a row, converting each value to its column's canonical form.
func (t *Table) Append(values ...any) error {
	if len(values) != len(t.Columns) {
		return zerr.With(zerr.With(ErrRowWidth, "want", len(t.Columns)), "got", len(values))
	}

	row := make([]any, len(values))
	for i, v := range values {
		cv, err := canonicalValue(t.Columns[i].Kind, v)
		if err != nil {
			return zerr.With(err, "column", t.Columns[i].Name)
		}
		row[i] = cv
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Clone returns a copy that shares no row slices with t.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: slices.Clone(t.Columns),
		Rows:    make([][]any, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = slices.Clone(row)
	}
	return out
}

// UnmarshalJSON decodes a table and restores canonical value types per column kind.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw struct {
		Columns []Column `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return zerr.Wrap(err, ErrTableUnmarshalFailed.Error())
	}

	decoded := NewTable(raw.Columns...)
	for _, row := range raw.Rows {
		if err := decoded.Append(row...); err != nil {
			return zerr.Wrap(err, ErrTableUnmarshalFailed.Error())
		}
	}
	*t = *decoded
	return nil
}

func canonicalValue(kind ColumnKind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch kind {
	case KindString:
		switch s := v.(type) {
		case string:
			return s, nil
		case []byte:
			return string(s), nil
		}
	case KindInt:
		if n, ok := toInt64(v); ok {
			return n, nil
		}
	case KindFloat:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	case KindTime:
		ts, err := ParseTimestamp(v)
		if err != nil {
			return nil, err
		}
		return ts, nil
	}

	return nil, zerr.With(ErrColumnType, "kind", string(kind))
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// ParseTimestamp normalizes a time value or timestamp string to UTC.
// Strings without a zone are interpreted as UTC.
func ParseTimestamp(v any) (time.Time, error) {
	switch ts := v.(type) {
	case time.Time:
		return ts.UTC(), nil
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, ts); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, zerr.With(ErrTimestampParse, "value", ts)
	case []byte:
		return ParseTimestamp(string(ts))
	default:
		return time.Time{}, zerr.With(ErrTimestampParse, "type", fmt.Sprintf("%T", v))
	}
}
