package store

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType is the storage type of a declared column.
type FieldType string

const (
	Integer FieldType = "INTEGER"
	Text    FieldType = "TEXT"
)

// Field is one declared column. Names are stored upper-case in the schema
// and addressed lower-case on records.
type Field struct {
	Name string
	Type FieldType
}

// Table describes one entity: its table name, ordered columns (the first is
// the primary key), and per-column default values used by CreateTable.
type Table struct {
	Name     string
	Fields   []Field
	Defaults map[string]string
}

// IDField returns the primary key column name.
func (t *Table) IDField() string {
	return t.Fields[0].Name
}

func (t *Table) field(name string) (Field, bool) {
	upper := strings.ToUpper(name)
	for _, f := range t.Fields {
		if f.Name == upper {
			return f, true
		}
	}
	return Field{}, false
}

func (t *Table) columnList() string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return strings.Join(names, ",")
}

// createSQL emits the DDL for the table: first field as primary key, the
// rest typed, with DEFAULT clauses where declared.
func (t *Table) createSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (%s %s PRIMARY KEY", t.Name, t.Fields[0].Name, t.Fields[0].Type)
	for _, f := range t.Fields[1:] {
		fmt.Fprintf(&b, ", %s %s", f.Name, f.Type)
		if def, ok := t.Defaults[f.Name]; ok {
			fmt.Fprintf(&b, " DEFAULT '%s'", def)
		}
	}
	b.WriteString(")")
	return b.String()
}

// Values carries field values keyed by lower-case field name.
type Values map[string]any

// Record is one row mapped back from a table, addressed by lower-case field
// names. SQLite columns are dynamically typed, so accessors coerce.
type Record struct {
	Table  *Table
	values map[string]any
}

// ID returns the value of the record's primary key field.
func (r *Record) ID() int64 {
	return r.Int(strings.ToLower(r.Table.IDField()))
}

// Get returns the raw stored value for a field.
func (r *Record) Get(field string) any {
	return r.values[strings.ToLower(field)]
}

// Int returns the field coerced to an integer, 0 when absent or unparseable.
func (r *Record) Int(field string) int64 {
	switch v := r.Get(field).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case []byte:
		n, err := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float returns the field coerced to a float, 0 when absent.
func (r *Record) Float(field string) float64 {
	switch v := r.Get(field).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Text returns the field coerced to a string, "" when absent.
func (r *Record) Text(field string) string {
	switch v := r.Get(field).(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (r *Record) set(field string, value any) {
	r.values[strings.ToLower(field)] = value
}
