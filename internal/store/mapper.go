package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Query selects rows from a declared table. Eq filters combine with AND and
// match by equality; Where accepts a raw predicate for conditions the
// keyword form cannot express and takes precedence over Eq.
type Query struct {
	Eq      Values
	Where   string
	OrderBy string
	Limit   int
}

// CreateTable emits and executes the DDL for a declared table.
func (s *Store) CreateTable(ctx context.Context, table *Table) error {
	if _, err := s.db.ExecContext(ctx, table.createSQL()); err != nil {
		return fmt.Errorf("create table %s: %w", table.Name, err)
	}
	return nil
}

// nextID returns max(id)+1 for the table. Identifier assignment is
// last-observed-max, not a sequence; the run lock is the only thing keeping
// two writers from colliding here.
func (s *Store) nextID(ctx context.Context, table *Table) (int64, error) {
	var current int64
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", table.IDField(), table.Name))
	if err := row.Scan(&current); err != nil {
		return 0, fmt.Errorf("next id for %s: %w", table.Name, err)
	}
	return current + 1, nil
}

// Insert adds one row. Fields absent from values get their declared default,
// or a type-appropriate zero (0 / empty string). The primary key is the
// supplied "id" value when present, max(id)+1 otherwise. Returns the new id.
func (s *Store) Insert(ctx context.Context, table *Table, values Values) (int64, error) {
	byColumn := make(map[string]any, len(values))
	for key, value := range values {
		upper := strings.ToUpper(key)
		if _, ok := table.field(upper); !ok {
			return 0, fmt.Errorf("insert %s: unknown field %q", table.Name, key)
		}
		byColumn[upper] = value
	}

	id, explicit := byColumn[table.IDField()]
	if !explicit {
		next, err := s.nextID(ctx, table)
		if err != nil {
			return 0, err
		}
		id = next
	}

	params := make([]any, 0, len(table.Fields))
	params = append(params, id)
	for _, f := range table.Fields[1:] {
		value, ok := byColumn[f.Name]
		if !ok {
			if def, has := table.Defaults[f.Name]; has {
				value = def
			} else if f.Type == Integer {
				value = 0
			} else {
				value = ""
			}
		}
		params = append(params, value)
	}

	cmd := fmt.Sprintf("INSERT INTO %s VALUES (%s)", table.Name, placeholders(len(params)))
	s.logger.Debug("insert row", "table", table.Name, "cmd", cmd)
	if _, err := s.db.ExecContext(ctx, cmd, params...); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table.Name, err)
	}
	return toInt64(id), nil
}

// Query returns every row matching q as typed records.
func (s *Store) Query(ctx context.Context, table *Table, q Query) ([]*Record, error) {
	var clauses []string
	var params []any
	cmd := fmt.Sprintf("SELECT %s FROM %s", table.columnList(), table.Name)
	switch {
	case q.Where != "":
		cmd += " WHERE " + q.Where
	case len(q.Eq) > 0:
		for _, key := range sortedKeys(q.Eq) {
			upper := strings.ToUpper(key)
			if _, ok := table.field(upper); !ok {
				return nil, fmt.Errorf("query %s: unknown field %q", table.Name, key)
			}
			clauses = append(clauses, upper+"=?")
			params = append(params, q.Eq[key])
		}
		cmd += " WHERE " + strings.Join(clauses, " AND ")
	}
	if q.OrderBy != "" {
		cmd += " ORDER BY " + q.OrderBy
	}
	if q.Limit > 0 {
		cmd += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	s.logger.Debug("query rows", "table", table.Name, "cmd", cmd)
	rows, err := s.db.QueryContext(ctx, cmd, params...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table.Name, err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		dest := make([]any, len(table.Fields))
		for i := range dest {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table.Name, err)
		}
		rec := &Record{Table: table, values: make(map[string]any, len(table.Fields))}
		for i, f := range table.Fields {
			rec.set(f.Name, *dest[i].(*any))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", table.Name, err)
	}
	return records, nil
}

// First returns the first row matching q, or nil when nothing matches.
// A miss is not an error.
func (s *Store) First(ctx context.Context, table *Table, q Query) (*Record, error) {
	q.Limit = 1
	records, err := s.Query(ctx, table, q)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Contains reports whether at least one row matches the equality filters.
func (s *Store) Contains(ctx context.Context, table *Table, filters Values) (bool, error) {
	rec, err := s.First(ctx, table, Query{Eq: filters})
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// Count returns the number of rows matching the equality filters.
func (s *Store) Count(ctx context.Context, table *Table, filters Values) (int, error) {
	records, err := s.Query(ctx, table, Query{Eq: filters})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Update sets the given fields on the row identified by the record's primary
// key and mutates the in-memory record to match.
func (s *Store) Update(ctx context.Context, record *Record, values Values) error {
	table := record.Table
	var sets []string
	var params []any
	for _, key := range sortedKeys(values) {
		upper := strings.ToUpper(key)
		if _, ok := table.field(upper); !ok {
			return fmt.Errorf("update %s: unknown field %q", table.Name, key)
		}
		sets = append(sets, upper+"=?")
		params = append(params, values[key])
	}
	if len(sets) == 0 {
		return nil
	}
	params = append(params, record.ID())

	cmd := fmt.Sprintf("UPDATE %s SET %s WHERE %s=?", table.Name, strings.Join(sets, ", "), table.IDField())
	s.logger.Debug("update row", "table", table.Name, "id", record.ID(), "cmd", cmd)
	if _, err := s.db.ExecContext(ctx, cmd, params...); err != nil {
		return fmt.Errorf("update %s id=%d: %w", table.Name, record.ID(), err)
	}
	for key, value := range values {
		record.set(key, value)
	}
	return nil
}

// Delete removes the row identified by the record's primary key.
func (s *Store) Delete(ctx context.Context, record *Record) error {
	table := record.Table
	cmd := fmt.Sprintf("DELETE FROM %s WHERE %s=?", table.Name, table.IDField())
	if _, err := s.db.ExecContext(ctx, cmd, record.ID()); err != nil {
		return fmt.Errorf("delete %s id=%d: %w", table.Name, record.ID(), err)
	}
	return nil
}

func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}
	return strings.Join(marks, ",")
}

func sortedKeys(values Values) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
