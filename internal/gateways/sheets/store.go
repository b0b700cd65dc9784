package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

const rowCacheSize = 4096

// Column is one named field of a schema with the value new rows receive.
type Column struct {
	Name    string
	Default string
}

// Schema describes a table: its key column and every column the code reads or writes.
type Schema struct {
	Table   string
	Key     string
	Columns []Column
}

// Headers returns the column names in declaration order.
func (s Schema) Headers() []string {
	out := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		out = append(out, c.Name)
	}
	return out
}

// Store is the typed adapter over a Table. It resolves header names once,
// caches key -> row index and performs one remote write per field.
type Store struct {
	table  Table
	schema Schema

	mu      sync.RWMutex
	columns map[string]int
	headers []string

	rows *lru.Cache
}

func NewStore(table Table, schema Schema) *Store {
	rows, _ := lru.New(rowCacheSize)
	return &Store{
		table:   table,
		schema:  schema,
		columns: make(map[string]int),
		rows:    rows,
	}
}

func (s *Store) Table() Table { return s.table }

func (s *Store) Schema() Schema { return s.schema }

// Migrate reads the header row and appends every schema column that is missing.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.loadHeaders(ctx); err != nil {
		return err
	}

	var added []string
	for _, c := range s.schema.Columns {
		if _, ok := s.columnIndex(c.Name); ok {
			continue
		}
		if _, err := s.EnsureColumn(ctx, c.Name); err != nil {
			return err
		}
		added = append(added, c.Name)
	}

	if len(added) > 0 {
		slog.Info("Schema columns created",
			slog.String("type", "db"),
			slog.String("table", s.table.Name()),
			slog.Any("columns", added),
		)
	}
	return nil
}

func (s *Store) loadHeaders(ctx context.Context) error {
	headers, err := s.table.Headers(ctx)
	if err != nil {
		return fmt.Errorf("failed to read headers of %s: %w", s.table.Name(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexHeaders(headers)
	return nil
}

func (s *Store) indexHeaders(headers []string) {
	s.headers = append(s.headers[:0], headers...)
	s.columns = make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToUpper(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, dup := s.columns[key]; !dup {
			s.columns[key] = i + 1
		}
	}
}

func (s *Store) columnIndex(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.columns[strings.ToUpper(name)]
	return idx, ok
}

// EnsureColumn returns the column index for name, appending the header when absent.
func (s *Store) EnsureColumn(ctx context.Context, name string) (int, error) {
	if idx, ok := s.columnIndex(name); ok {
		return idx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	headers, err := s.table.Headers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read headers of %s: %w", s.table.Name(), err)
	}
	s.indexHeaders(headers)
	if idx, ok := s.columns[strings.ToUpper(name)]; ok {
		return idx, nil
	}

	idx := len(headers) + 1
	if err := s.table.WriteCell(ctx, 1, idx, name); err != nil {
		return 0, fmt.Errorf("failed to add column %s to %s: %w", name, s.table.Name(), err)
	}
	s.headers = append(s.headers, name)
	s.columns[strings.ToUpper(name)] = idx
	return idx, nil
}

func (s *Store) decode(values []string) Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := make(Record, len(s.headers))
	for i, h := range s.headers {
		key := strings.ToUpper(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, seen := rec[key]; seen {
			continue
		}
		if i < len(values) {
			rec[key] = values[i]
		} else {
			rec[key] = ""
		}
	}
	return rec
}

// Find locates the row whose key column equals key.
func (s *Store) Find(ctx context.Context, key string) (*Row, error) {
	key = strings.TrimSpace(key)
	keyCol, err := s.EnsureColumn(ctx, s.schema.Key)
	if err != nil {
		return nil, err
	}

	if v, ok := s.rows.Get(key); ok {
		idx := v.(int)
		values, err := s.table.ReadRow(ctx, idx)
		if err != nil {
			return nil, err
		}
		if keyCol-1 < len(values) && strings.TrimSpace(values[keyCol-1]) == key {
			return &Row{Index: idx, Record: s.decode(values)}, nil
		}
		s.rows.Remove(key)
	}

	idx, err := s.table.FindRow(ctx, keyCol, key)
	if err != nil {
		return nil, err
	}
	values, err := s.table.ReadRow(ctx, idx)
	if err != nil {
		return nil, err
	}
	s.rows.Add(key, idx)
	return &Row{Index: idx, Record: s.decode(values)}, nil
}

// Write sets one named field of a row.
func (s *Store) Write(ctx context.Context, row int, name, value string) error {
	col, err := s.EnsureColumn(ctx, name)
	if err != nil {
		return err
	}
	return s.table.WriteCell(ctx, row, col, value)
}

// Append creates a row for key from schema defaults overridden by values.
func (s *Store) Append(ctx context.Context, key string, values Record) (*Row, error) {
	if err := s.loadHeaders(ctx); err != nil {
		return nil, err
	}

	rec := make(Record)
	for _, c := range s.schema.Columns {
		rec.Set(c.Name, c.Default)
	}
	for k, v := range values {
		rec.Set(k, v)
	}
	rec.Set(s.schema.Key, key)

	for name := range rec {
		if _, err := s.EnsureColumn(ctx, name); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	row := make([]string, len(s.headers))
	for i, h := range s.headers {
		row[i] = rec[strings.ToUpper(strings.TrimSpace(h))]
	}
	s.mu.RUnlock()

	idx, err := s.table.AppendRow(ctx, row)
	if err != nil {
		return nil, err
	}
	s.rows.Add(strings.TrimSpace(key), idx)
	return &Row{Index: idx, Record: s.decode(row)}, nil
}

// Rows lists every data row as a record.
func (s *Store) Rows(ctx context.Context) ([]Record, error) {
	if err := s.loadHeaders(ctx); err != nil {
		return nil, err
	}
	rows, err := s.table.ListRows(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for _, values := range rows {
		rec := s.decode(values)
		if s.schema.Key != "" && rec.String(s.schema.Key) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// IsNotFound reports whether err means the key has no row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRowNotFound)
}
