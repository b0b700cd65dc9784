package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryWorkbook keeps tables in process memory. Used for tests and local runs.
type MemoryWorkbook struct {
	mu     sync.Mutex
	tables map[string]*MemoryTable
}

func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{tables: make(map[string]*MemoryTable)}
}

func (w *MemoryWorkbook) Table(_ context.Context, name string, headers []string) (Table, error) {
	return w.MemoryTable(name, headers), nil
}

// MemoryTable returns the concrete table, creating it when absent.
func (w *MemoryWorkbook) MemoryTable(name string, headers []string) *MemoryTable {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.tables[name]; ok {
		return t
	}
	t := &MemoryTable{name: name}
	if len(headers) > 0 {
		t.rows = append(t.rows, append([]string(nil), headers...))
	}
	w.tables[name] = t
	return t
}

type MemoryTable struct {
	mu   sync.RWMutex
	name string
	rows [][]string
}

// NewMemoryTable builds a standalone table from a header row and data rows.
func NewMemoryTable(name string, rows ...[]string) *MemoryTable {
	t := &MemoryTable{name: name}
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	return t
}

func (t *MemoryTable) Name() string { return t.name }

func (t *MemoryTable) Headers(ctx context.Context) ([]string, error) {
	return t.ReadRow(ctx, 1)
}

func (t *MemoryTable) FindRow(_ context.Context, keyColumn int, key string) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	key = strings.TrimSpace(key)
	for i := 1; i < len(t.rows); i++ {
		row := t.rows[i]
		if keyColumn-1 < len(row) && strings.TrimSpace(row[keyColumn-1]) == key {
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

func (t *MemoryTable) ReadRow(_ context.Context, row int) ([]string, error) {
	if row < 1 {
		return nil, fmt.Errorf("invalid row %d", row)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	if row > len(t.rows) {
		return nil, nil
	}
	return append([]string(nil), t.rows[row-1]...), nil
}

func (t *MemoryTable) WriteCell(_ context.Context, row, column int, value string) error {
	if row < 1 || column < 1 {
		return fmt.Errorf("invalid cell %d:%d", row, column)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.rows) < row {
		t.rows = append(t.rows, nil)
	}
	r := t.rows[row-1]
	for len(r) < column {
		r = append(r, "")
	}
	r[column-1] = value
	t.rows[row-1] = r
	return nil
}

func (t *MemoryTable) AppendRow(_ context.Context, values []string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = append(t.rows, append([]string(nil), values...))
	return len(t.rows), nil
}

func (t *MemoryTable) ListRows(_ context.Context) ([][]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.rows) < 2 {
		return nil, nil
	}
	out := make([][]string, 0, len(t.rows)-1)
	for _, r := range t.rows[1:] {
		out = append(out, append([]string(nil), r...))
	}
	return out, nil
}

// Cell returns the raw value at row/column, or "" when out of range.
func (t *MemoryTable) Cell(row, column int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if row < 1 || row > len(t.rows) || column < 1 || column > len(t.rows[row-1]) {
		return ""
	}
	return t.rows[row-1][column-1]
}

// Len reports the number of rows including the header.
func (t *MemoryTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
