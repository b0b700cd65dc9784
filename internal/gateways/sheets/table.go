package sheets

import (
	"context"
	"errors"
)

// ErrRowNotFound is returned by FindRow and Store.Find when no row carries the key.
var ErrRowNotFound = errors.New("row not found")

// Table is a row-oriented view of one sheet. Rows and columns are 1-based and
// row 1 holds the headers. Implementations give no atomicity across calls.
type Table interface {
	Name() string
	Headers(ctx context.Context) ([]string, error)
	FindRow(ctx context.Context, keyColumn int, key string) (int, error)
	ReadRow(ctx context.Context, row int) ([]string, error)
	WriteCell(ctx context.Context, row, column int, value string) error
	AppendRow(ctx context.Context, values []string) (int, error)
	ListRows(ctx context.Context) ([][]string, error)
}

// Workbook opens tables by name, creating missing ones with the given header row.
type Workbook interface {
	Table(ctx context.Context, name string, headers []string) (Table, error)
}
