package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SheetRow stores one spreadsheet-style row. Row 1 of every sheet is its header row.
type SheetRow struct {
	bun.BaseModel `bun:"table:sheet_rows,alias:sr"`

	Sheet     string    `bun:"sheet,pk"`
	RowIndex  int       `bun:"row_index,pk"`
	Cells     []string  `bun:"cells,type:jsonb,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
