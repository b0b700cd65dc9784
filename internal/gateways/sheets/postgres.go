package sheets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/database/models"
	"github.com/PieceOfFire/cats/internal/domain/logger"
	"github.com/uptrace/bun"
)

// PostgresWorkbook keeps sheets as rows of the sheet_rows table.
type PostgresWorkbook struct {
	db *bun.DB
}

func NewPostgresWorkbook(db *bun.DB) *PostgresWorkbook {
	return &PostgresWorkbook{db: db}
}

func (w *PostgresWorkbook) Table(ctx context.Context, name string, headers []string) (Table, error) {
	t := &postgresTable{db: w.db, name: name}
	if len(headers) == 0 {
		return t, nil
	}

	op := logger.NewOpLogger("postgres", "create_sheet", name)
	_, err := w.db.NewInsert().
		Model(&models.SheetRow{Sheet: name, RowIndex: 1, Cells: headers, UpdatedAt: time.Now()}).
		On("CONFLICT (sheet, row_index) DO NOTHING").
		Exec(ctx)
	op.Log(err)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return t, nil
}

type postgresTable struct {
	db   *bun.DB
	name string
}

func (t *postgresTable) Name() string { return t.name }

func (t *postgresTable) Headers(ctx context.Context) ([]string, error) {
	return t.ReadRow(ctx, 1)
}

func (t *postgresTable) FindRow(ctx context.Context, keyColumn int, key string) (int, error) {
	var idx int
	op := logger.NewOpLogger("postgres", "find_row", t.name, keyColumn, key)
	err := t.db.NewSelect().
		Model((*models.SheetRow)(nil)).
		Column("row_index").
		Where("sheet = ?", t.name).
		Where("row_index > 1").
		Where("btrim(cells ->> ?) = ?", keyColumn-1, strings.TrimSpace(key)).
		Order("row_index ASC").
		Limit(1).
		Scan(ctx, &idx)
	if errors.Is(err, sql.ErrNoRows) {
		op.Log(nil)
		return 0, ErrRowNotFound
	}
	op.Log(err)
	if err != nil {
		return 0, fmt.Errorf("failed to find row in %s: %w", t.name, err)
	}
	return idx, nil
}

func (t *postgresTable) ReadRow(ctx context.Context, row int) ([]string, error) {
	r := new(models.SheetRow)
	op := logger.NewOpLogger("postgres", "read_row", t.name, row)
	err := t.db.NewSelect().
		Model(r).
		Where("sheet = ?", t.name).
		Where("row_index = ?", row).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		op.Log(nil)
		return nil, nil
	}
	op.Log(err)
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d of %s: %w", row, t.name, err)
	}
	return r.Cells, nil
}

func (t *postgresTable) WriteCell(ctx context.Context, row, column int, value string) error {
	op := logger.NewOpLogger("postgres", "write_cell", t.name, row, column, value)
	err := t.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		r := &models.SheetRow{Sheet: t.name, RowIndex: row}
		err := tx.NewSelect().
			Model(r).
			Where("sheet = ?", t.name).
			Where("row_index = ?", row).
			For("UPDATE").
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		for len(r.Cells) < column {
			r.Cells = append(r.Cells, "")
		}
		r.Cells[column-1] = value
		r.UpdatedAt = time.Now()

		_, err = tx.NewInsert().
			Model(r).
			On("CONFLICT (sheet, row_index) DO UPDATE").
			Set("cells = EXCLUDED.cells").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	})
	op.Log(err)
	if err != nil {
		return fmt.Errorf("failed to write %s %d:%d: %w", t.name, row, column, err)
	}
	return nil
}

func (t *postgresTable) AppendRow(ctx context.Context, values []string) (int, error) {
	var idx int
	op := logger.NewOpLogger("postgres", "append_row", t.name, len(values))
	err := t.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", t.name); err != nil {
			return err
		}
		err := tx.NewSelect().
			Model((*models.SheetRow)(nil)).
			ColumnExpr("COALESCE(MAX(row_index), 0) + 1").
			Where("sheet = ?", t.name).
			Scan(ctx, &idx)
		if err != nil {
			return err
		}

		_, err = tx.NewInsert().
			Model(&models.SheetRow{Sheet: t.name, RowIndex: idx, Cells: values, UpdatedAt: time.Now()}).
			Exec(ctx)
		return err
	})
	op.Log(err)
	if err != nil {
		return 0, fmt.Errorf("failed to append to %s: %w", t.name, err)
	}
	return idx, nil
}

func (t *postgresTable) ListRows(ctx context.Context) ([][]string, error) {
	var rows []models.SheetRow
	op := logger.NewOpLogger("postgres", "list_rows", t.name)
	err := t.db.NewSelect().
		Model(&rows).
		Where("sheet = ?", t.name).
		Where("row_index > 1").
		Order("row_index ASC").
		Scan(ctx)
	op.Log(err)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Cells)
	}
	return out, nil
}
