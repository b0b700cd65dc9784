package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PieceOfFire/cats/internal/domain/logger"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// RAW keeps every cell as text: user ids keep all 19 digits and dates stay ISO strings.
const valueInputOption = "RAW"

// GoogleWorkbook serves tables from one Google spreadsheet.
type GoogleWorkbook struct {
	srv           *gsheets.Service
	spreadsheetID string

	mu     sync.Mutex
	titles map[string]bool
}

func NewGoogleWorkbook(ctx context.Context, credentialsFile, spreadsheetID string) (*GoogleWorkbook, error) {
	srv, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleWorkbook{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (w *GoogleWorkbook) Table(ctx context.Context, name string, headers []string) (Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.titles == nil {
		if err := w.loadTitles(ctx); err != nil {
			return nil, err
		}
	}

	t := &googleTable{srv: w.srv, spreadsheetID: w.spreadsheetID, name: name}
	if w.titles[name] {
		return t, nil
	}

	op := logger.NewOpLogger("google", "add_sheet", name)
	_, err := w.srv.Spreadsheets.BatchUpdate(w.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title:          name,
					GridProperties: &gsheets.GridProperties{RowCount: 1000, ColumnCount: 40},
				},
			},
		}},
	}).Context(ctx).Do()
	op.Log(err)
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
	}
	w.titles[name] = true

	if len(headers) > 0 {
		if _, err := t.AppendRow(ctx, headers); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (w *GoogleWorkbook) loadTitles(ctx context.Context) error {
	op := logger.NewOpLogger("google", "list_sheets", "")
	ss, err := w.srv.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	op.Log(err)
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	w.titles = make(map[string]bool, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			w.titles[s.Properties.Title] = true
		}
	}
	return nil
}

type googleTable struct {
	srv           *gsheets.Service
	spreadsheetID string
	name          string
}

func (t *googleTable) Name() string { return t.name }

func (t *googleTable) get(ctx context.Context, rng string) ([][]any, error) {
	vr, err := t.srv.Spreadsheets.Values.Get(t.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return vr.Values, nil
}

func (t *googleTable) Headers(ctx context.Context) ([]string, error) {
	return t.ReadRow(ctx, 1)
}

func (t *googleTable) FindRow(ctx context.Context, keyColumn int, key string) (int, error) {
	col := ColumnLetter(keyColumn)
	op := logger.NewOpLogger("google", "find_row", t.name, col, key)
	values, err := t.get(ctx, a1(t.name, col+":"+col))
	op.Log(err)
	if err != nil {
		return 0, fmt.Errorf("failed to read key column of %s: %w", t.name, err)
	}

	key = strings.TrimSpace(key)
	for i := 1; i < len(values); i++ {
		if len(values[i]) > 0 && strings.TrimSpace(fmt.Sprint(values[i][0])) == key {
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

func (t *googleTable) ReadRow(ctx context.Context, row int) ([]string, error) {
	op := logger.NewOpLogger("google", "read_row", t.name, row)
	values, err := t.get(ctx, a1(t.name, fmt.Sprintf("%d:%d", row, row)))
	op.Log(err)
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d of %s: %w", row, t.name, err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return toStrings(values[0]), nil
}

func (t *googleTable) WriteCell(ctx context.Context, row, column int, value string) error {
	cell := fmt.Sprintf("%s%d", ColumnLetter(column), row)
	op := logger.NewOpLogger("google", "write_cell", t.name, cell, value)
	_, err := t.srv.Spreadsheets.Values.Update(t.spreadsheetID, a1(t.name, cell), &gsheets.ValueRange{
		Values: [][]any{{value}},
	}).ValueInputOption(valueInputOption).Context(ctx).Do()
	op.Log(err)
	if err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", t.name, cell, err)
	}
	return nil
}

func (t *googleTable) AppendRow(ctx context.Context, values []string) (int, error) {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}

	op := logger.NewOpLogger("google", "append_row", t.name, len(values))
	resp, err := t.srv.Spreadsheets.Values.Append(t.spreadsheetID, a1(t.name, "A1"), &gsheets.ValueRange{
		Values: [][]any{row},
	}).ValueInputOption(valueInputOption).InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	op.Log(err)
	if err != nil {
		return 0, fmt.Errorf("failed to append to %s: %w", t.name, err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("append to %s returned no updated range", t.name)
	}
	return rowFromRange(resp.Updates.UpdatedRange)
}

func (t *googleTable) ListRows(ctx context.Context) ([][]string, error) {
	op := logger.NewOpLogger("google", "list_rows", t.name)
	values, err := t.get(ctx, a1(t.name, ""))
	op.Log(err)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	if len(values) < 2 {
		return nil, nil
	}
	out := make([][]string, 0, len(values)-1)
	for _, v := range values[1:] {
		out = append(out, toStrings(v))
	}
	return out, nil
}

func toStrings(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}
