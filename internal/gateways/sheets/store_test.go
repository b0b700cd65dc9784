package sheets_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/PieceOfFire/cats/internal/gateways/sheets"
	"github.com/PieceOfFire/cats/internal/gateways/sheets/mock"
	"go.uber.org/mock/gomock"
)

var winterSchema = sheets.Schema{
	Table: "winter2026",
	Key:   "USER_ID",
	Columns: []sheets.Column{
		{Name: "USER_ID"},
		{Name: "W_CATS_ID"},
		{Name: "WINTER_SPINS", Default: "3"},
		{Name: "SUM", Default: "0"},
		{Name: "FRAME_SET", Default: "10"},
	},
}

func TestStore_Migrate(t *testing.T) {
	ctx := context.Background()
	table := sheets.NewMemoryTable("winter2026", []string{"USER_ID", "sum"})
	store := sheets.NewStore(table, winterSchema)

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	got, _ := table.Headers(ctx)
	want := []string{"USER_ID", "sum", "W_CATS_ID", "WINTER_SPINS", "FRAME_SET"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headers got = %v, want %v", got, want)
	}
}

func TestStore_AppendAndFind(t *testing.T) {
	ctx := context.Background()
	table := sheets.NewMemoryTable("winter2026", winterSchema.Headers())
	store := sheets.NewStore(table, winterSchema)

	if _, err := store.Find(ctx, "42"); !errors.Is(err, sheets.ErrRowNotFound) {
		t.Fatalf("Find() on empty table error = %v, want ErrRowNotFound", err)
	}

	row, err := store.Append(ctx, "42", sheets.Record{"WINTER_SPINS": "5"})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if row.Index != 2 {
		t.Errorf("Append() row = %d, want 2", row.Index)
	}

	found, err := store.Find(ctx, " 42 ")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found.Index != 2 {
		t.Errorf("Find() row = %d, want 2", found.Index)
	}
	if got := found.Record.Int("winter_spins"); got != 5 {
		t.Errorf("WINTER_SPINS got = %d, want 5", got)
	}
	if got := found.Record.Int("FRAME_SET"); got != 10 {
		t.Errorf("FRAME_SET default got = %d, want 10", got)
	}

	if err := store.Write(ctx, found.Index, "SUM", "17"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := table.Cell(2, 4); got != "17" {
		t.Errorf("SUM cell got = %q, want 17", got)
	}
}

func TestStore_WriteAddsUnknownColumn(t *testing.T) {
	ctx := context.Background()
	table := sheets.NewMemoryTable("users", []string{"USER_ID"}, []string{"7"})
	store := sheets.NewStore(table, sheets.Schema{Key: "USER_ID", Columns: []sheets.Column{{Name: "USER_ID"}}})

	if err := store.Write(ctx, 2, "PROM_WM", "1"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := table.Cell(1, 2); got != "PROM_WM" {
		t.Errorf("header got = %q, want PROM_WM", got)
	}
	if got := table.Cell(2, 2); got != "1" {
		t.Errorf("cell got = %q, want 1", got)
	}
}

func TestStore_FindUsesCachedRowIndex(t *testing.T) {
	ctx := context.Background()
	table := mock.NewMockTable(gomock.NewController(t))
	store := sheets.NewStore(table, sheets.Schema{Key: "USER_ID"})

	table.EXPECT().Headers(gomock.Any()).Return(mock.UserHeaders, nil).Times(1)
	table.EXPECT().FindRow(gomock.Any(), 1, "42").Return(3, nil).Times(1)
	table.EXPECT().ReadRow(gomock.Any(), 3).Return(mock.UserRow, nil).Times(2)

	for i := 0; i < 2; i++ {
		row, err := store.Find(ctx, "42")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if row.Index != 3 || row.Record.String("W_CATS_ID") != "1 | 3" {
			t.Errorf("Find() got = %+v", row)
		}
	}
}

func TestStore_FindRevalidatesMovedRow(t *testing.T) {
	ctx := context.Background()
	table := mock.NewMockTable(gomock.NewController(t))
	store := sheets.NewStore(table, sheets.Schema{Key: "USER_ID"})

	table.EXPECT().Headers(gomock.Any()).Return(mock.UserHeaders, nil).Times(1)
	gomock.InOrder(
		table.EXPECT().FindRow(gomock.Any(), 1, "42").Return(3, nil),
		table.EXPECT().ReadRow(gomock.Any(), 3).Return(mock.UserRow, nil),
		table.EXPECT().ReadRow(gomock.Any(), 3).Return([]string{"99"}, nil),
		table.EXPECT().FindRow(gomock.Any(), 1, "42").Return(5, nil),
		table.EXPECT().ReadRow(gomock.Any(), 5).Return(mock.UserRow, nil),
	)

	if _, err := store.Find(ctx, "42"); err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	row, err := store.Find(ctx, "42")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if row.Index != 5 {
		t.Errorf("Find() row got = %d, want 5", row.Index)
	}
}

func TestStore_RowsSkipsBlankKeys(t *testing.T) {
	ctx := context.Background()
	table := sheets.NewMemoryTable("users",
		[]string{"USER_ID", "SUM"},
		[]string{"1", "10"},
		[]string{"", "99"},
		[]string{"2"},
	)
	store := sheets.NewStore(table, sheets.Schema{Key: "USER_ID"})

	rows, err := store.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Rows() len = %d, want 2", len(rows))
	}
	if rows[1].Int("SUM") != 0 {
		t.Errorf("short row SUM got = %d, want 0", rows[1].Int("SUM"))
	}
}

func TestRecord_Int(t *testing.T) {
	rec := sheets.Record{"A": " 7 ", "B": "3.0", "C": "abc", "D": ""}
	tests := map[string]int{"A": 7, "b": 3, "C": 0, "D": 0, "missing": 0}
	for name, want := range tests {
		if got := rec.Int(name); got != want {
			t.Errorf("Record.Int(%q) got = %v, want %v", name, got, want)
		}
	}
}
