package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/economy/userlock"
	"github.com/PieceOfFire/cats/internal/domain/journal"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

var errWrite = errors.New("quota exceeded")

// flakyTable fails every write to one column.
type flakyTable struct {
	sheets.Table
	failColumn int
}

func (f *flakyTable) WriteCell(ctx context.Context, row, column int, value string) error {
	if column == f.failColumn {
		return errWrite
	}
	return f.Table.WriteCell(ctx, row, column, value)
}

type fixture struct {
	mode    Mode
	users   *sheets.MemoryTable
	journal *sheets.MemoryTable
	game    *Game
}

// newFixture builds a game over memory tables. cards rows are ID, URL, DESC, RARITY.
func newFixture(t *testing.T, mode Mode, cards ...[]string) *fixture {
	t.Helper()
	return newFlakyFixture(t, mode, "", cards...)
}

// newFlakyFixture fails every users table write to failColumn.
func newFlakyFixture(t *testing.T, mode Mode, failColumn string, cards ...[]string) *fixture {
	t.Helper()
	ctx := context.Background()

	users := sheets.NewMemoryTable(mode.Users.Table, mode.Users.Headers())
	var usersTable sheets.Table = users
	if failColumn != "" {
		idx := 0
		for i, h := range mode.Users.Headers() {
			if h == failColumn {
				idx = i + 1
			}
		}
		if idx == 0 {
			t.Fatalf("column %s not in schema", failColumn)
		}
		usersTable = &flakyTable{Table: users, failColumn: idx}
	}

	catalogRows := append([][]string{mode.Catalog.Headers()}, cards...)
	catalog := sheets.NewMemoryTable(mode.Catalog.Table, catalogRows...)
	journalTable := sheets.NewMemoryTable(journal.Schema.Table, journal.Schema.Headers())

	usersStore := sheets.NewStore(usersTable, mode.Users)
	if err := usersStore.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	players := NewPlayers(usersStore, mode, userlock.NewManager())
	game := NewGame(
		players,
		NewCatalog(sheets.NewStore(catalog, mode.Catalog), mode.Name, time.Minute, time.Second),
		NewLeaderboard(usersStore, mode.Name, time.Minute),
		journal.New(sheets.NewStore(journalTable, journal.Schema)),
		NewLockedRand(rand.NewPCG(1, 2)),
	)
	return &fixture{mode: mode, users: users, journal: journalTable, game: game}
}

// seed appends a user row with overrides.
func (f *fixture) seed(t *testing.T, userID string, values sheets.Record) {
	t.Helper()
	if _, err := f.game.Players.Store().Append(context.Background(), userID, values); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}

func (f *fixture) player(t *testing.T, userID string) *Player {
	t.Helper()
	p, err := f.game.Players.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", userID, err)
	}
	return p
}

// journalStatuses lists the STATUS column of every journal row.
func (f *fixture) journalStatuses(t *testing.T) []string {
	t.Helper()
	rows, err := sheets.NewStore(f.journal, journal.Schema).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.String("STATUS"))
	}
	return out
}
