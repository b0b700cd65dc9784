package services

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/metrics"
	"github.com/PieceOfFire/cats/internal/domain/cache"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

type LeaderboardEntry struct {
	UserID string
	Nick   string
	Score  int
}

// Leaderboard is the sorted score projection of a users table. A failed
// refresh shows an empty board for one window.
type Leaderboard struct {
	cache *cache.TTL[[]LeaderboardEntry]
}

func NewLeaderboard(store *sheets.Store, mode string, ttl time.Duration, opts ...cache.Option) *Leaderboard {
	load := func(ctx context.Context) ([]LeaderboardEntry, error) {
		rows, err := store.Rows(ctx)
		if err != nil {
			return nil, err
		}
		return rankEntries(rows), nil
	}

	opts = append([]cache.Option{cache.OnRefresh(metrics.ObserveCacheRefresh)}, opts...)
	return &Leaderboard{cache: cache.NewTTL("leaderboard:"+mode, ttl, cache.KeepEmpty, load, opts...)}
}

func rankEntries(rows []sheets.Record) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, LeaderboardEntry{
			UserID: r.String(ColUserID),
			Nick:   r.String(ColNick),
			Score:  r.Int(ColScore),
		})
	}
	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return entries
}

// Entries returns the full ranking. It never fails; errors degrade to empty.
func (l *Leaderboard) Entries(ctx context.Context) []LeaderboardEntry {
	entries, _ := l.cache.Get(ctx)
	return entries
}

// Top returns the first n entries.
func (l *Leaderboard) Top(ctx context.Context, n int) []LeaderboardEntry {
	entries := l.Entries(ctx)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Position returns the 1-based rank of userID, or 0 when not ranked.
func (l *Leaderboard) Position(ctx context.Context, userID string) (int, LeaderboardEntry) {
	for i, e := range l.Entries(ctx) {
		if e.UserID == userID {
			return i + 1, e
		}
	}
	return 0, LeaderboardEntry{}
}

func (l *Leaderboard) Invalidate() { l.cache.Invalidate() }
