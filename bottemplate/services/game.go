package services

import (
	"github.com/PieceOfFire/cats/internal/domain/journal"
)

// Game wires one mode's tables to the shared engines.
type Game struct {
	Players     *Players
	Catalog     *Catalog
	Leaderboard *Leaderboard

	journal *journal.Journal
	rng     *LockedRand
}

func NewGame(players *Players, catalog *Catalog, leaderboard *Leaderboard, j *journal.Journal, rng *LockedRand) *Game {
	if rng == nil {
		rng = NewRandom()
	}
	return &Game{
		Players:     players,
		Catalog:     catalog,
		Leaderboard: leaderboard,
		journal:     j,
		rng:         rng,
	}
}

func (g *Game) Mode() Mode { return g.Players.Mode() }
