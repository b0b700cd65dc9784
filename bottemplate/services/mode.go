package services

import (
	"github.com/PieceOfFire/cats/internal/domain/frames"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

// User table columns.
const (
	ColUserID     = "USER_ID"
	ColScore      = "SUM"
	ColCards      = "CATS_ID"
	ColSpins      = "SPINS"
	ColLastDaily  = "LAST_DAILY"
	ColStreak     = "STREAK"
	ColDailyBonus = "DAILY_BONUS"
	ColSubUsed    = "SUB_GG_USED"

	ColNick      = "NICK"
	ColWCards    = "W_CATS_ID"
	ColWSpins    = "WINTER_SPINS"
	ColCurrency  = "WINTER_CURRENCY"
	ColLuck      = "LUCK_HIDDEN"
	ColAdvent    = "ADVENT_STATE"
	ColFrame     = "FRAME"
	ColFrameSet  = "FRAME_SET"
	ColFrameFile = "FRAME_FILE_ID"
)

const (
	MaxSpins   = 999
	StartSpins = 3
	// CashbackPerSpin is winter currency granted with every draw.
	CashbackPerSpin = 10
	MaxNickLength   = 32
)

// Mode binds the shared engines to one pair of tables and its tuning.
type Mode struct {
	Name    string
	Users   sheets.Schema
	Catalog sheets.Schema

	Cards string
	Spins string

	Table    rewards.Table
	Cashback int
	// Lazy modes create the user row on first action instead of requiring /start.
	Lazy bool
}

func (m Mode) HasLuck() bool { return m.Table.Luck != nil }

var catalogColumns = []sheets.Column{
	{Name: "ID"},
	{Name: "URL"},
	{Name: "DESC"},
	{Name: "RARITY", Default: string(rewards.Common)},
}

// BaseMode is the year-round game. Promo flag columns are appended to the schema.
func BaseMode(promo []PromoCode) Mode {
	cols := []sheets.Column{
		{Name: ColUserID},
		{Name: ColCards},
		{Name: ColSpins, Default: "3"},
		{Name: ColLastDaily},
		{Name: ColScore, Default: "0"},
		{Name: ColSubUsed},
		{Name: ColStreak, Default: "0"},
		{Name: ColDailyBonus},
	}
	for _, p := range promo {
		cols = append(cols, sheets.Column{Name: p.Column})
	}
	return Mode{
		Name:    "base",
		Users:   sheets.Schema{Table: "users", Key: ColUserID, Columns: cols},
		Catalog: sheets.Schema{Table: "cats", Key: "ID", Columns: catalogColumns},
		Cards:   ColCards,
		Spins:   ColSpins,
		Table:   rewards.Table{Weights: rewards.BaseWeights, Points: rewards.BasePoints},
	}
}

func WinterMode() Mode {
	luck := rewards.DefaultLuck
	return Mode{
		Name: "winter",
		Users: sheets.Schema{Table: "winter2026", Key: ColUserID, Columns: []sheets.Column{
			{Name: ColUserID},
			{Name: ColNick},
			{Name: ColWCards},
			{Name: ColWSpins, Default: "3"},
			{Name: ColScore, Default: "0"},
			{Name: ColCurrency, Default: "0"},
			{Name: ColLuck, Default: "0"},
			{Name: ColAdvent},
			{Name: ColFrame, Default: frames.EmptySlots},
			{Name: ColFrameSet, Default: "10"},
			{Name: ColFrameFile},
		}},
		Catalog:  sheets.Schema{Table: "winter_cats", Key: "ID", Columns: catalogColumns},
		Cards:    ColWCards,
		Spins:    ColWSpins,
		Table:    rewards.Table{Weights: rewards.WinterWeights, Points: rewards.WinterPoints, Luck: &luck},
		Cashback: CashbackPerSpin,
		Lazy:     true,
	}
}

// PromoCode grants Bonus spins once per user, tracked in the Column flag.
type PromoCode struct {
	Code        string
	Column      string
	Bonus       int
	Description string
}
