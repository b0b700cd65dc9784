package calendar

import (
	"strings"
	"time"
)

// StreakTiers maps a streak length to a spin reward.
type StreakTiers struct {
	Small      int
	Medium     int
	Large      int
	MediumFrom int
	LargeFrom  int
	BonusEvery int
}

var DefaultStreakTiers = StreakTiers{
	Small:      1,
	Medium:     2,
	Large:      3,
	MediumFrom: 4,
	LargeFrom:  7,
	BonusEvery: 5,
}

// Reward returns the flat reward for a streak value.
func (s StreakTiers) Reward(streak int) int {
	switch {
	case streak >= s.LargeFrom:
		return s.Large
	case streak >= s.MediumFrom:
		return s.Medium
	}
	return s.Small
}

// IsBonus reports whether a streak value triggers the bonus game.
func (s StreakTiers) IsBonus(streak int) bool {
	return s.BonusEvery > 0 && streak > 0 && streak%s.BonusEvery == 0
}

// DailyClaim is the next daily state and what it grants.
type DailyClaim struct {
	Date   string
	Streak int
	Reward int
	Bonus  bool
}

// ClaimDaily advances the streak for a claim made on today.
// A claim on the same day is rejected; a gap restarts the streak at 1.
func ClaimDaily(lastClaim string, streak int, today time.Time, tiers StreakTiers) (DailyClaim, error) {
	todayISO := today.Format(DateLayout)
	last := strings.TrimSpace(lastClaim)
	if len(last) > len(DateLayout) {
		last = last[:len(DateLayout)]
	}
	if last == todayISO {
		return DailyClaim{}, ErrAlreadyClaimed
	}

	next := 1
	if last == today.AddDate(0, 0, -1).Format(DateLayout) {
		next = max(streak, 0) + 1
	}

	c := DailyClaim{Date: todayISO, Streak: next}
	if tiers.IsBonus(next) {
		c.Bonus = true
		return c, nil
	}
	c.Reward = tiers.Reward(next)
	return c, nil
}
