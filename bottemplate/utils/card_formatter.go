package utils

import (
	"fmt"
	"strings"

	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
)

// FormatCardName shows the description when the catalog has one.
func FormatCardName(card rewards.Card) string {
	if d := strings.TrimSpace(card.Description); d != "" {
		return d
	}
	return "Cat #" + card.ID
}

// FormatCardEntry is one collection line: rarity marker, linked name and id.
func FormatCardEntry(card rewards.Card) string {
	name := FormatCardName(card)
	if card.ImageURL != "" {
		name = fmt.Sprintf("[%s](%s)", name, card.ImageURL)
	}
	return fmt.Sprintf("%s %s `#%s`", RarityEmoji(card.Rarity), name, card.ID)
}

func RarityEmoji(r rewards.Rarity) string {
	if e, ok := config.RarityEmojis[string(r)]; ok {
		return e
	}
	return "❔"
}

func RarityColor(r rewards.Rarity) int {
	if c, ok := config.RarityColors[string(r)]; ok {
		return c
	}
	return config.EmbedDefaultColor
}
