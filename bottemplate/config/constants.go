package config

import "time"

// UI and Display Constants
const (
	// Pagination
	CardsPerPage       = 10
	LeaderboardTop     = 10
	LeaderboardPerPage = 15
	AutocompleteLimit  = 25

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	// Discord UI Colors
	BackgroundColor   = 0x2B2D31
	EmbedDefaultColor = 0x2B2D31
	WinterColor       = 0x9AD9F5
)

// RarityColors tints the spin result embed.
var RarityColors = map[string]int{
	"COM":  0x808080,
	"UCOM": 0x00FF00,
	"RARE": 0x0000FF,
	"EPIC": 0x800080,
	"LEG":  0xFFD700,
}

// RarityEmojis prefixes card names by tier.
var RarityEmojis = map[string]string{
	"COM":  "⚪",
	"UCOM": "🟢",
	"RARE": "🔵",
	"EPIC": "🟣",
	"LEG":  "🟡",
}

// Timeouts
const (
	DefaultQueryTimeout     = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	FrameRenderTimeout      = 20 * time.Second
	NetworkDialTimeout      = 5 * time.Second
)

// Cache settings
const (
	LeaderboardTTL  = 60 * time.Second
	CatalogTTL      = 5 * time.Minute
	CatalogRetry    = 10 * time.Second
	RowIndexCache   = 10000
	CleanupInterval = 5 * time.Minute
)

// Rate limiting
const (
	UserRatePerSecond = 1.0
	UserRateBurst     = 3
)
