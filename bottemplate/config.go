package bottemplate

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := defaultConfig()
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	if err = env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo},
		Store: StoreConfig{
			Backend: "google",
		},
		Game: GameConfig{
			TimeZone:              "Asia/Novosibirsk",
			AdventDays:            20,
			LeaderboardTTLSeconds: 60,
			CatalogTTLSeconds:     300,
			CatalogRetrySeconds:   10,
			BonusPrizes:           []int{2, 3, 5},
			SubscriptionBonus:     3,
			ActionsPerSecond:      2,
			ActionBurst:           4,
		},
		Metrics: MetricsConfig{Addr: ":9090"},
		Spaces: SpacesConfig{
			FramePrefix:      "frames/users",
			BackgroundPrefix: "frames/backgrounds",
		},
	}
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	Bot     BotConfig     `toml:"bot"`
	DB      DBConfig      `toml:"db"`
	Store   StoreConfig   `toml:"store"`
	Game    GameConfig    `toml:"game"`
	Promo   []PromoCode   `toml:"promo"`
	Metrics MetricsConfig `toml:"metrics"`
	Spaces  SpacesConfig  `toml:"spaces"`
}

// SpacesConfig points at the S3 compatible bucket holding frame images.
// Backgrounds are read from <BackgroundPrefix>/<FRAME_SET>.png.
type SpacesConfig struct {
	Key              string `toml:"key" env:"SPACES_KEY"`
	Secret           string `toml:"secret" env:"SPACES_SECRET"`
	Region           string `toml:"region"`
	Bucket           string `toml:"bucket"`
	FramePrefix      string `toml:"frame_prefix"`
	BackgroundPrefix string `toml:"background_prefix"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Admins    []snowflake.ID `toml:"admins"`
	Token     string         `toml:"token" env:"BOT_TOKEN"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host" env:"DB_HOST"`
	Port     int    `toml:"port" env:"DB_PORT"`
	User     string `toml:"user" env:"DB_USER"`
	Password string `toml:"password" env:"DB_PASSWORD"`
	Database string `toml:"database" env:"DB_NAME"`
	PoolSize int    `toml:"pool_size"`
}

// StoreConfig selects the row store backend: google, postgres or memory.
type StoreConfig struct {
	Backend         string `toml:"backend" env:"STORE_BACKEND"`
	SpreadsheetKey  string `toml:"spreadsheet_key" env:"SPREADSHEET_KEY"`
	CredentialsFile string `toml:"credentials_file" env:"GOOGLE_CREDENTIALS_FILE"`
}

type GameConfig struct {
	TimeZone string `toml:"time_zone" env:"GAME_TIME_ZONE"`

	WinterStart string `toml:"winter_start" env:"WINTER_EVENT_START"`
	WinterEnd   string `toml:"winter_end" env:"WINTER_EVENT_END"`
	AdventDays  int    `toml:"advent_days"`

	LeaderboardTTLSeconds int `toml:"leaderboard_ttl_seconds"`
	CatalogTTLSeconds     int `toml:"catalog_ttl_seconds"`
	CatalogRetrySeconds   int `toml:"catalog_retry_seconds"`

	BonusPrizes       []int        `toml:"bonus_prizes"`
	BonusGuild        snowflake.ID `toml:"bonus_guild"`
	SubscriptionBonus int          `toml:"subscription_bonus"`

	ActionsPerSecond float64 `toml:"actions_per_second"`
	ActionBurst      int     `toml:"action_burst"`
}

func (g GameConfig) Location() *time.Location {
	loc, err := time.LoadLocation(g.TimeZone)
	if err != nil {
		slog.Warn("Unknown time zone, using UTC", slog.String("type", "sys"), slog.String("zone", g.TimeZone))
		return time.UTC
	}
	return loc
}

func (g GameConfig) LeaderboardTTL() time.Duration {
	return time.Duration(g.LeaderboardTTLSeconds) * time.Second
}

func (g GameConfig) CatalogTTL() time.Duration {
	return time.Duration(g.CatalogTTLSeconds) * time.Second
}

func (g GameConfig) CatalogRetry() time.Duration {
	return time.Duration(g.CatalogRetrySeconds) * time.Second
}

// PromoCode grants Bonus spins once per user, tracked by the Column flag.
type PromoCode struct {
	Code        string `toml:"code"`
	Column      string `toml:"column"`
	Bonus       int    `toml:"bonus"`
	Description string `toml:"description"`
}

type MetricsConfig struct {
	Addr string `toml:"addr" env:"METRICS_ADDR"`
}
