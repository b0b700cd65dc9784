package bottemplate

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/database"
	"github.com/PieceOfFire/cats/bottemplate/logger"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/internal/domain/journal"
	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	DB        *database.DB

	Base    *services.Game
	Winter  *services.Game
	Daily   *services.Daily
	Advent  *services.Advent
	Shop    *services.Shop
	Frames  *services.Frames
	Rewards *services.Rewards
	Journal *journal.Journal

	SpacesService *services.SpacesService
}

// IsAdmin reports whether userID may run maintenance commands.
func (b *Bot) IsAdmin(userID snowflake.ID) bool {
	return slices.Contains(b.Cfg.Bot.Admins, userID)
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Cats bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithListeningActivity("/spin"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		logger.LogError("Failed to set presence", err)
	}
}
