package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/commands"
	"github.com/PieceOfFire/cats/bottemplate/commands/admin"
	"github.com/PieceOfFire/cats/bottemplate/commands/game"
	"github.com/PieceOfFire/cats/bottemplate/commands/system"
	"github.com/PieceOfFire/cats/bottemplate/commands/winter"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/economy/userlock"
	"github.com/PieceOfFire/cats/bottemplate/handlers"
	"github.com/PieceOfFire/cats/bottemplate/logger"
	"github.com/PieceOfFire/cats/bottemplate/metrics"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/internal/domain/calendar"
	"github.com/PieceOfFire/cats/internal/domain/journal"
	"github.com/PieceOfFire/cats/internal/domain/shop"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
)

var (
	version = "dev"
	commit  = "unknown"
)

func fatal(msg, component string, err error) {
	slog.Error(msg,
		slog.String("type", "sys"),
		slog.Any("error", err),
		slog.String("error_details", fmt.Sprintf("%+v", err)),
		slog.String("component", component),
		slog.String("status", "failed"),
	)
	os.Exit(-1)
}

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := bottemplate.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))

	slog.Info("Starting Cats bot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("store", cfg.Store.Backend))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	wb, db, err := bottemplate.OpenWorkbook(ctx, *cfg)
	if err != nil {
		fatal("Failed to open row store", "store", err)
	}
	if db != nil {
		defer db.Close()
	}

	base := services.BaseMode(cfg.PromoCodes())
	winterMode := services.WinterMode()

	stores := make(map[string]*sheets.Store)
	for _, schema := range []sheets.Schema{
		base.Users, base.Catalog,
		winterMode.Users, winterMode.Catalog,
		services.AdventSchema, services.ShopSchema, journal.Schema,
	} {
		store, err := bottemplate.OpenStore(ctx, wb, schema)
		if err != nil {
			fatal("Failed to prepare table", "store", err)
		}
		stores[schema.Table] = store
	}

	locks := userlock.NewManager()
	locks.OnSlowHold(5*time.Second, func(userID string, held time.Duration) {
		slog.Warn("User lock held for too long",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.Duration("held", held))
	})

	j := journal.New(stores[journal.Schema.Table])
	newGame := func(m services.Mode) *services.Game {
		return services.NewGame(
			services.NewPlayers(stores[m.Users.Table], m, locks),
			services.NewCatalog(stores[m.Catalog.Table], m.Name, cfg.Game.CatalogTTL(), cfg.Game.CatalogRetry()),
			services.NewLeaderboard(stores[m.Users.Table], m.Name, cfg.Game.LeaderboardTTL()),
			j, nil)
	}

	b := bottemplate.New(*cfg, version, commit)
	b.DB = db
	b.Journal = j
	b.Base = newGame(base)
	b.Winter = newGame(winterMode)

	loc := cfg.Game.Location()
	b.Daily = services.NewDaily(b.Base, calendar.DefaultStreakTiers, cfg.Game.BonusPrizes, loc)
	b.Advent = services.NewAdvent(b.Winter, stores[services.AdventSchema.Table],
		cfg.Game.AdventDays, cfg.Game.WinterStart, cfg.Game.WinterEnd, loc)
	if err := b.Advent.Seed(ctx); err != nil {
		fatal("Failed to seed advent rewards", "advent", err)
	}
	b.Shop = services.NewShop(b.Winter, stores[services.ShopSchema.Table], shop.DefaultLimits)

	var renderer services.FrameRenderer
	if r, err := services.NewFrameImageService(config.FrameRenderTimeout); err != nil {
		slog.Warn("Frame rendering disabled", slog.String("type", "sys"), slog.Any("error", err))
	} else {
		renderer = r
	}
	var storage services.FrameStorage
	if cfg.Spaces.Key != "" {
		spaces, err := services.NewSpacesService(ctx,
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.FramePrefix,
			cfg.Spaces.BackgroundPrefix,
		)
		if err != nil {
			slog.Warn("Frame uploads disabled", slog.String("type", "sys"), slog.Any("error", err))
		} else {
			b.SpacesService = spaces
			storage = spaces
		}
	}
	b.Frames = services.NewFrames(b.Winter, renderer, storage, config.FrameRenderTimeout)

	limiter := handlers.NewUserLimiter(cfg.Game.ActionsPerSecond, cfg.Game.ActionBurst)
	cmd := func(name string, h handler.CommandHandler) handler.CommandHandler {
		return handlers.WrapWithLogging(name, handlers.LimitCommand(limiter, h))
	}
	comp := func(name string, h handler.ComponentHandler) handler.ComponentHandler {
		return handlers.WrapComponentWithLogging(name, handlers.LimitComponent(limiter, h))
	}

	h := handler.New()

	// System commands
	h.Command("/version", system.VersionHandler(b))

	// Admin commands
	h.Command("/reload-top", handlers.WrapWithLogging("reload-top", admin.ReloadTopHandler(b)))
	h.Command("/journal", handlers.WrapWithLogging("journal", admin.JournalHandler(b)))

	// Base game
	h.Command("/start", cmd("start", game.StartHandler(b)))
	h.Command("/spin", cmd("spin", game.SpinHandler(b)))
	h.Command("/daily", cmd("daily", game.DailyHandler(b)))
	h.Command("/promo", cmd("promo", game.PromoHandler(b)))
	h.Command("/subscribe", cmd("subscribe", game.SubscribeHandler(b)))
	h.Command("/top", cmd("top", game.TopHandler(b)))
	h.Command("/collection", cmd("collection", game.CollectionHandler(b)))
	h.Component("/menu/{mode}/{action}", comp("menu", game.MenuHandler(b)))
	h.Component("/bonus/{pick}", comp("bonus", game.BonusComponentHandler(b)))

	// Winter event
	h.Command("/winter", cmd("winter", winter.WinterHandler(b)))
	h.Command("/advent", cmd("advent", winter.AdventHandler(b)))
	h.Command("/shop", cmd("shop", winter.ShopHandler(b)))
	h.Command("/nick", cmd("nick", winter.NickHandler(b)))
	h.Route("/frame", func(r handler.Router) {
		r.Command("/view", cmd("frame-view", winter.FrameViewHandler(b)))
		r.Command("/set", cmd("frame-set", winter.FrameSetHandler(b)))
		r.Command("/clear", cmd("frame-clear", winter.FrameClearHandler(b)))
		r.Autocomplete("/set", winter.FrameAutocomplete(b))
	})
	h.Component("/winter/{action}", comp("winter-menu", winter.MenuHandler(b)))
	h.Component("/advent/{day}", comp("advent", winter.AdventComponentHandler(b)))
	h.Component("/shop/item", comp("shop-item", winter.ShopComponentHandler(b)))
	h.Component("/shop/back", comp("shop-back", winter.ShopComponentHandler(b)))
	h.Component("/shop/buy/{item}", comp("shop-buy", winter.ShopComponentHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		fatal("Failed to setup bot", "bot_setup", err)
	}

	b.Rewards = services.NewRewards(b.Base, cfg.PromoCodes(),
		services.NewGuildMembership(b.Client.Rest(), cfg.Game.BonusGuild),
		cfg.Game.SubscriptionBonus)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	limiter.StartCleanupRoutine(bgCtx)
	if cfg.Metrics.Addr != "" {
		metrics.Serve(bgCtx, cfg.Metrics.Addr)
	}

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	gwCtx, gwCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gwCancel()
	if err = b.Client.OpenGateway(gwCtx); err != nil {
		fatal("Failed to open gateway", "gateway", err)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	logger.LogSystem("Shutting down bot...")
}
