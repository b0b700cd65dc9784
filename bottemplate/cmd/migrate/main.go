package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/logger"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/internal/domain/journal"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

// migrate prepares every table the bot uses, seeds the advent rewards and
// optionally prints the journal entries that never completed.
func main() {
	path := flag.String("config", "config.toml", "path to config")
	report := flag.Bool("journal", false, "print unfinished journal entries")
	reset := flag.String("reset", "", "delete every row of this sheet first (postgres backend only)")
	flag.Parse()

	cfg, err := bottemplate.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	wb, db, err := bottemplate.OpenWorkbook(ctx, *cfg)
	if err != nil {
		slog.Error("Failed to open row store", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	if *reset != "" {
		if db == nil {
			slog.Error("Reset needs the postgres backend", slog.String("type", "db"))
			os.Exit(1)
		}
		n, err := db.ResetSheet(ctx, *reset)
		if err != nil {
			slog.Error("Reset failed", slog.String("type", "db"), slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("Sheet reset", slog.String("type", "db"), slog.String("sheet", *reset), slog.Int64("rows", n))
	}

	base := services.BaseMode(cfg.PromoCodes())
	winter := services.WinterMode()
	stores := make(map[string]*sheets.Store)
	for _, schema := range []sheets.Schema{
		base.Users, base.Catalog,
		winter.Users, winter.Catalog,
		services.AdventSchema, services.ShopSchema, journal.Schema,
	} {
		start := time.Now()
		store, err := bottemplate.OpenStore(ctx, wb, schema)
		if err != nil {
			slog.Error("Migration failed", slog.String("type", "db"), slog.Any("error", err))
			os.Exit(1)
		}
		stores[schema.Table] = store
		slog.Info("Table ready",
			slog.String("type", "db"),
			slog.String("table", schema.Table),
			slog.Int("columns", len(schema.Columns)),
			logger.Since(start))
	}

	// Seeding only reads the advent table, the game itself is never touched.
	advent := services.NewAdvent(nil, stores[services.AdventSchema.Table],
		cfg.Game.AdventDays, cfg.Game.WinterStart, cfg.Game.WinterEnd, cfg.Game.Location())
	if err := advent.Seed(ctx); err != nil {
		slog.Error("Failed to seed advent rewards", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(1)
	}

	if *report {
		records, err := journal.New(stores[journal.Schema.Table]).Unfinished(ctx)
		if err != nil {
			slog.Error("Failed to read journal", slog.String("type", "db"), slog.Any("error", err))
			os.Exit(1)
		}
		printJournal(records)
	}

	slog.Info("Migration completed successfully!",
		slog.String("type", "sys"),
		slog.Int("tables", len(stores)),
		slog.Int("advent_days", advent.Count()))
}

func printJournal(records []journal.Record) {
	if len(records) == 0 {
		fmt.Println("No unfinished journal entries.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tACTION\tSTATUS\tSTEPS\tSTARTED\tDETAILS")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.UserID, r.Action, r.Status, strings.Join(r.Steps, ","), r.StartedAt, r.Details)
	}
	w.Flush()
}
