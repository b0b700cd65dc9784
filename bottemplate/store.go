package bottemplate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/database"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

// OpenWorkbook connects the configured row store backend. The returned DB is
// nil unless the backend is postgres.
func OpenWorkbook(ctx context.Context, cfg Config) (sheets.Workbook, *database.DB, error) {
	switch cfg.Store.Backend {
	case "google", "":
		wb, err := sheets.NewGoogleWorkbook(ctx, cfg.Store.CredentialsFile, cfg.Store.SpreadsheetKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open spreadsheet: %w", err)
		}
		return wb, nil, nil

	case "postgres":
		start := time.Now()
		db, err := database.New(ctx, database.DBConfig{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Database,
			PoolSize: cfg.DB.PoolSize,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitializeSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to initialize database schema: %w", err)
		}
		slog.Info("Database connected successfully",
			slog.String("type", "db"),
			slog.String("database", cfg.DB.Database),
			slog.Duration("took", time.Since(start)))
		return sheets.NewPostgresWorkbook(db.BunDB()), db, nil

	case "memory":
		slog.Warn("Using the in-memory store, nothing will be persisted", slog.String("type", "sys"))
		return sheets.NewMemoryWorkbook(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// OpenStore opens the table of schema, creating it when missing, and makes
// sure every schema column exists.
func OpenStore(ctx context.Context, wb sheets.Workbook, schema sheets.Schema) (*sheets.Store, error) {
	table, err := wb.Table(ctx, schema.Table, schema.Headers())
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", schema.Table, err)
	}
	store := sheets.NewStore(table, schema)
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate table %s: %w", schema.Table, err)
	}
	return store, nil
}

// PromoCodes converts the configured codes for the base mode.
func (c Config) PromoCodes() []services.PromoCode {
	out := make([]services.PromoCode, 0, len(c.Promo))
	for _, p := range c.Promo {
		out = append(out, services.PromoCode{
			Code:        p.Code,
			Column:      p.Column,
			Bonus:       p.Bonus,
			Description: p.Description,
		})
	}
	return out
}
