package services

import (
	"context"
	"fmt"

	"github.com/PieceOfFire/cats/bottemplate/logger"
	"github.com/PieceOfFire/cats/bottemplate/metrics"
	"github.com/PieceOfFire/cats/internal/domain/journal"
	"github.com/PieceOfFire/cats/internal/gateways/sheets"
)

// commit applies the single-cell writes of one action in order and journals
// each one. The first failure stops the sequence.
type commit struct {
	store  *sheets.Store
	row    int
	entry  *journal.Entry
	action string
	userID string
	attrs  []any
}

func begin(ctx context.Context, j *journal.Journal, store *sheets.Store, p *Player, action, details string, attrs ...any) *commit {
	return &commit{
		store:  store,
		row:    p.Row,
		entry:  j.Begin(ctx, p.UserID, action, details),
		action: action,
		userID: p.UserID,
		attrs:  attrs,
	}
}

func (c *commit) write(ctx context.Context, column, value string) error {
	return c.writeTo(ctx, c.store, c.row, column, value)
}

// writeTo writes a cell of another table as part of the same action.
func (c *commit) writeTo(ctx context.Context, store *sheets.Store, row int, column, value string) error {
	if err := store.Write(ctx, row, column, value); err != nil {
		return c.fail(ctx, fmt.Errorf("write %s.%s: %w", store.Schema().Table, column, err))
	}
	c.entry.Step(ctx, column)
	return nil
}

func (c *commit) fail(ctx context.Context, err error) error {
	c.entry.Fail(ctx, err)
	steps := c.entry.Steps()
	if len(steps) == 0 {
		return err
	}

	metrics.PartialWrites.WithLabelValues(c.action).Inc()
	logger.LogPartialWrite(c.action, c.userID, c.entry.ID, steps, err, c.attrs...)
	return &PartialWriteError{
		Action:    c.action,
		UserID:    c.userID,
		JournalID: c.entry.ID,
		Completed: steps,
		Err:       err,
	}
}

func (c *commit) done(ctx context.Context) {
	c.entry.Complete(ctx)
}
