package journal

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PieceOfFire/cats/internal/gateways/sheets"
	"github.com/google/uuid"
)

type Status string

const (
	StatusStarted Status = "started"
	StatusDone    Status = "done"
	StatusPartial Status = "partial"
	StatusAborted Status = "aborted"
)

var Schema = sheets.Schema{
	Table: "journal",
	Key:   "ID",
	Columns: []sheets.Column{
		{Name: "ID"},
		{Name: "USER_ID"},
		{Name: "ACTION"},
		{Name: "STATUS"},
		{Name: "DETAILS"},
		{Name: "STEPS"},
		{Name: "STARTED_AT"},
		{Name: "FINISHED_AT"},
	},
}

// Journal records multi-write actions so a partial commit can be reconciled
// by hand. A nil *Journal is valid and records nothing.
type Journal struct {
	store *sheets.Store
	now   func() time.Time
}

func New(store *sheets.Store) *Journal {
	return &Journal{store: store, now: time.Now}
}

// Entry tracks one action from intent to completion.
type Entry struct {
	j      *Journal
	row    int
	ID     string
	UserID string
	Action string
	steps  []string
	closed bool
}

// Begin writes the intent row. Store failures are logged, never returned.
func (j *Journal) Begin(ctx context.Context, userID, action, details string) *Entry {
	e := &Entry{j: j, ID: uuid.NewString(), UserID: userID, Action: action}
	if j == nil {
		return e
	}

	row, err := j.store.Append(ctx, e.ID, sheets.Record{
		"USER_ID":    userID,
		"ACTION":     action,
		"STATUS":     string(StatusStarted),
		"DETAILS":    details,
		"STARTED_AT": j.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		e.logFailure("begin", err)
		return e
	}
	e.row = row.Index
	return e
}

// Step records a committed write.
func (e *Entry) Step(ctx context.Context, name string) {
	e.steps = append(e.steps, name)
	e.write(ctx, "STEPS", strings.Join(e.steps, ","))
}

// Steps returns the names of committed writes so far.
func (e *Entry) Steps() []string {
	return append([]string(nil), e.steps...)
}

// Complete marks the action done.
func (e *Entry) Complete(ctx context.Context) {
	e.finish(ctx, StatusDone)
}

// Fail closes the entry as partial when any write landed, aborted otherwise.
func (e *Entry) Fail(ctx context.Context, cause error) {
	status := StatusAborted
	if len(e.steps) > 0 {
		status = StatusPartial
	}
	if cause != nil {
		e.write(ctx, "DETAILS", cause.Error())
	}
	e.finish(ctx, status)
}

func (e *Entry) finish(ctx context.Context, status Status) {
	if e.closed {
		return
	}
	e.closed = true
	e.write(ctx, "STATUS", string(status))
	if e.j != nil {
		e.write(ctx, "FINISHED_AT", e.j.now().UTC().Format(time.RFC3339))
	}
}

func (e *Entry) write(ctx context.Context, column, value string) {
	if e.j == nil || e.row == 0 {
		return
	}
	if err := e.j.store.Write(ctx, e.row, column, value); err != nil {
		e.logFailure(column, err)
	}
}

func (e *Entry) logFailure(op string, err error) {
	slog.Error("Journal write failed",
		slog.String("type", "db"),
		slog.String("journal_id", e.ID),
		slog.String("user_id", e.UserID),
		slog.String("action", e.Action),
		slog.String("op", op),
		slog.Any("error", err),
	)
}

// Record is one journal row as read back for reconciliation.
type Record struct {
	ID         string
	UserID     string
	Action     string
	Status     Status
	Details    string
	Steps      []string
	StartedAt  string
	FinishedAt string
}

// Unfinished lists entries that did not reach done.
func (j *Journal) Unfinished(ctx context.Context) ([]Record, error) {
	rows, err := j.store.Rows(ctx)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, r := range rows {
		status := Status(r.String("STATUS"))
		if status == StatusDone {
			continue
		}
		var steps []string
		if s := r.String("STEPS"); s != "" {
			steps = strings.Split(s, ",")
		}
		out = append(out, Record{
			ID:         r.String("ID"),
			UserID:     r.String("USER_ID"),
			Action:     r.String("ACTION"),
			Status:     status,
			Details:    r.String("DETAILS"),
			Steps:      steps,
			StartedAt:  r.String("STARTED_AT"),
			FinishedAt: r.String("FINISHED_AT"),
		})
	}
	return out, nil
}
