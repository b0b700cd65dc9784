package logger

import (
	"log/slog"
	"strings"
	"time"
)

// LogQuery logs a row store call at debug level, failures at error.
func LogQuery(op string, duration time.Duration, err error, attrs ...any) {
	base := []any{
		slog.String("type", "db"),
		slog.String("operation", op),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(append(base, attrs...), slog.Any("error", err))...)
		return
	}
	slog.Debug("Query executed", append(base, attrs...)...)
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}

// LogPartialWrite reports an action whose writes stopped midway. The line
// carries everything needed to reconcile the row by hand.
func LogPartialWrite(action, userID, journalID string, steps []string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.String("action", action),
		slog.String("user_id", userID),
		slog.String("journal_id", journalID),
		slog.String("steps", strings.Join(steps, ",")),
		slog.Any("error", err),
	}
	slog.Error("Partial write", append(baseAttrs, attrs...)...)
}
