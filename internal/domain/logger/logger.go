package logger

import (
	"log/slog"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/metrics"
)

// OpLogger times one row-store call and logs it in the db log shape.
type OpLogger struct {
	Backend   string
	Operation string
	Table     string
	Args      []any
	StartTime time.Time
}

func NewOpLogger(backend, operation, table string, args ...any) *OpLogger {
	return &OpLogger{
		Backend:   backend,
		Operation: operation,
		Table:     table,
		Args:      args,
		StartTime: time.Now(),
	}
}

func (l *OpLogger) Log(err error) {
	duration := time.Since(l.StartTime)
	metrics.ObserveStoreCall(l.Backend, l.Operation, duration, err)

	if err != nil {
		slog.Error("Store call failed",
			slog.String("type", "db"),
			slog.String("backend", l.Backend),
			slog.String("operation", l.Operation),
			slog.String("table", l.Table),
			slog.Any("args", l.Args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return
	}

	slog.Debug("Store call",
		slog.String("type", "db"),
		slog.String("backend", l.Backend),
		slog.String("operation", l.Operation),
		slog.String("table", l.Table),
		slog.Any("args", l.Args),
		slog.Duration("took", duration),
	)
}
