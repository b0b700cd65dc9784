package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, slog.LevelDebug, false))

	log.Info("Command completed",
		slog.String("type", "cmd"),
		slog.String("name", "spin"),
		slog.String("user_name", "mira"),
		slog.String("status", "success"),
		slog.String("user_id", "42"),
	)

	line := buf.String()
	for _, want := range []string{"[CATS]", "[INFO]", "[CMD]", "[spin by mira]", "[Status: success]", "user_id=42"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q does not contain %q", line, want)
		}
	}
	if strings.Contains(line, "type=cmd") {
		t.Errorf("line %q leaks internal attrs", line)
	}
}

func TestCustomHandler_ErrorsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, slog.LevelInfo, false)).With(slog.String("mode", "winter"))

	log.Debug("hidden")
	log.Error("Partial write", slog.String("type", "error"), slog.Any("error", errors.New("quota")))

	line := buf.String()
	if strings.Contains(line, "hidden") {
		t.Errorf("debug line written at info level: %q", line)
	}
	for _, want := range []string{"[ERROR]", "[ERR]", ": quota", "mode=winter", "logger_test.go:"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q does not contain %q", line, want)
		}
	}
}

func TestCustomHandler_SkipsGatewayNoise(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, slog.LevelDebug, false))
	log.Debug("sending heartbeat")
	if buf.Len() != 0 {
		t.Errorf("noise was logged: %q", buf.String())
	}
}
