package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/PieceOfFire/cats/bottemplate/metrics"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

const (
	interactionTimeout = 10 * time.Second
	slowInteraction    = 2 * time.Second
)

// WrapWithLogging wraps a command handler with logging functionality
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return run("cmd", name, e.User(), e.GuildID(), e.ChannelID(), func() error { return h(e) })
	}
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return run("component", name, e.User(), e.GuildID(), e.ChannelID(), func() error { return h(e) })
	}
}

func run(kind, name string, user discord.User, guildID *snowflake.ID, channelID snowflake.ID, fn func() error) error {
	start := time.Now()
	guild := "dm"
	if guildID != nil {
		guild = guildID.String()
	}

	slog.Debug("Interaction started",
		slog.String("type", kind),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
		slog.String("guild_id", guild),
		slog.String("channel_id", channelID.String()),
	)

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		took := time.Since(start)
		metrics.ObserveInteraction(kind, name, took, err)

		attrs := []any{
			slog.String("type", kind),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.Duration("took", took),
		}
		switch {
		case err != nil:
			slog.Error("Interaction failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
		case took > slowInteraction:
			slog.Warn("Interaction executed slowly", append(attrs, slog.String("status", "slow"))...)
		default:
			slog.Info("Interaction completed", append(attrs, slog.String("status", "success"))...)
		}
		return err

	case <-time.After(interactionTimeout):
		err := fmt.Errorf("%s %s timed out after %s", kind, name, interactionTimeout)
		metrics.ObserveInteraction(kind, name, interactionTimeout, err)
		slog.Error("Interaction timed out",
			slog.String("type", kind),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.String("status", "timeout"),
		)
		return err
	}
}
