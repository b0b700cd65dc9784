package admin

import (
	"log/slog"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var ReloadTop = discord.SlashCommandCreate{
	Name:        "reload-top",
	Description: "Drop cached leaderboards and catalogs",
}

func ReloadTopHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return utils.EH.CreateClassifiedError(e, utils.PermissionError, "You don't have permission to reload caches")
		}

		for _, g := range []*services.Game{b.Base, b.Winter} {
			if g == nil {
				continue
			}
			g.Leaderboard.Invalidate()
			g.Catalog.Invalidate()
		}

		slog.Info("Caches invalidated",
			slog.String("type", "cmd"),
			slog.String("admin_id", e.User().ID.String()),
		)
		return e.CreateMessage(discord.MessageCreate{
			Content: "✅ Leaderboards and catalogs will reload on next use.",
			Flags:   discord.MessageFlagEphemeral,
		})
	}
}
