package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// Embed descriptions stop at 4096 characters.
const maxJournalLines = 20

var Journal = discord.SlashCommandCreate{
	Name:        "journal",
	Description: "List actions that stopped before finishing",
}

func JournalHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return utils.EH.CreateClassifiedError(e, utils.PermissionError, "You don't have permission to read the journal")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		records, err := b.Journal.Unfinished(ctx)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		var sb strings.Builder
		for i, r := range records {
			if i == maxJournalLines {
				fmt.Fprintf(&sb, "… and %d more, see `migrate -journal`\n", len(records)-i)
				break
			}
			fmt.Fprintf(&sb, "`%s` **%s** <@%s> %s after [%s]\n",
				r.StartedAt, r.Action, r.UserID, r.Status, strings.Join(r.Steps, ", "))
		}
		if sb.Len() == 0 {
			sb.WriteString("Every action finished cleanly.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("📓 Unfinished actions (%d)", len(records)),
				Description: sb.String(),
				Color:       config.WarningColor,
			}},
			AllowedMentions: &discord.AllowedMentions{},
			Flags:           discord.MessageFlagEphemeral,
		})
	}
}
