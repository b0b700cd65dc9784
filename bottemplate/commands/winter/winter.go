package winter

import (
	"fmt"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/commands/game"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Winter = discord.SlashCommandCreate{
	Name:        "winter",
	Description: "Open the winter event menu",
}

func menuComponents(mode string) []discord.ContainerComponent {
	return []discord.ContainerComponent{
		discord.NewActionRow(
			discord.NewPrimaryButton("🎰 Spin", game.MenuID(mode, "spin")),
			discord.NewSecondaryButton("📚 Collection", game.MenuID(mode, "collection")),
			discord.NewSecondaryButton("🏆 Top", game.MenuID(mode, "top")),
		),
		discord.NewActionRow(
			discord.NewSuccessButton("📅 Advent", "/winter/advent"),
			discord.NewSuccessButton("🛍️ Shop", "/winter/shop"),
			discord.NewSuccessButton("🖼️ Frame", "/winter/frame"),
		),
	}
}

func WinterHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		p, err := b.Winter.Players.Get(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		embed := discord.NewEmbedBuilder().
			SetTitle("❄️ Winter event").
			SetDescription("Catch winter cats, open the advent calendar and decorate your frame.").
			SetColor(config.WinterColor).
			AddField("Spins", fmt.Sprintf("%d", p.Spins()), true).
			AddField("Snowflakes", fmt.Sprintf("❄ %d", p.Currency()), true).
			AddField("Score", fmt.Sprintf("%d", p.Score()), true).
			AddField("Cats", fmt.Sprintf("%d", len(p.Owned())), true).
			Build()

		return e.CreateMessage(discord.MessageCreate{
			Embeds:     []discord.Embed{embed},
			Components: menuComponents(b.Winter.Mode().Name),
		})
	}
}

// MenuHandler serves the winter-only menu buttons.
func MenuHandler(b *bottemplate.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		userID := e.User().ID.String()
		switch e.Vars["action"] {
		case "advent":
			msg, err := adventMessage(b, userID, "")
			if err != nil {
				return utils.EH.HandleError(e, err)
			}
			return e.CreateMessage(msg)

		case "shop":
			msg, err := shopMessage(b)
			if err != nil {
				return utils.EH.HandleError(e, err)
			}
			return e.CreateMessage(msg)

		case "frame":
			return sendFrame(b, e)
		}
		return nil
	}
}
