package winter

import (
	"fmt"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Nick = discord.SlashCommandCreate{
	Name:        "nick",
	Description: "Set the name shown on the winter leaderboard",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Your display name",
			Required:    true,
			MaxLength:   utils.Ptr(services.MaxNickLength),
		},
	},
}

func NickHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		nick, err := b.Winter.Players.SetNick(ctx, e.User().ID.String(), e.SlashCommandInteractionData().String("name"))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("You will appear as **%s** on the leaderboard.", nick))
	}
}
