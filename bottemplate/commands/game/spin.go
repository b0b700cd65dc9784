package game

import (
	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Spin = discord.SlashCommandCreate{
	Name:        "spin",
	Description: "Spend a spin to catch a new cat",
}

func SpinHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		msg, err := SpinMessage(ctx, b.Base, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(msg)
	}
}
