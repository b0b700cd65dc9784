package game

import (
	"fmt"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Start = discord.SlashCommandCreate{
	Name:        "start",
	Description: "Join the game and open the main menu",
}

func mainMenu(mode string) []discord.ContainerComponent {
	return []discord.ContainerComponent{
		discord.NewActionRow(
			discord.NewPrimaryButton("🎰 Spin", MenuID(mode, "spin")),
			discord.NewSecondaryButton("📚 Collection", MenuID(mode, "collection")),
			discord.NewSecondaryButton("🎁 Daily", MenuID(mode, "daily")),
			discord.NewSecondaryButton("🏆 Top", MenuID(mode, "top")),
		),
	}
}

func StartHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		player, created, err := b.Base.Players.Register(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		desc := fmt.Sprintf("Welcome back! You have **%d** spins.", player.Spins())
		if created {
			desc = fmt.Sprintf("Welcome to the cat collection! Here are **%d** spins to get you started.", services.StartSpins)
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🐱 Cats",
				Description: desc,
				Color:       config.EmbedDefaultColor,
			}},
			Components: mainMenu(b.Base.Mode().Name),
		})
	}
}
