package game

import (
	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Top = discord.SlashCommandCreate{
	Name:        "top",
	Description: "Show the leaderboard",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "season",
			Description: "Which game to rank",
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Main", Value: "base"},
				{Name: "Winter", Value: "winter"},
			},
		},
		discord.ApplicationCommandOptionBool{
			Name:        "full",
			Description: "Page through every player",
		},
	},
}

var Collection = discord.SlashCommandCreate{
	Name:        "collection",
	Description: "Browse the cats you have caught",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "season",
			Description: "Which collection to show",
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Main", Value: "base"},
				{Name: "Winter", Value: "winter"},
			},
		},
	},
}

// ForMode picks the game by mode name, defaulting to the main game.
func ForMode(b *bottemplate.Bot, mode string) *services.Game {
	if b.Winter != nil && mode == b.Winter.Mode().Name {
		return b.Winter
	}
	return b.Base
}

func TopHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		season, _ := data.OptString("season")
		g := ForMode(b, season)

		if data.Bool("full") {
			return ShowFullTop(b, g, e.Respond, e.ID(), e.User())
		}

		ctx, cancel := timeout()
		defer cancel()
		return e.CreateMessage(TopMessage(ctx, g, e.User().ID.String()))
	}
}

func CollectionHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		season, _ := e.SlashCommandInteractionData().OptString("season")
		if err := ShowCollection(b, ForMode(b, season), e.Respond, e.ID(), e.User()); err != nil {
			return utils.EH.HandleError(e, err)
		}
		return nil
	}
}
