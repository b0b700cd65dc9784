package game

import (
	"fmt"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Promo = discord.SlashCommandCreate{
	Name:        "promo",
	Description: "Redeem a promo code",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "code",
			Description: "The code to redeem",
			Required:    true,
		},
	},
}

var Subscribe = discord.SlashCommandCreate{
	Name:        "subscribe",
	Description: "Get bonus spins for joining our partner server",
}

func PromoHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		code, spins, err := b.Rewards.Redeem(ctx, e.User().ID.String(), e.SlashCommandInteractionData().String("code"))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		msg := fmt.Sprintf("Code **%s** redeemed: +%d spins. You now have **%d**.", code.Code, code.Bonus, spins)
		if code.Description != "" {
			msg += "\n> " + code.Description
		}
		return utils.EH.CreateSuccessEmbed(e, msg)
	}
}

func SubscribeHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		spins, err := b.Rewards.ClaimSubscription(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Thanks for joining! You now have **%d** spins.", spins))
	}
}
