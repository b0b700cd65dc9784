package game

import (
	"fmt"
	"strconv"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "Claim your daily spins and keep the streak going",
}

func chestRow(chests int) discord.ContainerComponent {
	buttons := make([]discord.InteractiveComponent, 0, chests)
	for i := 0; i < chests; i++ {
		buttons = append(buttons, discord.NewPrimaryButton(fmt.Sprintf("🧰 Chest %d", i+1), fmt.Sprintf("/bonus/%d", i)))
	}
	return discord.NewActionRow(buttons...)
}

// DailyMessage claims today's reward. Bonus days offer the chest game instead of spins.
func DailyMessage(b *bottemplate.Bot, userID string) (discord.MessageCreate, error) {
	ctx, cancel := timeout()
	defer cancel()

	res, err := b.Daily.Claim(ctx, userID)
	if err != nil {
		return discord.MessageCreate{}, err
	}

	if res.Bonus {
		return discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("🔥 Day %d: bonus game!", res.Streak),
				Description: "Pick one chest. Each hides a different number of spins.",
				Color:       config.WarningColor,
			}},
			Components: []discord.ContainerComponent{chestRow(b.Daily.Chests())},
		}, nil
	}

	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "🎁 Daily reward",
			Description: fmt.Sprintf("+**%d** spins. You now have **%d**.", res.Reward, res.Spins),
			Color:       config.SuccessColor,
			Footer:      &discord.EmbedFooter{Text: fmt.Sprintf("Streak: %d days", res.Streak)},
		}},
	}, nil
}

func DailyHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		msg, err := DailyMessage(b, e.User().ID.String())
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(msg)
	}
}

// BonusComponentHandler opens the chest picked from a bonus game message.
func BonusComponentHandler(b *bottemplate.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		pick, err := strconv.Atoi(e.Vars["pick"])
		if err != nil {
			return utils.EH.HandleError(e, services.ErrInvalidChest)
		}

		ctx, cancel := timeout()
		defer cancel()

		res, err := b.Daily.PlayBonus(ctx, e.User().ID.String(), pick)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		buttons := make([]discord.InteractiveComponent, 0, len(res.Prizes))
		for i, prize := range res.Prizes {
			label := fmt.Sprintf("%d spins", prize)
			btn := discord.NewSecondaryButton(label, fmt.Sprintf("/bonus/%d", i))
			if i == res.Pick {
				btn = discord.NewSuccessButton("🎉 "+label, fmt.Sprintf("/bonus/%d", i))
			}
			buttons = append(buttons, btn.AsDisabled())
		}

		return e.UpdateMessage(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       "🧰 Chest opened",
				Description: fmt.Sprintf("You won **%d** spins! You now have **%d**.", res.Prize, res.Spins),
				Color:       config.SuccessColor,
			}},
			Components: &[]discord.ContainerComponent{discord.NewActionRow(buttons...)},
		})
	}
}
