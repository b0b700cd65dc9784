package winter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/PieceOfFire/cats/internal/domain/calendar"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// Discord allows five rows of five buttons.
const (
	adventPerRow = 5
	adventMax    = 25
)

var Advent = discord.SlashCommandCreate{
	Name:        "advent",
	Description: "Open the winter advent calendar",
}

func adventGrid(state string) []discord.ContainerComponent {
	cells := []rune(state)
	if len(cells) > adventMax {
		cells = cells[:adventMax]
	}

	var rows []discord.ContainerComponent
	var row []discord.InteractiveComponent
	for i, cell := range cells {
		day := i + 1
		id := fmt.Sprintf("/advent/%d", day)
		label := strconv.Itoa(day)

		var btn discord.ButtonComponent
		switch cell {
		case calendar.Claimed:
			btn = discord.NewSuccessButton("✅ "+label, id).AsDisabled()
		case calendar.Open:
			btn = discord.NewPrimaryButton("🎁 "+label, id)
		default:
			btn = discord.NewSecondaryButton("🔒 "+label, id).AsDisabled()
		}
		row = append(row, btn)

		if len(row) == adventPerRow {
			rows = append(rows, discord.NewActionRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discord.NewActionRow(row...))
	}
	return rows
}

func formatReward(d services.AdventDay) string {
	var parts []string
	if d.Spins > 0 {
		parts = append(parts, fmt.Sprintf("+%d spins", d.Spins))
	}
	if d.Currency > 0 {
		parts = append(parts, fmt.Sprintf("+%d ❄", d.Currency))
	}
	if d.Luck > 0 {
		parts = append(parts, "a little luck")
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

func adventEmbed(view services.AdventView, note string) discord.Embed {
	desc := fmt.Sprintf("From **%s** to **%s**. %d of %d days are open.",
		view.Window.Start.Format("Jan 2"), view.Window.End.Format("Jan 2"), view.DayIndex, len(view.Days))
	if note != "" {
		desc = note + "\n\n" + desc
	}
	return discord.Embed{
		Title:       "📅 Advent calendar",
		Description: desc,
		Color:       config.WinterColor,
	}
}

func adventMessage(b *bottemplate.Bot, userID, note string) (discord.MessageCreate, error) {
	ctx, cancel := timeout()
	defer cancel()

	view, err := b.Advent.View(ctx, userID)
	if err != nil {
		return discord.MessageCreate{}, err
	}
	return discord.MessageCreate{
		Embeds:     []discord.Embed{adventEmbed(view, note)},
		Components: adventGrid(view.State),
		Flags:      discord.MessageFlagEphemeral,
	}, nil
}

func AdventHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		msg, err := adventMessage(b, e.User().ID.String(), "")
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(msg)
	}
}

// AdventComponentHandler claims the day pressed on the grid and redraws it.
func AdventComponentHandler(b *bottemplate.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		day, err := strconv.Atoi(e.Vars["day"])
		if err != nil {
			return utils.EH.HandleError(e, calendar.ErrInvalidDay)
		}

		ctx, cancel := timeout()
		defer cancel()

		userID := e.User().ID.String()
		claim, err := b.Advent.Claim(ctx, userID, day)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}

		view, err := b.Advent.View(ctx, userID)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		note := fmt.Sprintf("Day %d opened: %s. You have **%d** spins and ❄ **%d**.",
			claim.Reward.Day, formatReward(claim.Reward), claim.Spins, claim.Currency)
		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &[]discord.Embed{adventEmbed(view, note)},
			Components: utils.Ptr(adventGrid(view.State)),
		})
	}
}
