package winter

import (
	"fmt"
	"strings"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/PieceOfFire/cats/internal/domain/shop"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

const maxSelectOptions = 25

var Shop = discord.SlashCommandCreate{
	Name:        "shop",
	Description: "Spend your snowflakes in the winter shop",
}

func getTypeEmoji(it shop.Item) string {
	switch {
	case it.IsFrame():
		return "🖼️"
	case it.CardID != "":
		return "🐱"
	case it.Luck > 0:
		return "🍀"
	case it.Spins > 0:
		return "🎰"
	default:
		return "🎁"
	}
}

func stockText(it shop.Item) string {
	if !it.Limited() {
		return "unlimited"
	}
	if *it.Quantity <= 0 {
		return "sold out"
	}
	return fmt.Sprintf("%d left", *it.Quantity)
}

func createItemSelectMenu(items []shop.Item) discord.ContainerComponent {
	if len(items) == 0 {
		return discord.NewActionRow(
			discord.NewStringSelectMenu("/shop/empty", "No items available",
				discord.StringSelectMenuOption{
					Label: "The shop is empty",
					Value: "disabled",
					Emoji: &discord.ComponentEmoji{Name: "❌"},
				},
			).WithDisabled(true),
		)
	}

	options := make([]discord.StringSelectMenuOption, 0, min(len(items), maxSelectOptions))
	for _, it := range items[:min(len(items), maxSelectOptions)] {
		options = append(options, discord.StringSelectMenuOption{
			Label:       it.Name,
			Value:       it.ID,
			Description: fmt.Sprintf("%d ❄ • %s", it.Price, stockText(it)),
			Emoji:       &discord.ComponentEmoji{Name: getTypeEmoji(it)},
		})
	}
	return discord.NewActionRow(
		discord.NewStringSelectMenu("/shop/item", "Select an item", options...).
			WithMinValues(1).
			WithMaxValues(1),
	)
}

func listEmbed(items []shop.Item) discord.Embed {
	if len(items) == 0 {
		return discord.Embed{
			Title:       "🛍️ Winter shop",
			Description: "The shop is currently empty. Come back later!",
			Color:       config.WarningColor,
		}
	}
	return discord.Embed{
		Title:       "🛍️ Winter shop",
		Description: "Select an item to view details",
		Color:       config.WinterColor,
		Footer:      &discord.EmbedFooter{Text: "Snowflakes ❄ come with every winter spin"},
	}
}

func shopMessage(b *bottemplate.Bot) (discord.MessageCreate, error) {
	ctx, cancel := timeout()
	defer cancel()

	items, err := b.Shop.Items(ctx)
	if err != nil {
		return discord.MessageCreate{}, err
	}
	return discord.MessageCreate{
		Embeds:     []discord.Embed{listEmbed(items)},
		Components: []discord.ContainerComponent{createItemSelectMenu(items)},
		Flags:      discord.MessageFlagEphemeral,
	}, nil
}

func ShopHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		msg, err := shopMessage(b)
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return e.CreateMessage(msg)
	}
}

func itemEmbed(it shop.Item) discord.Embed {
	var grants []string
	if it.Spins != 0 {
		grants = append(grants, fmt.Sprintf("🎰 %+d spins", it.Spins))
	}
	if it.Luck != 0 {
		grants = append(grants, "🍀 extra luck")
	}
	if it.CardID != "" {
		grants = append(grants, fmt.Sprintf("🐱 cat #%s", it.CardID))
	}
	if it.IsFrame() {
		grants = append(grants, "🖼️ next frame background")
	}

	eb := discord.NewEmbedBuilder().
		SetTitle(getTypeEmoji(it) + " " + it.Name).
		SetDescription(it.Description).
		SetColor(config.WinterColor).
		AddField("Price", fmt.Sprintf("%d ❄", it.Price), true).
		AddField("Stock", stockText(it), true)
	if len(grants) > 0 {
		eb.AddField("You get", strings.Join(grants, "\n"), false)
	}
	if it.ImageURL != "" {
		eb.SetThumbnail(it.ImageURL)
	}
	return eb.Build()
}

// ShopComponentHandler serves the item select menu and the Buy/Back buttons.
func ShopComponentHandler(b *bottemplate.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		customID := e.Data.CustomID()
		switch {
		case customID == "/shop/item":
			return handleItemSelect(b, e)
		case customID == "/shop/back":
			return handleBack(b, e)
		case strings.HasPrefix(customID, "/shop/buy/"):
			return handleBuy(b, e, strings.TrimPrefix(customID, "/shop/buy/"))
		}
		return nil
	}
}

func handleItemSelect(b *bottemplate.Bot, e *handler.ComponentEvent) error {
	data, ok := e.Data.(discord.StringSelectMenuInteractionData)
	if !ok || len(data.Values) == 0 {
		return utils.EH.HandleError(e, shop.ErrUnknownItem)
	}

	ctx, cancel := timeout()
	defer cancel()

	it, err := b.Shop.Item(ctx, data.Values[0])
	if err != nil {
		return utils.EH.HandleError(e, err)
	}

	return e.UpdateMessage(discord.MessageUpdate{
		Embeds: &[]discord.Embed{itemEmbed(it)},
		Components: &[]discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewSuccessButton("Buy", "/shop/buy/"+it.ID),
				discord.NewSecondaryButton("Back", "/shop/back"),
			),
		},
	})
}

func handleBack(b *bottemplate.Bot, e *handler.ComponentEvent) error {
	ctx, cancel := timeout()
	defer cancel()

	items, err := b.Shop.Items(ctx)
	if err != nil {
		return utils.EH.HandleError(e, err)
	}
	return e.UpdateMessage(discord.MessageUpdate{
		Embeds:     &[]discord.Embed{listEmbed(items)},
		Components: &[]discord.ContainerComponent{createItemSelectMenu(items)},
	})
}

func handleBuy(b *bottemplate.Bot, e *handler.ComponentEvent, itemID string) error {
	ctx, cancel := timeout()
	defer cancel()

	plan, err := b.Shop.Buy(ctx, e.User().ID.String(), itemID)
	if err != nil {
		return utils.EH.HandleError(e, err)
	}

	desc := fmt.Sprintf("```md\n# %s\n* Balance: %d ❄\n* Spins: %d\n```", plan.Item.Name, plan.Currency, plan.Spins)
	if plan.FrameChanged {
		desc += "\n> 💡 Use `/frame view` to see your new background!"
	}

	return e.UpdateMessage(discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Title:       "✅ Purchase successful",
			Description: desc,
			Color:       config.SuccessColor,
		}},
		Components: &[]discord.ContainerComponent{
			discord.NewActionRow(discord.NewSecondaryButton("Back to shop", "/shop/back")),
		},
	})
}
