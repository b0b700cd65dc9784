package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
)

// MenuID builds the custom id of a menu button for mode.
func MenuID(mode, action string) string {
	return "/menu/" + mode + "/" + action
}

func timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
}

// SpinMessage spends one spin of g for userID and renders the granted card.
func SpinMessage(ctx context.Context, g *services.Game, userID string) (discord.MessageCreate, error) {
	res, err := g.Spin(ctx, userID)
	if err != nil {
		return discord.MessageCreate{}, err
	}

	card := res.Draw.Card
	eb := discord.NewEmbedBuilder().
		SetTitle("🎰 " + utils.FormatCardName(card)).
		SetColor(utils.RarityColor(card.Rarity)).
		AddField("Rarity", fmt.Sprintf("%s %s", utils.RarityEmoji(card.Rarity), card.Rarity), true).
		AddField("Points", fmt.Sprintf("+%d (total %d)", res.Draw.Points, res.Score), true).
		AddField("Spins left", fmt.Sprintf("%d", res.Spins), true).
		AddField("Collection", utils.FormatProgress(res.Owned, res.Total), true)
	if card.ImageURL != "" {
		eb.SetImage(card.ImageURL)
	}
	if cb := g.Mode().Cashback; cb > 0 {
		eb.AddField("Snowflakes", fmt.Sprintf("❄ %d (+%d)", res.Currency, cb), true)
	}
	if res.Draw.Guaranteed {
		eb.SetFooter("✨ Your luck paid off!", "")
	}

	mode := g.Mode().Name
	return discord.MessageCreate{
		Embeds: []discord.Embed{eb.Build()},
		Components: []discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewPrimaryButton("🎰 Spin again", MenuID(mode, "spin")),
				discord.NewSecondaryButton("📚 Collection", MenuID(mode, "collection")),
			),
		},
	}, nil
}

// ShowCollection answers with the user's owned cards, paginated.
func ShowCollection(b *bottemplate.Bot, g *services.Game, respond events.InteractionResponderFunc, interactionID snowflake.ID, user discord.User) error {
	ctx, cancel := timeout()
	defer cancel()

	player, err := g.Players.Get(ctx, user.ID.String())
	if err != nil {
		return err
	}
	catalog, err := g.Catalog.Cards(ctx)
	if err != nil {
		return err
	}
	cards := services.Collection(player.Owned(), catalog)

	title := fmt.Sprintf("📚 %s's cats", user.EffectiveName())
	if len(cards) == 0 {
		return respond(discord.InteractionResponseTypeCreateMessage, discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       title,
				Description: "No cats yet. Spin to catch your first one!",
				Color:       config.InfoColor,
			}},
		})
	}

	totalPages := (len(cards) + config.CardsPerPage - 1) / config.CardsPerPage
	return b.Paginator.Create(respond, paginator.Pages{
		ID:      interactionID.String(),
		Creator: user.ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			start := page * config.CardsPerPage
			end := min(start+config.CardsPerPage, len(cards))

			var sb strings.Builder
			for _, c := range cards[start:end] {
				sb.WriteString(utils.FormatCardEntry(c))
				sb.WriteString("\n")
			}
			embed.
				SetTitle(title).
				SetDescription(sb.String()).
				SetColor(config.EmbedDefaultColor).
				SetFooter(fmt.Sprintf("Page %d/%d • %s cats", page+1, totalPages, utils.FormatProgress(len(cards), len(catalog))), "")
		},
		Pages:      totalPages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}

func entryName(e services.LeaderboardEntry) string {
	if e.Nick != "" {
		return e.Nick
	}
	return "<@" + e.UserID + ">"
}

func formatEntries(entries []services.LeaderboardEntry, offset int) string {
	var sb strings.Builder
	for i, e := range entries {
		rank := offset + i + 1
		medal := fmt.Sprintf("`#%d`", rank)
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		fmt.Fprintf(&sb, "%s %s • **%s**\n", medal, entryName(e), utils.FormatNumber(e.Score))
	}
	return sb.String()
}

// TopMessage renders the first config.LeaderboardTop places plus the caller's own.
func TopMessage(ctx context.Context, g *services.Game, userID string) discord.MessageCreate {
	top := g.Leaderboard.Top(ctx, config.LeaderboardTop)
	desc := formatEntries(top, 0)
	if desc == "" {
		desc = "Nobody has scored yet."
	}
	if pos, entry := g.Leaderboard.Position(ctx, userID); pos > config.LeaderboardTop {
		desc += fmt.Sprintf("\n…\n`#%d` %s • **%s**", pos, entryName(entry), utils.FormatNumber(entry.Score))
	}

	return discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "🏆 Leaderboard",
			Description: desc,
			Color:       config.EmbedDefaultColor,
			Footer:      &discord.EmbedFooter{Text: "Refreshed every minute"},
		}},
		AllowedMentions: &discord.AllowedMentions{},
	}
}

// ShowFullTop pages through the whole ranking.
func ShowFullTop(b *bottemplate.Bot, g *services.Game, respond events.InteractionResponderFunc, interactionID snowflake.ID, user discord.User) error {
	ctx, cancel := timeout()
	defer cancel()

	entries := g.Leaderboard.Entries(ctx)
	if len(entries) == 0 {
		return respond(discord.InteractionResponseTypeCreateMessage, TopMessage(ctx, g, user.ID.String()))
	}

	totalPages := (len(entries) + config.LeaderboardPerPage - 1) / config.LeaderboardPerPage
	return b.Paginator.Create(respond, paginator.Pages{
		ID:      interactionID.String(),
		Creator: user.ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			start := page * config.LeaderboardPerPage
			end := min(start+config.LeaderboardPerPage, len(entries))
			embed.
				SetTitle("🏆 Leaderboard").
				SetDescription(formatEntries(entries[start:end], start)).
				SetColor(config.EmbedDefaultColor).
				SetFooter(fmt.Sprintf("Page %d/%d • %d players", page+1, totalPages, len(entries)), "")
		},
		Pages:      totalPages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}
