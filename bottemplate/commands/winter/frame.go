package winter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/PieceOfFire/cats/internal/domain/frames"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
)

var slotOption = discord.ApplicationCommandOptionInt{
	Name:        "slot",
	Description: "Frame slot",
	Required:    true,
	MinValue:    utils.Ptr(1),
	MaxValue:    utils.Ptr(frames.SlotCount),
}

var Frame = discord.SlashCommandCreate{
	Name:        "frame",
	Description: "Show off five winter cats in your frame",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "view",
			Description: "Show your frame",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "set",
			Description: "Put one of your cats into a slot",
			Options: []discord.ApplicationCommandOption{
				slotOption,
				discord.ApplicationCommandOptionString{
					Name:         "card",
					Description:  "Cat id or description",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "clear",
			Description: "Empty a slot",
			Options:     []discord.ApplicationCommandOption{slotOption},
		},
	},
}

// frameResponder is satisfied by both command and component events.
type frameResponder interface {
	User() discord.User
	DeferCreateMessage(ephemeral bool, opts ...rest.RequestOpt) error
	UpdateInteractionResponse(messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) (*discord.Message, error)
}

func slotList(view services.FrameView) string {
	var sb strings.Builder
	for i := 0; i < frames.SlotCount; i++ {
		fmt.Fprintf(&sb, "`%d` ", i+1)
		if c, ok := view.Cards[i]; ok {
			sb.WriteString(utils.FormatCardEntry(c))
		} else if id := view.Slots[i]; id != frames.Empty {
			sb.WriteString("#" + id)
		} else {
			sb.WriteString("empty")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// sendFrame defers, then answers with the cached URL, a fresh upload, the raw
// render as an attachment, or only the slot list, in that order.
func sendFrame(b *bottemplate.Bot, e frameResponder) error {
	if err := e.DeferCreateMessage(false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*config.FrameRenderTimeout+5*time.Second)
	defer cancel()

	view, err := b.Frames.View(ctx, e.User().ID.String())
	if err != nil {
		_, text := utils.Classify(err)
		_, updErr := e.UpdateInteractionResponse(discord.MessageUpdate{Content: utils.Ptr("❌ " + text)})
		if updErr != nil {
			slog.Error("Failed to report frame error", slog.String("type", "cmd"), slog.Any("error", updErr))
		}
		return err
	}

	embed := discord.Embed{
		Title:       fmt.Sprintf("🖼️ %s's frame", e.User().EffectiveName()),
		Description: slotList(view),
		Color:       config.WinterColor,
	}
	update := discord.MessageUpdate{}

	switch {
	case view.URL != "":
		embed.Image = &discord.EmbedResource{URL: view.URL}
	case len(view.Image) > 0:
		embed.Image = &discord.EmbedResource{URL: "attachment://frame.png"}
		update.Files = []*discord.File{{Name: "frame.png", Reader: bytes.NewReader(view.Image)}}
	default:
		embed.Footer = &discord.EmbedFooter{Text: "The picture could not be drawn right now, try again later."}
	}
	update.Embeds = &[]discord.Embed{embed}

	_, err = e.UpdateInteractionResponse(update)
	return err
}

func FrameViewHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return sendFrame(b, e)
	}
}

func FrameSetHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		data := e.SlashCommandInteractionData()
		slot := data.Int("slot")
		_, card, err := b.Frames.Set(ctx, e.User().ID.String(), slot, data.String("card"))
		if err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Slot %d now shows %s", slot, utils.FormatCardEntry(card)))
	}
}

func FrameClearHandler(b *bottemplate.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := timeout()
		defer cancel()

		slot := e.SlashCommandInteractionData().Int("slot")
		if _, err := b.Frames.Clear(ctx, e.User().ID.String(), slot); err != nil {
			return utils.EH.HandleError(e, err)
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Slot %d is empty now.", slot))
	}
}

// FrameAutocomplete suggests owned winter cats for the card option.
func FrameAutocomplete(b *bottemplate.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		focused := e.Data.Focused()
		if focused.Name != "card" {
			return nil
		}

		query := ""
		if focused.Value != nil {
			var s string
			if err := json.Unmarshal(focused.Value, &s); err != nil {
				return e.AutocompleteResult([]discord.AutocompleteChoice{})
			}
			query = strings.TrimSpace(s)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		cards, err := b.Frames.Search(ctx, e.User().ID.String(), query, config.AutocompleteLimit)
		if err != nil {
			slog.Warn("Frame autocomplete failed",
				slog.String("type", "cmd"),
				slog.String("error", err.Error()))
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		choices := make([]discord.AutocompleteChoice, 0, len(cards))
		for _, c := range cards {
			name := fmt.Sprintf("#%s %s", c.ID, utils.FormatCardName(c))
			if r := []rune(name); len(r) > 100 {
				name = string(r[:100])
			}
			choices = append(choices, discord.AutocompleteChoiceString{Name: name, Value: c.ID})
		}
		return e.AutocompleteResult(choices)
	}
}
