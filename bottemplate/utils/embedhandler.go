// File: utils/embedhandler.go

package utils

import (
	"errors"
	"fmt"

	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/PieceOfFire/cats/bottemplate/services"
	"github.com/PieceOfFire/cats/internal/domain/calendar"
	"github.com/PieceOfFire/cats/internal/domain/frames"
	"github.com/PieceOfFire/cats/internal/domain/rewards"
	"github.com/PieceOfFire/cats/internal/domain/shop"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - User input issues, validation failures, parameter problems
	UserError ErrorType = iota
	// SystemError - Store failures, network issues, internal errors
	SystemError
	// NotFoundError - Requested resources don't exist
	NotFoundError
	// PermissionError - Unauthorized actions, access denied
	PermissionError
	// BusinessLogicError - Already claimed, insufficient resources, game rule violations
	BusinessLogicError
)

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

type classified struct {
	target error
	kind   ErrorType
	text   string
}

// Order matters: wrapped errors match the first entry they satisfy.
var classifications = []classified{
	{services.ErrPartialWrite, SystemError, "Something went wrong halfway through. Part of the reward may be missing, an admin has been notified."},
	{services.ErrNotRegistered, UserError, "You are not registered yet. Use /start first."},
	{services.ErrNoSpins, BusinessLogicError, "You have no spins left. Come back for your daily reward!"},
	{services.ErrCatalogUnavailable, SystemError, "The card catalog is unavailable right now, try again in a minute."},
	{rewards.ErrCollectionComplete, BusinessLogicError, "🎉 You already own every card! Your spin was not used."},
	{services.ErrNoBonusPending, BusinessLogicError, "There is no bonus game waiting for you."},
	{services.ErrInvalidChest, UserError, "Pick one of the three chests."},
	{services.ErrUnknownPromo, NotFoundError, "That promo code does not exist."},
	{services.ErrNotSubscribed, PermissionError, "Join the partner server first, then try again."},
	{services.ErrInvalidNick, UserError, fmt.Sprintf("A nickname must be 1 to %d characters on a single line.", services.MaxNickLength)},
	{calendar.ErrAlreadyClaimed, BusinessLogicError, "You have already claimed this."},
	{calendar.ErrNotYetAvailable, BusinessLogicError, "This is not available yet."},
	{calendar.ErrInvalidDay, UserError, "That day is not part of the calendar."},
	{shop.ErrUnknownItem, NotFoundError, "That item is not in the shop."},
	{shop.ErrDuplicateGrant, BusinessLogicError, "You already own this card."},
	{shop.ErrInsufficientFunds, BusinessLogicError, "You don't have enough currency for this."},
	{shop.ErrOutOfStock, BusinessLogicError, "This item is sold out."},
	{shop.ErrFrameAtMax, BusinessLogicError, "Your frame background is already at its best."},
	{frames.ErrSlotOutOfRange, UserError, fmt.Sprintf("Slot must be between 1 and %d.", frames.SlotCount)},
	{frames.ErrCardNotOwned, BusinessLogicError, "You don't own a card matching that."},
}

// Classify maps a service error to its category and the text shown to the user.
func Classify(err error) (ErrorType, string) {
	for _, c := range classifications {
		if errors.Is(err, c.target) {
			return c.kind, c.text
		}
	}
	return SystemError, "An unexpected error occurred, try again later."
}

// CreateClassifiedError creates an error response with automatic categorization
func (h *ResponseHandler) CreateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: getErrorPrefix(errorType) + " " + message,
			Color:       getErrorColor(errorType),
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// CreateClassifiedComponentError creates an ephemeral error for component interactions
func (h *ResponseHandler) CreateClassifiedComponentError(event *handler.ComponentEvent, errorType ErrorType, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: getErrorPrefix(errorType) + " " + message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateEphemeralSuccess creates an ephemeral success message for component events
func (h *ResponseHandler) CreateEphemeralSuccess(event *handler.ComponentEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: "✅ " + message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// HandleError answers event with the classified text for err. Rule violations
// are answered and swallowed; system failures are answered and returned so the
// logging wrapper records them.
func (h *ResponseHandler) HandleError(event interface{}, err error) error {
	kind, text := Classify(err)

	var respErr error
	switch e := event.(type) {
	case *handler.CommandEvent:
		respErr = h.CreateClassifiedError(e, kind, text)
	case *handler.ComponentEvent:
		respErr = h.CreateClassifiedComponentError(e, kind, text)
	default:
		return fmt.Errorf("unsupported event type for error handling")
	}

	if kind == SystemError {
		return errors.Join(err, respErr)
	}
	return respErr
}
