package game

import (
	"github.com/PieceOfFire/cats/bottemplate"
	"github.com/PieceOfFire/cats/bottemplate/utils"
	"github.com/disgoorg/disgo/handler"
)

// MenuHandler routes the shared menu buttons (spin, collection, top, daily)
// to the game named in the custom id.
func MenuHandler(b *bottemplate.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		g := ForMode(b, e.Vars["mode"])
		userID := e.User().ID.String()

		switch e.Vars["action"] {
		case "spin":
			ctx, cancel := timeout()
			defer cancel()
			msg, err := SpinMessage(ctx, g, userID)
			if err != nil {
				return utils.EH.HandleError(e, err)
			}
			return e.CreateMessage(msg)

		case "collection":
			if err := ShowCollection(b, g, e.Respond, e.ID(), e.User()); err != nil {
				return utils.EH.HandleError(e, err)
			}
			return nil

		case "top":
			ctx, cancel := timeout()
			defer cancel()
			return e.CreateMessage(TopMessage(ctx, g, userID))

		case "daily":
			msg, err := DailyMessage(b, userID)
			if err != nil {
				return utils.EH.HandleError(e, err)
			}
			return e.CreateMessage(msg)
		}
		return nil
	}
}
