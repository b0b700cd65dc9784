package winter

import (
	"context"

	"github.com/PieceOfFire/cats/bottemplate/config"
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Winter,
	Advent,
	Shop,
	Frame,
	Nick,
}

func timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
}
