package commands

import (
	"github.com/PieceOfFire/cats/bottemplate/commands/admin"
	"github.com/PieceOfFire/cats/bottemplate/commands/game"
	"github.com/PieceOfFire/cats/bottemplate/commands/system"
	"github.com/PieceOfFire/cats/bottemplate/commands/winter"
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, admin.Commands...)
	Commands = append(Commands, game.Commands...)
	Commands = append(Commands, winter.Commands...)
	Commands = append(Commands, system.Commands...)
}
