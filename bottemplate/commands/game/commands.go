package game

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Start,
	Spin,
	Daily,
	Promo,
	Subscribe,
	Top,
	Collection,
}
