package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

type memberGetter interface {
	GetMember(guildID snowflake.ID, userID snowflake.ID, opts ...rest.RequestOpt) (*discord.Member, error)
}

// GuildMembership checks membership of one guild through the REST API.
type GuildMembership struct {
	rest    memberGetter
	guildID snowflake.ID
}

func NewGuildMembership(members memberGetter, guildID snowflake.ID) *GuildMembership {
	return &GuildMembership{rest: members, guildID: guildID}
}

func (m *GuildMembership) IsMember(ctx context.Context, userID string) (bool, error) {
	if m.guildID == 0 {
		return false, nil
	}
	id, err := snowflake.Parse(userID)
	if err != nil {
		return false, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	member, err := m.rest.GetMember(m.guildID, id, rest.WithCtx(ctx))
	if err != nil {
		var restErr *rest.Error
		if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return member != nil, nil
}
