package bot

import (
	"errors"
	"fmt"

	"github.com/jphmw/impbot/app/database"
)

// ErrNoChannel means no announcement channel could be resolved for a guild.
// Callers treat it as "skip this guild this cycle", not as a failure.
var ErrNoChannel = errors.New("no resolvable announcement channel")

// GuildState is the slice of live guild data channel resolution needs.
// *discordgo.Session satisfies it through SessionState.
type GuildState interface {
	ChannelExists(guildID, channelID string) bool
	SystemChannelID(guildID string) (string, bool)
}

// Resolver picks the announcement channel for a guild: the configured
// override when it still points at a live channel, otherwise the guild's
// system channel. Overrides pointing at deleted channels are removed on the
// spot, so the override table never keeps a dangling reference past a
// resolution pass.
type Resolver struct {
	overrides database.ChannelStore
	guilds    GuildState
}

func NewResolver(overrides database.ChannelStore, guilds GuildState) *Resolver {
	return &Resolver{overrides: overrides, guilds: guilds}
}

func (r *Resolver) Resolve(guildID string) (string, error) {
	channelID, err := r.overrides.Get(guildID)
	switch {
	case err == nil:
		if r.guilds.ChannelExists(guildID, channelID) {
			return channelID, nil
		}
		if err := r.overrides.Delete(guildID); err != nil {
			return "", fmt.Errorf("failed to remove stale channel override: %w", err)
		}
	case !errors.Is(err, database.ErrNotFound):
		return "", err
	}

	if systemID, ok := r.guilds.SystemChannelID(guildID); ok {
		return systemID, nil
	}
	return "", ErrNoChannel
}
