package letterboxd

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
	"github.com/jphmw/impbot/app/database"
	"github.com/jphmw/impbot/app/metrics"
)

type ChannelResolver interface {
	Resolve(guildID string) (string, error)
}

type Sender interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
}

type MemberSource interface {
	Member(guildID, userID string) (*bot.Member, error)
}

type FeedFetcher interface {
	Fetch(ctx context.Context, username string) ([]Entry, error)
}

// Poller walks every followed profile once per scheduling tick, announces
// feed entries newer than the stored watermark, and advances the watermark.
// Failures never abort the tick: each follow degrades independently to
// "retry next tick".
type Poller struct {
	follows  database.FollowStore
	resolver ChannelResolver
	sender   Sender
	members  MemberSource
	fetcher  FeedFetcher
}

func NewPoller(follows database.FollowStore, resolver ChannelResolver, sender Sender,
	members MemberSource, fetcher FeedFetcher) *Poller {
	return &Poller{
		follows:  follows,
		resolver: resolver,
		sender:   sender,
		members:  members,
		fetcher:  fetcher,
	}
}

func (p *Poller) Name() string { return "letterboxd-poll" }

func (p *Poller) Run(ctx context.Context) error {
	follows, err := p.follows.All()
	if err != nil {
		return err
	}

	for _, follow := range follows {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		p.processFollow(ctx, follow)
	}

	metrics.Inc(metrics.FeedPolls)
	return nil
}

func (p *Poller) processFollow(ctx context.Context, follow database.Follow) {
	member, err := p.members.Member(follow.GuildID, follow.UserID)
	if err != nil {
		slog.Debug("Member not resolvable, skipping follow",
			"guild", follow.GuildID, "user", follow.UserID)
		return
	}

	channelID, err := p.resolver.Resolve(follow.GuildID)
	if err != nil {
		if errors.Is(err, bot.ErrNoChannel) {
			slog.Warn("No channel available for guild", "guild", follow.GuildID)
		} else {
			slog.Error("Channel resolution failed", "guild", follow.GuildID, "error", err)
		}
		return
	}

	entries, err := p.fetcher.Fetch(ctx, follow.Username)
	if err != nil {
		metrics.Inc(metrics.FeedFetchErrors)
		slog.Warn("Feed fetch failed, will retry next tick",
			"username", follow.Username, "error", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	for _, entry := range selectNew(entries, follow.LastGUID) {
		if !entry.Qualifies() {
			continue
		}

		err := p.sender.SendEmbed(channelID, buildEntryEmbed(member, entry))
		if errors.Is(err, bot.ErrForbidden) {
			metrics.Inc(metrics.SendErrors)
			slog.Warn("Missing permissions, aborting batch for this profile",
				"channel", channelID, "guild", follow.GuildID)
			break
		}
		if err != nil {
			metrics.Inc(metrics.SendErrors)
			slog.Error("Failed to send entry", "guid", entry.GUID, "error", err)
			continue
		}
		metrics.Inc(metrics.FeedPostsSent)
	}

	// Advance the watermark to the newest item seen, even when nothing
	// qualified, so non-qualifying noise is not re-scanned every tick.
	newest := entries[0].GUID
	if newest == "" || (follow.LastGUID != nil && *follow.LastGUID == newest) {
		return
	}
	if err := p.follows.UpdateLastGUID(follow.GuildID, follow.UserID, newest); err != nil {
		slog.Error("Failed to advance watermark",
			"guild", follow.GuildID, "user", follow.UserID, "error", err)
	}
}

// selectNew picks the entries newer than the watermark and returns them
// oldest-first. Entries come in newest-first; collection stops at the
// watermark, exclusive. With no watermark yet (first poll after a follow)
// only the single newest entry is eligible, so a fresh follow never floods
// the channel with backlog.
func selectNew(entries []Entry, lastGUID *string) []Entry {
	var fresh []Entry
	for _, e := range entries {
		if lastGUID != nil && e.GUID == *lastGUID {
			break
		}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return nil
	}
	if lastGUID == nil {
		fresh = fresh[:1]
	}
	slices.Reverse(fresh)
	return fresh
}
