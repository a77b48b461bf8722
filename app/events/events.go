// Package events handles guild gateway events that are not slash commands:
// streaming presence announcements and member join/leave notices. All of
// them announce in the guild system channel, matching how guild owners
// expect ambient notices to behave.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
	"github.com/jphmw/impbot/app/metrics"
	"github.com/jphmw/impbot/app/twitch"
)

const (
	embedFooter   = "Imp Bot 10000"
	lookupTimeout = 10 * time.Second
)

type TwitchSource interface {
	UserByLogin(ctx context.Context, login string) (*twitch.User, error)
}

type Sender interface {
	SendMessage(channelID, content string) error
	SendComplex(channelID string, data *discordgo.MessageSend) error
}

type GuildInfo interface {
	SystemChannelID(guildID string) (string, bool)
	GuildName(guildID string) string
}

// Handler reacts to presence and membership gateway events. Streaming
// announcements fire on the rising edge only: a per-user in-memory map
// remembers who is already live, so presence churn (game changes, status
// flips) while a stream stays up never re-announces it. The map resets on
// restart, which at worst re-announces streams already in progress.
type Handler struct {
	sender Sender
	guilds GuildInfo
	twitch TwitchSource

	mu        sync.Mutex
	streaming map[string]bool // "guild/user" currently live
}

// NewHandler builds a gateway event handler. A nil twitchClient disables
// stream announcements; membership notices fire either way.
func NewHandler(sender Sender, guilds GuildInfo, twitchClient TwitchSource) *Handler {
	return &Handler{
		sender:    sender,
		guilds:    guilds,
		twitch:    twitchClient,
		streaming: make(map[string]bool),
	}
}

// Register attaches the gateway handlers to a session.
func (h *Handler) Register(s *discordgo.Session) {
	s.AddHandler(h.OnPresenceUpdate)
	s.AddHandler(h.OnMemberAdd)
	s.AddHandler(h.OnMemberRemove)
}

func (h *Handler) OnPresenceUpdate(s *discordgo.Session, p *discordgo.PresenceUpdate) {
	if h.twitch == nil || p.User == nil || p.GuildID == "" {
		return
	}

	activity := findStreaming(p.Activities)
	key := p.GuildID + "/" + p.User.ID

	h.mu.Lock()
	wasLive := h.streaming[key]
	if activity == nil {
		delete(h.streaming, key)
	} else {
		h.streaming[key] = true
	}
	h.mu.Unlock()

	if activity == nil || wasLive {
		return
	}

	login := twitchLogin(activity.URL)
	if login == "" {
		return
	}

	channelID, ok := h.guilds.SystemChannelID(p.GuildID)
	if !ok {
		slog.Warn("No system channel for stream announcement", "guild", p.GuildID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	profile, err := h.twitch.UserByLogin(ctx, login)
	if err != nil {
		slog.Error("Twitch profile lookup failed", "login", login, "error", err)
		return
	}

	msg := &discordgo.MessageSend{
		Embed: buildStreamEmbed(activity, login, profile),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label: "Watch now!",
						Style: discordgo.LinkButton,
						URL:   activity.URL,
					},
				},
			},
		},
	}

	if err := h.sender.SendComplex(channelID, msg); err != nil {
		metrics.Inc(metrics.SendErrors)
		if errors.Is(err, bot.ErrForbidden) {
			slog.Warn("Missing permissions for stream announcement",
				"channel", channelID, "guild", p.GuildID)
		} else {
			slog.Error("Failed to send stream announcement", "login", login, "error", err)
		}
		return
	}

	metrics.Inc(metrics.StreamAnnouncements)
	slog.Info("Sent stream announcement", "login", login, "guild", p.GuildID)
}

func (h *Handler) OnMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	h.membership(m.GuildID, func(guildName string) string {
		return fmt.Sprintf("Welcome %s to %s!", displayName(m.Member), guildName)
	})
}

func (h *Handler) OnMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	h.membership(m.GuildID, func(guildName string) string {
		return fmt.Sprintf("%s has abandoned the cause and left %s!", displayName(m.Member), guildName)
	})
}

func (h *Handler) membership(guildID string, template func(guildName string) string) {
	channelID, ok := h.guilds.SystemChannelID(guildID)
	if !ok {
		return
	}

	if err := h.sender.SendMessage(channelID, template(h.guilds.GuildName(guildID))); err != nil {
		metrics.Inc(metrics.SendErrors)
		slog.Error("Failed to send membership notice", "guild", guildID, "error", err)
	}
}

func buildStreamEmbed(activity *discordgo.Activity, login string, profile *twitch.User) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       activity.Details,
		URL:         activity.URL,
		Description: fmt.Sprintf("Now streaming %s", activity.State),
		Color:       rand.Intn(0xFFFFFF + 1),
		Author: &discordgo.MessageEmbedAuthor{
			Name: fmt.Sprintf("%s is now live on Twitch!", profile.DisplayName),
			URL:  activity.URL,
		},
		Image:     &discordgo.MessageEmbedImage{URL: twitch.PreviewURL(login)},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: profile.ProfileImageURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
}

// findStreaming picks the first streaming activity from a presence, if any.
func findStreaming(activities []*discordgo.Activity) *discordgo.Activity {
	for _, a := range activities {
		if a != nil && a.Type == discordgo.ActivityTypeStreaming && a.URL != "" {
			return a
		}
	}
	return nil
}

// twitchLogin extracts the login name from a stream URL like
// https://www.twitch.tv/somestreamer. Non-Twitch URLs yield "".
func twitchLogin(rawURL string) string {
	trimmed := strings.TrimSuffix(rawURL, "/")
	idx := strings.Index(trimmed, "twitch.tv/")
	if idx < 0 {
		return ""
	}
	login := trimmed[idx+len("twitch.tv/"):]
	if login == "" || strings.Contains(login, "/") {
		return ""
	}
	return login
}

func displayName(m *discordgo.Member) string {
	if m == nil {
		return "Someone"
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		if m.User.GlobalName != "" {
			return m.User.GlobalName
		}
		return m.User.Username
	}
	return "Someone"
}
