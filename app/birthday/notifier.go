package birthday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
	"github.com/jphmw/impbot/app/database"
	"github.com/jphmw/impbot/app/metrics"
)

const (
	embedColor  = 0xFFAC33
	embedFooter = "Imp Bot 10000"
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

// Notifier scans all stored birthdays once per daily tick and congratulates
// everyone whose (month, day) matches today in UTC. Date equality is the
// whole trigger: there is no watermark, so re-running within the same day
// re-sends. The scheduler fires it once per day, which is enough.
type Notifier struct {
	birthdays database.BirthdayStore
	resolver  ChannelResolver
	sender    Sender
	members   MemberSource

	now func() time.Time
}

func NewNotifier(birthdays database.BirthdayStore, resolver ChannelResolver,
	sender Sender, members MemberSource) *Notifier {
	return &Notifier{
		birthdays: birthdays,
		resolver:  resolver,
		sender:    sender,
		members:   members,
		now:       time.Now,
	}
}

func (n *Notifier) Name() string { return "birthday-check" }

func (n *Notifier) Run(ctx context.Context) error {
	today := n.now().UTC()

	due, err := n.birthdays.DueOn(int(today.Month()), today.Day())
	if err != nil {
		return err
	}

	for _, record := range due {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n.announce(record)
	}

	return nil
}

func (n *Notifier) announce(record database.Birthday) {
	member, err := n.members.Member(record.GuildID, record.UserID)
	if err != nil {
		slog.Debug("Member not resolvable, skipping birthday",
			"guild", record.GuildID, "user", record.UserID)
		return
	}

	channelID, err := n.resolver.Resolve(record.GuildID)
	if err != nil {
		if errors.Is(err, bot.ErrNoChannel) {
			slog.Warn("No birthday channel available for guild", "guild", record.GuildID)
		} else {
			slog.Error("Channel resolution failed", "guild", record.GuildID, "error", err)
		}
		return
	}

	if err := n.sender.SendEmbed(channelID, buildBirthdayEmbed(member)); err != nil {
		metrics.Inc(metrics.SendErrors)
		if errors.Is(err, bot.ErrForbidden) {
			slog.Warn("Missing permissions to send birthday message",
				"channel", channelID, "guild", record.GuildID)
		} else {
			slog.Error("Failed to send birthday message",
				"guild", record.GuildID, "user", record.UserID, "error", err)
		}
		return
	}

	metrics.Inc(metrics.BirthdayAnnouncements)
	slog.Info("Sent birthday message", "guild", record.GuildID, "user", member.DisplayName)
}

func buildBirthdayEmbed(member *bot.Member) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Happy Birthday!",
		Description: fmt.Sprintf(
			"Today is a special day! Let's all wish %s a wonderful birthday!", member.Mention),
		Color:     embedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: member.AvatarURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
}
