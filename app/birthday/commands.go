package birthday

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
	"github.com/jphmw/impbot/app/database"
)

const maxListEntries = 15

// Commands implements the /birthday command group.
type Commands struct {
	birthdays database.BirthdayStore
	overrides database.ChannelStore
	members   MemberSource

	now func() time.Time
}

func NewCommands(birthdays database.BirthdayStore, overrides database.ChannelStore,
	members MemberSource) *Commands {
	return &Commands{
		birthdays: birthdays,
		overrides: overrides,
		members:   members,
		now:       time.Now,
	}
}

func (c *Commands) Definition() *discordgo.ApplicationCommand {
	monthChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 12)
	for m := 1; m <= 12; m++ {
		monthChoices = append(monthChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  monthName(m),
			Value: m,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        "birthday",
		Description: "Birthday commands",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Set your birthday (month and day)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "month",
						Description: "Month",
						Required:    true,
						Choices:     monthChoices,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "day",
						Description: "Day of the month (1-31)",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove your birthday",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "check",
				Description: "Check a birthday",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "member",
						Description: "The member to check (defaults to yourself)",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "channel",
				Description: "Set the birthday announcement channel (admin only)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "The channel for birthday announcements (leave empty to reset to system channel)",
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show upcoming birthdays in this server",
			},
		},
	}
}

func (c *Commands) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !bot.InGuild(s, i) {
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "set":
		c.handleSet(s, i, sub)
	case "remove":
		c.handleRemove(s, i)
	case "check":
		c.handleCheck(s, i, sub)
	case "channel":
		c.handleChannel(s, i, sub)
	case "list":
		c.handleList(s, i)
	}
}

func (c *Commands) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	month := int(sub.Options[0].IntValue())
	day := int(sub.Options[1].IntValue())

	if !ValidDate(month, day) {
		bot.RespondEphemeral(s, i, fmt.Sprintf(
			"Invalid day! %s has days 1-%d.", monthName(month), MaxDay(month)))
		return
	}

	if err := c.birthdays.Upsert(i.GuildID, invokerID(i), month, day); err != nil {
		slog.Error("Failed to store birthday", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong saving your birthday.")
		return
	}

	bot.RespondEphemeral(s, i, fmt.Sprintf(
		"Your birthday has been set to **%s %d**!", monthName(month), day))
}

func (c *Commands) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	removed, err := c.birthdays.Delete(i.GuildID, invokerID(i))
	if err != nil {
		slog.Error("Failed to delete birthday", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong removing your birthday.")
		return
	}

	if removed {
		bot.RespondEphemeral(s, i, "Your birthday has been removed.")
	} else {
		bot.RespondEphemeral(s, i, "You don't have a birthday set in this server.")
	}
}

func (c *Commands) handleCheck(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	targetID := invokerID(i)
	if len(sub.Options) > 0 {
		targetID = sub.Options[0].UserValue(nil).ID
	}
	self := targetID == invokerID(i)

	record, err := c.birthdays.Get(i.GuildID, targetID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		slog.Error("Failed to look up birthday", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong looking up that birthday.")
		return
	}

	name := targetID
	if member, merr := c.members.Member(i.GuildID, targetID); merr == nil {
		name = member.DisplayName
	}

	if record != nil {
		bot.RespondEphemeral(s, i, fmt.Sprintf(
			"%s's birthday is **%s %d**!", name, monthName(record.Month), record.Day))
		return
	}

	if self {
		bot.RespondEphemeral(s, i, "You haven't set your birthday yet! Use `/birthday set` to set it.")
	} else {
		bot.RespondEphemeral(s, i, fmt.Sprintf("%s hasn't set their birthday.", name))
	}
}

func (c *Commands) handleChannel(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	if !bot.HasManageGuild(i) {
		bot.RespondEphemeral(s, i, "You need the Manage Server permission to do that.")
		return
	}

	if len(sub.Options) > 0 {
		channel := sub.Options[0].ChannelValue(s)
		if err := c.overrides.Set(i.GuildID, channel.ID); err != nil {
			slog.Error("Failed to set channel override", "error", err)
			bot.RespondEphemeral(s, i, "Something went wrong saving the channel.")
			return
		}
		bot.RespondEphemeral(s, i, fmt.Sprintf(
			"Birthday announcements will now be sent to <#%s>.", channel.ID))
		return
	}

	if err := c.overrides.Delete(i.GuildID); err != nil {
		slog.Error("Failed to reset channel override", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong resetting the channel.")
		return
	}

	if guild, err := s.State.Guild(i.GuildID); err == nil && guild.SystemChannelID != "" {
		bot.RespondEphemeral(s, i, fmt.Sprintf(
			"Birthday channel reset. Announcements will use the system channel (<#%s>).",
			guild.SystemChannelID))
	} else {
		bot.RespondEphemeral(s, i,
			"Birthday channel reset, but this server has no system channel configured. "+
				"Please set one with `/birthday channel` or configure a system channel in server settings.")
	}
}

func (c *Commands) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	records, err := c.birthdays.ListByGuild(i.GuildID)
	if err != nil {
		slog.Error("Failed to list birthdays", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong listing birthdays.")
		return
	}
	if len(records) == 0 {
		bot.RespondEphemeral(s, i, "No birthdays have been set in this server yet!")
		return
	}

	today := c.now().UTC()
	rotated := rotateByToday(records, int(today.Month()), today.Day())

	var lines []string
	for _, r := range rotated {
		member, merr := c.members.Member(r.GuildID, r.UserID)
		if merr != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s -- %s %d", member.DisplayName, monthName(r.Month), r.Day))
	}
	if len(lines) == 0 {
		bot.RespondEphemeral(s, i, "No birthdays found for current server members.")
		return
	}

	description := strings.Join(truncateLines(lines, maxListEntries), "\n")
	if len(lines) > maxListEntries {
		description += fmt.Sprintf("\n\n*...and %d more*", len(lines)-maxListEntries)
	}

	bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
		Title:       "Upcoming Birthdays",
		Description: description,
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
	})
}

// rotateByToday reorders (month, day)-sorted records so dates on or after
// today come first, followed by the ones already passed this year. Within
// each half the calendar order is preserved, so the list reads as a
// full-year rotation starting from today.
func rotateByToday(records []database.Birthday, month, day int) []database.Birthday {
	var upcoming, passed []database.Birthday
	for _, r := range records {
		if r.Month > month || (r.Month == month && r.Day >= day) {
			upcoming = append(upcoming, r)
		} else {
			passed = append(passed, r)
		}
	}
	return append(upcoming, passed...)
}

func truncateLines(lines []string, max int) []string {
	if len(lines) > max {
		return lines[:max]
	}
	return lines
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
