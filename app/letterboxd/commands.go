package letterboxd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
	"github.com/jphmw/impbot/app/database"
)

// Commands implements the /letterboxd command group.
type Commands struct {
	follows   database.FollowStore
	overrides database.ChannelStore
	members   MemberSource
	fetcher   FeedFetcher
}

func NewCommands(follows database.FollowStore, overrides database.ChannelStore,
	members MemberSource, fetcher FeedFetcher) *Commands {
	return &Commands{
		follows:   follows,
		overrides: overrides,
		members:   members,
		fetcher:   fetcher,
	}
}

func (c *Commands) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "letterboxd",
		Description: "Letterboxd feed commands",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "follow",
				Description: "Link your Letterboxd profile",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "username",
						Description: "Your Letterboxd username",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "unfollow",
				Description: "Unlink your Letterboxd profile",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "channel",
				Description: "Set the Letterboxd announcement channel (admin only)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "The channel for Letterboxd posts (leave empty to reset to system channel)",
						ChannelTypes: []discordgo.ChannelType{
							discordgo.ChannelTypeGuildText,
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show all followed Letterboxd users in this server",
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
	case "follow":
		c.handleFollow(s, i, sub)
	case "unfollow":
		c.handleUnfollow(s, i)
	case "channel":
		c.handleChannel(s, i, sub)
	case "list":
		c.handleList(s, i)
	}
}

func (c *Commands) handleFollow(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	username := sub.Options[0].StringValue()

	// Validating the profile needs a network round trip, so acknowledge
	// first and follow up.
	if err := bot.Defer(s, i); err != nil {
		slog.Error("Failed to defer interaction", "error", err)
		return
	}

	if _, err := c.fetcher.Fetch(context.Background(), username); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			bot.FollowupEphemeral(s, i, fmt.Sprintf(
				"Could not find a Letterboxd profile for **%s**. "+
					"Make sure the username is correct and the profile is public.", username))
			return
		}
		slog.Error("Profile validation fetch failed", "username", username, "error", err)
		bot.FollowupEphemeral(s, i, "Letterboxd is not reachable right now, try again later.")
		return
	}

	if err := c.follows.Upsert(i.GuildID, invokerID(i), username); err != nil {
		slog.Error("Failed to store follow", "error", err)
		bot.FollowupEphemeral(s, i, "Something went wrong saving your profile.")
		return
	}

	bot.FollowupEphemeral(s, i, fmt.Sprintf(
		"Now following **%s** on Letterboxd! "+
			"New rated films and reviews will be posted automatically.", username))
}

func (c *Commands) handleUnfollow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	removed, err := c.follows.Delete(i.GuildID, invokerID(i))
	if err != nil {
		slog.Error("Failed to delete follow", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong removing your profile.")
		return
	}

	if removed {
		bot.RespondEphemeral(s, i, "Your Letterboxd profile has been unlinked.")
	} else {
		bot.RespondEphemeral(s, i, "You don't have a Letterboxd profile linked in this server.")
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
		bot.RespondEphemeral(s, i, fmt.Sprintf("Letterboxd posts will now be sent to <#%s>.", channel.ID))
		return
	}

	if err := c.overrides.Delete(i.GuildID); err != nil {
		slog.Error("Failed to reset channel override", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong resetting the channel.")
		return
	}

	if guild, err := s.State.Guild(i.GuildID); err == nil && guild.SystemChannelID != "" {
		bot.RespondEphemeral(s, i, fmt.Sprintf(
			"Letterboxd channel reset. Posts will use the system channel (<#%s>).", guild.SystemChannelID))
	} else {
		bot.RespondEphemeral(s, i,
			"Letterboxd channel reset, but this server has no system channel configured. "+
				"Please set one with `/letterboxd channel` or configure a system channel in server settings.")
	}
}

func (c *Commands) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	follows, err := c.follows.ListByGuild(i.GuildID)
	if err != nil {
		slog.Error("Failed to list follows", "error", err)
		bot.RespondEphemeral(s, i, "Something went wrong listing profiles.")
		return
	}
	if len(follows) == 0 {
		bot.RespondEphemeral(s, i, "No one in this server has linked their Letterboxd profile yet!")
		return
	}

	var lines []string
	for _, f := range follows {
		member, err := c.members.Member(f.GuildID, f.UserID)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s -- [%s](https://letterboxd.com/%s/)",
			member.DisplayName, f.Username, f.Username))
	}
	if len(lines) == 0 {
		bot.RespondEphemeral(s, i, "No linked Letterboxd profiles found for current server members.")
		return
	}

	bot.RespondEmbedEphemeral(s, i, buildProfileListEmbed(lines))
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
