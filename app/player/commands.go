package player

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
)

const (
	maxAutocompleteChoices = 25
	queueDisplayLimit      = 10
)

// Commands implements the playback slash commands: /play, /stop, /skip
// and /queue.
type Commands struct {
	player *Player
}

func NewCommands(player *Player) *Commands {
	return &Commands{player: player}
}

func (c *Commands) Definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "play",
			Description: "Play an album",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "album",
					Description:  "Select an album to play",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:        "stop",
			Description: "Stop playback and disconnect",
		},
		{
			Name:        "skip",
			Description: "Skip to the next track",
		},
		{
			Name:        "queue",
			Description: "Show the current queue",
		},
	}
}

func (c *Commands) HandlePlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !bot.InGuild(s, i) {
		return
	}

	voiceState, err := s.State.VoiceState(i.GuildID, invokerID(i))
	if err != nil || voiceState == nil || voiceState.ChannelID == "" {
		bot.RespondEphemeral(s, i, "You must be connected to a voice channel!")
		return
	}

	album := i.ApplicationCommandData().Options[0].StringValue()
	tracks := c.player.library.Tracks(album)
	if len(tracks) == 0 {
		bot.RespondEphemeral(s, i, fmt.Sprintf("No audio files found in album: %s", album))
		return
	}

	voice, err := s.ChannelVoiceJoin(i.GuildID, voiceState.ChannelID, false, true)
	if err != nil {
		slog.Error("Failed to join voice channel",
			"guild", i.GuildID, "channel", voiceState.ChannelID, "error", err)
		bot.RespondEphemeral(s, i, "Could not join your voice channel.")
		return
	}

	c.player.Enqueue(voice, tracks)
	bot.Respond(s, i, fmt.Sprintf("🎵 Playing album: **%s** (%d tracks)", album, len(tracks)))
}

func (c *Commands) HandleAlbumAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	input := strings.ToLower(i.ApplicationCommandData().Options[0].StringValue())

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, album := range c.player.library.Albums() {
		if !strings.Contains(strings.ToLower(album), input) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  album,
			Value: album,
		})
		if len(choices) == maxAutocompleteChoices {
			break
		}
	}

	bot.RespondChoices(s, i, choices)
}

func (c *Commands) HandleStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if c.player.Stop() {
		bot.Respond(s, i, "⏹️ Stopped playback")
	} else {
		bot.RespondEphemeral(s, i, "Not currently playing anything!")
	}
}

func (c *Commands) HandleSkip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if c.player.Skip() {
		bot.Respond(s, i, "⏭️ Skipped track")
	} else {
		bot.RespondEphemeral(s, i, "Not currently playing anything!")
	}
}

func (c *Commands) HandleQueue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	head, total := c.player.Queue().Snapshot(queueDisplayLimit)
	if total == 0 {
		bot.RespondEphemeral(s, i, "Queue is empty!")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Queue (%d tracks):**\n", total)
	for idx, track := range head {
		fmt.Fprintf(&sb, "%d. %s\n", idx+1, filepath.Base(track))
	}
	if total > queueDisplayLimit {
		fmt.Fprintf(&sb, "... and %d more", total-queueDisplayLimit)
	}

	bot.Respond(s, i, strings.TrimRight(sb.String(), "\n"))
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
