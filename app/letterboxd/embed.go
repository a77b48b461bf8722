package letterboxd

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
)

const (
	embedColor  = 0x00D278
	embedFooter = "Imp Bot 10000"
)

func buildEntryEmbed(member *bot.Member, e Entry) *discordgo.MessageEmbed {
	filmTitle := e.FilmTitle
	if filmTitle == "" {
		filmTitle = "Unknown Title"
	}
	filmYear := e.FilmYear
	if filmYear == "" {
		filmYear = "????"
	}

	var parts []string
	if e.Rating != nil {
		parts = append(parts, Stars(*e.Rating))
	}
	if e.Rewatch {
		parts = append(parts, "\U0001F501 Rewatch")
	}
	if review := ExtractReview(e.Description); review != "" {
		parts = append(parts, "\n"+review)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s (%s)", filmTitle, filmYear),
		URL:         e.Link,
		Description: strings.Join(parts, "\n"),
		Color:       embedColor,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    member.DisplayName,
			IconURL: member.AvatarURL,
		},
		Footer: &discordgo.MessageEmbedFooter{Text: embedFooter},
	}

	if poster := ExtractPosterURL(e.Description); poster != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: poster}
	}

	return embed
}

func buildProfileListEmbed(lines []string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Letterboxd Profiles",
		Description: strings.Join(lines, "\n"),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
}
