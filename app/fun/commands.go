// Package fun holds the novelty commands: /roll, /clown and /wiki random.
package fun

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/bwmarrin/discordgo"
	"github.com/jphmw/impbot/app/bot"
)

const (
	d20Sides         = 20
	wikiEmbedColor   = 0x95A5A6
	wikiExtractLimit = 500
	wikiIconURL      = "https://upload.wikimedia.org/wikipedia/commons/9/9f/Old_wikipedia_logo.png"
)

type Commands struct {
	variants *VariantTable
	wiki     *WikiClient

	roll func(sides int) int // 1..sides
}

func NewCommands(variants *VariantTable, wiki *WikiClient) *Commands {
	return &Commands{
		variants: variants,
		wiki:     wiki,
		roll:     func(sides int) int { return rand.Intn(sides) + 1 },
	}
}

func (c *Commands) Definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "roll",
			Description: "Rolls a d20",
		},
		{
			Name:        "clown",
			Description: "Identifies a clown!",
		},
		{
			Name:        "wiki",
			Description: "Wiki command group",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "random",
					Description: "Generates a random Wikipedia article",
				},
			},
		},
	}
}

func (c *Commands) HandleRoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	bot.Respond(s, i, c.rollMessage(invokerID(i), displayName(i)))
}

// rollMessage rolls the d20 and picks between the normal result line and
// the user's configured variant response.
func (c *Commands) rollMessage(userID, name string) string {
	result := fmt.Sprintf("> %s rolled a **%d**! :game_die:", name, c.roll(d20Sides))

	variant, ok := c.variants.Lookup(userID)
	if !ok {
		return result
	}
	if c.roll(variantChanceSides) <= variant.Chance {
		return variant.Message
	}
	return result
}

func (c *Commands) HandleClown(s *discordgo.Session, i *discordgo.InteractionCreate) {
	bot.RespondEmbed(s, i, &discordgo.MessageEmbed{
		Title: "Clown Identified",
		Image: &discordgo.MessageEmbedImage{URL: avatarURL(i)},
	})
}

func (c *Commands) HandleWiki(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]
	if sub.Name != "random" {
		return
	}

	if err := bot.DeferPublic(s, i); err != nil {
		slog.Error("Failed to defer interaction", "error", err)
		return
	}

	article, err := c.wiki.RandomArticle(context.Background())
	if err != nil {
		slog.Error("Random article fetch failed", "error", err)
		bot.FollowupEphemeral(s, i, "Wikipedia is not reachable right now, try again later.")
		return
	}

	extract := article.Extract
	if len([]rune(extract)) > wikiExtractLimit {
		extract = string([]rune(extract)[:wikiExtractLimit]) + "..."
	}

	embed := &discordgo.MessageEmbed{
		Title:       article.Title,
		URL:         article.URL(),
		Description: extract,
		Color:       wikiEmbedColor,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "Wikipedia",
			URL:     article.URL(),
			IconURL: wikiIconURL,
		},
	}
	if imageURL := article.ImageURL(); imageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}

	button := discordgo.Button{
		Label: "Read more about this bullshit",
		Style: discordgo.LinkButton,
		URL:   article.URL(),
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{button}},
		},
	}); err != nil {
		slog.Error("Failed to send article embed", "error", err)
	}
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

func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			if i.Member.User.GlobalName != "" {
				return i.Member.User.GlobalName
			}
			return i.Member.User.Username
		}
	}
	if i.User != nil {
		return i.User.Username
	}
	return "Someone"
}

func avatarURL(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.AvatarURL("")
	}
	if i.User != nil {
		return i.User.AvatarURL("")
	}
	return ""
}
