// Package bot wraps the Discord session: command routing, channel
// resolution, and notification dispatch with a permission-aware error
// taxonomy.
package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Bot owns the gateway session and routes interactions to registered
// handlers by top-level command name.
type Bot struct {
	Session      *discordgo.Session
	commands     []*discordgo.ApplicationCommand
	handlers     map[string]CommandHandler
	autocomplete map[string]CommandHandler
}

func New(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildPresences |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages

	return &Bot{
		Session:      session,
		handlers:     make(map[string]CommandHandler),
		autocomplete: make(map[string]CommandHandler),
	}, nil
}

// RegisterCommand queues a slash command for registration at startup and
// binds its handler.
func (b *Bot) RegisterCommand(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	b.commands = append(b.commands, cmd)
	b.handlers[cmd.Name] = handler
}

func (b *Bot) RegisterAutocomplete(commandName string, handler CommandHandler) {
	b.autocomplete[commandName] = handler
}

// Start opens the gateway connection and registers the queued application
// commands globally.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.onInteractionCreate)
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Logged in", "user", r.User.Username)
	})

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(
		b.Session.State.User.ID, "", b.commands); err != nil {
		b.Session.Close()
		return fmt.Errorf("failed to register commands: %w", err)
	}
	slog.Info("Registered application commands", "count", len(b.commands))

	return nil
}

func (b *Bot) Stop() error {
	return b.Session.Close()
}

// Connected reports whether the gateway session is established.
func (b *Bot) Connected() bool {
	return b.Session.State != nil && b.Session.State.User != nil
}

func (b *Bot) GuildCount() int {
	if b.Session.State == nil {
		return 0
	}
	return len(b.Session.State.Guilds)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if handler, ok := b.handlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		if handler, ok := b.autocomplete[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	}
}
