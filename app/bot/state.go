package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Member is the slice of guild-member data notification embeds need.
type Member struct {
	DisplayName string
	Mention     string
	AvatarURL   string
}

// SessionState adapts the discordgo state cache to the lookup interfaces the
// pollers depend on, keeping them testable without a live gateway connection.
type SessionState struct {
	session *discordgo.Session
}

func NewSessionState(session *discordgo.Session) *SessionState {
	return &SessionState{session: session}
}

var _ GuildState = (*SessionState)(nil)

func (s *SessionState) ChannelExists(guildID, channelID string) bool {
	channel, err := s.session.State.Channel(channelID)
	if err != nil {
		return false
	}
	return channel.GuildID == guildID
}

func (s *SessionState) SystemChannelID(guildID string) (string, bool) {
	guild, err := s.session.State.Guild(guildID)
	if err != nil || guild.SystemChannelID == "" {
		return "", false
	}
	return guild.SystemChannelID, true
}

func (s *SessionState) GuildName(guildID string) string {
	guild, err := s.session.State.Guild(guildID)
	if err != nil {
		return "the server"
	}
	return guild.Name
}

// Member resolves a guild member from the state cache, falling back to the
// REST API on a cold cache.
func (s *SessionState) Member(guildID, userID string) (*Member, error) {
	m, err := s.session.State.Member(guildID, userID)
	if err != nil {
		m, err = s.session.GuildMember(guildID, userID)
		if err != nil {
			return nil, err
		}
	}

	name := m.Nick
	if name == "" && m.User != nil {
		name = m.User.GlobalName
		if name == "" {
			name = m.User.Username
		}
	}

	return &Member{
		DisplayName: name,
		Mention:     m.Mention(),
		AvatarURL:   m.AvatarURL(""),
	}, nil
}
