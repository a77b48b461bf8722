package cfg

type Cfg struct {
	// Discord configuration
	DiscordToken string

	// Persistence
	DBPath string

	// Letterboxd polling
	PollInterval int

	// Local album playback
	AlbumsDir string

	// Dice-roll response variants
	VariantsFile string

	// Twitch API (stream announcements)
	TwitchClientID     string
	TwitchClientSecret string

	// Ops HTTP server
	Port string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
