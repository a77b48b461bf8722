package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Discord configuration
	DiscordToken string `long:"discord-token" env:"DISCORD_TOKEN" description:"Discord bot token (required)" required:"true"`

	// Persistence
	DBPath string `long:"db-path" env:"DB_PATH" default:"impbot.db" description:"Path to the SQLite database file"`

	// Letterboxd polling
	PollInterval int `long:"poll-interval" env:"POLL_INTERVAL" default:"30" description:"Letterboxd feed poll interval in minutes"`

	// Local album playback
	AlbumsDir string `long:"albums-dir" env:"ALBUMS_DIR" default:"./albums" description:"Directory containing album subdirectories with audio files"`

	// Dice-roll response variants
	VariantsFile string `long:"variants-file" env:"VARIANTS_FILE" default:"./variants.yml" description:"YAML file with per-user roll response variants (optional)"`

	// Twitch API (stream announcements)
	TwitchClientID     string `long:"twitch-client-id" env:"TWITCH_CLIENT_ID" description:"Twitch application client ID (optional)"`
	TwitchClientSecret string `long:"twitch-client-secret" env:"TWITCH_CLIENT_SECRET" description:"Twitch application client secret (optional)"`

	// Ops HTTP server
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP port for health and metrics endpoints"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"ImpBot/1.0" description:"User agent string for outbound HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DiscordToken:       raw.DiscordToken,
		DBPath:             raw.DBPath,
		PollInterval:       raw.PollInterval,
		AlbumsDir:          raw.AlbumsDir,
		VariantsFile:       raw.VariantsFile,
		TwitchClientID:     raw.TwitchClientID,
		TwitchClientSecret: raw.TwitchClientSecret,
		Port:               raw.Port,
		UserAgent:          raw.UserAgent,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	globalCfg = cfg

	return cfg, nil
}

// validate rejects values the flag parser accepts but the application
// cannot run with. A non-positive poll interval would panic the ticker.
func validate(cfg *Cfg) error {
	if cfg.PollInterval < 1 {
		return fmt.Errorf("poll interval must be at least 1 minute, got %d", cfg.PollInterval)
	}
	return nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
