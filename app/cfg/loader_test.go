package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestValidatePollInterval(t *testing.T) {
	cases := []struct {
		interval int
		valid    bool
	}{
		{0, false},
		{-5, false},
		{1, true},
		{30, true},
	}

	for _, c := range cases {
		err := validate(&Cfg{PollInterval: c.interval})
		if c.valid && err != nil {
			t.Errorf("validate rejected poll interval %d: %v", c.interval, err)
		}
		if !c.valid && err == nil {
			t.Errorf("validate accepted poll interval %d", c.interval)
		}
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		DiscordToken:       "test-token",
		DBPath:             "test.db",
		PollInterval:       15,
		AlbumsDir:          "./albums",
		VariantsFile:       "./variants.yml",
		TwitchClientID:     "twitch-id",
		TwitchClientSecret: "twitch-secret",
		Port:               "8080",
		UserAgent:          "Test Agent",
		Debug:              true,
		Version:            "test-version",
	}

	if cfg.DiscordToken != "test-token" {
		t.Errorf("Expected token 'test-token', got '%s'", cfg.DiscordToken)
	}
	if cfg.DBPath != "test.db" {
		t.Errorf("Expected DB path 'test.db', got '%s'", cfg.DBPath)
	}
	if cfg.PollInterval != 15 {
		t.Errorf("Expected poll interval 15, got %d", cfg.PollInterval)
	}
	if cfg.AlbumsDir != "./albums" {
		t.Errorf("Expected albums dir './albums', got '%s'", cfg.AlbumsDir)
	}
	if cfg.VariantsFile != "./variants.yml" {
		t.Errorf("Expected variants file './variants.yml', got '%s'", cfg.VariantsFile)
	}
	if cfg.TwitchClientID != "twitch-id" {
		t.Errorf("Expected Twitch client ID 'twitch-id', got '%s'", cfg.TwitchClientID)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
