package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jphmw/impbot/app/api"
	"github.com/jphmw/impbot/app/birthday"
	"github.com/jphmw/impbot/app/bot"
	"github.com/jphmw/impbot/app/cfg"
	"github.com/jphmw/impbot/app/database"
	"github.com/jphmw/impbot/app/events"
	"github.com/jphmw/impbot/app/fun"
	"github.com/jphmw/impbot/app/letterboxd"
	"github.com/jphmw/impbot/app/metrics"
	"github.com/jphmw/impbot/app/player"
	"github.com/jphmw/impbot/app/tasks"
	"github.com/jphmw/impbot/app/twitch"
)

func main() {
	// Local development reads secrets from .env; in production the
	// variables are already in the environment.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Imp Bot", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	follows := database.NewFollowRepository(db)
	birthdays := database.NewBirthdayRepository(db)
	letterboxdChannels := database.NewChannelRepository(db, "letterboxd_channels")
	birthdayChannels := database.NewChannelRepository(db, "birthday_channels")

	metrics.Init()

	b, err := bot.New(appCfg.DiscordToken)
	if err != nil {
		slog.Error("Failed to create Discord session", "error", err)
		os.Exit(1)
	}

	state := bot.NewSessionState(b.Session)
	dispatcher := bot.NewDispatcher(b.Session)

	// Letterboxd feed announcements
	fetcher := letterboxd.NewFetcher(&http.Client{}, appCfg.UserAgent)
	letterboxdResolver := bot.NewResolver(letterboxdChannels, state)
	poller := letterboxd.NewPoller(follows, letterboxdResolver, dispatcher, state, fetcher)
	letterboxdCommands := letterboxd.NewCommands(follows, letterboxdChannels, state, fetcher)
	b.RegisterCommand(letterboxdCommands.Definition(), letterboxdCommands.Handle)

	// Birthday notifications
	birthdayResolver := bot.NewResolver(birthdayChannels, state)
	notifier := birthday.NewNotifier(birthdays, birthdayResolver, dispatcher, state)
	birthdayCommands := birthday.NewCommands(birthdays, birthdayChannels, state)
	b.RegisterCommand(birthdayCommands.Definition(), birthdayCommands.Handle)

	// Album playback
	library := player.NewLibrary(appCfg.AlbumsDir)
	albumPlayer := player.NewPlayer(library)
	playerCommands := player.NewCommands(albumPlayer)
	playerDefs := playerCommands.Definitions()
	b.RegisterCommand(playerDefs[0], playerCommands.HandlePlay)
	b.RegisterCommand(playerDefs[1], playerCommands.HandleStop)
	b.RegisterCommand(playerDefs[2], playerCommands.HandleSkip)
	b.RegisterCommand(playerDefs[3], playerCommands.HandleQueue)
	b.RegisterAutocomplete("play", playerCommands.HandleAlbumAutocomplete)

	// Fun commands
	variants, err := fun.LoadVariants(appCfg.VariantsFile)
	if err != nil {
		slog.Error("Failed to load roll variants", "path", appCfg.VariantsFile, "error", err)
		os.Exit(1)
	}
	funCommands := fun.NewCommands(variants, fun.NewWikiClient(appCfg.UserAgent))
	funDefs := funCommands.Definitions()
	b.RegisterCommand(funDefs[0], funCommands.HandleRoll)
	b.RegisterCommand(funDefs[1], funCommands.HandleClown)
	b.RegisterCommand(funDefs[2], funCommands.HandleWiki)

	// Membership notices always run; stream announcements additionally need
	// Twitch credentials for the Helix profile lookup.
	var twitchSource events.TwitchSource
	if appCfg.TwitchClientID != "" && appCfg.TwitchClientSecret != "" {
		twitchSource = twitch.NewClient(appCfg.TwitchClientID, appCfg.TwitchClientSecret)
		slog.Info("Stream announcements enabled")
	} else {
		slog.Warn("Twitch credentials not set, stream announcements disabled")
	}
	eventHandler := events.NewHandler(dispatcher, state, twitchSource)
	eventHandler.Register(b.Session)

	if err := b.Start(); err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}
	defer b.Stop()

	scheduler := tasks.NewScheduler()
	scheduler.Every(time.Duration(appCfg.PollInterval)*time.Minute, poller)
	scheduler.DailyAt(0, 0, notifier)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Scheduler started",
		"poll_interval_minutes", appCfg.PollInterval, "birthday_check", "00:00 UTC")

	apiHandler := api.NewHandler(follows, birthdays, b)
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(apiHandler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Imp Bot started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler and gateway session stop via defers.
}
