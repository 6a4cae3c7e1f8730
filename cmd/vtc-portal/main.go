package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"vtc-portal/internal/api"
	"vtc-portal/internal/application"
	"vtc-portal/internal/booking"
	"vtc-portal/internal/buildinfo"
	"vtc-portal/internal/config"
	"vtc-portal/internal/db/sqlite"
	"vtc-portal/internal/discord"
	"vtc-portal/internal/document"
	"vtc-portal/internal/handler"
	"vtc-portal/internal/ratelimit"
	"vtc-portal/internal/shutdown"
	"vtc-portal/internal/truckershub"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vtc-portal: %v\n", err)
		os.Exit(1)
	}
}

// run wires the portal and serves until an exit signal or a server failure.
// Errors are returned rather than fatal so deferred cleanup always runs.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := newLogger(cfg.LogLevel)
	log.Info().Str("version", buildinfo.VersionWithPrefix()).Str("commit", buildinfo.ShortCommitID()).Msg("starting vtc portal")

	ctx, stop := shutdown.NotifyOnExitSignal(context.Background())
	defer stop()

	// infra
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open %s document store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	webhook := discord.NewWebhookClient(cfg.DiscordWebhookURL, httpClient)
	if !webhook.Configured() {
		log.Warn().Msg("DISCORD_WEBHOOK_URL is not set, notifications are disabled")
	}
	notifier := discord.NewNotifier(webhook, cfg.VTCName, log)
	hub := truckershub.NewClient(cfg.TruckersHubBaseURL, cfg.TruckersHubAPIKey, httpClient, log)

	redisClient := openRedis(ctx, cfg.RedisURL, log)
	var submitLimiter *ratelimit.RedisLimiter
	if redisClient != nil {
		defer redisClient.Close()
		submitLimiter = ratelimit.NewRedisLimiter(redisClient, cfg.SubmitRateLimit, cfg.SubmitRateWindow, "vtc:submit")
	}

	// usecase
	applicationUsecase := application.NewApplicationUsecase(store, notifier, log, application.WithStaffAvatar(cfg.StaffAvatarURL))
	bookingUsecase := booking.NewBookingUsecase(store, notifier, log)

	// discord
	if cfg.DiscordBotToken != "" {
		var sm discord.SessionManager
		if err := openDiscord(&sm, cfg.DiscordBotToken, applicationUsecase, log); err != nil {
			return fmt.Errorf("failed to connect to Discord: %w", err)
		}
		defer sm.Close()
		log.Info().Msg("discord bot started successfully")
	} else {
		log.Info().Msg("DISCORD_BOT_TOKEN is not set, review buttons are inactive")
	}

	// http
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouters(&api.Routers{
		Applications:   applicationUsecase,
		Bookings:       bookingUsecase,
		TruckersHub:    hub,
		SubmitLimiter:  submitLimiter,
		AdminToken:     cfg.AdminToken,
		TrustedProxies: cfg.TrustedProxies,
		Logger:         log,
	})
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}
	log.Info().Msg("shutdown complete")
	return runErr
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}

// openStore picks the document backend. The sqlite backend is seeded once
// from DATA_DIR so switching drivers keeps existing documents.
func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (document.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory document store, data is lost on exit")
		return document.NewMemoryStore(), func() {}, nil
	case config.StoreSQLite:
		db, err := sqlite.InitDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store := sqlite.NewDocumentStore(db)
		seeded, err := sqlite.SeedDocuments(ctx, sqlite.NewTxManager(db), store, document.NewFileStore(cfg.DataDir),
			document.CollectionApplications, document.CollectionStaff, document.CollectionEvents)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to seed sqlite store: %w", err)
		}
		for _, collection := range seeded {
			log.Info().Str("collection", string(collection)).Msg("seeded sqlite store from data dir")
		}
		return store, func() { db.Close() }, nil
	default:
		return document.NewFileStore(cfg.DataDir), func() {}, nil
	}
}

func openRedis(ctx context.Context, redisURL string, log zerolog.Logger) *redis.Client {
	if redisURL == "" {
		log.Info().Msg("REDIS_URL is not set, submissions are not rate limited")
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, submissions are not rate limited")
		return nil
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, submissions are not rate limited")
		_ = client.Close()
		return nil
	}
	return client
}

func openDiscord(sm *discord.SessionManager, token string, applications *application.ApplicationUsecase, log zerolog.Logger) error {
	// handler
	acceptCmd := handler.NewAcceptApplicationCommand(applications, log)
	rejectCmd := handler.NewRejectApplicationCommand(applications, log)
	interviewCmd := handler.NewInterviewApplicationCommand()
	statusCmd := handler.NewStatusSlashCommand(applications)
	versionCmd := handler.NewVersionSlashCommand()

	interactionDispatcher := &discord.InteractionDispatcher{
		Listeners: []discord.InteractionListener{
			acceptCmd,
			rejectCmd,
			interviewCmd,
			statusCmd,
			versionCmd,
		},
		Logger: log.With().Str("component", "discord").Logger(),
	}

	sessionConfig, err := discord.
		NewSessionConfig(
			discord.WithToken(token),
			discord.WithIntent(discordgo.IntentGuilds),
			discord.WithInteractionCreateHandler(interactionDispatcher.OnInteractionCreate),
			discord.WithSlashCommand(statusCmd),
			discord.WithSlashCommand(versionCmd),
		)
	if err != nil {
		return fmt.Errorf("failed to create session config: %w", err)
	}

	return sm.Open(sessionConfig)
}
