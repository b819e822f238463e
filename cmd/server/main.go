package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"notehive/internal/adapters/api"
	"notehive/internal/adapters/db/memory"
	pgrepo "notehive/internal/adapters/db/postgres"
	appauth "notehive/internal/application/auth"
	appmedia "notehive/internal/application/media"
	appmsg "notehive/internal/application/message"
	appnote "notehive/internal/application/note"
	"notehive/internal/application/notification"
	appws "notehive/internal/application/workspace"
	"notehive/internal/config"
	domainauth "notehive/internal/domain/auth"
	domainmsg "notehive/internal/domain/message"
	domainnote "notehive/internal/domain/note"
	domainws "notehive/internal/domain/workspace"
)

//	@title			NoteHive API
//	@version		1.0
//	@description	Collaborative notes, workspaces and chat.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.LoadConfig()

	log.Info().
		Str("http_port", cfg.HTTPPort).
		Bool("db_enabled", cfg.Database.Enabled).
		Bool("dev_login_enabled", cfg.Auth.DevLoginEnabled).
		Msg("Starting NoteHive server")

	if cfg.Auth.JWTSecret == "" {
		log.Error().Msg("JWT_SECRET is not set, authenticated requests will be rejected")
	}

	// Initialize repositories (choose Postgres or in-memory)
	var userRepo domainauth.Repository
	var workspaceRepo domainws.Repository
	var noteRepo domainnote.Repository
	var messageRepo domainmsg.Repository
	var locker appws.Locker

	if cfg.Database.Enabled {
		log.Info().Str("dsn", cfg.Database.DSN).Msg("Initializing Postgres repositories")
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping postgres")
		}
		if err := pgrepo.RunMigrations(ctx, db, cfg.Database.Migrations); err != nil {
			log.Fatal().Err(err).Msg("run migrations")
		}

		pool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open pgx pool")
		}

		userRepo = pgrepo.NewUserRepository(db)
		workspaceRepo = pgrepo.NewWorkspaceRepository(db)
		noteRepo = pgrepo.NewNoteRepository(db)
		messageRepo = pgrepo.NewMessageRepository(db)
		locker = pgrepo.NewLockManager(pool)
	} else {
		log.Warn().Msg("DB disabled - using in-memory repositories")
		userRepo = memory.NewUserRepository()
		workspaceRepo = memory.NewWorkspaceRepository()
		noteRepo = memory.NewNoteRepository()
		messageRepo = memory.NewMessageRepository()
		locker = appws.NopLocker{}
	}

	// Initialize push notifications
	var notifier notification.Sender = notification.LogSender{}
	if cfg.Push.ProjectID != "" && cfg.Push.CredentialsJSON != "" {
		fcmSender, err := notification.NewFCMSender(context.Background(), cfg.Push.ProjectID, cfg.Push.CredentialsJSON)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize FCM, push notifications disabled")
		} else {
			notifier = fcmSender
			log.Info().Str("project_id", cfg.Push.ProjectID).Msg("FCM push notifications enabled")
		}
	} else {
		log.Warn().Msg("FCM not configured - push notifications are logged only")
	}

	// Initialize media storage
	mediaService, err := appmedia.NewService(cfg.Media.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("init media storage")
	}

	// Initialize services
	tokens := appauth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	verifier := appauth.NewGoogleVerifier(cfg.Auth.GoogleClientID)
	workspaceService := appws.NewService(workspaceRepo, userRepo, noteRepo, messageRepo, notifier, locker)
	authService := appauth.NewService(verifier, tokens, userRepo, workspaceService)
	noteService := appnote.NewService(noteRepo, workspaceRepo)
	messageService := appmsg.NewService(messageRepo, workspaceRepo, userRepo, notifier)

	// Initialize API handler
	handler := api.NewHandler(api.HandlerConfig{
		AuthService:      authService,
		WorkspaceService: workspaceService,
		NoteService:      noteService,
		MessageService:   messageService,
		MediaService:     mediaService,
		Users:            userRepo,
		Tokens:           tokens,
		MaxUploadBytes:   cfg.Media.MaxUploadBytes,
		DevLoginEnabled:  cfg.Auth.DevLoginEnabled,
	})

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	handler.RegisterRoutes(r, cfg.Media.Dir)

	// Start server
	log.Info().Msgf("Starting NoteHive server on port %s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
