// Package main provides the main entry point for the OpenMusic API
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openmusic/api/app/handlers"
	"github.com/openmusic/api/app/middleware"
	"github.com/openmusic/api/app/router"
	"github.com/openmusic/api/app/services"
	"github.com/openmusic/api/app/worker"
	businessflow "github.com/openmusic/api/business_flow"
	"github.com/openmusic/api/config"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting OpenMusic API...")

	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	utils.ConfigureLogger(
		cfg.Logging.Output,
		cfg.Logging.FilePath,
		cfg.Logging.MaxSizeMB,
		cfg.Logging.MaxBackups,
		cfg.Logging.MaxAgeDays,
		cfg.Logging.Compress,
	)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers before closing the server
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Album{},
		&models.Song{},
		&models.User{},
		&models.Authentication{},
		&models.Playlist{},
		&models.Collaboration{},
		&models.PlaylistSong{},
		&models.PlaylistActivity{},
		&models.UserAlbumLike{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeApplication wires repositories, services, flows, handlers,
// and background workers together
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Repositories
	albumRepo := repository.NewAlbumRepository(db)
	songRepo := repository.NewSongRepository(db)
	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthenticationRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	collabRepo := repository.NewCollaborationRepository(db)
	memberRepo := repository.NewPlaylistSongRepository(db)
	activityRepo := repository.NewPlaylistActivityRepository(db)
	likeRepo := repository.NewUserAlbumLikeRepository(db)

	// Services
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	cache := services.NewRedisCacheService(cfg.Cache.Addr(), cfg.Cache.Password, cfg.Cache.DB)
	stopFuncs = append(stopFuncs, func() {
		if err := cache.Close(); err != nil {
			log.Printf("Failed to close cache: %v", err)
		}
	})

	producer := services.NewRabbitMQProducer(cfg.Queue.URL)
	stopFuncs = append(stopFuncs, func() {
		if err := producer.Close(); err != nil {
			log.Printf("Failed to close producer: %v", err)
		}
	})

	storage, err := services.NewMinioStorageService(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.PublicURL,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}
	if err := storage.EnsureBucket(context.Background()); err != nil {
		log.Printf("Failed to ensure storage bucket, uploads may fail: %v", err)
	}

	mail := services.NewSMTPMailService(
		cfg.Email.Host,
		cfg.Email.Port,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.FromEmail,
	)

	// Business flows
	albumFlow := businessflow.NewAlbumFlow(albumRepo, songRepo, cache, db)
	songFlow := businessflow.NewSongFlow(songRepo, albumRepo, db)
	userFlow := businessflow.NewUserFlow(userRepo, cfg.Security.BcryptCost, db)
	authFlow := businessflow.NewAuthFlow(userRepo, authRepo, tokenService, db)
	playlistFlow := businessflow.NewPlaylistFlow(playlistRepo, songRepo, userRepo, memberRepo, collabRepo, activityRepo, db)
	collaborationFlow := businessflow.NewCollaborationFlow(collabRepo, playlistRepo, userRepo, db)
	exportFlow := businessflow.NewExportFlow(playlistRepo, producer, cfg.Queue.ExportQueue, db)
	likeFlow := businessflow.NewLikeFlow(likeRepo, albumRepo, cache, cfg.Cache.LikesTTL, db)
	uploadFlow := businessflow.NewUploadFlow(albumRepo, storage, cfg.Storage.MaxCoverBytes, db)

	// Export consumer
	if cfg.Queue.ConsumerEnabled {
		consumer := worker.NewExportConsumer(cfg.Queue.URL, cfg.Queue.ExportQueue, playlistRepo, songRepo, mail)
		stopConsumer := consumer.Start(context.Background())
		stopFuncs = append(stopFuncs, stopConsumer)
	}

	// HTTP layer
	authMW := middleware.NewAuthMiddleware(tokenService)
	r := router.NewFiberRouter(cfg, router.Handlers{
		Album:         handlers.NewAlbumHandler(albumFlow),
		Song:          handlers.NewSongHandler(songFlow),
		User:          handlers.NewUserHandler(userFlow),
		Auth:          handlers.NewAuthHandler(authFlow),
		Playlist:      handlers.NewPlaylistHandler(playlistFlow),
		Collaboration: handlers.NewCollaborationHandler(collaborationFlow),
		Export:        handlers.NewExportHandler(exportFlow),
		Like:          handlers.NewLikeHandler(likeFlow),
		Upload:        handlers.NewUploadHandler(uploadFlow),
	}, authMW)

	return &Application{
		router:    r,
		config:    cfg,
		server:    r.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
