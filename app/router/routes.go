// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/handlers"
	"github.com/openmusic/api/app/middleware"
	"github.com/openmusic/api/config"
	"github.com/openmusic/api/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers bundles every handler the router mounts
type Handlers struct {
	Album         handlers.AlbumHandlerInterface
	Song          handlers.SongHandlerInterface
	User          handlers.UserHandlerInterface
	Auth          handlers.AuthHandlerInterface
	Playlist      handlers.PlaylistHandlerInterface
	Collaboration handlers.CollaborationHandlerInterface
	Export        handlers.ExportHandlerInterface
	Like          handlers.LikeHandlerInterface
	Upload        handlers.UploadHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      *config.ProductionConfig
	handlers Handlers
	authMW   *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.ProductionConfig, h Handlers, authMW *middleware.AuthMiddleware) Router {
	app := fiber.New(fiber.Config{
		AppName:      "OpenMusic API",
		ServerHeader: "OpenMusic",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimitBytes,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:      app,
		cfg:      cfg,
		handlers: h,
		authMW:   authMW,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	r.app.Get("/health", r.healthCheck)
	if r.cfg.Metrics.Enabled {
		r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	r.app.Use(limiter.New(limiter.Config{
		Max:        r.cfg.Server.RateLimitPerMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(dto.FailEnvelope("Too many requests. Please try again later."))
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))

	authenticate := r.authMW.Authenticate()

	// Catalog
	r.app.Post("/albums", r.handlers.Album.CreateAlbum)
	r.app.Get("/albums/:id", r.handlers.Album.GetAlbum)
	r.app.Put("/albums/:id", r.handlers.Album.UpdateAlbum)
	r.app.Delete("/albums/:id", r.handlers.Album.DeleteAlbum)
	r.app.Post("/albums/:id/covers", r.handlers.Upload.UploadAlbumCover)

	// Likes: reading is public, liking needs a session
	r.app.Get("/albums/:id/likes", r.handlers.Like.GetLikesCount)
	r.app.Post("/albums/:id/likes", authenticate, r.handlers.Like.AddLike)
	r.app.Delete("/albums/:id/likes", authenticate, r.handlers.Like.DeleteLike)

	r.app.Post("/songs", r.handlers.Song.CreateSong)
	r.app.Get("/songs", r.handlers.Song.ListSongs)
	r.app.Get("/songs/:id", r.handlers.Song.GetSong)
	r.app.Put("/songs/:id", r.handlers.Song.UpdateSong)
	r.app.Delete("/songs/:id", r.handlers.Song.DeleteSong)

	// Accounts and sessions
	r.app.Post("/users", r.handlers.User.CreateUser)
	r.app.Post("/authentications", r.handlers.Auth.Login)
	r.app.Put("/authentications", r.handlers.Auth.RefreshAccessToken)
	r.app.Delete("/authentications", r.handlers.Auth.Logout)

	// Playlists, all protected
	r.app.Post("/playlists", authenticate, r.handlers.Playlist.CreatePlaylist)
	r.app.Get("/playlists", authenticate, r.handlers.Playlist.ListPlaylists)
	r.app.Delete("/playlists/:id", authenticate, r.handlers.Playlist.DeletePlaylist)
	r.app.Post("/playlists/:id/songs", authenticate, r.handlers.Playlist.AddSongToPlaylist)
	r.app.Get("/playlists/:id/songs", authenticate, r.handlers.Playlist.GetSongsFromPlaylist)
	r.app.Delete("/playlists/:id/songs", authenticate, r.handlers.Playlist.DeleteSongFromPlaylist)
	r.app.Get("/playlists/:id/activities", authenticate, r.handlers.Playlist.GetActivities)

	r.app.Post("/collaborations", authenticate, r.handlers.Collaboration.AddCollaboration)
	r.app.Delete("/collaborations", authenticate, r.handlers.Collaboration.DeleteCollaboration)

	r.app.Post("/export/playlists/:id", authenticate, r.handlers.Export.ExportPlaylist)

	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"X-Data-Source",
		},
		AllowCredentials: true,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			contentType := c.Get("Content-Type")
			return contains(contentType, "image/") ||
				contains(contentType, "video/") ||
				contains(contentType, "audio/")
		},
	}))

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.SuccessEnvelope("Service is healthy", fiber.Map{
		"status":    "ok",
		"timestamp": utils.UTCNow().Unix(),
		"service":   "openmusic-api",
	}))
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).
		JSON(dto.FailEnvelope("Route not found"))
}

// errorHandler is the Fiber-level fallback for errors no handler mapped
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fiberErr, ok := err.(*fiber.Error); ok {
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(code).JSON(dto.ErrorEnvelope("Internal server error"))
	}
	return c.Status(code).JSON(dto.FailEnvelope(err.Error()))
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(bytes)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
