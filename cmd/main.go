package main

import (
	"context"
	"fmt"
	"log"

	"maintenance-gate/internal/config"
	"maintenance-gate/internal/db"
	"maintenance-gate/internal/handlers"
	"maintenance-gate/internal/middleware"
	"maintenance-gate/internal/routes"
	"maintenance-gate/internal/settings"
	"maintenance-gate/internal/site"
	"maintenance-gate/internal/users"
	"maintenance-gate/pkg/csrf"
	"maintenance-gate/pkg/email"
	"maintenance-gate/pkg/render"
	"maintenance-gate/pkg/utils"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	logger, err := newLogger(utils.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	utils.InitLogger(logger)
	db.InitLogger(logger)
	settings.InitLogger(logger)
	users.InitLogger(logger)
	middleware.InitLogger(logger)
	handlers.InitLogger(logger)
	site.InitLogger(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.CookieSecureDefaulted {
		logger.Warn("COOKIE_SECURE not set, session cookies are only sent over HTTPS; set COOKIE_SECURE=false to log in over plain HTTP")
	}

	settingsStore, userStore, err := openStores(cfg)
	if err != nil {
		logger.Fatal("Failed to open stores", zap.String("backend", cfg.SettingsBackend), zap.Error(err))
	}

	ctx := context.Background()
	if err := users.SeedAdmin(ctx, userStore, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	pages, err := render.New()
	if err != nil {
		logger.Fatal("Failed to load templates", zap.Error(err))
	}

	siteHandler, err := site.Handler(cfg.UpstreamURL)
	if err != nil {
		logger.Fatal("Failed to set up site handler", zap.Error(err))
	}

	maintenance := settings.NewMaintenance(settingsStore)

	opts := handlers.Options{
		Maintenance: maintenance,
		Users:       userStore,
		CSRF:        csrf.NewManager([]byte(cfg.CSRFSecret), cfg.CSRFLifetime),
		Pages:       pages,
		SiteURL:     cfg.SiteURL,
	}
	if cfg.NotificationsEnabled() {
		opts.Mailer = email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
		opts.NotifyEmail = cfg.NotifyEmail
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.AccessLogger(logger))

	// Setup middleware
	middleware.SetupMiddleware(r, cfg)
	r.Use(middleware.LoadSession())

	// Setup routes
	routes.SetupRoutes(r, handlers.New(opts), middleware.MaintenanceGate(maintenance, pages, cfg.RetryAfter), siteHandler)

	logger.Info("Starting server",
		zap.String("port", cfg.ListenPort),
		zap.String("settingsBackend", cfg.SettingsBackend),
		zap.String("upstream", cfg.UpstreamURL),
	)
	if err := r.Run(":" + cfg.ListenPort); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openStores returns the settings and user stores for the configured backend.
// The redis backend keeps only settings in redis; users then live in memory
// and are seeded from ADMIN_USERNAME/ADMIN_PASSWORD on every start.
func openStores(cfg *config.Config) (settings.Store, users.Store, error) {
	switch cfg.SettingsBackend {
	case config.BackendPostgres:
		gormDB, err := db.Open(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return settings.NewDBStore(gormDB), users.NewDBStore(gormDB), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return settings.NewRedisStore(client, cfg.Redis.Prefix), users.NewMemoryStore(), nil
	default:
		return settings.NewMemoryStore(), users.NewMemoryStore(), nil
	}
}
