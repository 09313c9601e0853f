package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kokiddp/elkcms/internal/cache"
	"github.com/kokiddp/elkcms/internal/config"
	"github.com/kokiddp/elkcms/internal/database"
	"github.com/kokiddp/elkcms/internal/form"
	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/middleware"
	"github.com/kokiddp/elkcms/internal/migration"
	"github.com/kokiddp/elkcms/internal/models"
	"github.com/kokiddp/elkcms/internal/modules/admin"
	"github.com/kokiddp/elkcms/internal/modules/content"
	"github.com/kokiddp/elkcms/internal/modules/translation"
	pkgredis "github.com/kokiddp/elkcms/internal/pkg/redis"
	"github.com/kokiddp/elkcms/internal/scanner"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	sc     *scanner.Scanner
}

// New initializes the application: registry → DB → cache → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	models.RegisterContentModels()

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	sc := scanner.New(store, scanner.Options{
		Enabled: cfg.CacheEnabled(),
		TTL:     cfg.CacheTTL(),
		Logger:  logger,
	})
	// registered models may have cached definitions from a previous process
	sc.Warm(meta.All()...)
	forms := form.NewBuilder(sc, cfg.Locales.Supported)
	repo := content.NewRepository(db, sc, store, logger)
	trans := translation.NewService(db, sc, cfg.Locales.Supported)
	gen := migration.NewGenerator(meta.Default(), logger)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.LocaleNegotiation(cfg.Locales.Supported, cfg.Locales.Default))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Language"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	adminHandler := admin.NewHandler(
		meta.Default(), sc, forms, repo, trans, gen, cfg.MigrationsDir, logger,
	)
	api := router.Group("/api/v1")
	adminHandler.RegisterRoutes(api.Group("/admin"))

	return &App{cfg: cfg, router: router, db: db, logger: logger, sc: sc}, nil
}

// buildStore picks the cache backend: Redis when configured, in-process
// memory otherwise.
func buildStore(cfg *config.AppConfig) (cache.Store, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(), nil
	}
	client, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return cache.NewRedis(client, cfg.Cache.Prefix), nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Scanner exposes the model scanner for CLI commands.
func (a *App) Scanner() *scanner.Scanner { return a.sc }
