package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"guate-servicios/config"
	"guate-servicios/controllers"
	"guate-servicios/libs"
	"guate-servicios/middleware"
	"guate-servicios/repositories"
	"guate-servicios/routes"
	"guate-servicios/services"
	"guate-servicios/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// App owns every long-lived resource the HTTP server needs.
type App struct {
	Router *gin.Engine
	Pool   *pgxpool.Pool

	redis   *redis.Client
	memRate *libs.MemoryRateStore
	logger  *slog.Logger
}

// Repositories groups the stores built over one pool.
type Repositories struct {
	Users       *repositories.UserRepository
	Categories  *repositories.CategoryRepository
	Technicians *repositories.TechnicianRepository
	Services    *repositories.ServiceRepository
	Reviews     *repositories.ReviewRepository
	Maintenance *repositories.MaintenanceRepository
}

func NewRepositories(db repositories.DB) Repositories {
	return Repositories{
		Users:       repositories.NewUserRepository(db),
		Categories:  repositories.NewCategoryRepository(db),
		Technicians: repositories.NewTechnicianRepository(db),
		Services:    repositories.NewServiceRepository(db),
		Reviews:     repositories.NewReviewRepository(db),
		Maintenance: repositories.NewMaintenanceRepository(db),
	}
}

// New connects to the database (and redis when configured) and builds the
// router. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}

	pool, err := config.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	a := &App{Pool: pool, logger: logger}

	photos, err := newPhotoStore(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	var rateStore libs.RateStore
	if a.redis = config.ConnectRedis(ctx, cfg); a.redis != nil {
		rateStore = libs.NewRedisRateStore(a.redis, "")
	} else {
		a.memRate = libs.NewMemoryRateStore(time.Minute)
		rateStore = a.memRate
	}

	var notifier services.ReviewNotifier
	if cfg.HasSMTP() {
		notifier = libs.NewMailer(libs.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
	}

	utils.RegisterValidation()
	repos := NewRepositories(pool)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	authSvc := services.NewAuthService(repos.Users, repos.Technicians, utils.NewPasswordHasher(), tokens, logger)
	directory := services.NewDirectoryService(repos.Technicians, repos.Categories, repos.Services, repos.Reviews, photos, logger)
	offerings := services.NewOfferingService(repos.Technicians, repos.Services)
	reviews := services.NewReviewService(repos.Technicians, repos.Reviews, notifier, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadSize

	uploadDir := ""
	if !cfg.HasCloudinary() {
		uploadDir = cfg.UploadDir
	}

	err = routes.SetupRoutes(router, routes.Controllers{
		Auth:        controllers.NewAuthController(authSvc, logger),
		Technicians: controllers.NewTechnicianController(directory, cfg.MaxUploadSize, logger),
		Services:    controllers.NewServiceController(offerings, logger),
		Reviews:     controllers.NewReviewController(reviews, logger),
		Categories:  controllers.NewCategoryController(directory, logger),
		Health:      controllers.NewHealthController(repos.Maintenance, logger),
	}, routes.Options{
		Tokens:          tokens,
		RateStore:       rateStore,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		AllowedOrigins:  cfg.FrontendURLs,
		TrustedProxies:  cfg.TrustedProxies,
		TrustedPlatform: cfg.TrustedPlatform,
		UploadDir:       uploadDir,
		Metrics:         middleware.NewMetrics(registry),
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Logger:          logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Router = router
	return a, nil
}

func newPhotoStore(cfg *config.Config, logger *slog.Logger) (libs.PhotoStore, error) {
	if cfg.HasCloudinary() {
		store, err := libs.NewCloudinaryStore(libs.CloudinaryConfig{
			URL:       cfg.CloudinaryURL,
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		})
		if err != nil {
			return nil, fmt.Errorf("cloudinary: %w", err)
		}
		logger.Info("photo storage: cloudinary")
		return store, nil
	}

	store, err := libs.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	logger.Info("photo storage: local disk", "dir", cfg.UploadDir)
	return store, nil
}

// Server wraps the router with the timeouts used in production.
func (a *App) Server(port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func (a *App) Close() {
	if a.memRate != nil {
		a.memRate.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("closing redis", "error", err)
		}
	}
	config.CloseDB(a.Pool)
}
