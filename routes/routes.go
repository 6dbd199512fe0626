package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"guate-servicios/controllers"
	"guate-servicios/handler"
	"guate-servicios/libs"
	"guate-servicios/middleware"
	"guate-servicios/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Technicians *controllers.TechnicianController
	Services    *controllers.ServiceController
	Reviews     *controllers.ReviewController
	Categories  *controllers.CategoryController
	Health      *controllers.HealthController
}

type Options struct {
	Tokens          middleware.TokenVerifier
	RateStore       libs.RateStore
	RateLimitMax    int
	RateLimitWindow time.Duration
	AllowedOrigins  []string
	// TrustedProxies are the only peers whose forwarding headers set the
	// client IP. Nil trusts none.
	TrustedProxies  []string
	TrustedPlatform string
	// UploadDir is served under /uploads; empty disables it.
	UploadDir      string
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// SetupRoutes fails only when a trusted proxy entry is not an IP or CIDR.
func SetupRoutes(router *gin.Engine, ctrl Controllers, opts Options) error {
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	router.TrustedPlatform = opts.TrustedPlatform

	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(opts.Logger),
		middleware.SecurityHeaders(),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Handler())
	}

	router.GET("/", gin.WrapF(handler.Handler))
	router.HEAD("/", gin.WrapF(handler.Handler))
	router.GET(handler.HealthPath, ctrl.Health.Health)
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	api := router.Group(handler.APIBasePath)
	if opts.RateStore != nil {
		api.Use(middleware.RateLimit(opts.RateStore, opts.RateLimitMax, opts.RateLimitWindow, opts.Logger))
	}

	api.POST("/auth/register", ctrl.Auth.Register)
	api.POST("/auth/login", ctrl.Auth.Login)
	api.GET("/categories", ctrl.Categories.List)

	api.GET("/technicians", ctrl.Technicians.List)

	auth := api.Group("")
	auth.Use(middleware.RequireAuth(opts.Tokens))
	{
		auth.GET("/technicians/me", ctrl.Technicians.Me)
		auth.POST("/reviews", ctrl.Reviews.Create)
	}

	tech := api.Group("")
	tech.Use(middleware.RequireAuth(opts.Tokens), middleware.RequireRole(models.RoleTechnician))
	{
		tech.PATCH("/technicians/me", ctrl.Technicians.UpdateMe)
		tech.POST("/technicians/me/photo", ctrl.Technicians.UploadPhoto)
		tech.POST("/technicians/:id/services", ctrl.Services.Create)
	}

	api.GET("/technicians/:id", ctrl.Technicians.Get)
	return nil
}
