// Package router assembles the gin engine: middleware chain, public
// routes, and the authenticated API surface.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/infrastructure/auth"
	"github.com/poolcrm/backend/internal/infrastructure/config"
	"github.com/poolcrm/backend/internal/infrastructure/logger"
	"github.com/poolcrm/backend/internal/interfaces/http/handler"
	"github.com/poolcrm/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router needs to register routes
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	AuthHandler          *handler.AuthHandler
	AdminHandler         *handler.AdminHandler
	CustomerHandler      *handler.CustomerHandler
	PropertyHandler      *handler.PropertyHandler
	PoolHandler          *handler.PoolHandler
	NoteHandler          *handler.NoteHandler
	CommunicationHandler *handler.CommunicationHandler
	EstimateHandler      *handler.EstimateHandler
	CalendarHandler      *handler.CalendarHandler
	CompetitorHandler    *handler.CompetitorHandler
	SystemHandler        *handler.SystemHandler

	// MarketingSite registers the public website routes when non-nil
	MarketingSite interface {
		RegisterRoutes(engine *gin.Engine)
	}
}

// New builds the gin engine with the full middleware chain and all routes
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	if deps.Logger != nil {
		engine.Use(logger.Recovery(deps.Logger))
		engine.Use(logger.GinMiddleware(deps.Logger))
	} else {
		engine.Use(gin.Recovery())
	}
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// API docs stay off unless explicitly enabled for the environment
	if cfg.HTTP.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group("/api/v1")

	// Public surface: probes plus login and refresh, which carry their own
	// stricter limiter against credential stuffing
	deps.SystemHandler.RegisterRoutes(api)

	public := api.Group("")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		public.Use(middleware.RateLimit(authLimiter))
	}
	deps.AuthHandler.RegisterPublicRoutes(public)

	// Everything else requires a valid access token
	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		Logger:         deps.Logger,
	}))

	deps.AuthHandler.RegisterProtectedRoutes(protected)
	ownerOnly := middleware.RequireOwner()
	deps.CustomerHandler.RegisterRoutes(protected, ownerOnly)
	deps.PropertyHandler.RegisterRoutes(protected)
	deps.PoolHandler.RegisterRoutes(protected)
	deps.NoteHandler.RegisterRoutes(protected)
	deps.CommunicationHandler.RegisterRoutes(protected)
	deps.EstimateHandler.RegisterRoutes(protected)
	deps.CalendarHandler.RegisterRoutes(protected)

	owner := protected.Group("")
	owner.Use(ownerOnly)
	deps.AdminHandler.RegisterRoutes(owner)
	deps.CompetitorHandler.RegisterRoutes(owner)

	if deps.MarketingSite != nil {
		deps.MarketingSite.RegisterRoutes(engine)
	}

	return engine
}
