package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/poolcrm/backend/docs"
	"github.com/poolcrm/backend/internal/application/communication"
	"github.com/poolcrm/backend/internal/application/competitor"
	appcrm "github.com/poolcrm/backend/internal/application/crm"
	"github.com/poolcrm/backend/internal/application/estimate"
	"github.com/poolcrm/backend/internal/application/identity"
	"github.com/poolcrm/backend/internal/application/schedule"
	"github.com/poolcrm/backend/internal/infrastructure/auth"
	"github.com/poolcrm/backend/internal/infrastructure/config"
	"github.com/poolcrm/backend/internal/infrastructure/logger"
	"github.com/poolcrm/backend/internal/infrastructure/mail"
	"github.com/poolcrm/backend/internal/infrastructure/persistence"
	"github.com/poolcrm/backend/internal/infrastructure/scraper"
	"github.com/poolcrm/backend/internal/infrastructure/storage"
	"github.com/poolcrm/backend/internal/infrastructure/telemetry"
	"github.com/poolcrm/backend/internal/interfaces/http/handler"
	"github.com/poolcrm/backend/internal/interfaces/http/router"
	"github.com/poolcrm/backend/internal/interfaces/web"
)

const statsCollectionInterval = time.Minute

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

//	@title			Pool CRM API
//	@version		1.0
//	@description	Backend API for a pool-service CRM: customers, properties and pools, communications, estimates and scheduling.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Pool CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers. Each returns a no-op implementation when
	// disabled, so the rest of the wiring does not branch.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore)
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiler.Enabled,
		ServerAddress:     cfg.Profiler.ServerAddress,
		ApplicationName:   cfg.Profiler.ServiceName,
		ProfileCPU:        true,
		ProfileAllocSpace: true,
		ProfileInuseSpace: true,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		tracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			WithoutVariables: cfg.App.Env == "production",
		}, log)
		if err := tracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}

		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("poolcrm.db"), telemetry.DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err != nil {
			log.Warn("Failed to create database metrics", zap.Error(err))
		} else {
			if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
				log.Warn("Failed to register database metrics plugin", zap.Error(err))
			}
			if sqlDB, err := db.DB.DB(); err == nil {
				dbMetrics.SetSQLDB(sqlDB)
				dbMetrics.StartPoolStatsCollection(ctx)
			}
		}
	}

	// Redis backs the token blacklist; without it revocation is
	// process-local only.
	var tokenBlacklist auth.TokenBlacklist
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected")
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, token revocation is in-memory only")
	}

	// Object storage for scraped competitor images
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Provider == "s3" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", s3Storage.GetBucket()))
	} else {
		objectStorage = storage.NewMemoryObjectStorage()
		log.Warn("Using in-memory object storage, scraped images will not survive restarts")
	}

	mailer, err := mail.NewMailer(&cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	imageScraper, err := scraper.NewChromedpScraper(&cfg.Scraper, log)
	if err != nil {
		log.Fatal("Failed to initialize scraper", zap.Error(err))
	}
	defer imageScraper.Close()

	crmMetrics, err := telemetry.NewCRMMetrics(meterProvider, log)
	if err != nil {
		log.Fatal("Failed to create CRM metrics", zap.Error(err))
	}

	// Repositories
	adminRepo := persistence.NewGormAdminRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	poolRepo := persistence.NewGormPoolRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	commRepo := persistence.NewGormCommunicationRepository(db.DB)
	estimateRepo := persistence.NewGormEstimateRepository(db.DB)
	eventRepo := persistence.NewGormCalendarEventRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identity.NewAuthService(adminRepo, jwtService, tokenBlacklist, log)
	adminService := identity.NewAdminService(adminRepo, log)
	customerService := appcrm.NewCustomerService(customerRepo, crmMetrics, log)
	propertyService := appcrm.NewPropertyService(propertyRepo, customerRepo, log)
	poolService := appcrm.NewPoolService(poolRepo, propertyRepo, log)
	noteService := appcrm.NewNoteService(noteRepo, customerRepo, log)
	commService := communication.NewService(commRepo, customerRepo, crmMetrics, log)
	estimateService := estimate.NewService(estimateRepo, customerRepo, propertyRepo, mailer, crmMetrics, log)
	scheduleService := schedule.NewService(eventRepo, adminRepo, customerRepo, propertyRepo, log)
	competitorService := competitor.NewService(imageScraper, objectStorage, crmMetrics, log)

	crmMetrics.StartPeriodicCollection(ctx, crmStats{
		customers: customerService,
		estimates: estimateService,
	}, statsCollectionInterval)

	// Marketing site feeding leads into the CRM
	site, err := web.NewSite(customerService, commService, log)
	if err != nil {
		log.Fatal("Failed to initialize marketing site", zap.Error(err))
	}

	healthChecks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error {
			return db.Ping()
		},
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	engine := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,

		AuthHandler:          handler.NewAuthHandler(authService),
		AdminHandler:         handler.NewAdminHandler(adminService),
		CustomerHandler:      handler.NewCustomerHandler(customerService),
		PropertyHandler:      handler.NewPropertyHandler(propertyService),
		PoolHandler:          handler.NewPoolHandler(poolService),
		NoteHandler:          handler.NewNoteHandler(noteService),
		CommunicationHandler: handler.NewCommunicationHandler(commService),
		EstimateHandler:      handler.NewEstimateHandler(estimateService),
		CalendarHandler:      handler.NewCalendarHandler(scheduleService),
		CompetitorHandler:    handler.NewCompetitorHandler(competitorService),
		SystemHandler:        handler.NewSystemHandler(version, healthChecks),

		MarketingSite: site,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// crmStats adapts the application services to the periodic gauge collector
type crmStats struct {
	customers *appcrm.CustomerService
	estimates *estimate.Service
}

func (s crmStats) CountCustomersByStatus(ctx context.Context) (map[string]int64, error) {
	return s.customers.CountCustomersByStatus(ctx)
}

func (s crmStats) CountEstimatesByStatus(ctx context.Context) (map[string]int64, error) {
	return s.estimates.CountByStatus(ctx)
}
