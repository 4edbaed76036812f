package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"registration-service/internal/auth"
	"registration-service/internal/config"
	"registration-service/internal/db"
	"registration-service/internal/health"
	"registration-service/internal/logger"
	"registration-service/internal/metrics"
	"registration-service/internal/middleware"
	"registration-service/internal/registration"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
	db     *bun.DB
}

func New() *App {
	slogLogger := logger.NewWithServiceContext("registration-service", "1.0.0")

	// Set as default logger so slog.Info() uses the same handlers
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	// nil database means soft-offline mode: count/list serve empty results,
	// mutations return 503
	database := db.New(cfg.Database, slogLogger)
	if database != nil {
		if err := db.RunMigrations(context.Background(), database, (*registration.Registration)(nil)); err != nil {
			log.Fatal("failed to run migrations:", err)
		}
	}

	m, err := metrics.New(otel.GetMeterProvider().Meter("registration-service"))
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(slogLogger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler(database)
	healthHandler.RegisterRoutes(router)

	// Admin gate
	sessionTTL := time.Duration(cfg.Admin.SessionTTLHours) * time.Hour
	authService := auth.NewService(cfg.Admin.Password, cfg.Admin.JWTSecret, sessionTTL)
	authHandler := auth.NewHandler(authService, slogLogger, m)

	// Registration ledger
	ledgerRepo := registration.NewRepository(database)
	ledgerService := registration.NewService(ledgerRepo)
	ledgerHandler := registration.NewHandler(ledgerService, slogLogger, m, cfg.Event.MaxPlaces)

	api := router.Group("/api")
	authHandler.RegisterRoutes(api)

	admin := api.Group("", auth.RequireAdmin(authService, slogLogger))
	ledgerHandler.RegisterRoutes(api, admin)

	slogLogger.Info("application initialized successfully")

	return &App{
		config: cfg,
		router: router,
		logger: slogLogger,
		db:     database,
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	err := a.server.Shutdown(ctx)
	db.Close(a.db)
	return err
}
