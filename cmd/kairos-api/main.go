package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/handler"
	"github.com/noah-isme/kairos-api/internal/repository"
	"github.com/noah-isme/kairos-api/internal/service"
	"github.com/noah-isme/kairos-api/pkg/cache"
	"github.com/noah-isme/kairos-api/pkg/config"
	"github.com/noah-isme/kairos-api/pkg/database"
	"github.com/noah-isme/kairos-api/pkg/logger"
	"github.com/noah-isme/kairos-api/pkg/openrouter"
)

// @title Kairos API
// @version 1.0.0
// @description Registration intake and administration for Kairos cohorts
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, public stats will not be cached", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metrics := service.NewMetricsService()

	cohortRepo := repository.NewCohortRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled && redisClient != nil)

	completions := openrouter.NewClient(cfg.Matcher)
	if !completions.IsAvailable() {
		logr.Warn("OPENROUTER_API_KEY not set, every submission will register a new participant")
	}
	matcher := service.NewOracleMatcher(completions, metrics, logr)

	intakeSvc := service.NewIntakeService(cohortRepo, participantRepo, matcher, metrics, logr)
	cohortSvc := service.NewCohortService(cohortRepo, cacheSvc, validate, logr, cfg.Cohorts.DefaultCapacity)
	participantSvc := service.NewParticipantService(participantRepo, cohortRepo, cacheSvc, validate, logr)
	exportSvc := service.NewExportService(participantSvc, logr)
	statsSvc := service.NewStatsService(cohortRepo, cacheSvc, metrics, logr, cfg.Cohorts.DefaultCapacity)
	authSvc := service.NewAuthService(adminRepo, logr, service.AuthConfig{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})
	adminSvc := service.NewAdminService(adminRepo, validate, logr)

	r := newRouter(cfg, logr, routerDeps{
		auth:         authSvc,
		audit:        adminRepo,
		metrics:      metrics,
		webhook:      handler.NewWebhookHandler(intakeSvc, metrics, logr),
		cohorts:      handler.NewCohortHandler(cohortSvc),
		participants: handler.NewParticipantHandler(participantSvc, exportSvc),
		admins:       handler.NewAdminHandler(adminSvc),
		session:      handler.NewAuthHandler(authSvc),
		stats:        handler.NewStatsHandler(statsSvc),
		observe:      handler.NewMetricsHandler(metrics),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
