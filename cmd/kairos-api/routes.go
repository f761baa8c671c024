package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/kairos-api/api/swagger"
	"github.com/noah-isme/kairos-api/internal/handler"
	"github.com/noah-isme/kairos-api/internal/middleware"
	"github.com/noah-isme/kairos-api/internal/models"
	"github.com/noah-isme/kairos-api/internal/service"
	"github.com/noah-isme/kairos-api/pkg/config"
	"github.com/noah-isme/kairos-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/kairos-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/kairos-api/pkg/middleware/requestid"
)

type routerDeps struct {
	auth         middleware.TokenAuthenticator
	audit        middleware.AuditWriter
	metrics      *service.MetricsService
	webhook      *handler.WebhookHandler
	cohorts      *handler.CohortHandler
	participants *handler.ParticipantHandler
	admins       *handler.AdminHandler
	session      *handler.AuthHandler
	stats        *handler.StatsHandler
	observe      *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(deps.metrics, "/metrics", "/health"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", deps.observe.Health)
	r.GET("/metrics", deps.observe.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/api/webhooks/tally", deps.webhook.Tally)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	api.GET("/public/cohort-stats", deps.stats.Public)
	api.POST("/auth/session", middleware.Authenticated(deps.auth), deps.session.Session)

	secured := api.Group("")
	secured.Use(middleware.AdminAuth(deps.auth), middleware.RequireApproved())

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(deps.audit, logr, action, resource)
	}
	mainAdmin := middleware.RequireMainAdmin()

	secured.GET("/me", deps.admins.Me)
	secured.GET("/system/metrics", mainAdmin, deps.observe.Snapshot)

	cohorts := secured.Group("/cohorts")
	cohorts.GET("", deps.cohorts.List)
	cohorts.GET("/active", deps.cohorts.Active)
	cohorts.POST("", mainAdmin, audit(models.AuditActionCohortCreate, "cohort"), deps.cohorts.Create)
	cohorts.PUT("/:id", mainAdmin, audit(models.AuditActionCohortUpdate, "cohort"), deps.cohorts.Update)
	cohorts.DELETE("/:id", mainAdmin, audit(models.AuditActionCohortDelete, "cohort"), deps.cohorts.Delete)
	cohorts.POST("/:id/activate", audit(models.AuditActionCohortActivate, "cohort"), deps.cohorts.Activate)
	cohorts.GET("/:id/stats", deps.stats.Cohort)
	cohorts.GET("/:id/participants", deps.participants.List)
	cohorts.GET("/:id/participants/export", deps.participants.Export)
	cohorts.POST("/:id/participants", audit(models.AuditActionParticipantCreate, "cohort"), deps.participants.Create)

	participants := secured.Group("/participants")
	participants.GET("/:id", deps.participants.Get)
	participants.PATCH("/:id/status", audit(models.AuditActionParticipantUpdate, "participant"), deps.participants.UpdateStatus)
	participants.PATCH("/:id/form", audit(models.AuditActionParticipantUpdate, "participant"), deps.participants.SetFormCompleted)
	participants.DELETE("/:id", audit(models.AuditActionParticipantDelete, "participant"), deps.participants.Delete)

	admins := secured.Group("/admins", mainAdmin)
	admins.GET("", deps.admins.List)
	admins.PATCH("/:id/approval", audit(models.AuditActionAdminApproval, "admin"), deps.admins.SetApproval)

	return r
}
