package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/middleware"
	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/internal/service"
	"github.com/JayR61/congregation-connect/pkg/logger"
	corsmiddleware "github.com/JayR61/congregation-connect/pkg/middleware/cors"
	reqidmiddleware "github.com/JayR61/congregation-connect/pkg/middleware/requestid"

	_ "github.com/JayR61/congregation-connect/api/swagger"
)

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// RouterConfig carries the cross-cutting pieces of the HTTP surface.
type RouterConfig struct {
	APIPrefix      string
	EnableDocs     bool
	AllowedOrigins []string
	Logger         *zap.Logger
	Auth           tokenValidator
	Metrics        *service.MetricsService
	Ready          func() bool
}

// Handlers groups every endpoint handler mounted by NewRouter.
type Handlers struct {
	Programmes *ProgrammeHandler
	Attendance *AttendanceHandler
	Feedback   *FeedbackHandler
	KPIs       *KPIHandler
	Reminders  *ReminderHandler
	Statistics *StatisticsHandler
	Exports    *ExportHandler
	Catalog    *CatalogHandler
	Resources  *ResourceHandler
}

// NewRouter wires middleware and routes onto a fresh gin engine.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	var metricsEndpoint http.Handler
	if cfg.Metrics != nil {
		metricsEndpoint = cfg.Metrics.Handler()
	}
	health := NewMetricsHandler(metricsEndpoint, cfg.Ready)
	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", health.Prometheus)

	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix, middleware.JWT(cfg.Auth))
	manage := api.Group("", middleware.RequireManager())

	if h.Programmes != nil {
		api.GET("/programmes", h.Programmes.List)
		api.GET("/programmes/:id", h.Programmes.Get)
		api.GET("/programmes/:id/tags", h.Programmes.ListTags)
		manage.POST("/programmes", h.Programmes.Create)
		manage.POST("/programmes/from-template", h.Programmes.CreateFromTemplate)
		manage.PUT("/programmes/:id", h.Programmes.Update)
		manage.PATCH("/programmes/:id/status", h.Programmes.UpdateStatus)
		manage.PUT("/programmes/:id/tags/:tagId", h.Programmes.AssignTag)
		manage.DELETE("/programmes/:id/tags/:tagId", h.Programmes.UnassignTag)
	}
	if h.Attendance != nil {
		api.GET("/programmes/:id/attendance", h.Attendance.ListByProgramme)
		manage.POST("/attendance", h.Attendance.Record)
	}
	if h.Feedback != nil {
		api.GET("/programmes/:id/feedback", h.Feedback.ListByProgramme)
		api.POST("/feedback", h.Feedback.Submit)
	}
	if h.KPIs != nil {
		api.GET("/programmes/:id/kpis", h.KPIs.ListByProgramme)
		manage.POST("/kpis", h.KPIs.Create)
		manage.PATCH("/kpis/:id", h.KPIs.UpdateProgress)
	}
	if h.Reminders != nil {
		api.GET("/reminders", h.Reminders.List)
		manage.POST("/reminders", h.Reminders.Schedule)
		manage.POST("/reminders/process", h.Reminders.Process)
		manage.DELETE("/reminders/:id", h.Reminders.Cancel)
	}
	if h.Statistics != nil {
		api.GET("/statistics", h.Statistics.Overview)
		api.GET("/programmes/:id/statistics/attendance", h.Statistics.AttendanceSummary)
		api.GET("/programmes/:id/statistics/feedback", h.Statistics.FeedbackSummary)
	}
	if h.Exports != nil {
		api.GET("/programmes/:id/export/ics", h.Exports.ICS)
		api.GET("/programmes/:id/export/pdf", h.Exports.PDF)
		api.GET("/programmes/:id/export/csv", h.Exports.CSV)
	}
	if h.Catalog != nil {
		api.GET("/templates", h.Catalog.ListTemplates)
		api.GET("/categories", h.Catalog.ListCategories)
		api.GET("/tags", h.Catalog.ListTags)
		manage.POST("/templates", h.Catalog.CreateTemplate)
		manage.POST("/categories", h.Catalog.CreateCategory)
		manage.POST("/tags", h.Catalog.CreateTag)
	}
	if h.Resources != nil {
		api.GET("/resources", h.Resources.List)
		manage.POST("/resources", h.Resources.Create)
		manage.POST("/resources/:id/bookings", h.Resources.Book)
	}

	return r
}
