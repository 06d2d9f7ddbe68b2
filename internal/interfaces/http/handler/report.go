package handler

import (
	collectionapp "github.com/audicob/backend/internal/application/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler exposes aggregate reporting endpoints
type ReportHandler struct {
	BaseHandler
	metricsService *collectionapp.MetricsService
}

// NewReportHandler creates a report handler
func NewReportHandler(metricsService *collectionapp.MetricsService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:    NewBaseHandler(logger),
		metricsService: metricsService,
	}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.Use(middleware.RequirePermission(string(identity.PermissionReportsRead)))
	{
		reports.GET("/delinquency", h.Delinquency)
		reports.GET("/advisors", h.Advisors)
	}
}

// Delinquency returns client counts across the severity scale
func (h *ReportHandler) Delinquency(c *gin.Context) {
	report, err := h.metricsService.DelinquencyReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Advisors returns portfolio sizes per advisor
func (h *ReportHandler) Advisors(c *gin.Context) {
	lines, err := h.metricsService.AdvisorReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}
