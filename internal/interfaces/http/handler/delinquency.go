package handler

import (
	"time"

	collectionapp "github.com/audicob/backend/internal/application/collection"
	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/interfaces/http/dto"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DelinquencyHandler exposes status change and history endpoints
type DelinquencyHandler struct {
	BaseHandler
	delinquencyService *collectionapp.DelinquencyService
}

// NewDelinquencyHandler creates a delinquency handler
func NewDelinquencyHandler(delinquencyService *collectionapp.DelinquencyService, logger *zap.Logger) *DelinquencyHandler {
	return &DelinquencyHandler{
		BaseHandler:        NewBaseHandler(logger),
		delinquencyService: delinquencyService,
	}
}

// RegisterRoutes registers delinquency routes on the API group
func (h *DelinquencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clients/:id/delinquency",
		middleware.RequirePermission(string(identity.PermissionDelinquencyWrite)),
		h.ChangeStatus)
	rg.GET("/clients/:id/delinquency/history",
		middleware.RequirePermission(string(identity.PermissionDelinquencyRead)),
		h.History)
}

// ChangeStatusRequest carries one delinquency status change
type ChangeStatusRequest struct {
	NewStatus string `json:"new_status" binding:"required,oneof=CURRENT EARLY MODERATE SEVERE CRITICAL"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

// ChangeStatus moves a client along the delinquency scale. Every change
// requires a reason; the acting advisor must hold the client in their
// portfolio.
func (h *DelinquencyHandler) ChangeStatus(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	transition, err := h.delinquencyService.ChangeStatus(c.Request.Context(), collectionapp.ChangeStatusRequest{
		ClientID:  clientID,
		NewStatus: collection.DelinquencyStatus(req.NewStatus),
		Reason:    req.Reason,
		Notes:     req.Notes,
		Actor:     actor,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, transition)
}

// HistoryListRequest carries status history filters
type HistoryListRequest struct {
	dto.ListRequest
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
}

// History returns a client's status transitions, newest first
func (h *DelinquencyHandler) History(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}

	var req HistoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := collection.TransitionFilter{Filter: req.ToFilter()}
	if req.FromDate != "" {
		from, err := time.Parse(time.RFC3339, req.FromDate)
		if err != nil {
			h.BadRequest(c, "from_date must be an RFC3339 timestamp")
			return
		}
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := time.Parse(time.RFC3339, req.ToDate)
		if err != nil {
			h.BadRequest(c, "to_date must be an RFC3339 timestamp")
			return
		}
		filter.ToDate = &to
	}

	transitions, total, err := h.delinquencyService.GetHistory(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transitions, total, filter.Page, filter.PageSize)
}
