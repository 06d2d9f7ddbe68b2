package handler

import (
	collectionapp "github.com/audicob/backend/internal/application/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditLineHandler exposes credit line approval endpoints
type CreditLineHandler struct {
	BaseHandler
	creditLineService *collectionapp.CreditLineService
}

// NewCreditLineHandler creates a credit line handler
func NewCreditLineHandler(creditLineService *collectionapp.CreditLineService, logger *zap.Logger) *CreditLineHandler {
	return &CreditLineHandler{
		BaseHandler:       NewBaseHandler(logger),
		creditLineService: creditLineService,
	}
}

// RegisterRoutes registers credit line routes on the API group
func (h *CreditLineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clients/:id/credit-line",
		middleware.RequirePermission(string(identity.PermissionCreditWrite)),
		h.Assign)
	rg.PUT("/clients/:id/credit-line",
		middleware.RequirePermission(string(identity.PermissionCreditWrite)),
		h.Adjust)
	rg.GET("/clients/:id/credit-line",
		middleware.RequirePermission(string(identity.PermissionCreditRead)),
		h.Get)
}

// CreditLineRequest carries the amount to approve
type CreditLineRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Assign approves a credit line for a client without one
func (h *CreditLineHandler) Assign(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req CreditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	line, err := h.creditLineService.AssignCreditLine(c.Request.Context(), collectionapp.AssignCreditLineRequest{
		ClientID: clientID,
		Amount:   req.Amount,
		Actor:    actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, line)
}

// Adjust replaces the approved amount of the client's credit line
func (h *CreditLineHandler) Adjust(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req CreditLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	line, err := h.creditLineService.AdjustCreditLine(c.Request.Context(), collectionapp.AdjustCreditLineRequest{
		ClientID: clientID,
		Amount:   req.Amount,
		Actor:    actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// Get returns the client's credit line
func (h *CreditLineHandler) Get(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}

	line, err := h.creditLineService.GetClientCreditLine(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}
