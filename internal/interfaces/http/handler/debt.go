package handler

import (
	"time"

	collectionapp "github.com/audicob/backend/internal/application/collection"
	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/interfaces/http/dto"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtHandler exposes debt registry and statement endpoints
type DebtHandler struct {
	BaseHandler
	debtService *collectionapp.DebtService
}

// NewDebtHandler creates a debt handler
func NewDebtHandler(debtService *collectionapp.DebtService, logger *zap.Logger) *DebtHandler {
	return &DebtHandler{
		BaseHandler: NewBaseHandler(logger),
		debtService: debtService,
	}
}

// RegisterRoutes registers debt routes on the API group
func (h *DebtHandler) RegisterRoutes(rg *gin.RouterGroup) {
	debts := rg.Group("/debts")
	{
		debts.POST("",
			middleware.RequirePermission(string(identity.PermissionDebtsWrite)),
			h.Register)
		debts.GET("/overdue",
			middleware.RequirePermission(string(identity.PermissionDebtsRead)),
			h.ListOverdue)
		debts.POST("/refresh-snapshots",
			middleware.RequireRole(string(identity.RoleAdministrator)),
			h.RefreshSnapshots)
		debts.GET("/:id",
			middleware.RequirePermission(string(identity.PermissionDebtsRead)),
			h.Get)
	}

	rg.POST("/clients/:id/debt",
		middleware.RequirePermission(string(identity.PermissionDebtsWrite)),
		h.RegisterForClient)
	rg.GET("/clients/:id/statement",
		middleware.RequirePermission(string(identity.PermissionDebtsRead)),
		h.Statement)

	// Client self-service view of their own account
	rg.GET("/portal/statement",
		middleware.RequirePermission(string(identity.PermissionPortalRead)),
		h.PortalStatement)
}

// RegisterDebtRequest carries the fields to register a debt
type RegisterDebtRequest struct {
	ClientID  string          `json:"client_id" binding:"required,uuid"`
	Principal decimal.Decimal `json:"principal" binding:"required"`
	DueDate   time.Time       `json:"due_date" binding:"required"`
}

// Register records a new debt for a client
func (h *DebtHandler) Register(c *gin.Context) {
	var req RegisterDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "client_id must be a valid UUID")
		return
	}

	debt, err := h.debtService.RegisterDebt(c.Request.Context(), collectionapp.RegisterDebtRequest{
		ClientID:  clientID,
		Principal: req.Principal,
		DueDate:   req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, debt)
}

// RegisterClientDebtRequest carries the body for the client-scoped route,
// where the client comes from the path
type RegisterClientDebtRequest struct {
	Principal decimal.Decimal `json:"principal" binding:"required"`
	DueDate   time.Time       `json:"due_date" binding:"required"`
}

// RegisterForClient records a new debt for the client in the path
func (h *DebtHandler) RegisterForClient(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}

	var req RegisterClientDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	debt, err := h.debtService.RegisterDebt(c.Request.Context(), collectionapp.RegisterDebtRequest{
		ClientID:  clientID,
		Principal: req.Principal,
		DueDate:   req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, debt)
}

// Get returns one debt with its penalty assessed as of now
func (h *DebtHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	line, err := h.debtService.GetDebt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// Statement returns a client's full position, penalties computed at
// the requested as_of time
func (h *DebtHandler) Statement(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "as_of must be an RFC3339 timestamp")
			return
		}
		asOf = parsed
	}

	statement, err := h.debtService.GetStatement(c.Request.Context(), clientID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// PortalStatement returns the authenticated client's own statement
func (h *DebtHandler) PortalStatement(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "as_of must be an RFC3339 timestamp")
			return
		}
		asOf = parsed
	}

	statement, err := h.debtService.GetStatementForUser(c.Request.Context(), userID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// OverdueListRequest carries overdue debt list filters
type OverdueListRequest struct {
	dto.ListRequest
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
}

// ListOverdue returns debts past their due date
func (h *DebtHandler) ListOverdue(c *gin.Context) {
	var req OverdueListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := collection.DebtFilter{Filter: req.ToFilter()}
	if req.ClientID != "" {
		if clientID, err := uuid.Parse(req.ClientID); err == nil {
			filter.ClientID = &clientID
		}
	}

	debts, total, err := h.debtService.ListOverdue(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, debts, total, filter.Page, filter.PageSize)
}

// RefreshSnapshots recomputes the stored penalty snapshots used by
// reporting queries
func (h *DebtHandler) RefreshSnapshots(c *gin.Context) {
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "as_of must be an RFC3339 timestamp")
			return
		}
		asOf = parsed
	}

	updated, err := h.debtService.RefreshSnapshots(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": updated, "as_of": asOf})
}
