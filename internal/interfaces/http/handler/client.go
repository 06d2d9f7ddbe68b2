package handler

import (
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

// ClientHandler exposes client registry endpoints
type ClientHandler struct {
	BaseHandler
	clientService *collectionapp.ClientService
}

// NewClientHandler creates a client handler
func NewClientHandler(clientService *collectionapp.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		BaseHandler:   NewBaseHandler(logger),
		clientService: clientService,
	}
}

// RegisterRoutes registers client routes on the API group
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("",
			middleware.RequirePermission(string(identity.PermissionClientsWrite)),
			h.Create)
		clients.GET("",
			middleware.RequirePermission(string(identity.PermissionClientsRead)),
			h.List)
		clients.GET("/:id",
			middleware.RequirePermission(string(identity.PermissionClientsRead)),
			h.Get)
		clients.PUT("/:id",
			middleware.RequirePermission(string(identity.PermissionClientsWrite)),
			h.Update)
		clients.POST("/:id/suspend",
			middleware.RequirePermission(string(identity.PermissionClientsWrite)),
			h.Suspend)
		clients.POST("/:id/reinstate",
			middleware.RequirePermission(string(identity.PermissionClientsWrite)),
			h.Reinstate)
	}
}

// CreateClientRequest carries the fields to register a client
type CreateClientRequest struct {
	Document      string          `json:"document" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Email         string          `json:"email" binding:"omitempty,email"`
	Phone         string          `json:"phone"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
}

// UpdateClientRequest carries the mutable client fields
type UpdateClientRequest struct {
	Name          *string          `json:"name"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	Phone         *string          `json:"phone"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income"`
}

// ClientListRequest carries client list filters
type ClientListRequest struct {
	dto.ListRequest
	Status            string `form:"status" binding:"omitempty,oneof=ACTIVE SUSPENDED ARCHIVED"`
	DelinquencyStatus string `form:"delinquency_status" binding:"omitempty,oneof=CURRENT EARLY MODERATE SEVERE CRITICAL"`
	AdvisorID         string `form:"advisor_id" binding:"omitempty,uuid"`
}

func (r ClientListRequest) toFilter() collection.ClientFilter {
	filter := collection.ClientFilter{Filter: r.ToFilter(), Search: r.Search}
	if r.Status != "" {
		status := collection.ClientStatus(r.Status)
		filter.Status = &status
	}
	if r.DelinquencyStatus != "" {
		status := collection.DelinquencyStatus(r.DelinquencyStatus)
		filter.DelinquencyStatus = &status
	}
	if r.AdvisorID != "" {
		if advisorID, err := uuid.Parse(r.AdvisorID); err == nil {
			filter.AdvisorID = &advisorID
		}
	}
	return filter
}

// Create registers a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), collectionapp.CreateClientRequest{
		Document:      req.Document,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// List returns clients matching the filter. Advisors only see their
// own portfolio.
func (h *ClientHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req ClientListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := req.toFilter()
	clients, total, err := h.clientService.ListClients(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// Get returns one client by ID
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Update modifies a client's contact and income data
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, collectionapp.UpdateClientRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Suspend removes a client from active collection
func (h *ClientHandler) Suspend(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	if err := h.clientService.SuspendClient(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Client suspended"})
}

// Reinstate returns a suspended client to active collection
func (h *ClientHandler) Reinstate(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	if err := h.clientService.ReinstateClient(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Client reinstated"})
}
