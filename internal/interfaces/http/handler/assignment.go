package handler

import (
	collectionapp "github.com/audicob/backend/internal/application/collection"
	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/interfaces/http/dto"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssignmentHandler exposes portfolio assignment endpoints
type AssignmentHandler struct {
	BaseHandler
	assignmentService *collectionapp.AssignmentService
}

// NewAssignmentHandler creates an assignment handler
func NewAssignmentHandler(assignmentService *collectionapp.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
	}
}

// RegisterRoutes registers assignment routes on the API group
func (h *AssignmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assignments := rg.Group("/assignments")
	{
		assignments.POST("",
			middleware.RequirePermission(string(identity.PermissionAssignmentsWrite)),
			h.Assign)
		assignments.GET("",
			middleware.RequirePermission(string(identity.PermissionAssignmentsRead)),
			h.List)
		assignments.GET("/portfolio",
			middleware.RequirePermission(string(identity.PermissionAssignmentsRead)),
			h.MyPortfolio)
	}

	rg.DELETE("/clients/:id/assignment",
		middleware.RequirePermission(string(identity.PermissionAssignmentsWrite)),
		h.Release)
	rg.GET("/advisors/:id/portfolio",
		middleware.RequirePermission(string(identity.PermissionAssignmentsRead)),
		h.Portfolio)
}

// AssignAdvisorRequest carries a portfolio assignment
type AssignAdvisorRequest struct {
	ClientID  string `json:"client_id" binding:"required,uuid"`
	AdvisorID string `json:"advisor_id" binding:"required,uuid"`
}

// Assign puts a client into an advisor's portfolio
func (h *AssignmentHandler) Assign(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req AssignAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "client_id must be a valid UUID")
		return
	}
	advisorID, err := uuid.Parse(req.AdvisorID)
	if err != nil {
		h.BadRequest(c, "advisor_id must be a valid UUID")
		return
	}

	assignment, err := h.assignmentService.AssignAdvisor(c.Request.Context(), collectionapp.AssignAdvisorRequest{
		ClientID:  clientID,
		AdvisorID: advisorID,
		Actor:     actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, assignment)
}

// Release removes a client's active assignment
func (h *AssignmentHandler) Release(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}

	if err := h.assignmentService.ReleaseAssignment(c.Request.Context(), clientID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Assignment released"})
}

// Portfolio returns the clients currently assigned to an advisor
func (h *AssignmentHandler) Portfolio(c *gin.Context) {
	advisorID, ok := h.BindID(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := collection.ClientFilter{Filter: req.ToFilter()}
	clients, total, err := h.assignmentService.GetPortfolio(c.Request.Context(), advisorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// MyPortfolio returns the authenticated advisor's own portfolio
func (h *AssignmentHandler) MyPortfolio(c *gin.Context) {
	advisorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := collection.ClientFilter{Filter: req.ToFilter()}
	clients, total, err := h.assignmentService.GetPortfolio(c.Request.Context(), advisorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// AssignmentListRequest carries assignment list filters
type AssignmentListRequest struct {
	dto.ListRequest
	ClientID  string `form:"client_id" binding:"omitempty,uuid"`
	AdvisorID string `form:"advisor_id" binding:"omitempty,uuid"`
	Active    *bool  `form:"active"`
}

// List returns assignments matching the filter
func (h *AssignmentHandler) List(c *gin.Context) {
	var req AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := collection.AssignmentFilter{Filter: req.ToFilter(), Active: req.Active}
	if req.ClientID != "" {
		if clientID, err := uuid.Parse(req.ClientID); err == nil {
			filter.ClientID = &clientID
		}
	}
	if req.AdvisorID != "" {
		if advisorID, err := uuid.Parse(req.AdvisorID); err == nil {
			filter.AdvisorID = &advisorID
		}
	}

	assignments, total, err := h.assignmentService.ListAssignments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, assignments, total, filter.Page, filter.PageSize)
}
