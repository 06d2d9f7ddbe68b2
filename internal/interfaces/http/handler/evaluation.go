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

// EvaluationHandler exposes client risk evaluation endpoints
type EvaluationHandler struct {
	BaseHandler
	evaluationService *collectionapp.EvaluationService
}

// NewEvaluationHandler creates an evaluation handler
func NewEvaluationHandler(evaluationService *collectionapp.EvaluationService, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       NewBaseHandler(logger),
		evaluationService: evaluationService,
	}
}

// RegisterRoutes registers evaluation routes on the API group
func (h *EvaluationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	evaluations := rg.Group("/evaluations")
	{
		evaluations.GET("",
			middleware.RequirePermission(string(identity.PermissionEvaluationsRead)),
			h.List)
		evaluations.GET("/pending",
			middleware.RequirePermission(string(identity.PermissionEvaluationsRead)),
			h.ListPending)
		evaluations.GET("/:id",
			middleware.RequirePermission(string(identity.PermissionEvaluationsRead)),
			h.Get)
		evaluations.POST("/:id/flag",
			middleware.RequirePermission(string(identity.PermissionEvaluationsWrite)),
			h.Flag)
		evaluations.POST("/:id/dismiss",
			middleware.RequirePermission(string(identity.PermissionEvaluationsWrite)),
			h.Dismiss)
	}

	rg.POST("/clients/:id/evaluations",
		middleware.RequirePermission(string(identity.PermissionEvaluationsWrite)),
		h.Open)
	rg.GET("/clients/:id/evaluations",
		middleware.RequirePermission(string(identity.PermissionEvaluationsRead)),
		h.ListForClient)
}

// Open opens a pending evaluation for a client
func (h *EvaluationHandler) Open(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	evaluation, err := h.evaluationService.OpenEvaluation(c.Request.Context(), collectionapp.OpenEvaluationRequest{
		ClientID: clientID,
		Actor:    actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, evaluation)
}

// ReviewEvaluationRequest carries the reviewer's comment
type ReviewEvaluationRequest struct {
	Comment string `json:"comment"`
}

// Flag closes a pending evaluation marking the client as a risk
func (h *EvaluationHandler) Flag(c *gin.Context) {
	h.review(c, true)
}

// Dismiss closes a pending evaluation without flagging. The comment
// is required.
func (h *EvaluationHandler) Dismiss(c *gin.Context) {
	h.review(c, false)
}

func (h *EvaluationHandler) review(c *gin.Context, flag bool) {
	evaluationID, ok := h.BindID(c)
	if !ok {
		return
	}
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req ReviewEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.HandleBindingError(c, err)
		return
	}

	input := collectionapp.ReviewEvaluationRequest{
		EvaluationID: evaluationID,
		Comment:      req.Comment,
		Actor:        actor,
	}

	var evaluation *collection.Evaluation
	var err error
	if flag {
		evaluation, err = h.evaluationService.FlagEvaluation(c.Request.Context(), input)
	} else {
		evaluation, err = h.evaluationService.DismissEvaluation(c.Request.Context(), input)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evaluation)
}

// Get returns one evaluation by ID
func (h *EvaluationHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	evaluation, err := h.evaluationService.GetEvaluation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evaluation)
}

// EvaluationListRequest carries evaluation list filters
type EvaluationListRequest struct {
	dto.ListRequest
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING FLAGGED REJECTED"`
}

func (r EvaluationListRequest) toFilter() collection.EvaluationFilter {
	filter := collection.EvaluationFilter{Filter: r.ToFilter()}
	if r.ClientID != "" {
		if clientID, err := uuid.Parse(r.ClientID); err == nil {
			filter.ClientID = &clientID
		}
	}
	if r.Status != "" {
		status := collection.EvaluationStatus(r.Status)
		filter.Status = &status
	}
	return filter
}

// List returns evaluations matching the filter
func (h *EvaluationHandler) List(c *gin.Context) {
	var req EvaluationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := req.toFilter()
	evaluations, total, err := h.evaluationService.ListEvaluations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, evaluations, total, filter.Page, filter.PageSize)
}

// ListPending returns the review queue, oldest evaluations first
func (h *EvaluationHandler) ListPending(c *gin.Context) {
	var req EvaluationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := req.toFilter()
	pending := collection.EvaluationStatusPending
	filter.Status = &pending
	filter.OrderBy = "evaluated_at"
	filter.OrderDir = "asc"

	evaluations, total, err := h.evaluationService.ListEvaluations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, evaluations, total, filter.Page, filter.PageSize)
}

// ListForClient returns one client's evaluation history
func (h *EvaluationHandler) ListForClient(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}

	var req EvaluationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	evaluations, err := h.evaluationService.ListClientEvaluations(c.Request.Context(), clientID, req.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evaluations)
}
