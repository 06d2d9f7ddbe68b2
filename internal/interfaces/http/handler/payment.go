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

// PaymentHandler exposes payment reporting and review endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *collectionapp.PaymentService
}

// NewPaymentHandler creates a payment handler
func NewPaymentHandler(paymentService *collectionapp.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    NewBaseHandler(logger),
		paymentService: paymentService,
	}
}

// RegisterRoutes registers payment routes on the API group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("",
			middleware.RequirePermission(string(identity.PermissionPaymentsWrite)),
			h.Register)
		payments.GET("",
			middleware.RequirePermission(string(identity.PermissionPaymentsRead)),
			h.List)
		payments.GET("/pending",
			middleware.RequirePermission(string(identity.PermissionPaymentsReview)),
			h.ListPending)
		payments.GET("/:id",
			middleware.RequirePermission(string(identity.PermissionPaymentsRead)),
			h.Get)
		payments.POST("/:id/validate",
			middleware.RequirePermission(string(identity.PermissionPaymentsReview)),
			h.Validate)
		payments.POST("/:id/reject",
			middleware.RequirePermission(string(identity.PermissionPaymentsReview)),
			h.Reject)
	}

	rg.GET("/clients/:id/payments",
		middleware.RequirePermission(string(identity.PermissionPaymentsRead)),
		h.ListForClient)
}

// RegisterPaymentRequest carries a reported payment
type RegisterPaymentRequest struct {
	ClientID string          `json:"client_id" binding:"required,uuid"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	PaidAt   time.Time       `json:"paid_at" binding:"required"`
}

// Register reports a payment, pending supervisor review
func (h *PaymentHandler) Register(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "client_id must be a valid UUID")
		return
	}

	payment, err := h.paymentService.RegisterPayment(c.Request.Context(), collectionapp.RegisterPaymentRequest{
		ClientID: clientID,
		Amount:   req.Amount,
		PaidAt:   req.PaidAt,
		Actor:    actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// ReviewPaymentRequest carries a supervisor's observation
type ReviewPaymentRequest struct {
	Observation string `json:"observation"`
}

// Validate confirms a reported payment against the account
func (h *PaymentHandler) Validate(c *gin.Context) {
	h.review(c, true)
}

// Reject marks a reported payment as unconfirmable
func (h *PaymentHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *PaymentHandler) review(c *gin.Context, approve bool) {
	paymentID, ok := h.BindID(c)
	if !ok {
		return
	}
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req ReviewPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.HandleBindingError(c, err)
		return
	}

	input := collectionapp.ReviewPaymentRequest{
		PaymentID:   paymentID,
		Observation: req.Observation,
		Actor:       actor,
	}

	var payment *collection.Payment
	var err error
	if approve {
		payment, err = h.paymentService.ValidatePayment(c.Request.Context(), input)
	} else {
		payment, err = h.paymentService.RejectPayment(c.Request.Context(), input)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Get returns one payment by ID
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// PaymentListRequest carries payment list filters
type PaymentListRequest struct {
	dto.ListRequest
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING VALIDATED REJECTED"`
}

func (r PaymentListRequest) toFilter() collection.PaymentFilter {
	filter := collection.PaymentFilter{Filter: r.ToFilter()}
	if r.ClientID != "" {
		if clientID, err := uuid.Parse(r.ClientID); err == nil {
			filter.ClientID = &clientID
		}
	}
	if r.Status != "" {
		status := collection.PaymentStatus(r.Status)
		filter.Status = &status
	}
	return filter
}

// List returns payments matching the filter
func (h *PaymentHandler) List(c *gin.Context) {
	var req PaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := req.toFilter()
	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListPending returns the review queue, oldest reports first
func (h *PaymentHandler) ListPending(c *gin.Context) {
	var req PaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := req.toFilter()
	pending := collection.PaymentStatusPending
	filter.Status = &pending
	filter.OrderBy = "paid_at"
	filter.OrderDir = "asc"

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListForClient returns one client's payment history
func (h *PaymentHandler) ListForClient(c *gin.Context) {
	clientID, ok := h.BindID(c)
	if !ok {
		return
	}

	var req PaymentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	payments, err := h.paymentService.ListClientPayments(c.Request.Context(), clientID, req.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
