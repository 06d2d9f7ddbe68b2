package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/audicob/backend/internal/application/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/interfaces/http/dto"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common response helpers for all HTTP handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the status mapped from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, h.requestID(c)))
}

// BadRequest sends a 400 validation error response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeValidation, message, h.requestID(c)))
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, message, h.requestID(c)))
}

// HandleBindingError maps request binding failures to a 400 response
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fieldErrorMessage(fe))
		}
		h.BadRequest(c, strings.Join(fields, "; "))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Request body is not valid", h.requestID(c)))
}

// HandleError maps an application or domain error to an HTTP response
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError && h.logger != nil {
			h.logger.Error("Unhandled domain error",
				zap.String("code", domainErr.Code),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.JSON(status, dto.NewErrorResponseWithRequestID(code, domainErr.Message, h.requestID(c)))
		return
	}

	if errors.Is(err, shared.ErrNotFound) {
		h.NotFound(c, "Resource not found")
		return
	}

	if h.logger != nil {
		h.logger.Error("Internal server error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred", h.requestID(c)))
}

// BindID binds and parses the :id path parameter as a UUID
func (h *BaseHandler) BindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid resource identifier")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid resource identifier")
		return uuid.Nil, false
	}
	return id, true
}

// Actor builds the acting user from the JWT claims in context
func (h *BaseHandler) Actor(c *gin.Context) (collection.Actor, bool) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return collection.Actor{}, false
	}
	actorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return collection.Actor{}, false
	}
	return collection.Actor{
		ID:   actorID,
		Name: claims.Username,
		Role: identity.Role(claims.Role),
	}, true
}

// CurrentUserID returns the authenticated user's ID from context
func (h *BaseHandler) CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) requestID(c *gin.Context) string {
	return c.GetString("request_id")
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "uuid":
		return field + " must be a valid UUID"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " is invalid"
	}
}
