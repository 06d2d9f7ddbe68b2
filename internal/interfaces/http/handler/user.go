package handler

import (
	"context"

	identityapp "github.com/audicob/backend/internal/application/identity"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/interfaces/http/dto"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler exposes user administration endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(userService *identityapp.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// RegisterRoutes registers user administration routes on the API group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RequireRole(string(identity.RoleAdministrator)))
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.PUT("/:id/role", h.ChangeRole)
		users.POST("/:id/activate", h.Activate)
		users.POST("/:id/deactivate", h.Deactivate)
		users.POST("/:id/unlock", h.Unlock)
		users.POST("/:id/reset-password", h.ResetPassword)
		users.DELETE("/:id", h.Delete)
	}
}

// CreateUserRequest carries the fields to register a user account
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"required,oneof=administrator supervisor advisor client"`
}

// UpdateUserRequest carries the mutable user profile fields
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	DisplayName *string `json:"display_name"`
}

// ChangeRoleRequest carries a role change
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=administrator supervisor advisor client"`
}

// ResetPasswordRequest carries an administrative password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserListRequest carries user list filters
type UserListRequest struct {
	dto.ListRequest
	Role   string `form:"role" binding:"omitempty,oneof=administrator supervisor advisor client"`
	Status string `form:"status" binding:"omitempty,oneof=active locked deactivated"`
}

func (r UserListRequest) toFilter() identity.UserFilter {
	filter := identity.UserFilter{Filter: r.ToFilter(), Search: r.Search}
	if r.Role != "" {
		role := identity.Role(r.Role)
		filter.Role = &role
	}
	if r.Status != "" {
		status := identity.UserStatus(r.Status)
		filter.Status = &status
	}
	return filter
}

// Create registers a new user account
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), identityapp.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List returns user accounts matching the filter
func (h *UserHandler) List(c *gin.Context) {
	var req UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.userService.List(c.Request.Context(), req.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one user account by ID
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update modifies a user's profile fields
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), identityapp.UpdateUserInput{
		ID:          id,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangeRole changes a user's access profile
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), id, identity.Role(req.Role))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Activate restores a deactivated account
func (h *UserHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.userService.Activate)
}

// Deactivate disables an account without deleting it
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.lifecycle(c, h.userService.Deactivate)
}

// Unlock clears a lockout caused by failed login attempts
func (h *UserHandler) Unlock(c *gin.Context) {
	h.lifecycle(c, h.userService.Unlock)
}

func (h *UserHandler) lifecycle(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*identityapp.UserDTO, error)) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	user, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ResetPassword sets a temporary password that must be changed at
// next login
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Password reset"})
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
