package handler

import (
	identityapp "github.com/audicob/backend/internal/application/identity"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/interfaces/http/dto"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler exposes login, token and session endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(authService *identityapp.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// RegisterRoutes registers auth routes on the API group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.POST("/change-password", h.ChangePassword)
		auth.POST("/force-logout/:id",
			middleware.RequirePermission(string(identity.PermissionUsersWrite)),
			h.ForceLogout)
	}
}

// LoginRequest carries user credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), identityapp.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	input := identityapp.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
	}
	if claims.ExpiresAt != nil {
		input.TokenExpiresAt = claims.ExpiresAt.Time
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile and permissions
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	result, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ChangePasswordRequest carries a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword changes the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), identityapp.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Password changed"})
}

// ForceLogoutRequest carries the reason for revoking a user's sessions
type ForceLogoutRequest struct {
	Reason string `json:"reason"`
}

// ForceLogout invalidates every active session of the target user
func (h *AuthHandler) ForceLogout(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	targetID, ok := h.BindID(c)
	if !ok {
		return
	}

	var req ForceLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.HandleBindingError(c, err)
		return
	}

	err := h.authService.ForceLogout(c.Request.Context(), identityapp.ForceLogoutInput{
		AdminUserID:  adminID,
		TargetUserID: targetID,
		Reason:       req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Sessions revoked"})
}
