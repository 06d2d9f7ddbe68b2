package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequirePermission creates middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, "Authentication required", nil)
			return
		}

		if !claims.HasPermission(permission) {
			handlePermissionDenied(c, "Insufficient permissions", &PermissionContext{
				Required: []string{permission},
				UserID:   claims.UserID,
				Role:     claims.Role,
			})
			return
		}

		c.Next()
	}
}

// RequireAnyPermission creates middleware that requires at least one of the permissions
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, "Authentication required", nil)
			return
		}

		if !claims.HasAnyPermission(permissions...) {
			handlePermissionDenied(c, "Insufficient permissions", &PermissionContext{
				Required: permissions,
				UserID:   claims.UserID,
				Role:     claims.Role,
			})
			return
		}

		c.Next()
	}
}

// RequireAllPermissions creates middleware that requires all of the permissions
func RequireAllPermissions(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, "Authentication required", nil)
			return
		}

		if !claims.HasAllPermissions(permissions...) {
			handlePermissionDenied(c, "Insufficient permissions", &PermissionContext{
				Required: permissions,
				UserID:   claims.UserID,
				Role:     claims.Role,
			})
			return
		}

		c.Next()
	}
}

// RequireRole creates middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, "Authentication required", nil)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		handlePermissionDenied(c, "Insufficient role", &PermissionContext{
			Required: roles,
			UserID:   claims.UserID,
			Role:     claims.Role,
		})
	}
}

// PermissionContext carries details about a denied authorization check
type PermissionContext struct {
	Required []string
	UserID   string
	Role     string
}

func handlePermissionDenied(c *gin.Context, message string, permCtx *PermissionContext) {
	if permCtx != nil {
		if log, exists := c.Get("logger"); exists {
			if zapLog, ok := log.(*zap.Logger); ok {
				zapLog.Warn("Permission denied",
					zap.String("user_id", permCtx.UserID),
					zap.String("role", permCtx.Role),
					zap.Strings("required", permCtx.Required),
					zap.String("path", c.Request.URL.Path),
				)
			}
		}
	}

	status := http.StatusForbidden
	code := "ERR_FORBIDDEN"
	if permCtx == nil {
		status = http.StatusUnauthorized
		code = "ERR_UNAUTHORIZED"
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
