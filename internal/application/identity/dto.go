package identity

import (
	"time"

	"github.com/audicob/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID                 uuid.UUID `json:"id"`
	Username           string    `json:"username"`
	DisplayName        string    `json:"display_name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Permissions        []string  `json:"permissions"`
	MustChangePassword bool      `json:"must_change_password"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput contains the input for user logout. JTI and expiry come
// from the access token the user presented.
type LogoutInput struct {
	UserID         uuid.UUID
	TokenJTI       string
	TokenExpiresAt time.Time
}

// ForceLogoutInput revokes every session of the target user
type ForceLogoutInput struct {
	AdminUserID  uuid.UUID // Admin performing the action
	TargetUserID uuid.UUID
	Reason       string // For the audit log
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User        UserInfo `json:"user"`
	Permissions []string `json:"permissions"`
}

// permissionStrings flattens a role's permission set for token claims
func permissionStrings(role identity.Role) []string {
	perms := role.Permissions()
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:                 user.ID,
		Username:           user.Username,
		DisplayName:        user.GetDisplayNameOrUsername(),
		Email:              user.Email,
		Role:               string(user.Role),
		Permissions:        permissionStrings(user.Role),
		MustChangePassword: user.MustChangePassword,
	}
}
