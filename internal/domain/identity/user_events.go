package identity

import (
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type names published on the bus
const (
	EventUserCreated         = "UserCreated"
	EventUserRoleChanged     = "UserRoleChanged"
	EventUserPasswordChanged = "UserPasswordChanged"
	EventUserDeactivated     = "UserDeactivated"
)

// UserCreatedEvent is raised when a login account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserCreated, u.ID, "User"),
		UserID:          u.ID,
		Username:        u.Username,
		Role:            u.Role,
	}
}

// UserRoleChangedEvent is raised when a user's access profile changes
type UserRoleChangedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	OldRole  Role      `json:"old_role"`
	NewRole  Role      `json:"new_role"`
}

// NewUserRoleChangedEvent creates a new UserRoleChangedEvent
func NewUserRoleChangedEvent(u *User, oldRole, newRole Role) *UserRoleChangedEvent {
	return &UserRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserRoleChanged, u.ID, "User"),
		UserID:          u.ID,
		Username:        u.Username,
		OldRole:         oldRole,
		NewRole:         newRole,
	}
}

// UserPasswordChangedEvent is raised when a password is changed or reset
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(u *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserPasswordChanged, u.ID, "User"),
		UserID:          u.ID,
		Username:        u.Username,
	}
}

// UserDeactivatedEvent is raised when an account is deactivated
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewUserDeactivatedEvent creates a new UserDeactivatedEvent
func NewUserDeactivatedEvent(u *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserDeactivated, u.ID, "User"),
		UserID:          u.ID,
		Username:        u.Username,
	}
}
