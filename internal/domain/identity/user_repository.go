package identity

import (
	"context"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	Role   *Role       // Filter by access profile
	Status *UserStatus // Filter by account status
	Search string      // Match against username or display name
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username (lowercased)
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll finds users with filtering and pagination
	FindAll(ctx context.Context, filter UserFilter) ([]User, error)

	// FindByRole finds users holding the given role
	FindByRole(ctx context.Context, role Role) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, user *User) error

	// Delete soft deletes a user
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// ExistsByUsername checks whether a username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
