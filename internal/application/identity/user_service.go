package identity

import (
	"context"
	"errors"
	"time"

	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user management operations. All operations here
// are reserved for administrators; the permission check happens in the
// HTTP layer.
type UserService struct {
	userRepo  identity.UserRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
	Role        identity.Role
}

// UpdateUserInput contains input for updating a user
type UpdateUserInput struct {
	ID          uuid.UUID
	Email       *string
	DisplayName *string
}

// UserDTO represents user data returned to the API layer
type UserDTO struct {
	ID                 uuid.UUID  `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email,omitempty"`
	DisplayName        string     `json:"display_name"`
	Role               string     `json:"role"`
	Status             string     `json:"status"`
	MustChangePassword bool       `json:"must_change_password"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Create creates a new user account with the given access profile
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	s.logger.Info("Creating new user",
		zap.String("username", input.Username),
		zap.String("role", string(input.Role)))

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	user, err := identity.NewUser(input.Username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
			return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to check email existence", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
		}
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.flushEvents(ctx, user)

	s.logger.Info("User created successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return toUserDTO(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

// List retrieves a paginated list of users
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*shared.Paginated[UserDTO], error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count users")
	}

	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = *toUserDTO(&users[i])
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	result := shared.NewPaginated(dtos, total, filter.Page, pageSize)
	return &result, nil
}

// Update updates a user's contact information
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.findUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if *input.Email != "" && *input.Email != user.Email {
			if _, err := s.userRepo.FindByEmail(ctx, *input.Email); err == nil {
				return nil, shared.NewDomainError("EMAIL_EXISTS", "Email already exists")
			} else if !errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
			}
		}
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	if input.DisplayName != nil {
		if err := user.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	s.logger.Info("User updated", zap.String("user_id", input.ID.String()))

	return toUserDTO(user), nil
}

// ChangeRole moves a user to a different access profile
func (s *UserService) ChangeRole(ctx context.Context, id uuid.UUID, role identity.Role) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == identity.RoleAdministrator && role != identity.RoleAdministrator {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to change user role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change role")
	}

	s.flushEvents(ctx, user)

	s.logger.Info("User role changed",
		zap.String("user_id", id.String()),
		zap.String("new_role", string(role)))

	return toUserDTO(user), nil
}

// Activate reactivates a deactivated or locked user
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Activate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to activate user")
	}

	s.logger.Info("User activated", zap.String("user_id", id.String()))

	return toUserDTO(user), nil
}

// Deactivate deactivates a user account
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == identity.RoleAdministrator {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	s.flushEvents(ctx, user)

	s.logger.Info("User deactivated", zap.String("user_id", id.String()))

	return toUserDTO(user), nil
}

// Unlock clears a lock placed by failed login attempts
func (s *UserService) Unlock(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Unlock(); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to unlock user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unlock user")
	}

	s.logger.Info("User unlocked", zap.String("user_id", id.String()))

	return toUserDTO(user), nil
}

// ResetPassword resets a user's password and forces a change on the
// next login
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.ForcePasswordChange()

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to reset password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.flushEvents(ctx, user)

	s.logger.Info("User password reset", zap.String("user_id", userID.String()))

	return nil
}

// Delete soft deletes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == identity.RoleAdministrator {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))

	return nil
}

// Count returns the total number of users matching the filter
func (s *UserService) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	return s.userRepo.Count(ctx, filter)
}

func (s *UserService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to find user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find user")
	}
	return user, nil
}

// ensureNotLastAdmin blocks removing the last active administrator
func (s *UserService) ensureNotLastAdmin(ctx context.Context) error {
	adminRole := identity.RoleAdministrator
	activeStatus := identity.UserStatusActive
	count, err := s.userRepo.Count(ctx, identity.UserFilter{
		Role:   &adminRole,
		Status: &activeStatus,
	})
	if err != nil {
		s.logger.Error("Failed to count administrators", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify administrator count")
	}
	if count <= 1 {
		return shared.NewDomainError("LAST_ADMINISTRATOR", "The last active administrator cannot be removed")
	}
	return nil
}

func (s *UserService) flushEvents(ctx context.Context, user *identity.User) {
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	user.ClearDomainEvents()

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

func toUserDTO(user *identity.User) *UserDTO {
	return &UserDTO{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		DisplayName:        user.GetDisplayNameOrUsername(),
		Role:               string(user.Role),
		Status:             string(user.Status),
		MustChangePassword: user.MustChangePassword,
		LastLoginAt:        user.LastLoginAt,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}
