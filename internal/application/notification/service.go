package notification

import (
	"context"
	"fmt"

	"github.com/audicob/backend/internal/domain/notification"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service serves a user's notification feed
type Service struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewService creates a new notification Service
func NewService(repo notification.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns a user's notifications, most recent first
func (s *Service) List(ctx context.Context, recipientID uuid.UUID, filter notification.Filter) ([]notification.Notification, error) {
	items, err := s.repo.FindByRecipient(ctx, recipientID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return items, nil
}

// UnreadCount returns how many notifications the user has not read
func (s *Service) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification as read. Users can only touch their own.
func (s *Service) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("failed to load notification: %w", err)
	}
	if n == nil {
		return shared.ErrNotFound
	}
	if n.RecipientID != recipientID {
		return shared.ErrForbidden
	}

	n.MarkRead()
	return s.repo.Save(ctx, n)
}

// MarkAllRead marks every notification of the user as read
func (s *Service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}
