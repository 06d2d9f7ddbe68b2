package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/audicob/backend/internal/domain/notification"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/infrastructure/persistence/models"
)

// GormNotificationRepository implements notification.Repository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter notification.Filter) ([]notification.Notification, error) {
	var notificationModels []models.NotificationModel
	query := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ?", recipientID)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Unread != nil {
		query = query.Where("read = ?", !*filter.Unread)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]notification.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	model := models.NotificationModelFromDomain(n)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Updates(map[string]interface{}{
			"read":       true,
			"read_at":    now,
			"updated_at": now,
		}).Error
}

func (r *GormNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ notification.Repository = (*GormNotificationRepository)(nil)
