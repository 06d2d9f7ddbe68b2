package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/audicob/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for in-app notifications.
type NotificationModel struct {
	BaseModel
	RecipientID uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	Type        notification.Type `gorm:"type:varchar(30);not null"`
	Title       string            `gorm:"type:varchar(200);not null"`
	Body        string            `gorm:"type:text"`
	ClientID    *uuid.UUID        `gorm:"type:uuid;index"`
	Important   bool              `gorm:"not null;default:false"`
	Read        bool              `gorm:"not null;default:false;index"`
	ReadAt      *time.Time
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity:  m.BaseModel.ToDomain(),
		RecipientID: m.RecipientID,
		Type:        m.Type,
		Title:       m.Title,
		Body:        m.Body,
		ClientID:    m.ClientID,
		Important:   m.Important,
		Read:        m.Read,
		ReadAt:      m.ReadAt,
	}
}

func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.RecipientID = n.RecipientID
	m.Type = n.Type
	m.Title = n.Title
	m.Body = n.Body
	m.ClientID = n.ClientID
	m.Important = n.Important
	m.Read = n.Read
	m.ReadAt = n.ReadAt
}

func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
