package handler

import (
	notificationapp "github.com/audicob/backend/internal/application/notification"
	"github.com/audicob/backend/internal/domain/notification"
	"github.com/audicob/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the authenticated user's notification feed
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.Service
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(notificationService *notificationapp.Service, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

// RegisterRoutes registers notification routes on the API group
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
	}
}

// NotificationListRequest carries notification feed filters
type NotificationListRequest struct {
	dto.ListRequest
	Unread *bool `form:"unread"`
}

// List returns the authenticated user's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := notification.Filter{Filter: req.ToFilter(), Unread: req.Unread}
	items, err := h.notificationService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// UnreadCount returns the number of unread notifications
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	notificationID, ok := h.BindID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "All notifications marked as read"})
}
