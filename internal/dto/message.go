package dto

import (
	"time"

	"github.com/yukikurage/workmatch-api/internal/models"
)

// MessageDTO represents a direct message in API responses
type MessageDTO struct {
	ID         uint64    `json:"id"`
	FromUserID uint64    `json:"from_user_id"`
	ToUserID   uint64    `json:"to_user_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Content   string                  `json:"content"`
	RelatedID *uint64                 `json:"related_id,omitempty"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

// NotificationListResponse wraps a user's notifications with the unread count
type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unread_count"`
}

// ToMessageDTO converts a message to DTO
func ToMessageDTO(msg models.Message) MessageDTO {
	return MessageDTO{
		ID:         msg.ID,
		FromUserID: msg.FromUserID,
		ToUserID:   msg.ToUserID,
		Content:    msg.Content,
		IsRead:     msg.IsRead,
		CreatedAt:  msg.CreatedAt,
	}
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(msgs []models.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, msg := range msgs {
		out[i] = ToMessageDTO(msg)
	}
	return out
}

// ToNotificationDTO converts a notification to DTO
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Type:      n.Type,
		Content:   n.Content,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// NewNotificationListResponse builds the notification list payload
func NewNotificationListResponse(list []models.Notification, unread int64) NotificationListResponse {
	out := make([]NotificationDTO, len(list))
	for i, n := range list {
		out[i] = ToNotificationDTO(n)
	}
	return NotificationListResponse{Notifications: out, UnreadCount: unread}
}
