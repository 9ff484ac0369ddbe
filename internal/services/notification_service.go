package services

import (
	"fmt"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

// NotificationService reads and acknowledges a user's notifications
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListNotifications returns a user's notifications, newest first, with the unread count
func (s *NotificationService) ListNotifications(userID uint64) ([]models.Notification, int64, error) {
	list, err := s.notificationRepo.ListByUser(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.UnreadCount(userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

// UnreadCount returns how many of a user's notifications are unread
func (s *NotificationService) UnreadCount(userID uint64) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead flags a notification as read; repeating the call is harmless
func (s *NotificationService) MarkNotificationRead(actorID, notificationID uint64) (*models.Notification, error) {
	n, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		return nil, notFoundOr(err, ErrNotificationMissing, "find notification")
	}
	if n.UserID != actorID {
		return nil, ErrNotNotification
	}
	if n.IsRead {
		return n, nil
	}

	if err := s.notificationRepo.MarkRead(notificationID); err != nil {
		return nil, notFoundOr(err, ErrNotificationMissing, "mark notification read")
	}
	n.IsRead = true
	return n, nil
}
