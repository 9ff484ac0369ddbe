package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/workmatch-api/internal/constants"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/logger"
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/realtime"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

var (
	ErrEmptyMessage    = apierrors.Validation("message content cannot be empty", "content")
	ErrMessageTooLong  = apierrors.Validation(fmt.Sprintf("message content exceeds %d characters", constants.MaxMessageLength), "content")
	ErrSelfMessage     = apierrors.Validation("cannot send a message to yourself", "to_user_id")
	ErrNotRecipient    = apierrors.ForbiddenError("only the recipient can mark this message as read")
	ErrNotNotification = apierrors.ForbiddenError("notification belongs to another user")
)

// Notifier pushes a payload to a user's live channels and reports whether any accepted it
type Notifier interface {
	Notify(userID uint64, payload []byte) bool
}

// MessageService persists direct messages and fans them out to live connections
type MessageService struct {
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	notifier         Notifier
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo repository.MessageRepository,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

// SendMessage stores a message and its notification, then pushes it to the recipient if they are online.
// An offline recipient is not an error.
func (s *MessageService) SendMessage(fromID, toID uint64, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > constants.MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	if fromID == toID {
		return nil, ErrSelfMessage
	}

	sender, err := s.userRepo.FindByID(fromID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "find sender")
	}
	if _, err := s.userRepo.FindByID(toID); err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "find recipient")
	}

	msg := &models.Message{
		FromUserID: fromID,
		ToUserID:   toID,
		Content:    content,
	}
	if err := s.messageRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	relatedID := msg.ID
	notification := &models.Notification{
		UserID:    toID,
		Type:      models.NotificationTypeMessage,
		Content:   fmt.Sprintf("New message from %s: %s", sender.Username, preview(content, constants.NotificationPreview)),
		RelatedID: &relatedID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	if s.notifier != nil {
		payload, err := realtime.Encode(realtime.NewMessageFrame(fromID, msg.ID))
		if err != nil {
			logger.Warn("failed to encode new_message frame", "message_id", msg.ID, "error", err)
			return msg, nil
		}
		delivered := s.notifier.Notify(toID, payload)
		logger.Debug("message dispatched", "message_id", msg.ID, "to_user_id", toID, "delivered", delivered)
	}

	return msg, nil
}

// MarkMessageRead flags a message as read; repeating the call is harmless
func (s *MessageService) MarkMessageRead(actorID, messageID uint64) (*models.Message, error) {
	msg, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		return nil, notFoundOr(err, ErrMessageNotFound, "find message")
	}
	if msg.ToUserID != actorID {
		return nil, ErrNotRecipient
	}
	if msg.IsRead {
		return msg, nil
	}

	if err := s.messageRepo.MarkRead(messageID); err != nil {
		return nil, notFoundOr(err, ErrMessageNotFound, "mark message read")
	}
	msg.IsRead = true
	return msg, nil
}

// GetConversation returns every message exchanged between two users, oldest first
func (s *MessageService) GetConversation(userA, userB uint64) ([]models.Message, error) {
	msgs, err := s.messageRepo.ListConversation(userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return msgs, nil
}

// ListUserMessages returns every message a user sent or received, newest first
func (s *MessageService) ListUserMessages(userID uint64) ([]models.Message, error) {
	msgs, err := s.messageRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// preview cuts s to at most n runes, marking the cut with an ellipsis
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
