package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/dto"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/services"
)

// MessageHandler serves direct messages and notifications
type MessageHandler struct {
	messageService      *services.MessageService
	notificationService *services.NotificationService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService, notificationService *services.NotificationService) *MessageHandler {
	return &MessageHandler{
		messageService:      messageService,
		notificationService: notificationService,
	}
}

// ListMessages returns every message of the caller, or one conversation when ?with= is set
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if with := c.Query("with"); with != "" {
		otherID, err := strconv.ParseUint(with, 10, 64)
		if err != nil || otherID == 0 {
			apierrors.BadRequest(c, "Invalid with parameter")
			return
		}

		msgs, err := h.messageService.GetConversation(userID, otherID)
		if err != nil {
			apierrors.RespondWithDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": dto.ToMessageDTOs(msgs)})
		return
	}

	msgs, err := h.messageService.ListUserMessages(userID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": dto.ToMessageDTOs(msgs)})
}

// SendMessage stores a message and pushes it to the recipient
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	type SendRequest struct {
		ToUserID uint64 `json:"to_user_id" binding:"required"`
		Content  string `json:"content"`
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	msg, err := h.messageService.SendMessage(userID, req.ToUserID, req.Content)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMessageDTO(*msg))
}

// MarkMessageRead flags a received message as read
func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	msgID, ok := parseIDParam(c, "id", "message ID")
	if !ok {
		return
	}

	msg, err := h.messageService.MarkMessageRead(userID, msgID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMessageDTO(*msg))
}

// ListNotifications returns the caller's notifications with the unread count
func (h *MessageHandler) ListNotifications(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	list, unread, err := h.notificationService.ListNotifications(userID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationListResponse(list, unread))
}

// MarkNotificationRead flags one of the caller's notifications as read
func (h *MessageHandler) MarkNotificationRead(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(c, "id", "notification ID")
	if !ok {
		return
	}

	n, err := h.notificationService.MarkNotificationRead(userID, notificationID)
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationDTO(*n))
}
