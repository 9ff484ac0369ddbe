package realtime

import (
	"encoding/json"
	"fmt"

	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
)

// FrameType discriminates real-time frames
type FrameType string

// Client to server frames
const (
	FrameAuthenticate FrameType = "authenticate"
	FrameMessage      FrameType = "message"
	FramePing         FrameType = "ping"
)

// Server to client frames
const (
	FrameAuthenticated FrameType = "authenticated"
	FrameMessageSent   FrameType = "message_sent"
	FrameNewMessage    FrameType = "new_message"
	FramePong          FrameType = "pong"
	FrameError         FrameType = "error"
)

// Error frame codes share the REST error vocabulary
const (
	CodeUnauthorized = apierrors.ErrCodeUnauthorized
	CodeForbidden    = apierrors.ErrCodeForbidden
	CodeRateLimited  = apierrors.ErrCodeRateLimited
	CodeInvalidFrame = apierrors.ErrCodeInvalidInput
	CodeInternal     = apierrors.ErrCodeInternalError
)

// Frame is the single JSON envelope used in both directions; unused fields are omitted
type Frame struct {
	Type       FrameType `json:"type"`
	UserID     uint64    `json:"userId,omitempty"`
	ToUserID   uint64    `json:"toUserId,omitempty"`
	FromUserID uint64    `json:"fromUserId,omitempty"`
	MessageID  uint64    `json:"messageId,omitempty"`
	Content    string    `json:"content,omitempty"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// Encode marshals a frame for the wire
func Encode(f Frame) ([]byte, error) {
	return json.Marshal(f)
}

// Decode parses a frame and rejects frames without a type
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("invalid frame: %w", err)
	}
	if f.Type == "" {
		return Frame{}, fmt.Errorf("invalid frame: missing type")
	}
	return f, nil
}

func AuthenticatedFrame(userID uint64) Frame {
	return Frame{Type: FrameAuthenticated, UserID: userID}
}

func MessageSentFrame(messageID uint64) Frame {
	return Frame{Type: FrameMessageSent, MessageID: messageID}
}

func NewMessageFrame(fromUserID, messageID uint64) Frame {
	return Frame{Type: FrameNewMessage, FromUserID: fromUserID, MessageID: messageID}
}

func PongFrame() Frame {
	return Frame{Type: FramePong}
}

func ErrorFrame(code, message string) Frame {
	return Frame{Type: FrameError, Code: code, Message: message}
}
