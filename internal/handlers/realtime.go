package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/logger"
	"github.com/yukikurage/workmatch-api/internal/realtime"
	"github.com/yukikurage/workmatch-api/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the session cookie already gates this route
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RealtimeHandler upgrades authenticated requests to live channels
type RealtimeHandler struct {
	registry       *realtime.Registry
	messageService *services.MessageService
	connOptions    realtime.ConnOptions
}

// NewRealtimeHandler creates a new RealtimeHandler
func NewRealtimeHandler(registry *realtime.Registry, messageService *services.MessageService, opts realtime.ConnOptions) *RealtimeHandler {
	return &RealtimeHandler{
		registry:       registry,
		messageService: messageService,
		connOptions:    opts,
	}
}

// ServeWS upgrades the request and serves frames until the peer disconnects
func (h *RealtimeHandler) ServeWS(c *gin.Context) {
	sessionUserID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		logger.Warn("websocket upgrade failed", "user_id", sessionUserID, "error", err)
		return
	}

	conn := realtime.NewConn(ws, h.connOptions)
	log := logger.With("conn_id", conn.ID(), "session_user_id", sessionUserID)
	log.Debug("websocket connected")

	conn.Run(func(conn *realtime.Conn, f realtime.Frame) {
		h.handleFrame(sessionUserID, conn, f)
	}, func(conn *realtime.Conn) {
		h.registry.Unregister(conn)
		log.Debug("websocket disconnected")
	})
}

func (h *RealtimeHandler) handleFrame(sessionUserID uint64, conn *realtime.Conn, f realtime.Frame) {
	switch f.Type {
	case realtime.FramePing:
		conn.SendFrame(realtime.PongFrame())

	case realtime.FrameAuthenticate:
		if f.UserID != sessionUserID {
			conn.SendFrame(realtime.ErrorFrame(realtime.CodeForbidden, "userId does not match the session"))
			return
		}
		conn.SetUserID(sessionUserID)
		h.registry.Register(sessionUserID, conn)
		conn.SendFrame(realtime.AuthenticatedFrame(sessionUserID))

	case realtime.FrameMessage:
		fromID := conn.UserID()
		if fromID == 0 {
			conn.SendFrame(realtime.ErrorFrame(realtime.CodeUnauthorized, "authenticate first"))
			return
		}

		msg, err := h.messageService.SendMessage(fromID, f.ToUserID, f.Content)
		if err != nil {
			conn.SendFrame(errorFrameFor(err))
			return
		}
		conn.SendFrame(realtime.MessageSentFrame(msg.ID))

	default:
		conn.SendFrame(realtime.ErrorFrame(realtime.CodeInvalidFrame, "unknown frame type"))
	}
}

// errorFrameFor turns a service error into an error frame, hiding unexpected failures
func errorFrameFor(err error) realtime.Frame {
	if code, ok := apierrors.CodeOf(err); ok {
		return realtime.ErrorFrame(code, err.Error())
	}
	logger.Error("realtime message failed", "error", err)
	return realtime.ErrorFrame(realtime.CodeInternal, "internal server error")
}
