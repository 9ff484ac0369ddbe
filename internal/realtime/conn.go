package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/yukikurage/workmatch-api/internal/logger"
	"golang.org/x/time/rate"
)

// heartbeat: a ping every PingPeriod keeps the peer inside PongWait
const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 32 * 1024
	SendBufferSize = 64
)

// ConnOptions tunes a connection's inbound rate limit
type ConnOptions struct {
	RatePerSec float64
	Burst      int
}

// FrameHandler is invoked for every inbound frame that passes decoding and rate limiting
type FrameHandler func(c *Conn, f Frame)

// Conn is a WebSocket channel with a buffered outbound queue
type Conn struct {
	id      string
	ws      *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	userID  atomic.Uint64

	mu     sync.Mutex
	closed bool
}

// NewConn wraps an upgraded WebSocket connection
func NewConn(ws *websocket.Conn, opts ConnOptions) *Conn {
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Conn{
		id:      uuid.NewString(),
		ws:      ws,
		send:    make(chan []byte, SendBufferSize),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// ID returns the connection's unique id
func (c *Conn) ID() string {
	return c.id
}

// UserID returns the authenticated user or 0
func (c *Conn) UserID() uint64 {
	return c.userID.Load()
}

// SetUserID records the authenticated user
func (c *Conn) SetUserID(id uint64) {
	c.userID.Store(id)
}

// Send enqueues payload without blocking
func (c *Conn) Send(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		logger.Warn("websocket send buffer full, dropping frame", "conn_id", c.id, "user_id", c.UserID())
		return false
	}
}

// SendFrame encodes and enqueues a frame
func (c *Conn) SendFrame(f Frame) bool {
	payload, err := Encode(f)
	if err != nil {
		logger.Error("failed to encode frame", "conn_id", c.id, "type", f.Type, "error", err)
		return false
	}
	return c.Send(payload)
}

// Run pumps frames until the peer disconnects. onClose runs before the outbound queue is closed.
func (c *Conn) Run(handle FrameHandler, onClose func(*Conn)) {
	done := make(chan struct{})
	go func() {
		c.writePump()
		close(done)
	}()

	c.readPump(handle)

	if onClose != nil {
		onClose(c)
	}
	c.closeSend()
	<-done
}

func (c *Conn) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Conn) readPump(handle FrameHandler) {
	c.ws.SetReadLimit(MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "conn_id", c.id, "error", err)
			}
			return
		}

		if !c.limiter.Allow() {
			c.SendFrame(ErrorFrame(CodeRateLimited, "too many frames"))
			continue
		}

		f, err := Decode(data)
		if err != nil {
			c.SendFrame(ErrorFrame(CodeInvalidFrame, err.Error()))
			continue
		}
		handle(c, f)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug("websocket write failed", "conn_id", c.id, "error", err)
				c.drain()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.drain()
				return
			}
		}
	}
}

// drain discards queued payloads after a write failure until the queue is closed
func (c *Conn) drain() {
	c.ws.Close()
	for range c.send {
	}
}
