package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/workmatch-api/internal/logger"
)

// RelayChannel is the Redis pub/sub channel shared by every instance
const RelayChannel = "workmatch:realtime"

const (
	publishTimeout = 3 * time.Second
	outboxSize     = 256
)

// envelope carries a payload to the instances holding the user's other channels
type envelope struct {
	Origin  string `json:"origin"`
	UserID  uint64 `json:"userId"`
	Payload []byte `json:"payload"`
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// subscription is the part of *redis.PubSub the relay reads from
type subscription interface {
	Receive(ctx context.Context) (interface{}, error)
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

type subscriber interface {
	subscribe(ctx context.Context, channel string) subscription
}

type redisSubscriber struct {
	client *redis.Client
}

func (s redisSubscriber) subscribe(ctx context.Context, channel string) subscription {
	return s.client.Subscribe(ctx, channel)
}

// Relay fans notifications out across instances through Redis pub/sub.
// Local channels are served first; the result of Notify reflects local delivery only.
// Envelopes are queued for publishing and dropped when the queue is full.
type Relay struct {
	local  *Registry
	pub    publisher
	sub    subscriber
	origin string
	outbox chan []byte
}

// NewRelay wraps the local registry with a Redis-backed fan-out
func NewRelay(local *Registry, client *redis.Client) *Relay {
	return newRelay(local, client, redisSubscriber{client: client}, uuid.NewString())
}

func newRelay(local *Registry, pub publisher, sub subscriber, origin string) *Relay {
	return &Relay{
		local:  local,
		pub:    pub,
		sub:    sub,
		origin: origin,
		outbox: make(chan []byte, outboxSize),
	}
}

// Notify delivers locally, then queues the payload for the other instances without waiting on Redis
func (r *Relay) Notify(userID uint64, payload []byte) bool {
	delivered := r.local.Notify(userID, payload)

	data, err := json.Marshal(envelope{Origin: r.origin, UserID: userID, Payload: payload})
	if err != nil {
		logger.Error("failed to encode relay envelope", "user_id", userID, "error", err)
		return delivered
	}

	select {
	case r.outbox <- data:
	default:
		logger.Warn("relay outbox full, dropping envelope", "user_id", userID)
	}
	return delivered
}

// Run publishes queued envelopes and delivers envelopes from other instances until ctx ends
func (r *Relay) Run(ctx context.Context) error {
	sub := r.sub.subscribe(ctx, RelayChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	logger.Info("realtime relay subscribed", "channel", RelayChannel, "origin", r.origin)

	go r.publishLoop(ctx)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.deliver([]byte(msg.Payload))
		}
	}
}

func (r *Relay) publishLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-r.outbox:
			r.publish(ctx, data)
		}
	}
}

func (r *Relay) publish(ctx context.Context, data []byte) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := r.pub.Publish(ctx, RelayChannel, data).Err(); err != nil {
		logger.Warn("failed to publish relay envelope", "error", err)
	}
}

// deliver hands a remote envelope to local channels and reports whether any accepted it
func (r *Relay) deliver(data []byte) bool {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logger.Warn("discarding malformed relay envelope", "error", err)
		return false
	}
	if env.Origin == r.origin {
		return false
	}
	return r.local.Notify(env.UserID, env.Payload)
}
