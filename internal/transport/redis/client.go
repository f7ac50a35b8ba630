// Package redis follows session snapshots published on redis pub/sub channels.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/stream"
)

const closeTimeout = time.Second

var ErrSubscriptionClosed = errors.New("redis subscription closed")

// NewClient - connects to redis and checks the connection with a ping.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

type Subscriber struct {
	logger *slog.Logger
	client *redis.Client
	prefix string
}

func NewSubscriber(logger *slog.Logger, client *redis.Client, prefix string) *Subscriber {
	return &Subscriber{
		logger: logger.With("component", "redis-subscriber"),
		client: client,
		prefix: prefix,
	}
}

// ChannelName - "<prefix><sessionID>".
func (that *Subscriber) ChannelName(sessionID string) string {
	return that.prefix + sessionID
}

type Conn struct {
	logger   *slog.Logger
	pubsub   *redis.PubSub
	listener stream.Listener

	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

// Dial - subscribes to the session channel and waits for the subscription to be confirmed.
func (that *Subscriber) Dial(ctx context.Context, sessionID string, listener stream.Listener) (*Conn, error) {
	channel := that.ChannelName(sessionID)

	pubsub := that.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	c := &Conn{
		logger:   that.logger.With("channel", channel),
		pubsub:   pubsub,
		listener: listener,
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	c.logger.Info("subscribed")
	listener.OnOpen()

	go c.readMessages(pubsub.Channel())

	return c, nil
}

func (that *Conn) Close() error {
	var err error

	that.closeOnce.Do(func() {
		close(that.closing)

		if closeErr := that.pubsub.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close subscription: %w", closeErr)
		}

		select {
		case <-that.done:
		case <-time.After(closeTimeout):
			that.logger.Warn("reader did not stop in time")
		}
	})

	return err
}

// go-redis reconnects on its own, the channel only ends when the subscription is closed.
func (that *Conn) readMessages(messages <-chan *redis.Message) {
	defer close(that.done)
	defer that.listener.OnClose()

	for {
		select {
		case <-that.closing:
			return
		case msg, ok := <-messages:
			if !ok {
				if !that.isClosing() {
					that.logger.Warn("subscription ended")
					that.listener.OnError(ErrSubscriptionClosed)
				}
				return
			}

			that.listener.OnMessage([]byte(msg.Payload))
		}
	}
}

func (that *Conn) isClosing() bool {
	select {
	case <-that.closing:
		return true
	default:
		return false
	}
}
