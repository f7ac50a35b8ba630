// Package nats follows session snapshots published on NATS subjects.
package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/stream"
)

const (
	reconnectWait = 2 * time.Second
	closeTimeout  = time.Second
)

// Connect - connects with infinite reconnects; connection events are logged.
func Connect(logger *slog.Logger, url string) (*nats.Conn, error) {
	log := logger.With("component", "nats")

	conn, err := nats.Connect(url,
		nats.Name("tictactoe-viewer"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error("NATS error", "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return conn, nil
}

type Subscriber struct {
	logger *slog.Logger
	conn   *nats.Conn
	prefix string
}

func NewSubscriber(logger *slog.Logger, conn *nats.Conn, prefix string) *Subscriber {
	return &Subscriber{
		logger: logger.With("component", "nats-subscriber"),
		conn:   conn,
		prefix: prefix,
	}
}

// Subject - "<prefix><sessionID>".
func (that *Subscriber) Subject(sessionID string) string {
	return that.prefix + sessionID
}

type Conn struct {
	logger   *slog.Logger
	sub      *nats.Subscription
	listener stream.Listener
	ctx      context.Context
	cancel   context.CancelFunc

	closeOnce sync.Once
	done      chan struct{}
}

// Dial - subscribes to the session subject; the flush makes sure the server registered the interest.
func (that *Subscriber) Dial(ctx context.Context, sessionID string, listener stream.Listener) (*Conn, error) {
	subject := that.Subject(sessionID)

	sub, err := that.conn.SubscribeSync(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	if err = that.conn.FlushWithContext(ctx); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("failed to flush subscription to %s: %w", subject, err)
	}

	readCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	c := &Conn{
		logger:   that.logger.With("subject", subject),
		sub:      sub,
		listener: listener,
		ctx:      readCtx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	c.logger.Info("subscribed")
	listener.OnOpen()

	go c.readMessages()

	return c, nil
}

func (that *Conn) Close() error {
	var err error

	that.closeOnce.Do(func() {
		that.cancel()

		select {
		case <-that.done:
		case <-time.After(closeTimeout):
			that.logger.Warn("reader did not stop in time")
		}

		if unsubErr := that.sub.Unsubscribe(); unsubErr != nil && !errors.Is(unsubErr, nats.ErrConnectionClosed) {
			err = fmt.Errorf("failed to unsubscribe: %w", unsubErr)
		}
	})

	return err
}

func (that *Conn) readMessages() {
	defer close(that.done)
	defer that.listener.OnClose()

	for {
		msg, err := that.sub.NextMsgWithContext(that.ctx)
		if err != nil {
			if that.ctx.Err() != nil {
				return
			}

			that.logger.Warn("subscription ended", "error", err)
			that.listener.OnError(err)
			return
		}

		that.listener.OnMessage(msg.Data)
	}
}
