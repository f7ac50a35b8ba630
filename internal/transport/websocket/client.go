package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/stream"
)

const (
	handshakeTimeout = 10 * time.Second
	closeTimeout     = time.Second
)

// Dialer opens the session update socket of the session service.
type Dialer struct {
	logger  *slog.Logger
	baseURL string
	dialer  *websocket.Dialer
}

func NewDialer(logger *slog.Logger, baseURL string) *Dialer {
	return &Dialer{
		logger:  logger.With("component", "websocket"),
		baseURL: baseURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

// Conn is an open session socket. Messages are delivered to the listener from a single read goroutine.
type Conn struct {
	logger   *slog.Logger
	conn     *websocket.Conn
	listener stream.Listener

	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

// Dial - connects to {baseURL}?sessionId={id} and starts reading.
func (that *Dialer) Dial(ctx context.Context, sessionID string, listener stream.Listener) (*Conn, error) {
	endpoint, err := url.Parse(that.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket url: %w", err)
	}

	query := endpoint.Query()
	query.Set("sessionId", sessionID)
	endpoint.RawQuery = query.Encode()

	conn, resp, err := that.dialer.DialContext(ctx, endpoint.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", endpoint.Redacted(), err)
	}

	c := &Conn{
		logger:   that.logger.With("sessionID", sessionID),
		conn:     conn,
		listener: listener,
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	c.logger.Info("WebSocket connection established")
	listener.OnOpen()

	go c.readMessages()

	return c, nil
}

// Close - sends a close frame and waits for the reader to stop.
func (that *Conn) Close() error {
	var err error

	that.closeOnce.Do(func() {
		close(that.closing)

		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if writeErr := that.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeTimeout)); writeErr != nil &&
			!errors.Is(writeErr, websocket.ErrCloseSent) {
			that.logger.Debug("failed to send close frame", "error", writeErr)
		}

		if closeErr := that.conn.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close websocket: %w", closeErr)
		}

		select {
		case <-that.done:
		case <-time.After(closeTimeout):
			that.logger.Warn("websocket reader did not stop in time")
		}
	})

	return err
}

func (that *Conn) readMessages() {
	defer close(that.done)
	defer that.listener.OnClose()

	for {
		msgType, data, err := that.conn.ReadMessage()
		if err != nil {
			if !that.isClosing() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				that.logger.Error("error reading message", "error", err)
				that.listener.OnError(err)
			}
			return
		}

		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		that.listener.OnMessage(data)
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
