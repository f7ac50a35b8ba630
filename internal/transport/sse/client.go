// Package sse reads the engine's server-sent event stream of a game.
package sse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/r3labs/sse/v2"
	"gopkg.in/cenkalti/backoff.v1"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/stream"
)

var (
	ErrStreamEnded        = errors.New("event stream ended")
	ErrUnexpectedResponse = errors.New("unexpected event stream response")
)

type Dialer struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
}

func NewDialer(logger *slog.Logger, baseURL string) *Dialer {
	return &Dialer{
		logger:  logger.With("component", "sse"),
		baseURL: strings.TrimRight(baseURL, "/"),
		// no client timeout, the stream stays open for the whole game
		httpClient: &http.Client{},
	}
}

type Conn struct {
	logger   *slog.Logger
	listener stream.Listener
	cancel   context.CancelFunc

	closeOnce sync.Once
	closing   chan struct{}
	done      chan struct{}
}

// Dial - opens GET {baseURL}/games/{gameID}/stream and returns once the stream is confirmed.
// A dropped stream is reported, not reconnected: the session API stays the source of truth.
func (that *Dialer) Dial(ctx context.Context, gameID string, listener stream.Listener) (*Conn, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	c := &Conn{
		logger:   that.logger.With("gameID", gameID),
		listener: listener,
		cancel:   cancel,
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	opened := make(chan struct{})

	client := sse.NewClient(that.baseURL + "/games/" + url.PathEscape(gameID) + "/stream")
	client.Connection = that.httpClient
	client.ReconnectStrategy = &backoff.StopBackOff{}
	client.ResponseValidator = func(_ *sse.Client, resp *http.Response) error {
		mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
		if resp.StatusCode != http.StatusOK || mediaType != "text/event-stream" {
			resp.Body.Close()
			return fmt.Errorf("%w: status %d, content type %q", ErrUnexpectedResponse, resp.StatusCode, mediaType)
		}

		c.logger.Info("event stream opened")
		listener.OnOpen()
		close(opened)

		return nil
	}

	failed := make(chan error, 1)

	go func() {
		err := client.SubscribeRawWithContext(streamCtx, c.onEvent)

		select {
		case <-opened:
			c.stop(err)
		default:
			close(c.done)
			failed <- err
		}
	}()

	select {
	case <-opened:
		return c, nil
	case err := <-failed:
		cancel()
		return nil, fmt.Errorf("failed to open event stream: %w", err)
	}
}

func (that *Conn) Close() error {
	that.closeOnce.Do(func() {
		close(that.closing)
		that.cancel()
		<-that.done
	})

	return nil
}

// onEvent forwards the data of an event; events without data, like keep-alives, are skipped.
func (that *Conn) onEvent(event *sse.Event) {
	if len(event.Data) == 0 {
		return
	}

	that.listener.OnMessage(bytes.Clone(event.Data))
}

func (that *Conn) stop(err error) {
	defer close(that.done)
	defer that.listener.OnClose()

	if that.isClosing() {
		return
	}

	if err == nil || errors.Is(err, io.EOF) {
		err = ErrStreamEnded
	}

	that.logger.Warn("event stream stopped", "error", err)
	that.listener.OnError(err)
}

func (that *Conn) isClosing() bool {
	select {
	case <-that.closing:
		return true
	default:
		return false
	}
}
