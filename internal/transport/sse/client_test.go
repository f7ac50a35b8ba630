package sse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

type recorder struct {
	mu       sync.Mutex
	opened   int
	closed   int
	messages []string
	errs     []error
}

func (that *recorder) OnOpen() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.opened++
}

func (that *recorder) OnMessage(data []byte) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.messages = append(that.messages, string(data))
}

func (that *recorder) OnError(err error) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.errs = append(that.errs, err)
}

func (that *recorder) OnClose() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.closed++
}

func newTestDialer(t *testing.T, handler http.HandlerFunc) *Dialer {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewDialer(slog.New(slog.NewTextHandler(io.Discard, nil)), server.URL+"/engine/")
}

func TestDialer_Dial(t *testing.T) {
	t.Run("Parses events until the stream ends", func(t *testing.T) {
		// Given: an engine stream with comments, multi-line data and other fields
		dialer := newTestDialer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/engine/games/g-1/stream", r.URL.Path)
			assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

			w.Header().Set("Content-Type", "text/event-stream;charset=UTF-8")
			w.WriteHeader(http.StatusOK)

			fmt.Fprint(w, ": keep-alive\n\n")
			fmt.Fprint(w, "event: ping\n\n")
			fmt.Fprint(w, "event: game\ndata: {\"status\":\"IN_PROGRESS\"}\n\n")
			fmt.Fprint(w, "data:{\"a\":1,\ndata: \"b\":2}\nid: 7\n\n")
			w.(http.Flusher).Flush()
		})
		listener := &recorder{}

		// When: dialing the stream
		conn, err := dialer.Dial(context.Background(), "g-1", listener)
		require.NoError(t, err)

		// Then: each event is delivered and the end is reported as an error
		select {
		case <-conn.done:
		case <-time.After(waitFor):
			t.Fatal("reader did not stop")
		}

		listener.mu.Lock()
		defer listener.mu.Unlock()
		assert.Equal(t, 1, listener.opened)
		assert.Equal(t, []string{`{"status":"IN_PROGRESS"}`, "{\"a\":1,\n\"b\":2}"}, listener.messages)
		require.Len(t, listener.errs, 1)
		assert.ErrorIs(t, listener.errs[0], ErrStreamEnded)
		assert.Equal(t, 1, listener.closed)
	})

	t.Run("Close ends the stream quietly", func(t *testing.T) {
		// Given: a stream that stays open
		dialer := newTestDialer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			w.(http.Flusher).Flush()
			<-r.Context().Done()
		})
		listener := &recorder{}

		conn, err := dialer.Dial(context.Background(), "g-1", listener)
		require.NoError(t, err)

		// When: closing from the client
		require.NoError(t, conn.Close())

		// Then: only close is reported
		listener.mu.Lock()
		defer listener.mu.Unlock()
		assert.Equal(t, 1, listener.closed)
		assert.Empty(t, listener.errs)
	})

	t.Run("Rejects a non stream response", func(t *testing.T) {
		dialer := newTestDialer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		})
		listener := &recorder{}

		_, err := dialer.Dial(context.Background(), "g-1", listener)

		require.ErrorIs(t, err, ErrUnexpectedResponse)
		assert.Zero(t, listener.opened)
		assert.Zero(t, listener.closed)
	})

	t.Run("Rejects a success that is not an event stream", func(t *testing.T) {
		dialer := newTestDialer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"gameId":"g-1"}`)
		})
		listener := &recorder{}

		_, err := dialer.Dial(context.Background(), "g-1", listener)

		require.ErrorIs(t, err, ErrUnexpectedResponse)
		assert.Zero(t, listener.opened)
	})
}
