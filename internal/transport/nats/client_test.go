package nats_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/nats"
	"github.com/rocketscienceinc/tictactoe-viewer/testing/suite"
)

const waitFor = 5 * time.Second

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

func (that *recorder) received() []string {
	that.mu.Lock()
	defer that.mu.Unlock()
	return append([]string{}, that.messages...)
}

func (that *recorder) closes() int {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.closed
}

func (that *recorder) failures() []error {
	that.mu.Lock()
	defer that.mu.Unlock()
	return append([]error{}, that.errs...)
}

func TestSubscriber_Dial(t *testing.T) {
	ctx, s := suite.NewNATS(t)

	t.Run("Delivers published snapshots of the session", func(t *testing.T) {
		// Given: a subscription on session s-1
		conn, err := nats.Connect(s.Logger, s.NATSURL)
		require.NoError(t, err)
		t.Cleanup(conn.Close)

		subscriber := nats.NewSubscriber(s.Logger, conn, "session.")
		listener := &recorder{}

		channel, err := subscriber.Dial(ctx, "s-1", listener)
		require.NoError(t, err)

		// When: snapshots are published for s-2 and s-1
		require.NoError(t, s.NATS.Publish("session.s-2", []byte(`{"sessionId":"s-2"}`)))
		require.NoError(t, s.NATS.Publish("session.s-1", []byte(`{"sessionId":"s-1"}`)))
		require.NoError(t, s.NATS.FlushWithContext(ctx))

		// Then: only the own snapshot arrives
		require.Eventually(t, func() bool {
			return len(listener.received()) == 1
		}, waitFor, 10*time.Millisecond)
		assert.Equal(t, []string{`{"sessionId":"s-1"}`}, listener.received())

		// When: closing twice
		require.NoError(t, channel.Close())
		require.NoError(t, channel.Close())

		// Then: close is reported once without error
		listener.mu.Lock()
		defer listener.mu.Unlock()
		assert.Equal(t, 1, listener.opened)
		assert.Equal(t, 1, listener.closed)
		assert.Empty(t, listener.errs)
	})

	t.Run("A closed connection is reported as an error", func(t *testing.T) {
		// Given: a subscription over its own connection
		conn, err := nats.Connect(s.Logger, s.NATSURL)
		require.NoError(t, err)

		subscriber := nats.NewSubscriber(s.Logger, conn, "session.")
		listener := &recorder{}

		channel, err := subscriber.Dial(ctx, "s-1", listener)
		require.NoError(t, err)
		t.Cleanup(func() { _ = channel.Close() })

		// When: the connection goes away
		conn.Close()

		// Then: the reader stops with an error
		require.Eventually(t, func() bool {
			return listener.closes() == 1
		}, waitFor, 10*time.Millisecond)
		assert.Len(t, listener.failures(), 1)
		assert.Equal(t, "session.abc", subscriber.Subject("abc"))
	})
}
