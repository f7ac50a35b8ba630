package reconciler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/entity"
)

func TestSnapshotListener(t *testing.T) {
	t.Run("Follows the channel lifecycle", func(t *testing.T) {
		// Given: a session with a snapshot listener
		r, clock := newTestReconciler(t)
		r.BeginSession("s-1", "g-1")
		listener := r.SnapshotListener()
		r.SetError("old error")

		// When: the channel opens
		listener.OnOpen()

		// Then: the run is live and caught up
		view := r.View()
		assert.Equal(t, PhaseCaughtUp, view.Phase)
		assert.Equal(t, MessageConnected, view.LastMessage)
		assert.Empty(t, view.ErrorMessage)

		// When: a snapshot is pushed
		listener.OnMessage([]byte(`{"sessionId":"s-1","gameId":"g-1","status":"IN_PROGRESS","moves":[{"player":"x","row":0,"column":0}]}`))

		// Then: it is applied and played back
		assert.Equal(t, MessageUpdateReceived, r.View().LastMessage)
		assert.Equal(t, PhasePlaying, r.View().Phase)
		advance(t, r, clock, 1)
		assert.Equal(t, entity.PlayerX, r.View().Board[0][0])
		assert.Equal(t, PhaseCaughtUp, r.View().Phase)

		// When: the channel reports an error and closes
		listener.OnError(errors.New("connection reset"))
		assert.Equal(t, ErrorConnection, r.View().ErrorMessage)
		listener.OnClose()

		// Then: the board is untouched and the run is closed
		view = r.View()
		assert.Equal(t, PhaseClosed, view.Phase)
		assert.Equal(t, MessageDisconnected, view.LastMessage)
		assert.Equal(t, entity.PlayerX, view.Board[0][0])
	})

	t.Run("Drops undecodable payloads", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.BeginSession("s-1", "g-1")
		listener := r.SnapshotListener()
		listener.OnOpen()

		listener.OnMessage([]byte(`{"moves": "not a list"`))

		view := r.View()
		assert.Equal(t, MessageConnected, view.LastMessage)
		assert.Empty(t, view.ErrorMessage)
		assert.Empty(t, view.Moves)
	})

	t.Run("Ignores events of a previous run", func(t *testing.T) {
		// Given: a listener from a run that has been reset
		r, _ := newTestReconciler(t)
		r.BeginSession("s-1", "g-1")
		stale := r.SnapshotListener()
		r.Reset()
		r.BeginSession("s-2", "g-2")

		// When: the old channel reports a close and a late snapshot
		stale.OnClose()
		stale.OnMessage([]byte(`{"sessionId":"s-2","status":"COMPLETED","moves":[{"player":"X","row":1,"column":1}]}`))

		// Then: the new run does not see them
		view := r.View()
		assert.Equal(t, PhaseConnecting, view.Phase)
		assert.Empty(t, view.SessionStatus)
		assert.Empty(t, view.Moves)
	})
}

func TestGameUpdateListener(t *testing.T) {
	t.Run("Updates status only and notifies the caller", func(t *testing.T) {
		// Given: a game update listener
		r, _ := newTestReconciler(t)
		r.BeginSession("s-1", "g-1")

		var received []entity.GameUpdate
		listener := r.GameUpdateListener(func(_ Run, update entity.GameUpdate) {
			received = append(received, update)
		})

		// When: the engine pushes a state with a board
		listener.OnMessage([]byte(`{"gameId":"g-1","board":[["X","O","X"],[" "," "," "],[" "," "," "]],"status":"X_WINS","currentPlayer":"O","message":"X wins"}`))

		// Then: status and message change, the board does not
		view := r.View()
		assert.Equal(t, entity.GameStatusXWins, view.GameStatus)
		assert.Equal(t, "X wins", view.LastMessage)
		assert.True(t, view.Board.IsEmpty())
		require.Len(t, received, 1)
		assert.Equal(t, "g-1", received[0].GameID)
	})

	t.Run("Errors use the stream text", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		r.BeginSession("s-1", "g-1")
		listener := r.GameUpdateListener(nil)

		listener.OnError(errors.New("eof"))

		assert.Equal(t, ErrorStreamClosed, r.View().ErrorMessage)
	})

	t.Run("Undecodable updates do not reach the caller", func(t *testing.T) {
		r, _ := newTestReconciler(t)
		called := false
		listener := r.GameUpdateListener(func(Run, entity.GameUpdate) { called = true })

		listener.OnMessage([]byte(`garbage`))

		assert.False(t, called)
	})
}

func TestRun_ApplyGameUpdate(t *testing.T) {
	// Given: a played back board
	r, clock := newTestReconciler(t)
	r.BeginSession("s-1", "g-1")
	r.Apply(&entity.SessionSnapshot{
		SessionID: "s-1",
		Status:    entity.SessionStatusInProgress,
		Moves:     []entity.Move{{Player: "X", Row: 0, Column: 0}},
	})
	advance(t, r, clock, 1)
	run := r.CurrentRun()

	// When: an update without status arrives, then one with status
	require.NoError(t, run.ApplyGameUpdate(entity.GameUpdate{GameID: "g-1", Message: "O to move"}))
	assert.Equal(t, "O to move", r.View().LastMessage)
	assert.Empty(t, r.View().GameStatus)

	require.NoError(t, run.ApplyGameUpdate(entity.GameUpdate{GameID: "g-1", Status: entity.GameStatusDraw, Board: [][]string{{"O", "O", "O"}}}))

	// Then: the status changes and the board keeps the played back move
	view := r.View()
	assert.Equal(t, entity.GameStatusDraw, view.GameStatus)
	assert.Empty(t, view.LastMessage)
	assert.Equal(t, entity.PlayerX, view.Board[0][0])
	assert.Equal(t, entity.EmptyCell, view.Board[0][1])

	// When: the run is reset
	r.Reset()

	// Then: updates through the old handle are refused
	require.ErrorIs(t, run.ApplyGameUpdate(entity.GameUpdate{GameID: "g-1", Status: entity.GameStatusXWins}), apperror.ErrNoSession)
	assert.Empty(t, r.View().GameStatus)
}
