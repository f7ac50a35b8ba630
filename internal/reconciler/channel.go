package reconciler

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/entity"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/stream"
)

const (
	MessageConnected      = "Connected to live updates"
	MessageUpdateReceived = "Update received"
	MessageDisconnected   = "Live updates disconnected"

	ErrorConnection   = "Live updates connection error"
	ErrorStreamClosed = "Live updates disconnected. Please refresh or retry."
)

// Run is a handle on the session run that was current when it was taken.
// Once the run is reset or replaced, updates through the handle are dropped.
type Run struct {
	r     *Reconciler
	epoch uint64
}

// CurrentRun - returns a handle on the current run.
func (that *Reconciler) CurrentRun() Run {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Run{r: that, epoch: that.epoch}
}

func (that Run) activeLocked() bool {
	return that.r.sessionActive && that.epoch == that.r.epoch
}

// Apply - reconciles snapshot into the run, fails with apperror.ErrNoSession once the run is gone.
func (that Run) Apply(snapshot *entity.SessionSnapshot) error {
	that.r.mu.Lock()
	defer that.r.mu.Unlock()

	if !that.activeLocked() {
		return apperror.ErrNoSession
	}

	if snapshot != nil && that.r.applyLocked(snapshot) {
		that.r.notifyLocked()
	}

	return nil
}

// ApplyGameUpdate - takes the game status and message of an engine update, the board stays as played back.
func (that Run) ApplyGameUpdate(update entity.GameUpdate) error {
	that.r.mu.Lock()
	defer that.r.mu.Unlock()

	if !that.activeLocked() {
		return apperror.ErrNoSession
	}

	if update.Status != "" {
		that.r.view.GameStatus = update.Status
	}
	that.r.view.LastMessage = update.Message
	that.r.notifyLocked()

	return nil
}

// channelEvents handles the lifecycle shared by every push channel of one session.
type channelEvents struct {
	Run
	errorMessage string
}

func (that channelEvents) OnOpen() {
	that.r.mu.Lock()
	defer that.r.mu.Unlock()

	if that.epoch != that.r.epoch {
		return
	}

	that.r.channelOpen = true
	that.r.channelClosed = false
	that.r.view.LastMessage = MessageConnected
	that.r.view.ErrorMessage = ""
	that.r.notifyLocked()
}

func (that channelEvents) OnError(err error) {
	that.r.mu.Lock()
	defer that.r.mu.Unlock()

	if that.epoch != that.r.epoch {
		return
	}

	that.r.logger.Warn("live updates channel error", "error", err)
	that.r.view.ErrorMessage = that.errorMessage
	that.r.notifyLocked()
}

func (that channelEvents) OnClose() {
	that.r.mu.Lock()
	defer that.r.mu.Unlock()

	if that.epoch != that.r.epoch {
		return
	}

	that.r.channelOpen = false
	that.r.channelClosed = true
	that.r.view.LastMessage = MessageDisconnected
	that.r.notifyLocked()
}

type snapshotListener struct {
	channelEvents
}

// OnMessage decodes a full session snapshot; undecodable payloads are dropped.
func (that snapshotListener) OnMessage(data []byte) {
	var snapshot entity.SessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		that.r.logger.Warn("dropping undecodable session update", "error", err)
		return
	}

	that.r.mu.Lock()
	defer that.r.mu.Unlock()

	if that.epoch != that.r.epoch {
		return
	}

	if that.r.applyLocked(&snapshot) {
		that.r.view.LastMessage = MessageUpdateReceived
		that.r.notifyLocked()
	}
}

type gameUpdateListener struct {
	channelEvents
	onUpdate func(Run, entity.GameUpdate)
}

// OnMessage records the engine status and lets the caller refresh the session.
// The board is never taken from the engine update.
func (that gameUpdateListener) OnMessage(data []byte) {
	var update entity.GameUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		that.r.logger.Warn("dropping undecodable game update", "error", err)
		return
	}

	if err := that.ApplyGameUpdate(update); err != nil {
		that.r.logger.Debug("dropping game update of a finished run", "gameID", update.GameID)
		return
	}

	if that.onUpdate != nil {
		that.onUpdate(that.Run, update)
	}
}

// SnapshotListener - returns a listener for channels that push full session snapshots.
func (that *Reconciler) SnapshotListener() stream.Listener {
	that.mu.Lock()
	defer that.mu.Unlock()

	return snapshotListener{
		channelEvents: channelEvents{Run: Run{r: that, epoch: that.epoch}, errorMessage: ErrorConnection},
	}
}

// GameUpdateListener - returns a listener for the engine event stream.
// onUpdate runs after every applied update, outside the reconciler lock. Snapshots
// fetched in response go through the passed Run, so a reset in between drops them.
func (that *Reconciler) GameUpdateListener(onUpdate func(Run, entity.GameUpdate)) stream.Listener {
	that.mu.Lock()
	defer that.mu.Unlock()

	return gameUpdateListener{
		channelEvents: channelEvents{Run: Run{r: that, epoch: that.epoch}, errorMessage: ErrorStreamClosed},
		onUpdate:      onUpdate,
	}
}
