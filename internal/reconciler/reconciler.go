package reconciler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/entity"
)

// DefaultInterval is the delay between two rendered moves.
const DefaultInterval = 500 * time.Millisecond

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConnecting Phase = "connecting"
	PhasePlaying    Phase = "playing"
	PhaseCaughtUp   Phase = "caught-up"
	PhaseClosed     Phase = "closed"
)

// View is a copy of everything the client shows for the current run.
type View struct {
	SessionID     string
	GameID        string
	SessionStatus string
	GameStatus    string
	Board         entity.Board
	Moves         []entity.Move
	Cursor        int
	LastMessage   string
	ErrorMessage  string
	Simulating    bool
	Phase         Phase
}

type Option func(*Reconciler)

// WithClock replaces the real clock, tests use clockwork.NewFakeClock.
func WithClock(clock clockwork.Clock) Option {
	return func(r *Reconciler) {
		r.clock = clock
	}
}

func WithInterval(interval time.Duration) Option {
	return func(r *Reconciler) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

// WithListener registers fn to receive a copy of the view after every change.
// fn runs while the reconciler is locked and must not call back into it.
func WithListener(fn func(View)) Option {
	return func(r *Reconciler) {
		r.onChange = fn
	}
}

type playback struct {
	moves []entity.Move
	timer clockwork.Timer
	stop  chan struct{}
}

// Reconciler turns session snapshots into an incrementally animated board.
type Reconciler struct {
	logger   *slog.Logger
	clock    clockwork.Clock
	interval time.Duration
	onChange func(View)

	mu   sync.Mutex
	view View

	// epoch changes on every Reset and BeginSession, channel events from older epochs are dropped.
	epoch         uint64
	sessionActive bool
	channelOpen   bool
	channelClosed bool
	channel       io.Closer

	pending  *playback
	caughtUp chan struct{} // closed while pending is nil
}

func New(logger *slog.Logger, opts ...Option) *Reconciler {
	caughtUp := make(chan struct{})
	close(caughtUp)

	r := &Reconciler{
		logger:   logger.With("component", "reconciler"),
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		caughtUp: caughtUp,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// View - returns a copy of the current view.
func (that *Reconciler) View() View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.viewLocked()
}

// Apply - reconciles a snapshot received from the session API or the push channel.
func (that *Reconciler) Apply(snapshot *entity.SessionSnapshot) {
	if snapshot == nil {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.applyLocked(snapshot) {
		that.notifyLocked()
	}
}

// StartPlayback - renders moves[:fromIndex] at once and schedules the rest one per interval.
func (that *Reconciler) StartPlayback(moves []entity.Move, fromIndex int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.startPlaybackLocked(moves, fromIndex)
	that.notifyLocked()
}

// Reset - clears the run, cancels the pending tick and closes the push channel.
func (that *Reconciler) Reset() {
	that.mu.Lock()

	that.epoch++
	that.cancelPlaybackLocked()

	channel := that.channel
	that.channel = nil
	that.sessionActive = false
	that.channelOpen = false
	that.channelClosed = false
	that.view = View{Board: entity.NewBoard()}

	that.notifyLocked()
	that.mu.Unlock()

	// closing may report OnClose synchronously, which needs the lock
	if channel != nil {
		if err := channel.Close(); err != nil {
			that.logger.Warn("failed to close live updates channel", "error", err)
		}
	}
}

// BeginSession - marks a freshly created session, the channel is not confirmed yet.
func (that *Reconciler) BeginSession(sessionID, gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.epoch++
	that.sessionActive = true
	that.channelOpen = false
	that.channelClosed = false
	that.view.SessionID = sessionID
	that.view.GameID = gameID

	that.notifyLocked()
}

// AttachChannel - remembers the push channel so Reset can close it.
func (that *Reconciler) AttachChannel(channel io.Closer) {
	that.mu.Lock()
	previous := that.channel
	that.channel = channel
	that.mu.Unlock()

	if previous != nil && previous != channel {
		if err := previous.Close(); err != nil {
			that.logger.Warn("failed to close previous live updates channel", "error", err)
		}
	}
}

func (that *Reconciler) SetError(message string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.view.ErrorMessage = message
	that.notifyLocked()
}

func (that *Reconciler) SetLastMessage(message string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.view.LastMessage = message
	that.notifyLocked()
}

func (that *Reconciler) SetSimulating(simulating bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.view.Simulating = simulating
	that.notifyLocked()
}

// WaitCaughtUp - blocks until no tick is pending.
func (that *Reconciler) WaitCaughtUp(ctx context.Context) error {
	for {
		that.mu.Lock()
		if that.pending == nil {
			that.mu.Unlock()
			return nil
		}
		caughtUp := that.caughtUp
		that.mu.Unlock()

		select {
		case <-caughtUp:
		case <-ctx.Done():
			return fmt.Errorf("waiting for playback: %w", ctx.Err())
		}
	}
}

func (that *Reconciler) applyLocked(snapshot *entity.SessionSnapshot) bool {
	if that.view.SessionID != "" && snapshot.SessionID != "" && snapshot.SessionID != that.view.SessionID {
		that.logger.Debug("dropping snapshot of another session",
			"sessionID", snapshot.SessionID, "activeSessionID", that.view.SessionID)
		return false
	}

	that.view.SessionStatus = snapshot.Status
	if snapshot.GameStatus != "" {
		that.view.GameStatus = snapshot.GameStatus
	}

	moves := slices.Clone(snapshot.Moves)
	that.view.Moves = moves

	switch {
	case len(moves) == 0:
		that.cancelPlaybackLocked()
		that.view.Board = entity.NewBoard()
		that.view.Cursor = 0
	case len(moves) > that.view.Cursor:
		that.startPlaybackLocked(moves, that.view.Cursor)
	default:
		// status always updates, the board only moves forward
		that.logger.Debug("snapshot has no new moves", "moves", len(moves), "cursor", that.view.Cursor)
	}

	if snapshot.HasError() {
		message := snapshot.Error.Message
		if message == "" {
			message = apperror.FallbackMessage
		}
		that.view.ErrorMessage = message
	} else {
		that.view.ErrorMessage = ""
	}

	return true
}

func (that *Reconciler) startPlaybackLocked(moves []entity.Move, fromIndex int) {
	that.cancelPlaybackLocked()

	fromIndex = min(max(fromIndex, 0), len(moves))

	that.view.Board = entity.ReconstructBoard(moves, fromIndex)
	that.view.Cursor = fromIndex

	if fromIndex >= len(moves) {
		return
	}

	that.pending = &playback{
		moves: slices.Clone(moves),
		stop:  make(chan struct{}),
	}
	that.caughtUp = make(chan struct{})

	that.scheduleLocked(that.pending)
}

func (that *Reconciler) scheduleLocked(run *playback) {
	timer := that.clock.NewTimer(that.interval)
	run.timer = timer

	go func() {
		select {
		case <-timer.Chan():
			that.tick(run)
		case <-run.stop:
		}
	}()
}

func (that *Reconciler) tick(run *playback) {
	that.mu.Lock()
	defer that.mu.Unlock()

	// the run was cancelled after the timer fired
	if that.pending != run {
		return
	}

	index := that.view.Cursor
	move := run.moves[index]
	if !that.view.Board.Apply(move) {
		that.logger.Debug("dropping malformed move", "index", index, "player", move.Player, "row", move.Row, "column", move.Column)
	}

	that.view.Cursor++
	that.view.LastMessage = fmt.Sprintf("Move #%d applied", that.view.Cursor)

	if that.view.Cursor < len(run.moves) {
		that.scheduleLocked(run)
	} else {
		that.finishPlaybackLocked()
	}

	that.notifyLocked()
}

func (that *Reconciler) cancelPlaybackLocked() {
	if that.pending == nil {
		return
	}

	if that.pending.timer != nil {
		that.pending.timer.Stop()
	}
	close(that.pending.stop)

	that.finishPlaybackLocked()
}

func (that *Reconciler) finishPlaybackLocked() {
	that.pending = nil
	close(that.caughtUp)
}

func (that *Reconciler) phaseLocked() Phase {
	switch {
	case !that.sessionActive:
		return PhaseIdle
	case that.pending != nil:
		return PhasePlaying
	case that.channelClosed:
		return PhaseClosed
	case !that.channelOpen:
		return PhaseConnecting
	default:
		return PhaseCaughtUp
	}
}

func (that *Reconciler) viewLocked() View {
	view := that.view
	view.Moves = slices.Clone(that.view.Moves)
	view.Phase = that.phaseLocked()

	return view
}

func (that *Reconciler) notifyLocked() {
	if that.onChange != nil {
		that.onChange(that.viewLocked())
	}
}
