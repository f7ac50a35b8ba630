package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/config"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/entity"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/reconciler"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/stream"
)

type sessionAPI interface {
	CreateSession(ctx context.Context) (*entity.SessionSnapshot, error)
	SimulateSession(ctx context.Context, sessionID string) (*entity.SessionSnapshot, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionSnapshot, error)
}

var errNoGameToStream = errors.New("session has no game to stream")

// liveDialer opens a push channel; target is the session id, or the game id for the engine stream.
type liveDialer interface {
	Dial(ctx context.Context, target string, listener stream.Listener) (io.Closer, error)
}

// DialFunc adapts a plain function to a push channel dialer.
type DialFunc func(ctx context.Context, target string, listener stream.Listener) (io.Closer, error)

func (that DialFunc) Dial(ctx context.Context, target string, listener stream.Listener) (io.Closer, error) {
	return that(ctx, target, listener)
}

type Simulation struct {
	logger     *slog.Logger
	api        sessionAPI
	reconciler *reconciler.Reconciler
	mode       string
	dialer     liveDialer

	running atomic.Bool
}

func NewSimulation(
	logger *slog.Logger,
	api sessionAPI,
	rec *reconciler.Reconciler,
	mode string,
	dialer liveDialer,
) (*Simulation, error) {
	switch mode {
	case config.LiveUpdatesWebSocket, config.LiveUpdatesSSE, config.LiveUpdatesRedis, config.LiveUpdatesNATS:
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownLiveUpdateMode, mode)
	}

	return &Simulation{
		logger:     logger.With("component", "simulation", "liveUpdates", mode),
		api:        api,
		reconciler: rec,
		mode:       mode,
		dialer:     dialer,
	}, nil
}

// Start - runs one simulation: create the session, follow it live and trigger the server-side game.
// ctx also bounds the live refreshes of the engine stream.
func (that *Simulation) Start(ctx context.Context) error {
	if !that.running.CompareAndSwap(false, true) {
		return apperror.ErrSimulationInProgress
	}
	defer that.running.Store(false)

	log := that.logger.With("method", "Start")

	that.reconciler.Reset()

	created, err := that.api.CreateSession(ctx)
	if err != nil {
		that.reconciler.SetError(apperror.UserMessage(err))
		return fmt.Errorf("failed to start simulation: %w", err)
	}

	if created == nil || created.SessionID == "" {
		that.reconciler.SetError(apperror.UserMessage(apperror.ErrInvalidSession))
		return apperror.ErrInvalidSession
	}

	log = log.With("sessionID", created.SessionID, "gameID", created.GameID)
	log.Info("session created")

	that.reconciler.BeginSession(created.SessionID, created.GameID)
	that.reconciler.Apply(created)

	if err = that.openChannel(ctx, created); err != nil {
		log.Error("failed to open live updates", "error", err)
		that.reconciler.SetError(reconciler.ErrorConnection)
	}

	that.reconciler.SetSimulating(true)
	result, err := that.api.SimulateSession(ctx, created.SessionID)
	that.reconciler.SetSimulating(false)

	if err != nil {
		that.reconciler.SetError(apperror.UserMessage(err))
		return fmt.Errorf("failed to simulate session: %w", err)
	}

	if result.IsFinished() {
		log.Info("simulation finished", "status", result.Status, "gameStatus", result.GameStatus, "moves", len(result.Moves))
	} else {
		log.Warn("simulation returned before the session ended, following live updates", "status", result.Status)
	}
	that.reconciler.Apply(result)

	return nil
}

// Running - reports whether a simulation trigger is outstanding.
func (that *Simulation) Running() bool {
	return that.running.Load()
}

func (that *Simulation) openChannel(ctx context.Context, session *entity.SessionSnapshot) error {
	target := session.SessionID
	listener := that.reconciler.SnapshotListener()

	if that.mode == config.LiveUpdatesSSE {
		if session.GameID == "" {
			return errNoGameToStream
		}

		target = session.GameID
		listener = that.reconciler.GameUpdateListener(func(run reconciler.Run, update entity.GameUpdate) {
			that.refresh(ctx, run, session.SessionID, update)
		})
	}

	channel, err := that.dialer.Dial(ctx, target, listener)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", that.mode, err)
	}

	that.reconciler.AttachChannel(channel)

	return nil
}

// refresh pulls the session after an engine update; failures are only logged.
// The snapshot goes to run, a run reset meanwhile drops it.
func (that *Simulation) refresh(ctx context.Context, run reconciler.Run, sessionID string, update entity.GameUpdate) {
	log := that.logger.With("method", "refresh", "sessionID", sessionID, "gameID", update.GameID)

	session, err := that.api.GetSession(ctx, sessionID)
	if err != nil {
		log.Warn("failed to refresh session", "error", err)
		return
	}

	if err = run.Apply(session); errors.Is(err, apperror.ErrNoSession) {
		log.Debug("dropping refresh, the run is over")
	}
}
