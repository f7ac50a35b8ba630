package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/config"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/reconciler"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/render"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/nats"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/sse"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/stream"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/transport/websocket"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs one simulation and renders it to stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	screen := render.NewScreen(logger, os.Stdout)

	rec := reconciler.New(logger,
		reconciler.WithInterval(conf.PlaybackInterval),
		reconciler.WithListener(screen.Update),
	)

	dialer, closeDialer, err := newLiveDialer(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeDialer()

	api := rest.NewClient(logger, conf.SessionAPIURL, conf.RequestTimeout)

	simulation, err := usecase.NewSimulation(logger, api, rec, conf.LiveUpdates, dialer)
	if err != nil {
		return fmt.Errorf("could not create simulation: %w", err)
	}

	screenCtx, stopScreen := context.WithCancel(ctx)
	screenDone := make(chan struct{})
	go func() {
		defer close(screenDone)
		screen.Run(screenCtx)
	}()

	// the last frame is drawn once the screen loop stopped, then the channel is closed
	defer func() {
		stopScreen()
		<-screenDone
		screen.Draw(rec.View())
		rec.Reset()
	}()

	log.Info("Starting simulation", "liveUpdates", conf.LiveUpdates)

	if err = simulation.Start(ctx); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if conf.ExitOnComplete {
		if err = rec.WaitCaughtUp(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("playback interrupted: %w", err)
		}

		log.Info("Playback caught up, exiting", "moves", rec.View().Cursor)
		return nil
	}

	<-ctx.Done()
	log.Info("Application context canceled, shutting down")

	return nil
}

// newLiveDialer - picks the push channel for the configured mode; the returned func releases its resources.
func newLiveDialer(ctx context.Context, logger *slog.Logger, conf *config.Config) (usecase.DialFunc, func(), error) {
	noop := func() {}

	switch conf.LiveUpdates {
	case config.LiveUpdatesWebSocket:
		return closerDialer(websocket.NewDialer(logger, conf.WebSocketURL).Dial), noop, nil

	case config.LiveUpdatesSSE:
		return closerDialer(sse.NewDialer(logger, conf.EngineAPIURL).Dial), noop, nil

	case config.LiveUpdatesRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		client, err := redis.NewClient(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
		}

		release := func() {
			if err := client.Close(); err != nil {
				logger.Error("could not close redis client", "error", err)
			}
		}

		subscriber := redis.NewSubscriber(logger, client, conf.Redis.ChannelPrefix)

		return closerDialer(subscriber.Dial), release, nil

	case config.LiveUpdatesNATS:
		conn, err := nats.Connect(logger, conf.NATS.URL)
		if err != nil {
			return nil, nil, err
		}

		subscriber := nats.NewSubscriber(logger, conn, conf.NATS.SubjectPrefix)

		return closerDialer(subscriber.Dial), conn.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownLiveUpdateMode, conf.LiveUpdates)
}

func closerDialer[C io.Closer](dial func(context.Context, string, stream.Listener) (C, error)) usecase.DialFunc {
	return func(ctx context.Context, target string, listener stream.Listener) (io.Closer, error) {
		conn, err := dial(ctx, target, listener)
		if err != nil {
			return nil, err
		}

		return conn, nil
	}
}
