package render

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/reconciler"
)

const clearScreen = "\033[H\033[2J"

// Screen redraws the latest view; frames that arrive faster than they are drawn are coalesced.
type Screen struct {
	logger *slog.Logger
	out    io.Writer

	mu     sync.Mutex
	frames chan reconciler.View
}

func NewScreen(logger *slog.Logger, out io.Writer) *Screen {
	return &Screen{
		logger: logger.With("component", "screen"),
		out:    out,
		frames: make(chan reconciler.View, 1),
	}
}

// Update - queues view, replacing a frame that was not drawn yet. Never blocks.
func (that *Screen) Update(view reconciler.View) {
	that.mu.Lock()
	defer that.mu.Unlock()

	select {
	case <-that.frames:
	default:
	}

	that.frames <- view
}

// Run - draws queued frames until ctx is done.
func (that *Screen) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case view := <-that.frames:
			that.Draw(view)
		}
	}
}

// Draw - clears the terminal and renders view right away.
func (that *Screen) Draw(view reconciler.View) {
	if _, err := io.WriteString(that.out, clearScreen); err != nil {
		that.logger.Warn("failed to clear screen", "error", err)
		return
	}

	if err := Render(that.out, view); err != nil {
		that.logger.Warn("failed to draw frame", "error", err)
	}
}
