// Package render draws a reconciler view as a styled text frame.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/entity"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/reconciler"
)

const (
	placeholder    = "-"
	noMoves        = "No moves yet."
	waitingMessage = "Waiting for live updates..."
	rowSeparator   = "---+---+---"
	labelWidth     = 12
)

type styles struct {
	title     lipgloss.Style
	busy      lipgloss.Style
	heading   lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	x         lipgloss.Style
	o         lipgloss.Style
	grid      lipgloss.Style
	status    lipgloss.Style
	errorLine lipgloss.Style
}

// newStyles binds the palette to r; without a color terminal every style renders plain text.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:     r.NewStyle().Foreground(lipgloss.Color("#F1FA8C")).Bold(true),
		busy:      r.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		heading:   r.NewStyle().Foreground(lipgloss.Color("#BD93F9")).Bold(true),
		label:     r.NewStyle().Foreground(lipgloss.Color("#6272A4")).Width(labelWidth),
		value:     r.NewStyle().Foreground(lipgloss.Color("#F8F8F2")),
		x:         r.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Bold(true),
		o:         r.NewStyle().Foreground(lipgloss.Color("#FF79C6")).Bold(true),
		grid:      r.NewStyle().Foreground(lipgloss.Color("#6272A4")),
		status:    r.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
		errorLine: r.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
	}
}

// Render - writes one frame for view to w, colored when w is a color terminal.
func Render(w io.Writer, view reconciler.View) error {
	return renderWith(lipgloss.NewRenderer(w), w, view)
}

func renderWith(r *lipgloss.Renderer, w io.Writer, view reconciler.View) error {
	s := newStyles(r)

	var frame strings.Builder

	frame.WriteString(s.title.Render("Tic Tac Toe"))
	if view.Simulating {
		frame.WriteString("  " + s.busy.Render("[Simulating...]"))
	}
	frame.WriteString("\n\n")

	s.writeStatus(&frame, view)
	frame.WriteString("\n")

	s.writeBoard(&frame, view.Board)
	frame.WriteString("\n")

	frame.WriteString(s.heading.Render("Move History") + "\n")
	s.writeMoves(&frame, view.Moves)
	frame.WriteString("\n")

	frame.WriteString(s.heading.Render("Status") + "\n")
	frame.WriteString(s.status.Render(orDefault(view.LastMessage, waitingMessage)) + "\n")
	if view.ErrorMessage != "" {
		frame.WriteString(s.errorLine.Render("Error: "+view.ErrorMessage) + "\n")
	}

	if _, err := io.WriteString(w, frame.String()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func (that styles) writeStatus(frame *strings.Builder, view reconciler.View) {
	rows := [][2]string{
		{"Session", orDefault(view.SessionStatus, placeholder)},
		{"Game", orDefault(view.GameStatus, placeholder)},
		{"Session ID", orDefault(view.SessionID, placeholder)},
		{"Game ID", orDefault(view.GameID, placeholder)},
		{"Playback", fmt.Sprintf("%d/%d (%s)", view.Cursor, len(view.Moves), view.Phase)},
	}

	for _, row := range rows {
		frame.WriteString(that.label.Render(row[0]) + that.value.Render(row[1]) + "\n")
	}
}

func (that styles) writeBoard(frame *strings.Builder, board entity.Board) {
	bar := that.grid.Render("|")

	for row := range entity.BoardSize {
		cells := make([]string, entity.BoardSize)
		for col := range entity.BoardSize {
			cells[col] = that.cell(board.Cell(row, col))
		}

		frame.WriteString(strings.Join(cells, bar) + "\n")
		if row < entity.BoardSize-1 {
			frame.WriteString(that.grid.Render(rowSeparator) + "\n")
		}
	}
}

func (that styles) cell(value string) string {
	switch value {
	case entity.PlayerX:
		return " " + that.x.Render(entity.PlayerX) + " "
	case entity.PlayerO:
		return " " + that.o.Render(entity.PlayerO) + " "
	default:
		return "   "
	}
}

func (that styles) player(player string) string {
	switch strings.ToUpper(player) {
	case entity.PlayerX:
		return that.x.Render(player)
	case entity.PlayerO:
		return that.o.Render(player)
	default:
		return player
	}
}

func (that styles) writeMoves(frame *strings.Builder, moves []entity.Move) {
	if len(moves) == 0 {
		frame.WriteString(noMoves + "\n")
		return
	}

	for i, move := range moves {
		fmt.Fprintf(frame, "#%d - Player %s → (%d, %d)\n", i+1, that.player(move.Player), move.Row, move.Column)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
