package entity

import (
	"strings"
)

const (
	GameStatusInProgress = "IN_PROGRESS"
	GameStatusXWins      = "X_WINS"
	GameStatusOWins      = "O_WINS"
	GameStatusDraw       = "DRAW"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 3
)

// Board is the rendered 3x3 grid. It is only ever derived from a move log prefix.
type Board [BoardSize][BoardSize]string

// GameUpdate is the partial game state pushed by the engine event stream.
type GameUpdate struct {
	GameID        string     `json:"gameId"`
	Board         [][]string `json:"board,omitempty"`
	Status        string     `json:"status"`
	CurrentPlayer string     `json:"currentPlayer"`
	Message       string     `json:"message,omitempty"`
}

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// Apply sets the cell addressed by move and reports whether the move was well formed.
// Malformed moves leave the board untouched.
func (that *Board) Apply(move Move) bool {
	if !move.IsValid() {
		return false
	}

	that[move.Row][move.Column] = move.Symbol()

	return true
}

// Cell returns the value at row, column or EmptyCell when out of range.
func (that *Board) Cell(row, column int) string {
	if !inRange(row) || !inRange(column) {
		return EmptyCell
	}

	return that[row][column]
}

// IsEmpty reports whether no cell is occupied.
func (that *Board) IsEmpty() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell != EmptyCell {
				return false
			}
		}
	}

	return true
}

// ReconstructBoard - builds the board from the first upTo moves.
func ReconstructBoard(moves []Move, upTo int) Board {
	board := NewBoard()

	limit := min(max(upTo, 0), len(moves))
	for i := 0; i < limit; i++ {
		board.Apply(moves[i])
	}

	return board
}

func normalizePlayer(player string) string {
	return strings.ToUpper(strings.TrimSpace(player))
}

func inRange(index int) bool {
	return index >= 0 && index < BoardSize
}
