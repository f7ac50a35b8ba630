package entity

// Move is a single recorded play. It is immutable once recorded.
type Move struct {
	Player string `json:"player"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// Symbol returns the player mark in upper case.
func (that Move) Symbol() string {
	return normalizePlayer(that.Player)
}

// IsValid reports whether the move addresses a board cell and names a known player.
func (that Move) IsValid() bool {
	switch that.Symbol() {
	case PlayerX, PlayerO:
	default:
		return false
	}

	return inRange(that.Row) && inRange(that.Column)
}
