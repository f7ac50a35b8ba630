package entity

const (
	SessionStatusCreated    = "CREATED"
	SessionStatusInProgress = "IN_PROGRESS"
	SessionStatusCompleted  = "COMPLETED"
	SessionStatusFailed     = "FAILED"
)

// ErrorResponse is the error body returned by the backend.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SessionSnapshot is the full session state as sent by the session service.
// Snapshots are always taken wholesale, never merged.
type SessionSnapshot struct {
	SessionID  string         `json:"sessionId"`
	GameID     string         `json:"gameId"`
	Status     string         `json:"status"`
	CreatedAt  string         `json:"createdAt,omitempty"`
	UpdatedAt  string         `json:"updatedAt,omitempty"`
	GameStatus string         `json:"gameStatus,omitempty"`
	Moves      []Move         `json:"moves"`
	Error      *ErrorResponse `json:"error,omitempty"`
}

func (that *SessionSnapshot) IsFinished() bool {
	return that.Status == SessionStatusCompleted || that.Status == SessionStatusFailed
}

func (that *SessionSnapshot) HasError() bool {
	return that.Error != nil
}
