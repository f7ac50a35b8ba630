package apperror

import (
	"errors"
	"fmt"
)

const (
	FallbackMessage       = "Unexpected error occurred"
	InvalidSessionMessage = "Invalid session response"
)

var (
	ErrInvalidSession        = errors.New("invalid session response")
	ErrSimulationInProgress  = errors.New("simulation is already running")
	ErrNoSession             = errors.New("no active session")
	ErrUnknownLiveUpdateMode = errors.New("unknown live updates mode")
)

// APIError is a non-success response from the backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
}

func (that *APIError) Error() string {
	if that.Message == "" {
		return fmt.Sprintf("api error: status %d", that.StatusCode)
	}

	return fmt.Sprintf("api error: status %d: %s: %s", that.StatusCode, that.Code, that.Message)
}

// UserMessage - extracts the text shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrInvalidSession) {
		return InvalidSessionMessage
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}

		return FallbackMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return FallbackMessage
}
