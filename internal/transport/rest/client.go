package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/entity"
)

const (
	headerRequestID = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// Client talks to the session service through the gateway.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:  logger.With("component", "session-api"),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateSession - POST /sessions.
func (that *Client) CreateSession(ctx context.Context) (*entity.SessionSnapshot, error) {
	session, err := that.do(ctx, http.MethodPost, "/sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// SimulateSession - POST /sessions/{id}/simulate, runs the whole game on the server.
func (that *Client) SimulateSession(ctx context.Context, sessionID string) (*entity.SessionSnapshot, error) {
	session, err := that.do(ctx, http.MethodPost, "/sessions/"+url.PathEscape(sessionID)+"/simulate")
	if err != nil {
		return nil, fmt.Errorf("failed to simulate session %s: %w", sessionID, err)
	}

	return session, nil
}

// GetSession - GET /sessions/{id}.
func (that *Client) GetSession(ctx context.Context, sessionID string) (*entity.SessionSnapshot, error) {
	session, err := that.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}

	return session, nil
}

func (that *Client) do(ctx context.Context, method, path string) (*entity.SessionSnapshot, error) {
	var body io.Reader
	if method == http.MethodPost {
		body = bytes.NewReader([]byte("{}"))
	}

	req, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := that.logger.With("method", method, "path", path, "requestID", requestID)

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeError(resp)
		log.Warn("session api returned an error", "status", resp.StatusCode, "code", apiErr.Code)
		return nil, apiErr
	}

	var session entity.SessionSnapshot
	if err = json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	log.Debug("session api call succeeded", "status", resp.StatusCode, "moves", len(session.Moves))

	return &session, nil
}

func decodeError(resp *http.Response) *apperror.APIError {
	apiErr := &apperror.APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body entity.ErrorResponse
	if err = json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	apiErr.Code = body.Code
	apiErr.Message = body.Message
	apiErr.Details = body.Details

	return apiErr
}
