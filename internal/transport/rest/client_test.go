package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-viewer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-viewer/internal/entity"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewClient(logger, server.URL+"/session/", 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Sessions(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /session/sessions", func(w http.ResponseWriter, r *http.Request) {
		_, err := uuid.Parse(r.Header.Get(headerRequestID))
		assert.NoError(t, err)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		writeJSON(t, w, http.StatusCreated, entity.SessionSnapshot{
			SessionID: "s-1",
			GameID:    "g-1",
			Status:    entity.SessionStatusCreated,
			Moves:     []entity.Move{},
		})
	})
	mux.HandleFunc("POST /session/sessions/{id}/simulate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, entity.SessionSnapshot{
			SessionID:  r.PathValue("id"),
			Status:     entity.SessionStatusCompleted,
			GameStatus: entity.GameStatusXWins,
			Moves:      []entity.Move{{Player: "X", Row: 0, Column: 0}},
		})
	})
	mux.HandleFunc("GET /session/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "s-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(t, w, http.StatusOK, entity.SessionSnapshot{SessionID: "s-1", Status: entity.SessionStatusInProgress})
	})

	client := newTestClient(t, mux)

	t.Run("CreateSession", func(t *testing.T) {
		// When: creating a session
		session, err := client.CreateSession(ctx)

		// Then: the created snapshot is returned
		require.NoError(t, err)
		assert.Equal(t, "s-1", session.SessionID)
		assert.Equal(t, "g-1", session.GameID)
		assert.Equal(t, entity.SessionStatusCreated, session.Status)
	})

	t.Run("SimulateSession", func(t *testing.T) {
		session, err := client.SimulateSession(ctx, "s-1")

		require.NoError(t, err)
		assert.Equal(t, "s-1", session.SessionID)
		assert.Equal(t, entity.GameStatusXWins, session.GameStatus)
		assert.Len(t, session.Moves, 1)
	})

	t.Run("GetSession", func(t *testing.T) {
		session, err := client.GetSession(ctx, "s-1")

		require.NoError(t, err)
		assert.Equal(t, entity.SessionStatusInProgress, session.Status)
	})

	t.Run("GetSession of an unknown id returns an API error without message", func(t *testing.T) {
		// When: asking for a missing session
		_, err := client.GetSession(ctx, "missing")

		// Then: a 404 api error is returned and the user sees the generic text
		var apiErr *apperror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, apperror.FallbackMessage, apperror.UserMessage(err))
	})
}

func TestClient_ErrorBody(t *testing.T) {
	// Given: a backend that fails with an error body
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, entity.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "engine service unavailable",
			Details: map[string]any{"retry": false},
		})
	}))

	// When: creating a session
	session, err := client.CreateSession(context.Background())

	// Then: the body is exposed through the api error
	require.Error(t, err)
	assert.Nil(t, session)

	var apiErr *apperror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)
	assert.Equal(t, "engine service unavailable", apperror.UserMessage(err))
	assert.Equal(t, false, apiErr.Details["retry"])
}

func TestClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))

	_, err := client.GetSession(context.Background(), "s-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode session")
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateSession(ctx)

	require.ErrorIs(t, err, context.Canceled)
}
