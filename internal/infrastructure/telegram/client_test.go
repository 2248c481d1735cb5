package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, "12345:token")
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_TokenInPath(t *testing.T) {
	var gotPath string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true, "result": map[string]any{"id": 1}})
	})

	_, status, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, "/bot12345:token/getMe", gotPath)
}

func TestClient_GetChat_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		httpStatus int
		wantStatus Status
		wantErr    bool
	}{
		{"ok", http.StatusOK, StatusOK, false},
		{"chat gone", http.StatusBadRequest, StatusNotFound, true},
		{"access lost", http.StatusForbidden, StatusForbidden, true},
		{"server error", http.StatusInternalServerError, StatusTransportError, true},
		{"rate limited", http.StatusTooManyRequests, StatusTransportError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.httpStatus == http.StatusOK {
					writeJSON(t, w, http.StatusOK, map[string]any{
						"ok":     true,
						"result": map[string]any{"id": -100123, "type": "group", "title": "Team"},
					})
					return
				}
				writeJSON(t, w, tt.httpStatus, map[string]any{"ok": false, "description": "nope"})
			})

			chat, status, err := client.GetChat(context.Background(), -100123)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, chat)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, chat)
			assert.Equal(t, "Team", chat.Title)
		})
	}
}

func TestClient_GetChat_TransportFailure(t *testing.T) {
	srv, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, status, err := client.GetChat(context.Background(), 1)
	assert.Equal(t, StatusTransportError, status)
	assert.Error(t, err)
}

func TestClient_KickChatMember_AlreadyAbsentIsSuccess(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantStatus  Status
	}{
		{"user not found", "Bad Request: user not found", StatusOK},
		{"not a participant", "Bad Request: USER_NOT_PARTICIPANT", StatusOK},
		{"other 400", "Bad Request: chat_admin_required", StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusBadRequest, map[string]any{"ok": false, "description": tt.description})
			})

			status, err := client.KickChatMember(context.Background(), -100123, 42)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == StatusOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestClient_GetUpdates_OmitsZeroOffset(t *testing.T) {
	var gotBody map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true, "result": []any{}})
	})

	_, status, err := client.GetUpdates(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	_, hasOffset := gotBody["offset"]
	assert.False(t, hasOffset, "offset must be omitted on the bootstrap poll")

	_, _, err = client.GetUpdates(context.Background(), 77, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 77, gotBody["offset"])
}

func TestClient_GetChatMembersCount(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true, "result": 15})
	})

	count, status, err := client.GetChatMembersCount(context.Background(), -100123)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, 15, count)
}

func TestClient_DecodeFailureIsTransportError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	})

	_, status, err := client.GetMe(context.Background())
	assert.Equal(t, StatusTransportError, status)
	assert.Error(t, err)
}
