package waha

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/logging"
)

func testClient(t *testing.T, upstream string) *Client {
	t.Helper()
	return New(config.WahaConfig{
		URL:            upstream,
		Username:       "admin",
		Password:       "secret",
		APIKey:         "key-123",
		TimeoutSeconds: 5,
		DefaultSession: "default",
		MockSeed:       42,
	}, logging.New(io.Discard, "silent", "json"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-Api-Key")
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	c.GetActiveSessions(context.Background())

	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", gotAuth)
	assert.Equal(t, "key-123", gotKey)
}

func TestNoBasicAuthWithoutCredentials(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	c := New(config.WahaConfig{URL: srv.URL, TimeoutSeconds: 5}, logging.New(io.Discard, "silent", "json"))
	c.GetActiveSessions(context.Background())

	assert.Empty(t, gotAuth)
}

func TestTestConnection(t *testing.T) {
	tests := []struct {
		name        string
		rootStatus  int
		probeStatus int
		wantSuccess bool
		wantCode    string
		wantMessage string
	}{
		{"healthy", 200, 200, true, "", "connection successful"},
		{"auth required", 200, 401, true, "", "WAHA API found, authentication or session required"},
		{"session required", 404, 422, true, "", "WAHA API found, authentication or session required"},
		{"reachable only", 200, 500, true, "", "server reachable"},
		{"root broken", 500, 200, false, CodeConnectionFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/" {
					w.WriteHeader(tt.rootStatus)
					return
				}
				w.WriteHeader(tt.probeStatus)
			}))
			defer srv.Close()

			resp := testClient(t, srv.URL).TestConnection(context.Background())
			assert.Equal(t, tt.wantSuccess, resp.Success)
			if tt.wantSuccess {
				assert.Equal(t, tt.wantMessage, resp.Data["message"])
			} else {
				assert.Equal(t, tt.wantCode, resp.Code)
			}
		})
	}
}

func TestTestConnectionUnreachable(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1")
	resp := c.TestConnection(context.Background())

	assert.False(t, resp.Success)
	assert.Equal(t, CodeConnectionError, resp.Code)
}

func TestGetActiveSessionsFiltersByStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]string{
			{"name": "default", "status": "WORKING"},
			{"name": "backup", "status": "STOPPED"},
			{"name": "alt", "status": "READY"},
			{"name": "", "status": "CONNECTED"},
		})
	}))
	defer srv.Close()

	sessions := testClient(t, srv.URL).GetActiveSessions(context.Background())
	assert.Equal(t, []string{"default", "alt"}, sessions)
}

func TestGetActiveSessionsFailureIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sessions := testClient(t, srv.URL).GetActiveSessions(context.Background())
	assert.Empty(t, sessions)
}

func TestGetAllContactsMockFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).GetAllContacts(context.Background(), ListQuery{
		Limit: 5, Offset: 0, SortBy: "name", SortOrder: "asc", Session: "default",
	})

	require.True(t, resp.Success)
	assert.Equal(t, true, resp.Data["mock"])
	assert.Len(t, resp.Data["contacts"], 5)
	assert.Equal(t, 8, resp.Data["total"])
}

func TestGetAllContactsSessionsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).GetAllContacts(context.Background(), ListQuery{Limit: 10, Session: "default"})

	assert.False(t, resp.Success)
	assert.Equal(t, CodeSessionsUnavailable, resp.Code)
}

func TestGetAllContactsSessionSubstitution(t *testing.T) {
	var gotSession string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sessions":
			writeJSON(w, http.StatusOK, []map[string]string{{"name": "live", "status": "WORKING"}})
		case "/api/contacts":
			gotSession = r.URL.Query().Get("session")
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "1@c.us", "name": "One"}})
		}
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).GetAllContacts(context.Background(), ListQuery{
		Limit: 10, Session: "default",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "live", gotSession, "inactive requested session replaced with first active")
	contacts, ok := resp.Data["contacts"].([]any)
	require.True(t, ok, "bare array wrapped under contacts key")
	assert.Len(t, contacts, 1)
}

func TestGetChatMessagesSessionStateCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"qr required", 422, `{"message":"Status is SCAN_QR_CODE"}`, CodeScanQRRequired},
		{"disconnected", 422, `{"message":"Status is DISCONNECTED"}`, CodeSessionDisconnected},
		{"other 422", 422, `{"message":"something else"}`, CodeMessagesError},
		{"server error", 500, `boom`, CodeMessagesError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp := testClient(t, srv.URL).GetChatMessages(context.Background(), "x@c.us", ListQuery{Limit: 10})
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestGetChatMessagesEscapesChatID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).GetChatMessages(context.Background(), "628/evil@c.us", ListQuery{Limit: 10})

	require.True(t, resp.Success)
	assert.Equal(t, "/api/default/chats/628%2Fevil@c.us/messages", gotPath)
}

func TestGetAllChatsEndpointOrder(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/sessions" {
			writeJSON(w, http.StatusOK, []map[string]string{{"name": "default", "status": "WORKING"}})
			return
		}
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/chats" {
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "1@c.us"}, {"id": "2@c.us"}})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).GetAllChats(context.Background(), ListQuery{
		Limit: 10, SortBy: "timestamp", SortOrder: "desc", Session: "default",
	})

	require.True(t, resp.Success)
	assert.Equal(t, []string{"/api/default/chats", "/api/default/chats", "/api/chats"}, paths,
		"candidates tried in order, 404 moves on")
	assert.Equal(t, "/api/chats", resp.Data["endpoint"])
	assert.Equal(t, 2, resp.Data["total"])
	assert.Nil(t, resp.Data["mock"])
}

func TestGetAllChatsAbortsOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/sessions" {
			writeJSON(w, http.StatusOK, []map[string]string{{"name": "default", "status": "WORKING"}})
			return
		}
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).GetAllChats(context.Background(), ListQuery{Limit: 4, Session: "default"})

	require.True(t, resp.Success)
	assert.Equal(t, 1, calls, "non-404 aborts the candidate scan")
	assert.Equal(t, true, resp.Data["mock"])
	assert.Len(t, resp.Data["chats"], 4)
}

func TestGetAllChatsMockWhenNoSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).GetAllChats(context.Background(), ListQuery{Limit: 3, Session: "default"})

	require.True(t, resp.Success)
	assert.Equal(t, true, resp.Data["mock"])
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		writeJSON(w, http.StatusOK, map[string]string{"id": "true_123@c.us_ABC"})
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).SendMessage(context.Background(), SendRequest{
		ChatID:  "628123@c.us",
		Message: "halo",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "/api/default/send-message", gotPath)
	assert.Equal(t, "628123@c.us", gotPayload["chatId"])
	assert.Equal(t, "text", gotPayload["type"], "type defaults to text")
	assert.Equal(t, "true_123@c.us_ABC", resp.Data["message_id"])
	assert.Equal(t, "sent", resp.Data["status"])
}

func TestSendMessageMediaFields(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		writeJSON(w, http.StatusOK, map[string]string{"id": "m1"})
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).SendMessage(context.Background(), SendRequest{
		ChatID:       "628123@c.us",
		Message:      "pic",
		Type:         "image",
		MediaURL:     "https://example.com/a.png",
		MediaCaption: "caption",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "https://example.com/a.png", gotPayload["mediaUrl"])
	assert.Equal(t, "caption", gotPayload["mediaCaption"])
}

func TestSendMessageNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"m1"}`))
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).SendMessage(context.Background(), SendRequest{
		ChatID: "628123@c.us", Message: "halo",
	})

	assert.False(t, resp.Success)
	assert.Equal(t, CodeSendMessageError, resp.Code)
}

func TestDiscoverEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/sessions" {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resp := testClient(t, srv.URL).DiscoverEndpoints(context.Background())

	require.True(t, resp.Success)
	endpoints, ok := resp.Data["endpoints"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, endpoints, len(discoveryPaths))

	sessions, ok := endpoints["/api/sessions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, sessions["available"])

	contacts, ok := endpoints["/api/contacts"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, contacts["available"])
}

func TestDecodePayload(t *testing.T) {
	data, err := decodePayload([]byte(`[{"id":"1"}]`), "contacts")
	require.NoError(t, err)
	assert.Len(t, data["contacts"], 1)

	data, err = decodePayload([]byte(`{"contacts":[],"total":0}`), "contacts")
	require.NoError(t, err)
	assert.Contains(t, data, "total")

	_, err = decodePayload([]byte(`{broken`), "contacts")
	assert.Error(t, err)
}

func TestDecodeList(t *testing.T) {
	list, err := decodeList([]byte(`[1,2,3]`), "chats")
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = decodeList([]byte(`{"chats":[1]}`), "chats")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = decodeList([]byte(`{"data":[1,2]}`), "chats")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = decodeList([]byte(`{"other":true}`), "chats")
	require.NoError(t, err)
	assert.Empty(t, list)
}
