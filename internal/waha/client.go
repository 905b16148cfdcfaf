// Package waha implements the client for the upstream WAHA (WhatsApp
// HTTP API) server: authenticated intent-level calls plus mock-data
// fallback for offline development.
package waha

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/logging"
)

// Response is the envelope every client operation returns. Success=false
// implies Error and Code are set and Data is nil; Success=true implies the
// reverse. Upstream failures are carried here, not as Go errors.
type Response struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Code    string         `json:"code,omitempty"`
}

// ListQuery carries pagination and sorting parameters for list calls.
type ListQuery struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
	Session   string
}

// SendRequest describes one outbound message.
type SendRequest struct {
	ChatID       string
	Message      string
	Session      string
	Type         string
	MediaURL     string
	MediaCaption string
}

// connectionProbePath is the known-shaped endpoint used to verify the
// upstream is actually a WAHA server and not just something listening.
const connectionProbePath = "/api/default/chats/test@c.us/messages?limit=1"

// chatEndpointCandidates lists chat routes in the order they are tried.
// The order is part of the observable contract: first 200 wins, 404 moves
// on, anything else aborts the scan. %s is the session name.
var chatEndpointCandidates = []string{
	"/api/%s/chats",
	"/api/default/chats",
	"/api/chats",
	"/chats",
}

// discoveryPaths are probed by DiscoverEndpoints for diagnostics.
var discoveryPaths = []string{
	"/api/contacts",
	"/api/default/contacts",
	"/contacts",
	"/api/sessions/default/contacts",
	"/api/sessions",
	"/api/chats",
	"/chats",
}

// Client talks to the WAHA server. Safe for concurrent use; the underlying
// transport pool is shared but carries no per-request state.
type Client struct {
	baseURL        string
	basicAuth      string
	apiKey         string
	defaultSession string
	timeout        time.Duration
	http           *http.Client
	log            *logging.Logger
	mock           *mockGenerator
}

// New creates a WAHA client from config. Basic-Auth and API-key headers
// are derived once here and attached to every request.
func New(cfg config.WahaConfig, log *logging.Logger) *Client {
	c := &Client{
		baseURL:        cfg.URL,
		apiKey:         cfg.APIKey,
		defaultSession: cfg.DefaultSession,
		timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
		log:            log.Sub("waha"),
		mock:           newMockGenerator(cfg.MockSeed),
	}
	if c.defaultSession == "" {
		c.defaultSession = "default"
	}
	if cfg.Username != "" && cfg.Password != "" {
		creds := cfg.Username + ":" + cfg.Password
		c.basicAuth = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	}
	c.http = &http.Client{Timeout: c.timeout}
	return c
}

// TestConnection probes the root path and one known-shaped endpoint and
// classifies the result. It never returns a Go error; unreachable servers
// produce a CONNECTION_ERROR envelope.
func (c *Client) TestConnection(ctx context.Context) *Response {
	root, err := c.get(ctx, "/", nil)
	if err != nil {
		return fail(CodeConnectionError, "connection error: %v", err)
	}
	defer root.Body.Close()
	io.Copy(io.Discard, root.Body)

	probe, err := c.get(ctx, connectionProbePath, nil)
	if err != nil {
		return fail(CodeConnectionError, "connection error: %v", err)
	}
	defer probe.Body.Close()
	io.Copy(io.Discard, probe.Body)

	c.log.Debug().
		Int("root", root.StatusCode).
		Int("probe", probe.StatusCode).
		Msg("connection probe")

	if root.StatusCode != http.StatusOK && root.StatusCode != http.StatusNotFound {
		return fail(CodeConnectionFailed, "connection failed with status %d", root.StatusCode)
	}

	message := "server reachable"
	switch probe.StatusCode {
	case http.StatusOK:
		message = "connection successful"
	case http.StatusUnauthorized, http.StatusUnprocessableEntity:
		message = "WAHA API found, authentication or session required"
	}

	return &Response{
		Success: true,
		Data: map[string]any{
			"main_endpoint": root.StatusCode,
			"waha_endpoint": probe.StatusCode,
			"message":       message,
		},
	}
}

// GetActiveSessions returns the names of sessions whose status is WORKING,
// READY, or CONNECTED. Any failure yields an empty list: "no active
// sessions" is a valid state, not an error.
func (c *Client) GetActiveSessions(ctx context.Context) []string {
	sessions, err := c.activeSessions(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("session listing failed")
		return nil
	}
	return sessions
}

func (c *Client) activeSessions(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "/api/sessions", nil)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing sessions: status %d", resp.StatusCode)
	}

	var entries []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing sessions: %w", err)
	}

	var active []string
	for _, e := range entries {
		if e.Name != "" && activeSessionStatuses[e.Status] {
			active = append(active, e.Name)
			c.log.Debug().Str("session", e.Name).Str("status", e.Status).Msg("active session")
		}
	}
	return active, nil
}

// GetAllContacts fetches contacts from the upstream. When no session is
// active it falls back to mock data so consumers can develop against a
// stable shape without a live WhatsApp session.
func (c *Client) GetAllContacts(ctx context.Context, q ListQuery) *Response {
	active, err := c.activeSessions(ctx)
	if err != nil {
		return fail(CodeSessionsUnavailable, "unable to get active sessions")
	}
	if len(active) == 0 {
		c.log.Info().Msg("no active sessions, returning mock contacts")
		return &Response{Success: true, Data: c.GenerateMockContacts(q.Limit, q.Offset, q.SortBy, q.SortOrder)}
	}

	session := q.Session
	if !contains(active, session) {
		c.log.Info().Str("requested", session).Str("using", active[0]).Msg("session not active, substituting")
		session = active[0]
	}

	params := url.Values{}
	params.Set("session", session)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))
	params.Set("sortBy", q.SortBy)
	params.Set("sortOrder", q.SortOrder)

	resp, err := c.get(ctx, "/api/contacts", params)
	if err != nil {
		return fail(CodeContactsRequestError, "error getting contacts: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fail(CodeContactsError, "failed to get contacts: %d", resp.StatusCode)
	}

	data, err := decodePayload(body, "contacts")
	if err != nil {
		return fail(CodeContactsRequestError, "error parsing contacts: %v", err)
	}
	return &Response{Success: true, Data: data}
}

// GetChatMessages fetches messages from one chat. HTTP 422 responses are
// inspected for the upstream's session markers and mapped to dedicated
// codes so callers can tell "scan the QR" from "reconnect".
func (c *Client) GetChatMessages(ctx context.Context, chatID string, q ListQuery) *Response {
	path := "/api/default/chats/" + url.PathEscape(chatID) + "/messages"

	params := url.Values{}
	params.Set("sortBy", q.SortBy)
	params.Set("sortOrder", q.SortOrder)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))

	resp, err := c.get(ctx, path, params)
	if err != nil {
		return fail(CodeMessagesRequestError, "error getting messages: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusOK {
		data, err := decodePayload(body, "messages")
		if err != nil {
			return fail(CodeMessagesRequestError, "error parsing messages: %v", err)
		}
		return &Response{Success: true, Data: data}
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		if bytes.Contains(body, []byte("SCAN_QR_CODE")) {
			return fail(CodeScanQRRequired, "WhatsApp session needs QR code scan")
		}
		if bytes.Contains(body, []byte("DISCONNECTED")) {
			return fail(CodeSessionDisconnected, "WhatsApp session is disconnected")
		}
	}
	return fail(CodeMessagesError, "failed to get messages: %d - %s", resp.StatusCode, string(body))
}

// GetAllChats tries each chat endpoint candidate in order: first 200 wins,
// 404 moves to the next, any other status aborts the scan. Exhaustion or
// abort falls back to mock chats rather than an error.
func (c *Client) GetAllChats(ctx context.Context, q ListQuery) *Response {
	active, err := c.activeSessions(ctx)
	if err != nil || len(active) == 0 {
		c.log.Info().Msg("no active sessions, returning mock chats")
		return &Response{Success: true, Data: c.GenerateMockChats(q.Limit, q.Offset, q.SortBy, q.SortOrder)}
	}

	session := q.Session
	if !contains(active, session) {
		session = active[0]
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))
	params.Set("sortBy", q.SortBy)
	params.Set("sortOrder", q.SortOrder)

	for _, candidate := range chatEndpointCandidates {
		path := candidate
		if path == "/api/%s/chats" {
			path = fmt.Sprintf(candidate, session)
		}

		resp, err := c.get(ctx, path, params)
		if err != nil {
			c.log.Debug().Str("path", path).Err(err).Msg("chat endpoint unreachable")
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			chats, err := decodeList(body, "chats")
			if err != nil {
				return fail(CodeMessagesRequestError, "error parsing chats: %v", err)
			}
			c.log.Info().Str("path", path).Int("count", len(chats)).Msg("chats retrieved")
			return &Response{Success: true, Data: map[string]any{
				"chats":        chats,
				"total":        len(chats),
				"limit":        q.Limit,
				"offset":       q.Offset,
				"hasMore":      len(chats) >= q.Limit,
				"sortBy":       q.SortBy,
				"sortOrder":    q.SortOrder,
				"session":      session,
				"endpoint":     path,
				"generated_at": nowISO(),
			}}
		case resp.StatusCode == http.StatusNotFound:
			continue
		default:
			// Not a routing miss; further candidates would hit the
			// same failure, so stop scanning.
			c.log.Warn().Str("path", path).Int("status", resp.StatusCode).Msg("chat endpoint error, falling back to mock")
			return &Response{Success: true, Data: c.GenerateMockChats(q.Limit, q.Offset, q.SortBy, q.SortOrder)}
		}
	}

	c.log.Warn().Msg("all chat endpoints failed, returning mock chats")
	return &Response{Success: true, Data: c.GenerateMockChats(q.Limit, q.Offset, q.SortBy, q.SortOrder)}
}

// SendMessage posts one message through the upstream. Only HTTP 200 counts
// as sent; every other outcome maps to SEND_MESSAGE_ERROR with the raw
// status and body for debugging.
func (c *Client) SendMessage(ctx context.Context, req SendRequest) *Response {
	session := req.Session
	if session == "" {
		session = c.defaultSession
	}
	msgType := req.Type
	if msgType == "" {
		msgType = "text"
	}

	payload := map[string]any{
		"chatId":  req.ChatID,
		"type":    msgType,
		"message": req.Message,
	}
	if req.MediaURL != "" {
		payload["mediaUrl"] = req.MediaURL
	}
	if req.MediaCaption != "" {
		payload["mediaCaption"] = req.MediaCaption
	}

	resp, err := c.post(ctx, "/api/"+url.PathEscape(session)+"/send-message", payload)
	if err != nil {
		return fail(CodeSendMessageRequestError, "error sending message: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fail(CodeSendMessageError, "failed to send message: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &result)

	c.log.Info().Str("chatId", req.ChatID).Str("type", msgType).Msg("message sent")
	return &Response{Success: true, Data: map[string]any{
		"message_id": result.ID,
		"chat_id":    req.ChatID,
		"message":    req.Message,
		"type":       msgType,
		"session":    session,
		"status":     "sent",
		"timestamp":  nowISO(),
	}}
}

// DiscoverEndpoints probes well-known WAHA paths with a short per-path
// timeout and records status, content type, and a body sample for each.
// Diagnostics only; nothing depends on the result.
func (c *Client) DiscoverEndpoints(ctx context.Context) *Response {
	results := make(map[string]any, len(discoveryPaths))

	for _, path := range discoveryPaths {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		resp, err := c.get(probeCtx, path, nil)
		if err != nil {
			cancel()
			results[path] = map[string]any{
				"status":    "error",
				"available": false,
				"error":     err.Error(),
			}
			continue
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		cancel()

		sample := string(body)
		if len(sample) > 200 {
			sample = sample[:200] + "..."
		}
		results[path] = map[string]any{
			"status":       resp.StatusCode,
			"available":    resp.StatusCode != http.StatusNotFound,
			"content_type": resp.Header.Get("Content-Type"),
			"sample":       sample,
		}
		if resp.StatusCode != http.StatusNotFound {
			c.log.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("endpoint found")
		}
	}

	return &Response{Success: true, Data: map[string]any{"endpoints": results}}
}

// DefaultSession returns the configured default session name.
func (c *Client) DefaultSession() string {
	return c.defaultSession
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.http.Do(req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.http.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "wagate/1.0")
	if c.basicAuth != "" {
		req.Header.Set("Authorization", c.basicAuth)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}

// decodePayload normalizes an upstream body: objects pass through, bare
// arrays are wrapped under listKey (the upstream is inconsistent here).
func decodePayload(body []byte, listKey string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case []any:
		return map[string]any{listKey: t}, nil
	default:
		return map[string]any{listKey: []any{}}, nil
	}
}

// decodeList extracts a list from an upstream body that may be a bare
// array or an object keyed by listKey or "data".
func decodeList(body []byte, listKey string) ([]any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case []any:
		return t, nil
	case map[string]any:
		if list, ok := t[listKey].([]any); ok {
			return list, nil
		}
		if list, ok := t["data"].([]any); ok {
			return list, nil
		}
	}
	return []any{}, nil
}

func fail(code, format string, args ...any) *Response {
	return &Response{Success: false, Error: fmt.Sprintf(format, args...), Code: code}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
