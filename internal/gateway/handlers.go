package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/soyeahso/wagate/internal/waha"
	"github.com/soyeahso/wagate/internal/webhook"
)

// maxWebhookBody caps webhook payload reads.
const maxWebhookBody = 1 << 20

// Contacts

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	s.serveContacts(w, r, r.URL.Query())
}

func (s *Server) handleContactsPost(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body struct {
		Limit     int    `json:"limit"`
		Offset    int    `json:"offset"`
		SortBy    string `json:"sort_by"`
		SortOrder string `json:"sort_order"`
		Session   string `json:"session"`
		UseMock   bool   `json:"use_mock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, start, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body", nil)
		return
	}

	s.serveContacts(w, r, listValues(body.Limit, body.Offset, body.SortBy, body.SortOrder, body.Session, body.UseMock))
}

func (s *Server) serveContacts(w http.ResponseWriter, r *http.Request, values url.Values) {
	start := time.Now()

	p, errs := parseListQuery(values, s.cfg.Limits, s.waha.DefaultSession(), contactSortFields, "name", "asc")
	if len(errs) > 0 {
		writeValidationErrors(w, r, start, errs)
		return
	}

	var resp *waha.Response
	if p.UseMock {
		resp = &waha.Response{Success: true, Data: s.waha.GenerateMockContacts(p.Query.Limit, p.Query.Offset, p.Query.SortBy, p.Query.SortOrder)}
	} else {
		resp = s.waha.GetAllContacts(r.Context(), p.Query)
	}
	if !resp.Success {
		s.writeUpstreamError(w, r, start, resp, p.Query.Session)
		return
	}

	contacts := toRecords(resp.Data["contacts"])
	processed := make([]map[string]any, 0, len(contacts))
	for _, c := range contacts {
		processed = append(processed, reshapeContact(c))
	}

	writeSuccess(w, r, start, map[string]any{
		"contacts":   processed,
		"pagination": paginationBlock(resp.Data, len(processed), p.Query.Limit, p.Query.Offset),
		"sorting": map[string]any{
			"sort_by":    p.Query.SortBy,
			"sort_order": p.Query.SortOrder,
		},
		"session":      p.Query.Session,
		"statistics":   contactStatistics(processed),
		"mock":         resp.Data["mock"] == true,
		"generated_at": generatedAt(resp.Data),
	})
}

func (s *Server) handleContactsMock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p, errs := parseListQuery(r.URL.Query(), s.cfg.Limits, s.waha.DefaultSession(), contactSortFields, "name", "asc")
	if len(errs) > 0 {
		writeValidationErrors(w, r, start, errs)
		return
	}

	data := s.waha.GenerateMockContacts(p.Query.Limit, 0, p.Query.SortBy, p.Query.SortOrder)
	contacts := toRecords(data["contacts"])

	individuals, groups := 0, 0
	for _, c := range contacts {
		if boolField(c, "isGroup") {
			groups++
		} else {
			individuals++
		}
	}

	writeSuccess(w, r, start, map[string]any{
		"contacts":     contacts,
		"total":        data["total"],
		"limit":        p.Query.Limit,
		"has_more":     data["hasMore"],
		"mock":         true,
		"generated_at": data["generated_at"],
		"statistics": map[string]any{
			"total":       data["total"],
			"individuals": individuals,
			"groups":      groups,
		},
	})
}

func (s *Server) handleContactsStatistics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := s.waha.GetAllContacts(r.Context(), waha.ListQuery{
		Limit:     s.cfg.Limits.MaxLimit,
		SortBy:    "name",
		SortOrder: "asc",
		Session:   s.waha.DefaultSession(),
	})
	if !resp.Success {
		writeError(w, r, start, http.StatusServiceUnavailable, "STATISTICS_ERROR",
			"Unable to retrieve contacts for statistics", nil)
		return
	}

	contacts := toRecords(resp.Data["contacts"])

	var individuals, groups, waContacts, nonWAContacts int
	var withUnread, totalUnread, withProfilePic int
	distribution := map[string]int{
		"zero_unread":         0,
		"1_to_5_unread":       0,
		"6_to_10_unread":      0,
		"11_to_50_unread":     0,
		"more_than_50_unread": 0,
	}

	for _, c := range contacts {
		if boolField(c, "isGroup") {
			groups++
		} else {
			individuals++
		}
		if boolField(c, "isWAContact") {
			waContacts++
		} else {
			nonWAContacts++
		}
		if strField(c, "profilePicUrl") != "" {
			withProfilePic++
		}

		unread := intField(c, "unreadCount")
		totalUnread += unread
		switch {
		case unread == 0:
			distribution["zero_unread"]++
		case unread <= 5:
			distribution["1_to_5_unread"]++
		case unread <= 10:
			distribution["6_to_10_unread"]++
		case unread <= 50:
			distribution["11_to_50_unread"]++
		default:
			distribution["more_than_50_unread"]++
		}
		if unread > 0 {
			withUnread++
		}
	}

	averageUnread := 0.0
	if len(contacts) > 0 {
		averageUnread = float64(totalUnread) / float64(len(contacts))
	}
	stats := map[string]any{
		"total_contacts":             len(contacts),
		"individual_contacts":        individuals,
		"group_chats":                groups,
		"wa_contacts":                waContacts,
		"non_wa_contacts":            nonWAContacts,
		"contacts_with_unread":       withUnread,
		"total_unread_messages":      totalUnread,
		"contacts_with_profile_pic":  withProfilePic,
		"average_unread_per_contact": averageUnread,
	}

	writeSuccess(w, r, start, map[string]any{
		"statistics":          stats,
		"unread_distribution": distribution,
		"last_updated":        time.Now().UTC().Format(time.RFC3339),
		"session":             s.waha.DefaultSession(),
	})
}

// Messages

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	s.serveMessages(w, r, r.URL.Query().Get("chat_id"), r.URL.Query())
}

func (s *Server) handleMessagesPost(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body struct {
		ChatID    string `json:"chat_id"`
		Limit     int    `json:"limit"`
		Offset    int    `json:"offset"`
		SortBy    string `json:"sort_by"`
		SortOrder string `json:"sort_order"`
		Session   string `json:"session"`
		UseMock   bool   `json:"use_mock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, start, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body", nil)
		return
	}

	s.serveMessages(w, r, body.ChatID, listValues(body.Limit, body.Offset, body.SortBy, body.SortOrder, body.Session, body.UseMock))
}

func (s *Server) serveMessages(w http.ResponseWriter, r *http.Request, chatID string, values url.Values) {
	start := time.Now()

	// Reject malformed chat IDs before touching the upstream
	if !isChatID(chatID) {
		writeError(w, r, start, http.StatusBadRequest, "INVALID_CHAT_ID", "Invalid chat ID format", map[string]any{
			"required_format": "628123456789@c.us",
			"provided":        chatID,
		})
		return
	}

	p, errs := parseListQuery(values, s.cfg.Limits, s.waha.DefaultSession(), messageSortFields, "timestamp", "desc")
	if len(errs) > 0 {
		writeValidationErrors(w, r, start, errs)
		return
	}

	var resp *waha.Response
	if p.UseMock {
		resp = &waha.Response{Success: true, Data: s.waha.GenerateMockMessages(chatID, p.Query.Limit, p.Query.Offset, p.Query.SortBy, p.Query.SortOrder)}
	} else {
		resp = s.waha.GetChatMessages(r.Context(), chatID, p.Query)
	}
	if !resp.Success {
		s.writeUpstreamError(w, r, start, resp, p.Query.Session)
		return
	}

	messages := toRecords(resp.Data["messages"])
	writeSuccess(w, r, start, map[string]any{
		"chat_id":    chatID,
		"messages":   messages,
		"pagination": paginationBlock(resp.Data, len(messages), p.Query.Limit, p.Query.Offset),
		"sorting": map[string]any{
			"sort_by":    p.Query.SortBy,
			"sort_order": p.Query.SortOrder,
		},
		"session":      p.Query.Session,
		"mock":         resp.Data["mock"] == true,
		"generated_at": generatedAt(resp.Data),
	})
}

func (s *Server) handleMessagesMock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	chatID := r.URL.Query().Get("chat_id")
	if !isChatID(chatID) {
		writeError(w, r, start, http.StatusBadRequest, "INVALID_CHAT_ID", "Invalid chat ID format", map[string]any{
			"required_format": "628123456789@c.us",
			"provided":        chatID,
		})
		return
	}

	p, errs := parseListQuery(r.URL.Query(), s.cfg.Limits, s.waha.DefaultSession(), messageSortFields, "timestamp", "desc")
	if len(errs) > 0 {
		writeValidationErrors(w, r, start, errs)
		return
	}

	data := s.waha.GenerateMockMessages(chatID, p.Query.Limit, p.Query.Offset, p.Query.SortBy, p.Query.SortOrder)
	data["chat_id"] = chatID
	writeSuccess(w, r, start, data)
}

// Sending

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var p sendPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, r, start, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body", nil)
		return
	}
	if errs := validateSendPayload(&p); len(errs) > 0 {
		writeValidationErrors(w, r, start, errs)
		return
	}

	resp := s.waha.SendMessage(r.Context(), waha.SendRequest{
		ChatID:       p.ChatID,
		Message:      p.Message,
		Session:      p.Session,
		Type:         p.Type,
		MediaURL:     p.MediaURL,
		MediaCaption: p.MediaCaption,
	})
	if !resp.Success {
		s.writeUpstreamError(w, r, start, resp, p.Session)
		return
	}

	display := p.Message
	var media map[string]any
	if p.Type != "text" {
		if p.MediaCaption != "" {
			display = p.MediaCaption
		} else {
			display = "Media message"
		}
		media = map[string]any{
			"url":     p.MediaURL,
			"caption": p.MediaCaption,
			"type":    p.Type,
		}
	}

	writeSuccess(w, r, start, map[string]any{
		"message_id": resp.Data["message_id"],
		"chat_id":    p.ChatID,
		"message":    display,
		"type":       p.Type,
		"session":    resp.Data["session"],
		"status":     "sent",
		"timestamp":  resp.Data["timestamp"],
		"media":      media,
		"auto_response": map[string]any{
			"enabled":  s.cfg.AutoReply.Enabled,
			"delay_ms": s.cfg.AutoReply.DelayMs,
		},
	})
}

func (s *Server) handleSendBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var batch []sendPayload
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeError(w, r, start, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body", nil)
		return
	}
	if len(batch) > maxBatchSize {
		writeError(w, r, start, http.StatusBadRequest, "BATCH_SIZE_EXCEEDED", "Batch size exceeds limit", map[string]any{
			"max_batch_size": maxBatchSize,
			"provided_size":  len(batch),
		})
		return
	}

	results := make([]map[string]any, 0, len(batch))
	failures := make([]map[string]any, 0)

	// Strictly sequential: no fan-out, no rollback
	for i := range batch {
		item := &batch[i]
		if errs := validateSendPayload(item); len(errs) > 0 {
			failures = append(failures, map[string]any{
				"index":   i,
				"chat_id": item.ChatID,
				"success": false,
				"error":   "request validation failed",
				"code":    "VALIDATION_ERROR",
				"details": errs,
			})
			continue
		}

		resp := s.waha.SendMessage(r.Context(), waha.SendRequest{
			ChatID:       item.ChatID,
			Message:      item.Message,
			Session:      item.Session,
			Type:         item.Type,
			MediaURL:     item.MediaURL,
			MediaCaption: item.MediaCaption,
		})
		if resp.Success {
			results = append(results, map[string]any{
				"index":      i,
				"chat_id":    item.ChatID,
				"success":    true,
				"message_id": resp.Data["message_id"],
				"status":     "sent",
			})
		} else {
			failures = append(failures, map[string]any{
				"index":   i,
				"chat_id": item.ChatID,
				"success": false,
				"error":   resp.Error,
				"code":    resp.Code,
			})
		}
	}

	successRate := "0%"
	if len(batch) > 0 {
		successRate = fmt.Sprintf("%.1f%%", float64(len(results))/float64(len(batch))*100)
	}

	writeSuccess(w, r, start, map[string]any{
		"batch_id":       fmt.Sprintf("batch_%d", time.Now().Unix()),
		"total_messages": len(batch),
		"successful":     len(results),
		"failed":         len(failures),
		"results":        results,
		"errors":         failures,
		"success_rate":   successRate,
	})
}

func (s *Server) handleSendMock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var p sendPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, r, start, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body", nil)
		return
	}
	if errs := validateSendPayload(&p); len(errs) > 0 {
		writeValidationErrors(w, r, start, errs)
		return
	}

	session := p.Session
	if session == "" {
		session = s.waha.DefaultSession()
	}
	var media map[string]any
	if p.Type != "text" {
		media = map[string]any{
			"url":     p.MediaURL,
			"caption": p.MediaCaption,
			"type":    p.Type,
		}
	}

	writeSuccess(w, r, start, map[string]any{
		"message_id": fmt.Sprintf("mock_msg_%d_%s", time.Now().Unix(), p.ChatID),
		"chat_id":    p.ChatID,
		"message":    p.Message,
		"type":       p.Type,
		"session":    session,
		"status":     "mocked",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"mock":       true,
		"media":      media,
	})
}

// Webhook

func (s *Server) handleWebhookVerify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := r.URL.Query()
	mode := q.Get("mode")
	challenge := q.Get("challenge")
	token := q.Get("verify_token")

	if mode == "subscribe" && token == s.cfg.Webhook.VerifyToken {
		s.log.Info().Msg("webhook verification successful")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}

	var details any
	if s.cfg.Server.Debug {
		details = map[string]any{"mode": mode, "received_token": token}
	}
	writeError(w, r, start, http.StatusForbidden, "WEBHOOK_VERIFICATION_FAILED", "Webhook verification failed", details)
}

// handleWebhookEvent always answers HTTP 200 for processable requests,
// even on dispatch failure; WAHA retries non-200 responses and a
// poisoned event must not cause a retry storm. Only a bad signature
// gets a 403.
func (s *Server) handleWebhookEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, r, start, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "webhook payload too large", nil)
		return
	}

	signature := r.Header.Get("X-Waha-Signature")
	if !webhook.VerifySignature(s.cfg.Webhook.Secret, body, signature) {
		writeError(w, r, start, http.StatusForbidden, "INVALID_WEBHOOK_SIGNATURE", "Invalid webhook signature", nil)
		return
	}

	var ev webhook.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		writeError(w, r, start, http.StatusOK, "WEBHOOK_PROCESSING_ERROR", "Webhook processing failed", nil)
		return
	}
	if ev.Session == "" {
		ev.Session = s.waha.DefaultSession()
	}

	result, err := s.dispatcher.Dispatch(r.Context(), &ev)
	if err != nil {
		var details any
		if errors.Is(err, webhook.ErrUnknownEvent) {
			details = map[string]any{
				"event":            ev.Event,
				"supported_events": webhook.SupportedEvents,
			}
			writeError(w, r, start, http.StatusOK, "UNKNOWN_EVENT", "Unknown webhook event", details)
			return
		}
		writeError(w, r, start, http.StatusOK, "WEBHOOK_PROCESSING_ERROR", "Webhook processing failed", nil)
		return
	}

	s.hub.Publish(ev.Event, ev.Session, result)

	writeSuccess(w, r, start, map[string]any{
		"event":              ev.Event,
		"session":            ev.Session,
		"processed":          true,
		"response":           result,
		"signature_verified": s.cfg.Webhook.Secret != "" && signature != "",
	})
}

func (s *Server) handleWebhookInfo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	writeSuccess(w, r, start, map[string]any{
		"webhook_url": "/webhook",
		"events":      webhook.SupportedEvents,
		"security": map[string]any{
			"signature_enabled":      s.cfg.Webhook.Secret != "",
			"verification_token_set": s.cfg.Webhook.VerifyToken != "",
		},
		"auto_response": map[string]any{
			"enabled":  s.cfg.AutoReply.Enabled,
			"delay_ms": s.cfg.AutoReply.DelayMs,
		},
	})
}

// Health

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	probe := s.waha.TestConnection(r.Context())

	required := map[string]string{
		"WAHA_API_URL":  s.cfg.Waha.URL,
		"WAHA_USERNAME": s.cfg.Waha.Username,
		"WAHA_PASSWORD": s.cfg.Waha.Password,
		"WAHA_API_KEY":  s.cfg.Waha.APIKey,
	}
	missing := make([]string, 0)
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}

	healthy := probe.Success && len(missing) == 0

	wahaStatus := "connected"
	var wahaErr any
	if !probe.Success {
		wahaStatus = "disconnected"
		wahaErr = probe.Error
	}
	configStatus := "configured"
	if len(missing) > 0 {
		configStatus = "misconfigured"
	}

	overall := "healthy"
	if !healthy {
		overall = "unhealthy"
	}

	data := map[string]any{
		"status":         overall,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"services": map[string]any{
			"waha_api": map[string]any{
				"status": wahaStatus,
				"url":    s.cfg.Waha.URL,
				"error":  wahaErr,
			},
			"config": map[string]any{
				"status":  configStatus,
				"missing": missing,
			},
		},
		"features": map[string]any{
			"auto_response":     s.cfg.AutoReply.Enabled,
			"webhook_signature": s.cfg.Webhook.Secret != "",
			"analytics_store":   s.cfg.Store.Enabled,
		},
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, Envelope{
		Success:  healthy,
		Data:     data,
		Metadata: buildMetadata(r, start),
	})
}

func (s *Server) handleHealthWaha(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	probe := s.waha.TestConnection(r.Context())

	block := map[string]any{
		"status": "connected",
		"url":    s.cfg.Waha.URL,
	}
	if probe.Success {
		block["response"] = probe.Data
	} else {
		block["status"] = "disconnected"
		block["error"] = probe.Error
	}

	writeSuccess(w, r, start, map[string]any{"waha_api": block})
}

// Shared helpers

// writeUpstreamError maps an upstream failure envelope to an HTTP error
// response with code-specific detail blocks.
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, start time.Time, resp *waha.Response, session string) {
	var details any
	switch resp.Code {
	case waha.CodeScanQRRequired:
		details = map[string]any{
			"message":  "Please scan QR code in WAHA dashboard",
			"waha_url": s.cfg.Waha.URL + "/",
		}
	case waha.CodeSessionDisconnected:
		details = map[string]any{
			"message": "Please reconnect WhatsApp session",
			"session": session,
		}
	}
	writeError(w, r, start, statusForCode(resp.Code), resp.Code, resp.Error, details)
}

func listValues(limit, offset int, sortBy, sortOrder, session string, useMock bool) url.Values {
	values := url.Values{}
	if limit != 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if offset != 0 {
		values.Set("offset", strconv.Itoa(offset))
	}
	if sortBy != "" {
		values.Set("sort_by", sortBy)
	}
	if sortOrder != "" {
		values.Set("sort_order", sortOrder)
	}
	if session != "" {
		values.Set("session", session)
	}
	if useMock {
		values.Set("use_mock", "true")
	}
	return values
}

// reshapeContact flattens one upstream contact into the API shape with
// derived name/display_name fallbacks, a bare phone number, and a type.
func reshapeContact(c map[string]any) map[string]any {
	id := strField(c, "id")
	phone := strings.TrimSuffix(strings.TrimSuffix(id, "@c.us"), "@g.us")

	contactType := "individual"
	if boolField(c, "isGroup") {
		contactType = "group"
	}

	return map[string]any{
		"id":                id,
		"name":              firstNonEmpty(strField(c, "name"), strField(c, "pushname"), strField(c, "notifyName"), "Unknown"),
		"display_name":      firstNonEmpty(strField(c, "pushname"), strField(c, "notifyName"), strField(c, "name"), "Unknown"),
		"is_group":          boolField(c, "isGroup"),
		"is_wa_contact":     boolField(c, "isWAContact"),
		"last_message":      c["lastMessage"],
		"last_message_time": c["lastMessageTime"],
		"unread_count":      intField(c, "unreadCount"),
		"profile_pic_url":   c["profilePicUrl"],
		"phone":             phone,
		"type":              contactType,
		"notify_name":       c["notifyName"],
		"pushname":          c["pushname"],
	}
}

func contactStatistics(contacts []map[string]any) map[string]any {
	individuals, groups, waContacts, withUnread, totalUnread := 0, 0, 0, 0, 0
	for _, c := range contacts {
		if c["type"] == "group" {
			groups++
		} else {
			individuals++
		}
		if b, _ := c["is_wa_contact"].(bool); b {
			waContacts++
		}
		unread := intField(c, "unread_count")
		totalUnread += unread
		if unread > 0 {
			withUnread++
		}
	}
	return map[string]any{
		"total":        len(contacts),
		"individuals":  individuals,
		"groups":       groups,
		"wa_contacts":  waContacts,
		"with_unread":  withUnread,
		"total_unread": totalUnread,
	}
}

func paginationBlock(data map[string]any, count, limit, offset int) map[string]any {
	total := count
	if n, ok := numField(data, "total"); ok {
		total = n
	}
	hasMore := count >= limit
	if b, ok := data["hasMore"].(bool); ok {
		hasMore = b
	}
	page := 1
	totalPages := 1
	if limit > 0 {
		page = offset/limit + 1
		totalPages = (total + limit - 1) / limit
	}
	if n, ok := numField(data, "total_pages"); ok {
		totalPages = n
	}
	return map[string]any{
		"limit":       limit,
		"offset":      offset,
		"total":       total,
		"has_more":    hasMore,
		"page":        page,
		"total_pages": totalPages,
	}
}

func generatedAt(data map[string]any) string {
	if s, ok := data["generated_at"].(string); ok {
		return s
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// toRecords normalizes a decoded list: mock generators produce
// []map[string]any, upstream JSON decodes to []any.
func toRecords(v any) []map[string]any {
	switch t := v.(type) {
	case []map[string]any:
		return t
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return []map[string]any{}
	}
}

func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func intField(m map[string]any, key string) int {
	n, _ := numField(m, key)
	return n
}

func numField(m map[string]any, key string) (int, bool) {
	switch n := m[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
