package gateway

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/waha"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	contactSortFields = map[string]bool{
		"name": true, "id": true, "notifyName": true, "pushname": true,
		"lastMessage": true, "unreadCount": true, "lastMessageTime": true,
	}
	messageSortFields = map[string]bool{
		"timestamp": true, "from": true, "to": true, "body": true,
	}
	sendTypes = map[string]bool{
		"text": true, "image": true, "document": true, "audio": true, "video": true,
	}
)

const (
	maxMessageLen      = 4096
	maxMediaCaptionLen = 1024
	maxBatchSize       = 100
)

// listParams holds the parsed pagination query plus the use_mock flag.
type listParams struct {
	Query   waha.ListQuery
	UseMock bool
}

// parseListQuery validates limit/offset/sort parameters against the
// configured limits. sortFields selects the allowed sort_by values;
// defaults differ per route (contacts sort by name asc, messages by
// timestamp desc).
func parseListQuery(values url.Values, limits config.LimitsConfig, defaultSession string, sortFields map[string]bool, defaultSortBy, defaultSortOrder string) (listParams, []FieldError) {
	var errs []FieldError

	p := listParams{Query: waha.ListQuery{
		Limit:     limits.DefaultLimit,
		SortBy:    defaultSortBy,
		SortOrder: defaultSortOrder,
		Session:   defaultSession,
	}}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > limits.MaxLimit {
			errs = append(errs, FieldError{"limit", "must be an integer between 1 and " + strconv.Itoa(limits.MaxLimit)})
		} else {
			p.Query.Limit = n
		}
	}

	if raw := values.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, FieldError{"offset", "must be a non-negative integer"})
		} else {
			p.Query.Offset = n
		}
	}

	if raw := values.Get("sort_by"); raw != "" {
		if !sortFields[raw] {
			errs = append(errs, FieldError{"sort_by", "unsupported sort field: " + raw})
		} else {
			p.Query.SortBy = raw
		}
	}

	if raw := values.Get("sort_order"); raw != "" {
		if raw != "asc" && raw != "desc" {
			errs = append(errs, FieldError{"sort_order", "must be asc or desc"})
		} else {
			p.Query.SortOrder = raw
		}
	}

	if raw := values.Get("session"); raw != "" {
		p.Query.Session = raw
	}

	p.UseMock = values.Get("use_mock") == "true"

	return p, errs
}

// sendPayload is the JSON body for send routes.
type sendPayload struct {
	ChatID       string `json:"chat_id"`
	Message      string `json:"message"`
	Session      string `json:"session,omitempty"`
	Type         string `json:"type,omitempty"`
	MediaURL     string `json:"media_url,omitempty"`
	MediaCaption string `json:"media_caption,omitempty"`
}

// validateSendPayload checks a send request before any upstream call.
func validateSendPayload(p *sendPayload) []FieldError {
	var errs []FieldError

	if !isChatID(p.ChatID) {
		errs = append(errs, FieldError{"chat_id", "must end with @c.us"})
	}
	if len(p.Message) < 1 || len(p.Message) > maxMessageLen {
		errs = append(errs, FieldError{"message", "must be between 1 and 4096 characters"})
	}
	if p.Type == "" {
		p.Type = "text"
	}
	if !sendTypes[p.Type] {
		errs = append(errs, FieldError{"type", "must be one of text, image, document, audio, video"})
	} else if p.Type != "text" {
		if p.MediaURL == "" {
			errs = append(errs, FieldError{"media_url", "required for media messages"})
		} else if !isHTTPURL(p.MediaURL) {
			errs = append(errs, FieldError{"media_url", "must be an absolute http(s) URL"})
		}
	}
	if len(p.MediaCaption) > maxMediaCaptionLen {
		errs = append(errs, FieldError{"media_caption", "must be at most 1024 characters"})
	}

	return errs
}

func isChatID(id string) bool {
	return len(id) > len("@c.us") && strings.HasSuffix(id, "@c.us")
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func writeValidationErrors(w http.ResponseWriter, r *http.Request, start time.Time, errs []FieldError) {
	writeError(w, r, start, http.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", errs)
}
