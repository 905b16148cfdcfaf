package gateway

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/wagate/internal/config"
)

func TestParseListQueryDefaults(t *testing.T) {
	limits := config.LimitsConfig{DefaultLimit: 100, MaxLimit: 1000}

	p, errs := parseListQuery(url.Values{}, limits, "default", contactSortFields, "name", "asc")
	require.Empty(t, errs)

	assert.Equal(t, 100, p.Query.Limit)
	assert.Equal(t, 0, p.Query.Offset)
	assert.Equal(t, "name", p.Query.SortBy)
	assert.Equal(t, "asc", p.Query.SortOrder)
	assert.Equal(t, "default", p.Query.Session)
	assert.False(t, p.UseMock)
}

func TestParseListQueryOverrides(t *testing.T) {
	limits := config.LimitsConfig{DefaultLimit: 100, MaxLimit: 1000}
	values := url.Values{
		"limit":      {"25"},
		"offset":     {"50"},
		"sort_by":    {"unreadCount"},
		"sort_order": {"desc"},
		"session":    {"work"},
		"use_mock":   {"true"},
	}

	p, errs := parseListQuery(values, limits, "default", contactSortFields, "name", "asc")
	require.Empty(t, errs)

	assert.Equal(t, 25, p.Query.Limit)
	assert.Equal(t, 50, p.Query.Offset)
	assert.Equal(t, "unreadCount", p.Query.SortBy)
	assert.Equal(t, "desc", p.Query.SortOrder)
	assert.Equal(t, "work", p.Query.Session)
	assert.True(t, p.UseMock)
}

func TestParseListQueryRejections(t *testing.T) {
	limits := config.LimitsConfig{DefaultLimit: 100, MaxLimit: 1000}

	tests := []struct {
		name   string
		values url.Values
		field  string
	}{
		{"limit not a number", url.Values{"limit": {"ten"}}, "limit"},
		{"limit zero", url.Values{"limit": {"0"}}, "limit"},
		{"limit over max", url.Values{"limit": {"1001"}}, "limit"},
		{"offset negative", url.Values{"offset": {"-5"}}, "offset"},
		{"message field on contacts", url.Values{"sort_by": {"timestamp"}}, "sort_by"},
		{"bad order", url.Values{"sort_order": {"up"}}, "sort_order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseListQuery(tt.values, limits, "default", contactSortFields, "name", "asc")
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestParseListQueryMessageSortFields(t *testing.T) {
	limits := config.LimitsConfig{DefaultLimit: 100, MaxLimit: 1000}

	p, errs := parseListQuery(url.Values{"sort_by": {"timestamp"}}, limits, "default", messageSortFields, "timestamp", "desc")
	require.Empty(t, errs)
	assert.Equal(t, "timestamp", p.Query.SortBy)

	_, errs = parseListQuery(url.Values{"sort_by": {"unreadCount"}}, limits, "default", messageSortFields, "timestamp", "desc")
	assert.NotEmpty(t, errs)
}

func TestValidateSendPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload sendPayload
		field   string // empty means valid
	}{
		{"valid text", sendPayload{ChatID: "628123@c.us", Message: "halo"}, ""},
		{"valid media", sendPayload{ChatID: "628123@c.us", Message: "pic", Type: "image", MediaURL: "https://example.com/a.png"}, ""},
		{"group jid rejected", sendPayload{ChatID: "123@g.us", Message: "halo"}, "chat_id"},
		{"bare suffix rejected", sendPayload{ChatID: "@c.us", Message: "halo"}, "chat_id"},
		{"empty message", sendPayload{ChatID: "628@c.us", Message: ""}, "message"},
		{"message too long", sendPayload{ChatID: "628@c.us", Message: string(make([]byte, 4097))}, "message"},
		{"unknown type", sendPayload{ChatID: "628@c.us", Message: "x", Type: "sticker"}, "type"},
		{"media url missing", sendPayload{ChatID: "628@c.us", Message: "x", Type: "video"}, "media_url"},
		{"media url not http", sendPayload{ChatID: "628@c.us", Message: "x", Type: "video", MediaURL: "ftp://x/a"}, "media_url"},
		{"caption too long", sendPayload{ChatID: "628@c.us", Message: "x", MediaCaption: string(make([]byte, 1025))}, "media_caption"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.payload
			errs := validateSendPayload(&p)
			if tt.field == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestValidateSendPayloadDefaultsType(t *testing.T) {
	p := sendPayload{ChatID: "628123@c.us", Message: "halo"}
	require.Empty(t, validateSendPayload(&p))
	assert.Equal(t, "text", p.Type)
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, 422, statusForCode("SCAN_QR_REQUIRED"))
	assert.Equal(t, 422, statusForCode("SESSION_DISCONNECTED"))
	assert.Equal(t, 503, statusForCode("CONTACTS_ERROR"))
	assert.Equal(t, 500, statusForCode(""))
}
