// Package webhook processes event callbacks from the upstream WAHA
// server: signature checks, per-event handling, and keyword auto-reply.
package webhook

// Event is the payload WAHA posts to the webhook endpoint.
type Event struct {
	Event   string      `json:"event"`
	Session string      `json:"session"`
	Data    MessageData `json:"data"`
}

// MessageData carries the event body. WAHA reuses the message shape for
// every event type; session status and QR payloads arrive in Body.
type MessageData struct {
	ID           string  `json:"id"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	Body         string  `json:"body"`
	Timestamp    int64   `json:"timestamp"`
	FromMe       bool    `json:"fromMe"`
	HasMedia     bool    `json:"hasMedia"`
	MediaType    *string `json:"mediaType,omitempty"`
	MediaCaption *string `json:"mediaCaption,omitempty"`
	Ack          *int    `json:"ack,omitempty"`
}

// SupportedEvents lists the event tags the dispatcher handles, in the
// order they are documented.
var SupportedEvents = []string{"message", "messageAck", "sessionStatus", "qrCode", "disconnected"}
