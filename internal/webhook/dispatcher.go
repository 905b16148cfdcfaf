package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/soyeahso/wagate/internal/config"
	"github.com/soyeahso/wagate/internal/logging"
	"github.com/soyeahso/wagate/internal/store"
	"github.com/soyeahso/wagate/internal/waha"
)

// ErrUnknownEvent is returned by Dispatch for event tags outside
// SupportedEvents.
var ErrUnknownEvent = errors.New("unknown webhook event")

// MessageSender sends an outbound message. Satisfied by *waha.Client.
type MessageSender interface {
	SendMessage(ctx context.Context, req waha.SendRequest) *waha.Response
}

// Dispatcher routes webhook events to their handlers.
type Dispatcher struct {
	sender   MessageSender
	rec      store.Recorder
	cfg      config.AutoReplyConfig
	log      *logging.Logger
	handlers map[string]func(ctx context.Context, ev *Event) map[string]any
}

// New creates a dispatcher. The recorder may not be nil; pass a
// store.MemoryRecorder when persistence is disabled.
func New(sender MessageSender, rec store.Recorder, cfg config.AutoReplyConfig, log *logging.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		rec:    rec,
		cfg:    cfg,
		log:    log.Sub("webhook"),
	}
	d.handlers = map[string]func(ctx context.Context, ev *Event) map[string]any{
		"message":       d.handleMessage,
		"messageAck":    d.handleMessageAck,
		"sessionStatus": d.handleSessionStatus,
		"qrCode":        d.handleQRCode,
		"disconnected":  d.handleDisconnected,
	}
	return d
}

// Dispatch routes one event by tag. The result map is handler-specific;
// ErrUnknownEvent is the only error.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) (map[string]any, error) {
	handler, ok := d.handlers[ev.Event]
	if !ok {
		d.log.Warn().Str("event", ev.Event).Msg("unknown webhook event")
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Event)
	}

	d.log.Info().Str("event", ev.Event).Str("session", ev.Session).Msg("processing webhook event")
	return handler(ctx, ev), nil
}

func (d *Dispatcher) handleMessage(ctx context.Context, ev *Event) map[string]any {
	data := ev.Data

	if data.FromMe {
		return map[string]any{
			"action":     "ignored",
			"reason":     "own_message",
			"message_id": data.ID,
		}
	}

	if d.cfg.Enabled {
		reply, category := MatchAutoReply(data.Body)
		resp := d.sender.SendMessage(ctx, waha.SendRequest{
			ChatID:  data.From,
			Message: reply,
			Session: ev.Session,
		})
		if !resp.Success {
			d.log.Warn().Str("chatId", data.From).Str("error", resp.Error).Msg("auto-response failed")
			return map[string]any{
				"action": "auto_response_failed",
				"error":  resp.Error,
			}
		}
		d.log.Info().Str("chatId", data.From).Str("category", category).Msg("auto-response sent")
		return map[string]any{
			"action":     "auto_response_sent",
			"message":    reply,
			"category":   category,
			"message_id": resp.Data["message_id"],
			"delay_ms":   d.cfg.DelayMs,
		}
	}

	mediaType := ""
	if data.MediaType != nil {
		mediaType = *data.MediaType
	}
	if err := d.rec.RecordMessage(store.MessageRecord{
		ID:        data.ID,
		Session:   ev.Session,
		ChatID:    data.From,
		From:      data.From,
		To:        data.To,
		Body:      data.Body,
		Timestamp: data.Timestamp,
		FromMe:    data.FromMe,
		HasMedia:  data.HasMedia,
		MediaType: mediaType,
	}); err != nil {
		d.log.Error().Err(err).Str("messageId", data.ID).Msg("failed to record message")
	}

	return map[string]any{
		"action": "processed",
		"type":   "message_logged",
	}
}

func (d *Dispatcher) handleMessageAck(_ context.Context, ev *Event) map[string]any {
	ack := 0
	if ev.Data.Ack != nil {
		ack = *ev.Data.Ack
	}
	status := AckStatus(ack)

	if err := d.rec.UpdateAckStatus(ev.Data.ID, ack, status); err != nil {
		d.log.Error().Err(err).Str("messageId", ev.Data.ID).Msg("failed to update ack status")
	}

	return map[string]any{
		"action":     "acknowledgment_processed",
		"message_id": ev.Data.ID,
		"status":     status,
	}
}

func (d *Dispatcher) handleSessionStatus(_ context.Context, ev *Event) map[string]any {
	// Status rides in the body field for session events
	status := ev.Data.Body

	if err := d.rec.RecordSessionStatus(ev.Session, status); err != nil {
		d.log.Error().Err(err).Str("session", ev.Session).Msg("failed to record session status")
	}

	if status == "DISCONNECTED" || status == "CONFLICT" {
		d.log.Warn().Str("session", ev.Session).Str("status", status).Msg("session alert")
	}

	return map[string]any{
		"action":  "status_updated",
		"session": ev.Session,
		"status":  status,
	}
}

func (d *Dispatcher) handleQRCode(_ context.Context, ev *Event) map[string]any {
	if err := d.rec.RecordQRCode(ev.Session); err != nil {
		d.log.Error().Err(err).Str("session", ev.Session).Msg("failed to record qr code")
	}

	return map[string]any{
		"action":       "qr_code_received",
		"session":      ev.Session,
		"qr_available": true,
	}
}

func (d *Dispatcher) handleDisconnected(_ context.Context, ev *Event) map[string]any {
	if err := d.rec.CleanupSession(ev.Session); err != nil {
		d.log.Error().Err(err).Str("session", ev.Session).Msg("failed to clean up session")
	}

	return map[string]any{
		"action":  "disconnection_handled",
		"session": ev.Session,
	}
}

// AckStatus maps a WhatsApp ack level to its readable form.
func AckStatus(ack int) string {
	switch ack {
	case 0:
		return "pending"
	case 1:
		return "sent"
	case 2:
		return "received"
	case 3:
		return "read"
	case 4:
		return "played"
	default:
		return "unknown"
	}
}
