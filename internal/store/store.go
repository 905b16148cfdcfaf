// Package store records webhook traffic for analytics: messages, ack
// transitions, session status changes, and QR code events.
package store

import "sync"

// MessageRecord is one inbound or outbound message as seen by the
// webhook receiver.
type MessageRecord struct {
	ID        string
	Session   string
	ChatID    string
	From      string
	To        string
	Body      string
	Timestamp int64
	FromMe    bool
	HasMedia  bool
	MediaType string
}

// Recorder persists webhook events. Implementations must be safe for
// concurrent use; the dispatcher calls them from request goroutines.
type Recorder interface {
	RecordMessage(rec MessageRecord) error
	UpdateAckStatus(messageID string, ack int, status string) error
	RecordSessionStatus(session, status string) error
	RecordQRCode(session string) error
	CleanupSession(session string) error
}

// MemoryRecorder keeps records in memory. Used when persistence is
// disabled and in tests.
type MemoryRecorder struct {
	mu       sync.Mutex
	messages []MessageRecord
	acks     map[string]string
	statuses []string
	qrCount  int
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{acks: make(map[string]string)}
}

func (m *MemoryRecorder) RecordMessage(rec MessageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, rec)
	return nil
}

func (m *MemoryRecorder) UpdateAckStatus(messageID string, ack int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acks[messageID] = status
	return nil
}

func (m *MemoryRecorder) RecordSessionStatus(session, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, session+":"+status)
	return nil
}

func (m *MemoryRecorder) RecordQRCode(session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qrCount++
	return nil
}

func (m *MemoryRecorder) CleanupSession(session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.messages[:0]
	for _, rec := range m.messages {
		if rec.Session != session {
			kept = append(kept, rec)
		}
	}
	m.messages = kept
	return nil
}

// Messages returns a copy of the recorded messages.
func (m *MemoryRecorder) Messages() []MessageRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MessageRecord, len(m.messages))
	copy(out, m.messages)
	return out
}

// AckStatus returns the last recorded ack status for a message ID.
func (m *MemoryRecorder) AckStatus(messageID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acks[messageID]
}
