package store

import "fmt"

// SQLiteRecorder implements Recorder backed by SQLite.
type SQLiteRecorder struct {
	db *DB
}

// NewSQLiteRecorder creates a recorder using the given database.
func NewSQLiteRecorder(db *DB) *SQLiteRecorder {
	return &SQLiteRecorder{db: db}
}

// RecordMessage upserts one message. Webhooks can redeliver, so a
// duplicate ID overwrites rather than errors.
func (s *SQLiteRecorder) RecordMessage(rec MessageRecord) error {
	_, err := s.db.sql.Exec(
		`INSERT INTO messages (message_id, session, chat_id, sender, recipient, body, timestamp, from_me, has_media, media_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(message_id) DO UPDATE SET
			body = excluded.body,
			timestamp = excluded.timestamp`,
		rec.ID, rec.Session, rec.ChatID, rec.From, rec.To, rec.Body,
		rec.Timestamp, boolInt(rec.FromMe), boolInt(rec.HasMedia), rec.MediaType,
	)
	if err != nil {
		return fmt.Errorf("recording message %s: %w", rec.ID, err)
	}
	return nil
}

// UpdateAckStatus records a delivery-status transition. Acks can arrive
// before the message itself; in that case a stub row is created.
func (s *SQLiteRecorder) UpdateAckStatus(messageID string, ack int, status string) error {
	res, err := s.db.sql.Exec(
		`UPDATE messages SET ack = ?, ack_status = ? WHERE message_id = ?`,
		ack, status, messageID,
	)
	if err != nil {
		return fmt.Errorf("updating ack for %s: %w", messageID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = s.db.sql.Exec(
			`INSERT INTO messages (message_id, chat_id, ack, ack_status) VALUES (?, '', ?, ?)`,
			messageID, ack, status,
		)
		if err != nil {
			return fmt.Errorf("recording ack stub for %s: %w", messageID, err)
		}
	}
	return nil
}

func (s *SQLiteRecorder) RecordSessionStatus(session, status string) error {
	_, err := s.db.sql.Exec(
		`INSERT INTO session_events (session, status) VALUES (?, ?)`,
		session, status,
	)
	if err != nil {
		return fmt.Errorf("recording session status: %w", err)
	}
	return nil
}

func (s *SQLiteRecorder) RecordQRCode(session string) error {
	_, err := s.db.sql.Exec(`INSERT INTO qr_codes (session) VALUES (?)`, session)
	if err != nil {
		return fmt.Errorf("recording qr code: %w", err)
	}
	return nil
}

// CleanupSession drops recorded messages for a disconnected session.
// Session events and QR history are kept for diagnostics.
func (s *SQLiteRecorder) CleanupSession(session string) error {
	res, err := s.db.sql.Exec(`DELETE FROM messages WHERE session = ?`, session)
	if err != nil {
		return fmt.Errorf("cleaning up session %s: %w", session, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.db.log.Info().Str("session", session).Int64("messages", n).Msg("session data cleaned up")
	}
	return nil
}

// MessageCount returns the number of recorded messages.
func (s *SQLiteRecorder) MessageCount() (int, error) {
	var count int
	err := s.db.sql.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return count, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
