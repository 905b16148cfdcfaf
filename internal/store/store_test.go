package store

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/wagate/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", logging.New(io.Discard, "silent", "json"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationsIdempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.migrate())
	require.NoError(t, db.migrate())
}

func TestSQLiteRecorderMessages(t *testing.T) {
	rec := NewSQLiteRecorder(testDB(t))

	msg := MessageRecord{
		ID:        "msg-1",
		Session:   "default",
		ChatID:    "628123@c.us",
		From:      "628123@c.us",
		To:        "628999@c.us",
		Body:      "halo",
		Timestamp: 1700000000,
	}
	require.NoError(t, rec.RecordMessage(msg))

	// Redelivery of the same ID overwrites instead of failing
	msg.Body = "halo lagi"
	require.NoError(t, rec.RecordMessage(msg))

	count, err := rec.MessageCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var body string
	require.NoError(t, rec.db.sql.QueryRow(
		`SELECT body FROM messages WHERE message_id = ?`, "msg-1",
	).Scan(&body))
	assert.Equal(t, "halo lagi", body)
}

func TestSQLiteRecorderAck(t *testing.T) {
	rec := NewSQLiteRecorder(testDB(t))

	require.NoError(t, rec.RecordMessage(MessageRecord{ID: "msg-1", ChatID: "c@c.us"}))
	require.NoError(t, rec.UpdateAckStatus("msg-1", 3, "read"))

	var status string
	require.NoError(t, rec.db.sql.QueryRow(
		`SELECT ack_status FROM messages WHERE message_id = ?`, "msg-1",
	).Scan(&status))
	assert.Equal(t, "read", status)

	// Ack before the message arrives creates a stub row
	require.NoError(t, rec.UpdateAckStatus("msg-2", 1, "sent"))
	count, err := rec.MessageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteRecorderSessionLifecycle(t *testing.T) {
	rec := NewSQLiteRecorder(testDB(t))

	require.NoError(t, rec.RecordSessionStatus("default", "WORKING"))
	require.NoError(t, rec.RecordQRCode("default"))

	require.NoError(t, rec.RecordMessage(MessageRecord{ID: "m1", Session: "default", ChatID: "a@c.us"}))
	require.NoError(t, rec.RecordMessage(MessageRecord{ID: "m2", Session: "other", ChatID: "b@c.us"}))

	require.NoError(t, rec.CleanupSession("default"))

	count, err := rec.MessageCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "only the disconnected session's messages removed")

	var events int
	require.NoError(t, rec.db.sql.QueryRow(`SELECT COUNT(*) FROM session_events`).Scan(&events))
	assert.Equal(t, 1, events, "session history survives cleanup")
}

func TestMemoryRecorder(t *testing.T) {
	rec := NewMemoryRecorder()

	require.NoError(t, rec.RecordMessage(MessageRecord{ID: "m1", Session: "default"}))
	require.NoError(t, rec.RecordMessage(MessageRecord{ID: "m2", Session: "other"}))
	require.NoError(t, rec.UpdateAckStatus("m1", 2, "received"))
	require.NoError(t, rec.RecordSessionStatus("default", "WORKING"))
	require.NoError(t, rec.RecordQRCode("default"))

	assert.Equal(t, "received", rec.AckStatus("m1"))
	assert.Len(t, rec.Messages(), 2)

	require.NoError(t, rec.CleanupSession("default"))
	assert.Len(t, rec.Messages(), 1)
}
