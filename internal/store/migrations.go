package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create messages, session events, qr codes",
		SQL: `
			CREATE TABLE messages (
				message_id  TEXT PRIMARY KEY,
				session     TEXT NOT NULL DEFAULT '',
				chat_id     TEXT NOT NULL,
				sender      TEXT NOT NULL DEFAULT '',
				recipient   TEXT NOT NULL DEFAULT '',
				body        TEXT NOT NULL DEFAULT '',
				timestamp   INTEGER NOT NULL DEFAULT 0,
				from_me     INTEGER NOT NULL DEFAULT 0,
				has_media   INTEGER NOT NULL DEFAULT 0,
				media_type  TEXT NOT NULL DEFAULT '',
				ack         INTEGER NOT NULL DEFAULT 0,
				ack_status  TEXT NOT NULL DEFAULT 'pending',
				received_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_messages_chat ON messages (chat_id, timestamp);
			CREATE INDEX idx_messages_session ON messages (session);

			CREATE TABLE session_events (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				session     TEXT NOT NULL,
				status      TEXT NOT NULL,
				recorded_at TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_session_events ON session_events (session, id);

			CREATE TABLE qr_codes (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				session     TEXT NOT NULL,
				recorded_at TEXT NOT NULL DEFAULT (datetime('now'))
			);
		`,
	},
}
