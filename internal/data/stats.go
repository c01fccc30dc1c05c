package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so the write helpers can
// run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// StatsStore is the SQLite counter store. It implements repo.StatsRepo and
// repo.StatsQuery.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore opens (or creates) the analysis database at dbPath.
func NewStatsStore(dbPath string) (*StatsStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &StatsStore{db: db}, nil
}

// OpenStatsStore opens an existing analysis database for the read-only modes.
// Returns domain.ErrNoDatabase when no aggregation run has created one yet.
func OpenStatsStore(dbPath string) (*StatsStore, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoDatabase, dbPath)
	}
	return NewStatsStore(dbPath)
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS channels (
			folder_name TEXT PRIMARY KEY,
			channel_id TEXT,
			channel_type TEXT,
			channel_name TEXT,
			server_id TEXT,
			server_name TEXT,
			recipients TEXT,
			message_count INTEGER,
			messages_with_attachments INTEGER,
			processed INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			username TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS emotes (
			emote_id TEXT PRIMARY KEY,
			emote_name TEXT,
			usage_count INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS file_types (
			extension TEXT PRIMARY KEY,
			count INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			folder_name TEXT,
			timestamp TEXT,
			year INTEGER,
			month INTEGER,
			day INTEGER,
			has_content INTEGER,
			has_attachments INTEGER,
			FOREIGN KEY (folder_name) REFERENCES channels(folder_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_processed ON channels(processed)`,
		`CREATE INDEX IF NOT EXISTS idx_emote_count ON emotes(usage_count)`,
		`CREATE INDEX IF NOT EXISTS idx_file_count ON file_types(count)`,
		`CREATE INDEX IF NOT EXISTS idx_year ON messages(year)`,
		`CREATE INDEX IF NOT EXISTS idx_folder ON messages(folder_name)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// IsChannelProcessed reports whether a channel's completion flag is set.
func (s *StatsStore) IsChannelProcessed(ctx context.Context, folder string) (bool, error) {
	var processed int
	err := s.db.QueryRowContext(ctx, `
		SELECT processed FROM channels WHERE folder_name = ?
	`, folder).Scan(&processed)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query channel: %w", err)
	}
	return processed == 1, nil
}

// UpsertUserMapping stores a participant identity mapping, last write wins.
func (s *StatsStore) UpsertUserMapping(ctx context.Context, userID, username string) error {
	if userID == "" || username == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users (user_id, username) VALUES (?, ?)
	`, userID, username)
	if err != nil {
		return fmt.Errorf("failed to upsert user mapping: %w", err)
	}
	return nil
}

// InTx runs fn inside one transaction; all writes commit together or roll
// back together.
func (s *StatsStore) InTx(ctx context.Context, fn func(repo.StatsWriter) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&statsWriter{q: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *StatsStore) Close() error {
	return s.db.Close()
}

// statsWriter implements repo.StatsWriter over either the database or a
// transaction.
type statsWriter struct {
	q querier
}

// UpsertChannel insert-or-replaces the full channel row. Guild fields and
// the recipient set are mutually exclusive; recipients persist as a JSON
// array of the already-sorted participant IDs.
func (w *statsWriter) UpsertChannel(ctx context.Context, ch *domain.Channel, msgCount, attachCount int, processed bool) error {
	var serverID, serverName, recipients any
	if ch.IsDirect() {
		raw, err := json.Marshal(ch.Recipients)
		if err != nil {
			return fmt.Errorf("failed to encode recipients: %w", err)
		}
		recipients = string(raw)
	} else if ch.Guild != nil {
		serverID = ch.Guild.ID
		serverName = ch.Guild.Name
	}

	processedInt := 0
	if processed {
		processedInt = 1
	}

	_, err := w.q.ExecContext(ctx, `
		INSERT OR REPLACE INTO channels
			(folder_name, channel_id, channel_type, channel_name,
			 server_id, server_name, recipients, message_count,
			 messages_with_attachments, processed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ch.Folder, ch.ID, ch.Type, ch.Name, serverID, serverName, recipients, msgCount, attachCount, processedInt)
	if err != nil {
		return fmt.Errorf("failed to upsert channel: %w", err)
	}
	return nil
}

// IncrementEmote adds delta to an emote's count and refreshes its name.
func (w *statsWriter) IncrementEmote(ctx context.Context, emoteID, name string, delta int) error {
	_, err := w.q.ExecContext(ctx, `
		INSERT INTO emotes (emote_id, emote_name, usage_count)
		VALUES (?, ?, ?)
		ON CONFLICT(emote_id) DO UPDATE SET
			usage_count = usage_count + excluded.usage_count,
			emote_name = excluded.emote_name
	`, emoteID, name, delta)
	if err != nil {
		return fmt.Errorf("failed to increment emote: %w", err)
	}
	return nil
}

// IncrementFileType adds delta to an extension's count.
func (w *statsWriter) IncrementFileType(ctx context.Context, ext string, delta int) error {
	_, err := w.q.ExecContext(ctx, `
		INSERT INTO file_types (extension, count)
		VALUES (?, ?)
		ON CONFLICT(extension) DO UPDATE SET
			count = count + excluded.count
	`, ext, delta)
	if err != nil {
		return fmt.Errorf("failed to increment file type: %w", err)
	}
	return nil
}

// InsertMessageIfAbsent stores a detail row, never overwriting.
func (w *statsWriter) InsertMessageIfAbsent(ctx context.Context, rec *domain.MessageRecord) error {
	hasContent, hasAttachments := 0, 0
	if rec.HasContent {
		hasContent = 1
	}
	if rec.HasAttachments {
		hasAttachments = 1
	}
	_, err := w.q.ExecContext(ctx, `
		INSERT OR IGNORE INTO messages
			(message_id, folder_name, timestamp, year, month, day,
			 has_content, has_attachments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Folder, rec.Timestamp, rec.Year, rec.Month, rec.Day, hasContent, hasAttachments)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}
