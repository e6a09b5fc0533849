// Package sqlitestore persists sessions and edits in a local SQLite
// database. This is the default backend: the whole editor state lives
// in one file under the data directory.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"videoable/internal/store"
	"videoable/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    video_filename TEXT NOT NULL,
    video_path     TEXT NOT NULL,
    created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edits (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id    INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    user_message  TEXT NOT NULL,
    subtitle_data TEXT NOT NULL,
    style_config  TEXT NOT NULL,
    created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_edits_session_created
    ON edits(session_id, created_at);
`

// Store is a SQLite-backed store.Store.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (or creates) the database at dataDir/videoable.db
// and applies the schema.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "videoable.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) CreateSession(ctx context.Context, videoFilename, videoPath string) (models.Session, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (video_filename, video_path, created_at) VALUES (?, ?, ?)`,
		videoFilename, videoPath, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Session{}, fmt.Errorf("session id: %w", err)
	}
	return models.Session{ID: id, VideoFilename: videoFilename, VideoPath: videoPath, CreatedAt: now}, nil
}

func (s *Store) GetSession(ctx context.Context, id int64) (models.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, video_filename, video_path, created_at FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, store.ErrNotFound
	}
	return sess, err
}

func (s *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_filename, video_path, created_at FROM sessions ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AppendEdit(ctx context.Context, sessionID int64, userMessage string, subtitles []models.SubtitleSegment, style models.StyleConfig) (models.Edit, error) {
	subtitleData, err := json.Marshal(subtitles)
	if err != nil {
		return models.Edit{}, fmt.Errorf("marshal subtitles: %w", err)
	}
	styleConfig, err := json.Marshal(style)
	if err != nil {
		return models.Edit{}, fmt.Errorf("marshal style: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO edits (session_id, user_message, subtitle_data, style_config, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		sessionID, userMessage, string(subtitleData), string(styleConfig), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.Edit{}, fmt.Errorf("insert edit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Edit{}, fmt.Errorf("edit id: %w", err)
	}

	return models.Edit{
		ID:           id,
		SessionID:    sessionID,
		UserMessage:  userMessage,
		SubtitleData: subtitles,
		StyleConfig:  style,
		CreatedAt:    now,
	}, nil
}

func (s *Store) ListEdits(ctx context.Context, sessionID int64) ([]models.Edit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, user_message, subtitle_data, style_config, created_at
         FROM edits WHERE session_id = ? ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list edits: %w", err)
	}
	defer rows.Close()

	edits := []models.Edit{}
	for rows.Next() {
		edit, err := scanEdit(rows)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	return edits, rows.Err()
}

func (s *Store) LatestEdit(ctx context.Context, sessionID int64) (models.Edit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, user_message, subtitle_data, style_config, created_at
         FROM edits WHERE session_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, sessionID)
	edit, err := scanEdit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Edit{}, store.ErrNotFound
	}
	return edit, err
}

func (s *Store) DeleteEdits(ctx context.Context, sessionID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM edits WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("delete edits: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (models.Session, error) {
	var sess models.Session
	var createdAt string
	if err := r.Scan(&sess.ID, &sess.VideoFilename, &sess.VideoPath, &createdAt); err != nil {
		return models.Session{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("parse session timestamp %q: %w", createdAt, err)
	}
	sess.CreatedAt = ts
	return sess, nil
}

func scanEdit(r rowScanner) (models.Edit, error) {
	var edit models.Edit
	var subtitleData, styleConfig, createdAt string
	if err := r.Scan(&edit.ID, &edit.SessionID, &edit.UserMessage, &subtitleData, &styleConfig, &createdAt); err != nil {
		return models.Edit{}, err
	}
	if err := json.Unmarshal([]byte(subtitleData), &edit.SubtitleData); err != nil {
		return models.Edit{}, fmt.Errorf("unmarshal subtitle data: %w", err)
	}
	if err := json.Unmarshal([]byte(styleConfig), &edit.StyleConfig); err != nil {
		return models.Edit{}, fmt.Errorf("unmarshal style config: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Edit{}, fmt.Errorf("parse edit timestamp %q: %w", createdAt, err)
	}
	edit.CreatedAt = ts
	return edit, nil
}
