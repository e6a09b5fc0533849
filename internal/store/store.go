// Package store defines the persistence contracts for sessions and
// their append-only edit logs. The editor operates on snapshots read
// from a store and returns new edits to append; it never mutates
// history.
package store

import (
	"context"
	"errors"

	"videoable/models"
)

// ErrNotFound is returned when a session or edit does not exist.
var ErrNotFound = errors.New("not found")

// SessionStore manages video editing sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, videoFilename, videoPath string) (models.Session, error)
	GetSession(ctx context.Context, id int64) (models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	// DeleteSession removes the session and, through cascade, its
	// edits. The caller is responsible for the video file on disk.
	DeleteSession(ctx context.Context, id int64) error
}

// EditStore manages the append-only edit log of a session.
type EditStore interface {
	AppendEdit(ctx context.Context, sessionID int64, userMessage string, subtitles []models.SubtitleSegment, style models.StyleConfig) (models.Edit, error)
	// ListEdits returns the session's edits ordered by creation time
	// ascending.
	ListEdits(ctx context.Context, sessionID int64) ([]models.Edit, error)
	// LatestEdit returns the most recent edit, or ErrNotFound when
	// the session has none.
	LatestEdit(ctx context.Context, sessionID int64) (models.Edit, error)
	DeleteEdits(ctx context.Context, sessionID int64) (int64, error)
}

// Store is the full persistence surface.
type Store interface {
	SessionStore
	EditStore
	Close() error
}
