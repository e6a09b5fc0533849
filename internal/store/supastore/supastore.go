// Package supastore persists sessions and edits in Supabase tables
// via PostgREST. Table layout mirrors the SQLite backend: `sessions`
// and `edits`, with edits holding subtitle_data and style_config as
// jsonb columns and cascading on session delete.
package supastore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"videoable/internal/store"
	"videoable/models"
)

// Store is a Supabase-backed store.Store.
type Store struct {
	client *supa.Client
}

// New connects to the Supabase project at url using the service key.
func New(url, serviceKey string) (*Store, error) {
	client, err := supa.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close is a no-op; the underlying client is plain HTTP.
func (s *Store) Close() error { return nil }

type sessionInsert struct {
	VideoFilename string    `json:"video_filename"`
	VideoPath     string    `json:"video_path"`
	CreatedAt     time.Time `json:"created_at"`
}

type editInsert struct {
	SessionID    int64                    `json:"session_id"`
	UserMessage  string                   `json:"user_message"`
	SubtitleData []models.SubtitleSegment `json:"subtitle_data"`
	StyleConfig  models.StyleConfig       `json:"style_config"`
	CreatedAt    time.Time                `json:"created_at"`
}

func (s *Store) CreateSession(ctx context.Context, videoFilename, videoPath string) (models.Session, error) {
	payload := sessionInsert{
		VideoFilename: videoFilename,
		VideoPath:     videoPath,
		CreatedAt:     time.Now().UTC(),
	}

	body, _, err := s.client.From("sessions").
		Insert(payload, false, "", "representation", "").
		Execute()
	if err != nil {
		return models.Session{}, fmt.Errorf("insert session: %w", err)
	}

	var created []models.Session
	if err := json.Unmarshal(body, &created); err != nil || len(created) == 0 {
		return models.Session{}, fmt.Errorf("decode created session: %w", err)
	}
	return created[0], nil
}

func (s *Store) GetSession(ctx context.Context, id int64) (models.Session, error) {
	body, _, err := s.client.From("sessions").
		Select("*", "", false).
		Eq("id", fmt.Sprint(id)).
		Execute()
	if err != nil {
		return models.Session{}, fmt.Errorf("fetch session: %w", err)
	}

	var sessions []models.Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if len(sessions) == 0 {
		return models.Session{}, store.ErrNotFound
	}
	return sessions[0], nil
}

func (s *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	body, _, err := s.client.From("sessions").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := []models.Session{}
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	_, count, err := s.client.From("sessions").
		Delete("minimal", "exact").
		Eq("id", fmt.Sprint(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if count == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AppendEdit(ctx context.Context, sessionID int64, userMessage string, subtitles []models.SubtitleSegment, style models.StyleConfig) (models.Edit, error) {
	payload := editInsert{
		SessionID:    sessionID,
		UserMessage:  userMessage,
		SubtitleData: subtitles,
		StyleConfig:  style,
		CreatedAt:    time.Now().UTC(),
	}

	body, _, err := s.client.From("edits").
		Insert(payload, false, "", "representation", "").
		Execute()
	if err != nil {
		return models.Edit{}, fmt.Errorf("insert edit: %w", err)
	}

	var created []models.Edit
	if err := json.Unmarshal(body, &created); err != nil || len(created) == 0 {
		return models.Edit{}, fmt.Errorf("decode created edit: %w", err)
	}
	return created[0], nil
}

func (s *Store) ListEdits(ctx context.Context, sessionID int64) ([]models.Edit, error) {
	body, _, err := s.client.From("edits").
		Select("*", "", false).
		Eq("session_id", fmt.Sprint(sessionID)).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list edits: %w", err)
	}

	edits := []models.Edit{}
	if err := json.Unmarshal(body, &edits); err != nil {
		return nil, fmt.Errorf("decode edits: %w", err)
	}
	return edits, nil
}

func (s *Store) LatestEdit(ctx context.Context, sessionID int64) (models.Edit, error) {
	body, _, err := s.client.From("edits").
		Select("*", "", false).
		Eq("session_id", fmt.Sprint(sessionID)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return models.Edit{}, fmt.Errorf("fetch latest edit: %w", err)
	}

	var edits []models.Edit
	if err := json.Unmarshal(body, &edits); err != nil {
		return models.Edit{}, fmt.Errorf("decode latest edit: %w", err)
	}
	if len(edits) == 0 {
		return models.Edit{}, store.ErrNotFound
	}
	return edits[0], nil
}

func (s *Store) DeleteEdits(ctx context.Context, sessionID int64) (int64, error) {
	_, count, err := s.client.From("edits").
		Delete("minimal", "exact").
		Eq("session_id", fmt.Sprint(sessionID)).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("delete edits: %w", err)
	}
	return count, nil
}
