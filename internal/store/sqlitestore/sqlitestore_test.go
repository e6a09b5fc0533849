package sqlitestore

import (
	"context"
	"errors"
	"testing"

	"videoable/internal/store"
	"videoable/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSession(ctx, "clip.mp4", "uploads/abc.mp4")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if created.ID == 0 {
		t.Error("CreateSession() returned zero id")
	}
	if created.VideoFilename != "clip.mp4" || created.VideoPath != "uploads/abc.mp4" {
		t.Errorf("CreateSession() = %+v", created)
	}

	got, err := s.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got.ID != created.ID || got.VideoFilename != created.VideoFilename {
		t.Errorf("GetSession() = %+v, want %+v", got, created)
	}

	sessions, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("ListSessions() returned %d sessions, want 1", len(sessions))
	}

	if err := s.DeleteSession(ctx, created.ID); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
	if _, err := s.GetSession(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetSession() after delete error = %v, want ErrNotFound", err)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetSession(context.Background(), 42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetSession() error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteSession(context.Background(), 42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteSession() error = %v, want ErrNotFound", err)
	}
}

func TestEditLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, "clip.mp4", "uploads/abc.mp4")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	if _, err := s.LatestEdit(ctx, sess.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("LatestEdit() on empty log error = %v, want ErrNotFound", err)
	}

	first := []models.SubtitleSegment{{Start: 0, End: 2, Text: "first"}}
	second := []models.SubtitleSegment{{Start: 0, End: 2, Text: "second"}, {Start: 2, End: 4, Text: "more"}}

	if _, err := s.AppendEdit(ctx, sess.ID, "add first", first, models.DefaultStyle()); err != nil {
		t.Fatalf("AppendEdit() error: %v", err)
	}

	customStyle := models.DefaultStyle()
	customStyle.FontColor = "#FF0000"
	if _, err := s.AppendEdit(ctx, sess.ID, "add second", second, customStyle); err != nil {
		t.Fatalf("AppendEdit() error: %v", err)
	}

	edits, err := s.ListEdits(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ListEdits() error: %v", err)
	}
	if len(edits) != 2 {
		t.Fatalf("ListEdits() returned %d edits, want 2", len(edits))
	}
	if edits[0].UserMessage != "add first" || edits[1].UserMessage != "add second" {
		t.Errorf("ListEdits() order wrong: %q, %q", edits[0].UserMessage, edits[1].UserMessage)
	}

	latest, err := s.LatestEdit(ctx, sess.ID)
	if err != nil {
		t.Fatalf("LatestEdit() error: %v", err)
	}
	if latest.UserMessage != "add second" {
		t.Errorf("LatestEdit().UserMessage = %q, want %q", latest.UserMessage, "add second")
	}
	if len(latest.SubtitleData) != 2 || latest.SubtitleData[1].Text != "more" {
		t.Errorf("LatestEdit().SubtitleData = %+v", latest.SubtitleData)
	}
	if latest.StyleConfig.FontColor != "#FF0000" {
		t.Errorf("LatestEdit().StyleConfig.FontColor = %q, want #FF0000", latest.StyleConfig.FontColor)
	}
}

func TestDeleteEdits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, _ := s.CreateSession(ctx, "clip.mp4", "uploads/abc.mp4")
	s.AppendEdit(ctx, sess.ID, "one", nil, models.DefaultStyle())
	s.AppendEdit(ctx, sess.ID, "two", nil, models.DefaultStyle())

	n, err := s.DeleteEdits(ctx, sess.ID)
	if err != nil {
		t.Fatalf("DeleteEdits() error: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteEdits() = %d, want 2", n)
	}

	edits, err := s.ListEdits(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ListEdits() error: %v", err)
	}
	if len(edits) != 0 {
		t.Errorf("ListEdits() after delete returned %d edits", len(edits))
	}
}

func TestDeleteSessionCascadesEdits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, _ := s.CreateSession(ctx, "clip.mp4", "uploads/abc.mp4")
	if _, err := s.AppendEdit(ctx, sess.ID, "one", nil, models.DefaultStyle()); err != nil {
		t.Fatalf("AppendEdit() error: %v", err)
	}

	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}

	edits, err := s.ListEdits(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ListEdits() error: %v", err)
	}
	if len(edits) != 0 {
		t.Errorf("edits survived session delete: %+v", edits)
	}
}
